package cache

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/blackwell-systems/booklog/internal/library"
)

// IndexBook represents a library entry for HTML index generation.
type IndexBook struct {
	Entry     library.Entry
	CoverPath string // relative to the index file
	HasCover  bool
}

// statusColors maps a normalized status to its badge colour.
var statusColors = map[string]string{
	library.StatusRead:    "#3fb950",
	library.StatusReading: "#58a6ff",
}

const otherStatusColor = "#8b949e"

// StatusColor returns the badge colour for a status: green for read, blue for
// reading, grey for everything else.
func StatusColor(status string) string {
	if c, ok := statusColors[strings.ToLower(strings.TrimSpace(status))]; ok {
		return c
	}
	return otherStatusColor
}

// IndexPath returns where GenerateHTMLIndex writes.
func (m *Manager) IndexPath() string {
	return filepath.Join(m.baseDir, "index.html")
}

// GenerateHTMLIndex writes index.html in the cache directory listing every
// entry, using cached cover images where present.
func (m *Manager) GenerateHTMLIndex(entries []library.Entry, size string) (string, error) {
	books := make([]IndexBook, len(entries))
	for i, e := range entries {
		books[i] = IndexBook{Entry: e}
		if e.HasCover() && m.HasCover(e.Cover.String(), size) {
			rel, err := filepath.Rel(m.baseDir, m.CoverPath(e.Cover.String(), size))
			if err == nil {
				books[i].CoverPath = filepath.ToSlash(rel)
				books[i].HasCover = true
			}
		}
	}

	if err := os.MkdirAll(m.baseDir, 0750); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}
	path := m.IndexPath()
	if err := os.WriteFile(path, []byte(generateHTML(books)), 0644); err != nil {
		return "", fmt.Errorf("writing index.html: %w", err)
	}
	return path, nil
}

func generateHTML(books []IndexBook) string {
	var s strings.Builder

	statusCount := make(map[string]int)
	for _, b := range books {
		statusCount[statusLabel(b.Entry)]++
	}

	s.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>booklog</title>
    <style>
        :root {
            --accent: #fb6820;
            --card: #1c2829;
            --border: #1e3a3c;
        }
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            background: #1a1a1a;
            color: #e0e0e0;
            line-height: 1.6;
        }
        .sticky-nav {
            position: sticky;
            top: 0;
            z-index: 1000;
            background: #1a1a1a;
            padding: 20px 20px 10px;
            border-bottom: 2px solid var(--border);
        }
        header, .controls, .status-filters, #library { max-width: 1200px; margin: 0 auto 15px; }
        h1 { font-size: 2rem; color: var(--accent); }
        .subtitle { color: #888; font-size: 0.9rem; }
        .controls { display: flex; gap: 15px; }
        #search, #sort-by {
            padding: 12px 15px;
            background: #2a2a2a;
            border: 1px solid #444;
            border-radius: 8px;
            color: #e0e0e0;
        }
        #search { flex: 1; }
        .status-filter {
            background: #2a2a2a;
            border: 2px solid #444;
            color: #e0e0e0;
            padding: 6px 14px;
            border-radius: 6px;
            cursor: pointer;
        }
        .status-filter.active { border-color: var(--accent); }
        .content-wrapper { padding: 20px; }
        .book-grid {
            display: grid;
            grid-template-columns: repeat(auto-fill, minmax(220px, 1fr));
            gap: 20px;
        }
        .book-card {
            background: var(--card);
            border: 1px solid var(--border);
            border-radius: 8px;
            padding: 15px;
        }
        .book-cover {
            height: 200px;
            background: #1a1a1a;
            border-radius: 4px;
            margin-bottom: 12px;
            display: flex;
            align-items: center;
            justify-content: center;
            overflow: hidden;
        }
        .book-cover img { max-width: 100%; max-height: 100%; object-fit: contain; }
        .book-cover.no-cover { font-size: 3rem; }
        .book-title { font-weight: 600; color: #fff; }
        .book-author { font-size: 0.9rem; color: #aaa; }
        .book-meta { font-size: 0.8rem; color: #888; font-family: monospace; }
        .status {
            display: inline-block;
            margin-top: 8px;
            padding: 2px 8px;
            border-radius: 4px;
            font-size: 0.8rem;
            color: #111;
        }
        .no-results { text-align: center; color: #888; padding: 40px; }
    </style>
</head>
<body>
    <div class="sticky-nav">
        <header>
            <h1>booklog</h1>
            <div class="subtitle">` + fmt.Sprintf("%d books", len(books)) + `</div>
        </header>
        <div class="controls">
            <input type="text" id="search" placeholder="Search by title, author or ISBN...">
            <select id="sort-by">
                <option value="recent">Recently Added</option>
                <option value="title">Title (A-Z)</option>
                <option value="author">Author (A-Z)</option>
                <option value="year-desc">Year (Newest First)</option>
                <option value="year-asc">Year (Oldest First)</option>
            </select>
        </div>
`)

	if len(statusCount) > 0 {
		s.WriteString(`        <div class="status-filters">
`)
		statuses := make([]string, 0, len(statusCount))
		for st := range statusCount {
			statuses = append(statuses, st)
		}
		sort.Strings(statuses)
		for _, st := range statuses {
			fmt.Fprintf(&s, `            <button class="status-filter" data-status="%s">%s (%d)</button>
`, html.EscapeString(st), html.EscapeString(st), statusCount[st])
		}
		s.WriteString(`        </div>
`)
	}

	s.WriteString(`    </div>

    <div class="content-wrapper">
        <div id="library" class="book-grid">
`)
	for i, b := range books {
		renderBookCard(&s, b, i)
	}
	s.WriteString(`        </div>
        <div id="no-results" class="no-results" style="display:none;">No books match your search.</div>
    </div>

    <script>
        const search = document.getElementById('search');
        const grid = document.getElementById('library');
        const noResults = document.getElementById('no-results');
        const sortBy = document.getElementById('sort-by');
        let activeStatus = '';

        document.querySelectorAll('.status-filter').forEach(btn => {
            btn.addEventListener('click', () => {
                const st = btn.dataset.status;
                activeStatus = activeStatus === st ? '' : st;
                document.querySelectorAll('.status-filter').forEach(b =>
                    b.classList.toggle('active', b.dataset.status === activeStatus));
                applyFilters();
            });
        });
        search.addEventListener('input', applyFilters);
        sortBy.addEventListener('change', () => {
            const cards = Array.from(grid.querySelectorAll('.book-card'));
            cards.sort((a, b) => {
                switch (sortBy.value) {
                    case 'title': return a.dataset.title.localeCompare(b.dataset.title);
                    case 'author': return (a.dataset.author || '').localeCompare(b.dataset.author || '');
                    case 'year-desc': return parseInt(b.dataset.year || 0) - parseInt(a.dataset.year || 0);
                    case 'year-asc': return parseInt(a.dataset.year || 0) - parseInt(b.dataset.year || 0);
                    default: return parseInt(b.dataset.index) - parseInt(a.dataset.index);
                }
            });
            cards.forEach(card => grid.appendChild(card));
        });

        function applyFilters() {
            const query = search.value.toLowerCase();
            let visible = 0;
            grid.querySelectorAll('.book-card').forEach(card => {
                const show = (query === '' || card.textContent.toLowerCase().includes(query)) &&
                    (activeStatus === '' || card.dataset.status === activeStatus);
                card.style.display = show ? 'block' : 'none';
                if (show) visible++;
            });
            noResults.style.display = visible === 0 ? 'block' : 'none';
        }
    </script>
</body>
</html>
`)
	return s.String()
}

func renderBookCard(s *strings.Builder, b IndexBook, index int) {
	e := b.Entry
	status := statusLabel(e)

	coverClass := ""
	if !b.HasCover {
		coverClass = " no-cover"
	}
	fmt.Fprintf(s, `            <div class="book-card" data-key="%s" data-status="%s" data-title="%s" data-author="%s" data-year="%s" data-index="%d">
                <div class="book-cover%s">`,
		html.EscapeString(e.IdentityKey()),
		html.EscapeString(status),
		html.EscapeString(e.Title),
		html.EscapeString(e.Author),
		html.EscapeString(e.Published),
		index,
		coverClass,
	)
	if b.HasCover {
		fmt.Fprintf(s, `<img src="%s" alt="Cover">`, html.EscapeString(b.CoverPath))
	} else {
		s.WriteString("📚")
	}
	s.WriteString(`</div>
                <div class="book-title">` + html.EscapeString(e.Title) + `</div>
`)
	if e.Author != "" {
		s.WriteString(`                <div class="book-author">` + html.EscapeString(e.Author) + `</div>
`)
	}
	if meta := bookMeta(e); meta != "" {
		s.WriteString(`                <div class="book-meta">` + html.EscapeString(meta) + `</div>
`)
	}
	fmt.Fprintf(s, `                <span class="status" style="background:%s">%s</span>
            </div>
`, StatusColor(status), html.EscapeString(status))
}

func statusLabel(e library.Entry) string {
	if st := e.NormalizedStatus(); st != "" {
		return st
	}
	return library.StatusUnread
}

func bookMeta(e library.Entry) string {
	var parts []string
	if e.Published != "" {
		parts = append(parts, e.Published)
	}
	if e.ISBN != "" {
		parts = append(parts, e.ISBN)
	}
	if e.Rating != "" && e.Rating != "0" {
		parts = append(parts, e.Rating+"★")
	}
	return strings.Join(parts, " · ")
}
