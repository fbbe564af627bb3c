package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/blackwell-systems/booklog/internal/library"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// BookItem represents a library entry in the browser list.
type BookItem struct {
	Entry     library.Entry
	CoverPath string // cached cover image, "" if not downloaded
}

// FilterValue returns a string used for filtering in the list
func (b BookItem) FilterValue() string {
	return strings.Join([]string{b.Entry.Title, b.Entry.Author, b.Entry.ISBN, b.Entry.NormalizedStatus()}, " ")
}

// truncateText truncates a string to maxWidth terminal cells with ellipsis.
func truncateText(s string, maxWidth int) string {
	if maxWidth <= 1 && xansi.StringWidth(s) > maxWidth {
		return "…"
	}
	return xansi.Truncate(s, maxWidth, "…")
}

// Column width constraints
const (
	minTitleWidth  = 12
	maxTitleWidth  = 56
	minAuthorWidth = 8
	maxAuthorWidth = 30
	statusWidth    = 8
	yearWidth      = 5
	coverWidth     = 2
	columnGap      = 1
)

// computeColumnWidths gives the title and author columns what is left after
// the fixed status, year and cover columns.
func computeColumnWidths(totalWidth int) (titleW, authorW int) {
	prefix := 2
	gaps := columnGap * 4
	usable := totalWidth - prefix - gaps - statusWidth - yearWidth - coverWidth
	if usable < minTitleWidth+minAuthorWidth {
		return minTitleWidth, minAuthorWidth
	}
	titleW = usable * 60 / 100
	if titleW > maxTitleWidth {
		titleW = maxTitleWidth
	}
	authorW = usable - titleW
	if authorW > maxAuthorWidth {
		authorW = maxAuthorWidth
	}
	if authorW < minAuthorWidth {
		authorW = minAuthorWidth
	}
	return titleW, authorW
}

// padOrTruncate pads s to exactly width terminal cells, truncating with "…"
// if necessary.
func padOrTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = truncateText(s, width)
	if w := xansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

func displayStatus(e library.Entry) string {
	if st := e.NormalizedStatus(); st != "" {
		return st
	}
	return library.StatusUnread
}

// bookDelegate renders one row per entry.
type bookDelegate struct{}

func (d bookDelegate) Height() int                             { return 1 }
func (d bookDelegate) Spacing() int                            { return 0 }
func (d bookDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render draws a row with fixed-width columns.
func (d bookDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	bookItem, ok := item.(BookItem)
	if !ok {
		return
	}
	e := bookItem.Entry

	listWidth := m.Width()
	if listWidth <= 0 {
		listWidth = 80
	}
	titleW, authorW := computeColumnWidths(listWidth)
	gap := strings.Repeat(" ", columnGap)

	isCursor := index == m.Index()
	prefix := "  "
	if isCursor {
		prefix = lipgloss.NewStyle().Foreground(ColorOrange).Render("›") + " "
	}

	titleCol := padOrTruncate(e.Title, titleW)
	authorCol := padOrTruncate(e.Author, authorW)
	status := displayStatus(e)
	statusCol := padOrTruncate(status, statusWidth)
	yearCol := padOrTruncate(e.Published, yearWidth)
	coverCol := padOrTruncate("", coverWidth)
	if e.HasCover() {
		coverCol = padOrTruncate("▣", coverWidth)
	}

	var titleStyled, authorStyled string
	if isCursor {
		titleStyled = StyleHighlight.Render(titleCol)
		authorStyled = lipgloss.NewStyle().Foreground(ColorOrange).Faint(true).Render(authorCol)
	} else {
		titleStyled = StyleNormal.Render(titleCol)
		authorStyled = StyleHelp.Render(authorCol)
	}

	line := prefix + titleStyled + gap + authorStyled + gap +
		StatusStyle(status).Render(statusCol) + gap +
		StyleHelp.Render(yearCol) + gap +
		StyleMeta.Render(coverCol)
	_, _ = fmt.Fprint(w, line)
}

// toItems wraps entries for the list, resolving cached covers with coverPath.
func toItems(books []library.Entry, coverPath func(library.Entry) string) []list.Item {
	items := make([]list.Item, len(books))
	for i, b := range books {
		it := BookItem{Entry: b}
		if coverPath != nil {
			it.CoverPath = coverPath(b)
		}
		items[i] = it
	}
	return items
}
