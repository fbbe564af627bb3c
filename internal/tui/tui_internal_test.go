package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/blackwell-systems/booklog/internal/library"
	"github.com/blackwell-systems/booklog/internal/openlibrary"
	"github.com/blackwell-systems/booklog/internal/search"
	tea "github.com/charmbracelet/bubbletea"
)

type echoCatalog struct{}

func (echoCatalog) Search(_ context.Context, q string) (*openlibrary.SearchResponse, error) {
	if q == "" {
		return &openlibrary.SearchResponse{Docs: []openlibrary.Doc{}}, nil
	}
	return &openlibrary.SearchResponse{NumFound: 1, Docs: []openlibrary.Doc{{Key: "/works/" + q, Title: q}}}, nil
}

type fakeLibrary struct {
	mu    sync.Mutex
	books []library.Entry
}

func (f *fakeLibrary) Insert(_ context.Context, entries ...library.Entry) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.books = append(f.books, entries...)
	return len(entries), nil
}

func (f *fakeLibrary) Books() []library.Entry { return f.books }

func (f *fakeLibrary) Subscribe() (<-chan []library.Entry, func()) {
	ch := make(chan []library.Entry)
	return ch, func() { close(ch) }
}

// --- book_item helpers ---

func TestPadOrTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 4, "abc…"},
		{"abc", 3, "abc"},
		{"ünï", 4, "ünï "},
		{"abc", 0, ""},
		{"abc", 1, "…"},
	}
	for _, c := range cases {
		if got := padOrTruncate(c.in, c.width); got != c.want {
			t.Errorf("padOrTruncate(%q, %d) = %q, want %q", c.in, c.width, got, c.want)
		}
	}
}

func TestComputeColumnWidths(t *testing.T) {
	titleW, authorW := computeColumnWidths(20)
	if titleW != minTitleWidth || authorW != minAuthorWidth {
		t.Errorf("narrow: %d/%d, want minimums", titleW, authorW)
	}
	titleW, authorW = computeColumnWidths(300)
	if titleW > maxTitleWidth || authorW > maxAuthorWidth {
		t.Errorf("wide: %d/%d exceed maximums", titleW, authorW)
	}
}

func TestBookItemFilterValue(t *testing.T) {
	it := BookItem{Entry: library.Entry{Title: "Dune", Author: "Frank Herbert", ISBN: "978", Status: "Read"}}
	fv := it.FilterValue()
	for _, want := range []string{"Dune", "Herbert", "978", "read"} {
		if !strings.Contains(fv, want) {
			t.Errorf("FilterValue %q missing %q", fv, want)
		}
	}
}

func TestTruncateText(t *testing.T) {
	got := truncateText("The Left Hand of Darkness", 10)
	if utf8.RuneCountInString(got) != 10 || !strings.HasSuffix(got, "…") {
		t.Errorf("truncateText = %q", got)
	}
}

// --- search screen ---

func TestSearchModel_DropsStaleResults(t *testing.T) {
	ctx := context.Background()
	session := search.NewSession(echoCatalog{})
	s := NewSearchModel(ctx, session, &fakeLibrary{})

	older := session.Begin("du")
	newer := session.Begin("dune")

	s, _ = s.Update(searchResultMsg{result: session.Run(ctx, newer)})
	s, _ = s.Update(searchResultMsg{result: session.Run(ctx, older)})

	if len(s.results) != 1 || s.results[0].Title != "dune" {
		t.Errorf("results = %+v, want only the dune result", s.results)
	}
}

func TestSearchModel_StaleDebounceIsIgnored(t *testing.T) {
	session := search.NewSession(echoCatalog{})
	s := NewSearchModel(context.Background(), session, &fakeLibrary{})

	stale := session.Begin("d")
	session.Begin("du")

	if _, cmd := s.Update(debounceMsg{ticket: stale}); cmd != nil {
		t.Error("stale debounce should not start a search")
	}
}

func TestSearchModel_TypingSchedulesSearch(t *testing.T) {
	session := search.NewSession(echoCatalog{})
	s := NewSearchModel(context.Background(), session, &fakeLibrary{})

	s, cmd := s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if cmd == nil {
		t.Fatal("typing returned no command")
	}
	if !s.searching {
		t.Error("searching flag not set after typing")
	}
	if s.input.Value() != "x" {
		t.Errorf("input = %q", s.input.Value())
	}
}

func TestSearchModel_AdoptInsertsEntry(t *testing.T) {
	lib := &fakeLibrary{}
	s := NewSearchModel(context.Background(), search.NewSession(echoCatalog{}), lib)

	cover := 42
	msg := s.adopt(openlibrary.Doc{Key: "/works/OL1W", Title: "Dune", AuthorNames: []string{"Frank Herbert"}, CoverID: &cover})()
	am, ok := msg.(adoptedMsg)
	if !ok || am.err != nil || am.added != 1 {
		t.Fatalf("adopt msg = %#v", msg)
	}
	if len(lib.books) != 1 || lib.books[0].ISBN != "/works/OL1W" || lib.books[0].Cover != "42" {
		t.Errorf("inserted = %+v", lib.books)
	}

	s, _ = s.Update(am)
	if !strings.Contains(s.notice, "Dune") {
		t.Errorf("notice = %q", s.notice)
	}
}

// --- browser ---

func TestBrowser_LibraryChangeRefreshesList(t *testing.T) {
	lib := &fakeLibrary{books: []library.Entry{{ISBN: "1", Title: "Dune", Status: "read"}}}
	m := NewBrowserModel(context.Background(), Options{Library: lib, Catalog: echoCatalog{}}, nil)
	if len(m.list.Items()) != 1 {
		t.Fatalf("items = %d, want 1", len(m.list.Items()))
	}

	next, _ := m.Update(libraryChangedMsg{books: []library.Entry{
		{ISBN: "1", Title: "Dune", Status: "read"},
		{ISBN: "2", Title: "Emma", Status: "reading"},
	}})
	bm := next.(BrowserModel)
	if len(bm.list.Items()) != 2 {
		t.Errorf("items after change = %d, want 2", len(bm.list.Items()))
	}
	if !strings.Contains(bm.list.Title, "1 read") || !strings.Contains(bm.list.Title, "1 reading") {
		t.Errorf("title = %q", bm.list.Title)
	}
}

func TestBrowser_SwitchesToSearchAndBack(t *testing.T) {
	lib := &fakeLibrary{}
	m := NewBrowserModel(context.Background(), Options{Library: lib, Catalog: echoCatalog{}}, nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	bm := next.(BrowserModel)
	if bm.screen != screenSearch {
		t.Fatal("a did not open the search screen")
	}

	next, _ = bm.Update(closeSearchMsg{})
	if next.(BrowserModel).screen != screenLibrary {
		t.Error("closeSearchMsg did not return to the library")
	}
}

func TestBrowser_EnterTogglesDetails(t *testing.T) {
	lib := &fakeLibrary{books: []library.Entry{{ISBN: "1", Title: "Dune"}}}
	m := NewBrowserModel(context.Background(), Options{Library: lib, Catalog: echoCatalog{}}, nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	bm := next.(BrowserModel)
	if !bm.showDetails {
		t.Fatal("enter did not open details")
	}
	if pane := bm.renderDetailsPane(); !strings.Contains(pane, "Dune") {
		t.Errorf("details pane = %q", pane)
	}
}

func TestWaitForChange_ClosedChannel(t *testing.T) {
	ch := make(chan []library.Entry)
	close(ch)
	if msg := waitForChange(ch)(); msg != nil {
		t.Errorf("closed subscription produced %#v", msg)
	}
}
