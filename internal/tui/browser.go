package tui

import (
	"context"
	"fmt"

	"github.com/blackwell-systems/booklog/internal/library"
	"github.com/blackwell-systems/booklog/internal/search"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// Library is what the browser needs from the library store.
type Library interface {
	Inserter
	Books() []library.Entry
	Subscribe() (<-chan []library.Entry, func())
}

type screen int

const (
	screenLibrary screen = iota
	screenSearch
)

// libraryChangedMsg carries a fresh snapshot from the store.
type libraryChangedMsg struct{ books []library.Entry }

// BrowserModel is the top-level interactive model: the library list with an
// optional details pane, plus the catalog search screen.
type BrowserModel struct {
	ctx       context.Context
	lib       Library
	updates   <-chan []library.Entry
	coverPath func(library.Entry) string
	keys      browserKeys

	list        list.Model
	search      *SearchModel
	screen      screen
	showDetails bool
	width       int
	height      int
	activeCmd   string
	quitting    bool
}

// Options configures the browser.
type Options struct {
	Library Library
	Catalog search.Searcher

	// CoverPath returns the cached cover image for an entry, or "".
	CoverPath func(library.Entry) string
}

// NewBrowserModel builds the browser over the current library contents. The
// caller owns updates and must cancel the subscription when done.
func NewBrowserModel(ctx context.Context, opts Options, updates <-chan []library.Entry) BrowserModel {
	books := opts.Library.Books()
	l := list.New(toItems(books, opts.CoverPath), bookDelegate{}, 0, 0)
	l.Title = libraryTitle(books)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.Styles.Title = StyleHeader
	l.Styles.PaginationStyle = StyleHelp
	l.Styles.HelpStyle = StyleHelp
	l.SetStatusBarItemName("book", "books")

	return BrowserModel{
		ctx:       ctx,
		lib:       opts.Library,
		updates:   updates,
		coverPath: opts.CoverPath,
		keys:      newBrowserKeys(),
		list:      l,
		search:    NewSearchModel(ctx, search.NewSession(opts.Catalog), opts.Library),
	}
}

func (m BrowserModel) Init() tea.Cmd {
	return waitForChange(m.updates)
}

// waitForChange blocks on the store subscription. A closed channel ends the
// loop.
func waitForChange(updates <-chan []library.Entry) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		books, ok := <-updates
		if !ok {
			return nil
		}
		return libraryChangedMsg{books: books}
	}
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizeList()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd

	case libraryChangedMsg:
		m.list.Title = libraryTitle(msg.books)
		cmd := m.list.SetItems(toItems(msg.books, m.coverPath))
		return m, tea.Batch(cmd, waitForChange(m.updates))

	case ClearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case closeSearchMsg:
		m.screen = screenLibrary
		return m, nil
	}

	if m.screen == screenSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.list.FilterState() == list.FilterApplied && msg.String() == "esc" {
				break
			}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Details):
			m.showDetails = !m.showDetails
			m.resizeList()
			m.activeCmd = "enter"
			return m, HighlightCmd()

		case key.Matches(msg, m.keys.Search):
			m.screen = screenSearch
			m.activeCmd = "a"
			return m, tea.Batch(m.search.Init(), HighlightCmd())
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// resizeList fits the list into the frame, leaving room for the details pane.
func (m *BrowserModel) resizeList() {
	if m.width == 0 {
		return
	}
	w := m.width - 4*2 - 2
	h := m.height - 2*2 - 2 - 2 // outer padding, border, footer
	if m.showDetails {
		w = w * 6 / 10
	}
	m.list.SetSize(max(w, 20), max(h, 5))
}

// Run starts the interactive browser and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	updates, cancel := opts.Library.Subscribe()
	defer cancel()

	p := tea.NewProgram(NewBrowserModel(ctx, opts, updates), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
