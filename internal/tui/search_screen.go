package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/booklog/internal/library"
	"github.com/blackwell-systems/booklog/internal/openlibrary"
	"github.com/blackwell-systems/booklog/internal/search"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// searchDebounce is how long typing must pause before a query is sent.
const searchDebounce = 300 * time.Millisecond

// Inserter adds entries to the library.
type Inserter interface {
	Insert(ctx context.Context, entries ...library.Entry) (int, error)
}

type debounceMsg struct{ ticket search.Ticket }

type searchResultMsg struct{ result search.Result }

type adoptedMsg struct {
	title string
	added int
	err   error
}

// closeSearchMsg returns to the library browser.
type closeSearchMsg struct{}

// SearchModel is the catalog search screen. Typing schedules a search after
// a short pause; only the response to the latest query is displayed.
type SearchModel struct {
	ctx     context.Context
	session *search.Session
	lib     Inserter
	keys    searchKeys

	input     textinput.Model
	results   []openlibrary.Doc
	numFound  int
	selected  int
	searching bool
	err       error
	notice    string
	width     int
}

// NewSearchModel creates the search screen.
func NewSearchModel(ctx context.Context, session *search.Session, lib Inserter) *SearchModel {
	ti := textinput.New()
	ti.Placeholder = "Title, author or ISBN..."
	ti.CharLimit = 200
	ti.Width = 50
	ti.Focus()

	return &SearchModel{
		ctx:     ctx,
		session: session,
		lib:     lib,
		keys:    newSearchKeys(),
		input:   ti,
	}
}

func (s *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

func (s *SearchModel) Update(msg tea.Msg) (*SearchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.input.Width = min(60, max(20, msg.Width-10))
		return s, nil

	case debounceMsg:
		if s.session.Stale(msg.ticket) {
			return s, nil
		}
		return s, s.run(msg.ticket)

	case searchResultMsg:
		if !s.session.Apply(msg.result) {
			return s, nil
		}
		s.searching = false
		s.err = msg.result.Err
		s.results = nil
		s.numFound = 0
		if msg.result.Response != nil {
			s.results = msg.result.Response.Docs
			s.numFound = msg.result.Response.NumFound
		}
		s.selected = 0
		return s, nil

	case adoptedMsg:
		switch {
		case msg.err != nil && msg.added == 0:
			s.err = msg.err
		case msg.err != nil:
			s.notice = fmt.Sprintf("Added %q but saving failed: %v", msg.title, msg.err)
		case msg.added == 0:
			s.notice = fmt.Sprintf("%q is already in your library", msg.title)
		default:
			s.notice = fmt.Sprintf("Added %q", msg.title)
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SearchModel) handleKey(msg tea.KeyMsg) (*SearchModel, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.Quit):
		return s, tea.Quit

	case key.Matches(msg, s.keys.Back):
		if !s.input.Focused() {
			s.input.Focus()
			return s, textinput.Blink
		}
		return s, func() tea.Msg { return closeSearchMsg{} }

	case key.Matches(msg, s.keys.Adopt):
		if s.input.Focused() {
			if len(s.results) > 0 {
				s.input.Blur()
			}
			return s, nil
		}
		if s.selected < len(s.results) {
			return s, s.adopt(s.results[s.selected])
		}
		return s, nil

	case key.Matches(msg, s.keys.Down) && !s.input.Focused():
		if len(s.results) > 0 {
			s.selected = (s.selected + 1) % len(s.results)
		}
		return s, nil

	case key.Matches(msg, s.keys.Up) && !s.input.Focused():
		if len(s.results) > 0 {
			s.selected = (s.selected - 1 + len(s.results)) % len(s.results)
		}
		return s, nil

	case key.Matches(msg, s.keys.Down) && len(s.results) > 0:
		s.input.Blur()
		return s, nil
	}

	if !s.input.Focused() {
		return s, nil
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() == before {
		return s, cmd
	}
	return s, tea.Batch(cmd, s.schedule(s.input.Value()))
}

// schedule issues a ticket for query and fires it after the debounce delay.
// An empty query clears the results immediately.
func (s *SearchModel) schedule(query string) tea.Cmd {
	t := s.session.Begin(query)
	s.notice = ""
	if t.Query == "" {
		s.searching = false
		return s.run(t)
	}
	s.searching = true
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg { return debounceMsg{ticket: t} })
}

func (s *SearchModel) run(t search.Ticket) tea.Cmd {
	ctx, session := s.ctx, s.session
	return func() tea.Msg {
		return searchResultMsg{result: session.Run(ctx, t)}
	}
}

func (s *SearchModel) adopt(doc openlibrary.Doc) tea.Cmd {
	ctx, lib := s.ctx, s.lib
	entry := doc.ToEntry()
	return func() tea.Msg {
		added, err := lib.Insert(ctx, entry)
		return adoptedMsg{title: entry.Title, added: added, err: err}
	}
}

func (s *SearchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render("Search Open Library"))
	b.WriteString("\n\n")

	inputStyle := StyleInput
	if s.input.Focused() {
		inputStyle = StyleInputFocused
	}
	b.WriteString(inputStyle.Render(s.input.View()))
	b.WriteString("\n\n")

	switch {
	case s.err != nil:
		b.WriteString(StyleError.Render("Error: " + s.err.Error()))
		b.WriteString("\n\n")
	case s.searching:
		b.WriteString(StyleHelp.Render("Searching..."))
		b.WriteString("\n\n")
	}

	if len(s.results) > 0 {
		fmt.Fprintf(&b, "%s\n", StyleHelp.Render(fmt.Sprintf("%d matches", s.numFound)))
		width := s.width - 6
		if width < 30 {
			width = 70
		}
		for i, d := range s.results {
			line := truncateText(docLine(d), width)
			if i == s.selected && !s.input.Focused() {
				b.WriteString(StyleHighlight.Render("› " + line))
			} else {
				b.WriteString("  " + StyleNormal.Render(line))
			}
			b.WriteString("\n")
		}
	} else if !s.searching && strings.TrimSpace(s.input.Value()) != "" && s.err == nil {
		b.WriteString(StyleHelp.Render("No results."))
		b.WriteString("\n")
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(StyleSuccess.Render(s.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(RenderFooterBar([]ShortcutEntry{
		{Label: "type to search"},
		{Label: "↓ results"},
		{Label: "enter add"},
		{Label: "esc back"},
		{Label: "ctrl+c quit"},
	}, ""))
	return b.String()
}

func docLine(d openlibrary.Doc) string {
	var parts []string
	parts = append(parts, d.Title)
	if len(d.AuthorNames) > 0 {
		parts = append(parts, "by "+strings.Join(d.AuthorNames, ", "))
	}
	if d.FirstPublishYear != nil {
		parts = append(parts, fmt.Sprintf("(%d)", *d.FirstPublishYear))
	}
	return strings.Join(parts, " ")
}
