package tui

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/booklog/internal/library"
	"github.com/charmbracelet/lipgloss"
)

func (m BrowserModel) renderDetailsPane() string {
	bookItem, ok := m.list.SelectedItem().(BookItem)
	if !ok {
		return ""
	}
	e := bookItem.Entry

	detailsWidth := ((m.width - 2) * 4) / 10
	if detailsWidth < 30 {
		detailsWidth = 30
	}
	const labelWidth = 11 // "Published: "
	maxTextWidth := detailsWidth - 2 - labelWidth
	if maxTextWidth < 10 {
		maxTextWidth = 10
	}

	var s strings.Builder

	if img := InlineCover(bookItem.CoverPath, DetectImageProtocol()); img != "" {
		s.WriteString(img)
		s.WriteString("\n\n")
	}

	s.WriteString(StyleHeader.Render("Book Details"))
	s.WriteString("\n\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		s.WriteString(StyleHighlight.Render(label + ": "))
		s.WriteString(truncateText(value, maxTextWidth))
		s.WriteString("\n")
	}
	field("Title", e.Title)
	field("Author", e.Author)
	field("Published", e.Published)
	field("ISBN", e.ISBN)

	status := displayStatus(e)
	s.WriteString(StyleHighlight.Render("Status: "))
	s.WriteString(StatusStyle(status).Render(status))
	s.WriteString("\n")

	if e.Rating != "" && e.Rating != "0" {
		field("Rating", e.Rating+"/5")
	}
	field("Read", e.DateRead)
	field("Added", e.DateAdded)
	if e.HasCover() {
		cover := e.Cover.String()
		if bookItem.CoverPath != "" {
			cover += " (cached)"
		}
		field("Cover", cover)
	}
	if e.Review != "" {
		s.WriteString("\n")
		s.WriteString(lipgloss.NewStyle().Width(detailsWidth - 2).Render(e.Review))
		s.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(detailsWidth).Padding(0, 1).Render(s.String())
}

func (m BrowserModel) renderFooter() string {
	return RenderFooterBar([]ShortcutEntry{
		{Label: "↑/↓ navigate"},
		{Key: "/", Label: "/ filter"},
		{Key: "enter", Label: "enter details"},
		{Key: "a", Label: "a add"},
		{Label: "q quit"},
	}, m.activeCmd)
}

func (m BrowserModel) View() string {
	if m.quitting {
		return ""
	}

	outerStyle := lipgloss.NewStyle().Padding(2, 4)
	masterStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorTeal)

	innerWidth := 60
	if m.width > 0 && m.height > 0 {
		innerWidth = max(m.width-4*2-2, 60)
		innerHeight := max(m.height-2*2-2, 10)
		masterStyle = masterStyle.Width(innerWidth).Height(innerHeight)
	}

	var main string
	switch {
	case m.screen == screenSearch:
		main = m.search.View()
	case len(m.list.Items()) == 0:
		main = StyleHelp.Render("Your library is empty. Press a to search the catalog, or run `booklog import <file.csv>`.")
	case m.showDetails:
		listView := lipgloss.NewStyle().
			BorderRight(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorTeal).
			Render(m.list.View())
		main = lipgloss.JoinHorizontal(lipgloss.Top, listView, m.renderDetailsPane())
	default:
		main = m.list.View()
	}

	if m.screen == screenSearch {
		return outerStyle.Render(masterStyle.Render(main))
	}

	divider := lipgloss.NewStyle().
		Foreground(ColorTeal).
		Render(strings.Repeat("─", max(innerWidth, 40)))
	content := lipgloss.JoinVertical(lipgloss.Left, main, divider, m.renderFooter())
	return outerStyle.Render(masterStyle.Render(content))
}

// libraryTitle summarises the collection for the list header.
func libraryTitle(books []library.Entry) string {
	counts := map[string]int{}
	for _, b := range books {
		counts[displayStatus(b)]++
	}
	read, reading := counts[library.StatusRead], counts[library.StatusReading]
	return fmt.Sprintf("Library · %d read · %d reading · %d to read",
		read, reading, len(books)-read-reading)
}
