package app

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/booklog/internal/library"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"
)

// statusColor renders a status the same way the TUI and HTML index do:
// green for read, blue for reading, grey otherwise.
func statusColor(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	if s == "" {
		s = library.StatusUnread
	}
	switch s {
	case library.StatusRead:
		return color.GreenString(s)
	case library.StatusReading:
		return color.BlueString(s)
	default:
		return color.HiBlackString(s)
	}
}

func truncate(s string, n int) string {
	if n <= 1 && xansi.StringWidth(s) > n {
		return "…"
	}
	return xansi.Truncate(s, n, "…")
}

func pad(s string, n int) string {
	s = truncate(s, n)
	if w := xansi.StringWidth(s); w < n {
		s += strings.Repeat(" ", n-w)
	}
	return s
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
