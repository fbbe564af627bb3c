package cache

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/booklog/internal/library"
)

func TestNormalizeSize(t *testing.T) {
	cases := map[string]string{"s": "S", "M": "M", "l": "L", "": "M", "x": "M"}
	for in, want := range cases {
		if got := normalizeSize(in); got != want {
			t.Errorf("normalizeSize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStatusLabel_DefaultsToUnread(t *testing.T) {
	if got := statusLabel(library.Entry{}); got != library.StatusUnread {
		t.Errorf("statusLabel(empty) = %q", got)
	}
	if got := statusLabel(library.Entry{Status: " Reading"}); got != "reading" {
		t.Errorf("statusLabel = %q", got)
	}
}

func TestBookMeta(t *testing.T) {
	got := bookMeta(library.Entry{Published: "1965", ISBN: "123", Rating: "4"})
	for _, want := range []string{"1965", "123", "4★"} {
		if !strings.Contains(got, want) {
			t.Errorf("bookMeta = %q, missing %q", got, want)
		}
	}
	if got := bookMeta(library.Entry{Rating: "0"}); got != "" {
		t.Errorf("zero rating should be hidden, got %q", got)
	}
}

func TestGenerateHTML_StatusFilters(t *testing.T) {
	out := generateHTML([]IndexBook{
		{Entry: library.Entry{Title: "A", Status: "read"}},
		{Entry: library.Entry{Title: "B", Status: "read"}},
		{Entry: library.Entry{Title: "C"}},
	})
	if !strings.Contains(out, `data-status="read">read (2)`) {
		t.Error("read filter count missing")
	}
	if !strings.Contains(out, `data-status="unread">unread (1)`) {
		t.Error("unread filter count missing")
	}
	if strings.Count(out, `class="book-card"`) != 3 {
		t.Error("expected 3 cards")
	}
	if !strings.Contains(out, "no-cover") {
		t.Error("placeholder class missing for entries without cover")
	}
}
