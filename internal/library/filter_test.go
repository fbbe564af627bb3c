package library_test

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/booklog/internal/library"
)

var sampleBooks = []library.Entry{
	{ISBN: "9780441013593", Title: "Dune", Author: "Frank Herbert", Status: "read", Cover: "11481354"},
	{ISBN: "/works/OL27448W", Title: "The Lord of the Rings", Author: "J.R.R. Tolkien", Status: "Reading"},
	{Title: "Untitled Draft", Author: "Anon", Status: "unread"},
}

func TestFilter_ByStatusCaseInsensitive(t *testing.T) {
	got := library.Filter{Status: "READING"}.Apply(sampleBooks)
	if len(got) != 1 || got[0].Title != "The Lord of the Rings" {
		t.Errorf("status filter: got %v", keys(got))
	}
}

func TestFilter_BySearch(t *testing.T) {
	cases := []struct {
		q    string
		want int
	}{
		{"dune", 1},
		{"tolkien", 1},
		{"OL27448W", 1},
		{"zzz", 0},
		{"", 3},
	}
	for _, c := range cases {
		got := library.Filter{Search: c.q}.Apply(sampleBooks)
		if len(got) != c.want {
			t.Errorf("Search %q: got %d results, want %d", c.q, len(got), c.want)
		}
	}
}

func TestFilter_MissingCover(t *testing.T) {
	got := library.Filter{MissingCover: true}.Apply(sampleBooks)
	if len(got) != 2 {
		t.Errorf("missing-cover filter: got %d, want 2", len(got))
	}
}

func TestByKey(t *testing.T) {
	if b := library.ByKey(sampleBooks, "Untitled Draft-Anon"); b == nil || b.Title != "Untitled Draft" {
		t.Errorf("ByKey composite key failed: %+v", b)
	}
	if b := library.ByKey(sampleBooks, "missing"); b != nil {
		t.Errorf("ByKey returned non-nil for missing key")
	}
}

func TestParse_EmptyAndNull(t *testing.T) {
	for _, in := range []string{"", "  ", "null", "[]"} {
		books, err := library.Parse([]byte(in))
		if err != nil {
			t.Errorf("Parse(%q): %v", in, err)
		}
		if len(books) != 0 {
			t.Errorf("Parse(%q) = %d books, want 0", in, len(books))
		}
	}
}

func TestMarshal_UsesSnapshotFieldNames(t *testing.T) {
	data, err := library.Marshal(sampleBooks[:1])
	if err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{`"isbn"`, `"cover_i":"11481354"`, `"status":"read"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("Marshal output missing %s: %s", field, data)
		}
	}
}

func TestMarshalYAML(t *testing.T) {
	data, err := library.MarshalYAML(sampleBooks)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "title: Dune") {
		t.Errorf("YAML export missing title: %s", data)
	}
}
