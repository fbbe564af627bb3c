package cache_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/blackwell-systems/booklog/internal/cache"
	"github.com/blackwell-systems/booklog/internal/library"
)

// jpeg is enough of a JPEG header for content sniffing.
const jpeg = "\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00"

type fakeFetcher struct {
	calls int32
	body  string
	fail  map[string]bool
}

func (f *fakeFetcher) FetchCover(_ context.Context, id, _ string) (io.ReadCloser, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.fail[id] {
		return nil, errors.New("404")
	}
	return io.NopCloser(strings.NewReader(f.body)), nil
}

func TestCoverPath_Layout(t *testing.T) {
	m := cache.New("/base")
	cases := []struct{ size, want string }{
		{"M", "12345-M.jpg"},
		{"s", "12345-S.jpg"},
		{"L", "12345-L.jpg"},
		{"", "12345-M.jpg"},
		{"XL", "12345-M.jpg"},
	}
	for _, c := range cases {
		want := filepath.Join("/base", "covers", c.want)
		if got := m.CoverPath("12345", c.size); got != want {
			t.Errorf("CoverPath(%q) = %q, want %q", c.size, got, want)
		}
	}
}

func TestHasCover_False(t *testing.T) {
	m := cache.New("/no/such/base")
	if m.HasCover("1", "M") {
		t.Error("HasCover() should be false for missing file")
	}
}

func TestStoreCover_WritesImage(t *testing.T) {
	m := cache.New(t.TempDir())

	path, err := m.StoreCover("42", "M", strings.NewReader(jpeg))
	if err != nil {
		t.Fatalf("StoreCover: %v", err)
	}
	if path != m.CoverPath("42", "M") {
		t.Errorf("path = %q", path)
	}
	if !m.HasCover("42", "M") {
		t.Error("HasCover() false after successful StoreCover")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}

func TestStoreCover_RejectsNonImage(t *testing.T) {
	m := cache.New(t.TempDir())

	_, err := m.StoreCover("42", "M", strings.NewReader("<!DOCTYPE html><html><body>Not found</body></html>"))
	var nerr *cache.NotImageError
	if !errors.As(err, &nerr) {
		t.Fatalf("err = %v, want *NotImageError", err)
	}
	if m.HasCover("42", "M") {
		t.Error("non-image was cached")
	}
}

func TestRemoveCover(t *testing.T) {
	m := cache.New(t.TempDir())
	_, _ = m.StoreCover("7", "S", strings.NewReader(jpeg))

	if err := m.RemoveCover("7", "S"); err != nil {
		t.Fatalf("RemoveCover: %v", err)
	}
	if m.HasCover("7", "S") {
		t.Error("cover still present")
	}
	if err := m.RemoveCover("7", "S"); err != nil {
		t.Errorf("RemoveCover on missing file = %v, want nil", err)
	}
}

func TestFetchCover_UsesCache(t *testing.T) {
	m := cache.New(t.TempDir())
	f := &fakeFetcher{body: jpeg}

	for i := 0; i < 2; i++ {
		if _, err := m.FetchCover(context.Background(), f, "99", "M"); err != nil {
			t.Fatalf("FetchCover: %v", err)
		}
	}
	if f.calls != 1 {
		t.Errorf("fetcher called %d times, want 1", f.calls)
	}
}

func TestFetchAll_CountsOutcomes(t *testing.T) {
	m := cache.New(t.TempDir())
	_, _ = m.StoreCover("1", "M", strings.NewReader(jpeg))

	entries := []library.Entry{
		{ISBN: "a", Cover: "1"},
		{ISBN: "b", Cover: "2"},
		{ISBN: "c", Cover: "2"}, // same image, fetched once
		{ISBN: "d", Cover: "3"},
		{ISBN: "e"},
	}
	f := &fakeFetcher{body: jpeg, fail: map[string]bool{"3": true}}

	rep := m.FetchAll(context.Background(), f, entries, "M", 2)
	want := cache.FetchReport{Cached: 1, Downloaded: 1, Failed: 1}
	if rep != want {
		t.Errorf("report = %+v, want %+v", rep, want)
	}
	if f.calls != 2 {
		t.Errorf("fetcher called %d times, want 2", f.calls)
	}
}

func TestClearAndUsage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	m := cache.New(dir)
	_, _ = m.StoreCover("1", "M", strings.NewReader(jpeg))
	_, _ = m.StoreCover("2", "M", strings.NewReader(jpeg))

	files, size, err := m.Usage()
	if err != nil {
		t.Fatal(err)
	}
	if files != 2 || size != int64(2*len(jpeg)) {
		t.Errorf("Usage = %d files, %d bytes", files, size)
	}

	if err := m.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("cache dir still exists after Clear")
	}
	if files, _, err := m.Usage(); err != nil || files != 0 {
		t.Errorf("Usage after Clear = %d, %v", files, err)
	}
}

func TestGenerateHTMLIndex(t *testing.T) {
	m := cache.New(t.TempDir())
	_, _ = m.StoreCover("555", "M", strings.NewReader(jpeg))

	entries := []library.Entry{
		{ISBN: "1", Title: "Dune", Author: "Frank Herbert", Cover: "555", Status: "read"},
		{ISBN: "2", Title: "<script>alert(1)</script>", Status: "reading"},
		{ISBN: "3", Title: "Emma", Cover: "404", Status: "unread"},
	}
	path, err := m.GenerateHTMLIndex(entries, "M")
	if err != nil {
		t.Fatalf("GenerateHTMLIndex: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)

	if !strings.Contains(out, `src="covers/555-M.jpg"`) {
		t.Error("cached cover not referenced relative to index")
	}
	if strings.Contains(out, "404-M.jpg") {
		t.Error("uncached cover referenced")
	}
	if strings.Contains(out, "<script>alert(1)</script>") {
		t.Error("title not escaped")
	}
	if !strings.Contains(out, "3 books") {
		t.Error("book count missing")
	}
}

func TestStatusColor(t *testing.T) {
	if cache.StatusColor("read") == cache.StatusColor("reading") {
		t.Error("read and reading share a colour")
	}
	if cache.StatusColor("Read ") != cache.StatusColor("read") {
		t.Error("status colour is case sensitive")
	}
	if cache.StatusColor("unread") != cache.StatusColor("wishlist") {
		t.Error("non read/reading statuses should share the grey")
	}
}
