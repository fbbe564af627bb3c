package openlibrary_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/blackwell-systems/booklog/internal/openlibrary"
)

const duneResponse = `{
  "numFound": 2,
  "start": 0,
  "numFoundExact": true,
  "docs": [
    {"key": "/works/OL893415W", "title": "Dune", "author_name": ["Frank Herbert"], "cover_i": 11481354, "first_publish_year": 1965, "publisher": ["Chilton Books"]},
    {"key": "/works/OL1W", "title": "Dune Messiah"}
  ]
}`

func newServer(t *testing.T, hits *int32, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.URL.Path != "/search.json" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("request missing User-Agent")
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSearch_EmptyQueryNoNetwork(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits, http.StatusOK, duneResponse)
	c := openlibrary.NewClient(openlibrary.Options{BaseURL: srv.URL})

	for _, q := range []string{"", "   "} {
		resp, err := c.Search(context.Background(), q)
		if err != nil {
			t.Fatalf("Search(%q): %v", q, err)
		}
		if resp.NumFound != 0 || len(resp.Docs) != 0 {
			t.Errorf("Search(%q) = %+v, want zero results", q, resp)
		}
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Errorf("empty query issued %d requests, want 0", hits)
	}
}

func TestSearch_DecodesDocs(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits, http.StatusOK, duneResponse)
	c := openlibrary.NewClient(openlibrary.Options{BaseURL: srv.URL})

	resp, err := c.Search(context.Background(), "dune")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.NumFound != 2 || len(resp.Docs) != 2 {
		t.Fatalf("got numFound=%d docs=%d, want 2/2", resp.NumFound, len(resp.Docs))
	}
	d := resp.Docs[0]
	if d.Key != "/works/OL893415W" || d.CoverID == nil || *d.CoverID != 11481354 {
		t.Errorf("doc[0] = %+v", d)
	}
	if resp.Docs[1].CoverID != nil {
		t.Error("doc[1] should have no cover id")
	}
}

func TestSearch_EscapesQuery(t *testing.T) {
	seen := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.URL.Query().Get("q")
		_, _ = io.WriteString(w, `{"numFound":0,"docs":[]}`)
	}))
	defer srv.Close()

	c := openlibrary.NewClient(openlibrary.Options{BaseURL: srv.URL})
	if _, err := c.Search(context.Background(), "lord of the rings & more"); err != nil {
		t.Fatal(err)
	}
	if got := <-seen; got != "lord of the rings & more" {
		t.Errorf("server saw q=%q", got)
	}
}

func TestSearch_NonSuccessIsNetworkError(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits, http.StatusServiceUnavailable, "down")
	c := openlibrary.NewClient(openlibrary.Options{BaseURL: srv.URL})

	_, err := c.Search(context.Background(), "dune")
	var nerr *openlibrary.NetworkError
	if !errors.As(err, &nerr) {
		t.Fatalf("err = %v, want *NetworkError", err)
	}
	if nerr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d", nerr.StatusCode)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("client retried: %d requests, want 1", hits)
	}
}

func TestSearch_TransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := openlibrary.NewClient(openlibrary.Options{BaseURL: base, Timeout: time.Second})
	_, err := c.Search(context.Background(), "dune")
	var nerr *openlibrary.NetworkError
	if !errors.As(err, &nerr) {
		t.Fatalf("err = %v, want *NetworkError", err)
	}
	if nerr.StatusCode != 0 {
		t.Errorf("transport failure should have StatusCode 0, got %d", nerr.StatusCode)
	}
}

func TestSearch_CachesSuccessfulResponses(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits, http.StatusOK, duneResponse)
	c := openlibrary.NewClient(openlibrary.Options{BaseURL: srv.URL, CacheTTL: time.Minute})

	for i := 0; i < 3; i++ {
		if _, err := c.Search(context.Background(), "dune"); err != nil {
			t.Fatal(err)
		}
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("cached query hit server %d times, want 1", hits)
	}
}

func TestSearch_FailuresNotCached(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits, http.StatusInternalServerError, "")
	c := openlibrary.NewClient(openlibrary.Options{BaseURL: srv.URL, CacheTTL: time.Minute})

	_, _ = c.Search(context.Background(), "dune")
	_, _ = c.Search(context.Background(), "dune")
	if atomic.LoadInt32(&hits) != 2 {
		t.Errorf("failed query hit server %d times, want 2", hits)
	}
}

func TestFetchCover(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/b/id/42-M.jpg" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, "jpegdata")
	}))
	defer srv.Close()

	c := openlibrary.NewClient(openlibrary.Options{CoversURL: srv.URL})
	rc, err := c.FetchCover(context.Background(), "42", "m")
	if err != nil {
		t.Fatalf("FetchCover: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "jpegdata" {
		t.Errorf("cover body = %q", data)
	}

	if _, err := c.FetchCover(context.Background(), "missing", "M"); err == nil {
		t.Error("expected error for missing cover")
	}
}

func TestCoverURL(t *testing.T) {
	cases := []struct{ id, size, want string }{
		{"42", "M", "https://covers.openlibrary.org/b/id/42-M.jpg"},
		{"42", "l", "https://covers.openlibrary.org/b/id/42-L.jpg"},
		{"42", "", "https://covers.openlibrary.org/b/id/42-M.jpg"},
		{"42", "XL", "https://covers.openlibrary.org/b/id/42-M.jpg"},
	}
	for _, c := range cases {
		if got := openlibrary.CoverURL(c.id, c.size); got != c.want {
			t.Errorf("CoverURL(%q, %q) = %q, want %q", c.id, c.size, got, c.want)
		}
	}
}

func TestDocToEntry(t *testing.T) {
	cover, year := 11481354, 1965
	d := openlibrary.Doc{
		Key:              "/works/OL893415W",
		Title:            "Dune",
		AuthorNames:      []string{"Frank Herbert", "Someone Else"},
		CoverID:          &cover,
		FirstPublishYear: &year,
	}
	e := d.ToEntry()
	if e.ISBN != d.Key || e.Title != "Dune" || e.Author != "Frank Herbert, Someone Else" {
		t.Errorf("ToEntry = %+v", e)
	}
	if e.Cover != "11481354" || e.Published != "1965" || e.Status != "unread" {
		t.Errorf("ToEntry optional fields = %+v", e)
	}

	bare := openlibrary.Doc{Key: "/works/OL1W", Title: "Bare"}.ToEntry()
	if bare.Cover != "" || bare.Published != "" || bare.Author != "" {
		t.Errorf("bare ToEntry should leave optional fields empty: %+v", bare)
	}
}
