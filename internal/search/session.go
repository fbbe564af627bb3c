// Package search guards interactive catalog searches against superseded
// queries: when the user types faster than the catalog answers, only the
// response for the most recent query is ever shown.
package search

import (
	"context"
	"strings"
	"sync"

	"github.com/blackwell-systems/booklog/internal/openlibrary"
)

// Searcher is the catalog operation a session drives.
type Searcher interface {
	Search(ctx context.Context, query string) (*openlibrary.SearchResponse, error)
}

// Ticket identifies one issued search.
type Ticket struct {
	Gen   uint64
	Query string
}

// Result is the outcome of running a ticket.
type Result struct {
	Ticket   Ticket
	Response *openlibrary.SearchResponse
	Err      error
}

// Session hands out tickets and keeps the last applied result.
// It is safe for concurrent use.
type Session struct {
	catalog Searcher

	mu      sync.Mutex
	gen     uint64
	current Result
	applied bool
}

// NewSession creates a session over catalog.
func NewSession(catalog Searcher) *Session {
	return &Session{catalog: catalog}
}

// Begin issues a new ticket. Every ticket issued before it becomes stale.
func (s *Session) Begin(query string) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return Ticket{Gen: s.gen, Query: strings.TrimSpace(query)}
}

// Run performs the search for t. It does not touch session state, so it can
// run on any goroutine (typically inside a tea.Cmd).
func (s *Session) Run(ctx context.Context, t Ticket) Result {
	resp, err := s.catalog.Search(ctx, t.Query)
	return Result{Ticket: t, Response: resp, Err: err}
}

// Apply records r as the current result if its ticket is still the latest
// one issued. Stale results are dropped and Apply returns false.
func (s *Session) Apply(r Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.Ticket.Gen != s.gen {
		return false
	}
	s.current = r
	s.applied = true
	return true
}

// Current returns the last applied result. ok is false before the first
// Apply.
func (s *Session) Current() (r Result, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.applied
}

// Stale reports whether t has been superseded.
func (s *Session) Stale(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t.Gen != s.gen
}

// Search is the one-shot form: begin, run and apply.
func (s *Session) Search(ctx context.Context, query string) Result {
	t := s.Begin(query)
	r := s.Run(ctx, t)
	s.Apply(r)
	return r
}
