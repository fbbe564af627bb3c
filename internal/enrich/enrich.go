// Package enrich backfills missing cover ids from the catalog.
package enrich

import (
	"context"
	"strconv"

	"github.com/blackwell-systems/booklog/internal/library"
	"github.com/blackwell-systems/booklog/internal/openlibrary"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds in-flight catalog lookups when none is set.
const DefaultConcurrency = 4

// Searcher is the catalog lookup used per entry.
type Searcher interface {
	Search(ctx context.Context, query string) (*openlibrary.SearchResponse, error)
}

// Store is the part of the library store enrichment reads and writes.
type Store interface {
	Books() []library.Entry
	Merge(ctx context.Context, entries ...library.Entry) (int, error)
}

// Report counts the outcome of a run.
type Report struct {
	Candidates int // entries without a cover that have an isbn
	Enriched   int
	Missing    int // lookup succeeded but no cover was found
	Failed     int // lookup failed or was cancelled
}

// Enricher looks up covers for entries that lack one.
type Enricher struct {
	Catalog     Searcher
	Store       Store
	Concurrency int
	Logger      *zerolog.Logger
}

type outcome int

const (
	outcomeMissing outcome = iota
	outcomeEnriched
	outcomeFailed
)

// Run snapshots the library, issues one search per candidate entry, and
// submits the covers it found to Store.Merge in one batch. Merge only fills
// empty fields, so edits made while lookups were in flight are kept.
// Per-entry failures are logged and counted; they never abort the run. The
// returned error is the Merge persistence error, if any.
func (e *Enricher) Run(ctx context.Context) (Report, error) {
	logger := e.logger()
	books := e.Store.Books()

	var candidates []int
	for i, b := range books {
		if !b.HasCover() && b.ISBN != "" {
			candidates = append(candidates, i)
		}
	}
	rep := Report{Candidates: len(candidates)}
	if len(candidates) == 0 {
		return rep, nil
	}

	limit := e.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	// Each goroutine owns its own slot, so results need no locking.
	results := make([]outcome, len(candidates))
	found := make([]library.Entry, len(candidates))
	var g errgroup.Group
	g.SetLimit(limit)
	for n, idx := range candidates {
		if ctx.Err() != nil {
			for ; n < len(candidates); n++ {
				results[n] = outcomeFailed
			}
			break
		}
		n, idx := n, idx
		g.Go(func() error {
			cover, err := e.lookup(ctx, books[idx].ISBN)
			switch {
			case err != nil:
				logger.Warn().Err(err).Str("isbn", books[idx].ISBN).Msg("cover lookup failed")
				results[n] = outcomeFailed
			case cover == "":
				logger.Debug().Str("isbn", books[idx].ISBN).Msg("no cover in catalog")
				results[n] = outcomeMissing
			default:
				found[n] = library.Entry{ISBN: books[idx].ISBN, Cover: cover}
				results[n] = outcomeEnriched
			}
			return nil
		})
	}
	_ = g.Wait()

	var updates []library.Entry
	for n, r := range results {
		switch r {
		case outcomeEnriched:
			rep.Enriched++
			updates = append(updates, found[n])
		case outcomeMissing:
			rep.Missing++
		default:
			rep.Failed++
		}
	}

	logger.Info().
		Int("candidates", rep.Candidates).
		Int("enriched", rep.Enriched).
		Int("missing", rep.Missing).
		Int("failed", rep.Failed).
		Msg("cover enrichment finished")

	if rep.Enriched == 0 {
		return rep, nil
	}
	// Merge keeps its own context so a cancelled run still saves what it found.
	_, err := e.Store.Merge(context.WithoutCancel(ctx), updates...)
	return rep, err
}

// lookup returns the first hit's cover id, or "" if there is none.
func (e *Enricher) lookup(ctx context.Context, isbn string) (library.CoverID, error) {
	resp, err := e.Catalog.Search(ctx, isbn)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Docs) == 0 || resp.Docs[0].CoverID == nil {
		return "", nil
	}
	return library.CoverID(strconv.Itoa(*resp.Docs[0].CoverID)), nil
}

func (e *Enricher) logger() *zerolog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	l := log.With().Str("component", "enrich").Logger()
	return &l
}
