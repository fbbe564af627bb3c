package app

import (
	"context"

	"github.com/blackwell-systems/booklog/internal/enrich"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newEnrichCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "enrich",
		Short: "Look up missing covers on Open Library",
		Long: `Look up a cover for every book that has an ISBN but no cover.

Lookups run in parallel (enrich.concurrency in the config). A book whose
lookup fails or finds nothing is left unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEnrich(cmd.Context())
		},
	}
}

func (a *App) runEnrich(ctx context.Context) error {
	logger := log.With().Str("component", "enrich").Logger()
	e := &enrich.Enricher{
		Catalog:     a.catalog,
		Store:       a.store,
		Concurrency: a.cfg.Enrich.Concurrency,
		Logger:      &logger,
	}

	rep, err := e.Run(ctx)
	if rep.Candidates == 0 {
		a.ok("Every book with an ISBN already has a cover")
		return nil
	}
	a.ok("Found covers for %d of %s", rep.Enriched, plural(rep.Candidates, "book", "books"))
	if rep.Missing > 0 {
		a.warn("%s had no cover in the catalog", plural(rep.Missing, "book", "books"))
	}
	if rep.Failed > 0 {
		a.warn("%s could not be looked up (run with -v for details)", plural(rep.Failed, "book", "books"))
	}
	a.reportPersist(err)
	return nil
}
