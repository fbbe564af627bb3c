package app

import (
	"github.com/blackwell-systems/booklog/internal/goodreads"
	"github.com/spf13/cobra"
)

func newImportCmd(a *App) *cobra.Command {
	var noEnrich bool

	cmd := &cobra.Command{
		Use:   "import <goodreads-export.csv>",
		Short: "Import a Goodreads library export",
		Long: `Import a Goodreads "Export Library" CSV.

Books already in your library are skipped, matched by ISBN (or title and
author when a row has no ISBN). After importing, covers are looked up on
Open Library for books that have an ISBN but no cover, unless --no-enrich
is set.`,
		Example: `  booklog import ~/Downloads/goodreads_library_export.csv
  booklog import export.csv --no-enrich`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res, err := goodreads.Import(ctx, args[0], a.store)
			if err != nil {
				return a.fail("import failed: %v", err)
			}

			a.ok("Imported %s (%s skipped as duplicates)",
				plural(res.Added, "book", "books"), plural(res.Skipped, "row", "rows"))
			a.reportPersist(res.PersistErr)

			if noEnrich || res.Added == 0 {
				return nil
			}
			return a.runEnrich(ctx)
		},
	}

	cmd.Flags().BoolVar(&noEnrich, "no-enrich", false, "Skip the cover lookup after importing")
	return cmd
}
