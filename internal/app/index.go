package app

import (
	"github.com/spf13/cobra"
)

func newIndexCmd(a *App) *cobra.Command {
	var fetch bool

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Generate a browsable HTML page of your library",
		Long: `Write index.html into the cover cache directory.

The page shows every book with its cached cover and can be filtered by
status and searched in the browser. Use --fetch to download missing covers
first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			size := a.cfg.Cache.CoverSize
			books := a.store.Books()

			if fetch {
				rep := a.covers.FetchAll(cmd.Context(), a.catalog, books, size, a.cfg.Enrich.Concurrency)
				if rep.Failed > 0 {
					a.warn("%s could not be downloaded", plural(rep.Failed, "cover", "covers"))
				}
			}

			path, err := a.covers.GenerateHTMLIndex(books, size)
			if err != nil {
				return err
			}
			a.ok("Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&fetch, "fetch", false, "Download missing covers before generating")
	return cmd
}
