package app

import (
	"fmt"

	"github.com/blackwell-systems/booklog/internal/util"
	"github.com/spf13/cobra"
)

func newCoversCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "covers",
		Short: "Manage the local cover image cache",
	}
	cmd.AddCommand(newCoversFetchCmd(a), newCoversInfoCmd(a), newCoversClearCmd(a))
	return cmd
}

func newCoversFetchCmd(a *App) *cobra.Command {
	var size string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download cover images for books that have a cover",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if size == "" {
				size = a.cfg.Cache.CoverSize
			}
			rep := a.covers.FetchAll(cmd.Context(), a.catalog, a.store.Books(), size, a.cfg.Enrich.Concurrency)

			a.ok("%d downloaded, %d already cached", rep.Downloaded, rep.Cached)
			if rep.Failed > 0 {
				a.warn("%s failed (run with -v for details)", plural(rep.Failed, "cover", "covers"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&size, "size", "", "Cover size: S, M or L (default from config)")
	return cmd
}

func newCoversInfoCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cover cache location and size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, bytes, err := a.covers.Usage()
			if err != nil {
				return err
			}
			a.header("Cover cache")
			a.printField("Location", a.covers.Dir())
			a.printField("Covers", fmt.Sprintf("%d", files))
			a.printField("Size", util.HumanBytes(bytes))
			return nil
		},
	}
}

func newCoversClearCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every cached cover image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.covers.Clear(); err != nil {
				return err
			}
			a.ok("Cleared %s", a.covers.Dir())
			return nil
		},
	}
}
