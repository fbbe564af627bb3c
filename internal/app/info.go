package app

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newInfoCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "info <isbn | title-author>",
		Short: "Show everything stored for one book",
		Long: `Show one book by its identity key: the ISBN, or "<title>-<author>" for
books without one. 'booklog list --json' shows the keys.`,
		Example: `  booklog info 9780441013593
  booklog info "Beowulf-"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, ok := a.store.Get(args[0])
			if !ok {
				return a.fail("no book with key %q", args[0])
			}

			a.header("%s", e.Title)
			a.printField("Author", orUnknown(e.Author))
			a.printField("ISBN", dash(e.ISBN))
			a.printField("Status", statusColor(e.Status))
			a.printField("Published", dash(e.Published))
			a.printField("Rating", dash(e.Rating))
			a.printField("Added", dash(e.DateAdded))
			a.printField("Read", dash(e.DateRead))

			if !e.HasCover() {
				a.printField("Cover", color.HiBlackString("none"))
			} else {
				size := a.cfg.Cache.CoverSize
				a.printField("Cover", a.catalog.CoverURL(e.Cover.String(), size))
				if a.covers.HasCover(e.Cover.String(), size) {
					a.printField("Cached", a.covers.CoverPath(e.Cover.String(), size))
				}
			}
			if e.Review != "" {
				a.printField("Review", e.Review)
			}
			return nil
		},
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
