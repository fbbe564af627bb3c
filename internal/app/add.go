package app

import (
	"strings"

	"github.com/blackwell-systems/booklog/internal/search"
	"github.com/spf13/cobra"
)

func newAddCmd(a *App) *cobra.Command {
	var pick int

	cmd := &cobra.Command{
		Use:   "add <query>",
		Short: "Search the catalog and add a result to your library",
		Long: `Search the catalog and add one result to your library as unread.

The result is chosen with --pick (1-based, as numbered by 'booklog search').
A book already in the library is left untouched.`,
		Example: `  booklog add "the dispossessed"
  booklog add dune --pick 2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res := search.NewSession(a.catalog).Search(ctx, strings.Join(args, " "))
			if res.Err != nil {
				return res.Err
			}
			docs := res.Response.Docs
			if len(docs) == 0 {
				return a.fail("no catalog results for %q", res.Ticket.Query)
			}
			if pick < 1 || pick > len(docs) {
				return a.fail("--pick %d is out of range (1-%d)", pick, len(docs))
			}

			entry := docs[pick-1].ToEntry()
			added, err := a.store.Insert(ctx, entry)
			if added == 0 {
				a.warn("%q is already in your library", entry.Title)
				return nil
			}
			a.ok("Added %q by %s", entry.Title, orUnknown(entry.Author))
			a.reportPersist(err)
			return nil
		},
	}

	cmd.Flags().IntVarP(&pick, "pick", "p", 1, "Which search result to add (1-based)")
	return cmd
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown author"
	}
	return s
}
