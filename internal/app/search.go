package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blackwell-systems/booklog/internal/openlibrary"
	"github.com/blackwell-systems/booklog/internal/search"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newSearchCmd(a *App) *cobra.Command {
	var (
		asJSON bool
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the Open Library catalog",
		Example: `  booklog search dune
  booklog search "ursula le guin" --limit 5
  booklog search 9780441013593 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := search.NewSession(a.catalog).Search(cmd.Context(), strings.Join(args, " "))
			if res.Err != nil {
				return res.Err
			}
			docs := limitDocs(res.Response.Docs, limit)

			if asJSON {
				out := *res.Response
				out.Docs = docs
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			if len(docs) == 0 {
				fmt.Fprintln(a.out, "No results.")
				return nil
			}
			a.header("%d matches for %q", res.Response.NumFound, res.Ticket.Query)
			printDocs(a, docs)
			fmt.Fprintf(a.out, "\nAdd one with: %s\n", color.CyanString("booklog add %q --pick N", res.Ticket.Query))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw catalog response as JSON")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum results to show (0 = all)")
	return cmd
}

func limitDocs(docs []openlibrary.Doc, limit int) []openlibrary.Doc {
	if limit > 0 && len(docs) > limit {
		return docs[:limit]
	}
	return docs
}

func printDocs(a *App, docs []openlibrary.Doc) {
	for i, d := range docs {
		year := ""
		if d.FirstPublishYear != nil {
			year = fmt.Sprintf("%d", *d.FirstPublishYear)
		}
		fmt.Fprintf(a.out, "%s %s %s %s\n",
			color.YellowString("%3d", i+1),
			pad(d.Title, 40),
			color.HiBlackString(pad(strings.Join(d.AuthorNames, ", "), 28)),
			year,
		)
	}
}
