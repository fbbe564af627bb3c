package app

import (
	"fmt"

	"github.com/blackwell-systems/booklog/internal/library"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newListCmd(a *App) *cobra.Command {
	var (
		status        string
		search        string
		missingCovers bool
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List books in your library",
		Example: `  booklog list
  booklog list --status reading
  booklog list --search tolkien
  booklog list --missing-covers --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := library.Filter{Status: status, Search: search, MissingCover: missingCovers}
			books := f.Apply(a.store.Books())

			if asJSON {
				data, err := library.Marshal(books)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.out, string(data))
				return err
			}

			if len(books) == 0 {
				if a.store.Len() == 0 {
					fmt.Fprintln(a.out, "Your library is empty. Try 'booklog add <title>' or 'booklog import <file>'.")
				} else {
					fmt.Fprintln(a.out, "No books match.")
				}
				return nil
			}

			for _, b := range books {
				cover := " "
				if b.HasCover() {
					cover = color.GreenString("▣")
				}
				fmt.Fprintf(a.out, "%s %s %s %s\n",
					cover,
					pad(b.Title, 40),
					color.HiBlackString(pad(b.Author, 28)),
					statusColor(b.Status),
				)
			}
			fmt.Fprintf(a.out, "\n%s of %d\n", plural(len(books), "book", "books"), a.store.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only books with this status (read, reading, unread, ...)")
	cmd.Flags().StringVar(&search, "search", "", "Only books whose title, author or ISBN contains this text")
	cmd.Flags().BoolVar(&missingCovers, "missing-covers", false, "Only books without a cover")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
