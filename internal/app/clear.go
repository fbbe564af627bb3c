package app

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newClearCmd(a *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every book from your library",
		Long: `Remove every book from your library.

You are asked to type "clear" to confirm unless --yes is given. Cached cover
images are kept; use 'booklog covers clear' to remove them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n := a.store.Len()
			// An unreadable snapshot loads as an empty library but its slot
			// still exists and must be removable.
			unreadable := n == 0 && a.store.Err() != nil
			if n == 0 && !unreadable && !yes {
				fmt.Fprintln(a.out, "Your library is already empty.")
				return nil
			}

			if !yes {
				what := plural(n, "book", "books")
				if unreadable {
					what = "the unreadable library data"
				}
				fmt.Fprintf(a.out, "This removes %s. Type 'clear' to confirm: ", what)
				line, _ := bufio.NewReader(a.in).ReadString('\n')
				if strings.TrimSpace(line) != "clear" {
					return a.fail("cancelled, nothing was removed")
				}
			}

			err := a.store.Clear(cmd.Context())
			a.ok("Removed %s", plural(n, "book", "books"))
			a.reportPersist(err)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
