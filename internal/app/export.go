package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/blackwell-systems/booklog/internal/goodreads"
	"github.com/blackwell-systems/booklog/internal/library"
	"github.com/blackwell-systems/booklog/internal/util"
	"github.com/spf13/cobra"
)

// Export formats.
const (
	formatCSV  = "csv"
	formatJSON = "json"
	formatYAML = "yaml"
)

func newExportCmd(a *App) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export your library",
		Long: `Export the whole library.

csv writes Goodreads-compatible columns, so the file can be imported back
into booklog or Goodreads. json is the same format booklog stores.`,
		Example: `  booklog export --format csv -o books.csv
  booklog export --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			write, err := exporter(format, a.store.Books())
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				return write(a.out)
			}
			if err := util.WriteFileAtomic(output, write); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			a.ok("Exported %s to %s", plural(a.store.Len(), "book", "books"), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatCSV, "Output format: csv, json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

func exporter(format string, books []library.Entry) (func(io.Writer) error, error) {
	switch strings.ToLower(format) {
	case formatCSV:
		return func(w io.Writer) error { return goodreads.Write(w, books) }, nil
	case formatJSON:
		return encoded(library.Marshal, books), nil
	case formatYAML, "yml":
		return encoded(library.MarshalYAML, books), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want csv, json or yaml)", format)
	}
}

func encoded(marshal func([]library.Entry) ([]byte, error), books []library.Entry) func(io.Writer) error {
	return func(w io.Writer) error {
		data, err := marshal(books)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
		_, err = io.WriteString(w, "\n")
		return err
	}
}
