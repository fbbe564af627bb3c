package app

import (
	"fmt"
	"os"

	"github.com/blackwell-systems/booklog/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newInitCmd(a *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write a config file with every setting at its default value.

The file goes to --config, $BOOKLOG_CONFIG, or ~/.config/booklog/config.yml.
Any setting can also be overridden with a BOOKLOG_ environment variable,
for example BOOKLOG_STORAGE_BACKEND=sqlite.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.flagConfig
			if path == "" {
				path = config.DefaultPath()
			}
			path = config.ExpandHome(path)

			if _, err := os.Stat(path); err == nil && !force {
				return a.fail("%s already exists (use --force to overwrite)", path)
			}

			if err := config.Save(config.Default(), path); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			a.ok("Wrote %s", path)
			fmt.Fprintf(a.out, "Next: %s\n", color.CyanString("booklog search <title>"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
