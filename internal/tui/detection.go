package tui

import (
	"github.com/blackwell-systems/booklog/internal/util"
	"github.com/spf13/cobra"
)

// ShouldUseTUI returns true if the command should use interactive TUI mode.
// TUI mode is enabled when:
// - stdout and stdin are TTYs (not piped or redirected)
// - --no-interactive flag is not set
// - No machine-readable output flags are set (indicates scripting intent)
func ShouldUseTUI(cmd *cobra.Command) bool {
	if !util.IsTTY() || !util.IsStdinTTY() {
		return false
	}

	if noInteractive, _ := cmd.Flags().GetBool("no-interactive"); noInteractive {
		return false
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return false
	}
	if format, _ := cmd.Flags().GetString("format"); format != "" {
		return false
	}

	return true
}
