// Package cli implements the debuglines commands.
package cli

import (
	"log/slog"
	"os"

	"github.com/gogpu/debuglines"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "debuglines",
	Short: "Debug line buffer tools",
	Long:  "Drives the debug line buffers headless: benchmark frame updates or render a scene to PNG.",

	SilenceUsage: true,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			debuglines.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(),
				&slog.HandlerOptions{Level: slog.LevelDebug})))
		} else {
			debuglines.SetLogger(nil)
		}
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $DEBUGLINES_CONFIG or built-in defaults)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log frame statistics to stderr")
}

func getConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return os.Getenv("DEBUGLINES_CONFIG")
}

// loadConfig returns the config file contents, or DefaultConfig when no
// file is set.
func loadConfig() (debuglines.Config, error) {
	path := getConfigPath()
	if path == "" {
		return debuglines.DefaultConfig(), nil
	}
	return debuglines.LoadConfig(path)
}
