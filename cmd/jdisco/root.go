package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"jdisco/internal/slogutil"
	"jdisco/internal/version"
)

var (
	verboseFlag int
	quietFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "jdisco",
	Short: "jdisco - Java/JSF codebase discovery and classification",
	Long: `jdisco scans a Java/JSF source tree and produces an inventory of its
architectural surface: JPA entities, business components and controllers,
JSF pages, and database configuration, plus a heuristic business-rule
analysis of the business-layer classes.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("jdisco version {{.Version}}\n")
	rootCmd.PersistentFlags().CountVarP(&verboseFlag, "verbose", "v", "Increase log verbosity (-v for debug)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Only log errors")
}

// newLogger builds the command logger from the persistent verbosity flags.
func newLogger() *slog.Logger {
	return slogutil.NewLogger(os.Stderr, slogutil.LevelFromVerbosity(verboseFlag, quietFlag))
}
