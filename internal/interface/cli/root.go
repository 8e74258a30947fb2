package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mhaile/hh/internal/core/config"
	"github.com/mhaile/hh/internal/core/logger"
)

var (
	cfg         *config.Config
	dataDir     string
	debugLog    bool
	versionInfo string
)

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hh",
	Short: "Contextual shell history",
	Long: `hh - timeline, directory, and session aware shell history

Every shell writes its commands into its own private store, tagged with the
directory they ran in. Queries merge all stores into one view you can filter
by directory, recency, text, or fuzzy similarity.

Run with no arguments to ingest your shell history and show commands for the
current directory.`,
	RunE: runRecord,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Override session store directory")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Enable debug logging")

	cobra.OnInitialize(func() {
		cfg = config.Load()
		if dataDir != "" {
			cfg.DataDir = dataDir
		}
		logger.SetDebug(debugLog)
		if err := logger.Init(cfg.LogPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	})
}
