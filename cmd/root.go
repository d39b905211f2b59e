// Package cmd defines the CLI commands for the champstats-crawler
// executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "champstats-crawler",
		Short: "Crawls the champion roster and per-champion stat pages of the wiki",
		Long: `champstats-crawler enumerates the champion roster from the wiki's listing
page, then visits every champion's stat page with a bounded number of
concurrent headless-browser tabs, extracts the stat schema at max level, and
writes the merged dataset plus a diagnostic trace archive to object storage.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional; env vars work without one)")
	cmd.AddCommand(newCrawlCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
