// Package cli implements the forgeledger command-line interface using Cobra.
// Each subcommand maps to a ledger capability (award, checkin, badges, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "forgeledger",
	Short: "forgeledger — Track learning progress locally",
	Long: `forgeledger is a local-first progress ledger for learners.
It keeps XP, levels, badges, achievements, and a daily streak in a
single SQLite file and serves them to dashboards over a REST API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
