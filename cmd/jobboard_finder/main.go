// Package main provides the entry point for the job board finder CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobboard_finder",
	Short: "Find the job board behind each company's application page",
	Long: `Reads a CSV of (companyName, applyUrl) rows, fetches each application page,
scans it and its iframes for known job board vendors (BambooHR, Greenhouse,
Lever, Workday, ...) and writes one annotated output row per input row.

Without a subcommand it runs find with its default flags.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runFind(cmd.Context(), findCommand, cmd.OutOrStdout())
	},
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
