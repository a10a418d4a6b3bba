package main

import (
	"github.com/jonathan/jobboard-finder/internal/observability"
	"github.com/spf13/cobra"
)

var vendorsCommand = &cobra.Command{
	Use:   "vendors",
	Short: "List the job board vendors that will be recognized",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg, err := loadRegistry(vendorsFile)
		if err != nil {
			return err
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintVendors(reg)
		return nil
	},
}

var vendorsFile string

func init() {
	vendorsCommand.Flags().StringVar(&vendorsFile, "vendors-file", "", "JSON file with additional job board vendors")

	rootCmd.AddCommand(vendorsCommand)
}
