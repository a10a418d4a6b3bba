package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jonathan/jobboard-finder/internal/config"
	"github.com/jonathan/jobboard-finder/internal/observability"
	"github.com/jonathan/jobboard-finder/internal/types"
	"github.com/spf13/cobra"
)

var detectCommand = &cobra.Command{
	Use:   "detect",
	Short: "Detect the job board behind a single application URL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Defaults()
		cfg.Mode = detectMode
		cfg.VendorsFile = detectVendorsFile
		cfg.SkipFrames = detectSkipFrames
		cfg.Verbose = detectVerbose
		if err := cfg.Validate(); err != nil {
			return err
		}

		_, err := executeDetect(cmd.Context(), cfg, detectCompany, detectURL, cmd.OutOrStdout())
		return err
	},
}

var (
	detectURL         string
	detectCompany     string
	detectMode        string
	detectVendorsFile string
	detectSkipFrames  bool
	detectVerbose     int
)

func init() {
	detectCommand.Flags().StringVarP(&detectURL, "url", "u", "", "Application URL to inspect")
	detectCommand.Flags().StringVarP(&detectCompany, "company", "c", "", "Company name shown in the result")
	detectCommand.Flags().StringVar(&detectMode, "mode", config.DefaultMode, "merge: always fetch the page; direct: a job board URL skips the fetch")
	detectCommand.Flags().StringVar(&detectVendorsFile, "vendors-file", "", "JSON file with additional job board vendors")
	detectCommand.Flags().BoolVar(&detectSkipFrames, "skip-frames", false, "Scan iframe URLs without fetching their content")
	detectCommand.Flags().CountVarP(&detectVerbose, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")

	_ = detectCommand.MarkFlagRequired("url")

	rootCmd.AddCommand(detectCommand)
}

// executeDetect processes one row and prints the result to out.
func executeDetect(ctx context.Context, cfg config.Config, company, rawURL string, out io.Writer) (types.OutputRow, error) {
	reg, err := loadRegistry(cfg.VendorsFile)
	if err != nil {
		return types.OutputRow{}, err
	}

	logger, err := observability.NewLogger(cfg.Verbose, cfg.LogJSON)
	if err != nil {
		return types.OutputRow{}, err
	}
	defer func() { _ = logger.Sync() }()

	row, _ := newPipeline(cfg, reg, logger).ProcessRow(ctx, types.InputRow{Company: company, ApplyURL: rawURL})
	if err := ctx.Err(); err != nil {
		return types.OutputRow{}, fmt.Errorf("detection canceled: %w", err)
	}

	observability.NewPrinter(out).PrintRow(row)
	return row, nil
}
