package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/jobboard-finder/internal/config"
	"github.com/jonathan/jobboard-finder/internal/observability"
	"github.com/jonathan/jobboard-finder/internal/table"
	"github.com/jonathan/jobboard-finder/internal/types"
	"github.com/spf13/cobra"
)

var findCommand = &cobra.Command{
	Use:   "find",
	Short: "Detect the job board for every row of an input CSV",
	Long: `Reads companyName/applyUrl rows from the input CSV and writes one result row per
input row (or none, with --missing-url skip) to the output CSV, in input order.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	Args: cobra.NoArgs,
	RunE: runFindCmd,
}

var (
	findConfigPath  string
	findInput       string
	findOutput      string
	findVendorsFile string
	findMode        string
	findMissingURL  string
	findLayout      string
	findSkipFrames  bool
	findUserAgent   string
	findTimeout     int
	findDelayMillis int
	findNoDelay     bool
	findVerbose     int
	findLogJSON     bool
)

func init() {
	// Config file flag (processed first)
	findCommand.Flags().StringVar(&findConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	findCommand.Flags().StringVarP(&findInput, "in", "i", config.DefaultInput, "Input CSV with companyName and applyUrl columns")
	findCommand.Flags().StringVarP(&findOutput, "out", "o", config.DefaultOutput, "Output CSV path")
	findCommand.Flags().StringVar(&findVendorsFile, "vendors-file", "", "JSON file with additional job board vendors")
	findCommand.Flags().StringVar(&findMode, "mode", config.DefaultMode, "merge: always fetch the page; direct: a job board URL skips the fetch")
	findCommand.Flags().StringVar(&findMissingURL, "missing-url", config.DefaultMissingURL, "flag: write a no_apply_url row; skip: write nothing")
	findCommand.Flags().StringVar(&findLayout, "layout", config.DefaultLayout, "Output columns: detailed or board")
	findCommand.Flags().BoolVar(&findSkipFrames, "skip-frames", false, "Scan iframe URLs without fetching their content")
	findCommand.Flags().StringVar(&findUserAgent, "user-agent", "", "Override the browser User-Agent header")
	findCommand.Flags().IntVar(&findTimeout, "timeout", config.DefaultTimeoutSeconds, "Per-request timeout in seconds")
	findCommand.Flags().IntVar(&findDelayMillis, "delay-ms", config.DefaultDelayMillis, "Pause between rows in milliseconds")
	findCommand.Flags().BoolVar(&findNoDelay, "no-delay", false, "Disable the pause between rows")
	findCommand.Flags().CountVarP(&findVerbose, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	findCommand.Flags().BoolVar(&findLogJSON, "log-json", false, "Emit logs as JSON")

	rootCmd.AddCommand(findCommand)
}

func runFindCmd(cmd *cobra.Command, _ []string) error {
	return runFind(cmd.Context(), cmd, cmd.OutOrStdout())
}

// runFind resolves the find configuration from cmd's flags and runs it until
// done or interrupted.
func runFind(ctx context.Context, cmd *cobra.Command, out io.Writer) error {
	cfg, err := resolveFindConfig(cmd)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = executeFind(ctx, cfg, out)
	return err
}

// resolveFindConfig layers defaults, the optional config file and explicitly set flags.
func resolveFindConfig(cmd *cobra.Command) (config.Config, error) {
	// Step 1: Load config file if provided
	var cfg config.Config
	if findConfigPath != "" {
		loadedCfg, err := config.LoadConfig(findConfigPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	flags := cmd.Flags()
	if flags.Changed("in") {
		cfg.Input = findInput
	}
	if flags.Changed("out") {
		cfg.Output = findOutput
	}
	if flags.Changed("vendors-file") {
		cfg.VendorsFile = findVendorsFile
	}
	if flags.Changed("mode") {
		cfg.Mode = findMode
	}
	if flags.Changed("missing-url") {
		cfg.MissingURL = findMissingURL
	}
	if flags.Changed("layout") {
		cfg.Layout = findLayout
	}
	if flags.Changed("skip-frames") {
		cfg.SkipFrames = findSkipFrames
	}
	if flags.Changed("user-agent") {
		cfg.UserAgent = findUserAgent
	}
	if flags.Changed("timeout") {
		cfg.TimeoutSeconds = findTimeout
	}
	if flags.Changed("delay-ms") {
		cfg.DelayMillis = findDelayMillis
		// Zero would be replaced by the default below.
		if findDelayMillis == 0 {
			cfg.NoDelay = true
		}
	}
	if flags.Changed("no-delay") {
		cfg.NoDelay = findNoDelay
	}
	if flags.Changed("verbose") {
		cfg.Verbose = findVerbose
	}
	if flags.Changed("log-json") {
		cfg.LogJSON = findLogJSON
	}

	// Step 3: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Defaults())

	// Step 4: Validate
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// executeFind runs the finder over cfg.Input and prints a summary to out.
// Rows already written stay in the output when the run stops early.
func executeFind(ctx context.Context, cfg config.Config, out io.Writer) (*types.Summary, error) {
	reg, err := loadRegistry(cfg.VendorsFile)
	if err != nil {
		return nil, err
	}

	layout, err := table.ParseLayout(cfg.Layout)
	if err != nil {
		return nil, err
	}

	logger, err := observability.NewLogger(cfg.Verbose, cfg.LogJSON)
	if err != nil {
		return nil, err
	}
	defer func() { _ = logger.Sync() }()

	src, err := table.Open(cfg.Input)
	if err != nil {
		var missing *table.MissingInputError
		if errors.As(err, &missing) {
			logger.Errorw("input table not found", "path", missing.Path)
		}
		return nil, err
	}
	defer func() { _ = src.Close() }()

	sink, err := table.Create(cfg.Output, layout)
	if err != nil {
		return nil, err
	}

	logger.Infow("starting run",
		"input", cfg.Input,
		"output", cfg.Output,
		"mode", cfg.Mode,
		"vendors", reg.Len(),
	)

	summary, runErr := newPipeline(cfg, reg, logger).Run(ctx, src, sink)
	if err := sink.Close(); err != nil && runErr == nil {
		runErr = err
	}

	observability.NewPrinter(out).PrintSummary(summary, cfg.Output)
	if runErr != nil {
		return summary, fmt.Errorf("run stopped after %d rows: %w", summary.RowsRead, runErr)
	}
	return summary, nil
}
