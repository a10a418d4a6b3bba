// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/jobboard-finder/internal/fetch"
	"gopkg.in/yaml.v3"
)

// Default file names and limits.
const (
	DefaultInput          = "input.csv"
	DefaultOutput         = "output_job_boards.csv"
	DefaultMode           = "merge"
	DefaultMissingURL     = "flag"
	DefaultLayout         = "detailed"
	DefaultTimeoutSeconds = 20
	DefaultDelayMillis    = 1000
)

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Paths
	Input       string `json:"input,omitempty" yaml:"input,omitempty"`               // Input CSV with companyName and applyUrl columns
	Output      string `json:"output,omitempty" yaml:"output,omitempty"`             // Output CSV path
	VendorsFile string `json:"vendors_file,omitempty" yaml:"vendors_file,omitempty"` // Optional JSON file with extra vendors

	// Behavior
	Mode       string `json:"mode,omitempty" yaml:"mode,omitempty" validate:"omitempty,oneof=merge direct"`            // merge: always fetch; direct: a direct match skips the fetch
	MissingURL string `json:"missing_url,omitempty" yaml:"missing_url,omitempty" validate:"omitempty,oneof=flag skip"` // flag: emit a no_apply_url row; skip: emit nothing
	Layout     string `json:"layout,omitempty" yaml:"layout,omitempty" validate:"omitempty,oneof=detailed board"`      // Output column layout
	SkipFrames bool   `json:"skip_frames,omitempty" yaml:"skip_frames,omitempty"`                                      // Scan iframe URLs without fetching their content

	// Request
	UserAgent string            `json:"user_agent,omitempty" yaml:"user_agent,omitempty" validate:"omitempty,printascii"`           // Overrides the browser user agent
	Headers   map[string]string `json:"headers,omitempty" yaml:"headers,omitempty" validate:"omitempty,dive,keys,required,endkeys"` // Extra request headers

	// Limits
	TimeoutSeconds int  `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"gte=0,lte=300"` // Per-request timeout
	DelayMillis    int  `json:"delay_ms,omitempty" yaml:"delay_ms,omitempty" validate:"gte=0,lte=60000"`             // Politeness delay between rows
	NoDelay        bool `json:"no_delay,omitempty" yaml:"no_delay,omitempty"`                                        // Disable the delay between rows

	// Output
	Verbose int  `json:"verbose,omitempty" yaml:"verbose,omitempty" validate:"gte=0"` // Log verbosity (0 warn, 1 info, 2 debug)
	LogJSON bool `json:"log_json,omitempty" yaml:"log_json,omitempty"`                // Emit logs as JSON
}

// Defaults returns the configuration used when neither a file nor flags set a value.
func Defaults() Config {
	return Config{
		Input:          DefaultInput,
		Output:         DefaultOutput,
		Mode:           DefaultMode,
		MissingURL:     DefaultMissingURL,
		Layout:         DefaultLayout,
		TimeoutSeconds: DefaultTimeoutSeconds,
		DelayMillis:    DefaultDelayMillis,
	}
}

// LoadConfig loads configuration from a JSON file, or a YAML file when the
// extension is .yaml or .yml. Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required inputs are checked later, after flags are merged.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Input != "" && c.Output != "" && filepath.Clean(c.Input) == filepath.Clean(c.Output) {
		return fmt.Errorf("config error: 'input' and 'output' must be different files")
	}

	if c.VendorsFile != "" {
		if _, err := os.Stat(c.VendorsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: vendors file not found: %s", c.VendorsFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Input == "" {
		result.Input = defaults.Input
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.VendorsFile == "" {
		result.VendorsFile = defaults.VendorsFile
	}
	if result.Mode == "" {
		result.Mode = defaults.Mode
	}
	if result.MissingURL == "" {
		result.MissingURL = defaults.MissingURL
	}
	if result.Layout == "" {
		result.Layout = defaults.Layout
	}
	if result.UserAgent == "" {
		result.UserAgent = defaults.UserAgent
	}
	if len(result.Headers) == 0 && len(defaults.Headers) > 0 {
		result.Headers = make(map[string]string, len(defaults.Headers))
		for k, v := range defaults.Headers {
			result.Headers[k] = v
		}
	}

	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.DelayMillis == 0 {
		result.DelayMillis = defaults.DelayMillis
	}
	if result.Verbose == 0 {
		result.Verbose = defaults.Verbose
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return fetch.DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Delay returns the pause between rows.
func (c *Config) Delay() time.Duration {
	if c.NoDelay {
		return 0
	}
	return time.Duration(c.DelayMillis) * time.Millisecond
}

// FetchOptions builds fetcher options from the configuration.
func (c *Config) FetchOptions() *fetch.Options {
	opts := fetch.DefaultOptions()
	opts.Timeout = c.Timeout()
	if c.UserAgent != "" {
		opts.UserAgent = c.UserAgent
	}
	for k, v := range c.Headers {
		opts.Headers[k] = v
	}
	return opts
}
