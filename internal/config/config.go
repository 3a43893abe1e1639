// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	TargetsDir    string `json:"targets_dir,omitempty"`    // Directory of target descriptor JSON files
	OutputDir     string `json:"output_dir,omitempty"`     // Working directory for compilation artifacts
	TelemetryFile string `json:"telemetry_file,omitempty"` // JSONL telemetry sink path

	// Run identity (stamped onto telemetry events)
	Browser     string `json:"browser,omitempty"`     // Browser label, e.g. "chromium"
	Environment string `json:"environment,omitempty"` // Environment label, e.g. "local", "ci"

	// Behavior
	Seed               int64 `json:"seed,omitempty"`                 // Deterministic generation seed
	Concurrency        int   `json:"concurrency,omitempty"`          // Concurrent units
	UnitTimeoutSeconds int   `json:"unit_timeout_seconds,omitempty"` // Per-unit overall timeout
	ForceFallback      bool  `json:"force_fallback,omitempty"`       // Skip pdflatex, use the fallback renderer
	Verbose            bool  `json:"verbose,omitempty"`              // Print detailed debug information

	// External services
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL telemetry sink URL
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key (enables LLM generation)
	Model       string `json:"model,omitempty"`        // Gemini model name
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}
	if c.UnitTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'unit_timeout_seconds' must be non-negative")
	}

	if c.TargetsDir != "" {
		if info, err := os.Stat(c.TargetsDir); err != nil || !info.IsDir() {
			return fmt.Errorf("config error: targets directory not found: %s", c.TargetsDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.TargetsDir == "" {
		result.TargetsDir = defaults.TargetsDir
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.TelemetryFile == "" {
		result.TelemetryFile = defaults.TelemetryFile
	}
	if result.Browser == "" {
		result.Browser = defaults.Browser
	}
	if result.Environment == "" {
		result.Environment = defaults.Environment
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}

	// Numeric fields: use default if zero
	if result.Seed == 0 {
		result.Seed = defaults.Seed
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.UnitTimeoutSeconds == 0 {
		result.UnitTimeoutSeconds = defaults.UnitTimeoutSeconds
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
