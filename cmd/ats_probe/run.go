package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-probe/internal/config"
	"github.com/jonathan/ats-probe/internal/generation"
	"github.com/jonathan/ats-probe/internal/pipeline"
	"github.com/jonathan/ats-probe/internal/schemas"
	"github.com/jonathan/ats-probe/internal/telemetry"
	"github.com/jonathan/ats-probe/internal/types"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the round-trip test suite against configured targets",
	Long: `Runs one pipeline unit per (target, layout) pair: generate -> render -> compile -> submit -> extract -> score -> report.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runSuiteCmd,
}

var (
	runConfigPath    string
	runTargetsDir    string
	runTarget        string
	runLayout        string
	runOutputDir     string
	runTelemetryFile string
	runDatabaseURL   string
	runBrowser       string
	runEnvironment   string
	runSeed          int64
	runConcurrency   int
	runUnitTimeout   int
	runFallback      bool
	runVerbose       bool
	runAPIKey        string
	runModel         string
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runTargetsDir, "targets", "t", "", "Directory of target descriptor JSON files")
	runCommand.Flags().StringVar(&runTarget, "target", "", "Run only the named target")
	runCommand.Flags().StringVarP(&runLayout, "layout", "l", "", "Run only one layout variant (tabular or itemized)")
	runCommand.Flags().StringVarP(&runOutputDir, "output", "o", "", "Working directory for compilation artifacts")
	runCommand.Flags().StringVar(&runTelemetryFile, "telemetry-file", "", "Write telemetry events to this JSONL file")
	runCommand.Flags().StringVar(&runBrowser, "browser", "", "Browser label stamped onto telemetry events")
	runCommand.Flags().StringVar(&runEnvironment, "environment", "", "Environment label stamped onto telemetry events")
	runCommand.Flags().Int64Var(&runSeed, "seed", 0, "Deterministic candidate generation seed")
	runCommand.Flags().IntVar(&runConcurrency, "concurrency", 0, "Concurrent test units")
	runCommand.Flags().IntVar(&runUnitTimeout, "unit-timeout", 0, "Per-unit overall timeout in seconds")
	runCommand.Flags().BoolVar(&runFallback, "fallback", false, "Skip pdflatex and use the structural fallback renderer")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key enabling LLM candidate generation (optional, defaults to GEMINI_API_KEY env var)")
	runCommand.Flags().StringVar(&runModel, "model", "", "Gemini model name")

	// Database URL for the Postgres telemetry sink
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL for telemetry (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runSuiteCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.TargetsDir == "" {
		return fmt.Errorf("no targets directory configured (use --targets or a config file)")
	}

	schemaPath := schemas.ResolveSchemaPath(schemas.DescriptorSchemaPath)
	if schemaPath == "" {
		return fmt.Errorf("descriptor schema not found: %s", schemas.DescriptorSchemaPath)
	}

	targets, err := schemas.LoadDescriptors(cfg.TargetsDir, schemaPath)
	if err != nil {
		return fmt.Errorf("failed to load target descriptors: %w", err)
	}

	if runTarget != "" {
		targets = filterTargets(targets, runTarget)
		if len(targets) == 0 {
			return fmt.Errorf("no descriptor named %q in %s", runTarget, cfg.TargetsDir)
		}
	}

	sink, err := buildSink(ctx, cfg)
	if err != nil {
		return err
	}
	emitter := telemetry.NewEmitter(sink, telemetry.DefaultQueueSize)

	opts := &pipeline.RunOptions{
		Seed:          cfg.Seed,
		Browser:       cfg.Browser,
		Environment:   cfg.Environment,
		WorkDir:       cfg.OutputDir,
		ForceFallback: cfg.ForceFallback,
		UnitTimeout:   time.Duration(cfg.UnitTimeoutSeconds) * time.Second,
		Concurrency:   cfg.Concurrency,
		Verbose:       cfg.Verbose,
		Emitter:       emitter,
	}

	if cfg.APIKey != "" {
		generator, err := generation.NewLLMGenerator(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM generator unavailable, using seeded synthesis: %v\n", err)
		} else {
			defer func() { _ = generator.Close() }()
			opts.Generator = generator.Generate
		}
	}

	var outcomes []*types.TestOutcome
	if runLayout != "" {
		variant, err := types.ParseVariant(runLayout)
		if err != nil {
			return err
		}
		outcomes, err = runSingleLayout(ctx, targets, variant, opts)
		if err != nil {
			return err
		}
	} else {
		outcomes, err = pipeline.RunSuite(ctx, targets, opts)
		if err != nil {
			return err
		}
	}

	failed := 0
	for _, outcome := range outcomes {
		if outcome == nil || !outcome.Success {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d units failed", failed, len(outcomes))
	}

	fmt.Printf("All %d units passed.\n", len(outcomes))
	return nil
}

// runSingleLayout drives each target through one variant only.
func runSingleLayout(ctx context.Context, targets []types.TargetDescriptor, variant types.Variant, opts *pipeline.RunOptions) ([]*types.TestOutcome, error) {
	printer := pipeline.NewPrinter(os.Stdout)
	outcomes := make([]*types.TestOutcome, 0, len(targets))
	for i := range targets {
		outcome := pipeline.RunUnit(ctx, &targets[i], variant, opts)
		outcomes = append(outcomes, outcome)
		if opts.Verbose {
			printer.PrintOutcome(outcome)
		}
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := opts.Emitter.Flush(flushCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: telemetry flush incomplete: %v\n", err)
	}
	return outcomes, nil
}

func filterTargets(targets []types.TargetDescriptor, name string) []types.TargetDescriptor {
	filtered := make([]types.TargetDescriptor, 0, 1)
	for _, target := range targets {
		if target.Name == name {
			filtered = append(filtered, target)
		}
	}
	return filtered
}

// buildSink picks the telemetry sink: Postgres when a database URL is
// configured, the JSONL file sink when a path is, otherwise the no-op sink.
func buildSink(ctx context.Context, cfg config.Config) (telemetry.Sink, error) {
	if cfg.DatabaseURL != "" {
		sink, err := telemetry.NewPostgresSink(ctx, cfg.DatabaseURL)
		if err != nil {
			// Telemetry must never block testing; degrade with a warning.
			fmt.Fprintf(os.Stderr, "Warning: telemetry database unavailable: %v\n", err)
		} else {
			return sink, nil
		}
	}
	if cfg.TelemetryFile != "" {
		return telemetry.NewFileSink(cfg.TelemetryFile)
	}
	return telemetry.NoopSink{}, nil
}

// loadMergedConfig loads the optional config file and applies CLI
// overrides; flags explicitly set always win.
func loadMergedConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	if cmd.Flags().Changed("targets") {
		cfg.TargetsDir = runTargetsDir
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputDir = runOutputDir
	}
	if cmd.Flags().Changed("telemetry-file") {
		cfg.TelemetryFile = runTelemetryFile
	}
	if cmd.Flags().Changed("browser") {
		cfg.Browser = runBrowser
	}
	if cmd.Flags().Changed("environment") {
		cfg.Environment = runEnvironment
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = runSeed
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = runConcurrency
	}
	if cmd.Flags().Changed("unit-timeout") {
		cfg.UnitTimeoutSeconds = runUnitTimeout
	}
	if cmd.Flags().Changed("fallback") {
		cfg.ForceFallback = runFallback
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = runModel
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}

	// Environment fallbacks for secrets
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	// Defaults for run identity labels
	merged := cfg.MergeWithDefaults(config.Config{
		Browser:     "chromium",
		Environment: "local",
		Seed:        42,
	})

	return merged, nil
}
