package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-probe/internal/generation"
)

var generateCommand = &cobra.Command{
	Use:   "generate",
	Short: "Print a synthesized candidate record as JSON",
	RunE:  generateCmd,
}

var (
	generateSeed   int64
	generateAPIKey string
	generateModel  string
)

func init() {
	generateCommand.Flags().Int64Var(&generateSeed, "seed", 42, "Deterministic candidate generation seed")
	generateCommand.Flags().StringVar(&generateAPIKey, "api-key", "", "Gemini API Key enabling LLM generation (optional, defaults to GEMINI_API_KEY env var)")
	generateCommand.Flags().StringVar(&generateModel, "model", "", "Gemini model name")

	rootCmd.AddCommand(generateCommand)
}

func generateCmd(_ *cobra.Command, _ []string) error {
	apiKey := generateAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	result := &generation.Result{Record: generation.Generate(generateSeed)}
	if apiKey != "" {
		ctx := context.Background()
		generator, err := generation.NewLLMGenerator(ctx, apiKey, generateModel)
		if err != nil {
			return fmt.Errorf("failed to create LLM generator: %w", err)
		}
		defer func() { _ = generator.Close() }()

		result, err = generator.Generate(ctx)
		if err != nil {
			return fmt.Errorf("LLM generation failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Generated with %s (%d tokens)\n", result.Model, result.TokensUsed)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result.Record)
}
