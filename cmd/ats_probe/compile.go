package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-probe/internal/compilation"
	"github.com/jonathan/ats-probe/internal/generation"
	"github.com/jonathan/ats-probe/internal/rendering"
	"github.com/jonathan/ats-probe/internal/types"
)

var compileCommand = &cobra.Command{
	Use:   "compile",
	Short: "Render and compile one synthesized CV to a PDF file",
	Long:  "Generates a seeded candidate record, renders it in the chosen layout, compiles it (pdflatex with structural fallback), and writes the PDF to the output path.",
	RunE:  compileCmd,
}

var (
	compileSeed     int64
	compileLayout   string
	compileOut      string
	compileFallback bool
	compileVerbose  bool
)

func init() {
	compileCommand.Flags().Int64Var(&compileSeed, "seed", 42, "Deterministic candidate generation seed")
	compileCommand.Flags().StringVarP(&compileLayout, "layout", "l", string(types.VariantItemized), "Layout variant (tabular or itemized)")
	compileCommand.Flags().StringVarP(&compileOut, "out", "o", "cv.pdf", "Output PDF path")
	compileCommand.Flags().BoolVar(&compileFallback, "fallback", false, "Skip pdflatex and use the structural fallback renderer")
	compileCommand.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "Print the compilation log")

	rootCmd.AddCommand(compileCommand)
}

func compileCmd(_ *cobra.Command, _ []string) error {
	variant, err := types.ParseVariant(compileLayout)
	if err != nil {
		return err
	}

	record := generation.Generate(compileSeed)
	markup, err := rendering.RenderLaTeX(record, variant)
	if err != nil {
		return fmt.Errorf("rendering failed: %w", err)
	}

	doc, err := compilation.Compile(context.Background(), markup, "cv-"+string(variant), compilation.Options{
		ForceFallback: compileFallback,
	})
	if err != nil {
		return fmt.Errorf("invalid markup: %w", err)
	}

	if compileVerbose && doc.Log != "" {
		fmt.Fprintln(os.Stderr, doc.Log)
	}
	if !doc.Success {
		return fmt.Errorf("both compilation paths failed:\n%s", doc.Log)
	}

	if err := os.WriteFile(compileOut, doc.PDF, 0644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	fmt.Printf("Wrote %s (%d bytes, engine=%s)\n", compileOut, len(doc.PDF), doc.Engine)
	return nil
}
