// Package main provides the entry point for the ATS round-trip probe CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ats_probe",
	Short: "ATS round-trip testing harness",
	Long:  "ats_probe synthesizes candidate CVs, compiles them to PDF, submits them to configured ATS targets through a headless browser, and scores how faithfully each target re-extracts the fields.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
