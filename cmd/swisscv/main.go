// Package main provides the entry point for the swisscv CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "swisscv",
	Short: "Swiss CV generator and job-match analyzer",
	Long:  "swisscv extracts structured requirements from job descriptions, scores resume content against them, and generates quality-gated CV content for the Swiss job market via CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
