package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwehrli/swisscv/internal/config"
	"github.com/mwehrli/swisscv/internal/server"
)

var (
	serveConfigPath string
	servePort       int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for requirement extraction, resume analysis, generation, transformations, and job search.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Config{}
	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	cfg = cfg.MergeWithDefaults(config.FromEnv())
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or gemini_api_key config value is required")
	}
	if cfg.DatabaseURL == "" {
		fmt.Fprintln(os.Stderr, "Warning: no DATABASE_URL configured; generation attempts will not be logged")
	}

	srv, err := server.New(server.Config{
		Port:             cfg.Port,
		DatabaseURL:      cfg.DatabaseURL,
		GeminiAPIKey:     cfg.GeminiAPIKey,
		AdzunaAppID:      cfg.AdzunaAppID,
		AdzunaAppKey:     cfg.AdzunaAppKey,
		QualityThreshold: cfg.QualityThreshold,
		MaxIterations:    cfg.MaxIterations,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
