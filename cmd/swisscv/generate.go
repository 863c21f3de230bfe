package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwehrli/swisscv/internal/config"
	"github.com/mwehrli/swisscv/internal/db"
	"github.com/mwehrli/swisscv/internal/generation"
	"github.com/mwehrli/swisscv/internal/llm"
	"github.com/mwehrli/swisscv/internal/observability"
)

var (
	generateConfigPath string
	generateJobPath    string
	generateLocale     string
	generateUserID     string
	generateResumeID   string
	generateJobID      string
	generateThreshold  int
	generateIterations int
	generateAPIKey     string
	generateVerbose    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate tailored CV content for a job description",
	Long: `Runs the quality-gated generation workflow: extracts requirements from
the job description, generates resume content, scores it, and retries with gap
feedback until the quality threshold is met or the iteration budget is spent.
Prints the best attempt as JSON. With a DATABASE_URL and --user-id/--resume-id,
each attempt is recorded in the generation log.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateConfigPath, "config", "", "Path to config.json file")
	generateCmd.Flags().StringVarP(&generateJobPath, "job", "j", "", "Path to job description text file (required)")
	generateCmd.Flags().StringVarP(&generateLocale, "locale", "l", "", "Output locale: en, fr, de, it (default: detect)")
	generateCmd.Flags().StringVar(&generateUserID, "user-id", "", "User UUID for generation logging")
	generateCmd.Flags().StringVar(&generateResumeID, "resume-id", "", "Resume UUID for generation logging")
	generateCmd.Flags().StringVar(&generateJobID, "job-id", "", "External job ID for generation logging")
	generateCmd.Flags().IntVar(&generateThreshold, "quality-threshold", 0, "Minimum acceptable score (default 70)")
	generateCmd.Flags().IntVar(&generateIterations, "max-iterations", 0, "Generation retry budget (default 3)")
	generateCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print formatted analysis of the best attempt")
	_ = generateCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := config.Config{}
	if generateConfigPath != "" {
		loaded, err := config.LoadConfig(generateConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	if cmd.Flags().Changed("quality-threshold") {
		cfg.QualityThreshold = generateThreshold
	}
	if cmd.Flags().Changed("max-iterations") {
		cfg.MaxIterations = generateIterations
	}
	if cmd.Flags().Changed("api-key") {
		cfg.GeminiAPIKey = generateAPIKey
	}
	cfg = cfg.MergeWithDefaults(config.FromEnv())
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	jobText, err := os.ReadFile(generateJobPath)
	if err != nil {
		return fmt.Errorf("failed to read job file: %w", err)
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

	var attemptLogger generation.AttemptLogger
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
		attemptLogger = &db.AttemptLogger{DB: database}
	}

	workflow := generation.NewWorkflow(client, attemptLogger, generation.Config{
		QualityThreshold: cfg.QualityThreshold,
		MaxIterations:    cfg.MaxIterations,
	})

	result, err := workflow.GenerateWithRetry(ctx, generation.Params{
		JobDescription: string(jobText),
		Locale:         generateLocale,
		UserID:         generateUserID,
		ResumeID:       generateResumeID,
		JobID:          generateJobID,
	})
	if err != nil {
		return err
	}

	if generateVerbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintJobRequirements(result.Requirements)
		printer.PrintQualityAnalysis(result.Analysis)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
