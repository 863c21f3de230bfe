package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwehrli/swisscv/internal/llm"
	"github.com/mwehrli/swisscv/internal/observability"
	"github.com/mwehrli/swisscv/internal/requirements"
	"github.com/mwehrli/swisscv/internal/scoring"
	"github.com/mwehrli/swisscv/internal/types"
)

var (
	analyzeJobPath    string
	analyzeResumePath string
	analyzeLocale     string
	analyzeAPIKey     string
	analyzeVerbose    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against a job description",
	Long: `Extracts structured requirements from a job description and scores the
given resume content against them. Prints the relevance score as JSON; with
--verbose, also prints formatted requirement and analysis summaries.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeJobPath, "job", "j", "", "Path to job description text file (required)")
	analyzeCmd.Flags().StringVarP(&analyzeResumePath, "resume", "r", "", "Path to resume content JSON file (required)")
	analyzeCmd.Flags().StringVarP(&analyzeLocale, "locale", "l", "", "Extraction locale: en, fr, de, it (default: detect)")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print formatted requirement and analysis summaries")
	_ = analyzeCmd.MarkFlagRequired("job")
	_ = analyzeCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	jobText, err := os.ReadFile(analyzeJobPath)
	if err != nil {
		return fmt.Errorf("failed to read job file: %w", err)
	}

	resumeData, err := os.ReadFile(analyzeResumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}
	var resume types.ResumeContent
	if err := json.Unmarshal(resumeData, &resume); err != nil {
		return fmt.Errorf("failed to parse resume JSON: %w", err)
	}

	apiKey := analyzeAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

	reqs, _, err := requirements.Extract(ctx, client, string(jobText), analyzeLocale)
	if err != nil {
		return err
	}

	scorer := scoring.NewScorer(scoring.DefaultOptions())
	score, err := scorer.Score(&resume, reqs)
	if err != nil {
		return err
	}

	if analyzeVerbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintJobRequirements(reqs)
		printer.PrintScoreBreakdown(score)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(score)
}
