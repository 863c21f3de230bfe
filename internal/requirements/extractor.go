// Package requirements extracts structured job requirements from free-text
// job descriptions using LLM extraction with strict output validation.
package requirements

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mwehrli/swisscv/internal/llm"
	"github.com/mwehrli/swisscv/internal/locale"
	"github.com/mwehrli/swisscv/internal/prompts"
	"github.com/mwehrli/swisscv/internal/types"
)

const (
	// MinDescriptionLength is the minimum job description length (in
	// characters) accepted for extraction.
	MinDescriptionLength = 50

	// insufficientDescriptionMinLength and insufficientItemsMinCount gate
	// whether a description is rich enough to drive CV generation.
	insufficientDescriptionMinLength = 100
	insufficientItemsMinCount        = 3

	extractionTemperature = 0.3
	extractionMaxTokens   = 1500
)

// Extract converts a job description into structured requirements.
// The locale selects the language the requirements are extracted in; unknown
// locales fall back to English. Token usage from the underlying call is
// returned so callers can surface it for billing.
//
// An empty result (no requirements found in any category) is valid, not an
// error. Malformed model output yields an ExtractionError, never a partial
// result.
func Extract(ctx context.Context, client llm.Client, jobDescription, loc string) (*types.JobRequirements, *llm.Usage, error) {
	trimmed := strings.TrimSpace(jobDescription)
	if trimmed == "" {
		return nil, nil, &InvalidInputError{Field: "jobDescription", Message: "job description is empty"}
	}
	if len(trimmed) < MinDescriptionLength {
		return nil, nil, &InvalidInputError{
			Field:   "jobDescription",
			Message: "job description too short for extraction",
		}
	}

	prompt := buildExtractionPrompt(trimmed, locale.Normalize(loc))

	result, err := client.Generate(ctx, prompt, llm.GenerateOptions{
		Tier:        llm.TierBalanced,
		Temperature: extractionTemperature,
		MaxTokens:   extractionMaxTokens,
		JSON:        true,
	})
	if err != nil {
		return nil, nil, &ExtractionError{Message: "generation call failed", Cause: err}
	}

	reqs, err := parseResponse(result.Text)
	if err != nil {
		return nil, &result.Usage, &ExtractionError{Message: "could not decode model output", Cause: err}
	}

	return reqs, &result.Usage, nil
}

// buildExtractionPrompt constructs the prompt for structured extraction.
func buildExtractionPrompt(jobText, loc string) string {
	template := prompts.MustGet("requirements.json", "extract-job-requirements")
	return prompts.Format(template, map[string]string{
		"TargetLanguage": locale.LanguageName(loc),
		"JobDescription": jobText,
	})
}

// parseResponse decodes model output into JobRequirements. The output must
// pass schema validation before it is unmarshalled; blank and duplicate
// entries are dropped afterwards.
func parseResponse(text string) (*types.JobRequirements, error) {
	cleaned := llm.CleanJSONBlock(text)
	if cleaned == "" {
		return nil, &ParseError{Message: "empty response"}
	}

	raw := []byte(cleaned)
	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	var reqs types.JobRequirements
	if err := json.Unmarshal(raw, &reqs); err != nil {
		return nil, &ParseError{Message: "failed to unmarshal requirements JSON", Cause: err}
	}

	reqs.Skills = sanitizeList(reqs.Skills)
	reqs.Responsibilities = sanitizeList(reqs.Responsibilities)
	reqs.Qualifications = sanitizeList(reqs.Qualifications)
	reqs.NiceToHaves = sanitizeList(reqs.NiceToHaves)

	return &reqs, nil
}

// sanitizeList trims entries, drops blanks, and removes duplicates by
// case-insensitive comparison while preserving order.
func sanitizeList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool)
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

// IsDescriptionInsufficient reports whether a job description is too short or
// too vague to drive quality CV generation: under 100 characters of raw text,
// or fewer than 3 extractable items across all categories.
func IsDescriptionInsufficient(jobDescription string, reqs *types.JobRequirements) bool {
	if len(strings.TrimSpace(jobDescription)) < insufficientDescriptionMinLength {
		return true
	}
	if reqs == nil || reqs.Total() < insufficientItemsMinCount {
		return true
	}
	return false
}
