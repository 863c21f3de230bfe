// Package transform provides the LLM-backed text transformations: summary
// rewriting, achievement bullet generation, translation, description
// optimization, and full resume generation/adaptation. Every operation
// reports the tokens it consumed so callers can surface usage.
package transform

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/mwehrli/swisscv/internal/llm"
	"github.com/mwehrli/swisscv/internal/types"
)

// SummaryInput describes a raw summary to rewrite.
type SummaryInput struct {
	RawSummary        string   `json:"rawSummary" validate:"required"`
	CurrentRole       string   `json:"currentRole,omitempty"`
	YearsOfExperience int      `json:"yearsOfExperience,omitempty"`
	TopSkills         []string `json:"topSkills,omitempty"`
	Locale            string   `json:"locale,omitempty"`
}

// SummaryResult is the rewritten summary.
type SummaryResult struct {
	TransformedSummary string `json:"transformedSummary"`
	WordCount          int    `json:"wordCount"`
	TokensUsed         int32  `json:"tokensUsed"`
}

// Summary rewrites a raw summary into a professional, ATS-optimized one.
func Summary(ctx context.Context, client llm.Client, input SummaryInput) (*SummaryResult, error) {
	if strings.TrimSpace(input.RawSummary) == "" {
		return nil, &InvalidInputError{Field: "rawSummary", Message: "summary text is empty"}
	}

	result, err := client.Generate(ctx, buildSummaryPrompt(input), llm.GenerateOptions{
		Tier:        llm.TierBalanced,
		Temperature: 0.7,
		MaxTokens:   300,
	})
	if err != nil {
		return nil, &APICallError{Message: "failed to transform summary", Cause: err}
	}

	text := strings.TrimSpace(result.Text)
	return &SummaryResult{
		TransformedSummary: text,
		WordCount:          len(strings.Fields(text)),
		TokensUsed:         result.Usage.TotalTokens,
	}, nil
}

// ExperienceInput describes a job experience to turn into achievement bullets.
type ExperienceInput struct {
	Position     string   `json:"position" validate:"required"`
	Company      string   `json:"company" validate:"required"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
	Locale       string   `json:"locale,omitempty"`
}

// ExperienceResult holds the generated achievement bullets.
type ExperienceResult struct {
	Achievements []string `json:"transformedAchievements"`
	Count        int      `json:"count"`
	TokensUsed   int32    `json:"tokensUsed"`
}

// Experience generates 3-5 achievement bullets for a work experience entry.
func Experience(ctx context.Context, client llm.Client, input ExperienceInput) (*ExperienceResult, error) {
	if input.Position == "" || input.Company == "" {
		return nil, &InvalidInputError{Field: "position/company", Message: "position and company are required"}
	}

	result, err := client.Generate(ctx, buildExperiencePrompt(input), llm.GenerateOptions{
		Tier:        llm.TierBalanced,
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		return nil, &APICallError{Message: "failed to transform experience", Cause: err}
	}

	achievements := parseBullets(result.Text)
	return &ExperienceResult{
		Achievements: achievements,
		Count:        len(achievements),
		TokensUsed:   result.Usage.TotalTokens,
	}, nil
}

// parseBullets splits model output into clean bullet lines, stripping leading
// bullet characters.
func parseBullets(text string) []string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	bullets := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "•-* \t")
		if line != "" {
			bullets = append(bullets, line)
		}
	}
	return bullets
}

// TranslateInput describes a summary to translate.
type TranslateInput struct {
	Summary      string `json:"summary" validate:"required"`
	TargetLocale string `json:"targetLanguage" validate:"required,oneof=en fr de it"`
	SourceLocale string `json:"sourceLanguage,omitempty"`
}

// TranslateResult is the translated summary.
type TranslateResult struct {
	TranslatedSummary string `json:"translatedSummary"`
	TargetLocale      string `json:"targetLanguage"`
	TokensUsed        int32  `json:"tokensUsed"`
}

// TranslateSummary translates a summary into one of the supported languages.
// Lower temperature keeps translations close to the source.
func TranslateSummary(ctx context.Context, client llm.Client, input TranslateInput) (*TranslateResult, error) {
	if strings.TrimSpace(input.Summary) == "" {
		return nil, &InvalidInputError{Field: "summary", Message: "summary text is empty"}
	}

	result, err := client.Generate(ctx, buildTranslationPrompt(input), llm.GenerateOptions{
		Tier:        llm.TierFast,
		Temperature: 0.3,
		MaxTokens:   400,
	})
	if err != nil {
		return nil, &APICallError{Message: "failed to translate summary", Cause: err}
	}

	return &TranslateResult{
		TranslatedSummary: strings.TrimSpace(result.Text),
		TargetLocale:      input.TargetLocale,
		TokensUsed:        result.Usage.TotalTokens,
	}, nil
}

// OptimizeInput describes free text to make more professional and concise.
type OptimizeInput struct {
	Text    string `json:"text" validate:"required"`
	Context string `json:"context,omitempty"`
	Locale  string `json:"locale,omitempty"`
}

// OptimizeResult is the optimized text.
type OptimizeResult struct {
	OptimizedText string `json:"optimizedText"`
	TokensUsed    int32  `json:"tokensUsed"`
}

// OptimizeDescription rewrites a description to be more professional and
// impactful while preserving its structure and language.
func OptimizeDescription(ctx context.Context, client llm.Client, input OptimizeInput) (*OptimizeResult, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, &InvalidInputError{Field: "text", Message: "text is empty"}
	}

	result, err := client.Generate(ctx, buildOptimizePrompt(input), llm.GenerateOptions{
		Tier:        llm.TierBalanced,
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		return nil, &APICallError{Message: "failed to optimize description", Cause: err}
	}

	return &OptimizeResult{
		OptimizedText: strings.TrimSpace(result.Text),
		TokensUsed:    result.Usage.TotalTokens,
	}, nil
}

// ResumeFromJobInput describes a resume generation request. GapPrompt carries
// the missing-item section added on retry iterations.
type ResumeFromJobInput struct {
	JobDescription string `json:"jobDescription" validate:"required"`
	Locale         string `json:"locale,omitempty"`
	GapPrompt      string `json:"-"`
}

// ResumeFromJobResult is the generated resume content.
type ResumeFromJobResult struct {
	Content    *types.GeneratedContent `json:"resumeData"`
	TokensUsed int32                   `json:"tokensUsed"`
}

// ResumeFromJobDescription generates tailored resume content for a job
// description. The model output is decoded strictly; malformed JSON is a
// ParseError, never a partial result.
func ResumeFromJobDescription(ctx context.Context, client llm.Client, input ResumeFromJobInput) (*ResumeFromJobResult, error) {
	if strings.TrimSpace(input.JobDescription) == "" {
		return nil, &InvalidInputError{Field: "jobDescription", Message: "job description is empty"}
	}

	result, err := client.Generate(ctx, buildResumePrompt(input), llm.GenerateOptions{
		Tier:        llm.TierQuality,
		Temperature: 0.7,
		MaxTokens:   2000,
		JSON:        true,
	})
	if err != nil {
		return nil, &APICallError{Message: "failed to generate resume content", Cause: err}
	}

	var content types.GeneratedContent
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(result.Text)), &content); err != nil {
		return nil, &ParseError{Message: "failed to parse generated resume JSON", Cause: err}
	}

	return &ResumeFromJobResult{
		Content:    &content,
		TokensUsed: result.Usage.TotalTokens,
	}, nil
}

// AdaptationPatches are the targeted edits proposed for an existing resume.
type AdaptationPatches struct {
	Summary               string   `json:"summary,omitempty"`
	ExperienceDescription string   `json:"experienceDescription,omitempty"`
	SkillsToAdd           []string `json:"skillsToAdd,omitempty"`
	SkillsToEnhance       []string `json:"skillsToEnhance,omitempty"`
}

// AdaptationAnalysis summarizes how the current resume fits the target job.
type AdaptationAnalysis struct {
	MatchScore int      `json:"matchScore"`
	KeyGaps    []string `json:"keyGaps"`
	Strengths  []string `json:"strengths"`
}

// AdaptationPatch is the full adaptation proposal for one job.
type AdaptationPatch struct {
	JobTitle       string             `json:"jobTitle"`
	Company        string             `json:"company"`
	JobDescription string             `json:"jobDescription"`
	CreatedAt      time.Time          `json:"createdAt"`
	Locale         string             `json:"locale"`
	Patches        AdaptationPatches  `json:"patches"`
	Analysis       AdaptationAnalysis `json:"analysis"`
}

// AdaptInput describes a resume adaptation request.
type AdaptInput struct {
	Resume         *types.ResumeContent `json:"resume" validate:"required"`
	JobDescription string               `json:"jobDescription" validate:"required"`
	JobTitle       string               `json:"jobTitle" validate:"required"`
	Company        string               `json:"company" validate:"required"`
	Locale         string               `json:"locale,omitempty"`
}

// AdaptResult is the adaptation proposal plus usage.
type AdaptResult struct {
	Patch      *AdaptationPatch `json:"patch"`
	TokensUsed int32            `json:"tokensUsed"`
}

// AdaptResume proposes targeted patches that align an existing resume with a
// specific job description.
func AdaptResume(ctx context.Context, client llm.Client, input AdaptInput) (*AdaptResult, error) {
	if input.Resume == nil || input.Resume.IsEmpty() {
		return nil, &InvalidInputError{Field: "resume", Message: "resume content is empty"}
	}
	if strings.TrimSpace(input.JobDescription) == "" {
		return nil, &InvalidInputError{Field: "jobDescription", Message: "job description is empty"}
	}

	result, err := client.Generate(ctx, buildAdaptPrompt(input), llm.GenerateOptions{
		Tier:        llm.TierQuality,
		Temperature: 0.7,
		MaxTokens:   2000,
		JSON:        true,
	})
	if err != nil {
		return nil, &APICallError{Message: "failed to adapt resume", Cause: err}
	}

	var decoded struct {
		Patches  AdaptationPatches  `json:"patches"`
		Analysis AdaptationAnalysis `json:"analysis"`
	}
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(result.Text)), &decoded); err != nil {
		return nil, &ParseError{Message: "failed to parse adaptation JSON", Cause: err}
	}

	if decoded.Analysis.KeyGaps == nil {
		decoded.Analysis.KeyGaps = []string{}
	}
	if decoded.Analysis.Strengths == nil {
		decoded.Analysis.Strengths = []string{}
	}

	return &AdaptResult{
		Patch: &AdaptationPatch{
			JobTitle:       input.JobTitle,
			Company:        input.Company,
			JobDescription: input.JobDescription,
			CreatedAt:      time.Now().UTC(),
			Locale:         input.Locale,
			Patches:        decoded.Patches,
			Analysis:       decoded.Analysis,
		},
		TokensUsed: result.Usage.TotalTokens,
	}, nil
}
