package transform

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwehrli/swisscv/internal/llm"
	"github.com/mwehrli/swisscv/internal/types"
)

// fakeClient returns a canned response and records the last request.
type fakeClient struct {
	text       string
	err        error
	lastPrompt string
	lastOpts   llm.GenerateOptions
}

func (f *fakeClient) Generate(_ context.Context, prompt string, opts llm.GenerateOptions) (*llm.Result, error) {
	f.lastPrompt = prompt
	f.lastOpts = opts
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Result{Text: f.text, Usage: llm.Usage{PromptTokens: 10, OutputTokens: 20, TotalTokens: 30}}, nil
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }

func (f *fakeClient) Close() error { return nil }

func TestSummary(t *testing.T) {
	client := &fakeClient{text: "  Seasoned platform engineer with 8 years building cloud systems.  "}

	result, err := Summary(context.Background(), client, SummaryInput{
		RawSummary:  "i do software",
		CurrentRole: "Platform Engineer",
		TopSkills:   []string{"Go", "Kubernetes"},
		Locale:      "en",
	})

	require.NoError(t, err)
	assert.Equal(t, "Seasoned platform engineer with 8 years building cloud systems.", result.TransformedSummary)
	assert.Equal(t, 9, result.WordCount)
	assert.Equal(t, int32(30), result.TokensUsed)
	assert.Equal(t, llm.TierBalanced, client.lastOpts.Tier)
	assert.Contains(t, client.lastPrompt, "i do software")
}

func TestSummaryEmptyInput(t *testing.T) {
	client := &fakeClient{text: "irrelevant"}

	_, err := Summary(context.Background(), client, SummaryInput{RawSummary: "   "})

	var invalidErr *InvalidInputError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, "rawSummary", invalidErr.Field)
}

func TestSummaryAPIFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("quota exceeded")}

	_, err := Summary(context.Background(), client, SummaryInput{RawSummary: "built stuff"})

	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestExperienceParsesBullets(t *testing.T) {
	client := &fakeClient{text: "• Led migration of 40 services to Kubernetes\n- Reduced deploy time by 60%\n* Mentored 4 junior engineers\n\n"}

	result, err := Experience(context.Background(), client, ExperienceInput{
		Position: "Staff Engineer",
		Company:  "Acme AG",
	})

	require.NoError(t, err)
	require.Equal(t, 3, result.Count)
	assert.Equal(t, "Led migration of 40 services to Kubernetes", result.Achievements[0])
	assert.Equal(t, "Reduced deploy time by 60%", result.Achievements[1])
	assert.Equal(t, "Mentored 4 junior engineers", result.Achievements[2])
}

func TestExperienceRequiresPositionAndCompany(t *testing.T) {
	client := &fakeClient{text: "bullet"}

	_, err := Experience(context.Background(), client, ExperienceInput{Position: "Engineer"})

	var invalidErr *InvalidInputError
	assert.ErrorAs(t, err, &invalidErr)
}

func TestTranslateSummary(t *testing.T) {
	client := &fakeClient{text: "Ingénieur logiciel expérimenté."}

	result, err := TranslateSummary(context.Background(), client, TranslateInput{
		Summary:      "Experienced software engineer.",
		TargetLocale: "fr",
	})

	require.NoError(t, err)
	assert.Equal(t, "Ingénieur logiciel expérimenté.", result.TranslatedSummary)
	assert.Equal(t, "fr", result.TargetLocale)
	assert.Equal(t, llm.TierFast, client.lastOpts.Tier)
	assert.InDelta(t, 0.3, float64(client.lastOpts.Temperature), 0.001)
}

func TestOptimizeDescription(t *testing.T) {
	client := &fakeClient{text: "Engineered a resilient payment pipeline processing 2M transactions daily."}

	result, err := OptimizeDescription(context.Background(), client, OptimizeInput{
		Text:    "worked on payments",
		Context: "fintech role",
	})

	require.NoError(t, err)
	assert.Contains(t, result.OptimizedText, "payment pipeline")
	assert.Contains(t, client.lastPrompt, "fintech role")
}

func TestResumeFromJobDescription(t *testing.T) {
	client := &fakeClient{text: "```json\n{\"summary\":\"Backend engineer focused on Go services.\",\"skills\":[{\"category\":\"Languages\",\"items\":[\"Go\",\"SQL\"]}],\"experienceHighlights\":[\"Built APIs\"]}\n```"}

	result, err := ResumeFromJobDescription(context.Background(), client, ResumeFromJobInput{
		JobDescription: "We need a Go backend engineer for our Zurich team.",
		Locale:         "en",
	})

	require.NoError(t, err)
	assert.Equal(t, "Backend engineer focused on Go services.", result.Content.Summary)
	assert.True(t, client.lastOpts.JSON)
	assert.Equal(t, llm.TierQuality, client.lastOpts.Tier)
}

func TestResumeFromJobDescriptionMalformedJSON(t *testing.T) {
	client := &fakeClient{text: "Sure! Here is a resume for you."}

	_, err := ResumeFromJobDescription(context.Background(), client, ResumeFromJobInput{
		JobDescription: "Go backend engineer role.",
	})

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestResumeFromJobDescriptionGapPrompt(t *testing.T) {
	client := &fakeClient{text: "{}"}

	_, err := ResumeFromJobDescription(context.Background(), client, ResumeFromJobInput{
		JobDescription: "Go backend engineer role.",
		GapPrompt:      "Ensure coverage of: Kubernetes, Terraform",
	})

	require.NoError(t, err)
	assert.Contains(t, client.lastPrompt, "Kubernetes, Terraform")
}

func TestAdaptResume(t *testing.T) {
	client := &fakeClient{text: `{"patches":{"summary":"Updated summary","skillsToAdd":["Terraform"]},"analysis":{"matchScore":72,"keyGaps":["Terraform"],"strengths":["Go"]}}`}

	resume := &types.ResumeContent{Summary: "Backend engineer."}
	result, err := AdaptResume(context.Background(), client, AdaptInput{
		Resume:         resume,
		JobDescription: "Platform engineer with Terraform experience.",
		JobTitle:       "Platform Engineer",
		Company:        "Helvetia Tech",
		Locale:         "en",
	})

	require.NoError(t, err)
	assert.Equal(t, "Platform Engineer", result.Patch.JobTitle)
	assert.Equal(t, "Helvetia Tech", result.Patch.Company)
	assert.Equal(t, 72, result.Patch.Analysis.MatchScore)
	assert.Equal(t, []string{"Terraform"}, result.Patch.Patches.SkillsToAdd)
	assert.False(t, result.Patch.CreatedAt.IsZero())
}

func TestAdaptResumeEmptyResume(t *testing.T) {
	client := &fakeClient{text: "{}"}

	_, err := AdaptResume(context.Background(), client, AdaptInput{
		Resume:         &types.ResumeContent{},
		JobDescription: "some job",
		JobTitle:       "Engineer",
		Company:        "Acme",
	})

	var invalidErr *InvalidInputError
	assert.ErrorAs(t, err, &invalidErr)
}

func TestAdaptResumeNormalizesNilSlices(t *testing.T) {
	client := &fakeClient{text: `{"patches":{},"analysis":{"matchScore":50}}`}

	result, err := AdaptResume(context.Background(), client, AdaptInput{
		Resume:         &types.ResumeContent{Summary: "x"},
		JobDescription: "job",
		JobTitle:       "T",
		Company:        "C",
	})

	require.NoError(t, err)
	assert.NotNil(t, result.Patch.Analysis.KeyGaps)
	assert.NotNil(t, result.Patch.Analysis.Strengths)
}

func TestParseBullets(t *testing.T) {
	bullets := parseBullets("• one\n\n  - two  \nthree")
	assert.Equal(t, []string{"one", "two", "three"}, bullets)
}

func TestLanguageInstruction(t *testing.T) {
	assert.Contains(t, languageInstruction("fr"), "French")
	assert.Contains(t, strings.ToLower(languageInstruction("")), "detect")
}
