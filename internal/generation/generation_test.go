package generation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwehrli/swisscv/internal/llm"
	"github.com/mwehrli/swisscv/internal/transform"
	"github.com/mwehrli/swisscv/internal/types"
)

type fakeExtractor struct {
	reqs *types.JobRequirements
	err  error
}

func (f *fakeExtractor) Extract(context.Context, string, string) (*types.JobRequirements, *llm.Usage, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.reqs, &llm.Usage{TotalTokens: 100}, nil
}

// fakeGenerator returns one canned result per call, in order.
type fakeGenerator struct {
	results []*transform.ResumeFromJobResult
	errs    []error
	calls   int
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, input transform.ResumeFromJobInput) (*transform.ResumeFromJobResult, error) {
	i := f.calls
	f.calls++
	f.prompts = append(f.prompts, input.GapPrompt)
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	return f.results[i], nil
}

type recordingLogger struct {
	attempts chan *Attempt
}

func (r *recordingLogger) LogAttempt(_ context.Context, _ Params, attempt *Attempt, _ []types.GenerationGap) error {
	r.attempts <- attempt
	return nil
}

func contentWithSkills(skills ...string) *types.GeneratedContent {
	return &types.GeneratedContent{
		Summary: "Engineer.",
		Skills:  []types.ResumeSkillCategory{{Category: "Technical", Items: skills}},
	}
}

func threeSkillRequirements() *types.JobRequirements {
	return &types.JobRequirements{Skills: []string{"Python", "Kubernetes", "Terraform"}}
}

func TestGenerateWithRetry_ImprovesUntilThreshold(t *testing.T) {
	generator := &fakeGenerator{results: []*transform.ResumeFromJobResult{
		{Content: contentWithSkills("Python"), TokensUsed: 50},
		{Content: contentWithSkills("Python", "Kubernetes", "Terraform"), TokensUsed: 60},
	}}
	logger := &recordingLogger{attempts: make(chan *Attempt, 10)}
	w := newWorkflow(&fakeExtractor{reqs: threeSkillRequirements()}, generator, logger, Config{})

	result, err := w.GenerateWithRetry(context.Background(), Params{JobDescription: "Platform role", Locale: "en"})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Iterations)
	assert.Equal(t, 100, result.Analysis.Score)
	assert.False(t, result.Analysis.IsInsufficient)
	assert.Equal(t, int32(100+50+60), result.TokensUsed)

	// The retry prompt carries the uncovered items from the first attempt.
	require.Len(t, generator.prompts, 2)
	assert.Empty(t, generator.prompts[0])
	assert.Contains(t, generator.prompts[1], "Kubernetes")
	assert.Contains(t, generator.prompts[1], "Terraform")

	for i := 0; i < 2; i++ {
		select {
		case attempt := <-logger.attempts:
			assert.NotNil(t, attempt.Analysis)
		case <-time.After(time.Second):
			t.Fatal("attempt was never logged")
		}
	}
}

func TestGenerateWithRetry_StopsAtFirstSufficientAttempt(t *testing.T) {
	generator := &fakeGenerator{results: []*transform.ResumeFromJobResult{
		{Content: contentWithSkills("Python", "Kubernetes", "Terraform"), TokensUsed: 40},
	}}
	w := newWorkflow(&fakeExtractor{reqs: threeSkillRequirements()}, generator, nil, Config{})

	result, err := w.GenerateWithRetry(context.Background(), Params{JobDescription: "Platform role"})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Iterations)
	assert.Equal(t, 1, generator.calls)
	assert.Equal(t, 100, result.Analysis.Score)
}

func TestGenerateWithRetry_ReturnsBestAttemptWhenBudgetSpent(t *testing.T) {
	generator := &fakeGenerator{results: []*transform.ResumeFromJobResult{
		{Content: contentWithSkills("Python")},
		{Content: contentWithSkills("Python", "Kubernetes")},
		{Content: contentWithSkills("Python")},
	}}
	w := newWorkflow(&fakeExtractor{reqs: threeSkillRequirements()}, generator, nil, Config{QualityThreshold: 99, MaxIterations: 3})

	result, err := w.GenerateWithRetry(context.Background(), Params{JobDescription: "Platform role"})

	require.NoError(t, err)
	assert.Equal(t, 3, result.Iterations)
	// Second attempt covered two of three skills and scores highest.
	assert.Equal(t, 2, result.Analysis.Iteration)
	assert.True(t, result.Analysis.IsInsufficient)
}

func TestGenerateWithRetry_ExtractionFailure(t *testing.T) {
	w := newWorkflow(&fakeExtractor{err: errors.New("model unavailable")}, &fakeGenerator{}, nil, Config{})

	_, err := w.GenerateWithRetry(context.Background(), Params{JobDescription: "role"})

	assert.ErrorContains(t, err, "model unavailable")
}

func TestGenerateWithRetry_GeneratorFailureOnFirstAttempt(t *testing.T) {
	generator := &fakeGenerator{errs: []error{errors.New("generation failed")}}
	w := newWorkflow(&fakeExtractor{reqs: threeSkillRequirements()}, generator, nil, Config{})

	_, err := w.GenerateWithRetry(context.Background(), Params{JobDescription: "role"})

	assert.ErrorContains(t, err, "generation failed")
}

func TestGenerateWithRetry_GeneratorFailureOnRetryKeepsBest(t *testing.T) {
	generator := &fakeGenerator{
		results: []*transform.ResumeFromJobResult{{Content: contentWithSkills("Python")}, nil},
		errs:    []error{nil, errors.New("flaky")},
	}
	w := newWorkflow(&fakeExtractor{reqs: threeSkillRequirements()}, generator, nil, Config{QualityThreshold: 99})

	result, err := w.GenerateWithRetry(context.Background(), Params{JobDescription: "role"})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Analysis.Iteration)
}

func TestGenerateWithRetry_EmptyJobDescription(t *testing.T) {
	w := newWorkflow(&fakeExtractor{}, &fakeGenerator{}, nil, Config{})

	_, err := w.GenerateWithRetry(context.Background(), Params{JobDescription: "  "})

	var invalidErr *transform.InvalidInputError
	assert.ErrorAs(t, err, &invalidErr)
}

func TestAnalyze_InsufficientBelowThreshold(t *testing.T) {
	w := newWorkflow(&fakeExtractor{}, &fakeGenerator{}, nil, Config{QualityThreshold: 70})

	resume := contentWithSkills("Python").ToResumeContent()
	analysis, err := w.Analyze(resume, threeSkillRequirements(), 1)

	require.NoError(t, err)
	assert.Equal(t, 60, analysis.Score)
	assert.True(t, analysis.IsInsufficient)
	assert.Len(t, analysis.MissingItems, 2)
}

func TestBuildEnhancedPrompt(t *testing.T) {
	assert.Empty(t, buildEnhancedPrompt(nil))

	prompt := buildEnhancedPrompt([]types.ScoringItem{
		{Item: "Kubernetes", Category: types.CategorySkill},
		{Item: "Lead incident response", Category: types.CategoryResponsibility},
	})
	assert.Contains(t, prompt, "[skill] Kubernetes")
	assert.Contains(t, prompt, "[responsibility] Lead incident response")
}

func TestToGenerationGaps(t *testing.T) {
	gaps := toGenerationGaps([]types.ScoringItem{
		{Item: "Kubernetes", Category: types.CategorySkill},
		{Item: "MSc in CS", Category: types.CategoryQualification},
	})

	require.Len(t, gaps, 2)
	assert.Equal(t, types.GapSkill, gaps[0].Type)
	assert.Equal(t, types.GapEducation, gaps[1].Type)
}
