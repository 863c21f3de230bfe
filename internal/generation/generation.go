// Package generation runs the quality-gated resume generation workflow:
// extract requirements from the job description, generate content, score it,
// and retry with gap feedback until the quality threshold is met or the
// iteration budget is spent.
package generation

import (
	"context"
	"log"
	"strings"

	"github.com/mwehrli/swisscv/internal/llm"
	"github.com/mwehrli/swisscv/internal/requirements"
	"github.com/mwehrli/swisscv/internal/scoring"
	"github.com/mwehrli/swisscv/internal/transform"
	"github.com/mwehrli/swisscv/internal/types"
)

// Config holds the workflow tuning knobs. Zero values are replaced with the
// defaults so a partially filled config is safe to use.
type Config struct {
	QualityThreshold int
	MaxIterations    int
}

// DefaultConfig returns the standard workflow configuration.
func DefaultConfig() Config {
	return Config{
		QualityThreshold: 70,
		MaxIterations:    3,
	}
}

// Params identifies one generation request. The ID fields are optional and
// flow through to the audit log.
type Params struct {
	JobDescription string
	Locale         string
	UserID         string
	ResumeID       string
	JobID          string
}

// ContentGenerator produces resume content for a job description.
type ContentGenerator interface {
	Generate(ctx context.Context, input transform.ResumeFromJobInput) (*transform.ResumeFromJobResult, error)
}

// RequirementsExtractor extracts structured requirements from a job
// description.
type RequirementsExtractor interface {
	Extract(ctx context.Context, jobDescription, loc string) (*types.JobRequirements, *llm.Usage, error)
}

// Attempt captures one generation iteration for logging.
type Attempt struct {
	Iteration  int
	Content    *types.GeneratedContent
	Analysis   *types.QualityAnalysis
	TokensUsed int32
}

// AttemptLogger records generation attempts. Logging failures must not affect
// the workflow; implementations are called on a detached context.
type AttemptLogger interface {
	LogAttempt(ctx context.Context, params Params, attempt *Attempt, gaps []types.GenerationGap) error
}

// NopLogger discards all attempts.
type NopLogger struct{}

// LogAttempt implements AttemptLogger.
func (NopLogger) LogAttempt(context.Context, Params, *Attempt, []types.GenerationGap) error {
	return nil
}

type llmGenerator struct {
	client llm.Client
}

func (g *llmGenerator) Generate(ctx context.Context, input transform.ResumeFromJobInput) (*transform.ResumeFromJobResult, error) {
	return transform.ResumeFromJobDescription(ctx, g.client, input)
}

type llmExtractor struct {
	client llm.Client
}

func (e *llmExtractor) Extract(ctx context.Context, jobDescription, loc string) (*types.JobRequirements, *llm.Usage, error) {
	return requirements.Extract(ctx, e.client, jobDescription, loc)
}

// Workflow orchestrates extraction, generation, scoring, and retries.
type Workflow struct {
	Extractor RequirementsExtractor
	Generator ContentGenerator
	Scorer    *scoring.Scorer
	Logger    AttemptLogger
	Config    Config
}

// NewWorkflow builds a workflow backed by the given LLM client. A nil logger
// is replaced with NopLogger and zero config fields get defaults.
func NewWorkflow(client llm.Client, logger AttemptLogger, cfg Config) *Workflow {
	return newWorkflow(&llmExtractor{client: client}, &llmGenerator{client: client}, logger, cfg)
}

func newWorkflow(extractor RequirementsExtractor, generator ContentGenerator, logger AttemptLogger, cfg Config) *Workflow {
	defaults := DefaultConfig()
	if cfg.QualityThreshold <= 0 {
		cfg.QualityThreshold = defaults.QualityThreshold
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = defaults.MaxIterations
	}
	if logger == nil {
		logger = NopLogger{}
	}
	return &Workflow{
		Extractor: extractor,
		Generator: generator,
		Scorer:    scoring.NewScorer(scoring.DefaultOptions()),
		Logger:    logger,
		Config:    cfg,
	}
}

// Result is the outcome of a generation run. Content and Analysis describe the
// best attempt; TokensUsed covers extraction plus every iteration.
type Result struct {
	Content      *types.GeneratedContent `json:"resumeData"`
	Analysis     *types.QualityAnalysis  `json:"qualityAnalysis"`
	Requirements *types.JobRequirements  `json:"requirements"`
	Iterations   int                     `json:"iterations"`
	TokensUsed   int32                   `json:"tokensUsed"`
}

// GenerateWithRetry runs the full workflow. It returns the highest scoring
// attempt even when the threshold was never reached.
func (w *Workflow) GenerateWithRetry(ctx context.Context, params Params) (*Result, error) {
	if strings.TrimSpace(params.JobDescription) == "" {
		return nil, &transform.InvalidInputError{Field: "jobDescription", Message: "job description is empty"}
	}

	reqs, usage, err := w.Extractor.Extract(ctx, params.JobDescription, params.Locale)
	if err != nil {
		return nil, err
	}

	var totalTokens int32
	if usage != nil {
		totalTokens = usage.TotalTokens
	}

	var best *Attempt
	gapPrompt := ""
	iterations := 0

	for i := 1; i <= w.Config.MaxIterations; i++ {
		genResult, err := w.Generator.Generate(ctx, transform.ResumeFromJobInput{
			JobDescription: params.JobDescription,
			Locale:         params.Locale,
			GapPrompt:      gapPrompt,
		})
		if err != nil {
			if best != nil {
				break
			}
			return nil, err
		}

		iterations = i
		totalTokens += genResult.TokensUsed

		analysis, err := w.Analyze(genResult.Content.ToResumeContent(), reqs, i)
		if err != nil {
			return nil, err
		}

		attempt := &Attempt{
			Iteration:  i,
			Content:    genResult.Content,
			Analysis:   analysis,
			TokensUsed: genResult.TokensUsed,
		}
		w.logAttempt(ctx, params, attempt)

		if best == nil || analysis.Score > best.Analysis.Score {
			best = attempt
		}
		if analysis.Score >= w.Config.QualityThreshold {
			break
		}
		gapPrompt = buildEnhancedPrompt(analysis.MissingItems)
	}

	return &Result{
		Content:      best.Content,
		Analysis:     best.Analysis,
		Requirements: reqs,
		Iterations:   iterations,
		TokensUsed:   totalTokens,
	}, nil
}

// Analyze scores resume content against requirements and wraps the result in
// a QualityAnalysis for the given iteration.
func (w *Workflow) Analyze(resume *types.ResumeContent, reqs *types.JobRequirements, iteration int) (*types.QualityAnalysis, error) {
	score, err := w.Scorer.Score(resume, reqs)
	if err != nil {
		return nil, err
	}
	return &types.QualityAnalysis{
		Score:          score.Score,
		MatchedItems:   score.MatchedItems,
		MissingItems:   score.MissingItems,
		GenericItems:   score.GenericItems,
		IsInsufficient: score.Score < w.Config.QualityThreshold,
		Iteration:      iteration,
	}, nil
}

// logAttempt records the attempt on a detached context so a slow or failing
// sink never blocks or cancels the generation loop.
func (w *Workflow) logAttempt(ctx context.Context, params Params, attempt *Attempt) {
	gaps := toGenerationGaps(attempt.Analysis.MissingItems)
	logCtx := context.WithoutCancel(ctx)
	go func() {
		if err := w.Logger.LogAttempt(logCtx, params, attempt, gaps); err != nil {
			log.Printf("generation: failed to log attempt %d: %v", attempt.Iteration, err)
		}
	}()
}
