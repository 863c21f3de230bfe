package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/mwehrli/swisscv/internal/generation"
	"github.com/mwehrli/swisscv/internal/types"
)

// AttemptLogger adapts DB to the generation workflow's logger interface.
// Attempts without valid user and resume IDs are skipped.
type AttemptLogger struct {
	DB *DB
}

// LogAttempt implements generation.AttemptLogger.
func (l *AttemptLogger) LogAttempt(ctx context.Context, params generation.Params, attempt *generation.Attempt, gaps []types.GenerationGap) error {
	userID, err := uuid.Parse(params.UserID)
	if err != nil {
		return nil
	}
	resumeID, err := uuid.Parse(params.ResumeID)
	if err != nil {
		return nil
	}

	logParams := GenerationLogParams{
		UserID:    userID,
		ResumeID:  resumeID,
		Gaps:      gaps,
		Iteration: attempt.Iteration,
	}
	if params.JobID != "" {
		jobID := params.JobID
		logParams.JobID = &jobID
	}
	if attempt.Analysis != nil {
		score := attempt.Analysis.Score
		logParams.Score = &score
	}

	_, err = l.DB.InsertGenerationLog(ctx, logParams)
	return err
}
