package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mwehrli/swisscv/internal/types"
)

// GenerationLog is one audit record of a generation attempt.
type GenerationLog struct {
	ID        uuid.UUID             `json:"id"`
	UserID    uuid.UUID             `json:"user_id"`
	ResumeID  uuid.UUID             `json:"resume_id"`
	JobID     *string               `json:"job_id,omitempty"`
	Score     *int                  `json:"score,omitempty"`
	Gaps      []types.GenerationGap `json:"gaps,omitempty"`
	Iteration int                   `json:"iteration"`
	CreatedAt time.Time             `json:"created_at"`
}

// GenerationLogParams describes one attempt to record.
type GenerationLogParams struct {
	UserID    uuid.UUID
	ResumeID  uuid.UUID
	JobID     *string
	Score     *int
	Gaps      []types.GenerationGap
	Iteration int
}

// InsertGenerationLog records a generation attempt.
func (db *DB) InsertGenerationLog(ctx context.Context, params GenerationLogParams) (uuid.UUID, error) {
	iteration := params.Iteration
	if iteration < 1 {
		iteration = 1
	}

	var gapsJSON []byte
	if params.Gaps != nil {
		var err error
		gapsJSON, err = json.Marshal(params.Gaps)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to marshal gaps: %w", err)
		}
	}

	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO cv_generation_logs (user_id, resume_id, job_id, score, gaps, iteration)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		params.UserID, params.ResumeID, params.JobID, params.Score, gapsJSON, iteration,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert generation log: %w", err)
	}
	return id, nil
}

// ListGenerationLogs retrieves a user's recent generation logs, newest first.
func (db *DB) ListGenerationLogs(ctx context.Context, userID uuid.UUID, limit int) ([]GenerationLog, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, resume_id, job_id, score, gaps, iteration, created_at
		 FROM cv_generation_logs
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list generation logs: %w", err)
	}
	defer rows.Close()

	var logs []GenerationLog
	for rows.Next() {
		var entry GenerationLog
		var gapsJSON []byte
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.ResumeID, &entry.JobID,
			&entry.Score, &gapsJSON, &entry.Iteration, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan generation log: %w", err)
		}
		if len(gapsJSON) > 0 {
			if err := json.Unmarshal(gapsJSON, &entry.Gaps); err != nil {
				return nil, fmt.Errorf("failed to decode gaps: %w", err)
			}
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}
