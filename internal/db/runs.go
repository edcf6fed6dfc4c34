package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-as-code/internal/types"
)

// CreateRun inserts a running generation run.
func (db *DB) CreateRun(ctx context.Context, runID uuid.UUID, profile string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO generation_runs (id, profile, status) VALUES ($1, $2, $3)`,
		runID, profile, RunStatusRunning,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// SaveArtifact stores content as JSON, replacing an artifact of the same name.
func (db *DB) SaveArtifact(ctx context.Context, runID uuid.UUID, name string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO generation_artifacts (run_id, name, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (run_id, name) DO UPDATE SET content = $3, created_at = NOW()`,
		runID, name, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", name, err)
	}
	return nil
}

// CompleteRun records the terminal status and, for failed runs, the error text.
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status types.Status, runErr error) error {
	var errText *string
	if runErr != nil {
		s := runErr.Error()
		errText = &s
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE generation_runs SET status = $1, error = $2, completed_at = NOW() WHERE id = $3`,
		string(status), errText, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to complete run: run %s not found", runID)
	}
	return nil
}

// GetRun returns a run by ID, or nil if it does not exist.
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	var r Run
	err := db.pool.QueryRow(ctx,
		`SELECT id, profile, status, error, created_at, completed_at
		 FROM generation_runs WHERE id = $1`,
		runID,
	).Scan(&r.ID, &r.Profile, &r.Status, &r.Error, &r.CreatedAt, &r.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &r, nil
}

// ListRuns returns the most recent runs for a profile, newest first.
func (db *DB) ListRuns(ctx context.Context, profile string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, profile, status, error, created_at, completed_at
		 FROM generation_runs WHERE profile = $1
		 ORDER BY created_at DESC LIMIT $2`,
		profile, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Profile, &r.Status, &r.Error, &r.CreatedAt, &r.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetArtifact returns the JSON content of a named artifact, or nil if absent.
func (db *DB) GetArtifact(ctx context.Context, runID uuid.UUID, name string) ([]byte, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM generation_artifacts WHERE run_id = $1 AND name = $2`,
		runID, name,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get artifact %s: %w", name, err)
	}
	return content, nil
}
