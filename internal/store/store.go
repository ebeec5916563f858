// Package store provides PostgreSQL persistence for redesign runs and their
// step artifacts. The pipeline treats it as optional: when no database is
// configured it runs without persistence.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Artifact step names.
const (
	StepSourceHTML    = "source_html"
	StepScreenshots   = "screenshots"
	StepContent       = "content"
	StepSchemaInitial = "schema_v1"
	StepSchemaPatched = "schema_v2"
	StepManifest      = "manifest"
	StepScore         = "score"
	StepCritique      = "critique"
	StepPatchDiff     = "patch_diff"
	StepHTMLInitial   = "html_v1"
	StepHTMLFinal     = "html_v2"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies it.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// CreateRun records a new redesign run and returns its ID.
func (s *Store) CreateRun(ctx context.Context, sourceURL, stylePreset string) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.pool.QueryRow(ctx,
		`INSERT INTO redesign_runs (source_url, style_preset, status)
		 VALUES ($1, $2, 'running')
		 RETURNING id`,
		sourceURL, stylePreset,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CreateRunWithID records a new redesign run under a caller-chosen ID, so
// the pipeline can use one run ID across progress events and artifacts.
func (s *Store) CreateRunWithID(ctx context.Context, id uuid.UUID, sourceURL, stylePreset string) (uuid.UUID, error) {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO redesign_runs (id, source_url, style_preset, status)
		 VALUES ($1, $2, $3, 'running')`,
		id, sourceURL, stylePreset,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun marks a run as finished with the given status and final score.
func (s *Store) CompleteRun(ctx context.Context, runID uuid.UUID, status string, score int) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE redesign_runs SET status = $1, score = $2, completed_at = NOW() WHERE id = $3`,
		status, score, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// SaveArtifact stores a JSON artifact for a run step.
func (s *Store) SaveArtifact(ctx context.Context, runID uuid.UUID, step string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO run_artifacts (run_id, step, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (run_id, step) DO UPDATE SET content = $3, created_at = NOW()`,
		runID, step, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", step, err)
	}
	return nil
}

// SaveTextArtifact stores a text artifact (rendered HTML, diffs) for a run step.
func (s *Store) SaveTextArtifact(ctx context.Context, runID uuid.UUID, step, text string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO run_artifacts (run_id, step, text_content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (run_id, step) DO UPDATE SET text_content = $3, created_at = NOW()`,
		runID, step, text,
	)
	if err != nil {
		return fmt.Errorf("failed to save text artifact %s: %w", step, err)
	}
	return nil
}

// GetTextArtifact retrieves a text artifact by run ID and step. Returns an
// empty string when no artifact exists.
func (s *Store) GetTextArtifact(ctx context.Context, runID uuid.UUID, step string) (string, error) {
	var text string
	err := s.pool.QueryRow(ctx,
		`SELECT text_content FROM run_artifacts WHERE run_id = $1 AND step = $2`,
		runID, step,
	).Scan(&text)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to get text artifact %s: %w", step, err)
	}
	return text, nil
}
