package db

import (
	"time"

	"github.com/google/uuid"
)

// Run status values stored in generation_runs.status.
const (
	RunStatusRunning = "running"
)

// Run is a row of generation_runs.
type Run struct {
	ID          uuid.UUID  `json:"id"`
	Profile     string     `json:"profile"`
	Status      string     `json:"status"`
	Error       *string    `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Artifact is a row of generation_artifacts.
type Artifact struct {
	RunID     uuid.UUID `json:"run_id"`
	Name      string    `json:"name"`
	Content   []byte    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
