package types

import "time"

// Status is the terminal outcome of a generation run.
type Status string

const (
	StatusAccepted Status = "accepted"
	StatusDegraded Status = "degraded"
	StatusFailed   Status = "failed"
)

// AttemptRecord captures one pass through draft, validate and review.
type AttemptRecord struct {
	Attempt int               `json:"attempt"`
	Draft   *DraftContent     `json:"draft"`
	Report  *ValidationReport `json:"report"`
	Review  *QualityReview    `json:"review"`
}

// PipelineResult is the bundle handed to the profile writer.
type PipelineResult struct {
	RunID       string          `json:"run_id"`
	Status      Status          `json:"status"`
	Analysis    *JobAnalysis    `json:"analysis"`
	Draft       *DraftContent   `json:"draft"`
	Review      *QualityReview  `json:"review"`
	CoverLetter *CoverLetter    `json:"cover_letter"`
	Attempts    []AttemptRecord `json:"attempts"`
	Selected    int             `json:"selected_attempt"`
	Duration    time.Duration   `json:"duration_ns"`
}
