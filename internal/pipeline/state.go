package pipeline

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-as-code/internal/types"
)

// State is a position in the generation state machine.
type State string

const (
	StateAnalyzing   State = "ANALYZING"
	StateDrafting    State = "DRAFTING"
	StateValidating  State = "VALIDATING"
	StateReviewing   State = "REVIEWING"
	StateRetry       State = "RETRY"
	StateProceed     State = "PROCEED"
	StateCoverLetter State = "COVER_LETTER"
	StateAggregating State = "AGGREGATING"
	StateDone        State = "DONE"
	StateFailed      State = "FAILED"
)

// transitions lists the legal successors of each state. FAILED is reachable from all
// of them and is not listed.
var transitions = map[State][]State{
	StateAnalyzing:   {StateDrafting},
	StateDrafting:    {StateValidating},
	StateValidating:  {StateReviewing},
	StateReviewing:   {StateRetry, StateProceed},
	StateRetry:       {StateDrafting},
	StateProceed:     {StateCoverLetter},
	StateCoverLetter: {StateAggregating},
	StateAggregating: {StateDone},
}

// CanTransition reports whether the machine may move from one state to another.
func CanTransition(from, to State) bool {
	if to == StateFailed {
		return from != StateDone && from != StateFailed
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether s absorbs the run.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// RunError is a fatal pipeline failure. It keeps everything produced before the failure.
type RunError struct {
	RunID    string
	State    State
	Analysis *types.JobAnalysis
	Attempts []types.AttemptRecord
	Cause    error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("pipeline failed in %s after %d attempts: %v", e.State, len(e.Attempts), e.Cause)
}

func (e *RunError) Unwrap() error {
	return e.Cause
}

// Partial returns a failed result holding the recorded history.
func (e *RunError) Partial() *types.PipelineResult {
	return &types.PipelineResult{
		RunID:    e.RunID,
		Status:   types.StatusFailed,
		Analysis: e.Analysis,
		Attempts: e.Attempts,
		Selected: 0,
	}
}

// AsRunError unwraps err into a *RunError.
func AsRunError(err error) (*RunError, bool) {
	var re *RunError
	ok := errors.As(err, &re)
	return re, ok
}
