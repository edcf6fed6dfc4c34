package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		ok       bool
	}{
		{StateAnalyzing, StateDrafting, true},
		{StateDrafting, StateValidating, true},
		{StateValidating, StateReviewing, true},
		{StateReviewing, StateRetry, true},
		{StateReviewing, StateProceed, true},
		{StateRetry, StateDrafting, true},
		{StateProceed, StateCoverLetter, true},
		{StateCoverLetter, StateAggregating, true},
		{StateAggregating, StateDone, true},
		{StateReviewing, StateFailed, true},
		{StateAnalyzing, StateReviewing, false},
		{StateDrafting, StateReviewing, false},
		{StateRetry, StateCoverLetter, false},
		{StateDone, StateFailed, false},
		{StateFailed, StateDrafting, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, CanTransition(tt.from, tt.to))
		})
	}
}

func TestStateTerminal(t *testing.T) {
	assert.True(t, StateDone.Terminal())
	assert.True(t, StateFailed.Terminal())
	assert.False(t, StateReviewing.Terminal())
}

func TestRunError(t *testing.T) {
	cause := errors.New("boom")
	err := &RunError{State: StateDrafting, Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "pipeline failed in DRAFTING after 0 attempts: boom", err.Error())

	re, ok := AsRunError(err)
	assert.True(t, ok)
	assert.Same(t, err, re)

	_, ok = AsRunError(cause)
	assert.False(t, ok)
}
