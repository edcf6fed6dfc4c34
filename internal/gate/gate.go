// Package gate decides whether a reviewed draft is accepted, revised or abandoned.
package gate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/resume-as-code/internal/types"
)

// Action is the outcome of a gate decision.
type Action int

const (
	// Accept means the draft meets the quality bar.
	Accept Action = iota
	// RetryWithFeedback means another drafting attempt should run with the attached feedback.
	RetryWithFeedback
	// GiveUp means the attempt ceiling was reached without acceptance.
	GiveUp
)

func (a Action) String() string {
	switch a {
	case Accept:
		return "accept"
	case RetryWithFeedback:
		return "retry_with_feedback"
	case GiveUp:
		return "give_up"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Default score thresholds.
const (
	DefaultMinAlignment = 7
	DefaultMinStyle     = 8
)

// Thresholds are the minimum review scores for acceptance.
type Thresholds struct {
	MinAlignment int
	MinStyle     int
}

// DefaultThresholds returns 7 for job alignment and 8 for style compliance.
func DefaultThresholds() Thresholds {
	return Thresholds{MinAlignment: DefaultMinAlignment, MinStyle: DefaultMinStyle}
}

// ViolationNote is a (statement, rule) pair forwarded to the next draft.
type ViolationNote struct {
	Statement string `json:"statement"`
	Rule      string `json:"rule"`
	Detail    string `json:"detail,omitempty"`
}

// Feedback is what a rejected attempt hands to the next drafting attempt.
type Feedback struct {
	Attempt     int             `json:"attempt"`
	Issues      []string        `json:"issues"`
	Suggestions []string        `json:"suggestions"`
	Violations  []ViolationNote `json:"violations"`
}

// Lines renders the feedback as issues, then suggestions, then violations.
func (f *Feedback) Lines() []string {
	if f == nil {
		return nil
	}
	lines := make([]string, 0, len(f.Issues)+len(f.Suggestions)+len(f.Violations))
	for _, s := range f.Issues {
		lines = append(lines, "Issue: "+s)
	}
	for _, s := range f.Suggestions {
		lines = append(lines, "Suggestion: "+s)
	}
	for _, v := range f.Violations {
		lines = append(lines, fmt.Sprintf("Rule %s violated by: %s", v.Rule, v.Statement))
	}
	return lines
}

func (f *Feedback) String() string {
	return strings.Join(f.Lines(), "\n")
}

// Decision is returned by Decide. Feedback is set only for RetryWithFeedback.
type Decision struct {
	Action   Action
	Feedback *Feedback
}

// Passes reports whether review clears the thresholds on its own.
func (t Thresholds) Passes(review *types.QualityReview) bool {
	return review != nil &&
		review.Accept &&
		review.JobAlignment >= t.MinAlignment &&
		review.StyleCompliance >= t.MinStyle
}

// Decide applies the acceptance rule to one attempt.
func (t Thresholds) Decide(review *types.QualityReview, report *types.ValidationReport, attempt, maxAttempts int) Decision {
	if t.Passes(review) {
		return Decision{Action: Accept}
	}
	if attempt < maxAttempts {
		return Decision{Action: RetryWithFeedback, Feedback: BuildFeedback(review, report, attempt)}
	}
	return Decision{Action: GiveUp}
}

// Decide uses the default thresholds.
func Decide(review *types.QualityReview, report *types.ValidationReport, attempt, maxAttempts int) Decision {
	return DefaultThresholds().Decide(review, report, attempt, maxAttempts)
}

// BuildFeedback concatenates review issues, review suggestions and validator violations.
// Violations are ordered by statement position; within a statement the validator's rule
// order is kept.
func BuildFeedback(review *types.QualityReview, report *types.ValidationReport, attempt int) *Feedback {
	fb := &Feedback{
		Attempt:     attempt,
		Issues:      []string{},
		Suggestions: []string{},
		Violations:  []ViolationNote{},
	}
	if review != nil {
		fb.Issues = append(fb.Issues, review.Issues...)
		fb.Suggestions = append(fb.Suggestions, review.Suggestions...)
	}
	if report != nil {
		violations := append([]types.RuleViolation(nil), report.Violations...)
		sort.SliceStable(violations, func(i, j int) bool {
			return violations[i].StatementIndex < violations[j].StatementIndex
		})
		for _, v := range violations {
			fb.Violations = append(fb.Violations, ViolationNote{
				Statement: v.Statement,
				Rule:      v.Rule,
				Detail:    v.Detail,
			})
		}
	}
	return fb
}
