// Package steps declares the generation pipeline's stages and the dependency edges
// between them.
package steps

import (
	"fmt"
	"sort"
)

// Step names.
const (
	AnalyzeJob    = "analyze_job"
	DraftContent  = "draft_content"
	ValidateStyle = "validate_style"
	ReviewContent = "review_content"
	CoverLetter   = "cover_letter"
	Aggregate     = "aggregate"
)

// Step categories, used to group progress output.
const (
	CategoryAnalysis   = "analysis"
	CategoryDrafting   = "drafting"
	CategoryReview     = "review"
	CategoryLetter     = "letter"
	CategoryAggregated = "aggregate"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
	// Blocking is false for steps that never suspend.
	Blocking bool
}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	AnalyzeJob: {
		Name:         AnalyzeJob,
		Category:     CategoryAnalysis,
		Dependencies: []string{},
		Blocking:     true,
	},
	DraftContent: {
		Name:         DraftContent,
		Category:     CategoryDrafting,
		Dependencies: []string{AnalyzeJob},
		Blocking:     true,
	},
	ValidateStyle: {
		Name:         ValidateStyle,
		Category:     CategoryDrafting,
		Dependencies: []string{DraftContent},
	},
	ReviewContent: {
		Name:         ReviewContent,
		Category:     CategoryReview,
		Dependencies: []string{DraftContent, ValidateStyle},
		Blocking:     true,
	},
	CoverLetter: {
		Name:         CoverLetter,
		Category:     CategoryLetter,
		Dependencies: []string{AnalyzeJob, DraftContent},
		Blocking:     true,
	},
	Aggregate: {
		Name:         Aggregate,
		Category:     CategoryAggregated,
		Dependencies: []string{AnalyzeJob, ReviewContent, CoverLetter},
	},
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s: missing dependencies: %v", e.Step, e.MissingDependencies)
}

// Completed is the set of steps whose output is available in the current attempt.
type Completed map[string]bool

// ValidateDependencies checks if all required dependencies for a step are completed
func ValidateDependencies(done Completed, stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if !done[dep] {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}
	return nil
}

// ValidateSequence checks that seq runs every registered step exactly once and never
// before its dependencies.
func ValidateSequence(seq []string) error {
	done := make(Completed, len(seq))
	for _, step := range seq {
		if done[step] {
			return fmt.Errorf("step %s: scheduled twice", step)
		}
		if err := ValidateDependencies(done, step); err != nil {
			return err
		}
		done[step] = true
	}

	var missing []string
	for name := range StepRegistry {
		if !done[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("sequence omits steps %v", missing)
	}
	return nil
}
