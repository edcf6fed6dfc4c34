package stages

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-as-code/internal/gate"
	"github.com/jonathan/resume-as-code/internal/types"
)

// AnalysisInput is the analysis stage context.
type AnalysisInput struct {
	JobPosting string `json:"job_posting"`
}

// DraftInput is the drafting stage context. Feedback is nil on the first attempt.
type DraftInput struct {
	JobAnalysis *types.JobAnalysis      `json:"job_analysis"`
	Experience  []types.SourceStatement `json:"experience"`
	Skills      []string                `json:"skills,omitempty"`
	Feedback    *gate.Feedback          `json:"feedback,omitempty"`
}

// ReviewInput is the review stage context.
type ReviewInput struct {
	JobAnalysis      *types.JobAnalysis      `json:"job_analysis"`
	Draft            *types.DraftContent     `json:"draft"`
	ValidationReport *types.ValidationReport `json:"validation_report"`
}

// CoverLetterInput is the cover letter stage context.
type CoverLetterInput struct {
	JobAnalysis *types.JobAnalysis  `json:"job_analysis"`
	Draft       *types.DraftContent `json:"draft"`
}

// ConvertCVInput is the CV conversion context.
type ConvertCVInput struct {
	CVText string `json:"cv_text"`
}

// AnalyzeJob extracts requirements from a job posting.
func AnalyzeJob(ctx context.Context, e *Executor, jobPosting string) (*types.JobAnalysis, error) {
	if strings.TrimSpace(jobPosting) == "" {
		return nil, &FatalError{Stage: StageAnalysis, Cause: fmt.Errorf("job posting is empty")}
	}
	return Run[types.JobAnalysis](ctx, e, AnalysisSpec, Payload{Context: AnalysisInput{JobPosting: jobPosting}})
}

// Draft produces a fresh DraftContent for in.
func Draft(ctx context.Context, e *Executor, in DraftInput, rules types.StyleRuleSet) (*types.DraftContent, error) {
	return Run[types.DraftContent](ctx, e, DraftSpec, Payload{
		Context: in,
		Vars:    map[string]string{"StyleGuide": StyleGuide(rules)},
	})
}

// Review scores a draft against the job analysis.
func Review(ctx context.Context, e *Executor, in ReviewInput, rules types.StyleRuleSet) (*types.QualityReview, error) {
	return Run[types.QualityReview](ctx, e, ReviewSpec, Payload{
		Context: in,
		Vars:    map[string]string{"StyleGuide": StyleGuide(rules)},
	})
}

// WriteCoverLetter generates the cover letter for the selected draft.
func WriteCoverLetter(ctx context.Context, e *Executor, in CoverLetterInput) (*types.CoverLetter, error) {
	return Run[types.CoverLetter](ctx, e, CoverLetterSpec, Payload{Context: in})
}

// ConvertCV extracts work history from free-form CV text.
func ConvertCV(ctx context.Context, e *Executor, cvText string) ([]types.Experience, error) {
	if strings.TrimSpace(cvText) == "" {
		return nil, &FatalError{Stage: StageConvertCV, Cause: fmt.Errorf("cv text is empty")}
	}
	out, err := Run[types.ProfessionalExperience](ctx, e, ConvertCVSpec, Payload{Context: ConvertCVInput{CVText: cvText}})
	if err != nil {
		return nil, err
	}
	return out.Experiences, nil
}
