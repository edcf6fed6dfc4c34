package profile

import (
	"encoding/json"
	"path/filepath"

	"github.com/jonathan/resume-as-code/internal/types"
)

// Written lists what WriteProfile produced.
type Written struct {
	Dir   string
	Files []string
	// Unattributed achievements cite no known experience and were not written.
	Unattributed []types.Achievement
}

// reviewDocument is the review.json diagnostics file.
type reviewDocument struct {
	RunID    string               `json:"run_id"`
	Status   types.Status         `json:"status"`
	Selected int                  `json:"selected_attempt"`
	Review   *types.QualityReview `json:"review"`
	Analysis *types.JobAnalysis   `json:"job_analysis"`
	Attempts []attemptSummary     `json:"attempts"`
}

type attemptSummary struct {
	Attempt         int            `json:"attempt"`
	JobAlignment    int            `json:"job_alignment"`
	StyleCompliance int            `json:"style_compliance"`
	Accept          bool           `json:"accept"`
	Violations      map[string]int `json:"violations,omitempty"`
	Issues          []string       `json:"issues,omitempty"`
}

// WriteProfile persists a generation result as profiles/<name>/. experiences are the
// source documents the run drafted from.
func WriteProfile(dataDir, name, jobText string, result *types.PipelineResult, experiences []types.Experience) (*Written, error) {
	dir := ProfilePath(dataDir, name)
	w := &Written{Dir: dir}

	write := func(file string, fn func(path string) error) error {
		path := filepath.Join(dir, file)
		if err := fn(path); err != nil {
			return err
		}
		w.Files = append(w.Files, path)
		return nil
	}

	draft := result.Draft
	if draft != nil {
		if err := write(HeaderFile, func(p string) error {
			return writeYAML(p, map[string]string{"title": draft.Title})
		}); err != nil {
			return nil, err
		}
		if err := write(SummaryFile, func(p string) error {
			return writeYAML(p, types.Summary{Content: draft.Summary})
		}); err != nil {
			return nil, err
		}

		merged, unattributed := MergeAchievements(experiences, draft.Achievements)
		w.Unattributed = unattributed
		if err := write(ExperienceFile, func(p string) error {
			return SaveExperienceFile(p, merged)
		}); err != nil {
			return nil, err
		}

		skills := types.Skills{Skills: make([]types.Skill, 0, len(draft.Skills))}
		for _, s := range draft.Skills {
			skills.Skills = append(skills.Skills, types.Skill{Name: s.Name, Category: s.Category, Proficiency: s.Proficiency})
		}
		if err := write(SkillsFile, func(p string) error { return writeYAML(p, skills) }); err != nil {
			return nil, err
		}
	}

	if err := write(JobFile, func(p string) error { return writeFile(p, []byte(jobText)) }); err != nil {
		return nil, err
	}
	if result.CoverLetter != nil {
		if err := write(CoverFile, func(p string) error {
			return writeFile(p, []byte(result.CoverLetter.Markdown()))
		}); err != nil {
			return nil, err
		}
	}
	if err := write(ReviewFile, func(p string) error {
		data, err := json.MarshalIndent(newReviewDocument(result), "", "  ")
		if err != nil {
			return &LoadError{Path: p, Message: "failed to encode review", Cause: err}
		}
		return writeFile(p, append(data, '\n'))
	}); err != nil {
		return nil, err
	}
	return w, nil
}

func newReviewDocument(result *types.PipelineResult) reviewDocument {
	doc := reviewDocument{
		RunID:    result.RunID,
		Status:   result.Status,
		Selected: result.Selected,
		Review:   result.Review,
		Analysis: result.Analysis,
		Attempts: make([]attemptSummary, 0, len(result.Attempts)),
	}
	for _, a := range result.Attempts {
		s := attemptSummary{Attempt: a.Attempt}
		if a.Review != nil {
			s.JobAlignment = a.Review.JobAlignment
			s.StyleCompliance = a.Review.StyleCompliance
			s.Accept = a.Review.Accept
			s.Issues = a.Review.Issues
		}
		if a.Report != nil && !a.Report.Clean() {
			s.Violations = a.Report.CountByRule()
		}
		doc.Attempts = append(doc.Attempts, s)
	}
	return doc
}
