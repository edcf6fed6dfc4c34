// Package types provides the data model shared by the generation pipeline and the resume loader.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JobAnalysis is the structured reading of a job posting. It is produced once per run
// and consumed by the drafting and cover letter stages.
type JobAnalysis struct {
	RequiredSkills   []string `json:"required_skills"`
	PreferredSkills  []string `json:"preferred_skills"`
	Responsibilities []string `json:"responsibilities"`
	Seniority        string   `json:"seniority"`
	RoleCategory     string   `json:"role_category"`
	CultureNotes     string   `json:"culture_notes,omitempty"`
}

// Title returns a short label such as "Senior SRE".
func (a *JobAnalysis) Title() string {
	switch {
	case a.Seniority == "":
		return a.RoleCategory
	case a.RoleCategory == "":
		return a.Seniority
	default:
		return a.Seniority + " " + a.RoleCategory
	}
}
