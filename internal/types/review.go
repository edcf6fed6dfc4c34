package types

// QualityReview is the reviewer's verdict on one (draft, report) pair.
type QualityReview struct {
	Accept          bool     `json:"accept"`
	JobAlignment    int      `json:"job_alignment"`
	StyleCompliance int      `json:"style_compliance"`
	Issues          []string `json:"issues"`
	Suggestions     []string `json:"suggestions"`
	Strengths       []string `json:"strengths,omitempty"`
}
