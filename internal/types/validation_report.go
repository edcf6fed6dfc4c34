package types

// RuleViolation pairs a statement with the rule it broke.
type RuleViolation struct {
	StatementIndex int    `json:"statement_index"`
	Statement      string `json:"statement"`
	Rule           string `json:"rule"`
	Detail         string `json:"detail,omitempty"`
}

// ValidationReport lists violations ordered by statement position. An empty report means
// the draft complies with every rule.
type ValidationReport struct {
	Violations []RuleViolation `json:"violations"`
}

// Clean reports whether there are no violations.
func (r *ValidationReport) Clean() bool {
	return r == nil || len(r.Violations) == 0
}

// CountByRule returns how many violations each rule produced.
func (r *ValidationReport) CountByRule() map[string]int {
	counts := make(map[string]int)
	if r == nil {
		return counts
	}
	for _, v := range r.Violations {
		counts[v.Rule]++
	}
	return counts
}
