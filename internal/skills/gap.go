// Package skills compares a resume's skills with the skills a job asks for.
package skills

import (
	"fmt"
	"math"
	"strings"
)

// Thresholds for recommendations.
const (
	tailorBelowPercent = 70.0
	strongMatchRatio   = 0.8
	maxPreferredHint   = 3
)

// aliases maps common variants to one comparison key.
var aliases = map[string]string{
	"golang":     "go",
	"go lang":    "go",
	"js":         "javascript",
	"ts":         "typescript",
	"k8s":        "kubernetes",
	"react.js":   "react",
	"reactjs":    "react",
	"vue.js":     "vue",
	"vuejs":      "vue",
	"nodejs":     "node.js",
	"postgres":   "postgresql",
	"gcp":        "google cloud",
	"amazon aws": "aws",
}

// Gap is the result of comparing resume skills with job requirements.
type Gap struct {
	Matching         []string `json:"matching_skills"`
	MissingRequired  []string `json:"missing_required_skills"`
	MissingPreferred []string `json:"missing_preferred_skills"`
	MatchPercentage  float64  `json:"skill_match_percentage"`
	Recommendations  []string `json:"recommendations"`
}

// Key normalizes a skill name for comparison.
func Key(name string) string {
	k := strings.ToLower(strings.Join(strings.Fields(name), " "))
	if canonical, ok := aliases[k]; ok {
		return canonical
	}
	return k
}

// Compare reports which required and preferred skills the resume covers.
// Matching keeps the job's spelling and order.
func Compare(resumeSkills, required, preferred []string) Gap {
	have := make(map[string]bool, len(resumeSkills))
	for _, s := range resumeSkills {
		have[Key(s)] = true
	}

	gap := Gap{
		Matching:         []string{},
		MissingRequired:  []string{},
		MissingPreferred: []string{},
	}
	for _, s := range required {
		if have[Key(s)] {
			gap.Matching = append(gap.Matching, s)
		} else {
			gap.MissingRequired = append(gap.MissingRequired, s)
		}
	}
	for _, s := range preferred {
		if !have[Key(s)] {
			gap.MissingPreferred = append(gap.MissingPreferred, s)
		}
	}

	gap.MatchPercentage = 100
	if len(required) > 0 {
		pct := float64(len(gap.Matching)) / float64(len(required)) * 100
		gap.MatchPercentage = math.Round(pct*10) / 10
	}
	gap.Recommendations = recommend(gap, len(required))
	return gap
}

func recommend(gap Gap, required int) []string {
	recs := []string{}
	if n := len(gap.MissingRequired); n > 0 {
		recs = append(recs, fmt.Sprintf("Consider adding these %d required skills to your resume", n))
	}
	if gap.MatchPercentage < tailorBelowPercent {
		recs = append(recs, "Your resume matches less than 70% of required skills - consider tailoring it more")
	}
	if float64(len(gap.Matching)) >= float64(required)*strongMatchRatio {
		recs = append(recs, "Strong skill match! Highlight your experience with matching skills")
	}
	if n := len(gap.MissingPreferred); n > 0 && n <= maxPreferredHint {
		recs = append(recs, "Consider highlighting any experience with the preferred skills")
	}
	return recs
}
