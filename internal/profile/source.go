package profile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-as-code/internal/types"
)

const sourcePrefix = "exp-"

// SourceID names the i-th experience (zero-based) in drafting context.
func SourceID(i int) string {
	return fmt.Sprintf("%s%d", sourcePrefix, i+1)
}

// sourceIndex parses a SourceID back into a zero-based index.
func sourceIndex(id string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(id), sourcePrefix))
	if err != nil || !strings.HasPrefix(strings.TrimSpace(id), sourcePrefix) || n < 1 {
		return 0, false
	}
	return n - 1, true
}

// SourceExperience flattens achievements into ordered statements. Every statement of
// an experience shares that experience's SourceID.
func SourceExperience(experiences []types.Experience) []types.SourceStatement {
	var out []types.SourceStatement
	for i, exp := range experiences {
		for _, a := range exp.Achievements {
			if strings.TrimSpace(a) == "" {
				continue
			}
			out = append(out, types.SourceStatement{
				SourceID: SourceID(i),
				Company:  exp.Company,
				Title:    exp.Title,
				Text:     a,
			})
		}
	}
	return out
}

// MergeAchievements maps tailored achievements back onto the experiences they came
// from, keeping draft order. Experiences the draft did not cite keep their original
// achievements. Achievements citing unknown sources are returned separately.
func MergeAchievements(experiences []types.Experience, achievements []types.Achievement) ([]types.Experience, []types.Achievement) {
	tailored := make([][]string, len(experiences))
	var unattributed []types.Achievement
	for _, a := range achievements {
		idx, ok := sourceIndex(a.SourceID)
		if !ok || idx >= len(experiences) {
			unattributed = append(unattributed, a)
			continue
		}
		tailored[idx] = append(tailored[idx], a.Text)
	}

	out := make([]types.Experience, len(experiences))
	for i, exp := range experiences {
		out[i] = exp
		if len(tailored[i]) > 0 {
			out[i].Achievements = tailored[i]
		} else {
			out[i].Achievements = append([]string(nil), exp.Achievements...)
		}
		out[i].Technologies = append([]string(nil), exp.Technologies...)
	}
	return out, unattributed
}
