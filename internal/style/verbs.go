package style

import "strings"

// ActionVerbs groups strong resume verbs by the kind of work they describe.
var ActionVerbs = map[string][]string{
	"leadership":    {"Led", "Directed", "Managed", "Orchestrated", "Coordinated", "Spearheaded", "Pioneered", "Championed"},
	"technical":     {"Architected", "Engineered", "Developed", "Implemented", "Built", "Designed", "Programmed", "Automated"},
	"improvement":   {"Optimized", "Enhanced", "Improved", "Streamlined", "Refined", "Upgraded", "Modernized", "Accelerated"},
	"analysis":      {"Analyzed", "Evaluated", "Assessed", "Investigated", "Diagnosed", "Researched", "Measured", "Monitored"},
	"collaboration": {"Collaborated", "Partnered", "Facilitated", "Mentored", "Trained", "Coached", "Advised", "Consulted"},
	"achievement":   {"Achieved", "Delivered", "Reduced", "Increased", "Eliminated", "Generated", "Saved", "Exceeded"},
}

// verbCategories fixes iteration order over ActionVerbs.
var verbCategories = []string{"leadership", "technical", "improvement", "analysis", "collaboration", "achievement"}

// irregular past tense forms that don't end in -ed
var irregularPast = map[string]bool{
	"led": true, "built": true, "ran": true, "won": true, "drove": true, "grew": true,
	"wrote": true, "made": true, "took": true, "cut": true, "set": true, "began": true,
	"brought": true, "taught": true, "sold": true, "spent": true, "kept": true, "held": true,
	"rebuilt": true, "overhauled": true, "spun": true, "shot": true, "oversaw": true,
	"undertook": true, "put": true, "met": true, "found": true, "sought": true, "split": true,
}

var strongVerbs = func() map[string]bool {
	m := make(map[string]bool)
	for _, verbs := range ActionVerbs {
		for _, v := range verbs {
			m[strings.ToLower(v)] = true
		}
	}
	return m
}()

// VerbsByCategory returns the verbs for category, or nil if unknown.
func VerbsByCategory(category string) []string {
	return ActionVerbs[category]
}

// AllVerbs returns every action verb in category order.
func AllVerbs() []string {
	var out []string
	for _, c := range verbCategories {
		out = append(out, ActionVerbs[c]...)
	}
	return out
}

// isPastTenseShaped is a surface heuristic: a known strong verb, an irregular past form,
// or a token ending in -ed that is long enough not to be "red" or "bed".
func isPastTenseShaped(word string) bool {
	w := strings.ToLower(strings.TrimRight(word, ".,!?;:"))
	if strongVerbs[w] || irregularPast[w] {
		return true
	}
	return strings.HasSuffix(w, "ed") && len(w) > 3
}
