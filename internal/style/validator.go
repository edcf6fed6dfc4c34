// Package style checks achievement statements against a StyleRuleSet.
//
// Validation is pure: no I/O, no state, and the same draft and rules always produce the
// same report.
package style

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-as-code/internal/types"
)

var (
	firstPersonPattern = regexp.MustCompile(`(?i)\b(i|my|mine|we|our|ours)\b`)
	digitPattern       = regexp.MustCompile(`\d`)
	abbrevPattern      = regexp.MustCompile(`(?i)\bi/o\b|\bi\.e\.`)
)

var weakStarts = []string{"responsible for", "duties included", "worked on", "helped with"}

// Validator holds a rule set with its vocabulary patterns compiled once.
type Validator struct {
	rules types.StyleRuleSet
	words []wordPattern
}

type wordPattern struct {
	word string
	re   *regexp.Regexp
}

// NewValidator compiles rules. Blank vocabulary entries are ignored.
func NewValidator(rules types.StyleRuleSet) *Validator {
	v := &Validator{rules: rules}
	seen := make(map[string]bool)
	for _, w := range rules.ForbiddenWords {
		norm := strings.ToLower(strings.TrimSpace(w))
		if norm == "" || seen[norm] {
			continue
		}
		seen[norm] = true
		v.words = append(v.words, wordPattern{
			word: w,
			re:   regexp.MustCompile(`(?i)(?:^|[^\pL\pN_])` + regexp.QuoteMeta(norm) + `(?:$|[^\pL\pN_])`),
		})
	}
	return v
}

// Rules returns the rule set the validator was built with.
func (v *Validator) Rules() types.StyleRuleSet {
	return v.rules
}

// Validate checks every achievement of draft. A nil draft yields an empty report.
func (v *Validator) Validate(draft *types.DraftContent) *types.ValidationReport {
	report := &types.ValidationReport{Violations: []types.RuleViolation{}}
	if draft == nil {
		return report
	}
	for i, a := range draft.Achievements {
		report.Violations = append(report.Violations, v.CheckStatement(i, a.Text)...)
	}
	return report
}

// ValidateStatements checks plain statements, used for hand-written profiles.
func (v *Validator) ValidateStatements(statements []string) *types.ValidationReport {
	report := &types.ValidationReport{Violations: []types.RuleViolation{}}
	for i, s := range statements {
		report.Violations = append(report.Violations, v.CheckStatement(i, s)...)
	}
	return report
}

// CheckStatement returns the violations of a single statement in rule order.
func (v *Validator) CheckStatement(index int, statement string) []types.RuleViolation {
	var out []types.RuleViolation
	add := func(rule, detail string) {
		out = append(out, types.RuleViolation{
			StatementIndex: index,
			Statement:      statement,
			Rule:           rule,
			Detail:         detail,
		})
	}

	for _, c := range v.rules.ForbiddenChars {
		if c != "" && strings.Contains(statement, c) {
			add(types.RuleForbiddenChar, fmt.Sprintf("contains %q", c))
		}
	}

	if v.rules.NoFirstPerson {
		if m := firstPersonPattern.FindString(abbrevPattern.ReplaceAllString(statement, "")); m != "" {
			add(types.RuleFirstPerson, fmt.Sprintf("first-person pronoun %q", m))
		}
	}

	if v.rules.ActionVerbStart {
		trimmed := strings.TrimSpace(statement)
		first, _ := utf8.DecodeRuneInString(trimmed)
		if trimmed == "" || !unicode.IsUpper(first) {
			add(types.RuleCapitalization, "does not start with a capital letter")
		}
		lower := strings.ToLower(trimmed)
		for _, weak := range weakStarts {
			if strings.HasPrefix(lower, weak) {
				add(types.RuleWeakStart, fmt.Sprintf("weak opening %q", weak))
				break
			}
		}
		words := strings.Fields(trimmed)
		if len(words) == 0 || !isPastTenseShaped(words[0]) {
			lead := ""
			if len(words) > 0 {
				lead = words[0]
			}
			add(types.RuleLeadingVerb, fmt.Sprintf("first word %q is not a past-tense action verb", lead))
		}
	}

	if v.rules.MaxLength > 0 {
		if n := utf8.RuneCountInString(statement); n > v.rules.MaxLength {
			add(types.RuleMaxLength, fmt.Sprintf("%d chars, max %d", n, v.rules.MaxLength))
		}
	}

	for _, w := range v.words {
		if w.re.MatchString(statement) {
			add(types.RuleForbiddenWord, fmt.Sprintf("forbidden word %q", w.word))
		}
	}

	if p := v.rules.EndPunctuation; p != "" && !strings.HasSuffix(strings.TrimSpace(statement), p) {
		add(types.RuleEndPunctuation, fmt.Sprintf("does not end with %q", p))
	}

	if v.rules.QuantifyAchievements && !isQuantified(statement) {
		add(types.RuleQuantify, "no metric or number")
	}

	return out
}

// Validate is a convenience for one-off checks.
func Validate(draft *types.DraftContent, rules types.StyleRuleSet) *types.ValidationReport {
	return NewValidator(rules).Validate(draft)
}

func isQuantified(text string) bool {
	return digitPattern.MatchString(text) || strings.Contains(text, "%")
}
