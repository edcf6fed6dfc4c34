package types

// Rule names reported by the style validator.
const (
	RuleForbiddenChar  = "forbidden_char"
	RuleFirstPerson    = "first_person"
	RuleLeadingVerb    = "leading_verb"
	RuleMaxLength      = "max_length"
	RuleForbiddenWord  = "forbidden_word"
	RuleWeakStart      = "weak_start"
	RuleCapitalization = "capitalization"
	RuleEndPunctuation = "end_punctuation"
	RuleQuantify       = "quantify"
)

const (
	// EmDash is rejected by default.
	EmDash = "—"
	// EnDash is allowed by default.
	EnDash = "–"
)

// StyleRuleSet configures the constraints checked against every achievement statement.
// It is supplied before a run starts and is never modified by the pipeline.
type StyleRuleSet struct {
	ForbiddenChars       []string `json:"forbidden_chars" yaml:"forbidden_chars" koanf:"forbidden_chars"`
	NoFirstPerson        bool     `json:"no_first_person" yaml:"no_first_person" koanf:"no_first_person"`
	ActionVerbStart      bool     `json:"action_verb_start" yaml:"action_verb_start" koanf:"action_verb_start"`
	MaxLength            int      `json:"max_length" yaml:"max_length" koanf:"max_length" validate:"gte=0"`
	ForbiddenWords       []string `json:"forbidden_words" yaml:"forbidden_words" koanf:"forbidden_words"`
	QuantifyAchievements bool     `json:"quantify_achievements" yaml:"quantify_achievements" koanf:"quantify_achievements"`
	EndPunctuation       string   `json:"end_punctuation,omitempty" yaml:"end_punctuation,omitempty" koanf:"end_punctuation" validate:"omitempty,oneof=. ;"`
}

// DefaultBuzzwords are rejected unless the caller supplies its own list.
var DefaultBuzzwords = []string{"synergy", "rockstar", "ninja", "guru", "wizard", "unicorn"}

// DefaultStyleRuleSet returns the rules used when nothing else is configured.
func DefaultStyleRuleSet() StyleRuleSet {
	return StyleRuleSet{
		ForbiddenChars:       []string{EmDash},
		NoFirstPerson:        true,
		ActionVerbStart:      true,
		MaxLength:            120,
		ForbiddenWords:       append([]string(nil), DefaultBuzzwords...),
		QuantifyAchievements: true,
	}
}

// WithDashes returns a copy of the rule set with the em and en dash bans set explicitly.
// Other forbidden characters are kept.
func (r StyleRuleSet) WithDashes(noEm, noEn bool) StyleRuleSet {
	chars := make([]string, 0, len(r.ForbiddenChars)+2)
	for _, c := range r.ForbiddenChars {
		if c != EmDash && c != EnDash {
			chars = append(chars, c)
		}
	}
	if noEm {
		chars = append(chars, EmDash)
	}
	if noEn {
		chars = append(chars, EnDash)
	}
	r.ForbiddenChars = chars
	r.ForbiddenWords = append([]string(nil), r.ForbiddenWords...)
	return r
}

// Forbids reports whether c is in the forbidden character list.
func (r StyleRuleSet) Forbids(c string) bool {
	for _, f := range r.ForbiddenChars {
		if f == c {
			return true
		}
	}
	return false
}
