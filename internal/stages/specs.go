package stages

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-as-code/internal/llm"
	"github.com/jonathan/resume-as-code/internal/prompts"
	"github.com/jonathan/resume-as-code/internal/schemas"
	"github.com/jonathan/resume-as-code/internal/types"
)

// Stage names.
const (
	StageAnalysis    = "analysis"
	StageDraft       = "draft"
	StageReview      = "review"
	StageCoverLetter = "cover_letter"
	StageConvertCV   = "convert_cv"
)

// Spec binds a stage to its output schema, instruction template and model tier.
type Spec struct {
	Name     string
	Schema   string
	Template string
	Tier     llm.ModelTier
}

var (
	AnalysisSpec    = Spec{Name: StageAnalysis, Schema: schemas.JobAnalysis, Template: prompts.AnalyzeJob, Tier: llm.TierStandard}
	DraftSpec       = Spec{Name: StageDraft, Schema: schemas.DraftContent, Template: prompts.DraftContent, Tier: llm.TierAdvanced}
	ReviewSpec      = Spec{Name: StageReview, Schema: schemas.QualityReview, Template: prompts.ReviewContent, Tier: llm.TierAdvanced}
	CoverLetterSpec = Spec{Name: StageCoverLetter, Schema: schemas.CoverLetter, Template: prompts.CoverLetter, Tier: llm.TierStandard}
	ConvertCVSpec   = Spec{Name: StageConvertCV, Schema: schemas.CVExperience, Template: prompts.ConvertCV, Tier: llm.TierLite}
)

// Payload is the context handed to a stage. Context is serialized to JSON and placed in
// the template; Vars fill any other placeholders.
type Payload struct {
	Context any
	Vars    map[string]string
}

// StyleGuide renders rules as the bullet list embedded in drafting and review prompts.
func StyleGuide(rules types.StyleRuleSet) string {
	var sb strings.Builder
	for _, c := range rules.ForbiddenChars {
		sb.WriteString(fmt.Sprintf("- NEVER use the character %q; use commas or parentheses instead\n", c))
	}
	if rules.ActionVerbStart {
		sb.WriteString("- Start every achievement with a strong past-tense action verb and a capital letter\n")
		sb.WriteString("- Never open with \"Responsible for\", \"Duties included\", \"Worked on\" or \"Helped with\"\n")
	}
	if rules.NoFirstPerson {
		sb.WriteString("- NO first-person pronouns (I, my, mine, we, our, ours)\n")
	}
	if rules.MaxLength > 0 {
		sb.WriteString(fmt.Sprintf("- Keep every achievement under %d characters\n", rules.MaxLength))
	}
	if rules.QuantifyAchievements {
		sb.WriteString("- Quantify achievements with metrics whenever possible (numbers, percentages, time saved)\n")
	}
	if len(rules.ForbiddenWords) > 0 {
		sb.WriteString(fmt.Sprintf("- Avoid these words: %s\n", strings.Join(rules.ForbiddenWords, ", ")))
	}
	if rules.EndPunctuation != "" {
		sb.WriteString(fmt.Sprintf("- End every achievement with %q\n", rules.EndPunctuation))
	}
	sb.WriteString("- Focus on impact and outcomes, not tasks")
	return sb.String()
}
