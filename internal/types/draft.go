package types

// Achievement is one reframed statement. SourceID points at the experience entry it was
// derived from.
type Achievement struct {
	SourceID string `json:"source_id"`
	Text     string `json:"text"`
}

// DraftSkill is a skill in priority order.
type DraftSkill struct {
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Proficiency string `json:"proficiency,omitempty"`
}

// DraftContent is one candidate tailoring. A retry produces a new DraftContent; existing
// drafts are never edited.
type DraftContent struct {
	Title        string        `json:"title"`
	Summary      string        `json:"summary"`
	Achievements []Achievement `json:"achievements"`
	Skills       []DraftSkill  `json:"skills"`
}

// Statements returns the achievement texts in order.
func (d *DraftContent) Statements() []string {
	out := make([]string, len(d.Achievements))
	for i, a := range d.Achievements {
		out[i] = a.Text
	}
	return out
}

// SkillNames returns skill names in priority order.
func (d *DraftContent) SkillNames() []string {
	out := make([]string, len(d.Skills))
	for i, s := range d.Skills {
		out[i] = s.Name
	}
	return out
}
