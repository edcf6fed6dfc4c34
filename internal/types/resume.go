package types

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the on-disk date format.
const DateLayout = "2006-01-02"

// ContactInfo holds contact details from the common header.
type ContactInfo struct {
	Email    string `yaml:"email" json:"email" validate:"required,email"`
	Phone    string `yaml:"phone,omitempty" json:"phone,omitempty"`
	LinkedIn string `yaml:"linkedin,omitempty" json:"linkedin,omitempty" validate:"omitempty,url"`
	GitHub   string `yaml:"github,omitempty" json:"github,omitempty" validate:"omitempty,url"`
	Website  string `yaml:"website,omitempty" json:"website,omitempty" validate:"omitempty,url"`
	Location string `yaml:"location,omitempty" json:"location,omitempty"`
}

// Header is the top of the resume.
type Header struct {
	Name    string      `yaml:"name" json:"name" validate:"required"`
	Title   string      `yaml:"title" json:"title" validate:"required"`
	Contact ContactInfo `yaml:"contact" json:"contact"`
}

// Summary is the professional summary paragraph.
type Summary struct {
	Content string `yaml:"content" json:"content"`
}

// Experience is one work history entry.
type Experience struct {
	Company      string   `yaml:"company" json:"company" validate:"required"`
	Title        string   `yaml:"title" json:"title" validate:"required"`
	Location     string   `yaml:"location,omitempty" json:"location,omitempty"`
	StartDate    string   `yaml:"start_date" json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string   `yaml:"end_date,omitempty" json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Current      bool     `yaml:"current,omitempty" json:"current,omitempty"`
	Achievements []string `yaml:"achievements" json:"achievements"`
	Technologies []string `yaml:"technologies,omitempty" json:"technologies,omitempty"`
}

// IsCurrent reports whether the role is ongoing.
func (e *Experience) IsCurrent() bool {
	return e.Current || e.EndDate == ""
}

// Start parses StartDate.
func (e *Experience) Start() (time.Time, error) {
	t, err := time.Parse(DateLayout, e.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start_date %q for %s: %w", e.StartDate, e.Company, err)
	}
	return t, nil
}

// End parses EndDate. The zero time is returned for current roles.
func (e *Experience) End() (time.Time, error) {
	if e.EndDate == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, e.EndDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid end_date %q for %s: %w", e.EndDate, e.Company, err)
	}
	return t, nil
}

// ProfessionalExperience is the experience.yml document.
type ProfessionalExperience struct {
	Experiences []Experience `yaml:"experiences" json:"experiences" validate:"dive"`
}

// Skill is one entry of skills.yml.
type Skill struct {
	Name        string `yaml:"name" json:"name" validate:"required"`
	Category    string `yaml:"category,omitempty" json:"category,omitempty"`
	Proficiency string `yaml:"proficiency,omitempty" json:"proficiency,omitempty"`
}

// Skills is the skills.yml document.
type Skills struct {
	Skills []Skill `yaml:"skills" json:"skills" validate:"dive"`
}

// Names returns every skill name.
func (s *Skills) Names() []string {
	out := make([]string, len(s.Skills))
	for i, sk := range s.Skills {
		out[i] = sk.Name
	}
	return out
}

// ByCategory returns the skills in category, in file order.
func (s *Skills) ByCategory(category string) []Skill {
	var out []Skill
	for _, sk := range s.Skills {
		if sk.Category == category {
			out = append(out, sk)
		}
	}
	return out
}

// Categories returns category names in first-seen order.
func (s *Skills) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, sk := range s.Skills {
		if !seen[sk.Category] {
			seen[sk.Category] = true
			out = append(out, sk.Category)
		}
	}
	return out
}

// Footer is the optional closing line.
type Footer struct {
	Text     string `yaml:"text" json:"text"`
	Link     string `yaml:"link,omitempty" json:"link,omitempty" validate:"omitempty,url"`
	LinkText string `yaml:"link_text,omitempty" json:"link_text,omitempty"`
}

// Resume is a fully resolved profile, ready to render.
type Resume struct {
	Header     Header                 `json:"header" validate:"required"`
	Summary    Summary                `json:"summary"`
	Experience ProfessionalExperience `json:"experience"`
	Skills     Skills                 `json:"skills"`
	Footer     *Footer                `json:"footer,omitempty"`
}

// Validate validates the Resume using the validator.
func (r *Resume) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ProfessionalExperience using the validator.
func (p *ProfessionalExperience) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// SourceStatement is an existing achievement offered to the drafting stage.
type SourceStatement struct {
	SourceID string `json:"source_id"`
	Company  string `json:"company"`
	Title    string `json:"title"`
	Text     string `json:"text"`
}
