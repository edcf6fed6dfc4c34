package profile

import (
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-as-code/internal/types"
)

// Defaults for AddSkill.
const (
	DefaultSkillCategory    = "General"
	DefaultSkillProficiency = "Intermediate"
)

// AddSkill appends a skill to common/skills.yml. It reports false when a skill with the
// same name (ignoring case) is already listed.
func AddSkill(dataDir, name, category, proficiency string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, &LoadError{Path: SkillsFile, Message: "skill name is empty"}
	}
	if category == "" {
		category = DefaultSkillCategory
	}
	if proficiency == "" {
		proficiency = DefaultSkillProficiency
	}

	path := filepath.Join(dataDir, CommonDir, SkillsFile)
	var skills types.Skills
	if exists(path) {
		if err := readYAML(path, &skills); err != nil {
			return false, err
		}
	}

	for _, s := range skills.Skills {
		if strings.EqualFold(s.Name, name) {
			return false, nil
		}
	}
	skills.Skills = append(skills.Skills, types.Skill{Name: name, Category: category, Proficiency: proficiency})
	if err := writeYAML(path, skills); err != nil {
		return false, err
	}
	return true, nil
}
