// Package profile reads and writes the on-disk resume data directory: shared files
// under common/ and per-profile overrides under profiles/<name>/.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/resume-as-code/internal/types"
)

// File names inside common/ and profiles/<name>/.
const (
	CommonDir      = "common"
	ProfilesDir    = "profiles"
	HeaderFile     = "header.yml"
	SummaryFile    = "summary.yml"
	ExperienceFile = "experience.yml"
	SkillsFile     = "skills.yml"
	FooterFile     = "footer.yml"
	JobFile        = "job.txt"
	CoverFile      = "cover_letter.md"
	ReviewFile     = "review.json"
)

// Loader resolves one profile against the shared common files.
type Loader struct {
	DataDir string
	Profile string
}

// NewLoader fails if the profile directory does not exist.
func NewLoader(dataDir, profile string) (*Loader, error) {
	l := &Loader{DataDir: dataDir, Profile: profile}
	info, err := os.Stat(l.ProfileDir())
	if err != nil || !info.IsDir() {
		return nil, &NotFoundError{Profile: profile}
	}
	return l, nil
}

// CommonDir returns <data_dir>/common.
func (l *Loader) CommonDir() string {
	return filepath.Join(l.DataDir, CommonDir)
}

// ProfileDir returns <data_dir>/profiles/<profile>.
func (l *Loader) ProfileDir() string {
	return ProfilePath(l.DataDir, l.Profile)
}

// ProfilePath returns the directory of profile under dataDir.
func ProfilePath(dataDir, profile string) string {
	return filepath.Join(dataDir, ProfilesDir, profile)
}

// resolve prefers the profile's copy of name over the common one.
func (l *Loader) resolve(name string) string {
	if p := filepath.Join(l.ProfileDir(), name); exists(p) {
		return p
	}
	return filepath.Join(l.CommonDir(), name)
}

// LoadHeader reads the common header and applies the profile's overrides on top.
func (l *Loader) LoadHeader() (types.Header, error) {
	var header types.Header
	if err := readYAML(filepath.Join(l.CommonDir(), HeaderFile), &header); err != nil {
		return types.Header{}, err
	}
	if p := filepath.Join(l.ProfileDir(), HeaderFile); exists(p) {
		// keys present in the profile file replace the common values
		if err := readYAML(p, &header); err != nil {
			return types.Header{}, err
		}
	}
	return header, nil
}

// LoadSummary reads the profile summary, falling back to common.
func (l *Loader) LoadSummary() (types.Summary, error) {
	var summary types.Summary
	if err := readYAML(l.resolve(SummaryFile), &summary); err != nil {
		return types.Summary{}, err
	}
	return summary, nil
}

// LoadExperience reads the profile's experience, falling back to common.
func (l *Loader) LoadExperience() (types.ProfessionalExperience, error) {
	return LoadExperienceFile(l.resolve(ExperienceFile))
}

// LoadSkills reads the profile's skills, falling back to common.
func (l *Loader) LoadSkills() (types.Skills, error) {
	var skills types.Skills
	if err := readYAML(l.resolve(SkillsFile), &skills); err != nil {
		return types.Skills{}, err
	}
	return skills, nil
}

// LoadFooter returns nil when common/footer.yml is absent.
func (l *Loader) LoadFooter() (*types.Footer, error) {
	path := filepath.Join(l.CommonDir(), FooterFile)
	if !exists(path) {
		return nil, nil
	}
	var footer types.Footer
	if err := readYAML(path, &footer); err != nil {
		return nil, err
	}
	return &footer, nil
}

// LoadResume assembles and validates the full resume for the profile.
func (l *Loader) LoadResume() (*types.Resume, error) {
	header, err := l.LoadHeader()
	if err != nil {
		return nil, err
	}
	summary, err := l.LoadSummary()
	if err != nil {
		return nil, err
	}
	exp, err := l.LoadExperience()
	if err != nil {
		return nil, err
	}
	skills, err := l.LoadSkills()
	if err != nil {
		return nil, err
	}
	footer, err := l.LoadFooter()
	if err != nil {
		return nil, err
	}

	resume := &types.Resume{
		Header:     header,
		Summary:    summary,
		Experience: exp,
		Skills:     skills,
		Footer:     footer,
	}
	if err := resume.Validate(); err != nil {
		return nil, fmt.Errorf("profile %s is invalid: %w", l.Profile, err)
	}
	return resume, nil
}

// LoadJobDescription reads the profile's job.txt.
func (l *Loader) LoadJobDescription() (string, error) {
	path := filepath.Join(l.ProfileDir(), JobFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &LoadError{Path: path, Message: fmt.Sprintf("no job description found for profile %s", l.Profile), Cause: err}
	}
	return string(data), nil
}

// LoadExperienceFile reads an experience document from any path.
func LoadExperienceFile(path string) (types.ProfessionalExperience, error) {
	var exp types.ProfessionalExperience
	if err := readYAML(path, &exp); err != nil {
		return types.ProfessionalExperience{}, err
	}
	for i := range exp.Experiences {
		exp.Experiences[i].StartDate = strings.TrimSpace(exp.Experiences[i].StartDate)
		exp.Experiences[i].EndDate = strings.TrimSpace(exp.Experiences[i].EndDate)
	}
	if err := exp.Validate(); err != nil {
		return types.ProfessionalExperience{}, &LoadError{Path: path, Message: "invalid experience", Cause: err}
	}
	return exp, nil
}

// SaveExperienceFile writes an experience document to path.
func SaveExperienceFile(path string, experiences []types.Experience) error {
	return writeYAML(path, types.ProfessionalExperience{Experiences: experiences})
}

// ListProfiles returns the profile directory names under dataDir, sorted.
func ListProfiles(dataDir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(dataDir, ProfilesDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// LoadCommonSkills reads common/skills.yml. A missing file yields no skills.
func LoadCommonSkills(dataDir string) (types.Skills, error) {
	path := filepath.Join(dataDir, CommonDir, SkillsFile)
	if !exists(path) {
		return types.Skills{}, nil
	}
	var skills types.Skills
	if err := readYAML(path, &skills); err != nil {
		return types.Skills{}, err
	}
	return skills, nil
}
