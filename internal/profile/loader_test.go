package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const commonHeader = `name: Jane Doe
title: Software Engineer
contact:
  email: jane@example.com
  phone: 555-0100
  github: https://github.com/jane
`

const commonExperience = `experiences:
  - company: Acme
    title: SRE
    location: Remote
    start_date: 2021-03-01
    current: true
    achievements:
      - Migrated 40 services to Kubernetes
      - Cut paging volume by 60%
    technologies: [Go, Kubernetes]
  - company: Initech
    title: Developer
    start_date: 2017-06-01
    end_date: 2021-02-28
    achievements:
      - Built the billing pipeline
`

const commonSkills = `skills:
  - name: Go
    category: Languages
    proficiency: Expert
  - name: Kubernetes
    category: Platforms
`

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// newDataDir lays out common files and one profile named "sre".
func newDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, CommonDir, HeaderFile), commonHeader)
	writeTestFile(t, filepath.Join(dir, CommonDir, ExperienceFile), commonExperience)
	writeTestFile(t, filepath.Join(dir, CommonDir, SkillsFile), commonSkills)
	writeTestFile(t, filepath.Join(dir, ProfilesDir, "sre", SummaryFile), "content: Reliability engineer.\n")
	return dir
}

func TestNewLoader_MissingProfile(t *testing.T) {
	_, err := NewLoader(t.TempDir(), "ghost")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "profile not found: ghost", err.Error())
}

func TestLoadResume_FallsBackToCommon(t *testing.T) {
	l, err := NewLoader(newDataDir(t), "sre")
	require.NoError(t, err)

	resume, err := l.LoadResume()
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", resume.Header.Name)
	assert.Equal(t, "Software Engineer", resume.Header.Title)
	assert.Equal(t, "jane@example.com", resume.Header.Contact.Email)
	assert.Equal(t, "Reliability engineer.", resume.Summary.Content)
	require.Len(t, resume.Experience.Experiences, 2)
	assert.True(t, resume.Experience.Experiences[0].IsCurrent())
	assert.False(t, resume.Experience.Experiences[1].IsCurrent())
	assert.Equal(t, []string{"Go", "Kubernetes"}, resume.Skills.Names())
	assert.Nil(t, resume.Footer)
}

func TestLoadResume_ProfileOverrides(t *testing.T) {
	dir := newDataDir(t)
	profileDir := filepath.Join(dir, ProfilesDir, "sre")
	writeTestFile(t, filepath.Join(profileDir, HeaderFile), "title: Staff SRE\n")
	writeTestFile(t, filepath.Join(profileDir, SkillsFile), "skills:\n  - name: Terraform\n")
	writeTestFile(t, filepath.Join(profileDir, ExperienceFile), `experiences:
  - company: Acme
    title: Staff SRE
    start_date: 2021-03-01
    achievements: [Led the platform team]
`)
	writeTestFile(t, filepath.Join(dir, CommonDir, FooterFile), "text: References on request\n")

	l, err := NewLoader(dir, "sre")
	require.NoError(t, err)
	resume, err := l.LoadResume()
	require.NoError(t, err)

	assert.Equal(t, "Staff SRE", resume.Header.Title)
	assert.Equal(t, "Jane Doe", resume.Header.Name, "common keys survive a partial override")
	assert.Equal(t, "555-0100", resume.Header.Contact.Phone)
	assert.Equal(t, []string{"Terraform"}, resume.Skills.Names())
	require.Len(t, resume.Experience.Experiences, 1)
	assert.Equal(t, "Staff SRE", resume.Experience.Experiences[0].Title)
	require.NotNil(t, resume.Footer)
	assert.Equal(t, "References on request", resume.Footer.Text)
}

func TestLoadResume_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		content    string
		errContain string
	}{
		{
			name:       "bad date",
			file:       filepath.Join(CommonDir, ExperienceFile),
			content:    "experiences:\n  - company: Acme\n    title: SRE\n    start_date: March 2021\n    achievements: []\n",
			errContain: "invalid experience",
		},
		{
			name:       "missing email",
			file:       filepath.Join(CommonDir, HeaderFile),
			content:    "name: Jane\ntitle: SRE\ncontact: {}\n",
			errContain: "invalid",
		},
		{
			name:       "broken yaml",
			file:       filepath.Join(CommonDir, SkillsFile),
			content:    "skills: [\n",
			errContain: "invalid YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := newDataDir(t)
			writeTestFile(t, filepath.Join(dir, tt.file), tt.content)

			l, err := NewLoader(dir, "sre")
			require.NoError(t, err)
			_, err = l.LoadResume()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContain)
		})
	}
}

func TestLoadSummary_Missing(t *testing.T) {
	dir := newDataDir(t)
	require.NoError(t, os.Remove(filepath.Join(dir, ProfilesDir, "sre", SummaryFile)))

	l, err := NewLoader(dir, "sre")
	require.NoError(t, err)
	_, err = l.LoadSummary()

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "file not found", le.Message)
}

func TestLoadJobDescription(t *testing.T) {
	dir := newDataDir(t)
	l, err := NewLoader(dir, "sre")
	require.NoError(t, err)

	_, err = l.LoadJobDescription()
	assert.Error(t, err)

	writeTestFile(t, filepath.Join(dir, ProfilesDir, "sre", JobFile), "Senior SRE wanted")
	text, err := l.LoadJobDescription()
	require.NoError(t, err)
	assert.Equal(t, "Senior SRE wanted", text)
}

func TestListProfiles(t *testing.T) {
	dir := newDataDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ProfilesDir, "backend"), 0o755))
	writeTestFile(t, filepath.Join(dir, ProfilesDir, "notes.txt"), "not a profile")

	names, err := ListProfiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"backend", "sre"}, names)

	names, err = ListProfiles(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestExperienceFileRoundTrip(t *testing.T) {
	dir := newDataDir(t)
	exp, err := LoadExperienceFile(filepath.Join(dir, CommonDir, ExperienceFile))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "cv.yml")
	require.NoError(t, SaveExperienceFile(out, exp.Experiences))

	again, err := LoadExperienceFile(out)
	require.NoError(t, err)
	assert.Equal(t, exp, again)
}

func TestLoadCommonSkills(t *testing.T) {
	skills, err := LoadCommonSkills(newDataDir(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Kubernetes"}, skills.Names())

	skills, err = LoadCommonSkills(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, skills.Skills)
}
