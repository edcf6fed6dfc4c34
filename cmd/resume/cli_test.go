package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHeader = `name: Jane Doe
title: Software Engineer
contact:
  email: jane@example.com
`

const testSkills = `skills:
  - name: Go
    category: Languages
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// newDataDir lays out common files and a profile "sre" with the given achievement.
func newDataDir(t *testing.T, achievement string) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "common", "header.yml"), testHeader)
	writeFile(t, filepath.Join(dir, "common", "skills.yml"), testSkills)
	writeFile(t, filepath.Join(dir, "common", "experience.yml"), `experiences:
  - company: Acme
    title: SRE
    start_date: 2021-03-01
    current: true
    achievements:
      - "`+achievement+`"
`)
	writeFile(t, filepath.Join(dir, "profiles", "sre", "summary.yml"), "content: Reliability engineer.\n")
	return dir
}

// execute runs the root command in-process and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "Resume as Code - v"+Version+"\n", out)
}

func TestListProfilesCommand(t *testing.T) {
	dir := newDataDir(t, "Migrated 40 services to Kubernetes")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "profiles", "backend"), 0o755))

	out, err := execute(t, "list-profiles", "--data-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Available profiles:")
	assert.Less(t, strings.Index(out, "backend"), strings.Index(out, "sre"))
}

func TestListProfilesCommand_Empty(t *testing.T) {
	out, err := execute(t, "list-profiles", "--data-dir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No profiles found")
}

func TestAddSkillCommand(t *testing.T) {
	dir := newDataDir(t, "Migrated 40 services to Kubernetes")

	out, err := execute(t, "add-skill", "sre", "Terraform", "-c", "Infrastructure", "-p", "Advanced", "--data-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Added skill 'Terraform' (Infrastructure - Advanced)")

	data, err := os.ReadFile(filepath.Join(dir, "common", "skills.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Terraform")

	out, err = execute(t, "add-skill", "sre", "terraform", "--data-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
}

func TestCheckStyleCommand_Clean(t *testing.T) {
	dir := newDataDir(t, "Migrated 40 services to Kubernetes")

	out, err := execute(t, "check-style", "sre", "--data-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "NO VIOLATIONS FOUND")
}

func TestCheckStyleCommand_Violations(t *testing.T) {
	dir := newDataDir(t, "I helped with the billing pipeline")

	out, err := execute(t, "check-style", "sre", "--data-dir", dir)
	require.Error(t, err)
	var violations errViolations
	require.ErrorAs(t, err, &violations)
	assert.Contains(t, out, "first_person")
}

func TestCheckStyleCommand_UnknownProfile(t *testing.T) {
	_, err := execute(t, "check-style", "missing", "--data-dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile not found")
}

func TestBuildCommand_HTML(t *testing.T) {
	dir := newDataDir(t, "Migrated 40 services to Kubernetes")
	outPath := filepath.Join(t.TempDir(), "sre.html")

	out, err := execute(t, "build", "sre", "--format", "html", "-o", outPath, "--data-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, outPath)

	html, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Jane Doe")
	assert.Contains(t, string(html), "Migrated 40 services to Kubernetes")
}

func TestBuildCommand_OutputNeedsSingleFormat(t *testing.T) {
	dir := newDataDir(t, "Migrated 40 services to Kubernetes")

	_, err := execute(t, "build", "sre", "--format", "both", "-o", "x", "--data-dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "single format")
}

func TestGenerateProfileCommand_RequiresJob(t *testing.T) {
	_, err := execute(t, "generate-profile", "new-profile", "--data-dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--job or --job-url")
}

func TestOutputDir(t *testing.T) {
	assert.Equal(t, "output", outputDir("data"))
	assert.Equal(t, filepath.Join("/home/jane", "output"), outputDir("/home/jane/resume-data/"))
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		spec    string
		want    []string
		wantErr bool
	}{
		{spec: "html", want: []string{"html"}},
		{spec: "PDF", want: []string{"pdf"}},
		{spec: "both", want: []string{"html", "pdf"}},
		{spec: "pdf, html", want: []string{"pdf", "html"}},
		{spec: "html,both", want: []string{"html", "pdf"}},
		{spec: "docx", wantErr: true},
		{spec: " , ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := parseFormats(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "\n", want: true},
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "n\n", want: false},
		{input: "", want: false},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			assert.Equal(t, tt.want, confirm(strings.NewReader(tt.input), &out, "Write?"))
			assert.Contains(t, out.String(), "Write? [Y/n]")
		})
	}
}
