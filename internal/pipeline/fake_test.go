package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-as-code/internal/stages"
	"github.com/jonathan/resume-as-code/internal/types"
)

type response func(req stages.Request) (string, error)

// fakeModel replays scripted responses per stage. The last response repeats.
type fakeModel struct {
	mu        sync.Mutex
	responses map[string][]response
	calls     map[string]int
	prompts   map[string][]string
}

func newFakeModel() *fakeModel {
	return &fakeModel{
		responses: make(map[string][]response),
		calls:     make(map[string]int),
		prompts:   make(map[string][]string),
	}
}

func (f *fakeModel) on(stage string, rs ...response) *fakeModel {
	f.responses[stage] = append(f.responses[stage], rs...)
	return f
}

func (f *fakeModel) Invoke(_ context.Context, req stages.Request) (string, error) {
	f.mu.Lock()
	n := f.calls[req.Stage]
	f.calls[req.Stage]++
	f.prompts[req.Stage] = append(f.prompts[req.Stage], req.Prompt)
	list := f.responses[req.Stage]
	f.mu.Unlock()

	if len(list) == 0 {
		return "", fmt.Errorf("no response scripted for stage %s", req.Stage)
	}
	if n >= len(list) {
		n = len(list) - 1
	}
	return list[n](req)
}

func (f *fakeModel) callCount(stage string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[stage]
}

func (f *fakeModel) promptsFor(stage string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts[stage]...)
}

func reply(t *testing.T, v any) response {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return func(stages.Request) (string, error) { return string(b), nil }
}

func failWith(err error) response {
	return func(stages.Request) (string, error) { return "", err }
}

func analysisFixture() *types.JobAnalysis {
	return &types.JobAnalysis{
		RequiredSkills:   []string{"Go", "Kubernetes"},
		PreferredSkills:  []string{"Terraform"},
		Responsibilities: []string{"Run the platform"},
		Seniority:        "Senior",
		RoleCategory:     "SRE",
	}
}

func draftFixture(title string, achievements ...string) *types.DraftContent {
	d := &types.DraftContent{
		Title:   title,
		Summary: "Platform engineer with a record of reliable systems.",
		Skills:  []types.DraftSkill{{Name: "Go"}, {Name: "Kubernetes"}},
	}
	for i, a := range achievements {
		d.Achievements = append(d.Achievements, types.Achievement{SourceID: fmt.Sprintf("exp-%d", i+1), Text: a})
	}
	return d
}

func reviewFixture(accept bool, alignment, style int, issues ...string) *types.QualityReview {
	return &types.QualityReview{
		Accept:          accept,
		JobAlignment:    alignment,
		StyleCompliance: style,
		Issues:          append([]string{}, issues...),
		Suggestions:     []string{},
	}
}

func letterFixture(opening string) *types.CoverLetter {
	return &types.CoverLetter{
		Opening: opening,
		Body:    []string{"I have run platforms at scale."},
		Closing: "I would welcome a conversation.",
	}
}

func testInput(rules types.StyleRuleSet, maxAttempts int) Input {
	return Input{
		JobPostingText: "Senior SRE. Go and Kubernetes required.",
		Experience: []types.SourceStatement{
			{SourceID: "exp-1", Company: "Acme", Title: "SRE", Text: "Migrated services to Kubernetes"},
			{SourceID: "exp-1", Company: "Acme", Title: "SRE", Text: "Cut paging volume"},
		},
		Rules:       rules,
		MaxAttempts: maxAttempts,
	}
}

func newTestOrchestrator(model stages.Capability, opts Options) *Orchestrator {
	exec := stages.NewExecutor(model, stages.Options{
		CallTimeout: time.Second,
		Sleep:       func(context.Context, time.Duration) error { return nil },
	})
	return New(exec, opts)
}

type recordedArtifact struct {
	name    string
	content any
}

// memoryRecorder keeps everything in memory.
type memoryRecorder struct {
	mu        sync.Mutex
	created   []uuid.UUID
	artifacts []recordedArtifact
	status    types.Status
	runErr    error
	failSaves bool
}

func (m *memoryRecorder) CreateRun(_ context.Context, runID uuid.UUID, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, runID)
	return nil
}

func (m *memoryRecorder) SaveArtifact(_ context.Context, _ uuid.UUID, name string, content any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSaves {
		return fmt.Errorf("database unavailable")
	}
	m.artifacts = append(m.artifacts, recordedArtifact{name: name, content: content})
	return nil
}

func (m *memoryRecorder) CompleteRun(_ context.Context, _ uuid.UUID, status types.Status, runErr error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = status
	m.runErr = runErr
	return nil
}

func (m *memoryRecorder) names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.artifacts))
	for _, a := range m.artifacts {
		out = append(out, a.name)
	}
	return out
}
