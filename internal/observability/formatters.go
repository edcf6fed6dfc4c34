// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/resume-as-code/internal/pipeline"
	"github.com/jonathan/resume-as-code/internal/skills"
	"github.com/jonathan/resume-as-code/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// writeList writes up to limit items with a "... and N more" tail.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, item := range items[:min(len(items), limit)] {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintProgress writes a one-line status for a pipeline event.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(event pipeline.ProgressEvent) {
	marker := "→"
	switch event.State {
	case pipeline.StateDone:
		marker = "✓"
	case pipeline.StateFailed:
		marker = "✗"
	case pipeline.StateRetry:
		marker = "↻"
	}
	if event.Attempt > 0 {
		fmt.Fprintf(p.out, "%s [%s #%d] %s\n", marker, event.State, event.Attempt, event.Message)
		return
	}
	fmt.Fprintf(p.out, "%s [%s] %s\n", marker, event.State, event.Message)
}

// PrintAnalysis outputs a human-readable summary of the job analysis.
func (p *Printer) PrintAnalysis(analysis *types.JobAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role:      %s\n", analysis.RoleCategory))
	sb.WriteString(fmt.Sprintf("Seniority: %s\n", analysis.Seniority))
	sb.WriteString("\n")

	writeList(&sb, "Required Skills", analysis.RequiredSkills, maxItemsToShow)
	writeList(&sb, "Preferred Skills", analysis.PreferredSkills, 3)
	writeList(&sb, "Responsibilities", analysis.Responsibilities, 3)
	if analysis.CultureNotes != "" {
		sb.WriteString(fmt.Sprintf("Culture: %s\n", analysis.CultureNotes))
	}

	p.printBox("JOB ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkillGap outputs the comparison of resume skills with the job's skills.
func (p *Printer) PrintSkillGap(gap skills.Gap) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match: %.1f%% of required skills\n\n", gap.MatchPercentage))

	writeList(&sb, "Matching", gap.Matching, maxItemsToShow)
	writeList(&sb, "Missing (required)", gap.MissingRequired, maxItemsToShow)
	writeList(&sb, "Missing (preferred)", gap.MissingPreferred, 3)
	if len(gap.Recommendations) > 0 {
		sb.WriteString("\n")
		for _, r := range gap.Recommendations {
			sb.WriteString(fmt.Sprintf("→ %s\n", r))
		}
	}

	p.printBox("SKILL GAP", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReview outputs the reviewer's scores and notes.
func (p *Printer) PrintReview(review *types.QualityReview) {
	if review == nil {
		return
	}

	verdict := "rejected"
	if review.Accept {
		verdict = "accepted"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Verdict:          %s\n", verdict))
	sb.WriteString(fmt.Sprintf("Job alignment:    %d/10\n", review.JobAlignment))
	sb.WriteString(fmt.Sprintf("Style compliance: %d/10\n", review.StyleCompliance))
	sb.WriteString("\n")

	writeList(&sb, "Strengths", review.Strengths, 3)
	writeList(&sb, "Issues", review.Issues, 3)
	writeList(&sb, "Suggestions", review.Suggestions, 3)

	p.printBox("QUALITY REVIEW", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidationReport outputs any style violations found.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidationReport(report *types.ValidationReport) {
	if report.Clean() {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO VIOLATIONS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d violations:\n\n", len(report.Violations)))

	for i, v := range report.Violations {
		sb.WriteString(fmt.Sprintf("⚠ %s (statement %d)\n", v.Rule, v.StatementIndex+1))
		sb.WriteString(fmt.Sprintf("  %s\n", v.Statement))
		if v.Detail != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", v.Detail))
		}
		if i < len(report.Violations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("STYLE VIOLATIONS", sb.String())
}

// PrintResult outputs the outcome of a generation run.
func (p *Printer) PrintResult(result *types.PipelineResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:      %s\n", result.RunID))
	sb.WriteString(fmt.Sprintf("Status:   %s\n", result.Status))
	sb.WriteString(fmt.Sprintf("Attempts: %d (selected #%d)\n", len(result.Attempts), result.Selected))
	sb.WriteString(fmt.Sprintf("Duration: %s\n", result.Duration.Round(time.Millisecond)))
	if result.Draft != nil {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", result.Draft.Title))
		sb.WriteString(fmt.Sprintf("Bullets:  %d\n", len(result.Draft.Achievements)))
	}
	if result.CoverLetter != nil {
		sb.WriteString("Cover letter: yes")
	} else {
		sb.WriteString("Cover letter: no")
	}

	p.printBox("GENERATION RESULT", sb.String())
}
