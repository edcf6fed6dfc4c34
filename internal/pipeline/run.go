// Package pipeline orchestrates a resume generation run: job analysis, a bounded
// draft, validate and review loop, the cover letter and the final bundle.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-as-code/internal/gate"
	"github.com/jonathan/resume-as-code/internal/logging"
	"github.com/jonathan/resume-as-code/internal/pipeline/steps"
	"github.com/jonathan/resume-as-code/internal/stages"
	"github.com/jonathan/resume-as-code/internal/style"
	"github.com/jonathan/resume-as-code/internal/types"
)

// DefaultMaxAttempts bounds drafting attempts when neither Input nor Options set one.
const DefaultMaxAttempts = 3

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	State    State  `json:"state"`
	Attempt  int    `json:"attempt,omitempty"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Recorder persists run artifacts. Failures are logged and never end the run.
type Recorder interface {
	CreateRun(ctx context.Context, runID uuid.UUID, profile string) error
	SaveArtifact(ctx context.Context, runID uuid.UUID, name string, content any) error
	CompleteRun(ctx context.Context, runID uuid.UUID, status types.Status, runErr error) error
}

// Options configure an Orchestrator.
type Options struct {
	MaxAttempts int
	Thresholds  gate.Thresholds
	// SpeculativeCoverLetter writes the cover letter alongside the last review.
	SpeculativeCoverLetter bool
	Logger                 *logging.Logger
	Recorder               Recorder
	OnProgress             ProgressCallback
}

// Input is one generation request.
type Input struct {
	JobPostingText string
	Experience     []types.SourceStatement
	Skills         []string
	Rules          types.StyleRuleSet
	// MaxAttempts overrides Options.MaxAttempts when positive.
	MaxAttempts int
	Profile     string
}

// Orchestrator runs the generation state machine. It holds no per-run state and may
// serve concurrent runs.
type Orchestrator struct {
	exec   *stages.Executor
	opts   Options
	logger *logging.Logger
}

// New returns an Orchestrator that runs stages through exec.
func New(exec *stages.Executor, opts Options) *Orchestrator {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.Thresholds == (gate.Thresholds{}) {
		opts.Thresholds = gate.DefaultThresholds()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{exec: exec, opts: opts, logger: logger.Named("pipeline")}
}

// run is the mutable state of one execution. Only the control loop touches it.
type run struct {
	id       uuid.UUID
	in       Input
	max      int
	state    State
	done     steps.Completed
	analysis *types.JobAnalysis
	attempts []types.AttemptRecord
	started  time.Time
}

// sequence is the order execute visits steps within one run. The drafting steps repeat
// per attempt.
var sequence = []string{
	steps.AnalyzeJob,
	steps.DraftContent,
	steps.ValidateStyle,
	steps.ReviewContent,
	steps.CoverLetter,
	steps.Aggregate,
}

// Run executes the pipeline. On a fatal stage failure it returns a *RunError carrying
// the analysis and every attempt recorded so far.
func (o *Orchestrator) Run(ctx context.Context, in Input) (*types.PipelineResult, error) {
	if err := steps.ValidateSequence(sequence); err != nil {
		return nil, fmt.Errorf("invalid stage sequence: %w", err)
	}
	r := &run{
		id:      uuid.New(),
		in:      in,
		max:     o.opts.MaxAttempts,
		state:   StateAnalyzing,
		done:    steps.Completed{},
		started: time.Now(),
	}
	if in.MaxAttempts > 0 {
		r.max = in.MaxAttempts
	}

	ctx = logging.WithRunID(ctx, r.id.String())
	if in.Profile != "" {
		ctx = logging.WithProfile(ctx, in.Profile)
	}
	o.record(ctx, func(rec Recorder) error { return rec.CreateRun(ctx, r.id, in.Profile) })
	o.logger.Info(ctx, "pipeline started",
		zap.Int("max_attempts", r.max),
		zap.Int("statements", len(in.Experience)))

	result, err := o.execute(ctx, r)
	if err != nil {
		o.logger.Error(ctx, "pipeline failed", zap.String("state", string(r.state)), zap.Error(err))
		o.record(ctx, func(rec Recorder) error { return rec.CompleteRun(ctx, r.id, types.StatusFailed, err) })
		return nil, err
	}

	o.record(ctx, func(rec Recorder) error { return rec.SaveArtifact(ctx, r.id, "result", result) })
	o.record(ctx, func(rec Recorder) error { return rec.CompleteRun(ctx, r.id, result.Status, nil) })
	o.logger.Info(ctx, "pipeline finished",
		zap.String("status", string(result.Status)),
		zap.Int("attempts", len(result.Attempts)),
		zap.Int("selected_attempt", result.Selected),
		zap.Duration("duration", result.Duration))
	return result, nil
}

func (o *Orchestrator) execute(ctx context.Context, r *run) (*types.PipelineResult, error) {
	// ANALYZING
	if err := o.enter(r, StateAnalyzing, steps.AnalyzeJob); err != nil {
		return nil, o.fail(r, err)
	}
	analysis, err := stages.AnalyzeJob(ctx, o.exec, r.in.JobPostingText)
	if err != nil {
		return nil, o.fail(r, err)
	}
	r.analysis = analysis
	r.done[steps.AnalyzeJob] = true
	o.record(ctx, func(rec Recorder) error { return rec.SaveArtifact(ctx, r.id, "analysis", analysis) })
	o.emit(r, steps.AnalyzeJob, 0,
		fmt.Sprintf("Analyzed job posting: %s", analysis.Title()), analysis)

	validator := style.NewValidator(r.in.Rules)
	var (
		feedback *gate.Feedback
		selected = -1
		status   types.Status
		letter   *speculation
	)

	for attempt := 1; attempt <= r.max; attempt++ {
		o.resetAttempt(r)

		// DRAFTING
		if err := o.enter(r, StateDrafting, steps.DraftContent); err != nil {
			return nil, o.fail(r, err)
		}
		draft, err := stages.Draft(ctx, o.exec, stages.DraftInput{
			JobAnalysis: analysis,
			Experience:  r.in.Experience,
			Skills:      r.in.Skills,
			Feedback:    feedback,
		}, r.in.Rules)
		if err != nil {
			return nil, o.fail(r, err)
		}
		r.done[steps.DraftContent] = true
		rec := types.AttemptRecord{Attempt: attempt, Draft: draft}
		o.emit(r, steps.DraftContent, attempt,
			fmt.Sprintf("Drafted %d achievements", len(draft.Achievements)), draft)

		// VALIDATING
		if err := o.enter(r, StateValidating, steps.ValidateStyle); err != nil {
			return nil, o.fail(r, err)
		}
		rec.Report = validator.Validate(draft)
		r.done[steps.ValidateStyle] = true
		o.emit(r, steps.ValidateStyle, attempt,
			fmt.Sprintf("Found %d style violations", len(rec.Report.Violations)), rec.Report)

		// REVIEWING
		if err := o.enter(r, StateReviewing, steps.ReviewContent); err != nil {
			return nil, o.fail(r, err)
		}
		reviewIn := stages.ReviewInput{JobAnalysis: analysis, Draft: draft, ValidationReport: rec.Report}
		var review *types.QualityReview
		if o.opts.SpeculativeCoverLetter && attempt == r.max {
			review, letter, err = o.reviewWithLetter(ctx, r, reviewIn, attempt)
		} else {
			review, err = stages.Review(ctx, o.exec, reviewIn, r.in.Rules)
		}
		if err != nil {
			// the completed draft stays in the history
			r.attempts = append(r.attempts, rec)
			return nil, o.fail(r, err)
		}
		r.done[steps.ReviewContent] = true
		rec.Review = review
		r.attempts = append(r.attempts, rec)
		o.record(ctx, func(rc Recorder) error {
			return rc.SaveArtifact(ctx, r.id, fmt.Sprintf("attempt_%d", attempt), rec)
		})

		decision := o.opts.Thresholds.Decide(review, rec.Report, attempt, r.max)
		o.logger.Info(ctx, "quality gate decision",
			zap.Int("attempt", attempt),
			zap.String("action", decision.Action.String()),
			zap.Int("job_alignment", review.JobAlignment),
			zap.Int("style_compliance", review.StyleCompliance),
			zap.Bool("accept", review.Accept),
			zap.Int("violations", len(rec.Report.Violations)))
		o.emit(r, steps.ReviewContent, attempt,
			fmt.Sprintf("Review: alignment %d, style %d, %s", review.JobAlignment, review.StyleCompliance, decision.Action), review)

		var next State
		switch decision.Action {
		case gate.Accept:
			next, selected, status = StateProceed, len(r.attempts)-1, types.StatusAccepted
		case gate.GiveUp:
			next, selected, status = StateProceed, gate.SelectBest(r.attempts), types.StatusDegraded
		default:
			next, feedback = StateRetry, decision.Feedback
		}
		if err := o.enter(r, next, ""); err != nil {
			return nil, o.fail(r, err)
		}
		if next == StateProceed {
			break
		}
	}

	best := r.attempts[selected]

	// COVER_LETTER
	if err := o.enter(r, StateCoverLetter, steps.CoverLetter); err != nil {
		return nil, o.fail(r, err)
	}
	cover := letter.forAttempt(best.Attempt)
	if cover == nil {
		cover, err = stages.WriteCoverLetter(ctx, o.exec, stages.CoverLetterInput{JobAnalysis: analysis, Draft: best.Draft})
		if err != nil {
			return nil, o.fail(r, err)
		}
	}
	r.done[steps.CoverLetter] = true
	o.record(ctx, func(rec Recorder) error { return rec.SaveArtifact(ctx, r.id, "cover_letter", cover) })
	o.emit(r, steps.CoverLetter, best.Attempt, "Wrote cover letter", cover)

	// AGGREGATING
	if err := o.enter(r, StateAggregating, steps.Aggregate); err != nil {
		return nil, o.fail(r, err)
	}
	result := aggregate(r, selected, status, cover)
	r.done[steps.Aggregate] = true
	if err := o.enter(r, StateDone, ""); err != nil {
		return nil, o.fail(r, err)
	}
	o.emit(r, steps.Aggregate, best.Attempt,
		fmt.Sprintf("Run %s after %d attempts", status, len(r.attempts)), nil)
	return result, nil
}

// aggregate assembles the immutable result bundle.
func aggregate(r *run, selected int, status types.Status, cover *types.CoverLetter) *types.PipelineResult {
	attempts := make([]types.AttemptRecord, len(r.attempts))
	copy(attempts, r.attempts)
	best := attempts[selected]
	return &types.PipelineResult{
		RunID:       r.id.String(),
		Status:      status,
		Analysis:    r.analysis,
		Draft:       best.Draft,
		Review:      best.Review,
		CoverLetter: cover,
		Attempts:    attempts,
		Selected:    best.Attempt,
		Duration:    time.Since(r.started),
	}
}

// enter moves the machine to state and checks that step's inputs exist. An empty step
// skips the dependency check.
func (o *Orchestrator) enter(r *run, state State, step string) error {
	if r.state != state && !CanTransition(r.state, state) {
		return &stages.FatalError{Stage: step, Cause: fmt.Errorf("illegal transition %s -> %s", r.state, state)}
	}
	r.state = state
	if step == "" {
		return nil
	}
	if err := steps.ValidateDependencies(r.done, step); err != nil {
		return &stages.FatalError{Stage: step, Cause: err}
	}
	return nil
}

// resetAttempt forgets the previous attempt's draft, validation and review.
func (o *Orchestrator) resetAttempt(r *run) {
	delete(r.done, steps.DraftContent)
	delete(r.done, steps.ValidateStyle)
	delete(r.done, steps.ReviewContent)
}

func (o *Orchestrator) fail(r *run, err error) error {
	attempts := make([]types.AttemptRecord, len(r.attempts))
	copy(attempts, r.attempts)
	runErr := &RunError{
		RunID:    r.id.String(),
		State:    r.state,
		Analysis: r.analysis,
		Attempts: attempts,
		Cause:    err,
	}
	r.state = StateFailed
	return runErr
}

func (o *Orchestrator) emit(r *run, step string, attempt int, message string, content any) {
	if o.opts.OnProgress == nil {
		return
	}
	o.opts.OnProgress(ProgressEvent{
		Step:     step,
		Category: steps.StepRegistry[step].Category,
		State:    r.state,
		Attempt:  attempt,
		Message:  message,
		RunID:    r.id.String(),
		Content:  content,
	})
}

func (o *Orchestrator) record(ctx context.Context, fn func(Recorder) error) {
	if o.opts.Recorder == nil {
		return
	}
	if err := fn(o.opts.Recorder); err != nil {
		o.logger.Warn(ctx, "failed to record run artifact", zap.Error(err))
	}
}

// speculation is a cover letter written before the gate picked its draft.
type speculation struct {
	attempt int
	letter  *types.CoverLetter
}

func (s *speculation) forAttempt(attempt int) *types.CoverLetter {
	if s == nil || s.attempt != attempt {
		return nil
	}
	return s.letter
}

// reviewWithLetter reviews the draft while writing its cover letter. A failed letter is
// dropped so the sequential path can retry it; a failed review fails the pair.
func (o *Orchestrator) reviewWithLetter(ctx context.Context, r *run, in stages.ReviewInput, attempt int) (*types.QualityReview, *speculation, error) {
	g, gCtx := errgroup.WithContext(ctx)

	var review *types.QualityReview
	var spec *speculation

	g.Go(func() error {
		var err error
		review, err = stages.Review(gCtx, o.exec, in, r.in.Rules)
		return err
	})
	g.Go(func() error {
		cover, err := stages.WriteCoverLetter(gCtx, o.exec, stages.CoverLetterInput{JobAnalysis: in.JobAnalysis, Draft: in.Draft})
		if err != nil {
			o.logger.Warn(gCtx, "speculative cover letter failed", zap.Int("attempt", attempt), zap.Error(err))
			return nil
		}
		spec = &speculation{attempt: attempt, letter: cover}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return review, spec, nil
}
