// Package stages runs single generation steps against the structured generation
// capability and turns raw responses into schema-valid values.
package stages

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/jonathan/resume-as-code/internal/logging"
	"github.com/jonathan/resume-as-code/internal/prompts"
	"github.com/jonathan/resume-as-code/internal/schemas"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Defaults for Options.
const (
	DefaultMaxTries       = 3
	DefaultCallTimeout    = 90 * time.Second
	DefaultInitialBackoff = 500 * time.Millisecond
	DefaultMaxBackoff     = 8 * time.Second
)

// Options tune retries and pacing of capability calls.
type Options struct {
	// MaxTries bounds invocations per stage execution, first try included.
	MaxTries int
	// CallTimeout bounds a single capability invocation.
	CallTimeout time.Duration
	// RequestsPerSecond paces invocations across all stages. Zero disables pacing.
	RequestsPerSecond float64
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	JitterFrac        float64
	Logger            *logging.Logger
	// Sleep waits between tries. Tests replace it.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Executor runs stages. It is safe for concurrent use.
type Executor struct {
	capability Capability
	opts       Options
	limiter    *rate.Limiter
	logger     *logging.Logger
}

// NewExecutor fills unset options with defaults.
func NewExecutor(capability Capability, opts Options) *Executor {
	if opts.MaxTries <= 0 {
		opts.MaxTries = DefaultMaxTries
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = DefaultCallTimeout
	}
	if opts.InitialBackoff <= 0 {
		opts.InitialBackoff = DefaultInitialBackoff
	}
	if opts.MaxBackoff <= 0 {
		opts.MaxBackoff = DefaultMaxBackoff
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepCtx
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	e := &Executor{
		capability: capability,
		opts:       opts,
		logger:     logger.Named("stages"),
	}
	if opts.RequestsPerSecond > 0 {
		e.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return e
}

// MaxTries returns the per-stage invocation ceiling.
func (e *Executor) MaxTries() int {
	return e.opts.MaxTries
}

// Run executes spec with payload and decodes the schema-valid result into a T.
// Transient and structural failures are retried up to MaxTries; anything that escapes is
// a *FatalError.
func Run[T any](ctx context.Context, e *Executor, spec Spec, payload Payload) (*T, error) {
	raw, err := e.Execute(ctx, spec, payload)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		// Execute already decoded once, so this only fails on a type mismatch
		return nil, &FatalError{Stage: spec.Name, Tries: 1, Cause: err}
	}
	return &out, nil
}

// Execute runs spec and returns the validated JSON document.
func (e *Executor) Execute(ctx context.Context, spec Spec, payload Payload) (json.RawMessage, error) {
	schema, err := schemas.Load(spec.Schema)
	if err != nil {
		return nil, &FatalError{Stage: spec.Name, Cause: err}
	}
	prompt, err := buildPrompt(spec, schema, payload)
	if err != nil {
		return nil, &FatalError{Stage: spec.Name, Cause: err}
	}

	req := Request{Stage: spec.Name, Schema: schema, Prompt: prompt, Tier: spec.Tier}
	var lastErr error
	for try := 1; try <= e.opts.MaxTries; try++ {
		if try > 1 {
			wait := backoffSleep(e.opts.InitialBackoff, e.opts.MaxBackoff, e.opts.JitterFrac, try-2)
			if err := e.opts.Sleep(ctx, wait); err != nil {
				return nil, &FatalError{Stage: spec.Name, Tries: try - 1, Cause: err}
			}
		}

		doc, err := e.try(ctx, req)
		if err == nil {
			e.logger.Debug(ctx, "stage completed", zap.String("stage", spec.Name), zap.Int("try", try))
			return doc, nil
		}

		if ctx.Err() != nil {
			return nil, &FatalError{Stage: spec.Name, Tries: try, Cause: ctx.Err()}
		}

		var te *TransientError
		var se *StructuralError
		if !errors.As(err, &te) && !errors.As(err, &se) {
			e.logger.Error(ctx, "stage failed", zap.String("stage", spec.Name), zap.Error(err))
			return nil, &FatalError{Stage: spec.Name, Tries: try, Cause: err}
		}

		lastErr = err
		e.logger.Warn(ctx, "stage try failed",
			zap.String("stage", spec.Name),
			zap.Int("try", try),
			zap.Int("max_tries", e.opts.MaxTries),
			zap.Error(err))
	}

	return nil, &FatalError{Stage: spec.Name, Tries: e.opts.MaxTries, Cause: lastErr}
}

// try performs one paced, time-bounded invocation and classifies its failure.
func (e *Executor) try(ctx context.Context, req Request) (json.RawMessage, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, e.opts.CallTimeout)
	defer cancel()

	raw, err := e.capability.Invoke(callCtx, req)
	if err != nil {
		switch {
		case isStructural(err):
			return nil, &StructuralError{Stage: req.Stage, Cause: err}
		case IsTransient(err) || (callCtx.Err() != nil && ctx.Err() == nil):
			return nil, &TransientError{Stage: req.Stage, Cause: err}
		default:
			return nil, err
		}
	}

	doc := []byte(raw)
	if !json.Valid(doc) {
		return nil, &StructuralError{Stage: req.Stage, Raw: raw, Cause: errors.New("response is not valid JSON")}
	}
	if err := req.Schema.Validate(doc); err != nil {
		return nil, &StructuralError{Stage: req.Stage, Raw: raw, Cause: err}
	}
	return doc, nil
}

func buildPrompt(spec Spec, schema *schemas.Schema, payload Payload) (string, error) {
	ctxJSON, err := json.MarshalIndent(payload.Context, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode %s context: %w", spec.Name, err)
	}

	data := make(map[string]string, len(payload.Vars)+2)
	for k, v := range payload.Vars {
		data[k] = v
	}
	data["Context"] = string(ctxJSON)
	data["Schema"] = schema.Raw

	return prompts.Render(spec.Template, data)
}

func backoffSleep(initial, max time.Duration, jitterFrac float64, attempt int) time.Duration {
	sleep := initial
	for i := 0; i < attempt && sleep < max; i++ {
		sleep *= 2
		if sleep > max {
			sleep = max
			break
		}
	}
	if jitterFrac <= 0 {
		return sleep
	}
	// +/- jitterFrac
	j := 1 + (rand.Float64()*2-1)*jitterFrac
	return time.Duration(float64(sleep) * j)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
