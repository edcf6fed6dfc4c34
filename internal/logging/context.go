package logging

import (
	"context"

	"go.uber.org/zap"
)

type runCtxKey struct{}
type profileCtxKey struct{}

// WithRunID attaches a generation run id to ctx.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runCtxKey{}, runID)
}

// RunIDFromContext returns the run id, or "".
func RunIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(runCtxKey{}).(string)
	return id
}

// WithProfile attaches a profile name to ctx.
func WithProfile(ctx context.Context, profile string) context.Context {
	return context.WithValue(ctx, profileCtxKey{}, profile)
}

// ProfileFromContext returns the profile name, or "".
func ProfileFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	p, _ := ctx.Value(profileCtxKey{}).(string)
	return p
}

// ContextFields extracts correlation data from ctx.
func ContextFields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 2)
	if id := RunIDFromContext(ctx); id != "" {
		fields = append(fields, zap.String("run.id", id))
	}
	if p := ProfileFromContext(ctx); p != "" {
		fields = append(fields, zap.String("profile", p))
	}
	return fields
}
