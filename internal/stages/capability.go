package stages

import (
	"context"

	"github.com/jonathan/resume-as-code/internal/llm"
	"github.com/jonathan/resume-as-code/internal/schemas"
)

// Request is one call to the generation capability.
type Request struct {
	Stage  string
	Schema *schemas.Schema
	Prompt string
	Tier   llm.ModelTier
}

// Capability turns a schema-bound prompt into a raw JSON document.
type Capability interface {
	Invoke(ctx context.Context, req Request) (string, error)
}

// CapabilityFunc adapts a function to Capability.
type CapabilityFunc func(ctx context.Context, req Request) (string, error)

// Invoke calls f.
func (f CapabilityFunc) Invoke(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// LLMCapability serves requests with an llm.Client in JSON mode.
type LLMCapability struct {
	Client llm.Client
}

// NewLLMCapability wraps client.
func NewLLMCapability(client llm.Client) *LLMCapability {
	return &LLMCapability{Client: client}
}

// Invoke sends the prompt at the request's tier.
func (c *LLMCapability) Invoke(ctx context.Context, req Request) (string, error) {
	return c.Client.GenerateJSON(ctx, req.Prompt, req.Tier)
}
