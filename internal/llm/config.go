// Package llm provides the model clients behind the structured generation stages.
// Each provider maps three capability tiers onto concrete model names.
package llm

import "fmt"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple extraction such as CV conversion
	TierLite ModelTier = "lite"
	// TierStandard is for job analysis and cover letters
	TierStandard ModelTier = "standard"
	// TierAdvanced is for drafting and review
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderAnthropic Provider = "anthropic"
)

// ParseProvider accepts "gemini", "anthropic" or "claude". Empty means gemini.
func ParseProvider(s string) (Provider, error) {
	switch s {
	case "", string(ProviderGemini):
		return ProviderGemini, nil
	case string(ProviderAnthropic), "claude":
		return ProviderAnthropic, nil
	default:
		return "", fmt.Errorf("unsupported provider %q (want gemini or anthropic)", s)
	}
}

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
	MaxTokens   int64
}

// DefaultConfig returns the Gemini configuration.
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// ConfigFor returns the default configuration of p.
func ConfigFor(p Provider) *Config {
	if p == ProviderAnthropic {
		return DefaultAnthropicConfig()
	}
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: 0.1,
		MaxTokens:   8192,
	}
}

// DefaultAnthropicConfig returns the default Claude configuration.
func DefaultAnthropicConfig() *Config {
	return &Config{
		Provider: ProviderAnthropic,
		Models: map[ModelTier]string{
			TierLite:     "claude-haiku-4-5-20251001",
			TierStandard: "claude-sonnet-4-5-20250929",
			TierAdvanced: "claude-sonnet-4-5-20250929",
		},
		Temperature: 0.1,
		MaxTokens:   4096,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of c with model set for tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := *c
	newConfig.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return &newConfig
}

// WithAllModels returns a copy of c that uses model for every tier.
func (c *Config) WithAllModels(model string) *Config {
	out := c
	for _, tier := range []ModelTier{TierLite, TierStandard, TierAdvanced} {
		out = out.WithModel(tier, model)
	}
	return out
}
