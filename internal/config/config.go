// Package config provides configuration loading and validation for the CLI.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/jonathan/resume-as-code/internal/llm"
	"github.com/jonathan/resume-as-code/internal/logging"
	"github.com/jonathan/resume-as-code/internal/types"
)

// EnvPrefix is stripped from environment overrides: RESUME_MAX_ATTEMPTS sets max_attempts.
const EnvPrefix = "RESUME_"

const maxConfigFileSize = 1024 * 1024

// Defaults applied by MergeWithDefaults.
const (
	DefaultDataDir           = "data"
	DefaultMaxAttempts       = 3
	DefaultStructuralRetries = 3
	DefaultCallTimeout       = 90 * time.Second
	DefaultRequestsPerSecond = 1.0
)

// Config represents the CLI configuration. Every field is optional in the file.
type Config struct {
	DataDir  string `koanf:"data_dir"`
	Provider string `koanf:"provider" validate:"omitempty,oneof=gemini anthropic claude"`
	Model    string `koanf:"model"`
	APIKey   string `koanf:"api_key"`

	// Pipeline
	MaxAttempts            int           `koanf:"max_attempts" validate:"gte=0,lte=10"`
	StructuralRetries      int           `koanf:"structural_retries" validate:"gte=0,lte=10"` // total tries per stage call
	CallTimeout            time.Duration `koanf:"call_timeout" validate:"gte=0"`
	RequestsPerSecond      float64       `koanf:"requests_per_second" validate:"gte=0"`
	SpeculativeCoverLetter bool          `koanf:"speculative_cover_letter"`

	DatabaseURL string `koanf:"database_url" validate:"omitempty,url"`
	LogLevel    string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat   string `koanf:"log_format" validate:"omitempty,oneof=console json"`

	Style StyleConfig `koanf:"style"`
}

// StyleConfig overrides parts of the default style rules. Unset fields keep the default.
type StyleConfig struct {
	NoEmDashes           *bool    `koanf:"no_em_dashes"`
	NoEnDashes           *bool    `koanf:"no_en_dashes"`
	NoFirstPerson        *bool    `koanf:"no_first_person"`
	ActionVerbStart      *bool    `koanf:"action_verb_start"`
	MaxLength            *int     `koanf:"max_length" validate:"omitempty,gte=0"`
	ForbiddenWords       []string `koanf:"forbidden_words"`
	QuantifyAchievements *bool    `koanf:"quantify_achievements"`
	EndPunctuation       *string  `koanf:"end_punctuation" validate:"omitempty,oneof=. ;"`
}

// Apply returns base with the configured overrides.
func (s StyleConfig) Apply(base types.StyleRuleSet) types.StyleRuleSet {
	noEm, noEn := base.Forbids(types.EmDash), base.Forbids(types.EnDash)
	if s.NoEmDashes != nil {
		noEm = *s.NoEmDashes
	}
	if s.NoEnDashes != nil {
		noEn = *s.NoEnDashes
	}
	rules := base.WithDashes(noEm, noEn)

	if s.NoFirstPerson != nil {
		rules.NoFirstPerson = *s.NoFirstPerson
	}
	if s.ActionVerbStart != nil {
		rules.ActionVerbStart = *s.ActionVerbStart
	}
	if s.MaxLength != nil {
		rules.MaxLength = *s.MaxLength
	}
	if s.ForbiddenWords != nil {
		rules.ForbiddenWords = append([]string(nil), s.ForbiddenWords...)
	}
	if s.QuantifyAchievements != nil {
		rules.QuantifyAchievements = *s.QuantifyAchievements
	}
	if s.EndPunctuation != nil {
		rules.EndPunctuation = *s.EndPunctuation
	}
	return rules
}

// ConfigError reports a config file or value problem.
type ConfigError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	prefix := "config error"
	if e.Path != "" {
		prefix = fmt.Sprintf("config error in %s", e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Load reads the optional YAML file at path, then applies RESUME_* environment
// overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := readFile(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, &ConfigError{Path: path, Message: "invalid YAML", Cause: err}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, &ConfigError{Message: "failed to load environment variables", Cause: err}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, &ConfigError{Path: path, Message: "failed to decode config", Cause: err}
	}
	return &cfg, nil
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Message: "failed to read config file", Cause: err}
	}
	if info.Size() > maxConfigFileSize {
		return nil, &ConfigError{Path: path, Message: fmt.Sprintf("config file exceeds %d bytes", maxConfigFileSize)}
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Message: "failed to read config file", Cause: err}
	}
	return content, nil
}

// envKey maps RESUME_STYLE_MAX_LENGTH to style.max_length and RESUME_DATA_DIR to data_dir.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "style_"); ok {
		return "style." + rest
	}
	return key
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return &ConfigError{Message: "invalid configuration", Cause: err}
	}
	return nil
}

// MergeWithDefaults returns a copy with zero fields filled in. The API key falls back to
// the provider's conventional environment variable.
func (c *Config) MergeWithDefaults() Config {
	result := *c

	if result.DataDir == "" {
		result.DataDir = DefaultDataDir
	}
	if result.Provider == "" {
		result.Provider = string(llm.ProviderGemini)
	}
	if result.APIKey == "" {
		result.APIKey = providerAPIKey(result.Provider)
	}
	if result.MaxAttempts == 0 {
		result.MaxAttempts = DefaultMaxAttempts
	}
	if result.StructuralRetries == 0 {
		result.StructuralRetries = DefaultStructuralRetries
	}
	if result.CallTimeout == 0 {
		result.CallTimeout = DefaultCallTimeout
	}
	if result.RequestsPerSecond == 0 {
		result.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	return result
}

func providerAPIKey(provider string) string {
	p, err := llm.ParseProvider(provider)
	if err != nil {
		return ""
	}
	if p == llm.ProviderAnthropic {
		return os.Getenv("ANTHROPIC_API_KEY")
	}
	return os.Getenv("GEMINI_API_KEY")
}

// LLMProvider parses the provider name.
func (c *Config) LLMProvider() (llm.Provider, error) {
	return llm.ParseProvider(c.Provider)
}

// StyleRules returns the default rules with the style section applied.
func (c *Config) StyleRules() types.StyleRuleSet {
	return c.Style.Apply(types.DefaultStyleRuleSet())
}

// Logging returns the logger settings.
func (c *Config) Logging() logging.Config {
	return logging.Config{Level: c.LogLevel, Format: c.LogFormat}
}
