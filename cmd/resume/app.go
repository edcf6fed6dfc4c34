package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-as-code/internal/config"
	"github.com/jonathan/resume-as-code/internal/db"
	"github.com/jonathan/resume-as-code/internal/llm"
	"github.com/jonathan/resume-as-code/internal/logging"
	"github.com/jonathan/resume-as-code/internal/stages"
)

// loadConfig reads --config and the environment, then applies the shared flags that
// were set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	loaded, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		loaded.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		loaded.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		loaded.LogFormat = logFormat
	}
	if flags.Changed("verbose") && verbose && loaded.LogLevel == "" {
		loaded.LogLevel = "debug"
	}
	// --provider and --model are local to the LLM commands. The provider must be known
	// before defaults pick its API key.
	if flags.Changed("provider") {
		loaded.Provider, _ = flags.GetString("provider")
	}
	if flags.Changed("model") {
		loaded.Model, _ = flags.GetString("model")
	}

	if err := loaded.Validate(); err != nil {
		return config.Config{}, err
	}
	return loaded.MergeWithDefaults(), nil
}

// addModelFlags registers --provider and --model, read back by loadConfig.
func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().String("provider", "", "LLM provider: gemini or anthropic")
	cmd.Flags().String("model", "", "Model name used for every stage")
}

func newLogger(cfg config.Config) (*logging.Logger, error) {
	logger, err := logging.New(cfg.Logging())
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// generation bundles what the LLM-backed commands need.
type generation struct {
	client   llm.Client
	executor *stages.Executor
}

func (g *generation) Close() error {
	return g.client.Close()
}

// newGeneration builds the provider client and the stage executor from cfg.
func newGeneration(ctx context.Context, cfg config.Config, logger *logging.Logger) (*generation, error) {
	provider, err := cfg.LLMProvider()
	if err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key for %s: set api_key in the config, RESUME_API_KEY, or %s", provider, apiKeyEnv(provider))
	}

	llmCfg := llm.ConfigFor(provider)
	if cfg.Model != "" {
		llmCfg = llmCfg.WithAllModels(cfg.Model)
	}

	client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", provider, err)
	}

	executor := stages.NewExecutor(stages.NewLLMCapability(client), stages.Options{
		MaxTries:          cfg.StructuralRetries,
		CallTimeout:       cfg.CallTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Logger:            logger,
	})
	return &generation{client: client, executor: executor}, nil
}

func apiKeyEnv(p llm.Provider) string {
	if p == llm.ProviderAnthropic {
		return "ANTHROPIC_API_KEY"
	}
	return "GEMINI_API_KEY"
}

// openRecorder connects to the run database when one is configured. It returns nil
// when database_url is empty.
func openRecorder(ctx context.Context, cfg config.Config) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
