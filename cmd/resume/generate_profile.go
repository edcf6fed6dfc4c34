package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-as-code/internal/config"
	"github.com/jonathan/resume-as-code/internal/fetch"
	"github.com/jonathan/resume-as-code/internal/logging"
	"github.com/jonathan/resume-as-code/internal/observability"
	"github.com/jonathan/resume-as-code/internal/pipeline"
	"github.com/jonathan/resume-as-code/internal/profile"
	"github.com/jonathan/resume-as-code/internal/types"
)

var generateProfileCmd = &cobra.Command{
	Use:   "generate-profile <name>",
	Short: "Generate a tailored profile from a job description",
	Long: `Runs the generation pipeline: job analysis -> drafting -> style validation -> quality review
-> retry with feedback -> cover letter. The selected draft is written to profiles/<name>/.

Configuration can be loaded from a YAML file using --config. Command-line flags override config file values.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerateProfile,
}

var (
	genJob              string
	genJobURL           string
	genUseBrowser       bool
	genCV               string
	genNoEmDashes       bool
	genNoEnDashes       bool
	genNoFirstPerson    bool
	genMaxBulletLength  int
	genMaxAttempts      int
	genSpeculative      bool
	genAutoBuild        bool
	genSkipConfirmation bool
)

func init() {
	flags := generateProfileCmd.Flags()
	flags.StringVarP(&genJob, "job", "j", "", "Path to job description text file (mutually exclusive with --job-url)")
	flags.StringVar(&genJobURL, "job-url", "", "URL to fetch the job posting from (mutually exclusive with --job)")
	flags.BoolVar(&genUseBrowser, "use-browser", false, "Render the posting in headless Chrome when the page is script-built")
	flags.StringVarP(&genCV, "cv", "c", "", "Experience YAML to draft from (defaults to <data-dir>/common/experience.yml)")
	flags.BoolVar(&genNoEmDashes, "no-em-dashes", true, "Reject em dashes in content")
	flags.BoolVar(&genNoEnDashes, "no-en-dashes", false, "Reject en dashes in content")
	flags.BoolVar(&genNoFirstPerson, "no-first-person", true, "Reject first-person pronouns")
	flags.IntVar(&genMaxBulletLength, "max-bullet-length", 120, "Maximum achievement length in characters")
	flags.IntVar(&genMaxAttempts, "max-attempts", 3, "Maximum drafting attempts")
	flags.BoolVar(&genSpeculative, "speculative-cover-letter", false, "Write the cover letter alongside the final review")
	flags.BoolVar(&genAutoBuild, "auto-build", false, "Build the PDF after writing the profile")
	flags.BoolVar(&genSkipConfirmation, "skip-confirmation", false, "Write files without asking")
	addModelFlags(generateProfileCmd)

	rootCmd.AddCommand(generateProfileCmd)
}

func runGenerateProfile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	name := args[0]
	out := cmd.OutOrStdout()

	if genJob == "" && genJobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided")
	}
	if genJob != "" && genJobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg = applyGenerateFlags(cmd, cfg)

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	jobText, err := readJob(ctx, logger)
	if err != nil {
		return err
	}

	expPath := genCV
	if expPath == "" {
		expPath = filepath.Join(cfg.DataDir, profile.CommonDir, profile.ExperienceFile)
	}
	experience, err := profile.LoadExperienceFile(expPath)
	if err != nil {
		return fmt.Errorf("failed to load experience: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Using experience from: %s\n", expPath)

	skills, err := profile.LoadCommonSkills(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to load skills: %w", err)
	}

	gen, err := newGeneration(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = gen.Close() }()

	var recorder pipeline.Recorder
	database, err := openRecorder(ctx, cfg)
	if err != nil {
		logger.Warn(ctx, "run recording disabled", zap.Error(err))
	} else if database != nil {
		defer database.Close()
		recorder = database
	}

	printer := observability.NewPrinter(out)
	orchestrator := pipeline.New(gen.executor, pipeline.Options{
		MaxAttempts:            cfg.MaxAttempts,
		SpeculativeCoverLetter: cfg.SpeculativeCoverLetter,
		Logger:                 logger,
		Recorder:               recorder,
		OnProgress:             printer.PrintProgress,
	})

	result, err := orchestrator.Run(ctx, pipeline.Input{
		JobPostingText: jobText,
		Experience:     profile.SourceExperience(experience.Experiences),
		Skills:         skills.Names(),
		Rules:          cfg.StyleRules(),
		Profile:        name,
	})
	if err != nil {
		if runErr, ok := pipeline.AsRunError(err); ok && verbose {
			for i := range runErr.Attempts {
				printer.PrintValidationReport(runErr.Attempts[i].Report)
			}
		}
		return fmt.Errorf("profile generation failed: %w", err)
	}

	if verbose {
		printer.PrintAnalysis(result.Analysis)
	}
	printer.PrintReview(result.Review)
	printer.PrintResult(result)
	printPreview(out, result)

	if !genSkipConfirmation && !confirm(cmd.InOrStdin(), out, "Write profile files to disk?") {
		_, _ = fmt.Fprintln(out, "Profile generation cancelled")
		return nil
	}

	written, err := profile.WriteProfile(cfg.DataDir, name, jobText, result, experience.Experiences)
	if err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	for _, f := range written.Files {
		_, _ = fmt.Fprintf(out, "  ✓ %s\n", f)
	}
	if n := len(written.Unattributed); n > 0 {
		_, _ = fmt.Fprintf(out, "⚠ %d drafted achievements did not cite a known experience and were dropped\n", n)
	}
	if result.Status == types.StatusDegraded && result.Review != nil && len(result.Review.Issues) > 0 {
		_, _ = fmt.Fprintln(out, "\n⚠ Issues found (consider manual review):")
		for _, issue := range result.Review.Issues[:min(len(result.Review.Issues), 5)] {
			_, _ = fmt.Fprintf(out, "  • %s\n", issue)
		}
	}

	if genAutoBuild {
		files, err := buildProfile(ctx, cfg.DataDir, name, []string{formatPDF}, "")
		if err != nil {
			return err
		}
		for _, f := range files {
			_, _ = fmt.Fprintf(out, "  ✓ %s\n", f)
		}
	}

	_, _ = fmt.Fprintf(out, "\nProfile '%s' written to %s\n", name, written.Dir)
	_, _ = fmt.Fprintf(out, "Next: resume build %s --format pdf\n", name)
	return nil
}

// applyGenerateFlags lets explicitly set flags win over the config file.
func applyGenerateFlags(cmd *cobra.Command, cfg config.Config) config.Config {
	flags := cmd.Flags()

	rules := cfg.StyleRules()
	if flags.Changed("no-em-dashes") || flags.Changed("no-en-dashes") {
		noEm, noEn := rules.Forbids(types.EmDash), rules.Forbids(types.EnDash)
		if flags.Changed("no-em-dashes") {
			noEm = genNoEmDashes
		}
		if flags.Changed("no-en-dashes") {
			noEn = genNoEnDashes
		}
		cfg.Style.NoEmDashes = &noEm
		cfg.Style.NoEnDashes = &noEn
	}
	if flags.Changed("no-first-person") {
		cfg.Style.NoFirstPerson = &genNoFirstPerson
	}
	if flags.Changed("max-bullet-length") {
		cfg.Style.MaxLength = &genMaxBulletLength
	}
	if flags.Changed("max-attempts") {
		cfg.MaxAttempts = genMaxAttempts
	}
	if flags.Changed("speculative-cover-letter") {
		cfg.SpeculativeCoverLetter = genSpeculative
	}
	return cfg
}

func readJob(ctx context.Context, logger *logging.Logger) (string, error) {
	if genJobURL != "" {
		posting, err := fetch.JobPosting(ctx, genJobURL, fetch.JobOptions{
			UseBrowser: genUseBrowser,
			Logger:     logger,
		})
		if err != nil {
			return "", fmt.Errorf("failed to fetch job posting: %w", err)
		}
		return posting.Text, nil
	}

	data, err := os.ReadFile(genJob)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("job file not found: %s", genJob)
		}
		return "", fmt.Errorf("failed to read job file: %w", err)
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("job description file is empty: %s", genJob)
	}
	return text, nil
}

func printPreview(out io.Writer, result *types.PipelineResult) {
	draft := result.Draft
	if draft == nil {
		return
	}
	_, _ = fmt.Fprintf(out, "\nTitle: %s\n", draft.Title)
	if summary := []rune(draft.Summary); len(summary) > 200 {
		_, _ = fmt.Fprintf(out, "Summary: %s...\n", string(summary[:200]))
	} else {
		_, _ = fmt.Fprintf(out, "Summary: %s\n", draft.Summary)
	}
	if len(draft.Achievements) > 0 {
		_, _ = fmt.Fprintf(out, "Example bullet: %s\n", draft.Achievements[0].Text)
	}
	_, _ = fmt.Fprintf(out, "Skills: %s\n", strings.Join(draft.SkillNames(), ", "))
}

// confirm asks a yes/no question. Empty input means yes.
func confirm(in io.Reader, out io.Writer, question string) bool {
	_, _ = fmt.Fprintf(out, "%s [Y/n] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "y", "yes":
		return true
	default:
		return false
	}
}
