package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-as-code/internal/observability"
	"github.com/jonathan/resume-as-code/internal/profile"
	"github.com/jonathan/resume-as-code/internal/skills"
	"github.com/jonathan/resume-as-code/internal/stages"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <profile>",
	Short: "Analyze a profile's job description and compare it with your skills",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	addModelFlags(analyzeCmd)

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	loader, err := profile.NewLoader(cfg.DataDir, args[0])
	if err != nil {
		return err
	}
	resume, err := loader.LoadResume()
	if err != nil {
		return err
	}
	jobText, err := loader.LoadJobDescription()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	gen, err := newGeneration(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = gen.Close() }()

	analysis, err := stages.AnalyzeJob(ctx, gen.executor, jobText)
	if err != nil {
		return fmt.Errorf("job analysis failed: %w", err)
	}

	gap := skills.Compare(resume.Skills.Names(), analysis.RequiredSkills, analysis.PreferredSkills)

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintAnalysis(analysis)
	printer.PrintSkillGap(gap)
	return nil
}
