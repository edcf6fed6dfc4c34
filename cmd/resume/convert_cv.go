package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-as-code/internal/profile"
	"github.com/jonathan/resume-as-code/internal/stages"
)

var convertCVCmd = &cobra.Command{
	Use:   "convert-cv <text-file>",
	Short: "Convert a plain-text CV into experience YAML",
	Long: `Extracts work history from a CV's text with the LLM and writes it in the experience.yml format.
Review the file before passing it to generate-profile --cv.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvertCV,
}

var convertOutput string

func init() {
	convertCVCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output YAML path (defaults to <text-file>.yml)")
	addModelFlags(convertCVCmd)

	rootCmd.AddCommand(convertCVCmd)
}

func runConvertCV(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	input := args[0]

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read CV: %w", err)
	}

	output := convertOutput
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".yml"
	}

	cfg, err := loadConfig(cmd)
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

	experiences, err := stages.ConvertCV(ctx, gen.executor, string(data))
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	if err := profile.SaveExperienceFile(output, experiences); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "✓ Extracted %d work experience entries:\n\n", len(experiences))
	for i, exp := range experiences {
		dates := exp.StartDate
		switch {
		case exp.IsCurrent():
			dates += " - Present"
		case exp.EndDate != "":
			dates += " - " + exp.EndDate
		}
		_, _ = fmt.Fprintf(out, "%d. %s at %s\n   %s\n   %d achievements, %d technologies\n",
			i+1, exp.Title, exp.Company, dates, len(exp.Achievements), len(exp.Technologies))
	}
	_, _ = fmt.Fprintf(out, "\n✓ YAML file saved: %s\n", output)
	_, _ = fmt.Fprintf(out, "Next: resume generate-profile <name> --job <job.txt> --cv %s\n", output)
	return nil
}
