package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-as-code/internal/observability"
	"github.com/jonathan/resume-as-code/internal/profile"
	"github.com/jonathan/resume-as-code/internal/style"
)

var checkStyleCmd = &cobra.Command{
	Use:   "check-style <profile>",
	Short: "Check a profile's achievements against the style rules",
	Long:  "Runs the deterministic style validator over every achievement of the resolved profile. Exits 1 when violations are found.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckStyle,
}

func init() {
	rootCmd.AddCommand(checkStyleCmd)
}

// errViolations is returned so main exits 1 after the report is printed.
type errViolations int

func (e errViolations) Error() string {
	return fmt.Sprintf("%d style violations found", int(e))
}

func runCheckStyle(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	loader, err := profile.NewLoader(cfg.DataDir, args[0])
	if err != nil {
		return err
	}
	experience, err := loader.LoadExperience()
	if err != nil {
		return err
	}

	var statements []string
	for _, exp := range experience.Experiences {
		statements = append(statements, exp.Achievements...)
	}

	report := style.NewValidator(cfg.StyleRules()).ValidateStatements(statements)
	observability.NewPrinter(cmd.OutOrStdout()).PrintValidationReport(report)

	if !report.Clean() {
		cmd.SilenceUsage = true
		return errViolations(len(report.Violations))
	}
	return nil
}
