package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-as-code/internal/profile"
)

var addSkillCmd = &cobra.Command{
	Use:   "add-skill <profile> <skill>",
	Short: "Add a skill to the shared skills list",
	Long:  "Appends a skill to common/skills.yml, which every profile without its own skills.yml uses.",
	Args:  cobra.ExactArgs(2),
	RunE:  runAddSkill,
}

var (
	addSkillCategory    string
	addSkillProficiency string
)

func init() {
	addSkillCmd.Flags().StringVarP(&addSkillCategory, "category", "c", profile.DefaultSkillCategory, "Skill category")
	addSkillCmd.Flags().StringVarP(&addSkillProficiency, "proficiency", "p", profile.DefaultSkillProficiency, "Proficiency level")

	rootCmd.AddCommand(addSkillCmd)
}

func runAddSkill(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	skill := args[1]

	added, err := profile.AddSkill(cfg.DataDir, skill, addSkillCategory, addSkillProficiency)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !added {
		_, _ = fmt.Fprintf(out, "Skill '%s' already exists in resume\n", skill)
		return nil
	}
	_, _ = fmt.Fprintf(out, "✓ Added skill '%s' (%s - %s)\n", skill, addSkillCategory, addSkillProficiency)
	return nil
}
