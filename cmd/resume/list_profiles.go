package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-as-code/internal/profile"
)

var listProfilesCmd = &cobra.Command{
	Use:   "list-profiles",
	Short: "List all available resume profiles",
	Args:  cobra.NoArgs,
	RunE:  runListProfiles,
}

func init() {
	rootCmd.AddCommand(listProfilesCmd)
}

func runListProfiles(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	names, err := profile.ListProfiles(cfg.DataDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(names) == 0 {
		_, _ = fmt.Fprintf(out, "No profiles found. Create profiles in %s/%s/\n", cfg.DataDir, profile.ProfilesDir)
		return nil
	}
	_, _ = fmt.Fprintln(out, "Available profiles:")
	for _, name := range names {
		_, _ = fmt.Fprintf(out, "  %s\n", name)
	}
	return nil
}
