package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-as-code/internal/profile"
	"github.com/jonathan/resume-as-code/internal/rendering"
)

const (
	formatHTML = "html"
	formatPDF  = "pdf"
	formatBoth = "both"
)

// OutputDir is the sibling of the data directory that holds built resumes.
const OutputDir = "output"

var buildCmd = &cobra.Command{
	Use:   "build <profile>",
	Short: "Build a profile's resume as HTML and/or PDF",
	Long:  "Renders the resolved profile with the embedded HTML template. PDF output prints that HTML with headless Chrome.",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

var (
	buildFormat string
	buildOutput string
)

func init() {
	buildCmd.Flags().StringVarP(&buildFormat, "format", "f", formatHTML, "Output format: html, pdf or both (comma-separated list allowed)")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Output file path (single format only)")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	formats, err := parseFormats(buildFormat)
	if err != nil {
		return err
	}
	if buildOutput != "" && len(formats) > 1 {
		return fmt.Errorf("--output can only be used with a single format")
	}

	files, err := buildProfile(ctx, cfg.DataDir, args[0], formats, buildOutput)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "✓ Resume generated successfully!")
	for _, f := range files {
		_, _ = fmt.Fprintf(out, "  • %s\n", f)
	}
	return nil
}

// parseFormats expands "both" and rejects unknown names. Order is kept; duplicates drop.
func parseFormats(spec string) ([]string, error) {
	var formats []string
	seen := make(map[string]bool)
	add := func(f string) {
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	for _, part := range strings.Split(spec, ",") {
		switch f := strings.ToLower(strings.TrimSpace(part)); f {
		case formatHTML, formatPDF:
			add(f)
		case formatBoth:
			add(formatHTML)
			add(formatPDF)
		case "":
		default:
			return nil, fmt.Errorf("unknown format %q (want html, pdf or both)", f)
		}
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("no output format given")
	}
	return formats, nil
}

// buildProfile renders name in each format and returns the written paths.
func buildProfile(ctx context.Context, dataDir, name string, formats []string, output string) ([]string, error) {
	loader, err := profile.NewLoader(dataDir, name)
	if err != nil {
		return nil, err
	}
	resume, err := loader.LoadResume()
	if err != nil {
		return nil, err
	}

	html, err := rendering.RenderHTML(resume)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, format := range formats {
		path := output
		if path == "" {
			path = filepath.Join(outputDir(dataDir), fmt.Sprintf("%s_resume.%s", name, format))
		}

		switch format {
		case formatHTML:
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return nil, fmt.Errorf("failed to create output directory: %w", err)
			}
			if err := os.WriteFile(path, []byte(html), 0644); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", path, err)
			}
		case formatPDF:
			if err := rendering.PrintPDF(ctx, html, path); err != nil {
				return nil, fmt.Errorf("PDF generation failed (Chrome or Chromium must be installed): %w", err)
			}
		}
		files = append(files, path)
	}
	return files, nil
}

// outputDir returns <data_dir>/../output.
func outputDir(dataDir string) string {
	return filepath.Join(filepath.Dir(filepath.Clean(dataDir)), OutputDir)
}
