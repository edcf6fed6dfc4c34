// Package main provides the resume CLI: tailored profile generation from job postings,
// skill gap analysis, style checks, and HTML/PDF builds.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume as code",
	Long:  "resume analyzes job descriptions and generates tailored, ATS-friendly resume profiles from your YAML work history.",
}

var (
	configPath string
	dataDir    string
	logLevel   string
	logFormat  string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (flags override its values)")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "Resume data directory (defaults to $RESUME_DATA_DIR or ./data)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: console or json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed stage output")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
