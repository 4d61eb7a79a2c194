// Package cli provides the Cobra command structure for mdfix.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfix/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdfix command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdfix",
		Short: "A fast, safe Markdown formatting fixer",
		Long: `mdfix normalizes the Markdown files in a tree: blank lines around
headings, lists, and fenced code blocks; angle brackets around bare URLs
and email addresses; collapsed blank-line runs; and language tags on
untagged code fences.

Files are only rewritten when a fix actually changes them, and a file
that fails to process never stops the rest of the run.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newFixCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
