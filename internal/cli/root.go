// Package cli provides the Cobra command structure for gomlcheck.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomlcheck/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gomlcheck command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gomlcheck",
		Short: "A fast tag nesting checker for HTML and XML",
		Long: `gomlcheck checks HTML and XML documents for tag nesting errors.

It reports closing tags that cross an open element, elements left open at the
end of a document, closing tags with nothing to close and tags it cannot parse.
XML documents can also be checked against schema profiles such as Moodle
multiple choice quizzes. Directories are scanned in parallel and results can
be printed as text, JSON, SARIF or summary tables.`,
		Version: info.Version,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newCheckCommand(info))
	rootCmd.AddCommand(newKindsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
