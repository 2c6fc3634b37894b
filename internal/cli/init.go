package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gomlcheck/internal/logging"
	"github.com/yaklabco/gomlcheck/pkg/config"
	"github.com/yaklabco/gomlcheck/pkg/fsutil"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gomlcheck configuration file",
		Long: `Create a new .gomlcheck.yml configuration file in the current directory
with the default settings. The file can be edited to change the document mode,
pick a schema profile, disable diagnostic kinds or lower their severity.`,
		Example: `  gomlcheck init                     Create minimal .gomlcheck.yml
  gomlcheck init --full              Document every diagnostic kind
  gomlcheck init --format json       Create .gomlcheck.json instead
  gomlcheck init --output quiz.yml   Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runInit(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing file, keeping a .bak backup")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every diagnostic kind in the template")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"output file path (default: .gomlcheck.yml or .gomlcheck.json)")

	return cmd
}

func runInit(ctx context.Context, in io.Reader, out io.Writer, flags *initFlags) error {
	logger := logging.NewInteractive(out)

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		if flags.format == "json" {
			outputPath = ".gomlcheck.json"
		} else {
			outputPath = ".gomlcheck.yml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	var backup string
	if fsutil.Exists(absPath) {
		if !flags.force && !confirmOverwrite(in, out, outputPath) {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, outputPath)
		}

		backup, err = fsutil.CreateBackup(ctx, absPath)
		if err != nil {
			return fmt.Errorf("back up existing file: %w", err)
		}
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, absPath, content, fsutil.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if !written {
		// The backup duplicates the unchanged file.
		if backup != "" {
			if err := os.Remove(backup); err != nil {
				return fmt.Errorf("remove unused backup: %w", err)
			}
		}
		logger.Info("configuration already up to date", logging.FieldPath, outputPath)
		return nil
	}
	if backup != "" {
		logger.Warn("overwrote existing file", logging.FieldPath, outputPath, "backup", filepath.Base(backup))
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.full {
		logger.Info("full template documents every diagnostic kind")
	}
	logger.Info("run 'gomlcheck kinds' to see all diagnostic kinds")

	return nil
}

// confirmOverwrite asks before replacing a file. It only prompts when in is
// an interactive terminal.
func confirmOverwrite(in io.Reader, out io.Writer, path string) bool {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false
	}

	fmt.Fprintf(out, "%s already exists. Overwrite? [y/N] ", path)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
