package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomlcheck/internal/configloader"
	"github.com/yaklabco/gomlcheck/internal/logging"
	"github.com/yaklabco/gomlcheck/pkg/config"
	"github.com/yaklabco/gomlcheck/pkg/decode"
	"github.com/yaklabco/gomlcheck/pkg/reporter"
	"github.com/yaklabco/gomlcheck/pkg/runner"
)

// stdinPath is the argument that reads a single document from standard input.
const stdinPath = "-"

type checkFlags struct {
	mode           string
	schema         string
	fileType       string
	format         string
	kindFormat     string
	recursive      bool
	followSymlinks bool
	stat           bool
	strict         bool
	noContext      bool
	compact        bool
	jobs           int
	ignore         []string
	disable        []string
}

func newCheckCommand(info BuildInfo) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:     "check [paths...]",
		Aliases: []string{"lint"},
		Short:   "Check HTML and XML files for tag nesting errors",
		Long:    checkLongDescription,
		Example: checkExamples,
		Args:    cobra.ArbitraryArgs,
		Annotations: map[string]string{
			annotationExitCodes: exitCodeHelp,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags, info)
		},
	}

	addCheckFlags(cmd, flags)

	return cmd
}

const checkLongDescription = `Check HTML and XML documents for crossed, unclosed and stray tags.

Each path may be a file or a directory. Files named explicitly are always
checked; directories are scanned for files with an HTML or XML extension,
descending into subdirectories only with --recursive. With no paths the
current directory is scanned. Use "-" to read one document from standard input.

The document mode is sniffed from the content and the file extension unless
--mode forces it. XML documents can additionally be checked against a schema
profile with --schema.`

const checkExamples = `  gomlcheck check page.html
  gomlcheck check quiz.xml --schema moodlemc --stat
  gomlcheck check . --type html --stat
  gomlcheck check ./projects --type xml -r --format summary
  cat fragment.html | gomlcheck check - --mode html`

func addCheckFlags(cmd *cobra.Command, flags *checkFlags) {
	cmd.Flags().StringVar(&flags.mode, "mode", "", "document mode: auto, html, xml (default auto)")
	cmd.Flags().StringVar(&flags.schema, "schema", "", "schema profile for XML documents: moodlemc")
	cmd.Flags().StringVar(&flags.fileType, "type", "", "file types scanned in directories: all, html, xml (default all)")
	cmd.Flags().BoolVarP(&flags.recursive, "recursive", "r", false, "descend into subdirectories")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks when recursing")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "diagnostic kinds to disable")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json, sarif, summary (default text)")
	cmd.Flags().StringVar(&flags.kindFormat, "kind-format", "", "diagnostic kind format in output: id, name (default id)")
	cmd.Flags().BoolVar(&flags.stat, "stat", false, "print tag and issue statistics per file, per directory and for the run")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as failures for the exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minify json and sarif output")
}

// cliConfig maps explicitly set flags onto a config layer.
func cliConfig(cmd *cobra.Command, flags *checkFlags) *config.Config {
	cfg := &config.Config{
		Mode:          config.ModeSetting(flags.mode),
		Schema:        flags.schema,
		Type:          config.FileType(flags.fileType),
		Format:        config.OutputFormat(flags.format),
		KindFormat:    config.KindFormat(flags.kindFormat),
		Jobs:          flags.jobs,
		Stat:          flags.stat,
		Strict:        flags.strict,
		Ignore:        flags.ignore,
		DisableChecks: flags.disable,
	}
	if cmd.Flags().Changed("recursive") {
		cfg.Recursive = config.Bool(flags.recursive)
	}
	if cmd.Flags().Changed("follow-symlinks") {
		cfg.FollowSymlinks = config.Bool(flags.followSymlinks)
	}
	return cfg
}

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags, info BuildInfo) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliConfig(cmd, flags),
	})
	if err != nil {
		return errors.Join(ErrConfig, err)
	}

	cfg := loadResult.Config
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldPaths, loadResult.LoadedFrom)
	}
	logger.Debug("configuration resolved",
		logging.FieldMode, cfg.Mode,
		logging.FieldSchema, cfg.Schema,
		logging.FieldJobs, cfg.Jobs,
	)

	checker, err := runner.NewChecker(cfg)
	if err != nil {
		return errors.Join(ErrConfig, err)
	}

	started := time.Now()
	var result *runner.Result
	if len(args) == 1 && args[0] == stdinPath {
		result, err = checkStdin(ctx, cmd.InOrStdin(), checker)
	} else {
		result, err = runner.New(checker).Run(ctx, runner.OptionsFromConfig(cfg, args, workDir))
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	logger.Debug("check finished", logging.FieldDuration, time.Since(started))

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return errors.Join(ErrUsage, err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		ShowStats:   cfg.Stat,
		Compact:     flags.compact,
		KindFormat:  cfg.KindFormat,
		WorkingDir:  workDir,
		ToolVersion: info.Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result, cfg.Strict) {
	case ExitIssueErrors:
		return ErrIssuesFound
	case ExitIssueWarnings:
		return ErrWarningsFound
	case ExitIOError:
		return fmt.Errorf("%w: %d files could not be read", runner.ErrReadFailure, result.Stats.FilesErrored)
	default:
		return nil
	}
}

// checkStdin validates one document read from r.
func checkStdin(ctx context.Context, r io.Reader, checker *runner.Checker) (*runner.Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: standard input: %w", runner.ErrReadFailure, err)
	}

	text, encoding, err := decode.Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode standard input: %w", err)
	}

	outcome := checker.CheckText(ctx, "<stdin>", text)
	outcome.Size = int64(len(data))
	outcome.Encoding = encoding

	return runner.NewResult(outcome), nil
}
