package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/gomlcheck/internal/configloader"
	"github.com/yaklabco/gomlcheck/pkg/fsutil"
	"github.com/yaklabco/gomlcheck/pkg/runner"
	"github.com/yaklabco/gomlcheck/pkg/schema"
)

// Exit codes for gomlcheck.
const (
	// ExitSuccess indicates no error-severity issues were found.
	ExitSuccess = 0

	// ExitIssueErrors indicates the check found error-severity issues.
	ExitIssueErrors = 1

	// ExitIssueWarnings indicates the check found warnings under --strict.
	ExitIssueWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// exitCodeHelp is shown in the help of the check command.
const exitCodeHelp = `  0   no error-severity issues
  1   error-severity issues found
  2   warnings found with --strict
  64  invalid usage
  65  invalid configuration
  70  internal error
  74  a file could not be read`

var (
	// ErrIssuesFound signals that error-severity issues were reported.
	ErrIssuesFound = errors.New("issues found")

	// ErrWarningsFound signals warnings under --strict.
	ErrWarningsFound = errors.New("warnings found in strict mode")

	// ErrUsage marks invalid command-line usage.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks an unusable configuration.
	ErrConfig = errors.New("invalid configuration")
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
// Unreadable files count as I/O failures unless issues decide the outcome.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasFailures():
		return ExitIssueErrors
	case strict && result.HasWarnings():
		return ExitIssueWarnings
	case result.HasFileErrors():
		return ExitIOError
	default:
		return ExitSuccess
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrIssuesFound):
		return ExitIssueErrors
	case errors.Is(err, ErrWarningsFound):
		return ExitIssueWarnings
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr), errors.Is(err, schema.ErrUnknownSchema):
		return ExitConfigError
	case errors.Is(err, runner.ErrReadFailure), errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied), errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// IsSilent reports whether err only carries an exit status and should not be
// logged.
func IsSilent(err error) bool {
	return errors.Is(err, ErrIssuesFound) || errors.Is(err, ErrWarningsFound)
}
