package cli_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomlcheck/internal/cli"
	"github.com/yaklabco/gomlcheck/internal/configloader"
	"github.com/yaklabco/gomlcheck/pkg/config"
	"github.com/yaklabco/gomlcheck/pkg/markup"
	"github.com/yaklabco/gomlcheck/pkg/runner"
	"github.com/yaklabco/gomlcheck/pkg/schema"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "issues", err: cli.ErrIssuesFound, want: cli.ExitIssueErrors},
		{name: "strict warnings", err: cli.ErrWarningsFound, want: cli.ExitIssueWarnings},
		{name: "usage", err: fmt.Errorf("%w: bad flag", cli.ErrUsage), want: cli.ExitInvalidUsage},
		{name: "config", err: errors.Join(cli.ErrConfig, errors.New("boom")), want: cli.ExitConfigError},
		{name: "validation error", err: &configloader.ValidationError{}, want: cli.ExitConfigError},
		{name: "unknown schema", err: fmt.Errorf("check: %w", schema.ErrUnknownSchema), want: cli.ExitConfigError},
		{name: "read failure", err: fmt.Errorf("%w: 2 files", runner.ErrReadFailure), want: cli.ExitIOError},
		{name: "missing path", err: fmt.Errorf("stat x: %w", fs.ErrNotExist), want: cli.ExitIOError},
		{name: "anything else", err: errors.New("boom"), want: cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	withIssue := func(sev config.Severity) runner.FileOutcome {
		return runner.FileOutcome{
			Path: "a.xml",
			Issues: []runner.Issue{{
				Diagnostic: markup.Diagnostic{Kind: markup.UnclosedAtEOF, Tag: "quiz"},
				Severity:   sev,
			}},
		}
	}
	unreadable := runner.FileOutcome{Path: "b.xml", Error: errors.New("permission denied")}

	tests := []struct {
		name   string
		result *runner.Result
		strict bool
		want   int
	}{
		{name: "nil result", result: nil, want: cli.ExitSuccess},
		{name: "clean", result: runner.NewResult(runner.FileOutcome{Path: "ok.html"}), want: cli.ExitSuccess},
		{name: "errors", result: runner.NewResult(withIssue(config.SeverityError)), want: cli.ExitIssueErrors},
		{name: "warnings", result: runner.NewResult(withIssue(config.SeverityWarning)), want: cli.ExitSuccess},
		{name: "strict warnings", result: runner.NewResult(withIssue(config.SeverityWarning)), strict: true, want: cli.ExitIssueWarnings},
		{name: "unreadable", result: runner.NewResult(unreadable), want: cli.ExitIOError},
		{name: "errors beat unreadable", result: runner.NewResult(withIssue(config.SeverityError), unreadable), want: cli.ExitIssueErrors},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCodeFromResult(tt.result, tt.strict))
		})
	}
}

func TestIsSilent(t *testing.T) {
	t.Parallel()

	assert.True(t, cli.IsSilent(cli.ErrIssuesFound))
	assert.True(t, cli.IsSilent(cli.ErrWarningsFound))
	assert.False(t, cli.IsSilent(cli.ErrConfig))
	assert.False(t, cli.IsSilent(nil))
}
