package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomlcheck/internal/cli"
)

const crossedQuiz = "<quiz>\n  <question>\n</quiz>\n"

// writeFile creates path under dir with content, making parent directories.
func writeFile(t *testing.T, dir, path, content string) string {
	t.Helper()

	full := filepath.Join(dir, filepath.FromSlash(path))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
	return full
}

// runCheck executes "gomlcheck check" against an isolated config file.
func runCheck(t *testing.T, configYAML string, stdin string, args ...string) (string, error) {
	t.Helper()

	cfgFile := writeFile(t, t.TempDir(), ".gomlcheck.yml", configYAML)

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"check", "--config", cfgFile, "--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String() + stderr.String(), err
}

func TestCheck_CleanFile(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "ok.html", "<html><body><p>hi<br></p></body></html>\n")

	out, err := runCheck(t, "mode: auto\n", "", file)
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found (1 file checked)")
}

func TestCheck_MismatchedClose(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "quiz.xml", crossedQuiz)

	out, err := runCheck(t, "mode: auto\n", "", file)
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Equal(t, cli.ExitIssueErrors, cli.ExitCode(err))

	assert.Contains(t, out, "quiz.xml:3:1")
	assert.Contains(t, out, "mismatched-close")
	assert.Contains(t, out, "<question> was opened at 2:3")
}

func TestCheck_KindFormatName(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "quiz.xml", crossedQuiz)

	out, err := runCheck(t, "mode: auto\n", "", "--kind-format", "name", "--no-context", file)
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Contains(t, out, "MismatchedClose")
	assert.NotContains(t, out, "mismatched-close")
}

func TestCheck_DisableAndSeverityFromConfig(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "open.xml", "<quiz>\n  <question></question>\n")
	cfg := "checks:\n  unclosed-at-eof:\n    severity: warning\n"

	out, err := runCheck(t, cfg, "", file)
	require.NoError(t, err)
	assert.Contains(t, out, "warning")
	assert.Contains(t, out, "unclosed-at-eof")

	_, err = runCheck(t, cfg, "", "--strict", file)
	require.ErrorIs(t, err, cli.ErrWarningsFound)
	assert.Equal(t, cli.ExitIssueWarnings, cli.ExitCode(err))

	out, err = runCheck(t, "mode: auto\n", "", "--disable", "unclosed-at-eof", file)
	require.NoError(t, err)
	assert.NotContains(t, out, "unclosed-at-eof")
}

func TestCheck_Schema(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "quiz.xml",
		"<quiz>\n<question type=\"multichoice\">\n<name><text>Q1</text></name>\n</question>\n</quiz>\n")

	out, err := runCheck(t, "mode: auto\n", "", file)
	require.NoError(t, err, out)

	out, err = runCheck(t, "mode: auto\n", "", "--schema", "moodlemc", file)
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Contains(t, out, "schema-violation")
	assert.Contains(t, out, "questiontext")
}

func TestCheck_UnknownSchemaIsConfigError(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "quiz.xml", "<quiz></quiz>\n")

	_, err := runCheck(t, "mode: auto\n", "", "--schema", "docbook", file)
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestCheck_UnknownFormatIsConfigError(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "ok.xml", "<quiz></quiz>\n")

	_, err := runCheck(t, "mode: auto\n", "", "--format", "yaml", file)
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestCheck_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := runCheck(t, "mode: auto\n", "", filepath.Join(t.TempDir(), "absent.html"))
	require.Error(t, err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))
}

func TestCheck_DirectoryRecursionAndType(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "index.html", "<p>top</p>\n")
	writeFile(t, dir, "nested/page.html", "<div><span></div>\n")
	writeFile(t, dir, "nested/quiz.xml", crossedQuiz)

	out, err := runCheck(t, "mode: auto\n", "", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found (1 file checked)")

	out, err = runCheck(t, "mode: auto\n", "", "-r", "--type", "html", dir)
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Contains(t, out, "page.html")
	assert.NotContains(t, out, "quiz.xml")
}

func TestCheck_StatBlocks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.html", "<p>one</p>\n")
	writeFile(t, dir, "b.xml", crossedQuiz)

	out, err := runCheck(t, "mode: auto\n", "", "--stat", dir)
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Contains(t, out, "--- Directory Summary")
	assert.Contains(t, out, "--- GLOBAL SCAN SUMMARY ---")
	assert.Contains(t, out, "Total Files Scanned:       2")
}

func TestCheck_JSONOutput(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "quiz.xml", crossedQuiz)

	cfgFile := writeFile(t, t.TempDir(), ".gomlcheck.yml", "mode: auto\n")
	cmd := cli.NewRootCommand(testInfo())

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"check", "--config", cfgFile, "--format", "json", file})

	require.ErrorIs(t, cmd.Execute(), cli.ErrIssuesFound)

	var report struct {
		Diagnostics []struct {
			KindID   string `json:"kindId"`
			Tag      string `json:"tag"`
			Line     int    `json:"line"`
			OpenLine int    `json:"openLine"`
		} `json:"diagnostics"`
		Summary struct {
			Files  int `json:"filesChecked"`
			Issues int `json:"totalIssues"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &report))

	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, "mismatched-close", report.Diagnostics[0].KindID)
	assert.Equal(t, "question", report.Diagnostics[0].Tag)
	assert.Equal(t, 3, report.Diagnostics[0].Line)
	assert.Equal(t, 2, report.Diagnostics[0].OpenLine)
	assert.Equal(t, 1, report.Summary.Files)
	assert.Equal(t, 1, report.Summary.Issues)
}

func TestCheck_Stdin(t *testing.T) {
	t.Parallel()

	out, err := runCheck(t, "mode: auto\n", "<div><b>bold</div>", "--mode", "html", "-")
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Contains(t, out, "<stdin>")
	assert.Contains(t, out, "mismatched-close")
}
