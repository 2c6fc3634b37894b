package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomlcheck/pkg/analysis"
	"github.com/yaklabco/gomlcheck/pkg/config"
	"github.com/yaklabco/gomlcheck/pkg/reporter"
	"github.com/yaklabco/gomlcheck/pkg/runner"
)

// fixture lays out a small tree and checks it recursively. It returns the
// result and the tree root.
func fixture(t *testing.T) (*runner.Result, string) {
	t.Helper()

	root := t.TempDir()
	files := map[string]string{
		"pages/ok.html":   "<p>hi<br></p>\n",
		"quiz/bad.xml":    "<?xml version=\"1.0\"?>\n<a>\n  <b>\n</a>\n",
		"quiz/open.xml":   "<?xml version=\"1.0\"?>\n<root><x></x>\n",
		"quiz/notes.text": "ignored",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	checker, err := runner.NewChecker(nil)
	require.NoError(t, err)

	result, err := runner.New(checker).Run(context.Background(), runner.Options{
		Paths:      []string{root},
		WorkingDir: root,
		Recursive:  true,
		Jobs:       2,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 3)

	return result, root
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{"", reporter.FormatText, false},
		{"text", reporter.FormatText, false},
		{"json", reporter.FormatJSON, false},
		{"sarif", reporter.FormatSARIF, false},
		{"summary", reporter.FormatSummary, false},
		{"SARIF", reporter.FormatSARIF, false},
		{"table", "", true},
		{"diff", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, format := range []reporter.Format{"", reporter.FormatText, reporter.FormatJSON, reporter.FormatSARIF, reporter.FormatSummary} {
		rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: format})
		require.NoError(t, err, "format %q", format)
		assert.NotNil(t, rep)
	}

	_, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: "xml"})
	require.Error(t, err)
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()

	assert.Equal(t, reporter.FormatText, opts.Format)
	assert.Equal(t, "auto", opts.Color)
	assert.True(t, opts.ShowContext)
	assert.True(t, opts.ShowSummary)
	assert.False(t, opts.ShowStats)
	assert.Equal(t, config.KindFormatID, opts.KindFormat)
}

func TestTextReporter_NoFiles(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	count, err := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"}).
		Report(context.Background(), nil)

	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, "No matching files found to scan.\n", buf.String())
}

func TestTextReporter_GroupsByFileWithContext(t *testing.T) {
	t.Parallel()

	result, root := fixture(t)

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowContext: true,
		ShowSummary: true,
		KindFormat:  config.KindFormatID,
		WorkingDir:  root,
	})

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	out := buf.String()
	bad := filepath.Join("quiz", "bad.xml")

	assert.Contains(t, out, bad+" (1 issue)")
	assert.Contains(t, out, bad+":4:1")
	assert.Contains(t, out, "(mismatched-close)")
	assert.Contains(t, out, "        </a>\n        ^\n")
	assert.Contains(t, out, "<b> was opened at 3:3")
	assert.Contains(t, out, "(unclosed-at-eof)")
	assert.NotContains(t, out, "ok.html", "clean files are not listed")
	assert.True(t, strings.HasSuffix(out, "2 issues (2 errors) in 2 files, 3 files checked\n"), out)
}

func TestTextReporter_NoContextAndKindNames(t *testing.T) {
	t.Parallel()

	result, root := fixture(t)

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:     &buf,
		Color:      "never",
		KindFormat: config.KindFormatName,
		WorkingDir: root,
	})

	_, err := rep.Report(context.Background(), result)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "(MismatchedClose)")
	assert.NotContains(t, out, "^")
	assert.NotContains(t, out, "files checked", "summary disabled")
}

func TestTextReporter_StatsForRun(t *testing.T) {
	t.Parallel()

	result, root := fixture(t)

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:     &buf,
		Color:      "never",
		ShowStats:  true,
		WorkingDir: root,
	})

	_, err := rep.Report(context.Background(), result)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "--- Directory Summary (pages):")
	assert.Contains(t, out, "--- Directory Summary (quiz):")
	assert.Contains(t, out, "--- GLOBAL SCAN SUMMARY ---")
	assert.Contains(t, out, "Total Files Scanned:       3")
	assert.Contains(t, out, "Total Files with Issues:   2")
	assert.NotContains(t, out, "--- Statistics", "per-file block only for a single file")
}

func TestTextReporter_StatsForSingleFile(t *testing.T) {
	t.Parallel()

	checker, err := runner.NewChecker(nil)
	require.NoError(t, err)

	outcome := checker.CheckText(context.Background(), "snippet.html", "<div><p>x</p></div>")
	result := &runner.Result{Files: []runner.FileOutcome{outcome}}

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowStats: true})

	_, err = rep.Report(context.Background(), result)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "--- Statistics (Format: HTML, Encoding: utf-8) ---")
	assert.Contains(t, out, "Total tags: 2, Total issues: 0")
	assert.NotContains(t, out, "GLOBAL SCAN SUMMARY")
}

func TestTextReporter_FileError(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{{Path: "gone.xml", Error: os.ErrNotExist}},
		Stats: runner.Stats{FilesErrored: 1},
	}

	var buf bytes.Buffer
	_, err := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true}).
		Report(context.Background(), result)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "gone.xml: error: file does not exist")
	assert.Contains(t, buf.String(), "1 unreadable")
}

func TestJSONRenderer_ReportsAnalysis(t *testing.T) {
	t.Parallel()

	result, root := fixture(t)

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatJSON, WorkingDir: root})
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var report analysis.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))

	assert.Equal(t, analysis.ReportVersion, report.Version)
	assert.Len(t, report.Files, 3)
	assert.Equal(t, 3, report.Totals.Files)
	assert.Equal(t, 2, report.Totals.Errors)
	require.Len(t, report.Diagnostics, 2)

	diag := report.Diagnostics[0]
	assert.Equal(t, filepath.Join("quiz", "bad.xml"), diag.FilePath)
	assert.Equal(t, "mismatched-close", diag.KindID)
	assert.Equal(t, "MismatchedClose", diag.KindName)
	assert.Equal(t, "b", diag.Tag)
	assert.Equal(t, 4, diag.Line)
	assert.Equal(t, 3, diag.OpenLine)
	assert.Len(t, report.ByDirectory, 2)
}

func TestJSONRenderer_CompactNilResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatJSON, Compact: true})
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)

	out := strings.TrimSpace(buf.String())
	assert.NotContains(t, out, "\n")
	assert.Contains(t, out, `"files":[]`)
}

func TestSARIFRenderer_KindsAsRules(t *testing.T) {
	t.Parallel()

	result, root := fixture(t)

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{
		Writer:      &buf,
		Format:      reporter.FormatSARIF,
		WorkingDir:  root,
		ToolVersion: "1.2.3",
	})
	require.NoError(t, err)

	_, err = rep.Report(context.Background(), result)
	require.NoError(t, err)

	var output reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	require.Len(t, output.Runs, 1)

	run := output.Runs[0]
	assert.Equal(t, "gomlcheck", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)

	require.Len(t, run.Tool.Driver.Rules, 2)
	assert.Equal(t, "mismatched-close", run.Tool.Driver.Rules[0].ID)
	assert.Equal(t, "MismatchedClose", run.Tool.Driver.Rules[0].Name)
	assert.Equal(t, "unclosed-at-eof", run.Tool.Driver.Rules[1].ID)
	assert.Equal(t, "error", run.Tool.Driver.Rules[1].DefaultConfig.Level)

	require.Len(t, run.Results, 2)
	first := run.Results[0]
	assert.Equal(t, "mismatched-close", first.RuleID)
	assert.Equal(t, 0, first.RuleIndex)
	assert.Equal(t, "quiz/bad.xml", first.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, 4, first.Locations[0].PhysicalLocation.Region.StartLine)
	require.Len(t, first.RelatedLocations, 1)
	assert.Equal(t, 3, first.RelatedLocations[0].PhysicalLocation.Region.StartLine)

	second := run.Results[1]
	assert.Equal(t, 1, second.RuleIndex)
	assert.Empty(t, second.RelatedLocations)
	assert.Empty(t, run.Invocations)
}

func TestSARIFRenderer_UnreadableFiles(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{{Path: "gone.xml", Error: os.ErrPermission}},
		Stats: runner.Stats{FilesErrored: 1},
	}

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatSARIF})
	require.NoError(t, err)

	_, err = rep.Report(context.Background(), result)
	require.NoError(t, err)

	var output reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	run := output.Runs[0]
	assert.Empty(t, run.Results)
	require.Len(t, run.Invocations, 1)
	assert.False(t, run.Invocations[0].ExecutionSuccessful)
	assert.Equal(t, "gone.xml", run.Invocations[0].ToolExecutionNotifications[0].Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, "dev", run.Tool.Driver.Version)
}
