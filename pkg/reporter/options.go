package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/gomlcheck/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowContext prints the offending source line under each diagnostic.
	ShowContext bool

	// ShowSummary prints the one-line totals after text output.
	ShowSummary bool

	// ShowStats prints tag and issue statistics per file, per directory
	// and for the whole run (text format only).
	ShowStats bool

	// Compact uses minified JSON and SARIF output.
	Compact bool

	// KindFormat controls how diagnostic kinds appear in output.
	KindFormat config.KindFormat

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is.
	WorkingDir string

	// ToolVersion is reported as the SARIF driver version.
	ToolVersion string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatText,
		Color:       "auto",
		ShowContext: true,
		ShowSummary: true,
		KindFormat:  config.KindFormatID,
	}
}
