// Package config defines core configuration types for gomlcheck.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

import "github.com/yaklabco/gomlcheck/pkg/markup"

// Severity represents the severity level of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid returns true if the severity is one of the known levels.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// CheckConfig holds per-diagnostic-kind configuration.
type CheckConfig struct {
	Enabled  *bool   `json:"enabled,omitempty"  mapstructure:"enabled"  yaml:"enabled,omitempty"`
	Severity *string `json:"severity,omitempty" mapstructure:"severity" yaml:"severity,omitempty"`
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatSummary OutputFormat = "summary"
)

// ModeSetting selects how the document mode is chosen.
type ModeSetting string

const (
	// ModeAuto sniffs each document.
	ModeAuto ModeSetting = "auto"
	ModeHTML ModeSetting = "html"
	ModeXML  ModeSetting = "xml"
)

// IsValid returns true if the mode setting is known.
func (m ModeSetting) IsValid() bool {
	switch m {
	case ModeAuto, ModeHTML, ModeXML:
		return true
	default:
		return false
	}
}

// Forced returns the document mode when the setting is not auto.
func (m ModeSetting) Forced() (markup.Mode, bool) {
	switch m {
	case ModeHTML:
		return markup.ModeHTML, true
	case ModeXML:
		return markup.ModeXML, true
	default:
		return 0, false
	}
}

// FileType restricts directory scans to one family of extensions.
type FileType string

const (
	FileTypeAll  FileType = "all"
	FileTypeHTML FileType = "html"
	FileTypeXML  FileType = "xml"
)

// IsValid returns true if the file type is known.
func (f FileType) IsValid() bool {
	switch f {
	case FileTypeAll, FileTypeHTML, FileTypeXML:
		return true
	default:
		return false
	}
}

// KindFormat controls how diagnostic kinds appear in output.
type KindFormat string

const (
	KindFormatID   KindFormat = "id"   // "mismatched-close"
	KindFormatName KindFormat = "name" // "MismatchedClose"
)

// ExtensionsConfig lists the file extensions scanned in directories.
type ExtensionsConfig struct {
	HTML []string `json:"html" mapstructure:"html" yaml:"html"`
	XML  []string `json:"xml"  mapstructure:"xml"  yaml:"xml"`
}

// Config is the root configuration structure for gomlcheck.
type Config struct {
	// Mode is "auto", "html" or "xml".
	Mode ModeSetting `json:"mode,omitempty" mapstructure:"mode" yaml:"mode,omitempty"`

	// Schema is the profile applied to XML documents ("" or "moodlemc").
	Schema string `json:"schema,omitempty" mapstructure:"schema" yaml:"schema,omitempty"`

	// Recursive descends into subdirectories.
	Recursive *bool `json:"recursive,omitempty" mapstructure:"recursive" yaml:"recursive,omitempty"`

	// FollowSymlinks traverses directory symlinks during recursive scans.
	FollowSymlinks *bool `json:"follow_symlinks,omitempty" mapstructure:"follow_symlinks" yaml:"follow_symlinks,omitempty"`

	// Extensions lists the file extensions scanned in directories.
	Extensions ExtensionsConfig `json:"extensions" mapstructure:"extensions" yaml:"extensions"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `json:"ignore,omitempty" mapstructure:"ignore" yaml:"ignore,omitempty"`

	// Checks contains per-kind configuration keyed by kind ID.
	Checks map[string]CheckConfig `json:"checks,omitempty" mapstructure:"checks" yaml:"checks,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `json:"-" mapstructure:"-" yaml:"-"`

	// KindFormat controls how kinds are printed.
	KindFormat KindFormat `json:"-" mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `json:"-" mapstructure:"-" yaml:"-"`

	// Type limits directory scans to html or xml extensions.
	Type FileType `json:"-" mapstructure:"-" yaml:"-"`

	// Stat prints per-file and per-directory statistics.
	Stat bool `json:"-" mapstructure:"-" yaml:"-"`

	// Strict makes warnings fail the run.
	Strict bool `json:"-" mapstructure:"-" yaml:"-"`

	// DisableChecks contains kind IDs to disable.
	DisableChecks []string `json:"-" mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Mode:   ModeAuto,
		Schema: "",
		Extensions: ExtensionsConfig{
			HTML: DefaultHTMLExtensions(),
			XML:  DefaultXMLExtensions(),
		},
		Checks:     make(map[string]CheckConfig),
		Format:     FormatText,
		KindFormat: KindFormatID,
		Type:       FileTypeAll,
		Jobs:       0, // 0 means use runtime.NumCPU
	}
}

// DefaultHTMLExtensions returns the extensions scanned as HTML candidates.
func DefaultHTMLExtensions() []string {
	return []string{".html", ".htm", ".xhtml"}
}

// DefaultXMLExtensions returns the extensions scanned as XML candidates.
func DefaultXMLExtensions() []string {
	return []string{".xml"}
}

// IsRecursive reports whether directory scans descend into subdirectories.
func (c *Config) IsRecursive() bool {
	return c.Recursive != nil && *c.Recursive
}

// IsFollowSymlinks reports whether directory symlinks are traversed.
func (c *Config) IsFollowSymlinks() bool {
	return c.FollowSymlinks != nil && *c.FollowSymlinks
}

// ScanExtensions returns the extensions scanned in directories for the
// configured file type.
func (c *Config) ScanExtensions() []string {
	switch c.Type {
	case FileTypeHTML:
		return c.Extensions.HTML
	case FileTypeXML:
		return c.Extensions.XML
	default:
		out := make([]string, 0, len(c.Extensions.HTML)+len(c.Extensions.XML))
		out = append(out, c.Extensions.HTML...)
		return append(out, c.Extensions.XML...)
	}
}

// CheckSetting resolves whether a diagnostic kind is reported and at which
// severity. Every kind is enabled at error severity unless configured
// otherwise; DisableChecks wins over Checks.
func (c *Config) CheckSetting(kind markup.DiagnosticKind) (bool, Severity) {
	id := kind.ID()
	enabled := true
	severity := SeverityError

	if check, ok := c.Checks[id]; ok {
		if check.Enabled != nil {
			enabled = *check.Enabled
		}
		if check.Severity != nil {
			severity = Severity(*check.Severity)
		}
	}
	for _, disabled := range c.DisableChecks {
		if disabled == id {
			enabled = false
		}
	}
	return enabled, severity
}

// Bool returns a pointer to b, for optional config fields.
func Bool(b bool) *bool {
	return &b
}
