package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gomlcheck/pkg/config"
	"github.com/yaklabco/gomlcheck/pkg/schema"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "checks.malformed-tag.severity").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown checks).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText:    true,
	config.FormatJSON:    true,
	config.FormatSARIF:   true,
	config.FormatSummary: true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Mode != "" && !cfg.Mode.IsValid() {
		result.addError("mode", cfg.Mode, fmt.Sprintf("invalid mode %q; must be one of: auto, html, xml", cfg.Mode))
	}

	if _, err := schema.Parse(cfg.Schema); err != nil {
		result.addError("schema", cfg.Schema, fmt.Sprintf("invalid schema %q; must be one of: moodlemc", cfg.Schema))
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.addError("format", cfg.Format,
			fmt.Sprintf("invalid format %q; must be one of: text, json, sarif, summary", cfg.Format))
	}

	if cfg.KindFormat != "" && cfg.KindFormat != config.KindFormatID && cfg.KindFormat != config.KindFormatName {
		result.addError("kind_format", cfg.KindFormat,
			fmt.Sprintf("invalid kind format %q; must be one of: id, name", cfg.KindFormat))
	}

	if cfg.Type != "" && !cfg.Type.IsValid() {
		result.addError("type", cfg.Type, fmt.Sprintf("invalid file type %q; must be one of: all, html, xml", cfg.Type))
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	validateExtensions("extensions.html", cfg.Extensions.HTML, result)
	validateExtensions("extensions.xml", cfg.Extensions.XML, result)
	validateChecks(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

func (r *ValidationResult) addError(field string, value any, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: message})
}

func (r *ValidationResult) addWarning(field string, value any, message string) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: message})
}

// validateChecks checks per-kind configuration and the disable list.
func validateChecks(cfg *config.Config, result *ValidationResult) {
	for id, checkCfg := range cfg.Checks {
		if !IsKnownCheck(id) {
			result.addWarning("checks."+id, id, fmt.Sprintf("unknown check %q; it will be ignored", id))
		}

		if checkCfg.Severity != nil && !config.Severity(*checkCfg.Severity).IsValid() {
			result.addError("checks."+id+".severity", *checkCfg.Severity,
				fmt.Sprintf("invalid severity %q; must be one of: error, warning, info", *checkCfg.Severity))
		}
	}

	for idx, id := range cfg.DisableChecks {
		if !IsKnownCheck(id) {
			result.addError(fmt.Sprintf("disable[%d]", idx), id, fmt.Sprintf("unknown check %q", id))
		}
	}
}

func validateExtensions(field string, exts []string, result *ValidationResult) {
	for idx, ext := range exts {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			result.addError(fmt.Sprintf("%s[%d]", field, idx), ext,
				fmt.Sprintf("invalid extension %q; must start with a dot", ext))
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for idx, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", idx), pattern, fmt.Sprintf("invalid glob pattern: %v", err))
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}
