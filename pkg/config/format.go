package config

import "github.com/yaklabco/gomlcheck/pkg/markup"

// FormatKind formats a diagnostic kind according to format.
func FormatKind(format KindFormat, kind markup.DiagnosticKind) string {
	switch format {
	case KindFormatName:
		return kind.String()
	case KindFormatID:
		return kind.ID()
	default:
		return kind.ID()
	}
}
