package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomlcheck/pkg/config"
	"github.com/yaklabco/gomlcheck/pkg/markup"
)

func TestFormatKind(t *testing.T) {
	tests := []struct {
		name   string
		format config.KindFormat
		kind   markup.DiagnosticKind
		want   string
	}{
		{"id format", config.KindFormatID, markup.UnclosedAtEOF, "unclosed-at-eof"},
		{"name format", config.KindFormatName, markup.UnclosedAtEOF, "UnclosedAtEOF"},
		{"default to id", config.KindFormat(""), markup.SchemaViolation, "schema-violation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := config.FormatKind(tt.format, tt.kind)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewConfig_DefaultKindFormat(t *testing.T) {
	cfg := config.NewConfig()
	assert.Equal(t, config.KindFormatID, cfg.KindFormat)
}
