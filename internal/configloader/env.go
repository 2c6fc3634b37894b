package configloader

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gomlcheck/pkg/config"
)

// envVarPrefix is the prefix for all gomlcheck environment variables.
const envVarPrefix = "GOMLCHECK_"

// ErrInvalidEnv is returned when an environment variable cannot be parsed.
var ErrInvalidEnv = errors.New("invalid environment variable")

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"MODE":            {field: "mode", typ: envTypeString, description: "Document mode: auto, html, or xml"},
	"SCHEMA":          {field: "schema", typ: envTypeString, description: "Schema profile for XML documents: moodlemc"},
	"RECURSIVE":       {field: "recursive", typ: envTypeBool, description: "Descend into subdirectories: true or false"},
	"FOLLOW_SYMLINKS": {field: "follow_symlinks", typ: envTypeBool, description: "Traverse directory symlinks: true or false"},
	"JOBS":            {field: "jobs", typ: envTypeInt, description: "Number of parallel workers (0 = auto)"},
	"FORMAT":          {field: "format", typ: envTypeString, description: "Output format: text, json, sarif, or summary"},
	"TYPE":            {field: "type", typ: envTypeString, description: "File type scanned in directories: all, html, or xml"},
	"IGNORE":          {field: "ignore", typ: envTypeSlice, description: "Comma-separated list of ignore patterns"},
	"DISABLE":         {field: "disable", typ: envTypeSlice, description: "Comma-separated list of check IDs to disable"},
	"STRICT":          {field: "strict", typ: envTypeBool, description: "Fail on warnings: true or false"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOMLCHECK_ (e.g., GOMLCHECK_MODE).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q (expected true/false/1/0)", ErrInvalidEnv, envVar, value)
		}
		setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q (expected an integer)", ErrInvalidEnv, envVar, value)
		}
		cfg.Jobs = i
	case envTypeSlice:
		setSliceField(cfg, mapping.field, parseSliceValue(value))
	}
	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) {
	switch field {
	case "mode":
		cfg.Mode = config.ModeSetting(strings.ToLower(value))
	case "schema":
		cfg.Schema = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "type":
		cfg.Type = config.FileType(value)
	}
}

func setBoolField(cfg *config.Config, field string, value bool) {
	switch field {
	case "recursive":
		cfg.Recursive = config.Bool(value)
	case "follow_symlinks":
		cfg.FollowSymlinks = config.Bool(value)
	case "strict":
		cfg.Strict = value
	}
}

func setSliceField(cfg *config.Config, field string, value []string) {
	switch field {
	case "ignore":
		cfg.Ignore = value
	case "disable":
		cfg.DisableChecks = value
	}
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		out[envVarPrefix+suffix] = mapping.description
	}
	return out
}
