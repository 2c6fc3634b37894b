package configloader

import (
	"maps"

	"github.com/yaklabco/gomlcheck/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Optional booleans: override overwrites base if set
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Mode != "" {
		result.Mode = override.Mode
	}
	if override.Schema != "" {
		result.Schema = override.Schema
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.KindFormat != "" {
		result.KindFormat = override.KindFormat
	}
	if override.Type != "" {
		result.Type = override.Type
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	if override.Recursive != nil {
		result.Recursive = override.Recursive
	}
	if override.FollowSymlinks != nil {
		result.FollowSymlinks = override.FollowSymlinks
	}

	// CLI-only switches can only be turned on.
	if override.Stat {
		result.Stat = true
	}
	if override.Strict {
		result.Strict = true
	}

	if override.Extensions.HTML != nil {
		result.Extensions.HTML = override.Extensions.HTML
	}
	if override.Extensions.XML != nil {
		result.Extensions.XML = override.Extensions.XML
	}

	result.Checks = mergeChecks(base.Checks, override.Checks)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.DisableChecks != nil {
		result.DisableChecks = override.DisableChecks
	}

	return &result
}

// mergeChecks performs a deep merge of per-check configurations.
func mergeChecks(base, override map[string]config.CheckConfig) map[string]config.CheckConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.CheckConfig, len(base)+len(override))
	maps.Copy(result, base)

	for key, val := range override {
		existing, ok := result[key]
		if !ok {
			result[key] = val
			continue
		}
		if val.Enabled != nil {
			existing.Enabled = val.Enabled
		}
		if val.Severity != nil {
			existing.Severity = val.Severity
		}
		result[key] = existing
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
