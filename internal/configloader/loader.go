// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, and validation.
package configloader

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomlcheck/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (GOMLCHECK_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.gomlcheck.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/gomlcheck/config.yaml)
//  6. System config (/etc/gomlcheck/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	cfg := config.NewConfig()

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	if opts.ExplicitPath != "" {
		paths.Explicit = opts.ExplicitPath
	}
	result.Paths = paths

	layers := []struct {
		label   string
		path    string
		skipped bool
	}{
		{label: "system", path: paths.System, skipped: opts.IgnoreSystemConfig},
		{label: "user", path: paths.User, skipped: opts.IgnoreUserConfig},
		{label: "project", path: paths.Project, skipped: opts.IgnoreProjectConfig},
		{label: "explicit", path: paths.Explicit},
	}

	for _, layer := range layers {
		if layer.skipped || layer.path == "" {
			continue
		}
		fileCfg, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.label, err)
		}
		normalizeCheckKeys(fileCfg, result)
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}
	cfg.DisableChecks = normalizeIDs(cfg.DisableChecks)

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}

	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML or JSON file.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg := &config.Config{}
	if IsJSONConfig(path) {
		if err := parseJSONC(content, cfg); err != nil {
			return nil, fmt.Errorf("parse JSON %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("parse YAML %s: %w", path, err)
	}

	if cfg.Checks == nil {
		cfg.Checks = make(map[string]config.CheckConfig)
	}

	return cfg, nil
}

// normalizeCheckKeys rewrites check keys to canonical IDs. When two keys
// resolve to the same check, the later one wins and a warning is recorded.
func normalizeCheckKeys(cfg *config.Config, result *LoadResult) {
	if len(cfg.Checks) == 0 {
		return
	}

	normalized := make(map[string]config.CheckConfig, len(cfg.Checks))
	seen := make(map[string]string)

	for key, checkCfg := range cfg.Checks {
		id := NormalizeCheckID(key)
		if original, exists := seen[id]; exists {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate check configuration: %q and %q both refer to %s; using last value",
					original, key, id))
		}
		seen[id] = key
		normalized[id] = checkCfg
	}

	cfg.Checks = normalized
}

func normalizeIDs(ids []string) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = NormalizeCheckID(id)
	}
	return out
}
