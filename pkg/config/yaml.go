package config

import (
	"bytes"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes. Fields absent from the
// document keep their zero value so the result can be merged over defaults.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if cfg.Checks == nil {
		cfg.Checks = make(map[string]CheckConfig)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration, CLI-only fields included.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Recursive = cloneBool(c.Recursive)
	clone.FollowSymlinks = cloneBool(c.FollowSymlinks)
	clone.Extensions = ExtensionsConfig{
		HTML: slices.Clone(c.Extensions.HTML),
		XML:  slices.Clone(c.Extensions.XML),
	}
	clone.Ignore = slices.Clone(c.Ignore)
	clone.DisableChecks = slices.Clone(c.DisableChecks)

	if c.Checks != nil {
		clone.Checks = make(map[string]CheckConfig, len(c.Checks))
		for k, v := range c.Checks {
			clone.Checks[k] = v.clone()
		}
	}

	return &clone
}

// clone creates a deep copy of a CheckConfig.
func (cc CheckConfig) clone() CheckConfig {
	out := CheckConfig{Enabled: cloneBool(cc.Enabled)}
	if cc.Severity != nil {
		severity := *cc.Severity
		out.Severity = &severity
	}
	return out
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
