package configloader

import (
	"testing"

	"github.com/yaklabco/gomlcheck/pkg/config"
)

func strPtr(s string) *string { return &s }

func TestMerge_Rules(t *testing.T) {
	t.Parallel()

	base := &config.Config{
		Mode:      config.ModeHTML,
		Schema:    "moodlemc",
		Recursive: config.Bool(true),
		Ignore:    []string{"a/**"},
		Extensions: config.ExtensionsConfig{
			HTML: []string{".html"},
			XML:  []string{".xml"},
		},
		Checks: map[string]config.CheckConfig{
			"malformed-tag": {Enabled: config.Bool(false), Severity: strPtr("info")},
		},
	}
	override := &config.Config{
		Mode:       config.ModeXML,
		Recursive:  config.Bool(false),
		Ignore:     []string{},
		Extensions: config.ExtensionsConfig{XML: []string{".qxml"}},
		Checks: map[string]config.CheckConfig{
			"malformed-tag": {Enabled: config.Bool(true)},
		},
	}

	got := merge(base, override)

	if got.Mode != config.ModeXML {
		t.Errorf("scalar override: got mode %q", got.Mode)
	}
	if got.Schema != "moodlemc" {
		t.Errorf("zero scalar must not override: got schema %q", got.Schema)
	}
	if got.IsRecursive() {
		t.Error("set pointer bool must override")
	}
	if len(got.Ignore) != 0 {
		t.Errorf("non-nil slice must replace: got %v", got.Ignore)
	}
	if len(got.Extensions.HTML) != 1 || got.Extensions.XML[0] != ".qxml" {
		t.Errorf("unexpected extensions %+v", got.Extensions)
	}

	check := got.Checks["malformed-tag"]
	if check.Enabled == nil || !*check.Enabled {
		t.Error("check enabled must be overridden")
	}
	if check.Severity == nil || *check.Severity != "info" {
		t.Error("check severity must survive a partial override")
	}

	if base.Checks["malformed-tag"].Enabled == nil || *base.Checks["malformed-tag"].Enabled {
		t.Error("merge must not mutate base")
	}
}

func TestMerge_Nil(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	if merge(nil, cfg) != cfg {
		t.Error("merge(nil, cfg) should return cfg")
	}
	if merge(cfg, nil) != cfg {
		t.Error("merge(cfg, nil) should return cfg")
	}
}

func TestMergeAll_LastWins(t *testing.T) {
	t.Parallel()

	got := MergeAll(
		&config.Config{Mode: config.ModeHTML, Jobs: 2},
		nil,
		&config.Config{Mode: config.ModeXML},
	)
	if got.Mode != config.ModeXML || got.Jobs != 2 {
		t.Errorf("unexpected merge result mode=%q jobs=%d", got.Mode, got.Jobs)
	}
}
