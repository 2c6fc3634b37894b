package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/gomlcheck/internal/logging"
	"github.com/yaklabco/gomlcheck/pkg/config"
	"github.com/yaklabco/gomlcheck/pkg/decode"
	"github.com/yaklabco/gomlcheck/pkg/fsutil"
	"github.com/yaklabco/gomlcheck/pkg/schema"
	"github.com/yaklabco/gomlcheck/pkg/sniff"
	"github.com/yaklabco/gomlcheck/pkg/validate"
)

// ErrReadFailure wraps errors that prevented a file from being read or decoded.
var ErrReadFailure = errors.New("cannot read document")

// Checker validates single files under a resolved configuration.
// It is safe for concurrent use.
type Checker struct {
	cfg    *config.Config
	schema schema.Name
}

// NewChecker creates a Checker for cfg. It fails if cfg names an unknown schema.
func NewChecker(cfg *config.Config) (*Checker, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	name, err := schema.Parse(cfg.Schema)
	if err != nil {
		return nil, fmt.Errorf("new checker: %w", err)
	}
	return &Checker{cfg: cfg, schema: name}, nil
}

// CheckFile reads, decodes and validates the file at path.
func (c *Checker) CheckFile(ctx context.Context, path string) FileOutcome {
	logger := logging.ForDocument(ctx, path)
	outcome := FileOutcome{Path: path}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = fmt.Errorf("%w: %w", ErrReadFailure, err)
		return outcome
	}
	outcome.Size = info.Size

	text, enc, err := decode.Bytes(content)
	if err != nil {
		outcome.Error = fmt.Errorf("%w: %s: %w", ErrReadFailure, path, err)
		return outcome
	}
	outcome.Text = text
	outcome.Encoding = enc

	outcome.Detection = c.detect(path, text)
	if !outcome.Detection.Known() {
		logger.Warn("could not determine document format, forcing XML")
	}

	result, err := validate.ValidateWithOptions(text, validate.Options{
		Mode:   outcome.Detection.Mode,
		Schema: c.schema,
	})
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Result = result
	outcome.Issues = c.issues(result)

	logger.Debug("checked document",
		logging.FieldMode, outcome.Detection.Mode,
		logging.FieldModeSource, outcome.Detection.Source,
		logging.FieldEncoding, enc,
		logging.FieldTags, result.TagCount,
		logging.FieldDiagnostics, len(outcome.Issues),
	)

	return outcome
}

// CheckText validates an in-memory document, as read from standard input.
func (c *Checker) CheckText(ctx context.Context, name, text string) FileOutcome {
	logger := logging.ForDocument(ctx, name)
	outcome := FileOutcome{Path: name, Text: text, Encoding: decode.UTF8}

	outcome.Detection = c.detect(name, text)
	if !outcome.Detection.Known() {
		logger.Warn("could not determine document format, forcing XML")
	}

	result, err := validate.ValidateWithOptions(text, validate.Options{
		Mode:   outcome.Detection.Mode,
		Schema: c.schema,
	})
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Result = result
	outcome.Issues = c.issues(result)
	return outcome
}

func (c *Checker) detect(path, text string) sniff.Result {
	if mode, ok := c.cfg.Mode.Forced(); ok {
		return sniff.Forced(mode)
	}
	return sniff.Detect(path, text)
}

// issues filters disabled kinds and attaches configured severities.
func (c *Checker) issues(result validate.Result) []Issue {
	var out []Issue
	for _, diag := range result.Diagnostics {
		enabled, severity := c.cfg.CheckSetting(diag.Kind)
		if !enabled {
			continue
		}
		out = append(out, Issue{Diagnostic: diag, Severity: severity})
	}
	return out
}
