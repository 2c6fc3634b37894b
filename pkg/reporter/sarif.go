package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/gomlcheck/pkg/analysis"
	"github.com/yaklabco/gomlcheck/pkg/config"
	"github.com/yaklabco/gomlcheck/pkg/markup"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

const (
	toolName           = "gomlcheck"
	toolInformationURI = "https://github.com/yaklabco/gomlcheck"
	devVersion         = "dev"
)

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool        SARIFTool         `json:"tool"`
	Results     []SARIFResult     `json:"results"`
	Invocations []SARIFInvocation `json:"invocations,omitempty"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes one diagnostic kind.
type SARIFRule struct {
	ID               string               `json:"id"`
	Name             string               `json:"name,omitempty"`
	ShortDescription SARIFMultiformatText `json:"shortDescription"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult represents a single diagnostic result.
type SARIFResult struct {
	RuleID           string          `json:"ruleId"`
	RuleIndex        int             `json:"ruleIndex"`
	Level            string          `json:"level"`
	Message          SARIFMessage    `json:"message"`
	Locations        []SARIFLocation `json:"locations"`
	RelatedLocations []SARIFLocation `json:"relatedLocations,omitempty"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	ID               int                   `json:"id,omitempty"`
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
	Message          *SARIFMessage         `json:"message,omitempty"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
}

// SARIFInvocation records files that could not be analyzed.
type SARIFInvocation struct {
	ExecutionSuccessful        bool                `json:"executionSuccessful"`
	ToolExecutionNotifications []SARIFNotification `json:"toolExecutionNotifications,omitempty"`
}

// SARIFNotification is a tool-level message tied to a file.
type SARIFNotification struct {
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
}

// SARIFRenderer formats the report as SARIF 2.1.0.
type SARIFRenderer struct {
	opts Options
}

// NewSARIFRenderer creates a new SARIF renderer.
func NewSARIFRenderer(opts Options) *SARIFRenderer {
	return &SARIFRenderer{opts: opts}
}

// Render implements Renderer.
func (r *SARIFRenderer) Render(_ context.Context, report *analysis.Report) error {
	output := r.buildOutput(report)

	encoder := json.NewEncoder(r.opts.Writer)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode SARIF: %w", err)
	}

	return nil
}

func (r *SARIFRenderer) buildOutput(report *analysis.Report) *SARIFOutput {
	version := r.opts.ToolVersion
	if version == "" {
		version = devVersion
	}

	run := SARIFRun{
		Tool: SARIFTool{
			Driver: SARIFDriver{
				Name:           toolName,
				Version:        version,
				InformationURI: toolInformationURI,
				Rules:          make([]SARIFRule, 0),
			},
		},
		Results: make([]SARIFResult, 0, len(report.Diagnostics)),
	}

	ruleIndex := r.buildRules(&run, report.Diagnostics)

	for _, diag := range report.Diagnostics {
		result := SARIFResult{
			RuleID:    diag.KindID,
			RuleIndex: ruleIndex[diag.KindID],
			Level:     severityToSARIFLevel(config.Severity(diag.Severity)),
			Message:   SARIFMessage{Text: diag.Message},
			Locations: []SARIFLocation{location(diag.FilePath, diag.Line, diag.Column)},
		}

		if diag.OpenLine != diag.Line || diag.OpenColumn != diag.Column {
			related := location(diag.FilePath, diag.OpenLine, diag.OpenColumn)
			related.ID = 1
			related.Message = &SARIFMessage{Text: fmt.Sprintf("<%s> opened here", diag.Tag)}
			result.RelatedLocations = []SARIFLocation{related}
		}

		run.Results = append(run.Results, result)
	}

	var notifications []SARIFNotification
	for _, file := range report.Files {
		if file.Error == "" {
			continue
		}
		notifications = append(notifications, SARIFNotification{
			Level:   "error",
			Message: SARIFMessage{Text: file.Error},
			Locations: []SARIFLocation{{
				PhysicalLocation: SARIFPhysicalLocation{ArtifactLocation: artifact(file.Path)},
			}},
		})
	}
	if len(notifications) > 0 {
		run.Invocations = []SARIFInvocation{{
			ExecutionSuccessful:        false,
			ToolExecutionNotifications: notifications,
		}}
	}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

// buildRules adds a rule for every kind present, in declaration order, and
// returns each rule's index. The default level is the first severity seen.
func (r *SARIFRenderer) buildRules(run *SARIFRun, diags []analysis.DiagnosticEntry) map[string]int {
	levels := make(map[string]string)
	for _, diag := range diags {
		if _, ok := levels[diag.KindID]; !ok {
			levels[diag.KindID] = severityToSARIFLevel(config.Severity(diag.Severity))
		}
	}

	index := make(map[string]int, len(levels))
	for _, kind := range markup.AllDiagnosticKinds() {
		level, ok := levels[kind.ID()]
		if !ok {
			continue
		}
		index[kind.ID()] = len(run.Tool.Driver.Rules)
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, SARIFRule{
			ID:               kind.ID(),
			Name:             kind.String(),
			ShortDescription: SARIFMultiformatText{Text: kind.Description()},
			DefaultConfig:    &SARIFRuleConfig{Level: level},
		})
	}
	return index
}

func location(path string, line, column int) SARIFLocation {
	return SARIFLocation{
		PhysicalLocation: SARIFPhysicalLocation{
			ArtifactLocation: artifact(path),
			Region:           SARIFRegion{StartLine: line, StartColumn: column},
		},
	}
}

func artifact(path string) SARIFArtifactLocation {
	return SARIFArtifactLocation{URI: filepath.ToSlash(path)}
}

// severityToSARIFLevel converts a severity to a SARIF level.
func severityToSARIFLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityWarning:
		return "warning"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
