package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yaklabco/gomlcheck/pkg/markup"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every diagnostic kind. If false, a minimal template is
	// generated.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateJSON(opts.Full)
	}
	if opts.Full {
		return generateFullTemplate(), nil
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Document mode: auto (sniff each file), html, or xml
mode: auto

# Structural schema for XML documents: moodlemc
# schema: moodlemc

# Descend into subdirectories
# recursive: false

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"

# Per-check configuration
# checks:
#   unclosed-at-eof:
#     severity: warning
#   malformed-tag:
#     enabled: false
`)

	return buf.Bytes()
}

func generateFullTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(`# gomlcheck configuration - Full Template
# See: https://github.com/yaklabco/gomlcheck
#
# This template lists every check with its default settings.
# Uncomment and modify settings as needed.

# Document mode: auto (sniff each file), html, or xml
mode: auto

# Structural schema for XML documents. Leave empty for none.
# Profiles: moodlemc
schema: ""

# Descend into subdirectories
recursive: false

# Traverse directory symlinks during recursive scans
follow_symlinks: false

# Extensions scanned in directories (files named explicitly are always checked)
extensions:
  html: [".html", ".htm", ".xhtml"]
  xml: [".xml"]

# File patterns to ignore (glob patterns)
ignore:
  - "vendor/**"
  - "node_modules/**"
  - ".git/**"

# Per-check configuration
checks:
`)

	for _, kind := range markup.AllDiagnosticKinds() {
		fmt.Fprintf(&buf, "\n  # %s\n", wrapComment(kind.Description(), commentWrapWidth))
		fmt.Fprintf(&buf, "  %s:\n", kind.ID())
		buf.WriteString("    enabled: true\n")
		fmt.Fprintf(&buf, "    severity: %s\n", SeverityError)
	}

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// templateJSON renders the template as JSON. Comments cannot be expressed, so
// the minimal form carries only the mode and the full form every setting.
func templateJSON(full bool) ([]byte, error) {
	cfg := map[string]any{
		"mode": string(ModeAuto),
	}

	if full {
		checks := make(map[string]any)
		for _, kind := range markup.AllDiagnosticKinds() {
			checks[kind.ID()] = map[string]any{
				"enabled":  true,
				"severity": string(SeverityError),
			}
		}
		cfg["schema"] = ""
		cfg["recursive"] = false
		cfg["follow_symlinks"] = false
		cfg["extensions"] = map[string]any{
			"html": DefaultHTMLExtensions(),
			"xml":  DefaultXMLExtensions(),
		}
		cfg["ignore"] = []string{"vendor/**", "node_modules/**", ".git/**"}
		cfg["checks"] = checks
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gomlcheck configuration
# See: https://github.com/yaklabco/gomlcheck`
}
