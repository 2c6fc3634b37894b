package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomlcheck/internal/logging"
	"github.com/yaklabco/gomlcheck/pkg/config"
	"github.com/yaklabco/gomlcheck/pkg/markup"
	"github.com/yaklabco/gomlcheck/pkg/schema"
)

type kindsFlags struct {
	kindFormat string
	format     string
}

const formatJSON = "json"

// kindInfo represents a diagnostic kind in JSON output.
type kindInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// schemaInfo represents a schema profile in JSON output.
type schemaInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type kindsOutput struct {
	Kinds   []kindInfo   `json:"kinds"`
	Schemas []schemaInfo `json:"schemas"`
}

func newKindsCommand() *cobra.Command {
	flags := &kindsFlags{}

	cmd := &cobra.Command{
		Use:     "kinds",
		Aliases: []string{"rules"},
		Short:   "List diagnostic kinds and schema profiles",
		Long: `List every diagnostic kind gomlcheck reports with its ID, name,
description and default severity, followed by the schema profiles available
to --schema.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch flags.format {
			case formatJSON:
				return outputKindsJSON(cmd.OutOrStdout())
			case "text", "":
			default:
				return fmt.Errorf("%w: unknown format %q: must be text or json", ErrUsage, flags.format)
			}

			kindFormat := config.KindFormat(flags.kindFormat)
			if kindFormat != config.KindFormatID && kindFormat != config.KindFormatName {
				return fmt.Errorf("%w: unknown kind format %q: must be id or name", ErrUsage, flags.kindFormat)
			}

			logger := logging.NewInteractive(cmd.OutOrStdout())
			defaults := config.NewConfig()

			logger.Info("diagnostic kinds")
			for _, kind := range markup.AllDiagnosticKinds() {
				_, severity := defaults.CheckSetting(kind)
				logger.Info(config.FormatKind(kindFormat, kind),
					logging.FieldSeverity, severity,
					logging.FieldDescription, kind.Description(),
				)
			}

			logger.Info("schema profiles")
			for _, name := range schema.All() {
				logger.Info(name.String(), logging.FieldDescription, name.Description())
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.kindFormat, "kind-format", string(config.KindFormatID),
		"kind identifier format in output: id, name")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

// outputKindsJSON writes kinds and schema profiles as a JSON document.
func outputKindsJSON(w io.Writer) error {
	defaults := config.NewConfig()

	out := kindsOutput{}
	for _, kind := range markup.AllDiagnosticKinds() {
		_, severity := defaults.CheckSetting(kind)
		out.Kinds = append(out.Kinds, kindInfo{
			ID:          kind.ID(),
			Name:        kind.String(),
			Description: kind.Description(),
			Severity:    string(severity),
		})
	}
	for _, name := range schema.All() {
		out.Schemas = append(out.Schemas, schemaInfo{
			Name:        name.String(),
			Description: name.Description(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding kinds: %w", err)
	}
	return nil
}
