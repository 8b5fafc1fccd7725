package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/docker/go-units"

	"c4kit/internal/errors"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", errors.Errorf(errors.InvalidFormat, "unsupported format: %s", format)
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data) + "\n", nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *ValidateResponse:
		return formatValidateHuman(v), nil
	case *StepsResponse:
		return formatStepsHuman(v), nil
	case *HydrateResponse:
		return formatHydrateHuman(v), nil
	case *ExportResponse:
		return formatExportHuman(v), nil
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatValidateHuman(resp *ValidateResponse) string {
	var b strings.Builder

	title := resp.Name
	if title == "" {
		title = resp.Path
	}
	b.WriteString(fmt.Sprintf("%s: OK\n", title))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	b.WriteString(fmt.Sprintf("  Schema:        %s\n", resp.Schema))
	b.WriteString(fmt.Sprintf("  Elements:      %d\n", resp.Elements))
	b.WriteString(fmt.Sprintf("  Relationships: %d\n", resp.Relationships))
	b.WriteString(fmt.Sprintf("  Views:         %d\n", len(resp.Views)))

	if len(resp.Views) > 0 {
		b.WriteString("\n")
		for _, v := range resp.Views {
			line := fmt.Sprintf("  - %s (%d steps)", v.Key, v.Steps)
			if v.Scope != "" {
				line += " scope: " + v.Scope
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

func formatStepsHuman(resp *StepsResponse) string {
	var b strings.Builder

	header := resp.View
	if resp.Scope != "" {
		header += fmt.Sprintf(" (scope: %s)", resp.Scope)
	}
	b.WriteString(header + "\n")
	if resp.Description != "" {
		b.WriteString(resp.Description + "\n")
	}
	b.WriteString(strings.Repeat("-", 60) + "\n")

	width := 0
	for _, s := range resp.Steps {
		if n := len(s.Source) + len(s.Destination) + 4; n > width {
			width = n
		}
	}
	for _, s := range resp.Steps {
		pair := s.Source + " -> " + s.Destination
		line := fmt.Sprintf("  %-4s %-*s  %s", s.Order, width, pair, s.Description)
		if s.Technology != "" {
			line += fmt.Sprintf(" [%s]", s.Technology)
		}
		if s.Response {
			line += "  (response)"
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func formatHydrateHuman(resp *HydrateResponse) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Restored %d view(s) from %s\n\n", len(resp.Views), resp.Document))
	for i := range resp.Views {
		b.WriteString(formatStepsHuman(&resp.Views[i]))
		b.WriteString("\n")
	}
	return b.String()
}

func formatExportHuman(resp *ExportResponse) string {
	kind := resp.Format
	if resp.Compressed {
		kind += "+zstd"
	}
	return fmt.Sprintf("Wrote %d view(s) to %s (%s, %s)\nDocument: %s\n",
		resp.Views, resp.Path, kind, formatBytes(resp.Bytes), resp.DocumentID)
}

// formatBytes renders a size in binary units, e.g. 1.5KiB
func formatBytes(n int64) string {
	return units.BytesSize(float64(n))
}

// formatError renders a command error with its code and, for coded errors,
// the suggested fixes.
func formatError(err error) string {
	var b strings.Builder
	b.WriteString("Error: " + err.Error() + "\n")

	var coded *errors.Error
	if stderrors.As(err, &coded) && len(coded.SuggestedFixes) > 0 {
		b.WriteString("\nSuggested fixes:\n")
		for _, fix := range coded.SuggestedFixes {
			b.WriteString(fmt.Sprintf("  - %s\n", fix.Description))
			if fix.Command != "" {
				b.WriteString(fmt.Sprintf("    $ %s\n", fix.Command))
			}
		}
	}
	return b.String()
}
