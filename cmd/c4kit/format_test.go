package main

import (
	"fmt"
	"strings"
	"testing"

	"c4kit/internal/errors"
)

func TestFormatResponse_JSON(t *testing.T) {
	resp := map[string]interface{}{
		"key": "value",
		"num": 42,
	}

	result, err := FormatResponse(resp, FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(result, `"key": "value"`) {
		t.Error("JSON output missing expected key")
	}
	if !strings.Contains(result, `"num": 42`) {
		t.Error("JSON output missing expected number")
	}
}

func TestFormatResponse_UnsupportedFormat(t *testing.T) {
	_, err := FormatResponse(map[string]string{"key": "value"}, "xml")
	if !errors.HasCode(err, errors.InvalidFormat) {
		t.Errorf("FormatResponse() error = %v, want %s", err, errors.InvalidFormat)
	}
}

func TestFormatHuman_FallsBackToJSON(t *testing.T) {
	result, err := formatHuman(struct {
		Name string `json:"name"`
	}{Name: "test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result, `"name": "test"`) {
		t.Errorf("formatHuman() = %q, want JSON", result)
	}
}

func TestFormatStepsHuman(t *testing.T) {
	resp := &StepsResponse{
		View:        "signin",
		Description: "Sign in",
		Scope:       "API Application",
		Steps: []StepLine{
			{Order: "1", Source: "SPA", Destination: "Sign In Controller", Description: "Submits credentials to", Technology: "JSON/HTTPS"},
			{Order: "2", Source: "Sign In Controller", Destination: "SPA", Description: "Sends a token", Technology: "JSON/HTTPS", Response: true},
		},
	}

	out := formatStepsHuman(resp)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "signin (scope: API Application)" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasSuffix(lines[3], "Submits credentials to [JSON/HTTPS]") {
		t.Errorf("step 1 = %q", lines[3])
	}
	if !strings.HasSuffix(lines[4], "(response)") {
		t.Errorf("step 2 = %q, want a response marker", lines[4])
	}
	// participants are padded to a common width
	if strings.Index(lines[3], "Submits") != strings.Index(lines[4], "Sends") {
		t.Errorf("descriptions are not aligned:\n%s", out)
	}
}

func TestFormatExportHuman(t *testing.T) {
	out := formatExportHuman(&ExportResponse{
		Path:       "views.json.zst",
		DocumentID: "abc",
		Format:     "json",
		Compressed: true,
		Views:      2,
		Bytes:      1536,
	})
	want := "Wrote 2 view(s) to views.json.zst (json+zstd, 1.5KiB)\nDocument: abc\n"
	if out != want {
		t.Errorf("formatExportHuman() = %q, want %q", out, want)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0B"},
		{100, "100B"},
		{1024, "1KiB"},
		{1536, "1.5KiB"},
		{1048576, "1MiB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := formatBytes(tt.bytes); got != tt.expected {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.bytes, got, tt.expected)
			}
		})
	}
}

func TestFormatError(t *testing.T) {
	t.Run("coded", func(t *testing.T) {
		err := errors.NewError(errors.InvalidWorkspace, "view signin step 2",
			errors.Errorf(errors.TechnologyMismatch, "no match"))

		out := formatError(err)
		if !strings.HasPrefix(out, "Error: [INVALID_WORKSPACE] view signin step 2: [TECHNOLOGY_MISMATCH] no match\n") {
			t.Errorf("formatError() = %q", out)
		}
		if !strings.Contains(out, "$ c4kit validate") {
			t.Errorf("formatError() missing suggested command:\n%s", out)
		}
	})

	t.Run("plain", func(t *testing.T) {
		out := formatError(fmt.Errorf("boom"))
		if out != "Error: boom\n" {
			t.Errorf("formatError() = %q, want %q", out, "Error: boom\n")
		}
	})
}
