package testutil

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strings"
	"testing"
)

// updateGolden controls whether golden files should be updated.
// Use: go test ./... -run TestGolden -update
var updateGolden = flag.Bool("update", false, "update golden files")

// ShouldUpdate returns true if golden files should be updated.
func ShouldUpdate() bool {
	return *updateGolden
}

// CompareGolden compares got against the golden file, failing with a diff on mismatch.
// The data is normalized before comparison. With -update the golden file is
// rewritten instead.
func CompareGolden(t *testing.T, fixture *FixtureContext, name string, got any) {
	t.Helper()

	normalized := MarshalNormalized(t, fixture, got)
	goldenPath := fixture.ExpectedPath(name)

	if *updateGolden {
		UpdateGolden(t, fixture, name, normalized)
		t.Logf("Updated golden: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("Golden file missing: %s\n\nGot:\n%s\n\nRun with -update to create:\n  go test ./... -run %s -update",
				goldenPath, string(normalized), t.Name())
		}
		t.Fatalf("Failed to read golden file: %v", err)
	}

	if !bytes.Equal(normalized, expected) {
		diff := unifiedDiff(string(expected), string(normalized), goldenPath)
		t.Fatalf("Golden mismatch for %s:\n%s\n\nRun with -update to refresh:\n  go test ./... -run %s -update",
			name, diff, t.Name())
	}
}

// UpdateGolden writes normalized data to the golden file.
func UpdateGolden(t *testing.T, fixture *FixtureContext, name string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(fixture.ExpectedDir, 0o755); err != nil {
		t.Fatalf("Failed to create expected directory: %v", err)
	}
	if err := os.WriteFile(fixture.ExpectedPath(name), data, 0o644); err != nil {
		t.Fatalf("Failed to write golden file: %v", err)
	}
}

// unifiedDiff lists the differing lines of expected and got with a little
// leading context. It is not a minimal diff.
func unifiedDiff(expected, got, path string) string {
	var buf bytes.Buffer

	expectedLines := strings.Split(expected, "\n")
	gotLines := strings.Split(got, "\n")

	fmt.Fprintf(&buf, "--- %s (expected)\n", path)
	fmt.Fprintf(&buf, "+++ %s (got)\n", path)

	n := max(len(expectedLines), len(gotLines))
	lastContext := -1
	for i := 0; i < n; i++ {
		var expLine, gotLine string
		if i < len(expectedLines) {
			expLine = expectedLines[i]
		}
		if i < len(gotLines) {
			gotLine = gotLines[i]
		}
		if expLine == gotLine {
			continue
		}

		if i > lastContext+1 {
			fmt.Fprintf(&buf, "@@ line %d @@\n", i+1)
			for j := max(lastContext+1, i-3); j < i && j < len(expectedLines); j++ {
				fmt.Fprintf(&buf, " %s\n", expectedLines[j])
			}
		}
		if i < len(expectedLines) {
			fmt.Fprintf(&buf, "-%s\n", expLine)
		}
		if i < len(gotLines) {
			fmt.Fprintf(&buf, "+%s\n", gotLine)
		}
		lastContext = i
	}

	return buf.String()
}

// AssertGoldenStruct normalizes a struct and compares it with a golden file.
func AssertGoldenStruct(t *testing.T, fixture *FixtureContext, name string, got any) {
	t.Helper()

	CompareGolden(t, fixture, name, StructToMap(t, got))
}
