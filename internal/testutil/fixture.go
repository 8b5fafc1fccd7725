// Package testutil provides shared workspace fixtures and golden-file helpers.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"c4kit/internal/workspace"
)

// FixtureContext holds information about a loaded fixture.
type FixtureContext struct {
	// Name is the fixture directory name (e.g., "bigbank")
	Name string

	// Root is the absolute path to the fixture directory
	Root string

	// ExpectedDir is the path to the expected/ directory
	ExpectedDir string
}

// LoadFixture locates a workspace fixture under testdata/fixtures, failing
// the test if it has no workspace.toml.
func LoadFixture(t *testing.T, name string) *FixtureContext {
	t.Helper()

	fixtureDir := filepath.Join(getFixturesRoot(t), name)
	if _, err := os.Stat(filepath.Join(fixtureDir, "workspace.toml")); os.IsNotExist(err) {
		t.Fatalf("Fixture workspace not found: %s", fixtureDir)
	}

	expectedDir := filepath.Join(fixtureDir, "expected")
	if _, err := os.Stat(expectedDir); os.IsNotExist(err) {
		if err := os.MkdirAll(expectedDir, 0o755); err != nil {
			t.Fatalf("Failed to create expected directory: %v", err)
		}
	}

	return &FixtureContext{
		Name:        name,
		Root:        fixtureDir,
		ExpectedDir: expectedDir,
	}
}

// WorkspacePath returns the fixture's workspace file with the given
// extension ("toml" or "hcl").
func (f *FixtureContext) WorkspacePath(ext string) string {
	return filepath.Join(f.Root, "workspace."+ext)
}

// ExpectedPath returns the path to a golden file within the fixture.
// The name should not include the .json extension.
func (f *FixtureContext) ExpectedPath(name string) string {
	return filepath.Join(f.ExpectedDir, name+".json")
}

// Workspace loads and builds the fixture's TOML workspace.
func (f *FixtureContext) Workspace(t *testing.T) *workspace.Workspace {
	t.Helper()

	ws, err := workspace.Load(context.Background(), f.WorkspacePath("toml"), workspace.Options{})
	if err != nil {
		t.Fatalf("Failed to load fixture %s: %v", f.Name, err)
	}
	return ws
}

// AvailableFixtures returns the names of all fixture directories.
func AvailableFixtures(t *testing.T) []string {
	t.Helper()

	entries, err := os.ReadDir(getFixturesRoot(t))
	if err != nil {
		t.Fatalf("Failed to read fixtures root: %v", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// ForEachFixture runs fn as a subtest for every fixture. In short mode only
// the first fixture runs.
func ForEachFixture(t *testing.T, fn func(t *testing.T, fixture *FixtureContext)) {
	t.Helper()

	names := AvailableFixtures(t)
	if len(names) == 0 {
		t.Skip("No fixtures available")
	}
	if testing.Short() && len(names) > 1 {
		names = names[:1]
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			fn(t, LoadFixture(t, name))
		})
	}
}

// getFixturesRoot returns the absolute path to testdata/fixtures/.
func getFixturesRoot(t *testing.T) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get caller information")
	}

	// internal/testutil -> project root
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
	fixturesRoot := filepath.Join(projectRoot, "testdata", "fixtures")

	if _, err := os.Stat(fixturesRoot); os.IsNotExist(err) {
		t.Fatalf("Fixtures root not found: %s", fixturesRoot)
	}
	return fixturesRoot
}
