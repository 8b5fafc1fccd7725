package testutil

import (
	"encoding/json"
	"reflect"
	"regexp"
	"strings"
	"testing"
)

// UUIDPlaceholder replaces generated UUIDs in normalized output.
const UUIDPlaceholder = "UUID"

var uuidPattern = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

// Normalizer defines the interface for normalizing golden test data.
type Normalizer interface {
	// Normalize processes the data for stable comparison.
	Normalize(t *testing.T, fixture *FixtureContext, data any) any
}

// DefaultNormalizer drops volatile fields, masks generated ids and replaces
// the fixture path with a placeholder. Slice order is kept: step order is
// part of what the goldens check.
type DefaultNormalizer struct{}

// Normalize applies all normalization rules for stable golden comparison.
// This is called before both compare AND update operations.
func (n *DefaultNormalizer) Normalize(t *testing.T, fixture *FixtureContext, data any) any {
	t.Helper()

	// Deep copy via JSON round-trip to avoid modifying original
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("Failed to marshal data for normalization: %v", err)
	}

	var normalized any
	if err := json.Unmarshal(jsonBytes, &normalized); err != nil {
		t.Fatalf("Failed to unmarshal data for normalization: %v", err)
	}

	root := ""
	if fixture != nil {
		root = fixture.Root
	}
	return n.normalizeValue(normalized, root)
}

func (n *DefaultNormalizer) normalizeValue(v any, fixtureRoot string) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, item := range val {
			if isVolatileField(k) {
				continue
			}
			result[k] = n.normalizeValue(item, fixtureRoot)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = n.normalizeValue(item, fixtureRoot)
		}
		return result
	case string:
		return normalizeString(val, fixtureRoot)
	default:
		return v
	}
}

func normalizeString(s, fixtureRoot string) string {
	if fixtureRoot != "" {
		s = strings.ReplaceAll(s, fixtureRoot, "fixture")
	}
	s = strings.ReplaceAll(s, "\\", "/")
	return uuidPattern.ReplaceAllString(s, UUIDPlaceholder)
}

func isVolatileField(name string) bool {
	switch name {
	case "generated", "timestamp", "duration", "elapsed":
		return true
	}
	return false
}

// MarshalNormalized normalizes data and marshals it to stable JSON bytes
// with 2-space indentation and a trailing newline. encoding/json already
// sorts map keys.
func MarshalNormalized(t *testing.T, fixture *FixtureContext, data any) []byte {
	t.Helper()

	normalizer := &DefaultNormalizer{}
	normalized := normalizer.Normalize(t, fixture, data)

	out, err := json.MarshalIndent(normalized, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal normalized data: %v", err)
	}
	return append(out, '\n')
}

// StructToMap converts a struct to a map[string]any for normalization.
func StructToMap(t *testing.T, v any) map[string]any {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal struct: %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Failed to unmarshal to map: %v", err)
	}
	return result
}

// DeepEqual compares two values for equality, ignoring volatile fields and
// generated ids.
func DeepEqual(t *testing.T, fixture *FixtureContext, a, b any) bool {
	t.Helper()

	normalizer := &DefaultNormalizer{}
	return reflect.DeepEqual(normalizer.Normalize(t, fixture, a), normalizer.Normalize(t, fixture, b))
}
