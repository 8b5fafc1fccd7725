package main

import (
	"testing"

	"c4kit/internal/config"
)

func TestFlattenConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Logging.File = "logs/c4kit.log"

	flat, err := flattenConfig(cfg)
	if err != nil {
		t.Fatalf("flattenConfig() error = %v", err)
	}

	tests := []struct {
		key  string
		want interface{}
	}{
		{"version", float64(1)},
		{"logging.level", "warn"},
		{"logging.file", "logs/c4kit.log"},
		{"export.compress", false},
		{"workspace.supportedSchema", "^1.0.0"},
	}
	for _, tt := range tests {
		if got := flat[tt.key]; got != tt.want {
			t.Errorf("flat[%q] = %v, want %v", tt.key, got, tt.want)
		}
	}
	if _, ok := flat["logging"]; ok {
		t.Error("nested section left in flattened config")
	}
}

func TestComputeDiff(t *testing.T) {
	tests := []struct {
		name     string
		current  map[string]interface{}
		defaults map[string]interface{}
		wantKeys []string
	}{
		{
			name:     "identical maps",
			current:  map[string]interface{}{"key": "value"},
			defaults: map[string]interface{}{"key": "value"},
			wantKeys: []string{},
		},
		{
			name:     "different value",
			current:  map[string]interface{}{"key": "modified"},
			defaults: map[string]interface{}{"key": "default"},
			wantKeys: []string{"key"},
		},
		{
			name:     "new key",
			current:  map[string]interface{}{"key": "value", "new": "added"},
			defaults: map[string]interface{}{"key": "value"},
			wantKeys: []string{"new"},
		},
		{
			name:     "number and string",
			current:  map[string]interface{}{"n": float64(3)},
			defaults: map[string]interface{}{"n": "3"},
			wantKeys: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeDiff(tt.current, tt.defaults)

			if len(got) != len(tt.wantKeys) {
				t.Fatalf("computeDiff() = %v, want keys %v", got, tt.wantKeys)
			}
			for _, k := range tt.wantKeys {
				if _, ok := got[k]; !ok {
					t.Errorf("computeDiff() missing key %q", k)
				}
			}
		})
	}
}
