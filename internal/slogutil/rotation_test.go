package slogutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"", 0},
		{"invalid", 0},
		{"100", 100},
		{"100b", 100},
		{"1KB", 1024},
		{"1kb", 1024},
		{"10MB", 10 * 1024 * 1024},
		{"1GB", 1024 * 1024 * 1024},
		{"1.5MB", int64(1.5 * 1024 * 1024)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseSize(tt.input); got != tt.expected {
				t.Errorf("ParseSize(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRotatingFile_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "c4kit.log")

	rf, err := OpenRotatingFile(path, 0, 2)
	if err != nil {
		t.Fatalf("OpenRotatingFile failed: %v", err)
	}

	data := []byte("hello world\n")
	for i := 0; i < 5; i++ {
		if _, err := rf.Write(data); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if err := rf.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.Equal(got, bytes.Repeat(data, 5)) {
		t.Errorf("file content = %q, want five lines", got)
	}
	if _, err := os.Stat(path + ".1"); !os.IsNotExist(err) {
		t.Error("rotation disabled, but a backup exists")
	}
}

func TestRotatingFile_Rotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c4kit.log")

	rf, err := OpenRotatingFile(path, 50, 2)
	if err != nil {
		t.Fatalf("OpenRotatingFile failed: %v", err)
	}

	data := append(bytes.Repeat([]byte{'a'}, 29), '\n')
	for i := 0; i < 5; i++ {
		if _, err := rf.Write(data); err != nil {
			t.Fatalf("Write %d failed: %v", i, err)
		}
	}
	rf.Close()

	for _, p := range []string{path, path + ".1", path + ".2"} {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			t.Errorf("%s should exist", filepath.Base(p))
		}
	}
	if _, err := os.Stat(path + ".3"); !os.IsNotExist(err) {
		t.Error("only two backups should be kept")
	}
}
