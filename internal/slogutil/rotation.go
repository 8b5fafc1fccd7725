package slogutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/docker/go-units"
)

// RotatingFile is an append-only log file that rotates by size, keeping up to
// maxBackups older files named <path>.1 (newest) to <path>.N.
type RotatingFile struct {
	path       string
	maxSize    int64
	maxBackups int

	mu   sync.Mutex
	file *os.File
	size int64
}

// OpenRotatingFile opens path for appending, creating parent directories.
// A maxSize of 0 disables rotation.
func OpenRotatingFile(path string, maxSize int64, maxBackups int) (*RotatingFile, error) {
	rf := &RotatingFile{path: path, maxSize: maxSize, maxBackups: maxBackups}
	if err := rf.open(); err != nil {
		return nil, err
	}
	return rf, nil
}

func (r *RotatingFile) open() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}
	r.file = f
	r.size = info.Size()
	return nil
}

// Write appends p, rotating first when p would push the file past maxSize.
// A failed rotation does not drop the write.
func (r *RotatingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.maxSize > 0 && r.size > 0 && r.size+int64(len(p)) > r.maxSize {
		_ = r.rotate()
	}

	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

// Close closes the current file
func (r *RotatingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// rotate shifts log -> log.1 -> log.2 ... and drops the oldest backup
func (r *RotatingFile) rotate() error {
	if err := r.file.Close(); err != nil {
		return err
	}

	if r.maxBackups > 0 {
		_ = os.Remove(r.backup(r.maxBackups))
		for i := r.maxBackups - 1; i >= 1; i-- {
			if _, err := os.Stat(r.backup(i)); err == nil {
				_ = os.Rename(r.backup(i), r.backup(i+1))
			}
		}
		_ = os.Rename(r.path, r.backup(1))
	} else {
		_ = os.Remove(r.path)
	}

	return r.open()
}

func (r *RotatingFile) backup(n int) string {
	return fmt.Sprintf("%s.%d", r.path, n)
}

// ParseSize parses a size such as "10MB", "512kb" or "1.5GB" using binary
// multiples. It returns 0 for empty or invalid input.
func ParseSize(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := units.RAMInBytes(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
