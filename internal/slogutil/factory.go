package slogutil

import (
	"io"
	"log/slog"
	"path/filepath"

	"c4kit/internal/config"
)

// LoggerFactory builds loggers from configuration. Precedence for the level is
// CLI flags > config > default (warn).
type LoggerFactory struct {
	root     string
	config   *config.Config
	stderr   io.Writer
	cliLevel slog.Level
	cliSet   bool
	closers  []io.Closer
}

// NewLoggerFactory creates a factory for the project at root. A nil cfg uses
// the defaults; stderr receives console output.
func NewLoggerFactory(root string, cfg *config.Config, stderr io.Writer) *LoggerFactory {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &LoggerFactory{
		root:   root,
		config: cfg,
		stderr: stderr,
	}
}

// SetCLILevel overrides the configured level, e.g. from -v or -q
func (f *LoggerFactory) SetCLILevel(level slog.Level) {
	f.cliLevel = level
	f.cliSet = true
}

// EffectiveLevel returns the level loggers are built with
func (f *LoggerFactory) EffectiveLevel() slog.Level {
	if f.cliSet {
		return f.cliLevel
	}
	if f.config.Logging.Level != "" {
		return LevelFromString(f.config.Logging.Level)
	}
	return slog.LevelWarn
}

// CommandLogger returns the logger for one CLI invocation. It writes to stderr
// in the configured format and, when logging.file is set, also to that file
// with size-based rotation.
func (f *LoggerFactory) CommandLogger() (*slog.Logger, error) {
	level := f.EffectiveLevel()
	console, err := NewHandler(f.stderr, f.config.Logging.Format, level)
	if err != nil {
		return nil, err
	}
	if f.config.Logging.File == "" {
		return slog.New(console), nil
	}

	path := f.config.Logging.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(f.root, path)
	}
	rf, err := OpenRotatingFile(path, ParseSize(f.config.Logging.MaxSize), f.config.Logging.MaxBackups)
	if err != nil {
		return nil, err
	}
	f.closers = append(f.closers, rf)

	file, err := NewHandler(rf, f.config.Logging.Format, level)
	if err != nil {
		return nil, err
	}
	return slog.New(NewTeeHandler(console, file)), nil
}

// Close closes all open log files.
func (f *LoggerFactory) Close() error {
	var firstErr error
	for _, c := range f.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	f.closers = nil
	return firstErr
}
