package workspace

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"c4kit/internal/errors"
	"c4kit/internal/slogutil"
)

// Parse reads a declaration, picking the syntax from the file extension
// (.toml or .hcl).
func Parse(path string, data []byte) (*Declaration, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ParseTOML(data)
	case ".hcl":
		return ParseHCL(data, path)
	default:
		return nil, errors.Errorf(errors.InvalidFormat,
			"cannot tell the workspace syntax of %s; use a .toml or .hcl file", path)
	}
}

// Load reads, parses and builds the workspace file at path.
func Load(ctx context.Context, path string, opts Options) (*Workspace, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	start := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewError(errors.InvalidWorkspace, "failed to read workspace "+path, err)
	}
	logger.Debug("Workspace file read", "path", path, "bytes", len(data))

	decl, err := Parse(path, data)
	if err != nil {
		return nil, err
	}

	ws, err := Build(ctx, decl, opts)
	if err != nil {
		return nil, err
	}

	logger.Info("Workspace loaded",
		"path", path,
		"name", ws.Name,
		"views", len(ws.Views),
		"duration", time.Since(start),
	)
	return ws, nil
}
