package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"c4kit/internal/config"
	"c4kit/internal/errors"
	"c4kit/internal/slogutil"
	"c4kit/internal/version"
	"c4kit/internal/workspace"
)

var (
	// verbosity is the number of -v flags
	verbosity int
	quiet     bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "c4kit",
	Short: "c4kit - dynamic views for C4 software architecture models",
	Long: `c4kit loads a C4 model and its dynamic views from a workspace file (.toml or .hcl),
checks every step of every view against the model, and persists views as portable
documents that can be restored against the model later.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate(version.Full() + "\n")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"Project root holding "+config.Dir+"/config.json (default: current directory)")
}

// session is what every command needs: the project root, the effective
// configuration and a logger built from both.
type session struct {
	root    string
	config  *config.Config
	logger  *slog.Logger
	factory *slogutil.LoggerFactory
}

func newSession(cmd *cobra.Command) (*session, error) {
	root := configDir
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root = wd
	}

	cfg, err := config.LoadConfig(root)
	if err != nil {
		return nil, errors.NewError(errors.ConfigurationError, "failed to load configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.NewError(errors.ConfigurationError, "invalid configuration", err)
	}

	factory := slogutil.NewLoggerFactory(root, cfg, cmd.ErrOrStderr())
	if verbosity > 0 || quiet {
		factory.SetCLILevel(slogutil.LevelFromVerbosity(verbosity, quiet))
	}
	logger, err := factory.CommandLogger()
	if err != nil {
		return nil, err
	}

	logger = logger.With("command", cmd.Name())
	logger.Debug("Session started", "version", version.Info(), "root", root, "configFile", cfg.Workspace.File)

	return &session{
		root:    root,
		config:  cfg,
		logger:  logger,
		factory: factory,
	}, nil
}

func (s *session) Close() error {
	return s.factory.Close()
}

// workspacePath returns the workspace file named on the command line, or the
// configured one relative to the project root.
func (s *session) workspacePath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	path := s.config.Workspace.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.root, path)
	}
	return path
}

func (s *session) loadWorkspace(ctx context.Context, args []string) (*workspace.Workspace, error) {
	return workspace.Load(ctx, s.workspacePath(args), workspace.Options{
		SupportedSchema: s.config.Workspace.SupportedSchema,
		Logger:          s.logger,
	})
}

// withSession wraps a command body with session setup and teardown.
func withSession(run func(cmd *cobra.Command, args []string, s *session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		start := time.Now()
		err = run(cmd, args, s)
		if err != nil {
			s.logger.Debug("Command failed", "duration", time.Since(start), "code", errors.CodeOf(err))
			return err
		}
		s.logger.Info("Command completed", "duration", time.Since(start))
		return nil
	}
}
