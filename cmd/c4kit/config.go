package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"c4kit/internal/config"
	"c4kit/internal/errors"
)

var (
	configFormat   string
	configShowDiff bool
	configForce    bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage c4kit configuration",
	Long:  "View and manage c4kit configuration stored in " + config.Dir + "/config.json",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Display the effective configuration: defaults, then the config file, then
C4KIT_* environment overrides.

Examples:
  c4kit config show              # Pretty-print current config
  c4kit config show --format json
  c4kit config show --diff       # Only show non-default values`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configEnvCmd = &cobra.Command{
	Use:   "env",
	Short: "List supported environment variables",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range config.GetSupportedEnvVars() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "human", "Output format (json, human)")
	configShowCmd.Flags().BoolVar(&configShowDiff, "diff", false, "Only show non-default values")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEnvCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// ConfigShowResponse is the response format for config show
type ConfigShowResponse struct {
	ConfigPath   string                 `json:"configPath,omitempty"`
	UsedDefaults bool                   `json:"usedDefaults"`
	EnvOverrides []config.EnvOverride   `json:"envOverrides,omitempty"`
	Config       map[string]interface{} `json:"config"`
}

func projectRoot() (string, error) {
	if configDir != "" {
		return configDir, nil
	}
	return os.Getwd()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	result, err := config.LoadConfigWithDetails(root)
	if err != nil {
		return errors.NewError(errors.ConfigurationError, "failed to load configuration", err)
	}

	configMap, err := flattenConfig(result.Config)
	if err != nil {
		return err
	}
	if configShowDiff {
		defaults, err := flattenConfig(config.DefaultConfig())
		if err != nil {
			return err
		}
		configMap = computeDiff(configMap, defaults)
	}

	switch OutputFormat(configFormat) {
	case FormatJSON:
		output, err := formatJSON(ConfigShowResponse{
			ConfigPath:   result.ConfigPath,
			UsedDefaults: result.UsedDefaults,
			EnvOverrides: result.EnvOverrides,
			Config:       configMap,
		})
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), output)
	case FormatHuman:
		outputConfigHuman(cmd.OutOrStdout(), result, configMap)
	default:
		return errors.Errorf(errors.InvalidFormat, "unsupported format: %s", configFormat)
	}

	if err := result.Config.Validate(); err != nil {
		return errors.NewError(errors.ConfigurationError, "invalid configuration", err)
	}
	return nil
}

func outputConfigHuman(w io.Writer, result *config.LoadResult, values map[string]interface{}) {
	fmt.Fprintln(w, "c4kit Configuration")
	fmt.Fprintln(w, strings.Repeat("─", 50))

	if result.UsedDefaults {
		fmt.Fprintln(w, "Source: defaults (no config file found)")
	} else if result.ConfigPath != "" {
		fmt.Fprintf(w, "Source: %s\n", result.ConfigPath)
	}

	if len(result.EnvOverrides) > 0 {
		fmt.Fprintln(w, "\nEnvironment Overrides:")
		for _, ov := range result.EnvOverrides {
			fmt.Fprintf(w, "  %s=%s → %s\n", ov.EnvVar, ov.Value, ov.Key)
		}
	}
	fmt.Fprintln(w)

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %-28s %v\n", k, values[k])
	}
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	path := filepath.Join(root, config.Dir, "config.json")
	if _, err := os.Stat(path); err == nil && !configForce {
		return errors.Errorf(errors.ConfigurationError, "%s already exists; use --force to overwrite it", path)
	}
	if err := config.DefaultConfig().Save(root); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// flattenConfig turns a config into dotted keys, e.g. logging.level
func flattenConfig(cfg *config.Config) (map[string]interface{}, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var nested map[string]interface{}
	if err := json.Unmarshal(data, &nested); err != nil {
		return nil, err
	}

	flat := make(map[string]interface{})
	var walk func(prefix string, m map[string]interface{})
	walk = func(prefix string, m map[string]interface{}) {
		for k, v := range m {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			if child, ok := v.(map[string]interface{}); ok {
				walk(key, child)
				continue
			}
			flat[key] = v
		}
	}
	walk("", nested)
	return flat, nil
}

// computeDiff returns the entries of current that differ from defaults
func computeDiff(current, defaults map[string]interface{}) map[string]interface{} {
	diff := make(map[string]interface{})
	for k, v := range current {
		if d, ok := defaults[k]; !ok || fmt.Sprint(d) != fmt.Sprint(v) {
			diff[k] = v
		}
	}
	return diff
}
