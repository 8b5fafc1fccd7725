package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/docker/go-units"
	"github.com/spf13/viper"
)

// CurrentVersion is the only config schema version c4kit reads
const CurrentVersion = 1

// Dir is the per-project directory holding config.json
const Dir = ".c4kit"

// EnvPrefix prefixes every environment override
const EnvPrefix = "C4KIT"

// Config represents the complete c4kit configuration
type Config struct {
	Version   int             `json:"version" mapstructure:"version"`
	Logging   LoggingConfig   `json:"logging" mapstructure:"logging"`
	Export    ExportConfig    `json:"export" mapstructure:"export"`
	Workspace WorkspaceConfig `json:"workspace" mapstructure:"workspace"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `json:"level" mapstructure:"level"`
	Format     string `json:"format" mapstructure:"format"`                             // human or json
	File       string `json:"file,omitempty" mapstructure:"file"`                       // optional log file, relative to the project root
	MaxSize    string `json:"maxSize,omitempty" mapstructure:"maxSize"`                 // e.g. "10MB"; empty disables rotation
	MaxBackups int    `json:"maxBackups,omitempty" mapstructure:"maxBackups"`
}

// ExportConfig contains defaults for persisted view documents
type ExportConfig struct {
	Format   string `json:"format" mapstructure:"format"` // json, yaml or toml
	Compress bool   `json:"compress" mapstructure:"compress"`
}

// WorkspaceConfig locates and constrains workspace declarations
type WorkspaceConfig struct {
	File            string `json:"file" mapstructure:"file"`
	SupportedSchema string `json:"supportedSchema" mapstructure:"supportedSchema"` // semver constraint
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Logging: LoggingConfig{
			Level:      "warn",
			Format:     "human",
			MaxBackups: 3,
		},
		Export: ExportConfig{
			Format: "json",
		},
		Workspace: WorkspaceConfig{
			File:            "workspace.toml",
			SupportedSchema: "^1.0.0",
		},
	}
}

// settings lists every config key with its default, in viper's dotted form.
// Each key can be overridden by C4KIT_<KEY> with dots replaced by underscores.
func settings() map[string]interface{} {
	d := DefaultConfig()
	return map[string]interface{}{
		"version":                   d.Version,
		"logging.level":             d.Logging.Level,
		"logging.format":            d.Logging.Format,
		"logging.file":              d.Logging.File,
		"logging.maxSize":           d.Logging.MaxSize,
		"logging.maxBackups":        d.Logging.MaxBackups,
		"export.format":             d.Export.Format,
		"export.compress":           d.Export.Compress,
		"workspace.file":            d.Workspace.File,
		"workspace.supportedSchema": d.Workspace.SupportedSchema,
	}
}

// EnvVarName returns the environment variable overriding a dotted key
func EnvVarName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// GetSupportedEnvVars returns every environment variable c4kit reads, sorted
func GetSupportedEnvVars() []string {
	vars := []string{EnvPrefix + "_CONFIG_PATH"}
	for key := range settings() {
		vars = append(vars, EnvVarName(key))
	}
	sort.Strings(vars)
	return vars
}

// EnvOverride records one applied environment override
type EnvOverride struct {
	Key    string `json:"key"`
	EnvVar string `json:"envVar"`
	Value  string `json:"value"`
}

// LoadResult is a loaded configuration plus where it came from
type LoadResult struct {
	Config       *Config
	ConfigPath   string // empty when defaults were used
	UsedDefaults bool
	EnvOverrides []EnvOverride
}

// LoadConfig loads configuration from <root>/.c4kit/config.json with environment
// overrides applied. A missing file yields the defaults.
func LoadConfig(root string) (*Config, error) {
	result, err := LoadConfigWithDetails(root)
	if err != nil {
		return nil, err
	}
	return result.Config, nil
}

// LoadConfigWithDetails loads configuration like LoadConfig and reports the file
// used and the overrides applied. C4KIT_CONFIG_PATH points at an explicit file.
func LoadConfigWithDetails(root string) (*LoadResult, error) {
	v := viper.New()
	for key, value := range settings() {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigType("json")

	result := &LoadResult{}
	if path := os.Getenv(EnvPrefix + "_CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(filepath.Join(root, Dir))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		result.UsedDefaults = true
	} else {
		result.ConfigPath = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	result.Config = &cfg

	for key := range settings() {
		name := EnvVarName(key)
		if value, ok := os.LookupEnv(name); ok {
			result.EnvOverrides = append(result.EnvOverrides, EnvOverride{Key: key, EnvVar: name, Value: value})
		}
	}
	sort.Slice(result.EnvOverrides, func(i, j int) bool {
		return result.EnvOverrides[i].Key < result.EnvOverrides[j].Key
	})

	return result, nil
}

// Save writes the configuration to <root>/.c4kit/config.json
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, Dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: "must be one of debug, info, warn, error"}
	}
	switch c.Logging.Format {
	case "human", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be human or json"}
	}
	if c.Logging.MaxSize != "" {
		if _, err := units.RAMInBytes(c.Logging.MaxSize); err != nil {
			return &ConfigError{Field: "logging.maxSize", Message: err.Error()}
		}
	}
	if c.Logging.MaxBackups < 0 {
		return &ConfigError{Field: "logging.maxBackups", Message: "must not be negative"}
	}

	switch c.Export.Format {
	case "json", "yaml", "toml":
	default:
		return &ConfigError{Field: "export.format", Message: "must be json, yaml or toml"}
	}

	if c.Workspace.File == "" {
		return &ConfigError{Field: "workspace.file", Message: "must not be empty"}
	}
	if _, err := semver.NewConstraint(c.Workspace.SupportedSchema); err != nil {
		return &ConfigError{Field: "workspace.supportedSchema", Message: err.Error()}
	}

	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
