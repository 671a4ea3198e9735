package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Input formats
const (
	FormatTagged = "tagged"
	FormatFlat   = "flat"
)

// Config represents the complete configuration for gamedata
type Config struct {
	Format  string        `yaml:"format"`
	Rows    RowsConfig    `yaml:"rows"`
	Logging LoggingConfig `yaml:"logging"`
	Dev     DevConfig     `yaml:"dev"`
}

// RowsConfig controls how row arrays are found inside response envelopes
type RowsConfig struct {
	// Path is a gjson path such as "rows" or "elements".
	Path string `yaml:"path"`
}

// LoggingConfig controls the diagnostic logger
type LoggingConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"` // "console" or "json"
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug   bool `yaml:"debug"`
	Verbose bool `yaml:"verbose"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Format: FormatTagged,
		Rows: RowsConfig{
			Path: "rows",
		},
		Logging: LoggingConfig{
			Level:    "warn",
			Encoding: "console",
		},
		Dev: DevConfig{
			Debug:   false,
			Verbose: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch c.Format {
	case FormatTagged, FormatFlat:
	default:
		return fmt.Errorf("unknown format '%s' (want %s or %s)", c.Format, FormatTagged, FormatFlat)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging level '%s': %w", c.Logging.Level, err)
	}
	switch c.Logging.Encoding {
	case "console", "json":
	default:
		return fmt.Errorf("unknown logging encoding '%s'", c.Logging.Encoding)
	}
	return nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".gamedata.yml", ".gamedata.yaml", "gamedata.yml", "gamedata.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// MergeConfigs merges CLI overrides into a base config
// Non-empty values from override take precedence over base values
func MergeConfigs(base, override *Config) *Config {
	merged := *base

	if override.Format != "" {
		merged.Format = override.Format
	}
	if override.Rows.Path != "" {
		merged.Rows.Path = override.Rows.Path
	}
	if override.Logging.Level != "" {
		merged.Logging.Level = override.Logging.Level
	}
	if override.Logging.Encoding != "" {
		merged.Logging.Encoding = override.Logging.Encoding
	}
	merged.Dev.Debug = base.Dev.Debug || override.Dev.Debug

	return &merged
}

// LoadConfigWithCLI loads config with CLI argument precedence. Empty CLI
// strings leave the file (or default) value in place.
func LoadConfigWithCLI(configPath, cliFormat, cliRowsPath string, cliDebug bool) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	cfg = MergeConfigs(cfg, &Config{
		Format: cliFormat,
		Rows:   RowsConfig{Path: cliRowsPath},
		Dev:    DevConfig{Debug: cliDebug},
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BuildLogger constructs the zap logger described by the config. Debug
// mode forces the debug level so every decode fallback is visible.
func (c *Config) BuildLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid logging level '%s': %w", c.Logging.Level, err)
	}
	if c.Dev.Debug {
		level = zapcore.DebugLevel
	}

	zc := zap.NewProductionConfig()
	if c.Dev.Debug {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = c.Logging.Encoding
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}
