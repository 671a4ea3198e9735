package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "config_test_*.yml")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Remove(tmpFile.Name()) })

	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	_ = tmpFile.Close()
	return tmpFile.Name()
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, FormatTagged, cfg.Format)
	assert.Equal(t, "rows", cfg.Rows.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Encoding)
	assert.False(t, cfg.Dev.Debug)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromYAML(t *testing.T) {
	path := writeTempConfig(t, `
format: flat
rows:
  path: "elements"
logging:
  level: debug
  encoding: json
dev:
  verbose: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, FormatFlat, cfg.Format)
	assert.Equal(t, "elements", cfg.Rows.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Encoding)
	assert.True(t, cfg.Dev.Verbose)
	assert.False(t, cfg.Dev.Debug)
}

func TestConfig_PartialYAMLKeepsDefaults(t *testing.T) {
	path := writeTempConfig(t, `format: flat`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, FormatFlat, cfg.Format)
	assert.Equal(t, "rows", cfg.Rows.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestConfig_LoadNonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/config.yml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestConfig_LoadInvalidYAML(t *testing.T) {
	path := writeTempConfig(t, `
format: "flat"
invalid_yaml: [unclosed array
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown format", func(c *Config) { c.Format = "xml" }, "unknown format"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "invalid logging level"},
		{"bad encoding", func(c *Config) { c.Logging.Encoding = "yaml" }, "unknown logging encoding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_FindConfigFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_search_test")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tmpDir) }()

	nestedDir := filepath.Join(tmpDir, "project", "subdir")
	err = os.MkdirAll(nestedDir, 0o755)
	require.NoError(t, err)

	configPath := filepath.Join(tmpDir, "project", ".gamedata.yml")
	err = os.WriteFile(configPath, []byte(`format: "flat"`), 0o644)
	require.NoError(t, err)

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()

	err = os.Chdir(nestedDir)
	require.NoError(t, err)

	foundPath := FindConfigFile()
	require.NotEmpty(t, foundPath, "Should find config file")

	foundContent, err := os.ReadFile(foundPath)
	require.NoError(t, err)
	assert.Contains(t, string(foundContent), `format: "flat"`)
}

func TestConfig_MergeConfigs(t *testing.T) {
	base := NewConfig()
	base.Rows.Path = "elements"

	merged := MergeConfigs(base, &Config{Format: FormatFlat, Dev: DevConfig{Debug: true}})

	assert.Equal(t, FormatFlat, merged.Format)
	assert.Equal(t, "elements", merged.Rows.Path, "empty override keeps base")
	assert.True(t, merged.Dev.Debug)
	assert.Equal(t, FormatTagged, base.Format, "base is not modified")
}

func TestConfig_LoadConfigWithCLI(t *testing.T) {
	path := writeTempConfig(t, `
format: flat
rows:
  path: "postList"
`)

	cfg, err := LoadConfigWithCLI(path, "", "", false)
	require.NoError(t, err)
	assert.Equal(t, FormatFlat, cfg.Format)
	assert.Equal(t, "postList", cfg.Rows.Path)

	cfg, err = LoadConfigWithCLI(path, FormatTagged, "rows", true)
	require.NoError(t, err)
	assert.Equal(t, FormatTagged, cfg.Format)
	assert.Equal(t, "rows", cfg.Rows.Path)
	assert.True(t, cfg.Dev.Debug)

	_, err = LoadConfigWithCLI("", "csv", "", false)
	assert.Error(t, err)
}

func TestConfig_BuildLogger(t *testing.T) {
	cfg := NewConfig()
	cfg.Dev.Debug = true

	log, err := cfg.BuildLogger()
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel), "debug level enabled in debug mode")

	cfg = NewConfig()
	log, err = cfg.BuildLogger()
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel), "info disabled at warn level")
}
