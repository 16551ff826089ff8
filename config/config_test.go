package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	yamlContent := `
name: daily-calib
environment: production
logging:
  level: debug
  format: json
pipeline:
  definition: calibration
  dirs: [pipelines]
  sources: [/data/run001.dat, /data/run002.dat]
`
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o644))

	cfg, err := Load(LoaderConfig{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, "daily-calib", cfg.Name)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "calibration", cfg.Pipeline.Definition)
	assert.Len(t, cfg.Pipeline.Sources, 2)
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	yamlContent := `
name: minimal
pipeline:
  definition: spectrum
`
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o644))

	cfg, err := Load(LoaderConfig{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "minimal", cfg.Tracing.ServiceName)
	assert.Equal(t, "localhost:4318", cfg.Tracing.Endpoint)
	assert.NotEmpty(t, cfg.Pipeline.Dirs)
}

func TestLoad_MissingName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("pipeline:\n  definition: x\n"), 0o644))

	_, err := Load(LoaderConfig{ConfigFile: path})
	assert.Error(t, err)
}

func TestLoad_MissingDefinition(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("name: x\n"), 0o644))

	_, err := Load(LoaderConfig{ConfigFile: path})
	assert.Error(t, err)
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	dir := t.TempDir()
	yamlContent := `
name: x
environment: qa
pipeline:
  definition: y
`
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o644))

	_, err := Load(LoaderConfig{ConfigFile: path})
	assert.Error(t, err)
}

func TestValidate_InvalidLogging(t *testing.T) {
	cfg := Config{Name: "x"}
	cfg.ApplyDefaults()
	cfg.Pipeline.Definition = "y"
	cfg.Logging.Level = "loud"
	assert.Error(t, cfg.Validate())
}
