package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chtmp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chtmp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://pokeapi.co/api/v2", cfg.API.BaseURL)
	assert.Equal(t, 1025, cfg.API.MaxSpecies)
	assert.Equal(t, 5, cfg.API.BatchSize)
	assert.Equal(t, 8, cfg.API.FormBatchSize)
	assert.Equal(t, 1200, cfg.API.BatchDelayMS)
	assert.Equal(t, 3, cfg.API.MaxRetries)
	assert.Equal(t, 3000, cfg.API.RetryDelayMS)
	assert.Equal(t, "https://wiki.52poke.com/wiki/", cfg.Wiki.BaseURL)
	assert.Equal(t, 24, cfg.Wiki.CacheTTLHours)
	assert.Equal(t, "file", cfg.Checkpoint.Driver)
	assert.Equal(t, ".cache", cfg.Checkpoint.Dir)
	assert.Equal(t, "public/data", cfg.Output.Dir)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chtmp(t)

	yaml := `
api:
  max_species: 151
  batch_size: 2
checkpoint:
  driver: sqlite
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 151, cfg.API.MaxSpecies)
	assert.Equal(t, 2, cfg.API.BatchSize)
	assert.Equal(t, "sqlite", cfg.Checkpoint.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Defaults still apply for unset values
	assert.Equal(t, 8, cfg.API.FormBatchSize)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chtmp(t)

	yaml := `
checkpoint:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("DEXSYNC_CHECKPOINT_DRIVER", "file")
	t.Setenv("DEXSYNC_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Checkpoint.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chtmp(t)

	t.Setenv("DEXSYNC_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func validDefaults() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:       "https://pokeapi.co/api/v2",
			MaxSpecies:    1025,
			BatchSize:     5,
			FormBatchSize: 8,
		},
		Server: ServerConfig{Port: 8080},
	}
}

func TestValidateFetch(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("fetch"))

	cfg.API.BaseURL = ""
	err := cfg.Validate("fetch")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "api.base_url is required")
}

func TestValidateBatchBounds(t *testing.T) {
	cfg := validDefaults()

	cfg.API.BatchSize = 0
	err := cfg.Validate("fetch")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "api.batch_size must be between 1 and 50")

	cfg.API.BatchSize = 51
	err = cfg.Validate("fetch")
	assert.Error(t, err)

	cfg.API.BatchSize = 50
	assert.NoError(t, cfg.Validate("fetch"))
}

func TestValidateServePort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
}

func TestValidateCheckpointDriver(t *testing.T) {
	cfg := validDefaults()
	cfg.Checkpoint.Driver = "redis"

	err := cfg.Validate("fetch")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "checkpoint.driver must be file or sqlite")
}

func TestValidateUnknownMode(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
