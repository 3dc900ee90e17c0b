package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)
	assert.Equal(t, "auto", cfg.Format)
	assert.False(t, cfg.Quiet)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, "5s", cfg.Defaults.Interval)
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Empty(t, cfg.Instances)
}

func TestLoadFromFile(t *testing.T) {
	t.Run("returns error for non-existent file", func(t *testing.T) {
		cfg, err := LoadFromFile("/nonexistent/path/madw.yaml")
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "bad.yaml")
		err := os.WriteFile(configPath, []byte("instances: [invalid"), 0644)
		require.NoError(t, err)

		cfg, err := LoadFromFile(configPath)
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("parses all config fields", func(t *testing.T) {
		tmpDir := t.TempDir()
		configContent := `
format: ndjson
quiet: false
verbose: true
defaults:
  instance: prod
  interval: 2s
  info_width: 120
server:
  listen: "127.0.0.1:9090"
  shutdown_timeout: 5s
instances:
  prod:
    host: db1.internal
    port: 3307
    user: monitor
    password: secret
    database: app
    timeout: 3s
    max_open_conns: 2
  staging:
    host: db2.internal
    user: monitor
`
		configPath := filepath.Join(tmpDir, "madw.yaml")
		err := os.WriteFile(configPath, []byte(configContent), 0644)
		require.NoError(t, err)

		cfg, err := LoadFromFile(configPath)
		require.NoError(t, err)

		assert.Equal(t, "ndjson", cfg.Format)
		assert.True(t, cfg.Verbose)
		assert.Equal(t, "prod", cfg.Defaults.Instance)
		assert.Equal(t, "2s", cfg.Defaults.Interval)
		assert.Equal(t, 120, cfg.Defaults.InfoWidth)
		assert.Equal(t, "127.0.0.1:9090", cfg.Server.Listen)
		require.Len(t, cfg.Instances, 2)

		prod := cfg.Instances["prod"]
		assert.Equal(t, "db1.internal", prod.Host)
		assert.Equal(t, 3307, prod.Port)
		assert.Equal(t, "monitor", prod.User)
		assert.Equal(t, "secret", prod.Password)
		assert.Equal(t, "app", prod.Database)
		assert.Equal(t, 2, prod.MaxOpenConns)
	})
}

func TestLookup(t *testing.T) {
	cfg := Default()
	cfg.Instances = map[string]Instance{
		"prod": {Host: "db1", Port: 3307, User: "monitor", Timeout: "3s"},
		"bare": {Host: "db2", User: "monitor"},
	}

	t.Run("returns configured instance", func(t *testing.T) {
		inst, ok := cfg.Lookup("prod")
		require.True(t, ok)
		assert.Equal(t, "db1", inst.Host)
		assert.Equal(t, 3307, inst.Port)
	})

	t.Run("fills port and timeout defaults", func(t *testing.T) {
		inst, ok := cfg.Lookup("bare")
		require.True(t, ok)
		assert.Equal(t, 3306, inst.Port)
		assert.Equal(t, "5s", inst.Timeout)
	})

	t.Run("reports missing instance", func(t *testing.T) {
		_, ok := cfg.Lookup("nope")
		assert.False(t, ok)
	})
}

func TestLoadEnvironmentVariables(t *testing.T) {
	origFormat := os.Getenv("MADW_FORMAT")
	origInstance := os.Getenv("MADW_INSTANCE")
	defer func() {
		os.Setenv("MADW_FORMAT", origFormat)
		os.Setenv("MADW_INSTANCE", origInstance)
	}()

	os.Setenv("MADW_FORMAT", "table")
	os.Setenv("MADW_INSTANCE", "staging")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "table", cfg.Format)
	assert.Equal(t, "staging", cfg.Defaults.Instance)
}

func TestInstanceNames(t *testing.T) {
	cfg := Default()
	cfg.Instances = map[string]Instance{"a": {}, "b": {}}
	assert.ElementsMatch(t, []string{"a", "b"}, cfg.InstanceNames())
}
