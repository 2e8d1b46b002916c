package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBaseURL(t *testing.T) {
	assert := assert.New(t)

	cfg := &Config{Origin: "https://dance.example.com"}
	assert.Equal("https://dance.example.com/api", cfg.ResolveBaseURL())

	t.Run("dev mode targets the fixed local port", func(t *testing.T) {
		cfg := &Config{Origin: "https://dance.example.com", Dev: true}
		assert.Equal(DevBaseURL, cfg.ResolveBaseURL())
	})

	t.Run("explicit override wins over everything", func(t *testing.T) {
		cfg := &Config{BaseURL: "https://staging.example.com/api/", Origin: "x", Dev: true}
		assert.Equal("https://staging.example.com/api", cfg.ResolveBaseURL())
	})

	t.Run("trailing slash on origin is normalized", func(t *testing.T) {
		cfg := &Config{Origin: "https://dance.example.com/"}
		assert.Equal("https://dance.example.com/api", cfg.ResolveBaseURL())
	})
}

func TestLoadDefaults(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(30*time.Second, cfg.Timeout)
	assert.Equal(5*time.Minute, cfg.CacheTTL)
	assert.Equal(30*time.Second, cfg.PollInterval)
	assert.False(cfg.Dev)
	assert.NotEmpty(cfg.SessionFile)
}

func TestLoadFromFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "movedesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"base_url: https://api.internal.example.com\n"+
			"timeout: 10s\n"+
			"cache_ttl: 90s\n"+
			"dev: false\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal("https://api.internal.example.com", cfg.ResolveBaseURL())
	assert.Equal(10*time.Second, cfg.Timeout)
	assert.Equal(90*time.Second, cfg.CacheTTL)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MOVEDESK_BASE_URL", "http://localhost:9999/api")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/api", cfg.ResolveBaseURL())
}
