package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `{"base_url": "https://example.com"}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", cfg.BaseURL)
	assert.Equal(t, 10, cfg.MaxPages)
	assert.Equal(t, "gradual", cfg.AuditMode)
	assert.Equal(t, 1000, cfg.PageDelayMs)
	assert.Equal(t, 50, cfg.SitemapURLLimit)
	assert.Equal(t, 30, cfg.HomepageLinkLimit)
	assert.Equal(t, 10, cfg.MinDiscoveredPages)
	assert.Equal(t, 30, cfg.CriticalScoreThreshold)
	assert.Equal(t, "audit.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `{
		"base_url": "https://example.com",
		"max_pages": 25,
		"audit_mode": "light",
		"page_delay_ms": 250,
		"request_timeout_ms": 5000,
		"discovery_timeout_ms": 20000
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.MaxPages)
	assert.Equal(t, "light", cfg.AuditMode)
	assert.Equal(t, 250, cfg.PageDelayMs)
	assert.Equal(t, 5000, cfg.RequestTimeoutMs)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing base_url", content: `{}`},
		{name: "bad mode", content: `{"base_url": "https://x.com", "audit_mode": "turbo"}`},
		{name: "tiny timeout", content: `{"base_url": "https://x.com", "request_timeout_ms": 100}`},
		{name: "discovery shorter than request", content: `{"base_url": "https://x.com", "request_timeout_ms": 10000, "discovery_timeout_ms": 5000}`},
		{name: "malformed json", content: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
