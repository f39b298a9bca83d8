// cmd/truthguard/config_test.go
package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TG_TEST_STRING", "hello")
	t.Setenv("TG_TEST_INT", "42")
	t.Setenv("TG_TEST_INT_BAD", "not-a-number")
	t.Setenv("TG_TEST_BOOL", "true")
	t.Setenv("TG_TEST_SLICE", "groq, gemini,openai")

	assert.Equal(t, "hello", GetEnvString("TG_TEST_STRING", "fallback"))
	assert.Equal(t, "fallback", GetEnvString("TG_TEST_MISSING", "fallback"))

	assert.Equal(t, 42, GetEnvInt("TG_TEST_INT", 7))
	assert.Equal(t, 7, GetEnvInt("TG_TEST_INT_BAD", 7))
	assert.Equal(t, 7, GetEnvInt("TG_TEST_MISSING", 7))

	assert.True(t, GetEnvBool("TG_TEST_BOOL", false))
	assert.False(t, GetEnvBool("TG_TEST_MISSING", false))

	assert.Equal(t, []string{"groq", "gemini", "openai"},
		GetEnvStringSlice("TG_TEST_SLICE", nil))
	assert.Equal(t, []string{"groq"},
		GetEnvStringSlice("TG_TEST_MISSING", []string{"groq"}))
}

func TestValidateConfig(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:          8080,
			ProviderOrder: []string{"groq", "gemini"},
			GroqAPIKey:    "key",
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateConfig(base()))
	})

	t.Run("no provider keys", func(t *testing.T) {
		cfg := base()
		cfg.GroqAPIKey = ""
		assert.Error(t, ValidateConfig(cfg))
	})

	t.Run("bad port", func(t *testing.T) {
		cfg := base()
		cfg.Port = 0
		assert.Error(t, ValidateConfig(cfg))

		cfg.Port = 70000
		assert.Error(t, ValidateConfig(cfg))
	})

	t.Run("empty provider order", func(t *testing.T) {
		cfg := base()
		cfg.ProviderOrder = nil
		assert.Error(t, ValidateConfig(cfg))
	})
}

func TestLoadSourcesConfig(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		sc, err := LoadSourcesConfig(filepath.Join(t.TempDir(), "nope.yml"))
		require.NoError(t, err)
		assert.Equal(t, defaultSourcesConfig().TrustedDomains, sc.TrustedDomains)
		assert.NotEmpty(t, sc.FactCheckTerms)
		assert.NotEmpty(t, sc.StopWords)
	})

	t.Run("partial file inherits defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sources.yml")
		content := "trusted_domains:\n  - example.com\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		sc, err := LoadSourcesConfig(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"example.com"}, sc.TrustedDomains)
		assert.Equal(t, defaultSourcesConfig().FactCheckTerms, sc.FactCheckTerms)
		assert.Equal(t, defaultSourcesConfig().FactCheckFeeds, sc.FactCheckFeeds)
	})

	t.Run("full file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sources.yml")
		content := `trusted_domains:
  - reuters.com
fact_check_terms:
  - "fact check"
  - "false"
fact_check_feeds:
  - name: Snopes
    url: https://www.snopes.com/feed/
stop_words:
  - about
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		sc, err := LoadSourcesConfig(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"reuters.com"}, sc.TrustedDomains)
		assert.Equal(t, []string{"fact check", "false"}, sc.FactCheckTerms)
		require.Len(t, sc.FactCheckFeeds, 1)
		assert.Equal(t, "Snopes", sc.FactCheckFeeds[0].Name)
		assert.Equal(t, []string{"about"}, sc.StopWords)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sources.yml")
		require.NoError(t, os.WriteFile(path, []byte("{not yaml: ["), 0o644))

		_, err := LoadSourcesConfig(path)
		assert.Error(t, err)
	})
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogDebug, ParseLogLevel("debug"))
	assert.Equal(t, LogInfo, ParseLogLevel("info"))
	assert.Equal(t, LogWarning, ParseLogLevel("warn"))
	assert.Equal(t, LogWarning, ParseLogLevel("warning"))
	assert.Equal(t, LogError, ParseLogLevel("error"))
	assert.Equal(t, LogInfo, ParseLogLevel("unknown"))
}
