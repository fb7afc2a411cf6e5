package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quacker/internal/config"
	"quacker/pkg/log"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, warnings := config.FromLookup(lookupFrom(nil))

	assert.Equal(t, config.Default(), cfg)
	assert.Empty(t, warnings)
}

func TestFromLookup_ReadsValues(t *testing.T) {
	cfg, warnings := config.FromLookup(lookupFrom(map[string]string{
		"PORT":            "8080",
		"LOG_LEVEL":       "debug",
		"LEXICON_PATH":    "/etc/quacker/lexicon.yaml",
		"SEED_PATH":       "/etc/quacker/seed.yaml",
		"SEED_DEMO":       "false",
		"CURRENT_USER":    "alien",
		"ADMIN_RESET":     "true",
		"POST_RATE_LIMIT": "0",
	}))

	assert.Empty(t, warnings)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, log.Debug, cfg.LogLevel)
	assert.Equal(t, "/etc/quacker/lexicon.yaml", cfg.LexiconPath)
	assert.Equal(t, "/etc/quacker/seed.yaml", cfg.SeedPath)
	assert.False(t, cfg.SeedDemo)
	assert.Equal(t, "alien", cfg.CurrentUser)
	assert.True(t, cfg.AdminReset)
	assert.Equal(t, 0, cfg.PostRateLimit)
}

func TestFromLookup_InvalidValuesKeepDefaults(t *testing.T) {
	cfg, warnings := config.FromLookup(lookupFrom(map[string]string{
		"PORT":            "eighty",
		"LOG_LEVEL":       "chatty",
		"SEED_DEMO":       "maybe",
		"ADMIN_RESET":     "sure",
		"POST_RATE_LIMIT": "-3",
	}))

	assert.Len(t, warnings, 5)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, log.Info, cfg.LogLevel)
	assert.True(t, cfg.SeedDemo)
	assert.False(t, cfg.AdminReset)
	assert.Equal(t, 30, cfg.PostRateLimit)
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("QUACKER_TEST_ONLY=1\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("QUACKER_TEST_ONLY") })

	// Act
	_, _, err := config.Load(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "1", os.Getenv("QUACKER_TEST_ONLY"))
}

func TestLoad_MissingEnvFileIsNotAnError(t *testing.T) {
	_, _, err := config.Load(filepath.Join(t.TempDir(), "absent.env"))

	assert.NoError(t, err)
}
