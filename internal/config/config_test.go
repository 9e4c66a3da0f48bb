package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "campusai/internal/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVER_PORT", "DB_PATH", "OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL",
		"REDIS_ADDR", "REDIS_DB", "REDIS_PASSWORD", "LOG_LEVEL", "LOG_JSON", "SWAGGER_HOST",
	} {
		t.Setenv(key, "")
	}
	// Keep a stray .env in the package dir from leaking into the test.
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, "users.db", cfg.DBPath)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.False(t, cfg.LogJSON)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/campus.db")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("LOG_JSON", "true")

	cfg := Load()
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "/tmp/campus.db", cfg.DBPath)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.LogJSON)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_DB", "three")
	t.Setenv("LOG_JSON", "maybe")

	cfg := Load()
	assert.Equal(t, 0, cfg.RedisDB)
	assert.False(t, cfg.LogJSON)
}

func TestValidate_RequiresAPIKey(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	require.ErrorIs(t, cfg.Validate(), apperrors.ErrStartupConfigMissing)

	cfg.OpenAIAPIKey = "sk-test"
	assert.NoError(t, cfg.Validate())
}

func TestString_MasksSecrets(t *testing.T) {
	cfg := &Config{ServerPort: "5000", DBPath: "users.db", OpenAIAPIKey: "sk-secret", RedisPass: "hunter2"}

	s := cfg.String()
	assert.NotContains(t, s, "sk-secret")
	assert.NotContains(t, s, "hunter2")
	assert.Contains(t, s, "users.db")
}
