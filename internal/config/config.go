package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	apperrors "campusai/internal/errors"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort    string
	DBPath        string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	LogLevel      string
	LogJSON       bool
	SwaggerHost   string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is read first if present; variables
// already set in the environment win.
func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "5000"),
		DBPath:        getEnv("DB_PATH", "users.db"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogJSON:       getEnvBool("LOG_JSON", false),
		SwaggerHost:   os.Getenv("SWAGGER_HOST"),
	}
}

// Validate checks settings the server cannot start without.
func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return apperrors.ErrStartupConfigMissing
	}
	return nil
}

// String returns a representation of the config with secrets masked.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Port: %s, DB: %s, Model: %s, Redis: %q, OpenAIKey: %s, RedisPassword: %s}",
		c.ServerPort, c.DBPath, c.OpenAIModel, c.RedisAddr, mask(c.OpenAIAPIKey), mask(c.RedisPass),
	)
}

func mask(secret string) string {
	if secret == "" {
		return "<unset>"
	}
	return "***"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
