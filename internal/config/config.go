// Package config loads process configuration from the environment.
//
// In dev (ENV=dev), a .env file in the working directory is loaded first via
// godotenv, so local runs don't need a wall of exports. Every value has a
// working default; the only one that matters for security is JWT_SECRET,
// whose fallback is deliberately insecure and loudly warned about at startup
// (see cmd/server).
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/sakif/articles-api/internal/auth"
	"github.com/sakif/articles-api/internal/repository/sqlite"
)

// InsecureDefaultSecret is the development fallback for JWT_SECRET. It is
// public knowledge (it's in this file); any deployment still using it has
// effectively unsigned tokens.
const InsecureDefaultSecret = "change_me_for_prod"

type Config struct {
	Port      int           // SERVER_PORT
	DBPath    string        // DB_PATH ("" → in-memory store)
	JWTSecret string        // JWT_SECRET
	TokenTTL  time.Duration // TOKEN_TTL (Go duration, e.g. "1h")
	StaticDir string        // STATIC_DIR ("" → no static file serving)
}

// Load reads configuration from the environment.
func Load() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	return Config{
		Port:      getEnvInt("SERVER_PORT", 8080),
		DBPath:    getEnv("DB_PATH", sqlite.InMemoryDSN),
		JWTSecret: getEnv("JWT_SECRET", InsecureDefaultSecret),
		TokenTTL:  getEnvDuration("TOKEN_TTL", auth.DefaultTokenTTL),
		StaticDir: getEnv("STATIC_DIR", ""),
	}
}

// UsingInsecureSecret reports whether the token-signing secret is still the
// development fallback.
func (c Config) UsingInsecureSecret() bool {
	return c.JWTSecret == InsecureDefaultSecret
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := time.ParseDuration(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}
