package config

import (
	"os"
	"time"
)

type AppConfig struct {
	Port        string
	Environment string

	DatabasePath   string
	MigrationsPath string

	// Response cache
	CacheEnabled bool
	CacheTTLs    map[string]time.Duration
}

func GetDefaultConfig() *AppConfig {
	config := &AppConfig{
		Port:           envOr("PORT", "8080"),
		Environment:    "development",
		DatabasePath:   envOr("DATABASE_PATH", "database.db"),
		MigrationsPath: envOr("MIGRATIONS_PATH", "db/migrations/sqlite"),
		CacheEnabled:   true,
		CacheTTLs: map[string]time.Duration{
			"/todos": 3 * time.Second,
		},
	}

	if os.Getenv("GIN_MODE") == "release" {
		config.Environment = "production"
	}

	return config
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}
