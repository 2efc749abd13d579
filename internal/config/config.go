package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	StorageBackend string
	DBUrl          string
	AppEnv         string
	LogLevel       string
	SeedDemoData   bool
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", "memory")),
		DBUrl:          getEnv("DB_URL", ""),
		AppEnv:         normalizeEnv(getEnv("APP_ENV", "production")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		SeedDemoData:   getEnvBool("SEED_DEMO_DATA", true),
	}

	if cfg.StorageBackend == "postgres" && cfg.DBUrl == "" {
		return nil, fmt.Errorf("DB_URL is required when STORAGE_BACKEND=postgres")
	}
	if cfg.StorageBackend != "postgres" && cfg.StorageBackend != "memory" {
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}
