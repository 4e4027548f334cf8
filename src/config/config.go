package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	StoreBackend string
	DatabaseURL  string
	SQLitePath   string
	SeedURL      string
	SeedTimeout  time.Duration
}

func Load() Config {
	// Load .env file if present
	_ = godotenv.Load()

	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		StoreBackend: getEnv("STORE_BACKEND", "postgres"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		SQLitePath:   getEnv("SQLITE_PATH", "./data/transactions.db"),
		SeedURL:      getEnv("SEED_URL", ""),
		SeedTimeout:  getEnvDuration("SEED_TIMEOUT", 30*time.Second),
	}

	switch cfg.StoreBackend {
	case "postgres":
		if cfg.DatabaseURL == "" {
			log.Fatal("DATABASE_URL is required when STORE_BACKEND is postgres")
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			log.Fatal("SQLITE_PATH is required when STORE_BACKEND is sqlite")
		}
	default:
		log.Fatalf("Invalid store backend: %s", cfg.StoreBackend)
	}

	if cfg.SeedURL == "" {
		log.Fatal("SEED_URL is required")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
