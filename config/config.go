package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// AppConfig holds every environment-driven setting. BaseURL must be the
// publicly reachable origin, since it is baked into every short URL we mint.
type AppConfig struct {
	BaseURL      string
	Port         string
	DatabasePath string
	RedisAddr    string
	SentryDSN    string
}

var App AppConfig

// Load reads the optional .env file and populates App with defaults for
// anything unset.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded")
	}

	App = AppConfig{
		BaseURL:      getEnv("BASE_URL", "http://localhost:8080"),
		Port:         getEnv("PORT", "8080"),
		DatabasePath: getEnv("DATABASE_PATH", "qr_tracker.db"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		SentryDSN:    os.Getenv("SENTRY_DSN"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
