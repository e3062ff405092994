package config

import (
	"os"
	"strings"
)

// Config holds everything the server and feedctl read from the environment.
type Config struct {
	Port          string
	DBDriver      string // memory, sqlite, postgres, mongo
	DatabaseURL   string
	MongoDatabase string
	StorageKey    string
	SessionSecret string
	SiteURL       string
	DefaultUserID string
	LogLevel      string
	CORSOrigins   []string
}

const (
	DefaultStorageKey = "community_platform_data"
	DefaultUserID     = "user1"
)

// Load reads the environment. Call godotenv.Load before it to pick up a .env file.
func Load() Config {
	cfg := Config{
		Port:          getenv("PORT", "8080"),
		DBDriver:      strings.ToLower(getenv("DB_DRIVER", "sqlite")),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		MongoDatabase: getenv("MONGO_DATABASE", "commfeed"),
		StorageKey:    getenv("STORAGE_KEY", DefaultStorageKey),
		SessionSecret: getenv("SESSION_SECRET", "secret_key_change_me"),
		SiteURL:       strings.TrimSuffix(getenv("SITE_URL", "http://localhost:8080"), "/"),
		DefaultUserID: getenv("DEFAULT_USER_ID", DefaultUserID),
		LogLevel:      getenv("LOG_LEVEL", "info"),
	}

	if cfg.DatabaseURL == "" {
		switch cfg.DBDriver {
		case "sqlite":
			cfg.DatabaseURL = "commfeed.db"
		case "postgres":
			// Fallback for local dev if not set
			cfg.DatabaseURL = "host=localhost user=postgres password=postgres dbname=commfeed port=5432 sslmode=disable"
		case "mongo":
			cfg.DatabaseURL = "mongodb://localhost:27017"
		}
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
