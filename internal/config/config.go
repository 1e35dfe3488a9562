package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultStoreKeywords match the seeded store names. Stems are used because the
// names are declined ("Магазин на Победе").
const DefaultStoreKeywords = "Гагарина,Побед"

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	MongoDB MongoDBConfig
	Auth    AuthConfig
	Sheets  SheetsConfig
	Sync    SyncConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port         string
	SeedDefaults bool
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AuthConfig holds the admin credentials and token signing options.
type AuthConfig struct {
	JWTSecret         string
	AdminUsername     string
	AdminPasswordHash string
	TokenTTL          time.Duration
}

// SheetsConfig contains options for the Google Sheets client. The spreadsheet
// itself and its API key live in the settings record.
type SheetsConfig struct {
	Endpoint     string
	FetchTimeout time.Duration
}

// SyncConfig holds reconciliation and scheduler settings.
type SyncConfig struct {
	StoreKeywords    []string
	SchedulerEnabled bool
	SchedulerSpec    string
	Timezone         string
	WebhookURL       string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when configuration comes from the environment.
		_ = godotenv.Load()
	}

	tokenTTL, err := getenvDuration("AUTH_TOKEN_TTL", 12*time.Hour)
	if err != nil {
		return nil, err
	}
	fetchTimeout, err := getenvDuration("SYNC_FETCH_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getenvWithDefault("APP_PORT", "8080"),
			SeedDefaults: getenvBool("SEED_DEFAULTS", true),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "damask"),
		},
		Auth: AuthConfig{
			JWTSecret:         os.Getenv("JWT_SECRET"),
			AdminUsername:     getenvWithDefault("ADMIN_USERNAME", "admin"),
			AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
			TokenTTL:          tokenTTL,
		},
		Sheets: SheetsConfig{
			Endpoint:     os.Getenv("GOOGLE_SHEETS_ENDPOINT"),
			FetchTimeout: fetchTimeout,
		},
		Sync: SyncConfig{
			StoreKeywords:    splitList(getenvWithDefault("SYNC_STORE_KEYWORDS", DefaultStoreKeywords)),
			SchedulerEnabled: getenvBool("SYNC_SCHEDULER_ENABLED", false),
			SchedulerSpec:    getenvWithDefault("SYNC_SCHEDULER_SPEC", "*/10 * * * *"),
			Timezone:         getenvWithDefault("TIMEZONE", "Asia/Yekaterinburg"),
			WebhookURL:       os.Getenv("SYNC_WEBHOOK_URL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	switch {
	case c.Auth.JWTSecret == "":
		return errors.New("JWT_SECRET must be provided")
	case c.Auth.AdminUsername == "":
		return errors.New("ADMIN_USERNAME must not be empty")
	case c.Auth.AdminPasswordHash == "":
		return errors.New("ADMIN_PASSWORD_HASH must be provided")
	case c.Auth.TokenTTL <= 0:
		return errors.New("AUTH_TOKEN_TTL must be positive")
	}

	if c.Sheets.FetchTimeout <= 0 {
		return errors.New("SYNC_FETCH_TIMEOUT must be positive")
	}

	if len(c.Sync.StoreKeywords) != 2 {
		return fmt.Errorf("SYNC_STORE_KEYWORDS must list exactly two keywords, got %d", len(c.Sync.StoreKeywords))
	}

	if c.Sync.SchedulerEnabled {
		if c.Sync.SchedulerSpec == "" {
			return errors.New("SYNC_SCHEDULER_SPEC must be provided when the scheduler is enabled")
		}
		if _, err := time.LoadLocation(c.Sync.Timezone); err != nil {
			return fmt.Errorf("TIMEZONE is invalid: %w", err)
		}
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid duration: %w", key, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
