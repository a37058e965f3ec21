package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	MigrationsDir string

	// Review pack storage
	ReviewPackDir string

	// Risk scoring
	HighValueThreshold   float64
	BackdateGraceDays    int
	LatePostingGraceDays int

	// Audit sink
	AuditQueueSize int

	// Rate limiting, e.g. "100-M" for 100 requests per minute
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("MIGRATIONS_DIR", "migrations")
	viper.SetDefault("REVIEW_PACK_DIR", "review_packs")
	viper.SetDefault("HIGH_VALUE_THRESHOLD", 100000.0)
	viper.SetDefault("BACKDATE_GRACE_DAYS", 3)
	viper.SetDefault("LATE_POSTING_GRACE_DAYS", 5)
	viper.SetDefault("AUDIT_QUEUE_SIZE", 256)
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.MigrationsDir = viper.GetString("MIGRATIONS_DIR")
	cfg.ReviewPackDir = viper.GetString("REVIEW_PACK_DIR")
	cfg.HighValueThreshold = viper.GetFloat64("HIGH_VALUE_THRESHOLD")
	cfg.BackdateGraceDays = viper.GetInt("BACKDATE_GRACE_DAYS")
	cfg.LatePostingGraceDays = viper.GetInt("LATE_POSTING_GRACE_DAYS")
	cfg.AuditQueueSize = viper.GetInt("AUDIT_QUEUE_SIZE")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	if cfg.HighValueThreshold <= 0 {
		log.Printf("Warning: Invalid HIGH_VALUE_THRESHOLD (%f). Defaulting to 100000.\n", cfg.HighValueThreshold)
		cfg.HighValueThreshold = 100000
	}
	if cfg.BackdateGraceDays < 0 {
		cfg.BackdateGraceDays = 3
	}
	if cfg.LatePostingGraceDays < 0 {
		cfg.LatePostingGraceDays = 5
	}

	return cfg, nil
}
