// Package config loads application configuration from the environment.
package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration

	// BusinessDay is the logical business day the service boots with,
	// formatted 2006-01-02. Empty means today's calendar date.
	BusinessDay string

	// WithdrawValueDayOffset is the T+n shift applied to withdrawal
	// settlement days.
	WithdrawValueDayOffset int

	// WithdrawRateLimit is a ulule/limiter formatted rate ("10-M") applied
	// to the withdrawal endpoint per client IP.
	WithdrawRateLimit string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("BUSINESS_DAY", "")
	viper.SetDefault("WITHDRAW_VALUE_DAY_OFFSET", 3)
	viper.SetDefault("WITHDRAW_RATE_LIMIT", "10-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.BusinessDay = viper.GetString("BUSINESS_DAY")
	if cfg.BusinessDay != "" {
		if _, err := time.Parse("2006-01-02", cfg.BusinessDay); err != nil {
			log.Printf("Warning: Invalid value for BUSINESS_DAY ('%s'). Defaulting to today.\n", cfg.BusinessDay)
			cfg.BusinessDay = ""
		}
	}

	cfg.WithdrawValueDayOffset = viper.GetInt("WITHDRAW_VALUE_DAY_OFFSET")
	if cfg.WithdrawValueDayOffset < 0 {
		log.Printf("Warning: WITHDRAW_VALUE_DAY_OFFSET must not be negative, got %d. Defaulting to 3.\n", cfg.WithdrawValueDayOffset)
		cfg.WithdrawValueDayOffset = 3
	}

	cfg.WithdrawRateLimit = viper.GetString("WITHDRAW_RATE_LIMIT")

	return cfg, nil
}
