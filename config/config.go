package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EmailConfig holds mailer settings. Provider is "ses" or "noop".
type EmailConfig struct {
	Provider           string
	FromAddress        string
	FromName           string
	SESRegion          string
	SESAccessKeyID     string
	SESSecretAccessKey string
}

// Config holds all configuration for the application
type Config struct {
	DBUrl          string
	Environment    string
	Port           string
	PublicBaseURL  string
	JWTSecret      string
	TokenExpiry    time.Duration
	AllowedOrigins []string
	Email          EmailConfig
}

// Load loads configuration from environment variables.
// It attempts to load from .env file if not in production.
// DATABASE_URL is mandatory: without a store address the process must not start.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production the .env file may legitimately not exist; system
	// environment variables are the source of truth there.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:   env,
		DBUrl:         os.Getenv("DATABASE_URL"),
		Port:          os.Getenv("PORT"),
		PublicBaseURL: os.Getenv("PUBLIC_BASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		Email: EmailConfig{
			Provider:           os.Getenv("EMAIL_PROVIDER"),
			FromAddress:        os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:           os.Getenv("EMAIL_FROM_NAME"),
			SESRegion:          os.Getenv("SES_REGION"),
			SESAccessKeyID:     os.Getenv("SES_ACCESS_KEY_ID"),
			SESSecretAccessKey: os.Getenv("SES_SECRET_ACCESS_KEY"),
		},
	}

	if cfg.DBUrl == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	if cfg.JWTSecret == "" {
		if env == "production" {
			return nil, fmt.Errorf("JWT_SECRET is not set")
		}
		log.Printf("Warning: JWT_SECRET not set, using development default")
		cfg.JWTSecret = "development-secret"
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "http://localhost:" + cfg.Port
	}
	if cfg.Email.Provider == "" {
		cfg.Email.Provider = "noop"
	}

	expiryHours := 24
	if s := os.Getenv("TOKEN_EXPIRY_HOURS"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			expiryHours = v
		}
	}
	cfg.TokenExpiry = time.Duration(expiryHours) * time.Hour

	if s := os.Getenv("CORS_ALLOWED_ORIGINS"); s != "" {
		cfg.AllowedOrigins = strings.Split(s, ",")
	}

	return cfg, nil
}
