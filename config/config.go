package config

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	DatabaseURL    string   `env:"DATABASE_URL"`
	DatabaseDriver string   `env:"DATABASE_DRIVER" envDefault:"postgres"` // postgres or sqlite
	Port           string   `env:"PORT" envDefault:"8080"`
	GoEnv          string   `env:"GO_ENV" envDefault:"development"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
	FrontendOrigin string   `env:"FRONTEND_ORIGIN" envDefault:"http://localhost:3000"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	SessionSecret     string        `env:"SESSION_SECRET"`
	SessionStore      string        `env:"SESSION_STORE" envDefault:"database"` // database or redis
	SessionTTL        time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionCookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"sid"`
	RedisURL          string        `env:"REDIS_URL"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleCallbackURL  string `env:"GOOGLE_CALLBACK_URL" envDefault:"http://localhost:8080/auth/google/callback"`

	AWSRegion          string `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSS3Bucket        string `env:"AWS_S3_BUCKET"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`

	OTELEndpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTELServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"road-estimator-api"`
}

const developmentSessionSecret = "insecure-development-session-secret"

var appConfig *Config

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	// Determine which environment file to load
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}

	// Try to load environment-specific file first
	envFile := fmt.Sprintf(".env.%s", goEnv)
	if err := godotenv.Load(envFile); err != nil {
		// If environment-specific file doesn't exist, try .env
		if err := godotenv.Load(); err != nil {
			// In production environment variables are set directly
			// so it's okay if .env files don't exist
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.SessionSecret == "" && !cfg.IsProduction() {
		log.Printf("SESSION_SECRET not set, using an insecure development secret")
		cfg.SessionSecret = developmentSessionSecret
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that all required configuration values are set
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.DatabaseDriver != "postgres" && c.DatabaseDriver != "sqlite" {
		return fmt.Errorf("DATABASE_DRIVER must be postgres or sqlite, got %q", c.DatabaseDriver)
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	switch c.SessionStore {
	case "database":
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when SESSION_STORE=redis")
		}
	default:
		return fmt.Errorf("SESSION_STORE must be database or redis, got %q", c.SessionStore)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// GoogleEnabled returns true when Google sign-in credentials are configured
func (c *Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// ReportArchiveEnabled returns true when an S3 bucket is configured for report exports
func (c *Config) ReportArchiveEnabled() bool {
	return c.AWSS3Bucket != ""
}

// CookieSecure reports whether session cookies require HTTPS.
func (c *Config) CookieSecure() bool {
	return c.IsProduction()
}

// CookieSameSite is None in production, where the frontend lives on another
// site, and Lax otherwise.
func (c *Config) CookieSameSite() http.SameSite {
	if c.IsProduction() {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// GetConfig returns the loaded configuration
func GetConfig() *Config {
	return appConfig
}

// SetConfig sets the configuration instance (used at start-up and in tests)
func SetConfig(cfg *Config) {
	appConfig = cfg
}
