package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the API reads from the environment.
type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	JWTSecret   string

	StripeSecretKey     string
	StripeWebhookSecret string

	FrontendURL        string
	CORSAllowedOrigins string
	ImageDir           string
}

// Load reads .env if present, then the process environment. DATABASE_URL
// and JWT_SECRET are required; everything else has a development default.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                envOrDefault("PORT", "8080"),
		Env:                 envOrDefault("ENV", "development"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		FrontendURL:         envOrDefault("FRONTEND_URL", "http://localhost:5173"),
		CORSAllowedOrigins:  os.Getenv("CORS_ALLOWED_ORIGINS"),
		ImageDir:            envOrDefault("IMAGE_DIR", "./images/place"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
