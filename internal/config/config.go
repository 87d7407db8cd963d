// Package config loads the application configuration for the selected
// environment profile.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds all configuration for the application.
type Config struct {
	Env string

	App       AppConfig
	Auth      AuthConfig
	Database  DatabaseConfig
	ImageHost ImageHostConfig
}

type AppConfig struct {
	Port               string
	Origin             string
	RateLimitPerMinute int
}

// AuthConfig carries the identity provider settings. No route checks
// tokens yet.
type AuthConfig struct {
	ClientOrigin string
	Audience     string
	Issuer       string
}

type DatabaseConfig struct {
	DSN string
}

type ImageHostConfig struct {
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	// PublicURL is a fmt pattern with a single %s for the object key.
	PublicURL string
	// Endpoint overrides the account based endpoint (MinIO, localstack).
	Endpoint string
	Folder   string
	LocalDir string
}

// Load reads APP_ENV, loads the matching .env.<profile> file if present and
// builds a Config from the environment.
func Load() (*Config, error) {
	env := getEnv("APP_ENV", EnvDevelopment)
	if env != EnvProduction {
		env = EnvDevelopment
	}

	// Variables already set in the process win over the file.
	if err := godotenv.Load(".env." + env); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env.%s: %w", env, err)
	}

	rateLimit, err := strconv.Atoi(getEnv("RATE_LIMIT_PER_MINUTE", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %w", err)
	}

	origin := os.Getenv("APP_ORIGIN")
	cfg := &Config{
		Env: env,
		App: AppConfig{
			Port:               getEnv("PORT", "4001"),
			Origin:             origin,
			RateLimitPerMinute: rateLimit,
		},
		Auth: AuthConfig{
			ClientOrigin: origin,
			Audience:     os.Getenv("AUTH0_AUDIENCE"),
			Issuer:       os.Getenv("AUTH0_ISSUER"),
		},
		Database: DatabaseConfig{
			DSN: os.Getenv("DSN"),
		},
		ImageHost: ImageHostConfig{
			AccountID:       os.Getenv("IMAGE_ACCOUNT_ID"),
			AccessKeyID:     os.Getenv("IMAGE_ACCESS_KEY_ID"),
			AccessKeySecret: os.Getenv("IMAGE_ACCESS_KEY_SECRET"),
			Bucket:          os.Getenv("IMAGE_BUCKET"),
			PublicURL:       os.Getenv("IMAGE_PUBLIC_URL"),
			Endpoint:        os.Getenv("IMAGE_ENDPOINT"),
			Folder:          getEnv("IMAGE_FOLDER", "movieImage"),
			LocalDir:        getEnv("IMAGE_LOCAL_DIR", "./uploads"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// IsProduction reports whether the production profile is active.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Validate ensures that required values are present.
func (c *Config) Validate() error {
	if c.App.Port == "" {
		return errors.New("PORT is required")
	}
	if c.App.RateLimitPerMinute <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.Database.DSN == "" {
		return errors.New("DSN is required")
	}

	if c.IsProduction() {
		img := c.ImageHost
		if img.AccessKeyID == "" || img.AccessKeySecret == "" || img.Bucket == "" {
			return errors.New("IMAGE_ACCESS_KEY_ID, IMAGE_ACCESS_KEY_SECRET and IMAGE_BUCKET are required in production")
		}
		if img.AccountID == "" && img.Endpoint == "" {
			return errors.New("IMAGE_ACCOUNT_ID or IMAGE_ENDPOINT is required in production")
		}
		if img.PublicURL == "" {
			return errors.New("IMAGE_PUBLIC_URL is required in production")
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
