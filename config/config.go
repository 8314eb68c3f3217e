package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	DatabaseURL string
	ServerPort  int

	// CatalogPath points to a local fixture catalog JSON file. Optional;
	// without it (and without R2 settings) the embedded catalog subset is
	// used.
	CatalogPath string

	// Cloudflare R2 settings for loading the catalog from object storage.
	// All five must be set together.
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2CatalogKey      string
}

// Load reads configuration from environment variables, optionally picking up
// a .env file for local development.
func Load() (*Config, error) {
	_ = godotenv.Load() // a missing .env file is not an error

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	cfg := &Config{
		DatabaseURL:       dbURL,
		ServerPort:        port,
		CatalogPath:       os.Getenv("CATALOG_PATH"),
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2CatalogKey:      os.Getenv("R2_CATALOG_KEY"),
	}

	if cfg.CatalogPath != "" && cfg.R2CatalogKey != "" {
		return nil, fmt.Errorf("CATALOG_PATH and R2_CATALOG_KEY are mutually exclusive")
	}
	if cfg.R2CatalogKey != "" {
		if cfg.R2AccountID == "" || cfg.R2AccessKeyID == "" || cfg.R2SecretAccessKey == "" || cfg.R2BucketName == "" {
			return nil, fmt.Errorf("R2_CATALOG_KEY requires R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY and R2_BUCKET_NAME")
		}
	}

	return cfg, nil
}

// HasR2 reports whether the catalog should be fetched from Cloudflare R2.
func (c *Config) HasR2() bool {
	return c.R2CatalogKey != ""
}
