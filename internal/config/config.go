// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/alfredjeanlab/corpnet/internal/companieshouse"
)

type Config struct {
	APIKey     string        // CORPNET_API_KEY (required)
	APIBaseURL string        // CORPNET_API_BASE_URL (default: live API, or sandbox when CORPNET_SANDBOX is set)
	APITimeout time.Duration // CORPNET_API_TIMEOUT (default 10s)
	HTTPAddr   string        // CORPNET_HTTP_ADDR (default ":8080")
	NATSURL    string        // CORPNET_NATS_URL (optional, empty = no events)
	AuthToken  string        // CORPNET_AUTH_TOKEN (optional, empty = auth disabled)

	// Network build defaults
	MaxCompanies int // CORPNET_MAX_COMPANIES (default 10)
	MaxOfficers  int // CORPNET_MAX_OFFICERS (default 10)
	Workers      int // CORPNET_WORKERS (default 4)

	// Export settings
	ExportS3Bucket   string // CORPNET_EXPORT_S3_BUCKET (enables S3 export when set)
	ExportS3Endpoint string // CORPNET_EXPORT_S3_ENDPOINT (custom endpoint for MinIO)
	ExportS3Region   string // CORPNET_EXPORT_S3_REGION (default "eu-west-2")
	ExportS3Prefix   string // CORPNET_EXPORT_S3_PREFIX (default "networks")
}

func Load() (*Config, error) {
	c := &Config{
		APIKey:     os.Getenv("CORPNET_API_KEY"),
		APIBaseURL: os.Getenv("CORPNET_API_BASE_URL"),
		HTTPAddr:   envOrDefault("CORPNET_HTTP_ADDR", ":8080"),
		NATSURL:    os.Getenv("CORPNET_NATS_URL"),
		AuthToken:  os.Getenv("CORPNET_AUTH_TOKEN"),
	}
	c.ExportS3Bucket, c.ExportS3Endpoint, c.ExportS3Region, c.ExportS3Prefix = ExportDefaults()
	if c.APIKey == "" {
		return nil, fmt.Errorf("CORPNET_API_KEY is required")
	}

	if c.APIBaseURL == "" {
		c.APIBaseURL = companieshouse.LiveBaseURL
		if sandbox, _ := strconv.ParseBool(os.Getenv("CORPNET_SANDBOX")); sandbox {
			c.APIBaseURL = companieshouse.SandboxBaseURL
		}
	}

	timeout, err := time.ParseDuration(envOrDefault("CORPNET_API_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("CORPNET_API_TIMEOUT: %w", err)
	}
	c.APITimeout = timeout

	if c.MaxCompanies, err = envInt("CORPNET_MAX_COMPANIES", 10); err != nil {
		return nil, err
	}
	if c.MaxOfficers, err = envInt("CORPNET_MAX_OFFICERS", 10); err != nil {
		return nil, err
	}
	if c.Workers, err = envInt("CORPNET_WORKERS", 4); err != nil {
		return nil, err
	}

	return c, nil
}

// ExportDefaults returns the export destination settings from the
// environment. The CLI uses these as flag defaults, so an export bucket can
// be configured once per shell instead of per invocation.
func ExportDefaults() (bucket, endpoint, region, prefix string) {
	return os.Getenv("CORPNET_EXPORT_S3_BUCKET"),
		os.Getenv("CORPNET_EXPORT_S3_ENDPOINT"),
		envOrDefault("CORPNET_EXPORT_S3_REGION", "eu-west-2"),
		envOrDefault("CORPNET_EXPORT_S3_PREFIX", "networks")
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
