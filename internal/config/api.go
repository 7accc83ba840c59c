package config

import (
	"fmt"
	"os"

	"github.com/recaplabs/recap/pkg/formatting"
	"github.com/recaplabs/recap/pkg/middleware"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "RECAP_CORS_ENABLED",
	Origins:          "RECAP_CORS_ORIGINS",
	AllowedMethods:   "RECAP_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "RECAP_CORS_ALLOWED_HEADERS",
	AllowCredentials: "RECAP_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "RECAP_CORS_MAX_AGE",
}

// APIConfig holds upload limits and CORS settings.
type APIConfig struct {
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
}

func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return 16 * 1024 * 1024 // 16MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS config.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
}

func (c *APIConfig) loadDefaults() {
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "16MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("RECAP_API_MAX_UPLOAD_SIZE"); v != "" {
		c.MaxUploadSize = v
	}
}
