package exportstore

import (
	"errors"
	"fmt"

	"github.com/complymate/doorguard/internal/pkg/env"
)

// Config holds S3 settings for archived export files.
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // Optional for S3-compatible services
	Enabled         bool
}

// LoadConfig loads export archive configuration from environment variables.
func LoadConfig() (*Config, error) {
	config := &Config{
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("S3_REGION", "eu-west-2"),
		BucketName:      env.GetEnv("S3_BUCKET_NAME", ""),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		Enabled:         env.GetEnv("EXPORT_ARCHIVE_ENABLED", "false") == "true",
	}

	if config.Enabled {
		if config.AccessKeyID == "" {
			return nil, errors.New("S3_ACCESS_KEY_ID is required when export archiving is enabled")
		}
		if config.SecretAccessKey == "" {
			return nil, errors.New("S3_SECRET_ACCESS_KEY is required when export archiving is enabled")
		}
		if config.BucketName == "" {
			return nil, errors.New("S3_BUCKET_NAME is required when export archiving is enabled")
		}
	}

	return config, nil
}

// IsEnabled returns true if export archiving is enabled.
func (c *Config) IsEnabled() bool {
	return c.Enabled
}

// ObjectKey generates the S3 key for an archived export file.
// Format: exports/<tenantID>/<filename>
func (c *Config) ObjectKey(tenantID uint, filename string) string {
	return fmt.Sprintf("exports/%d/%s", tenantID, filename)
}
