package mediastore

import (
	"errors"
	"fmt"

	"github.com/LarsBecker/StoryPress/internal/pkg/env"
)

// Config holds storage settings for article media.
type Config struct {
	// Root is the local directory uploads are written to.
	Root string
	// PublicPath is the URL prefix the stored files are served under.
	PublicPath string

	// S3 mirror settings. The mirror is optional; when disabled uploads
	// only live on local disk.
	MirrorEnabled   bool
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // Optional for S3-compatible services
}

// LoadConfig loads media storage configuration from environment variables.
func LoadConfig() (*Config, error) {
	config := &Config{
		Root:            env.GetEnv("MEDIA_ROOT", "uploads"),
		PublicPath:      env.GetEnv("MEDIA_PUBLIC_PATH", "/uploads"),
		MirrorEnabled:   env.GetEnv("S3_MIRROR_ENABLED", "false") == "true",
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("S3_REGION", "us-west-001"),
		BucketName:      env.GetEnv("S3_BUCKET_NAME", ""),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
	}

	if config.MirrorEnabled {
		if config.AccessKeyID == "" {
			return nil, errors.New("S3_ACCESS_KEY_ID is required when the S3 mirror is enabled")
		}
		if config.SecretAccessKey == "" {
			return nil, errors.New("S3_SECRET_ACCESS_KEY is required when the S3 mirror is enabled")
		}
		if config.BucketName == "" {
			return nil, errors.New("S3_BUCKET_NAME is required when the S3 mirror is enabled")
		}
	}

	return config, nil
}

// GetObjectKey generates a standardized S3 object key for an article image.
func (c *Config) GetObjectKey(imageUUID, fileExtension string, year, month int) string {
	// Format: articles/YYYY/MM/UUID.ext
	return fmt.Sprintf("articles/%04d/%02d/%s%s", year, month, imageUUID, fileExtension)
}

// GetBucketName returns the bucket name as configured.
func (c *Config) GetBucketName() string {
	return c.BucketName
}
