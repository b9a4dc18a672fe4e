package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"socialmedia/app/server/config"

	"github.com/google/uuid"
)

// Bucket stores uploaded objects and returns the public url of each one.
type Bucket interface {
	Upload(ctx context.Context, key string, obj io.Reader, contentType string) (string, error)
	Close() error
}

func New(ctx context.Context, cfg *config.Config) (Bucket, error) {
	switch cfg.StorageProvider {
	case config.StorageProviderS3:
		return NewS3Bucket(cfg.S3BucketName, cfg.AwsRegion, cfg.AwsAccessKeyId, cfg.AwsSecretAccessKey)
	case config.StorageProviderGCS:
		return NewGCSBucket(ctx, cfg.GcsBucketName, cfg.GcsCredentialsFile)
	case config.StorageProviderLocal:
		return NewLocalBucket(cfg.LocalUploadDir, cfg.PublicUrl+LocalUrlPrefix)
	}
	return nil, fmt.Errorf("unknown storage provider: %s", cfg.StorageProvider)
}

// ObjectKey builds a collision-free key that keeps the client's file name
// readable: "<uuid>/<name>".
func ObjectKey(filename string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("error generating object id: %v", err)
	}
	return path.Join(id.String(), SafeName(filename)), nil
}

// SafeName strips any directory components a client put in a file name.
func SafeName(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == "/" || name == ".." {
		return "upload"
	}
	return name
}
