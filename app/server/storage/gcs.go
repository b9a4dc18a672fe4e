package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

type GCSBucket struct {
	client *storage.Client
	name   string
}

func NewGCSBucket(ctx context.Context, name, credentialsFile string) (*GCSBucket, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating gcs client: %v", err)
	}

	return &GCSBucket{client: client, name: name}, nil
}

func (b *GCSBucket) Upload(ctx context.Context, key string, obj io.Reader, contentType string) (string, error) {
	zap.L().Debug("uploading to gcs", zap.String("bucket", b.name), zap.String("key", key))

	w := b.client.Bucket(b.name).Object(key).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}

	if _, err := io.Copy(w, obj); err != nil {
		w.Close()
		return "", fmt.Errorf("error copying %s to gcs: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("error closing gcs writer for %s: %w", key, err)
	}

	return gcsUrl(b.name, key)
}

func (b *GCSBucket) Close() error {
	return b.client.Close()
}

func gcsUrl(bucket, object string) (string, error) {
	u, err := url.Parse("https://storage.googleapis.com")
	if err != nil {
		return "", fmt.Errorf("error parsing gcs url: %w", err)
	}

	u.Path = path.Join(u.Path, bucket, object)
	return u.String(), nil
}
