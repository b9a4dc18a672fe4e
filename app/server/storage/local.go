package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalUrlPrefix is where the server exposes files from a LocalBucket.
const LocalUrlPrefix = "/uploads"

// LocalBucket writes objects under a directory on disk.
type LocalBucket struct {
	Dir     string
	UrlBase string
}

func NewLocalBucket(dir, urlBase string) (*LocalBucket, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating upload dir %s: %v", dir, err)
	}
	return &LocalBucket{Dir: dir, UrlBase: strings.TrimRight(urlBase, "/")}, nil
}

func (b *LocalBucket) Upload(ctx context.Context, key string, obj io.Reader, contentType string) (string, error) {
	dest := filepath.Join(b.Dir, filepath.FromSlash(key))
	if !strings.HasPrefix(dest, filepath.Clean(b.Dir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid object key: %s", key)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", fmt.Errorf("error creating dir for %s: %v", key, err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("error creating %s: %v", dest, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, obj); err != nil {
		return "", fmt.Errorf("error writing %s: %v", dest, err)
	}

	return b.UrlBase + "/" + key, nil
}

func (b *LocalBucket) Close() error { return nil }
