// Package relstore provides read access to the release bucket through
// S3-compatible object storage.
package relstore

import (
	"context"
	"io"
	"strings"
)

// Object is one entry of a listing. Only the key drives resolution.
type Object struct {
	Key string `json:"key"` // e.g. "release/App-1.3.0-mac-arm64.dmg"
}

// Store defines the read operations the gateway needs from the release bucket.
type Store interface {
	// Download retrieves an object by key. Returns ErrNotFound if the key
	// does not exist.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// List lists all objects with the given prefix, recursively.
	List(ctx context.Context, prefix string) ([]*Object, error)

	// CheckBucket reports ErrBucketMissing if the configured bucket does not exist.
	CheckBucket(ctx context.Context) error
}

// Backend names accepted by New.
const (
	BackendMinio  = "minio"
	BackendS3     = "s3"
	BackendMemory = "memory"
)

// Config selects and configures a Store backend.
type Config struct {
	Backend   string
	Endpoint  string // host:port for minio, full URL for s3 (optional)
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// New builds the Store named by cfg.Backend.
func New(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case BackendMinio, "":
		s, err := NewMinioStore(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendS3:
		s, err := NewS3Store(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, &UnknownBackendError{Backend: cfg.Backend}
	}
}

// ReadAll downloads key and returns its contents. Objects larger than limit
// bytes are rejected with ErrTooLarge.
func ReadAll(ctx context.Context, s Store, key string, limit int64) ([]byte, error) {
	rc, err := s.Download(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, ErrTooLarge
	}
	return data, nil
}
