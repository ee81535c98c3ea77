package relstore

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore implements Store using MinIO/S3-compatible storage
// (MinIO, Cloudflare R2, S3).
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore creates a new MinioStore with the given configuration.
func NewMinioStore(cfg Config) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, err
	}

	return NewMinioStoreFromClient(client, cfg.Bucket), nil
}

// NewMinioStoreFromClient wraps an existing client.
func NewMinioStoreFromClient(client *minio.Client, bucket string) *MinioStore {
	return &MinioStore{
		client: client,
		bucket: bucket,
	}
}

// CheckBucket verifies the bucket exists. The gateway never creates buckets.
func (s *MinioStore) CheckBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !exists {
		return ErrBucketMissing
	}
	return nil
}

// Download opens key for reading. A missing key yields ErrNotFound.
func (s *MinioStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}

	// GetObject does no I/O until the first read or Stat.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return obj, nil
}

// List walks every key under prefix, including nested "directories".
func (s *MinioStore) List(ctx context.Context, prefix string) ([]*Object, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel() // stops the listing goroutine on early return

	var objects []*Object
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if info.Err != nil {
			return nil, info.Err
		}
		objects = append(objects, &Object{Key: info.Key})
	}
	return objects, nil
}

var _ Store = (*MinioStore)(nil)
