package relstore

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrNotFound      = errors.New("object not found")
	ErrBucketMissing = errors.New("bucket does not exist")
	ErrTooLarge      = errors.New("object exceeds read limit")
)

// UnknownBackendError is returned by New for an unsupported backend name.
type UnknownBackendError struct {
	Backend string
}

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("unknown store backend %q (want minio, s3 or memory)", e.Backend)
}
