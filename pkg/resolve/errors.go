package resolve

import (
	"errors"
	"fmt"
)

// ErrNoReleases is returned when the release prefix holds no objects at all.
var ErrNoReleases = errors.New("no release files found")

// NotFoundError reports that no installer matched the query.
type NotFoundError struct {
	OS   string
	Arch string
}

func (e *NotFoundError) Error() string {
	if e.Arch != "" {
		return fmt.Sprintf("No %s (%s) release found", e.OS, e.Arch)
	}
	return fmt.Sprintf("No %s release found", e.OS)
}

// StoreError wraps a failure of the bucket listing.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err means no installer could be chosen.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.Is(err, ErrNoReleases) || errors.As(err, &nf)
}
