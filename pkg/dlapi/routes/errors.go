package routes

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/airenamify/dlgate/pkg/resolve"
	"github.com/danielgtaylor/huma/v2"
)

// errorStatus maps a resolver error to an HTTP status and a client-facing
// message.
func errorStatus(err error) (int, string) {
	var nf *resolve.NotFoundError
	switch {
	case errors.As(err, &nf):
		return http.StatusNotFound, nf.Error()
	case errors.Is(err, resolve.ErrNoReleases):
		return http.StatusNotFound, "No release files found"
	default:
		var se *resolve.StoreError
		if errors.As(err, &se) {
			err = se.Err
		}
		return http.StatusInternalServerError, fmt.Sprintf("Error fetching releases: %v", err)
	}
}

// toHumaError converts a resolver error for JSON operations.
func toHumaError(err error) error {
	status, msg := errorStatus(err)
	return huma.NewError(status, msg)
}
