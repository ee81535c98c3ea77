package routes

import (
	"net/http"
	"os"

	"github.com/airenamify/dlgate/pkg/dlog"
)

// StaticHandler serves the prebuilt site from dir. Without a usable
// directory every request gets a plain 404.
func StaticHandler(dir string, logger *dlog.Logger) http.Handler {
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return http.FileServer(http.Dir(dir))
		}
		if logger != nil {
			logger.Warn("static directory unavailable, serving 404 for unmatched routes", "dir", dir)
		}
	}
	return http.NotFoundHandler()
}
