package dlapi

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/airenamify/dlgate/pkg/dlapi/routes"
	"github.com/airenamify/dlgate/pkg/dlapi/services"
	"github.com/airenamify/dlgate/pkg/relstore"
	"github.com/airenamify/dlgate/pkg/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApi(t *testing.T, store relstore.Store, staticDir string) *Api {
	t.Helper()
	api := NewApi()
	svcs := services.NewServicesWithStore(store, resolve.DefaultConfig(), nil)
	routes.RegisterAPI(api.Api, svcs)
	api.Fallback(routes.StaticHandler(staticDir, nil))
	return api
}

func serve(api *Api, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	api.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRouter_DownloadRedirect(t *testing.T) {
	store := relstore.NewMemoryStore()
	store.Put("release/App-1.3.0-mac-x64.dmg", []byte("x"))
	api := newTestApi(t, store, "")

	rec := serve(api, "/download?os=mac")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://contents-cdn.airenamify.com/release/App-1.3.0-mac-x64.dmg", rec.Header().Get("Location"))
}

func TestRouter_StaticFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "changelog.html"), []byte("<h1>Changelog</h1>"), 0644))
	api := newTestApi(t, relstore.NewMemoryStore(), dir)

	rec := serve(api, "/changelog.html")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Changelog")

	rec = serve(api, "/missing.html")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_NoStaticDir(t *testing.T) {
	api := newTestApi(t, relstore.NewMemoryStore(), filepath.Join(t.TempDir(), "nope"))

	rec := serve(api, "/index.html")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_OpenAPI(t *testing.T) {
	api := newTestApi(t, relstore.NewMemoryStore(), "")

	rec := serve(api, "/openapi.json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/download")
	assert.Contains(t, rec.Body.String(), "/api/releases/latest")
}
