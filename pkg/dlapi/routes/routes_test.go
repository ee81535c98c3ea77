package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/airenamify/dlgate/pkg/relstore"
	"github.com/airenamify/dlgate/pkg/resolve"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cdn = "https://contents-cdn.airenamify.com"

func newResolver(store relstore.Store) *resolve.Resolver {
	return resolve.New(store, resolve.DefaultConfig(), nil)
}

func seededStore(keys ...string) *relstore.MemoryStore {
	store := relstore.NewMemoryStore()
	for _, k := range keys {
		store.Put(k, []byte("installer"))
	}
	return store
}

func TestDownload_MissingOS(t *testing.T) {
	_, api := humatest.New(t)
	store := seededStore("release/App-1.0.0-mac-x64.dmg")
	RegisterDownload(api, newResolver(store))

	for _, path := range []string{"/download", "/download?arch=arm64", "/download?os="} {
		resp := api.Get(path)
		assert.Equal(t, http.StatusBadRequest, resp.Code, path)
		assert.Equal(t, MissingOSMessage, resp.Body.String(), path)
	}

	lists, downloads := store.Calls()
	assert.Zero(t, lists, "validation must not touch the store")
	assert.Zero(t, downloads, "validation must not touch the store")
}

func TestDownload_RedirectsFromManifest(t *testing.T) {
	_, api := humatest.New(t)
	store := seededStore("release/App-1.2.0-mac-arm64.dmg")
	store.Put(resolve.DefaultMacManifestKey, []byte("files:\n  - url: App-1.2.0-mac-arm64.dmg\n"))
	RegisterDownload(api, newResolver(store))

	resp := api.Get("/download?os=mac&arch=arm64")
	require.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, cdn+"/release/App-1.2.0-mac-arm64.dmg", resp.Header().Get("Location"))
}

func TestDownload_RedirectsFromListing(t *testing.T) {
	_, api := humatest.New(t)
	store := seededStore(
		"release/App-1.2.0-mac-x64.dmg",
		"release/App-1.3.0-mac-x64.dmg",
		"release/App-1.3.0-mac-x64.dmg.blockmap",
	)
	RegisterDownload(api, newResolver(store))

	resp := api.Get("/download?os=mac&arch=x64")
	require.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, cdn+"/release/App-1.3.0-mac-x64.dmg", resp.Header().Get("Location"))
}

func TestDownload_NotFound(t *testing.T) {
	_, api := humatest.New(t)
	RegisterDownload(api, newResolver(seededStore("release/App-1.0.0-win-x64.exe")))

	resp := api.Get("/download?os=mac&arch=arm64")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "No mac (arm64) release found", resp.Body.String())

	resp = api.Get("/download?os=mac")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "No mac release found", resp.Body.String())
}

func TestDownload_EmptyBucket(t *testing.T) {
	_, api := humatest.New(t)
	RegisterDownload(api, newResolver(relstore.NewMemoryStore()))

	resp := api.Get("/download?os=win")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "No release files found", resp.Body.String())
}

func TestDownload_ListingFault(t *testing.T) {
	_, api := humatest.New(t)
	store := seededStore("release/App-1.0.0-win-x64.exe")
	store.ListErr = errors.New("bucket unreachable")
	RegisterDownload(api, newResolver(store))

	resp := api.Get("/download?os=win")
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Equal(t, "Error fetching releases: bucket unreachable", resp.Body.String())
}

func TestDownload_NoResolver(t *testing.T) {
	_, api := humatest.New(t)
	RegisterDownload(api, nil)

	resp := api.Get("/download?os=mac")
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestLatestRelease(t *testing.T) {
	_, api := humatest.New(t)
	store := seededStore(
		"release/App-1.9.0-win-x64.exe",
		"release/App-1.10.0-win-x64.exe",
	)
	RegisterReleases(api, newResolver(store))

	resp := api.Get("/api/releases/latest?os=win&arch=X64")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body LatestRelease
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "win", body.Platform)
	assert.Equal(t, "X64", body.Arch)
	assert.Equal(t, "release/App-1.10.0-win-x64.exe", body.Key)
	assert.Equal(t, cdn+"/release/App-1.10.0-win-x64.exe", body.URL)
	assert.Equal(t, "listing", body.Source)
}

func TestLatestRelease_Errors(t *testing.T) {
	_, api := humatest.New(t)
	store := seededStore("release/App-1.0.0-win-x64.exe")
	RegisterReleases(api, newResolver(store))

	resp := api.Get("/api/releases/latest")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Missing")

	resp = api.Get("/api/releases/latest?os=mac")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "No mac release found")

	store.ListErr = errors.New("timeout")
	resp = api.Get("/api/releases/latest?os=win")
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "timeout")
}

func TestHealth(t *testing.T) {
	_, api := humatest.New(t)
	RegisterHealth(api)

	resp := api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"ok"}`, resp.Body.String())
}
