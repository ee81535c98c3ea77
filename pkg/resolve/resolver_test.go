package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/airenamify/dlgate/pkg/relstore"
)

func TestResolver_ManifestShortCircuits(t *testing.T) {
	store := seed(
		"release/App-9.9.9-mac-arm64.dmg",
		"release/App-1.2.0-mac-arm64.dmg",
	)
	store.Put(DefaultMacManifestKey, []byte(macManifest))

	r := New(store, DefaultConfig(), nil)
	res, err := r.Resolve(context.Background(), Query{OS: "mac", Arch: "arm64"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if res.Source != SourceManifest {
		t.Errorf("expected manifest source, got %s", res.Source)
	}
	if res.Key != "release/App-1.2.0-mac-arm64.dmg" {
		t.Errorf("unexpected key %q", res.Key)
	}
	if res.URL != "https://contents-cdn.airenamify.com/release/App-1.2.0-mac-arm64.dmg" {
		t.Errorf("unexpected url %q", res.URL)
	}

	lists, downloads := store.Calls()
	if lists != 0 {
		t.Errorf("listing must not run after a manifest hit, got %d calls", lists)
	}
	if downloads != 1 {
		t.Errorf("expected one manifest read, got %d", downloads)
	}
}

func TestResolver_FallsBackToListing(t *testing.T) {
	store := seed(
		"release/App-1.2.0-mac-x64.dmg",
		"release/App-1.3.0-mac-x64.dmg",
		"release/App-1.3.0-mac-x64.dmg.blockmap",
	)
	store.Put(DefaultMacManifestKey, []byte(""))

	r := New(store, DefaultConfig(), nil)
	res, err := r.Resolve(context.Background(), Query{OS: "mac", Arch: "x64"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.Source != SourceListing {
		t.Errorf("expected listing source, got %s", res.Source)
	}
	if res.Key != "release/App-1.3.0-mac-x64.dmg" {
		t.Errorf("unexpected key %q", res.Key)
	}
}

func TestResolver_ManifestArchMissFallsBack(t *testing.T) {
	store := seed("release/App-1.1.0-mac-x64.dmg")
	store.Put(DefaultMacManifestKey, []byte(macManifest))

	r := New(store, DefaultConfig(), nil)
	res, err := r.Resolve(context.Background(), Query{OS: "mac", Arch: "x64"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.Source != SourceListing || res.Key != "release/App-1.1.0-mac-x64.dmg" {
		t.Errorf("expected listing fallback to x64, got %+v", res)
	}
}

func TestResolver_EmptyBucket(t *testing.T) {
	r := New(relstore.NewMemoryStore(), DefaultConfig(), nil)
	_, err := r.Resolve(context.Background(), Query{OS: "mac"})
	if !errors.Is(err, ErrNoReleases) {
		t.Errorf("expected ErrNoReleases, got %v", err)
	}
}

func TestResolver_ListingFaultSurfaces(t *testing.T) {
	store := relstore.NewMemoryStore()
	store.ListErr = errors.New("bucket unreachable")

	r := New(store, DefaultConfig(), nil)
	_, err := r.Resolve(context.Background(), Query{OS: "win"})
	var se *StoreError
	if !errors.As(err, &se) {
		t.Fatalf("expected StoreError, got %v", err)
	}
}

func TestResolver_KeysAndURLs(t *testing.T) {
	r := New(relstore.NewMemoryStore(), Config{
		CDNOrigin:     "https://cdn.example.com/",
		ReleasePrefix: "builds",
	}, nil)

	if got := r.ReleaseKey("App-1.0.0.dmg"); got != "builds/App-1.0.0.dmg" {
		t.Errorf("expected prefixed key, got %q", got)
	}
	if got := r.ReleaseKey("builds/App-1.0.0.dmg"); got != "builds/App-1.0.0.dmg" {
		t.Errorf("expected prefix to be kept once, got %q", got)
	}
	if got := r.URL("builds/App-1.0.0.dmg"); got != "https://cdn.example.com/builds/App-1.0.0.dmg" {
		t.Errorf("unexpected url %q", got)
	}
	if r.Config().ReleasePrefix != "builds/" {
		t.Errorf("expected normalized prefix, got %q", r.Config().ReleasePrefix)
	}
}
