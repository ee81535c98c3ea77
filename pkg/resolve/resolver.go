package resolve

import (
	"context"
	"strings"

	"github.com/airenamify/dlgate/pkg/dlog"
	"github.com/airenamify/dlgate/pkg/relstore"
)

// Defaults for Config.
const (
	DefaultCDNOrigin      = "https://contents-cdn.airenamify.com"
	DefaultReleasePrefix  = "release/"
	DefaultMacManifestKey = "release/latest-mac.yml"
	DefaultWinManifestKey = "release/latest.yml"
)

// Config binds a Resolver to one environment's bucket layout and CDN.
type Config struct {
	CDNOrigin      string
	ReleasePrefix  string
	MacManifestKey string
	WinManifestKey string
}

// DefaultConfig returns the production layout.
func DefaultConfig() Config {
	return Config{
		CDNOrigin:      DefaultCDNOrigin,
		ReleasePrefix:  DefaultReleasePrefix,
		MacManifestKey: DefaultMacManifestKey,
		WinManifestKey: DefaultWinManifestKey,
	}
}

// Source names the strategy that produced a Resolution.
type Source string

const (
	SourceManifest Source = "manifest"
	SourceListing  Source = "listing"
)

// Resolution is the installer chosen for a query.
type Resolution struct {
	Platform Platform `json:"platform"`
	Arch     string   `json:"arch,omitempty"`
	Key      string   `json:"key"` // storage key, including the release prefix
	URL      string   `json:"url"` // CDN origin + "/" + Key
	Source   Source   `json:"source"`
}

// Resolver composes the manifest fast path with the listing fallback.
type Resolver struct {
	cfg      Config
	manifest *ManifestResolver
	listing  *ListingResolver
	logger   *dlog.Logger
}

// New creates a Resolver reading from store.
func New(store relstore.Store, cfg Config, logger *dlog.Logger) *Resolver {
	if logger == nil {
		logger = dlog.NewDiscard()
	}
	logger = logger.With("component", "resolver")
	if cfg.ReleasePrefix != "" && !strings.HasSuffix(cfg.ReleasePrefix, "/") {
		cfg.ReleasePrefix += "/"
	}
	return &Resolver{
		cfg:      cfg,
		manifest: NewManifestResolver(store, cfg.MacManifestKey, cfg.WinManifestKey, logger),
		listing:  NewListingResolver(store, cfg.ReleasePrefix),
		logger:   logger,
	}
}

// Config returns the configuration the resolver was built with.
func (r *Resolver) Config() Config {
	return r.cfg
}

// Resolve picks the installer for q. The manifest is consulted first and
// short-circuits on a match; the listing runs only on a manifest miss.
func (r *Resolver) Resolve(ctx context.Context, q Query) (*Resolution, error) {
	res := &Resolution{Platform: q.Platform(), Arch: q.Arch}

	if filename, ok := r.manifest.Resolve(ctx, q); ok {
		res.Key = r.ReleaseKey(filename)
		res.Source = SourceManifest
	} else {
		key, err := r.listing.Resolve(ctx, q)
		if err != nil {
			r.logger.Debug("resolution failed", "os", q.OS, "arch", q.Arch, "error", err)
			return nil, err
		}
		res.Key = key
		res.Source = SourceListing
	}

	res.URL = r.URL(res.Key)
	r.logger.Debug("resolved", "os", q.OS, "arch", q.Arch, "key", res.Key, "source", res.Source)
	return res, nil
}

// ReleaseKey turns a manifest filename into a storage key under the release
// prefix. Names that already carry the prefix are returned unchanged.
func (r *Resolver) ReleaseKey(filename string) string {
	filename = strings.TrimPrefix(filename, "/")
	if r.cfg.ReleasePrefix == "" || strings.HasPrefix(filename, r.cfg.ReleasePrefix) {
		return filename
	}
	return r.cfg.ReleasePrefix + filename
}

// URL returns the CDN address of a storage key.
func (r *Resolver) URL(key string) string {
	return strings.TrimRight(r.cfg.CDNOrigin, "/") + "/" + strings.TrimPrefix(key, "/")
}
