package resolve

import (
	"bufio"
	"context"
	"errors"
	"strings"

	"github.com/airenamify/dlgate/pkg/dlog"
	"github.com/airenamify/dlgate/pkg/relstore"
)

// urlMarker introduces a filename in a manifest line, e.g.
// "  - url: App-1.3.0-mac-arm64.dmg".
const urlMarker = "url:"

// MaxManifestSize bounds how much of a manifest is read. Larger objects are
// treated as absent.
const MaxManifestSize = 1 << 20

// ManifestResolver reads the "latest" pointer object the release pipeline
// publishes next to the installers.
type ManifestResolver struct {
	store  relstore.Store
	keys   map[Platform]string
	logger *dlog.Logger
}

// NewManifestResolver maps each platform to its manifest key.
func NewManifestResolver(store relstore.Store, macKey, winKey string, logger *dlog.Logger) *ManifestResolver {
	if logger == nil {
		logger = dlog.NewDiscard()
	}
	return &ManifestResolver{
		store: store,
		keys: map[Platform]string{
			PlatformMac:     macKey,
			PlatformWindows: winKey,
		},
		logger: logger,
	}
}

// ManifestKey returns the object key of the platform's manifest.
func (m *ManifestResolver) ManifestKey(p Platform) string {
	return m.keys[p]
}

// Resolve returns the installer filename named by the manifest. A missing,
// unreadable or non-matching manifest yields ok=false, never an error.
func (m *ManifestResolver) Resolve(ctx context.Context, q Query) (filename string, ok bool) {
	p := q.Platform()
	key := m.ManifestKey(p)
	if key == "" {
		return "", false
	}

	data, err := relstore.ReadAll(ctx, m.store, key, MaxManifestSize)
	if err != nil {
		switch {
		case errors.Is(err, relstore.ErrNotFound):
			m.logger.Debug("manifest absent", "platform", p, "key", key)
		case errors.Is(err, relstore.ErrTooLarge):
			m.logger.Warn("manifest too large, ignoring", "key", key, "limit", MaxManifestSize)
		default:
			m.logger.Warn("manifest read failed", "key", key, "error", err)
		}
		return "", false
	}

	filename, ok = ScanManifest(string(data), p, q.Arch)
	if !ok {
		m.logger.Debug("manifest has no matching entry", "key", key, "os", q.OS, "arch", q.Arch)
	}
	return filename, ok
}

// ScanManifest returns the first "url:" entry naming an installer for p
// whose filename contains arch (case-insensitive; empty arch matches all).
func ScanManifest(text string, p Platform, arch string) (string, bool) {
	ext := p.Extension()
	q := Query{Arch: arch}

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := scanner.Text()
		idx := strings.Index(line, urlMarker)
		if idx < 0 || !strings.Contains(line, ext) {
			continue
		}

		name := unquote(strings.TrimSpace(line[idx+len(urlMarker):]))
		if !isInstaller(name, p) || !q.matchesArch(name) {
			continue
		}
		return name, true
	}
	return "", false
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return strings.Trim(s, `"'`)
}
