// Package resolve picks the installer a download request should be
// redirected to. It tries the per-platform manifest first and falls back to
// scanning the release prefix for the highest version.
package resolve

import "strings"

// Platform is the installer family implied by the "os" query parameter.
type Platform string

const (
	PlatformMac     Platform = "mac"
	PlatformWindows Platform = "win"
)

// BlockmapMarker identifies differential-update sidecars, which are never
// download targets.
const BlockmapMarker = "blockmap"

// ParsePlatform maps an "os" token to a Platform. Only the exact token "mac"
// selects macOS; anything else is Windows.
func ParsePlatform(os string) Platform {
	if os == string(PlatformMac) {
		return PlatformMac
	}
	return PlatformWindows
}

// Extension returns the installer file extension for the platform.
func (p Platform) Extension() string {
	if p == PlatformMac {
		return ".dmg"
	}
	return ".exe"
}

func (p Platform) String() string { return string(p) }

// Query is a single resolution request.
type Query struct {
	OS   string // raw "os" token, kept for diagnostics
	Arch string // optional, matched case-insensitively as a substring
}

// Platform returns the platform the query selects.
func (q Query) Platform() Platform {
	return ParsePlatform(q.OS)
}

// matchesArch reports whether key satisfies the query's architecture token.
func (q Query) matchesArch(key string) bool {
	if q.Arch == "" {
		return true
	}
	return strings.Contains(strings.ToLower(key), strings.ToLower(q.Arch))
}

// isInstaller reports whether key is a primary installer for p.
func isInstaller(key string, p Platform) bool {
	return strings.HasSuffix(key, p.Extension()) && !strings.Contains(key, BlockmapMarker)
}
