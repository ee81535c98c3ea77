package resolve

import (
	"regexp"
	"strings"
)

// versionPattern matches a version embedded in a filename, e.g. the
// "-1.10.2-" in "App-1.10.2-mac-arm64.dmg".
var versionPattern = regexp.MustCompile(`-(\d+)\.(\d+)\.(\d+)[-.]`)

// Version is a parsed major.minor.patch triple. Components are kept as
// digit strings so arbitrarily long numbers compare without overflow.
type Version struct {
	Major, Minor, Patch string
}

// ParseVersion extracts the first embedded version from key.
func ParseVersion(key string) (Version, bool) {
	m := versionPattern.FindStringSubmatch(key)
	if m == nil {
		return Version{}, false
	}
	return Version{Major: m[1], Minor: m[2], Patch: m[3]}, true
}

func (v Version) String() string {
	return v.Major + "." + v.Minor + "." + v.Patch
}

// compareNumeric compares two decimal digit strings by integer value.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// CompareVersions returns -1, 0 or 1 as a is lower than, equal to or
// higher than b.
func CompareVersions(a, b Version) int {
	if c := compareNumeric(a.Major, b.Major); c != 0 {
		return c
	}
	if c := compareNumeric(a.Minor, b.Minor); c != 0 {
		return c
	}
	return compareNumeric(a.Patch, b.Patch)
}

// Compare orders artifact keys newest first: it is negative when a should
// come before b. When both keys carry a version the higher version wins;
// otherwise, or on a tie, the lexicographically greater key wins.
// Usable directly with slices.SortFunc.
func Compare(a, b string) int {
	va, okA := ParseVersion(a)
	vb, okB := ParseVersion(b)
	if okA && okB {
		if c := CompareVersions(va, vb); c != 0 {
			return -c
		}
	}
	return strings.Compare(b, a)
}

// Latest returns the key that Compare ranks first.
func Latest(keys []string) (string, bool) {
	if len(keys) == 0 {
		return "", false
	}
	best := keys[0]
	for _, k := range keys[1:] {
		if Compare(k, best) < 0 {
			best = k
		}
	}
	return best, true
}
