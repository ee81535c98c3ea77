package resolve

import (
	"context"

	"github.com/airenamify/dlgate/pkg/relstore"
)

// ListingResolver scans every object under the release prefix and picks the
// newest installer. It is the resolver of last resort, so its failures are
// reported to the caller.
type ListingResolver struct {
	store  relstore.Store
	prefix string
}

func NewListingResolver(store relstore.Store, prefix string) *ListingResolver {
	return &ListingResolver{store: store, prefix: prefix}
}

// Resolve returns the key of the newest matching installer. Errors are
// *StoreError, ErrNoReleases or *NotFoundError.
func (l *ListingResolver) Resolve(ctx context.Context, q Query) (string, error) {
	objects, err := l.store.List(ctx, l.prefix)
	if err != nil {
		return "", &StoreError{Op: "list releases", Err: err}
	}
	if len(objects) == 0 {
		return "", ErrNoReleases
	}

	key, ok := SelectLatest(objects, q)
	if !ok {
		return "", &NotFoundError{OS: q.OS, Arch: q.Arch}
	}
	return key, nil
}

// SelectLatest filters objects down to installers matching q and returns the
// newest by Compare.
func SelectLatest(objects []*relstore.Object, q Query) (string, bool) {
	p := q.Platform()
	candidates := make([]string, 0, len(objects))
	for _, obj := range objects {
		if obj == nil || !isInstaller(obj.Key, p) || !q.matchesArch(obj.Key) {
			continue
		}
		candidates = append(candidates, obj.Key)
	}
	return Latest(candidates)
}
