package relstore

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-process Store. Tests use it in place of a bucket, and
// `serve` uses it when STORE_BACKEND=memory.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte

	// ListErr and DownloadErr, when set, are returned by every call.
	ListErr     error
	DownloadErr error

	lists     int
	downloads int
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects: make(map[string][]byte),
	}
}

// Put stores data at key, replacing any existing object.
func (s *MemoryStore) Put(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = append([]byte(nil), data...)
}

// Calls reports how many List and Download calls the store has served.
func (s *MemoryStore) Calls() (lists, downloads int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lists, s.downloads
}

func (s *MemoryStore) CheckBucket(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.downloads++

	if s.DownloadErr != nil {
		return nil, s.DownloadErr
	}
	data, ok := s.objects[key]
	if !ok {
		return nil, ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// List returns objects in key order, as S3 does.
func (s *MemoryStore) List(ctx context.Context, prefix string) ([]*Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++

	if s.ListErr != nil {
		return nil, s.ListErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var objects []*Object
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			objects = append(objects, &Object{Key: key})
		}
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}

var _ Store = (*MemoryStore)(nil)
