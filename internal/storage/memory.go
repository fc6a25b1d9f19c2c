package storage

import (
	"context"
	"fmt"
	"sync"

	"vofmun/pkg/platform/sentinel"
)

// Object is one stored blob, retained for test assertions.
type Object struct {
	Data        []byte
	ContentType string
}

// InMemoryStore is the ObjectStore used by unit tests: buckets are declared
// up front and uploads are kept in a map.
type InMemoryStore struct {
	mu      sync.RWMutex
	buckets map[string]map[string]Object

	// FailUploads forces Upload to error, for exercising the
	// no-row-on-failed-upload path.
	FailUploads bool
}

func NewInMemoryStore(buckets ...string) *InMemoryStore {
	s := &InMemoryStore{buckets: make(map[string]map[string]Object)}
	for _, b := range buckets {
		s.buckets[b] = make(map[string]Object)
	}
	return s
}

func (s *InMemoryStore) EnsureBucket(_ context.Context, bucket string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.buckets[bucket]; !ok {
		return fmt.Errorf("bucket %q does not exist: %w", bucket, sentinel.ErrUnavailable)
	}
	return nil
}

func (s *InMemoryStore) Upload(_ context.Context, bucket, objectKey string, data []byte, contentType string) error {
	if s.FailUploads {
		return fmt.Errorf("upload %q: simulated failure", objectKey)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	objects, ok := s.buckets[bucket]
	if !ok {
		return fmt.Errorf("bucket %q does not exist: %w", bucket, sentinel.ErrUnavailable)
	}
	objects[objectKey] = Object{Data: append([]byte(nil), data...), ContentType: contentType}
	return nil
}

func (s *InMemoryStore) PublicURL(bucket, objectKey string) string {
	return fmt.Sprintf("https://storage.test/%s/%s", bucket, objectKey)
}

// ObjectCount reports how many blobs a bucket holds.
func (s *InMemoryStore) ObjectCount(bucket string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.buckets[bucket])
}

// Objects returns a copy of a bucket's contents keyed by object key.
func (s *InMemoryStore) Objects(bucket string) map[string]Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Object, len(s.buckets[bucket]))
	for k, v := range s.buckets[bucket] {
		out[k] = v
	}
	return out
}
