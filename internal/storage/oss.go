package storage

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"vofmun/pkg/platform/sentinel"
)

// OSSStore implements ObjectStore on the hosted object-storage service.
type OSSStore struct {
	client   *oss.Client
	endpoint string

	mu      sync.Mutex
	ensured map[string]bool
}

// NewOSS connects to the storage endpoint with the given credentials.
func NewOSS(endpoint, accessKeyID, accessKeySecret string) (*OSSStore, error) {
	client, err := oss.New(endpoint, accessKeyID, accessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &OSSStore{
		client:   client,
		endpoint: endpoint,
		ensured:  make(map[string]bool),
	}, nil
}

// EnsureBucket checks the bucket exists, memoizing a positive answer so the
// check runs at most once per bucket per process. A missing bucket is an
// operational misconfiguration and surfaces as sentinel.ErrUnavailable.
func (s *OSSStore) EnsureBucket(_ context.Context, bucket string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ensured[bucket] {
		return nil
	}

	exists, err := s.client.IsBucketExist(bucket)
	if err != nil {
		return fmt.Errorf("check bucket %q: %w", bucket, err)
	}
	if !exists {
		return fmt.Errorf("bucket %q does not exist: %w", bucket, sentinel.ErrUnavailable)
	}
	s.ensured[bucket] = true
	return nil
}

func (s *OSSStore) Upload(_ context.Context, bucket, objectKey string, data []byte, contentType string) error {
	b, err := s.client.Bucket(bucket)
	if err != nil {
		return fmt.Errorf("open bucket %q: %w", bucket, err)
	}
	if err := b.PutObject(objectKey, bytes.NewReader(data), oss.ContentType(contentType)); err != nil {
		return fmt.Errorf("upload %q: %w", objectKey, err)
	}
	return nil
}

func (s *OSSStore) PublicURL(bucket, objectKey string) string {
	return fmt.Sprintf("https://%s.%s/%s", bucket, s.endpoint, objectKey)
}
