// Package storage wraps the object-storage collaborator behind a narrow
// interface: upload a blob, derive its public URL, and a one-time bucket
// existence check. Bucket lifecycle beyond that check is an operational
// concern, not this package's.
package storage

import (
	"context"
	"regexp"
	"strings"
)

// ObjectStore is the capability surface the services consume.
type ObjectStore interface {
	// EnsureBucket verifies the bucket exists. The result is memoized per
	// bucket for the lifetime of the store; a missing bucket surfaces as
	// sentinel.ErrUnavailable (wrapped).
	EnsureBucket(ctx context.Context, bucket string) error
	// Upload writes data under objectKey. EnsureBucket must have succeeded.
	Upload(ctx context.Context, bucket, objectKey string, data []byte, contentType string) error
	// PublicURL returns the publicly reachable URL for an uploaded object.
	PublicURL(bucket, objectKey string) string
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFileName reduces a user-supplied file name to a storage-safe one
// and appends an extension derived from the MIME subtype when the name has
// none. Blank names fall back to the provided default.
func SanitizeFileName(fileName, mimeType, fallback string) string {
	name := strings.TrimSpace(fileName)
	if name == "" {
		name = fallback
	}
	name = unsafeFileChars.ReplaceAllString(name, "_")

	if !strings.Contains(name, ".") {
		ext := "bin"
		if idx := strings.IndexByte(mimeType, '/'); idx >= 0 && idx+1 < len(mimeType) {
			ext = mimeType[idx+1:]
		}
		name = name + "." + ext
	}
	return name
}
