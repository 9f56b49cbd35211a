package filestorage

import (
	"context"
	"io"
	"time"
)

// PresignExpiry is how long generated download links stay valid.
const PresignExpiry = time.Hour

// Storage abstracts where uploaded documents live. Both the local
// filesystem and S3-compatible object stores implement it.
type Storage interface {
	// Save writes the content under the given object key and returns the
	// stored key (which may differ from the requested one).
	Save(ctx context.Context, key string, content io.Reader, size int64, contentType string) (string, error)
	// URL returns a URL the client can use to fetch the object.
	URL(ctx context.Context, key string) (string, error)
	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error
}
