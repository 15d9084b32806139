package storage

import (
	"context"
	"errors"
	"io"
)

// ErrStorage wraps any persistence failure in the file store.
var ErrStorage = errors.New("file storage error")

// FileStore persists uploaded files and returns durable public URLs.
type FileStore interface {
	// Save writes the content under the given key and returns the URL
	// the file will be served from. Saving to an existing key replaces
	// the previous content.
	Save(ctx context.Context, key string, r io.Reader) (string, error)

	// Delete removes the content at the given key. Deleting a missing
	// key is not an error.
	Delete(ctx context.Context, key string) error
}
