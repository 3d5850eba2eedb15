package filestorage

import (
	"context"
	"errors"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidKey is returned for keys that are empty or escape the storage root
var ErrInvalidKey = errors.New("invalid storage key")

// StoredFile describes an object written to storage
type StoredFile struct {
	Key         string // Storage-relative key, used for deletion
	URL         string // Public URL persisted on the owning record
	Size        int64
	ContentType string
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// Save streams r into a new object derived from the original file name
	Save(ctx context.Context, name, contentType string, r io.Reader) (*StoredFile, error)

	// Delete removes an object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for key
	URL(key string) string
}

// NewObjectKey returns a collision-free key that keeps the file extension of name.
func NewObjectKey(prefix, name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	key := uuid.New().String() + ext
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return key
	}
	return path.Join(prefix, key)
}

func cleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
