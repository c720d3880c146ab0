package fsx

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

// ErrNotExist is returned when a file is missing from the store
var ErrNotExist = errors.New("fsx: file does not exist")

// FileReader reads files back from the store
type FileReader interface {
	ReadFileStream(ctx context.Context, name string) (io.ReadCloser, error)
}

// FileWriter writes and removes files
type FileWriter interface {
	WriteFile(ctx context.Context, name string, data []byte) error

	// DeleteFile accepts either a store path or a URL previously returned by URL
	DeleteFile(ctx context.Context, name string) error
}

// FileSystem is the object store used for uploaded assets
type FileSystem interface {
	FileReader
	FileWriter

	// Join builds a store path from its elements
	Join(elem ...string) string

	// URL returns the public URL of a stored path
	URL(name string) string
}

// JoinPath joins elements with forward slashes regardless of platform
func JoinPath(elem ...string) string {
	return strings.TrimPrefix(path.Join(elem...), "/")
}

// TrimBaseURL strips base from url and returns the remaining store path.
// The second value is false when url does not start with base.
func TrimBaseURL(base, url string) (string, bool) {
	if base == "" {
		return "", false
	}
	base = strings.TrimSuffix(base, "/") + "/"
	if !strings.HasPrefix(url, base) {
		return "", false
	}
	return strings.TrimPrefix(url, base), true
}
