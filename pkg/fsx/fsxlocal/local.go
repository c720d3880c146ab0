package fsxlocal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Abraxas-365/nerdyjobs/pkg/fsx"
)

// LocalFileSystem keeps files on disk under root and serves them from baseURL.
// Used for local development in place of S3.
type LocalFileSystem struct {
	root    string
	baseURL string
}

var _ fsx.FileSystem = (*LocalFileSystem)(nil)

// NewLocalFileSystem creates the root directory if needed
func NewLocalFileSystem(root, baseURL string) (*LocalFileSystem, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &LocalFileSystem{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Root returns the directory files are written to
func (l *LocalFileSystem) Root() string {
	return l.root
}

func (l *LocalFileSystem) Join(elem ...string) string {
	return fsx.JoinPath(elem...)
}

func (l *LocalFileSystem) URL(name string) string {
	return l.baseURL + "/" + strings.TrimPrefix(name, "/")
}

// resolve maps a store path or URL to a path on disk, refusing to leave root
func (l *LocalFileSystem) resolve(name string) (string, error) {
	if rest, ok := fsx.TrimBaseURL(l.baseURL, name); ok {
		name = rest
	}
	clean := filepath.Clean("/" + filepath.FromSlash(name))
	if clean == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return filepath.Join(l.root, clean), nil
}

func (l *LocalFileSystem) WriteFile(_ context.Context, name string, data []byte) error {
	p, err := l.resolve(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", name, err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (l *LocalFileSystem) ReadFileStream(_ context.Context, name string) (io.ReadCloser, error) {
	p, err := l.resolve(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fsx.ErrNotExist
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return f, nil
}

func (l *LocalFileSystem) DeleteFile(_ context.Context, name string) error {
	p, err := l.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}
