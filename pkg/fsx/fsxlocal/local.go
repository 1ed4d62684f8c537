package fsxlocal

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Abraxas-365/jobboard/pkg/fsx"
)

// LocalFileSystem stores blobs under a base directory on disk
type LocalFileSystem struct {
	baseDir string
}

var _ fsx.FileSystem = (*LocalFileSystem)(nil)

// NewLocalFileSystem creates the base directory if needed
func NewLocalFileSystem(baseDir string) (*LocalFileSystem, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fsx.ErrStorage(err).WithDetail("dir", baseDir)
	}
	return &LocalFileSystem{baseDir: baseDir}, nil
}

// Join builds a slash separated storage path
func (l *LocalFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

// resolve maps a storage path to a file under baseDir, rejecting escapes
func (l *LocalFileSystem) resolve(p string) (string, error) {
	clean := path.Clean("/" + p)
	if clean == "/" || strings.Contains(p, "..") {
		return "", fsx.ErrInvalidPath().WithDetail("path", p)
	}
	return filepath.Join(l.baseDir, filepath.FromSlash(clean)), nil
}

func (l *LocalFileSystem) WriteFile(ctx context.Context, p string, data []byte) error {
	full, err := l.resolve(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fsx.ErrStorage(err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fsx.ErrStorage(err).WithDetail("path", p)
	}
	return nil
}

func (l *LocalFileSystem) WriteFileStream(ctx context.Context, p string, r io.Reader) error {
	full, err := l.resolve(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fsx.ErrStorage(err)
	}

	f, err := os.Create(full)
	if err != nil {
		return fsx.ErrStorage(err).WithDetail("path", p)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(full)
		return fsx.ErrStorage(err).WithDetail("path", p)
	}
	return nil
}

func (l *LocalFileSystem) ReadFile(ctx context.Context, p string) ([]byte, error) {
	full, err := l.resolve(p)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fsx.ErrFileNotFound().WithDetail("path", p)
		}
		return nil, fsx.ErrStorage(err)
	}
	return data, nil
}

func (l *LocalFileSystem) ReadFileStream(ctx context.Context, p string) (io.ReadCloser, error) {
	full, err := l.resolve(p)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fsx.ErrFileNotFound().WithDetail("path", p)
		}
		return nil, fsx.ErrStorage(err)
	}
	return f, nil
}

// DeleteFile removes p; deleting a missing file is not an error
func (l *LocalFileSystem) DeleteFile(ctx context.Context, p string) error {
	full, err := l.resolve(p)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fsx.ErrStorage(err)
	}
	return nil
}

func (l *LocalFileSystem) Exists(ctx context.Context, p string) (bool, error) {
	full, err := l.resolve(p)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fsx.ErrStorage(err)
}
