package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrNameRequired is returned when Save is called without a usable name.
var ErrNameRequired = errors.New("storage: name is required")

// LocalStorage saves artifacts into a directory on local disk.
type LocalStorage struct {
	dir string
}

// NewLocalStorage creates a new LocalStorage instance.
// If dir is empty, a "kling" directory under os.TempDir() is used.
// The directory is created if it doesn't exist.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "kling")
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	return &LocalStorage{dir: dir}, nil
}

// Dir returns the output directory path.
func (s *LocalStorage) Dir() string {
	return s.dir
}

// Save writes data to dir/name and returns the file path. Only the base of
// name is used. The file appears only once fully written; a failed save
// leaves nothing behind.
func (s *LocalStorage) Save(ctx context.Context, name string, data io.Reader) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	base := filepath.Base(name)
	if name == "" || base == "." || base == ".." || base == string(filepath.Separator) {
		return "", ErrNameRequired
	}

	f, err := os.CreateTemp(s.dir, "."+base+".part-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	partName := f.Name()
	if _, err := io.Copy(f, data); err != nil {
		_ = f.Close()
		_ = os.Remove(partName)
		return "", fmt.Errorf("write file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(partName)
		return "", fmt.Errorf("close file: %w", err)
	}

	final := filepath.Join(s.dir, base)
	if err := os.Rename(partName, final); err != nil {
		_ = os.Remove(partName)
		return "", fmt.Errorf("rename file: %w", err)
	}

	return final, nil
}

// Remove deletes a previously saved file. Missing files are not an error.
func (s *LocalStorage) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file %s: %w", path, err)
	}
	return nil
}

var _ Storage = (*LocalStorage)(nil)
