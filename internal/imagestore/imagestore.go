// Package imagestore resolves and stores product image files.
//
// Paths are deterministic: the same product name and creation time always
// resolve to the same path, so saving again replaces the previous file
// instead of piling up uniquely suffixed copies.
package imagestore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const pathTimeFormat = "2006-01-02_15-04-05"

type Store struct {
	BaseDir string
}

func New(baseDir string) *Store {
	return &Store{BaseDir: baseDir}
}

// ImagePath resolves the on-disk location for a product image from the
// product name and creation timestamp.
func (s *Store) ImagePath(productName string, createdAt time.Time) string {
	name := fmt.Sprintf("%s_%s.png", productName, createdAt.UTC().Format(pathTimeFormat))
	return filepath.Join(s.BaseDir, name)
}

// DefaultPath is used when a product is created without an image.
func (s *Store) DefaultPath() string {
	return filepath.Join(s.BaseDir, "default.png")
}

// Save writes content to path, deleting any pre-existing file there first so
// the new file replaces it under the same name. It returns the path written.
// A failed write after the delete leaves no file at path; the caller decides
// whether to retry.
func (s *Store) Save(path string, content io.Reader) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("imagestore: create dir for %s: %w", path, err)
	}

	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("imagestore: replace %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("imagestore: stat %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("imagestore: write %s: %w", path, err)
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		return "", fmt.Errorf("imagestore: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("imagestore: write %s: %w", path, err)
	}
	return path, nil
}

// Remove deletes the file for a product image. The shared default image and
// already-missing files are left alone.
func (s *Store) Remove(path string) error {
	if path == "" || path == s.DefaultPath() {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("imagestore: remove %s: %w", path, err)
	}
	return nil
}
