// Package upload stores item photos on the local filesystem.
//
// Files are written under generated uuid keys instead of the client's
// filename, so concurrent or repeated uploads never overwrite each other.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore writes uploaded files into a single flat directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the upload directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory the store writes into.
func (s *FileStore) Dir() string {
	return s.dir
}

// Save copies src to disk and returns the generated storage key.
// Only the extension of the client's filename is kept.
func (s *FileStore) Save(filename string, src io.Reader) (string, error) {
	key := uuid.NewString() + strings.ToLower(filepath.Ext(filename))

	dst, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", fmt.Errorf("creating photo file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		// Partially written files are not cleaned up.
		return "", fmt.Errorf("writing photo file: %w", err)
	}
	return key, nil
}
