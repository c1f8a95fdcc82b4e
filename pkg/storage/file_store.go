// pkg/storage/file_store.go

package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore writes documents into a local directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir. Call Init before the first
// Save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the output directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Init creates the output directory if it does not exist yet.
func (s *FileStore) Init() error {
	if strings.TrimSpace(s.dir) == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory '%s': %w", s.dir, err)
	}
	return nil
}

// Save writes data to a temporary file next to the target and renames it
// into place, so readers never observe a partially written document.
func (s *FileStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file in '%s': %w", s.dir, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return "", fmt.Errorf("failed to write '%s': %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("failed to sync '%s': %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close '%s': %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return "", fmt.Errorf("failed to chmod '%s': %w", tmpPath, err)
	}

	final := filepath.Join(s.dir, name)
	if err := os.Rename(tmpPath, final); err != nil {
		return "", fmt.Errorf("failed to move '%s' into place: %w", final, err)
	}
	committed = true
	return final, nil
}
