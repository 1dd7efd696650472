package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileDestination writes network artifacts into a local directory.
type FileDestination struct {
	dir string
}

// NewFileDestination creates a file destination rooted at dir, creating the
// directory if needed.
func NewFileDestination(dir string) (*FileDestination, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	return &FileDestination{dir: dir}, nil
}

func (d *FileDestination) Write(_ context.Context, key string, data []byte) error {
	path := filepath.Join(d.dir, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

func (d *FileDestination) Describe(key string) string {
	return filepath.Join(d.dir, key)
}
