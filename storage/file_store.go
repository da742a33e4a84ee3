package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Aashish23092/curriculum-ats/dto"
)

// StoredFile locates a saved upload.
type StoredFile struct {
	Backend string
	Path    string
	URL     string
}

// FileStore saves original curriculum files.
type FileStore interface {
	Save(ctx context.Context, userID, name string, data []byte, contentType string) (StoredFile, error)
	Delete(ctx context.Context, file StoredFile) error
}

// LocalFileStore writes uploads into a directory that the HTTP server exposes
// under URLPrefix.
type LocalFileStore struct {
	dir       string
	urlPrefix string
}

var _ FileStore = (*LocalFileStore)(nil)

// NewLocalFileStore creates dir when missing.
func NewLocalFileStore(dir, urlPrefix string) (*LocalFileStore, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve uploads dir: %w", err)
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalFileStore{dir: absDir, urlPrefix: "/" + strings.Trim(urlPrefix, "/")}, nil
}

// Dir returns the absolute uploads directory.
func (s *LocalFileStore) Dir() string {
	return s.dir
}

func (s *LocalFileStore) Save(ctx context.Context, _ string, name string, data []byte, _ string) (StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return StoredFile{}, err
	}
	name = filepath.Base(name)
	fullPath := filepath.Join(s.dir, name)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return StoredFile{}, fmt.Errorf("write %s: %w", name, err)
	}
	return StoredFile{
		Backend: dto.StorageBackendLocal,
		Path:    fullPath,
		URL:     path.Join(s.urlPrefix, name),
	}, nil
}

// Delete removes the file; a file that is already gone is not an error.
func (s *LocalFileStore) Delete(_ context.Context, file StoredFile) error {
	if file.Path == "" {
		return nil
	}
	if err := os.Remove(file.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", file.Path, err)
	}
	return nil
}
