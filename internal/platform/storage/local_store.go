package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quartzerp/glcore/internal/apperrors"
	portssvc "github.com/quartzerp/glcore/internal/core/ports/services"
)

// LocalFileStore keeps review pack archives on the local filesystem under a
// single base directory. Keys are slash-separated relative paths.
type LocalFileStore struct {
	baseDir string
}

// NewLocalFileStore creates the base directory if needed.
func NewLocalFileStore(baseDir string) (*LocalFileStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", baseDir, err)
	}
	return &LocalFileStore{baseDir: baseDir}, nil
}

var _ portssvc.FileStoreSvc = (*LocalFileStore)(nil)

// resolve maps a storage key to an absolute path, refusing keys that would
// escape the base directory.
func (s *LocalFileStore) resolve(key string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(key))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("%w: invalid storage key %q", apperrors.ErrValidation, key)
	}
	return filepath.Join(s.baseDir, cleaned), nil
}

// Put writes the blob, creating intermediate directories. Existing keys are
// never overwritten; packs are append-only.
func (s *LocalFileStore) Put(_ context.Context, key string, data []byte) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: storage key %s already exists", apperrors.ErrDuplicate, key)
		}
		return fmt.Errorf("failed to create %s: %w", key, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return f.Sync()
}

// Get reads the blob back.
func (s *LocalFileStore) Get(_ context.Context, key string) ([]byte, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: storage key %s", apperrors.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}
