// Package localstore implements the blob store on a local directory, used by
// the operator CLI and in tests.
package localstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/SscSPs/mof_report_service/internal/apperrors"
	portsrepo "github.com/SscSPs/mof_report_service/internal/core/ports/repositories"
)

// Store keeps each object as a file below root.
type Store struct {
	root string
}

var _ portsrepo.BlobStore = (*Store)(nil)

// New creates root if needed.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root %s: %w", root, err)
	}
	return &Store{root: root}, nil
}

// Bucket returns the name of the root directory.
func (s *Store) Bucket() string { return filepath.Base(s.root) }

func (s *Store) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(strings.TrimLeft(key, "/")))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: invalid object key %q", apperrors.ErrValidation, key)
	}
	return filepath.Join(s.root, clean), nil
}

// Get reads the file stored under key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Put writes data under key, creating parent directories.
func (s *Store) Put(_ context.Context, key string, data []byte, _ string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
