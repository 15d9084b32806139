package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalFileStore writes files under a root directory and serves them
// from the /files/ route of the public base URL.
type LocalFileStore struct {
	root    string
	baseURL string
}

func NewLocalFileStore(root, baseURL string) (*LocalFileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create storage root: %v", ErrStorage, err)
	}
	return &LocalFileStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Root returns the directory files are written to, for static serving.
func (s *LocalFileStore) Root() string {
	return s.root
}

func (s *LocalFileStore) Save(ctx context.Context, key string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cleanKey, err := s.cleanKey(key)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.root, cleanKey)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("%w: create directory: %v", ErrStorage, err)
	}

	// Write to a temp file first so a failed upload never clobbers an
	// existing proof document.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("%w: create temp file: %v", ErrStorage, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: write content: %v", ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: close temp file: %v", ErrStorage, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("%w: finalize file: %v", ErrStorage, err)
	}

	return s.baseURL + "/files/" + cleanKey, nil
}

func (s *LocalFileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cleanKey, err := s.cleanKey(key)
	if err != nil {
		return err
	}

	err = os.Remove(filepath.Join(s.root, cleanKey))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: remove file: %v", ErrStorage, err)
	}
	return nil
}

// cleanKey rejects keys that would escape the storage root.
func (s *LocalFileStore) cleanKey(key string) (string, error) {
	cleaned := filepath.ToSlash(filepath.Clean("/" + key))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("%w: invalid storage key %q", ErrStorage, key)
	}
	return cleaned, nil
}
