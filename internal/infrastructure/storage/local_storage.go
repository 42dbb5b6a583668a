package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	catalogapp "github.com/pimify/backend/internal/application/catalog"
	"github.com/spf13/afero"
)

// Ensure LocalObjectStorage implements ObjectStorageService
var _ catalogapp.ObjectStorageService = (*LocalObjectStorage)(nil)

// LocalObjectStorage stores objects as files below a media root.
// URLs are the media URL prefix joined with the key.
type LocalObjectStorage struct {
	fs       afero.Fs
	mediaURL string
}

// NewLocalObjectStorage creates storage rooted at mediaRoot on the OS filesystem
func NewLocalObjectStorage(mediaRoot, mediaURL string) (*LocalObjectStorage, error) {
	if mediaRoot == "" {
		return nil, errors.New("media root is required")
	}
	if err := os.MkdirAll(mediaRoot, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	return NewLocalObjectStorageFs(afero.NewBasePathFs(afero.NewOsFs(), mediaRoot), mediaURL), nil
}

// NewLocalObjectStorageFs creates storage over an existing filesystem
func NewLocalObjectStorageFs(fs afero.Fs, mediaURL string) *LocalObjectStorage {
	if mediaURL == "" {
		mediaURL = "/media/"
	}
	if !strings.HasSuffix(mediaURL, "/") {
		mediaURL += "/"
	}
	return &LocalObjectStorage{fs: fs, mediaURL: mediaURL}
}

// PutObject writes body to the file at key, creating parent directories
func (s *LocalObjectStorage) PutObject(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	name, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := s.fs.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create object: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(name)
		return fmt.Errorf("failed to write object: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}
	return nil
}

// DeleteObject removes the file at key; a missing file is not an error
func (s *LocalObjectStorage) DeleteObject(_ context.Context, key string) error {
	name, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// ObjectExists checks if a file exists at key
func (s *LocalObjectStorage) ObjectExists(_ context.Context, key string) (bool, error) {
	name, err := cleanKey(key)
	if err != nil {
		return false, err
	}
	return afero.Exists(s.fs, name)
}

// URL returns the media URL of key
func (s *LocalObjectStorage) URL(_ context.Context, key string) (string, error) {
	name, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return s.mediaURL + filepath.ToSlash(name), nil
}

// Fs exposes the underlying filesystem for serving media
func (s *LocalObjectStorage) Fs() afero.Fs {
	return s.fs
}

// cleanKey rejects empty keys and keys escaping the media root
func cleanKey(key string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	cleaned := path.Clean("/" + key)[1:]
	if cleaned == "" || cleaned != strings.TrimPrefix(key, "/") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.FromSlash(cleaned), nil
}
