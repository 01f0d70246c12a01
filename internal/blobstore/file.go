package blobstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"bloodcorner/internal/domain"
)

// FileStore keeps one file per key under a base directory. It is the default
// backend: a local, single-writer blob store with a fixed byte budget,
// matching the quota behavior of the browser storage it replaces.
type FileStore struct {
	basePath   string
	quotaBytes int64
}

// NewFileStore initializes a FileStore rooted at basePath. quotaBytes caps
// the total size of all stored blobs; zero means unlimited.
func NewFileStore(basePath string, quotaBytes int64) (*FileStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("blobstore: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("blobstore: ensure base path: %w", err)
	}
	return &FileStore{basePath: basePath, quotaBytes: quotaBytes}, nil
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("blobstore: read %s: %w", key, err)
	}
	return data, nil
}

// Put writes the blob through a temp file and renames it into place, so a
// failed write never clobbers the previous snapshot.
func (s *FileStore) Put(ctx context.Context, key string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if s.quotaBytes > 0 {
		used, err := s.usedExcept(path)
		if err != nil {
			return err
		}
		if used+int64(len(blob)) > s.quotaBytes {
			return fmt.Errorf("blobstore: put %s (%d bytes): %w", key, len(blob), domain.ErrQuotaExceeded)
		}
	}
	tmp, err := os.CreateTemp(s.basePath, ".put-*")
	if err != nil {
		return fmt.Errorf("blobstore: create temp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		if errors.Is(err, syscall.ENOSPC) {
			return fmt.Errorf("blobstore: put %s: %w", key, domain.ErrQuotaExceeded)
		}
		return fmt.Errorf("blobstore: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("blobstore: close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("blobstore: replace %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// usedExcept sums the size of all stored blobs other than the one being
// replaced, so rewriting a key only charges its new size against the quota.
func (s *FileStore) usedExcept(replacing string) (int64, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return 0, fmt.Errorf("blobstore: scan base path: %w", err)
	}
	var used int64
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".put-") {
			continue
		}
		full := filepath.Join(s.basePath, entry.Name())
		if full == replacing {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		used += info.Size()
	}
	return used, nil
}

// path maps a key to a file, rejecting anything that would escape the base
// directory.
func (s *FileStore) path(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("blobstore: key is required")
	}
	cleaned := filepath.Clean(key)
	if cleaned != key || strings.ContainsAny(cleaned, "/\\") || cleaned == "." || cleaned == ".." {
		return "", fmt.Errorf("blobstore: invalid key %q", key)
	}
	return filepath.Join(s.basePath, cleaned), nil
}
