// Package fs provides a file-backed key-value store. Each key is kept in
// its own JSON file under a base directory.
package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/ldblocks"
)

// Ensure FileStore implements ldblocks.KVStore at compile time.
var _ ldblocks.KVStore = (*FileStore)(nil)

// FileStore implements ldblocks.KVStore with atomic update semantics.
// Values are written to KEY.json.tmp, then renamed over KEY.json.
type FileStore struct {
	baseDir string
}

// NewFileStore creates a new FileStore rooted at baseDir. The directory is
// created on first write.
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{baseDir: baseDir}
}

// KeyToPath converts a key to its file path under baseDir.
// Example: how_to_block → baseDir/how_to_block.json
func (s *FileStore) KeyToPath(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) || strings.ContainsRune(key, 0) {
		return "", ldblocks.Errorf(ldblocks.EINVALID, "invalid key %q", key)
	}
	return filepath.Join(s.baseDir, key+".json"), nil
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := s.KeyToPath(key)
	if err != nil {
		return nil, err
	}
	value, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ldblocks.Errorf(ldblocks.ENOTFOUND, "key %q not found", key)
	}
	return value, err
}

func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	path, err := s.KeyToPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	path, err := s.KeyToPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
