package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store keeps uploaded blobs on disk under opaque uuid keys. Keys carry
// no trace of the original upload name.
type Store struct {
	root string
}

func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create root: %w", err)
	}
	return &Store{root: root}, nil
}

// Save drains r into a new blob and returns its key and size.
func (s *Store) Save(r io.Reader, ext string) (string, int64, error) {
	key := uuid.New().String() + ext
	f, err := os.Create(filepath.Join(s.root, key))
	if err != nil {
		return "", 0, err
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(filepath.Join(s.root, key))
		return "", 0, err
	}
	return key, n, nil
}

// Open returns a reader over the blob. The caller owns the handle and
// must close it when the response completes.
func (s *Store) Open(key string) (io.ReadSeekCloser, int64, error) {
	f, err := os.Open(filepath.Join(s.root, filepath.Base(key)))
	if err != nil {
		return nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, info.Size(), nil
}

func (s *Store) Remove(key string) error {
	return os.Remove(filepath.Join(s.root, filepath.Base(key)))
}
