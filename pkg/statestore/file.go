package statestore

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps all entries in a single JSON file. Every mutation rewrites
// the file synchronously; there is no concurrent writer, so a process-wide
// mutex is enough.
type FileStore struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// NewFileStore opens (or creates) the store backed by the file at path.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// First run; the file appears on the first Set.
	case err != nil:
		return nil, errors.Join(ErrPersistFailed, err)
	default:
		if err := json.Unmarshal(data, &s.values); err != nil {
			return nil, errors.Join(ErrPersistFailed, err)
		}
	}
	return s, nil
}

// Get implements Store.
func (s *FileStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

// Set implements Store, writing through to disk before returning.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return s.flushLocked()
}

// Delete implements Store.
func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.flushLocked()
}

func (s *FileStore) flushLocked() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return errors.Join(ErrPersistFailed, err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Join(ErrPersistFailed, err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return errors.Join(ErrPersistFailed, err)
	}
	return nil
}
