// internal/storage/file_store.go
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Durable storage keys. Each key maps to one file under the store's
// base directory.
const (
	KeyCharacters     = "characters"
	KeyLocations      = "locations"
	KeyStoryContext   = "story_context"
	KeyBeats          = "beats"
	KeySavedStories   = "saved_stories"
	KeyCurrentStoryID = "current_story_id"
)

// FileStore persists workspace state as one file per key. Writes are
// atomic (temp file + rename) and guarded by a per-key lock so a
// debounced flush and a direct save never interleave on the same file.
type FileStore struct {
	baseDir  string
	keyLocks sync.Map // key -> *sync.Mutex
}

// NewFileStore creates the base directory if needed.
func NewFileStore(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) lockFor(key string) *sync.Mutex {
	value, _ := s.keyLocks.LoadOrStore(key, &sync.Mutex{})
	return value.(*sync.Mutex)
}

func (s *FileStore) write(path string, content []byte) error {
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, content, 0644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("replace file: %w", err)
	}
	return nil
}

// SaveJSON persists v under key as indented JSON.
func (s *FileStore) SaveJSON(key string, v any) error {
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	lock := s.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	return s.write(filepath.Join(s.baseDir, key+".json"), content)
}

// LoadJSON reads key into v. A missing file satisfies
// errors.Is(err, os.ErrNotExist); callers treat that as empty state.
func (s *FileStore) LoadJSON(key string, v any) error {
	lock := s.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	content, err := os.ReadFile(filepath.Join(s.baseDir, key+".json"))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	return nil
}

// SaveText persists a raw string value under key.
func (s *FileStore) SaveText(key, value string) error {
	lock := s.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	return s.write(filepath.Join(s.baseDir, key+".txt"), []byte(value))
}

// LoadText reads a raw string value. A missing file satisfies
// errors.Is(err, os.ErrNotExist).
func (s *FileStore) LoadText(key string) (string, error) {
	lock := s.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	content, err := os.ReadFile(filepath.Join(s.baseDir, key+".txt"))
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// Delete removes the value stored under key. Removing an absent key is
// a no-op.
func (s *FileStore) Delete(key string) error {
	lock := s.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	for _, ext := range []string{".json", ".txt"} {
		if err := os.Remove(filepath.Join(s.baseDir, key+ext)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return nil
}
