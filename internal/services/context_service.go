// internal/services/context_service.go
package services

import (
	"errors"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/richiewg3/DreamWeaver/internal/storage"
)

// ContextService holds the single story-context string. Edits apply to
// memory synchronously; durable writes are coalesced so a burst of
// keystrokes produces one write carrying the latest value.
type ContextService struct {
	store    *storage.FileStore
	debounce *storage.Debouncer
	log      *zap.Logger

	mu    sync.Mutex
	value string
}

// NewContextService loads the persisted context; a missing file means
// an empty string.
func NewContextService(store *storage.FileStore, debounce *storage.Debouncer, log *zap.Logger) *ContextService {
	s := &ContextService{store: store, debounce: debounce, log: log}

	value, err := store.LoadText(storage.KeyStoryContext)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("load story context failed, starting empty", zap.Error(err))
	}
	s.value = value

	return s
}

// Get returns the current story context.
func (s *ContextService) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set updates the context and schedules a coalesced durable write.
func (s *ContextService) Set(value string) {
	s.mu.Lock()
	s.value = value
	s.mu.Unlock()

	s.debounce.Schedule(storage.KeyStoryContext, func() {
		s.persist(value)
	})
}

// Replace overwrites the context and persists immediately, bypassing
// the debounce window. Used by story slot load and workspace clear.
func (s *ContextService) Replace(value string) {
	s.mu.Lock()
	s.value = value
	s.mu.Unlock()

	s.debounce.Cancel(storage.KeyStoryContext)
	s.persist(value)
}

func (s *ContextService) persist(value string) {
	if err := s.store.SaveText(storage.KeyStoryContext, value); err != nil {
		s.log.Error("persist story context failed", zap.Error(err))
	}
}
