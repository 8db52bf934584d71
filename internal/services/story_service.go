// internal/services/story_service.go
package services

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/richiewg3/DreamWeaver/internal/idgen"
	"github.com/richiewg3/DreamWeaver/internal/models"
	"github.com/richiewg3/DreamWeaver/internal/storage"
)

// StoryService owns the durable collection of named workspace
// snapshots and the pointer to the slot the workspace was last saved
// to or loaded from. It never talks to the generation client.
type StoryService struct {
	store     *storage.FileStore
	workspace *WorkspaceService
	log       *zap.Logger
	newID     idgen.Generator

	mu        sync.Mutex
	slots     []models.StorySlot
	currentID string
}

// NewStoryService loads the saved slots and the current pointer. A
// pointer naming a slot that no longer exists is dropped.
func NewStoryService(store *storage.FileStore, workspace *WorkspaceService, log *zap.Logger) *StoryService {
	s := &StoryService{
		store:     store,
		workspace: workspace,
		log:       log,
		newID:     idgen.NewStoryID,
		slots:     []models.StorySlot{},
	}

	var loaded []models.StorySlot
	if err := store.LoadJSON(storage.KeySavedStories, &loaded); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("load saved stories failed, starting empty", zap.Error(err))
		}
	} else if loaded != nil {
		for i := range loaded {
			loaded[i].Data.Normalize()
		}
		s.slots = loaded
	}

	currentID, err := store.LoadText(storage.KeyCurrentStoryID)
	if err == nil && s.indexLocked(currentID) >= 0 {
		s.currentID = currentID
	}

	return s
}

// Save snapshots the live workspace into a slot and marks it current.
// When existingID names a known slot its data and name are overwritten
// and updated_at bumped; otherwise (including a stale existingID) a
// new slot is created. Returns the saved slot.
func (s *StoryService) Save(name, existingID string) models.StorySlot {
	data := s.workspace.Snapshot()
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	if existingID != "" {
		if idx := s.indexLocked(existingID); idx >= 0 {
			s.slots[idx].Name = name
			s.slots[idx].Data = data
			s.slots[idx].UpdatedAt = now
			s.currentID = existingID
			s.persistLocked()
			return s.slots[idx]
		}
	}

	if strings.TrimSpace(name) == "" {
		name = fmt.Sprintf("Untitled Story %d", len(s.slots)+1)
	}
	slot := models.StorySlot{
		ID:        s.newID(),
		Name:      name,
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.slots = append(s.slots, slot)
	s.currentID = slot.ID
	s.persistLocked()
	return slot
}

// List returns slot metadata in insertion order. Not sorted by
// recency; the authoring surface shows slots in the order they were
// first saved.
func (s *StoryService) List() []models.StorySlotMeta {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.StorySlotMeta, len(s.slots))
	for i, slot := range s.slots {
		out[i] = slot.Meta()
	}
	return out
}

// Load overwrites the live workspace with the slot's snapshot, clears
// both selection sets and marks the slot current. Returns false and
// leaves the workspace untouched when the id is unknown.
func (s *StoryService) Load(id string) bool {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	data := s.slots[idx].Data.Clone()
	s.currentID = id
	s.persistCurrentLocked()
	s.mu.Unlock()

	s.workspace.Restore(data)
	return true
}

// Delete removes a slot. Deleting the current slot clears only the
// current pointer; the live workspace is left as-is. Idempotent.
func (s *StoryService) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return false
	}
	s.slots = append(s.slots[:idx], s.slots[idx+1:]...)
	if s.currentID == id {
		s.currentID = ""
	}
	s.persistLocked()
	return true
}

// Rename updates a slot's display name and bumps updated_at. No-op
// false when absent.
func (s *StoryService) Rename(id, newName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return false
	}
	s.slots[idx].Name = newName
	s.slots[idx].UpdatedAt = time.Now().UTC()
	s.persistLocked()
	return true
}

// StartNew clears the live workspace and the current pointer. The
// saved-slot collection is untouched.
func (s *StoryService) StartNew() {
	s.mu.Lock()
	s.currentID = ""
	s.persistCurrentLocked()
	s.mu.Unlock()

	s.workspace.Clear()
}

// CurrentID returns the id of the current slot, or "" when the
// workspace is not tied to a saved story.
func (s *StoryService) CurrentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

func (s *StoryService) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.slots {
		if s.slots[i].ID == id {
			return i
		}
	}
	return -1
}

// persistLocked writes both the slot collection and the current
// pointer; best-effort, failures are logged and swallowed.
func (s *StoryService) persistLocked() {
	if err := s.store.SaveJSON(storage.KeySavedStories, s.slots); err != nil {
		s.log.Error("persist saved stories failed", zap.Error(err))
	}
	s.persistCurrentLocked()
}

func (s *StoryService) persistCurrentLocked() {
	var err error
	if s.currentID == "" {
		err = s.store.Delete(storage.KeyCurrentStoryID)
	} else {
		err = s.store.SaveText(storage.KeyCurrentStoryID, s.currentID)
	}
	if err != nil {
		s.log.Error("persist current story id failed", zap.Error(err))
	}
}
