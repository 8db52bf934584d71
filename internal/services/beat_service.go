// internal/services/beat_service.go
package services

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/richiewg3/DreamWeaver/internal/apperr"
	"github.com/richiewg3/DreamWeaver/internal/idgen"
	"github.com/richiewg3/DreamWeaver/internal/llm"
	"github.com/richiewg3/DreamWeaver/internal/models"
	"github.com/richiewg3/DreamWeaver/internal/storage"
)

// BeatService manages the ordered beat list. Text-field edits persist
// through the debounce window; structural changes and generation
// results persist immediately.
type BeatService struct {
	store    *storage.FileStore
	debounce *storage.Debouncer
	log      *zap.Logger
	newID    idgen.Generator

	mu    sync.Mutex
	beats []models.Beat
}

// NewBeatService loads persisted beats, coercing the stored shape:
// missing cinematography fields become empty strings (the zero value)
// and any in-flight flag from a previous session is cleared, since no
// request can survive a restart.
func NewBeatService(store *storage.FileStore, debounce *storage.Debouncer, log *zap.Logger) *BeatService {
	s := &BeatService{
		store:    store,
		debounce: debounce,
		log:      log,
		newID:    idgen.NewBeatID,
		beats:    []models.Beat{},
	}

	var loaded []models.Beat
	if err := store.LoadJSON(storage.KeyBeats, &loaded); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("load beats failed, starting empty", zap.Error(err))
		}
	} else if loaded != nil {
		for i := range loaded {
			loaded[i].IsGenerating = false
		}
		s.beats = loaded
	}

	return s
}

// Add appends a beat with every field empty and persists.
func (s *BeatService) Add() *models.Beat {
	s.mu.Lock()
	defer s.mu.Unlock()

	beat := models.Beat{ID: s.newID()}
	s.beats = append(s.beats, beat)
	s.persistLocked()

	return &beat
}

// UpdateField sets a single named field on the beat with that id.
// Unknown ids are silent no-ops; unknown field names and enum values
// outside the fixed option sets are validation errors. Free-text
// fields schedule a coalesced write, everything else persists
// immediately.
func (s *BeatService) UpdateField(id, field string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil
	}
	beat := &s.beats[idx]

	debounced := false
	switch field {
	case models.BeatFieldAction:
		text, err := stringValue(field, value)
		if err != nil {
			return err
		}
		beat.Action = text
		debounced = true
	case models.BeatFieldOutfitOverride:
		text, err := stringValue(field, value)
		if err != nil {
			return err
		}
		beat.OutfitOverride = text
		debounced = true
	case models.BeatFieldShotType:
		text, err := enumValue(field, value, models.ShotTypes)
		if err != nil {
			return err
		}
		beat.ShotType = text
	case models.BeatFieldCameraAngle:
		text, err := enumValue(field, value, models.CameraAngles)
		if err != nil {
			return err
		}
		beat.CameraAngle = text
	case models.BeatFieldLighting:
		text, err := enumValue(field, value, models.LightingPresets)
		if err != nil {
			return err
		}
		beat.Lighting = text
	case models.BeatFieldGeneratedPrompt:
		text, err := stringValue(field, value)
		if err != nil {
			return err
		}
		beat.GeneratedPrompt = text
	case models.BeatFieldError:
		text, err := stringValue(field, value)
		if err != nil {
			return err
		}
		beat.Error = text
	case models.BeatFieldIsGenerating:
		flag, ok := value.(bool)
		if !ok {
			return apperr.NewValidationError("field is_generating requires a boolean value")
		}
		beat.IsGenerating = flag
	default:
		return apperr.NewValidationError("unknown beat field: " + field)
	}

	if debounced {
		s.schedulePersistLocked()
	} else {
		s.persistLocked()
	}
	return nil
}

// Remove deletes the beat and persists. Silent no-op false when absent.
func (s *BeatService) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return false
	}
	s.beats = append(s.beats[:idx], s.beats[idx+1:]...)
	s.persistLocked()
	return true
}

// Get returns the beat with that id.
func (s *BeatService) Get(id string) (models.Beat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return models.Beat{}, false
	}
	return s.beats[idx], true
}

// List returns the beats in order.
func (s *BeatService) List() []models.Beat {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Beat, len(s.beats))
	copy(out, s.beats)
	return out
}

// ReplaceAll overwrites the beat list wholesale and persists. Used by
// story slot load and workspace clear. In-flight flags are dropped: a
// snapshot never contains a live request.
func (s *BeatService) ReplaceAll(beats []models.Beat) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.debounce.Cancel(storage.KeyBeats)
	s.beats = make([]models.Beat, len(beats))
	copy(s.beats, beats)
	for i := range s.beats {
		s.beats[i].IsGenerating = false
	}
	s.persistLocked()
}

// TryBeginGeneration atomically moves the beat into the in-flight
// state: clears the previous error, sets is_generating and persists.
// The second return is false when the beat does not exist; started is
// false when a request for this id is already pending, enforcing the
// at-most-one-in-flight rule via the explicit marker rather than a
// lock.
func (s *BeatService) TryBeginGeneration(id string) (beat models.Beat, started, exists bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return models.Beat{}, false, false
	}
	if s.beats[idx].IsGenerating {
		return s.beats[idx], false, true
	}

	s.beats[idx].IsGenerating = true
	s.beats[idx].Error = ""
	s.persistLocked()
	return s.beats[idx], true, true
}

// CompleteGeneration commits a generation outcome: success stores the
// prompt, failure stores the error and leaves any prior prompt
// untouched. Either way the in-flight marker clears. Committing to a
// beat deleted while the request was running is a harmless no-op.
func (s *BeatService) CompleteGeneration(id string, result llm.GenerationResult) (models.Beat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return models.Beat{}, false
	}

	beat := &s.beats[idx]
	beat.IsGenerating = false
	if result.Success {
		beat.GeneratedPrompt = result.Prompt
		beat.Error = ""
	} else {
		beat.Error = result.Error
	}
	s.persistLocked()
	return *beat, true
}

func (s *BeatService) indexLocked(id string) int {
	for i := range s.beats {
		if s.beats[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *BeatService) persistLocked() {
	s.debounce.Cancel(storage.KeyBeats)
	if err := s.store.SaveJSON(storage.KeyBeats, s.beats); err != nil {
		s.log.Error("persist beats failed", zap.Error(err))
	}
}

// schedulePersistLocked coalesces high-frequency edits into one write
// carrying the state at flush time.
func (s *BeatService) schedulePersistLocked() {
	snapshot := make([]models.Beat, len(s.beats))
	copy(snapshot, s.beats)

	s.debounce.Schedule(storage.KeyBeats, func() {
		if err := s.store.SaveJSON(storage.KeyBeats, snapshot); err != nil {
			s.log.Error("persist beats failed", zap.Error(err))
		}
	})
}

func stringValue(field string, value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", apperr.NewValidationError(fmt.Sprintf("field %s requires a string value", field))
	}
}

func enumValue(field string, value any, options []models.CinematographyOption) (string, error) {
	text, err := stringValue(field, value)
	if err != nil {
		return "", err
	}
	if !models.ValidOption(options, text) {
		return "", apperr.NewValidationError(fmt.Sprintf("invalid %s value: %s", field, text))
	}
	return text, nil
}
