// internal/services/asset_service.go
package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/richiewg3/DreamWeaver/internal/apperr"
	"github.com/richiewg3/DreamWeaver/internal/idgen"
	"github.com/richiewg3/DreamWeaver/internal/models"
	"github.com/richiewg3/DreamWeaver/internal/storage"
)

// AssetService manages one asset namespace (characters or locations):
// an ordered, persisted collection of named image references. The same
// implementation is instantiated once per kind.
type AssetService struct {
	kind  models.AssetKind
	store *storage.FileStore
	log   *zap.Logger
	newID idgen.Generator

	mu     sync.Mutex
	assets []models.Asset
}

// NewAssetService loads the namespace from durable storage. A missing
// file means an empty collection; a corrupt file is logged and treated
// as empty rather than failing startup.
func NewAssetService(kind models.AssetKind, store *storage.FileStore, log *zap.Logger) *AssetService {
	newID := idgen.NewCharacterID
	if kind == models.AssetKindLocation {
		newID = idgen.NewLocationID
	}

	s := &AssetService{
		kind:   kind,
		store:  store,
		log:    log,
		newID:  newID,
		assets: []models.Asset{},
	}

	var loaded []models.Asset
	if err := store.LoadJSON(kind.StorageKey(), &loaded); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("load assets failed, starting empty",
				zap.String("kind", string(kind)), zap.Error(err))
		}
	} else if loaded != nil {
		s.assets = loaded
	}

	return s
}

// Kind returns the namespace this service manages.
func (s *AssetService) Kind() models.AssetKind {
	return s.kind
}

// Add encodes imageBytes into a data URI payload, assigns a fresh id
// and timestamp, appends the asset and persists. An input that does not
// sniff as an image fails with an encoding error and creates nothing.
func (s *AssetService) Add(imageBytes []byte, suggestedName string) (*models.Asset, error) {
	mimeType, err := sniffImageType(imageBytes)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(suggestedName)
	if name == "" {
		name = fmt.Sprintf("%s %d", s.kind.DisplayName(), len(s.assets)+1)
	}

	asset := models.Asset{
		ID:        s.newID(),
		Name:      name,
		Image:     models.EncodeDataURI(mimeType, imageBytes),
		CreatedAt: time.Now().UTC(),
	}
	s.assets = append(s.assets, asset)
	s.persistLocked()

	return &asset, nil
}

// Remove deletes the asset with that id and persists. Removing an
// absent id is a silent no-op reported as false. Callers that track
// selection sets must evict the id as well; WorkspaceService couples
// the two.
func (s *AssetService) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, asset := range s.assets {
		if asset.ID == id {
			s.assets = append(s.assets[:i], s.assets[i+1:]...)
			s.persistLocked()
			return true
		}
	}
	return false
}

// Rename replaces the display name in place and persists. No-op false
// when the id is absent.
func (s *AssetService) Rename(id, newName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.assets {
		if s.assets[i].ID == id {
			s.assets[i].Name = newName
			s.persistLocked()
			return true
		}
	}
	return false
}

// Get returns the asset with that id.
func (s *AssetService) Get(id string) (models.Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, asset := range s.assets {
		if asset.ID == id {
			return asset, true
		}
	}
	return models.Asset{}, false
}

// List returns the collection in insertion order.
func (s *AssetService) List() []models.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Asset, len(s.assets))
	copy(out, s.assets)
	return out
}

// ReplaceAll overwrites the collection wholesale and persists. Used by
// story slot load and workspace clear.
func (s *AssetService) ReplaceAll(assets []models.Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.assets = make([]models.Asset, len(assets))
	copy(s.assets, assets)
	s.persistLocked()
}

// persistLocked writes the collection through best-effort: a failed
// write is logged and swallowed, the in-memory state stays
// authoritative for the session.
func (s *AssetService) persistLocked() {
	if err := s.store.SaveJSON(s.kind.StorageKey(), s.assets); err != nil {
		s.log.Error("persist assets failed",
			zap.String("kind", string(s.kind)), zap.Error(err))
	}
}

// sniffImageType detects the payload's MIME type from its leading
// bytes and rejects anything that is not an image stream.
func sniffImageType(data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperr.NewEncodingError("image payload is empty", nil)
	}
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", apperr.NewEncodingError("payload is not a readable image stream", nil)
	}
	return mimeType, nil
}
