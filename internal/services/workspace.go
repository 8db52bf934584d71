// internal/services/workspace.go
package services

import (
	"sync"

	"go.uber.org/zap"

	"github.com/richiewg3/DreamWeaver/internal/models"
	"github.com/richiewg3/DreamWeaver/internal/storage"
)

// WorkspaceService is the live, currently-edited document: the two
// asset namespaces, the story context and the beat list, plus the two
// session-scoped selection sets. It is constructed once at startup and
// injected wherever workspace state is needed; there is no global
// instance. It also couples asset removal to selection eviction, the
// invariant the stores themselves do not enforce.
type WorkspaceService struct {
	Characters *AssetService
	Locations  *AssetService
	Context    *ContextService
	Beats      *BeatService

	log *zap.Logger

	mu                 sync.Mutex
	selectedCharacters map[string]struct{}
	selectedLocations  map[string]struct{}
}

// NewWorkspaceService builds the workspace root over freshly loaded
// stores. Selection sets start empty; they are never persisted.
func NewWorkspaceService(store *storage.FileStore, debounce *storage.Debouncer, log *zap.Logger) *WorkspaceService {
	return &WorkspaceService{
		Characters:         NewAssetService(models.AssetKindCharacter, store, log),
		Locations:          NewAssetService(models.AssetKindLocation, store, log),
		Context:            NewContextService(store, debounce, log),
		Beats:              NewBeatService(store, debounce, log),
		log:                log,
		selectedCharacters: make(map[string]struct{}),
		selectedLocations:  make(map[string]struct{}),
	}
}

// assetsFor resolves a namespace to its service and selection set.
// Callers must hold w.mu when touching the returned map.
func (w *WorkspaceService) assetsFor(kind models.AssetKind) (*AssetService, map[string]struct{}) {
	if kind == models.AssetKindLocation {
		return w.Locations, w.selectedLocations
	}
	return w.Characters, w.selectedCharacters
}

// Select adds an asset id to its namespace's selection set. Selecting
// an id that is not in the collection reports false and changes
// nothing.
func (w *WorkspaceService) Select(kind models.AssetKind, id string) bool {
	svc, _ := w.assetsFor(kind)
	if _, ok := svc.Get(id); !ok {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	_, selection := w.assetsFor(kind)
	selection[id] = struct{}{}
	return true
}

// Deselect removes an asset id from its selection set. Idempotent.
func (w *WorkspaceService) Deselect(kind models.AssetKind, id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, selection := w.assetsFor(kind)
	delete(selection, id)
}

// RemoveAsset deletes an asset and evicts it from the matching
// selection set in one operation.
func (w *WorkspaceService) RemoveAsset(kind models.AssetKind, id string) bool {
	w.mu.Lock()
	_, selection := w.assetsFor(kind)
	delete(selection, id)
	w.mu.Unlock()

	svc, _ := w.assetsFor(kind)
	return svc.Remove(id)
}

// SelectedIDs returns the selection set for a namespace in the
// collection's insertion order.
func (w *WorkspaceService) SelectedIDs(kind models.AssetKind) []string {
	assets := w.SelectedAssets(kind)
	ids := make([]string, len(assets))
	for i, a := range assets {
		ids[i] = a.ID
	}
	return ids
}

// SelectedAssets returns the selected assets of a namespace in the
// collection's insertion order.
func (w *WorkspaceService) SelectedAssets(kind models.AssetKind) []models.Asset {
	svc, _ := w.assetsFor(kind)
	all := svc.List()

	w.mu.Lock()
	defer w.mu.Unlock()
	_, selection := w.assetsFor(kind)

	out := make([]models.Asset, 0, len(selection))
	for _, asset := range all {
		if _, ok := selection[asset.ID]; ok {
			out = append(out, asset)
		}
	}
	return out
}

// ClearSelections empties both selection sets.
func (w *WorkspaceService) ClearSelections() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selectedCharacters = make(map[string]struct{})
	w.selectedLocations = make(map[string]struct{})
}

// Snapshot returns a deep value copy of the workspace document,
// suitable for embedding in a story slot. Selection sets are not part
// of the document.
func (w *WorkspaceService) Snapshot() models.StoryData {
	data := models.StoryData{
		Characters:   w.Characters.List(),
		Locations:    w.Locations.List(),
		StoryContext: w.Context.Get(),
		Beats:        w.Beats.List(),
	}
	return data.Clone()
}

// Restore overwrites the live document wholesale with a snapshot and
// resets both selection sets.
func (w *WorkspaceService) Restore(data models.StoryData) {
	data.Normalize()
	w.Characters.ReplaceAll(data.Characters)
	w.Locations.ReplaceAll(data.Locations)
	w.Context.Replace(data.StoryContext)
	w.Beats.ReplaceAll(data.Beats)
	w.ClearSelections()
}

// Clear empties the live document and both selection sets. Saved story
// slots are untouched; that bookkeeping belongs to StoryService.
func (w *WorkspaceService) Clear() {
	w.Restore(models.StoryData{})
}
