// internal/services/workspace_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/richiewg3/DreamWeaver/internal/models"
	"github.com/richiewg3/DreamWeaver/internal/storage"
)

func newTestWorkspace(t *testing.T) *WorkspaceService {
	t.Helper()
	return NewWorkspaceService(newTestStore(t), storage.NewDebouncer(10*time.Millisecond), zap.NewNop())
}

func TestWorkspaceSelection(t *testing.T) {
	ws := newTestWorkspace(t)

	a, _ := ws.Characters.Add(pngBytes, "Mira")
	b, _ := ws.Characters.Add(pngBytes, "Joss")

	assert.True(t, ws.Select(models.AssetKindCharacter, a.ID))
	assert.True(t, ws.Select(models.AssetKindCharacter, b.ID))
	assert.True(t, ws.Select(models.AssetKindCharacter, a.ID), "re-selecting is idempotent")
	assert.False(t, ws.Select(models.AssetKindCharacter, "char_missing"))

	assert.Equal(t, []string{a.ID, b.ID}, ws.SelectedIDs(models.AssetKindCharacter),
		"selection reported in collection insertion order")

	ws.Deselect(models.AssetKindCharacter, a.ID)
	ws.Deselect(models.AssetKindCharacter, a.ID)
	assert.Equal(t, []string{b.ID}, ws.SelectedIDs(models.AssetKindCharacter))
}

func TestWorkspaceSelectionsAreIndependentPerKind(t *testing.T) {
	ws := newTestWorkspace(t)

	c, _ := ws.Characters.Add(pngBytes, "Mira")
	l, _ := ws.Locations.Add(jpegBytes, "Harbor")

	ws.Select(models.AssetKindCharacter, c.ID)
	ws.Select(models.AssetKindLocation, l.ID)

	assert.Equal(t, []string{c.ID}, ws.SelectedIDs(models.AssetKindCharacter))
	assert.Equal(t, []string{l.ID}, ws.SelectedIDs(models.AssetKindLocation))
}

func TestWorkspaceRemoveAssetEvictsSelection(t *testing.T) {
	ws := newTestWorkspace(t)

	a, _ := ws.Characters.Add(pngBytes, "Mira")
	ws.Select(models.AssetKindCharacter, a.ID)

	require.True(t, ws.RemoveAsset(models.AssetKindCharacter, a.ID))

	assert.Empty(t, ws.SelectedIDs(models.AssetKindCharacter))
	assert.Empty(t, ws.Characters.List())
}

func TestWorkspaceSnapshotIsDeepCopy(t *testing.T) {
	ws := newTestWorkspace(t)

	ws.Characters.Add(pngBytes, "Mira")
	ws.Context.Set("act one")
	beat := ws.Beats.Add()
	ws.Beats.UpdateField(beat.ID, models.BeatFieldAction, "she arrives")

	snap := ws.Snapshot()

	ws.Beats.UpdateField(beat.ID, models.BeatFieldAction, "changed after snapshot")
	ws.Characters.Rename(ws.Characters.List()[0].ID, "Renamed")

	require.Len(t, snap.Beats, 1)
	assert.Equal(t, "she arrives", snap.Beats[0].Action)
	assert.Equal(t, "Mira", snap.Characters[0].Name)
	assert.Equal(t, "act one", snap.StoryContext)
}

func TestWorkspaceRestore(t *testing.T) {
	ws := newTestWorkspace(t)

	a, _ := ws.Characters.Add(pngBytes, "Old")
	ws.Select(models.AssetKindCharacter, a.ID)
	ws.Context.Set("old context")
	ws.Beats.Add()

	ws.Restore(models.StoryData{
		Characters:   []models.Asset{{ID: "char_new", Name: "New", Image: models.EncodeDataURI("image/png", pngBytes)}},
		StoryContext: "new context",
		Beats:        []models.Beat{{ID: "beat_new", Action: "restored"}},
	})

	require.Len(t, ws.Characters.List(), 1)
	assert.Equal(t, "char_new", ws.Characters.List()[0].ID)
	assert.Equal(t, "new context", ws.Context.Get())
	require.Len(t, ws.Beats.List(), 1)
	assert.Equal(t, "restored", ws.Beats.List()[0].Action)
	assert.Empty(t, ws.SelectedIDs(models.AssetKindCharacter), "restore resets selections")
}

func TestWorkspaceClear(t *testing.T) {
	ws := newTestWorkspace(t)

	ws.Characters.Add(pngBytes, "Mira")
	ws.Locations.Add(jpegBytes, "Harbor")
	ws.Context.Set("context")
	ws.Beats.Add()

	ws.Clear()

	assert.Empty(t, ws.Characters.List())
	assert.Empty(t, ws.Locations.List())
	assert.Empty(t, ws.Context.Get())
	assert.Empty(t, ws.Beats.List())
}

func TestContextDebouncedPersistence(t *testing.T) {
	store := newTestStore(t)
	debounce := storage.NewDebouncer(15 * time.Millisecond)
	svc := NewContextService(store, debounce, zap.NewNop())

	svc.Set("f")
	svc.Set("fi")
	svc.Set("final")

	assert.Equal(t, "final", svc.Get(), "memory reflects the edit immediately")

	time.Sleep(60 * time.Millisecond)

	reloaded := NewContextService(store, storage.NewDebouncer(time.Second), zap.NewNop())
	assert.Equal(t, "final", reloaded.Get(), "only the latest value of the burst is written")
}

func TestContextReplaceBypassesDebounce(t *testing.T) {
	store := newTestStore(t)
	debounce := storage.NewDebouncer(time.Hour)
	svc := NewContextService(store, debounce, zap.NewNop())

	svc.Set("typed but not yet flushed")
	svc.Replace("loaded from slot")

	reloaded := NewContextService(store, storage.NewDebouncer(time.Second), zap.NewNop())
	assert.Equal(t, "loaded from slot", reloaded.Get())

	// The discarded debounced write must not resurface.
	debounce.FlushAll()
	reloaded = NewContextService(store, storage.NewDebouncer(time.Second), zap.NewNop())
	assert.Equal(t, "loaded from slot", reloaded.Get())
}
