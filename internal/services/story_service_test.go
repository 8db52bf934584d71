// internal/services/story_service_test.go
package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/richiewg3/DreamWeaver/internal/models"
	"github.com/richiewg3/DreamWeaver/internal/storage"
)

func newTestStoryService(t *testing.T) (*StoryService, *WorkspaceService) {
	t.Helper()
	store := newTestStore(t)
	ws := NewWorkspaceService(store, storage.NewDebouncer(10*time.Millisecond), zap.NewNop())
	return NewStoryService(store, ws, zap.NewNop()), ws
}

func TestStorySaveCreatesSlotAndMarksCurrent(t *testing.T) {
	svc, ws := newTestStoryService(t)

	ws.Context.Set("act one")
	slot := svc.Save("First Draft", "")

	assert.True(t, strings.HasPrefix(slot.ID, "story_"))
	assert.Equal(t, "First Draft", slot.Name)
	assert.Equal(t, "act one", slot.Data.StoryContext)
	assert.Equal(t, slot.ID, svc.CurrentID())
	assert.False(t, slot.CreatedAt.IsZero())
}

func TestStorySaveDefaultNames(t *testing.T) {
	svc, _ := newTestStoryService(t)

	first := svc.Save("", "")
	second := svc.Save("   ", "")

	assert.Equal(t, "Untitled Story 1", first.Name)
	assert.Equal(t, "Untitled Story 2", second.Name)
}

func TestStorySaveOverwritesExistingSlot(t *testing.T) {
	svc, ws := newTestStoryService(t)

	ws.Context.Set("before")
	slot := svc.Save("Draft", "")

	ws.Context.Replace("after")
	updated := svc.Save("Draft v2", slot.ID)

	assert.Equal(t, slot.ID, updated.ID)
	assert.Equal(t, "Draft v2", updated.Name)
	assert.Equal(t, "after", updated.Data.StoryContext)
	assert.Len(t, svc.List(), 1)
	assert.True(t, updated.UpdatedAt.After(slot.UpdatedAt) || updated.UpdatedAt.Equal(slot.UpdatedAt))
}

func TestStorySaveStaleExistingIDCreatesNewSlot(t *testing.T) {
	svc, _ := newTestStoryService(t)

	slot := svc.Save("Kept", "story_never_existed")

	assert.NotEqual(t, "story_never_existed", slot.ID)
	assert.Len(t, svc.List(), 1)
	assert.Equal(t, slot.ID, svc.CurrentID())
}

func TestStoryLoadRestoresWorkspace(t *testing.T) {
	svc, ws := newTestStoryService(t)

	a, _ := ws.Characters.Add(pngBytes, "Mira")
	ws.Select(models.AssetKindCharacter, a.ID)
	ws.Context.Set("saved state")
	beat := ws.Beats.Add()
	ws.Beats.UpdateField(beat.ID, models.BeatFieldAction, "she arrives")
	slot := svc.Save("Checkpoint", "")

	// Diverge, then load the checkpoint back.
	svc.StartNew()
	require.Empty(t, ws.Characters.List())

	require.True(t, svc.Load(slot.ID))

	chars := ws.Characters.List()
	require.Len(t, chars, 1)
	assert.Equal(t, a.ID, chars[0].ID)
	assert.Equal(t, "saved state", ws.Context.Get())
	require.Len(t, ws.Beats.List(), 1)
	assert.Equal(t, "she arrives", ws.Beats.List()[0].Action)
	assert.Empty(t, ws.SelectedIDs(models.AssetKindCharacter), "loading resets selections")
	assert.Equal(t, slot.ID, svc.CurrentID())
}

func TestStoryLoadUnknownIDLeavesWorkspaceUntouched(t *testing.T) {
	svc, ws := newTestStoryService(t)

	ws.Context.Set("untouched")
	assert.False(t, svc.Load("story_missing"))
	assert.Equal(t, "untouched", ws.Context.Get())
}

func TestStoryDelete(t *testing.T) {
	svc, _ := newTestStoryService(t)

	keep := svc.Save("keep", "")
	drop := svc.Save("drop", "")
	require.Equal(t, drop.ID, svc.CurrentID())

	assert.True(t, svc.Delete(drop.ID))
	assert.False(t, svc.Delete(drop.ID), "deleting twice is a no-op")

	assert.Empty(t, svc.CurrentID(), "deleting the current slot clears the pointer")

	metas := svc.List()
	require.Len(t, metas, 1)
	assert.Equal(t, keep.ID, metas[0].ID)
}

func TestStoryDeleteNonCurrentKeepsPointer(t *testing.T) {
	svc, _ := newTestStoryService(t)

	old := svc.Save("old", "")
	current := svc.Save("current", "")

	svc.Delete(old.ID)
	assert.Equal(t, current.ID, svc.CurrentID())
}

func TestStoryRename(t *testing.T) {
	svc, _ := newTestStoryService(t)

	slot := svc.Save("before", "")
	assert.True(t, svc.Rename(slot.ID, "after"))
	assert.False(t, svc.Rename("story_missing", "x"))

	metas := svc.List()
	require.Len(t, metas, 1)
	assert.Equal(t, "after", metas[0].Name)
}

func TestStoryStartNew(t *testing.T) {
	svc, ws := newTestStoryService(t)

	ws.Context.Set("something")
	svc.Save("kept slot", "")

	svc.StartNew()

	assert.Empty(t, svc.CurrentID())
	assert.Empty(t, ws.Context.Get())
	assert.Len(t, svc.List(), 1, "slots survive starting a new story")
}

func TestStoryPersistenceAcrossRestart(t *testing.T) {
	store := newTestStore(t)
	ws := NewWorkspaceService(store, storage.NewDebouncer(10*time.Millisecond), zap.NewNop())
	svc := NewStoryService(store, ws, zap.NewNop())

	ws.Context.Replace("persisted")
	slot := svc.Save("Durable", "")

	ws2 := NewWorkspaceService(store, storage.NewDebouncer(10*time.Millisecond), zap.NewNop())
	svc2 := NewStoryService(store, ws2, zap.NewNop())

	metas := svc2.List()
	require.Len(t, metas, 1)
	assert.Equal(t, slot.ID, metas[0].ID)
	assert.Equal(t, slot.ID, svc2.CurrentID())

	require.True(t, svc2.Load(slot.ID))
	assert.Equal(t, "persisted", ws2.Context.Get())
}

func TestStoryListOrder(t *testing.T) {
	svc, _ := newTestStoryService(t)

	a := svc.Save("a", "")
	b := svc.Save("b", "")
	c := svc.Save("c", "")

	metas := svc.List()
	require.Len(t, metas, 3)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, []string{metas[0].ID, metas[1].ID, metas[2].ID})
}
