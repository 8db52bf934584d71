// internal/models/story.go
package models

import "time"

// StoryData is the value snapshot of the live workspace embedded in a
// saved story slot: assets, context and beats, never the selection sets.
type StoryData struct {
	Characters   []Asset `json:"characters"`
	Locations    []Asset `json:"locations"`
	StoryContext string  `json:"story_context"`
	Beats        []Beat  `json:"beats"`
}

// Clone returns a deep copy. Asset and Beat hold only value fields, so
// copying the backing arrays is sufficient to detach the snapshot from
// later workspace mutation.
func (d StoryData) Clone() StoryData {
	out := StoryData{
		Characters:   make([]Asset, len(d.Characters)),
		Locations:    make([]Asset, len(d.Locations)),
		StoryContext: d.StoryContext,
		Beats:        make([]Beat, len(d.Beats)),
	}
	copy(out.Characters, d.Characters)
	copy(out.Locations, d.Locations)
	copy(out.Beats, d.Beats)
	return out
}

// Normalize coerces a snapshot loaded from durable storage: nil slices
// become empty so a stored shape from an older writer never leaks nils
// into the live workspace.
func (d *StoryData) Normalize() {
	if d.Characters == nil {
		d.Characters = []Asset{}
	}
	if d.Locations == nil {
		d.Locations = []Asset{}
	}
	if d.Beats == nil {
		d.Beats = []Beat{}
	}
}

// StorySlot is a named, timestamped snapshot of the workspace. CreatedAt
// is fixed at first save; UpdatedAt is bumped on every save and rename.
type StorySlot struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Data      StoryData `json:"data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StorySlotMeta is the listing view of a slot, without the embedded data.
type StorySlotMeta struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Meta strips the snapshot payload for listing.
func (s StorySlot) Meta() StorySlotMeta {
	return StorySlotMeta{
		ID:        s.ID,
		Name:      s.Name,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
