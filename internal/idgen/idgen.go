// Package idgen provides prefixed unique id generation for workspace
// entities. Ids are type-scoped ("char_", "loc_", "beat_", "story_")
// and carry a UUID suffix: wall-clock ids collide under rapid
// programmatic creation, UUIDs do not.
package idgen

import "github.com/google/uuid"

// Generator produces unique string identifiers.
type Generator func() string

// Prefixed returns a Generator that prepends prefix to a fresh UUID.
func Prefixed(prefix string) Generator {
	return func() string {
		return prefix + uuid.NewString()
	}
}

// Entity generators used across the workspace.
var (
	NewCharacterID Generator = Prefixed("char_")
	NewLocationID  Generator = Prefixed("loc_")
	NewBeatID      Generator = Prefixed("beat_")
	NewStoryID     Generator = Prefixed("story_")
)
