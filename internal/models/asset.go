// internal/models/asset.go
package models

import "time"

// AssetKind distinguishes the two asset namespaces.
type AssetKind string

const (
	AssetKindCharacter AssetKind = "character"
	AssetKindLocation  AssetKind = "location"
)

// IDPrefix returns the id prefix used for assets of this kind.
func (k AssetKind) IDPrefix() string {
	if k == AssetKindLocation {
		return "loc_"
	}
	return "char_"
}

// DisplayName returns the capitalized kind used for default names.
func (k AssetKind) DisplayName() string {
	if k == AssetKindLocation {
		return "Location"
	}
	return "Character"
}

// StorageKey returns the durable storage key for this namespace.
func (k AssetKind) StorageKey() string {
	if k == AssetKindLocation {
		return "locations"
	}
	return "characters"
}

// Asset is a named image reference usable as a character or location
// visual anchor. Image is a self-describing data URI; it is immutable
// after creation, as are ID and CreatedAt.
type Asset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}
