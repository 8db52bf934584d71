// internal/models/beat.go
package models

import "strconv"

// Beat is one scene unit within a story: authoring fields plus at most
// one generation result. GeneratedPrompt and Error are empty when unset;
// IsGenerating is transient and true only while a request is in flight.
type Beat struct {
	ID              string `json:"id"`
	Action          string `json:"action"`
	OutfitOverride  string `json:"outfit_override"`
	ShotType        string `json:"shot_type"`
	CameraAngle     string `json:"camera_angle"`
	Lighting        string `json:"lighting"`
	GeneratedPrompt string `json:"generated_prompt,omitempty"`
	IsGenerating    bool   `json:"is_generating"`
	Error           string `json:"error,omitempty"`
}

// Beat field names accepted by BeatService.UpdateField. They mirror the
// wire-level JSON keys the editing surface sends.
const (
	BeatFieldAction          = "action"
	BeatFieldOutfitOverride  = "outfit_override"
	BeatFieldShotType        = "shot_type"
	BeatFieldCameraAngle     = "camera_angle"
	BeatFieldLighting        = "lighting"
	BeatFieldGeneratedPrompt = "generated_prompt"
	BeatFieldIsGenerating    = "is_generating"
	BeatFieldError           = "error"
)

const beatLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// BeatLabel returns the display label for a beat at the given position:
// A..Z for the first 26, then 0A, 0B, .. 0Z, 1A and so on. The label is
// a pure function of position and must be recomputed when order changes.
func BeatLabel(index int) string {
	if index < 0 {
		return ""
	}
	if index < len(beatLetters) {
		return string(beatLetters[index])
	}
	return strconv.Itoa(index/26-1) + string(beatLetters[index%26])
}
