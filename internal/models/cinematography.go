// internal/models/cinematography.go
package models

// CinematographyOption pairs a stored enum value with its human-readable
// label. The empty value means "Auto (AI decides)" and is omitted from
// composed generation requests entirely.
type CinematographyOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ShotTypes is the fixed shot type option set, in display order.
var ShotTypes = []CinematographyOption{
	{Value: "", Label: "Auto (AI decides)"},
	{Value: "extreme_wide", Label: "Extreme Wide Shot"},
	{Value: "wide", Label: "Wide Shot"},
	{Value: "full", Label: "Full Shot"},
	{Value: "medium_wide", Label: "Medium Wide Shot"},
	{Value: "medium", Label: "Medium Shot"},
	{Value: "medium_close", Label: "Medium Close-Up"},
	{Value: "close", Label: "Close-Up"},
	{Value: "extreme_close", Label: "Extreme Close-Up"},
	{Value: "over_shoulder", Label: "Over-the-Shoulder"},
	{Value: "pov", Label: "POV Shot"},
	{Value: "two_shot", Label: "Two Shot"},
}

// CameraAngles is the fixed camera angle option set, in display order.
var CameraAngles = []CinematographyOption{
	{Value: "", Label: "Auto (AI decides)"},
	{Value: "eye_level", Label: "Eye Level"},
	{Value: "low_angle", Label: "Low Angle (heroic)"},
	{Value: "high_angle", Label: "High Angle (vulnerable)"},
	{Value: "birds_eye", Label: "Bird's Eye View"},
	{Value: "worms_eye", Label: "Worm's Eye View"},
	{Value: "dutch_angle", Label: "Dutch Angle (tilted)"},
	{Value: "profile", Label: "Profile View"},
	{Value: "three_quarter", Label: "Three-Quarter View"},
}

// LightingPresets is the fixed lighting option set, in display order.
var LightingPresets = []CinematographyOption{
	{Value: "", Label: "Auto (AI decides)"},
	{Value: "natural_daylight", Label: "Natural Daylight"},
	{Value: "golden_hour", Label: "Golden Hour"},
	{Value: "blue_hour", Label: "Blue Hour"},
	{Value: "overcast", Label: "Overcast/Soft Light"},
	{Value: "harsh_midday", Label: "Harsh Midday Sun"},
	{Value: "moonlight", Label: "Moonlight"},
	{Value: "candlelight", Label: "Candlelight/Warm Glow"},
	{Value: "neon", Label: "Neon/Cyberpunk"},
	{Value: "dramatic_shadows", Label: "Dramatic Shadows (Noir)"},
	{Value: "backlit", Label: "Backlit/Silhouette"},
	{Value: "rim_light", Label: "Rim Lighting"},
	{Value: "studio_soft", Label: "Studio Soft Box"},
	{Value: "firelight", Label: "Firelight"},
	{Value: "stormy", Label: "Stormy/Dark Atmospheric"},
}

// OptionLabel resolves an enum value to its label within an option set.
// The empty value resolves to "" rather than "Auto" so callers can omit
// unspecified fields.
func OptionLabel(options []CinematographyOption, value string) string {
	if value == "" {
		return ""
	}
	for _, opt := range options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return ""
}

// ValidOption reports whether value is the empty value or a member of
// the option set.
func ValidOption(options []CinematographyOption, value string) bool {
	if value == "" {
		return true
	}
	return OptionLabel(options, value) != ""
}
