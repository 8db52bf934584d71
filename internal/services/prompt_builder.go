// internal/services/prompt_builder.go
package services

import (
	"fmt"
	"strings"

	"github.com/richiewg3/DreamWeaver/internal/llm"
	"github.com/richiewg3/DreamWeaver/internal/models"
)

// SystemInstruction is the fixed system-level instruction sent with
// every generation call. It pins the structured output format
// (cinematic paragraph, staging details, micro-details), makes attire
// description mandatory and forbids identifying characters by name
// rather than visual description.
const SystemInstruction = `You are a Prompt Engineer specializing in creating detailed, cinematic AI art prompts.

Your task is to analyze provided images for visual details WITHOUT using character names - describe them by their visual appearance, clothing, features, and distinguishing characteristics instead.

## CRITICAL CHARACTER DESCRIPTION REQUIREMENTS:
When describing characters, you MUST include COMPLETE and DETAILED descriptions of:
1. **Full Outfit Description**: Describe EVERY piece of clothing visible - shirts, pants/skirts, jackets, coats, shoes, accessories, jewelry, hats, belts, etc. Be specific about colors, materials, patterns, and style.
2. **Physical Appearance**: Hair color, style, length, skin tone, eye color, facial features, body type, approximate age.
3. **Distinguishing Features**: Scars, tattoos, makeup, facial hair, glasses, unique accessories.

IMPORTANT: Do NOT assume or guess outfit details. If an outfit override is provided, use THAT description. Otherwise, describe EXACTLY what you see in the reference images. Maintain outfit consistency - the same character should wear the same clothes unless an override is specified.

Combine the visual analysis with the Story Context and Beat Action to create a comprehensive scene prompt.

## CINEMATOGRAPHY INSTRUCTIONS:
If specific shot type, camera angle, or lighting options are provided, you MUST use those exact specifications. Do not deviate from user-specified cinematography choices. If not specified, choose appropriate options that serve the scene.

Output your response in this EXACT structured format:

## Cinematic Paragraph
[Write a flowing, evocative paragraph that captures the scene's mood, atmosphere, lighting, and emotional tone. ALWAYS include complete character outfit descriptions in this paragraph. Describe the setting, character positions, and overall composition as if describing a film still. Use rich sensory details and cinematic language.]

## Staging Details
- **Camera Angle:** [Use the specified angle, or describe the perspective - low angle, high angle, Dutch angle, eye-level, bird's eye, etc.]
- **Shot Type:** [Use the specified shot type, or choose appropriately - Wide shot, medium shot, close-up, extreme close-up, over-the-shoulder, etc.]
- **Lighting:** [Use the specified lighting, or describe light sources, quality, direction, color temperature, shadows]
- **Character Positions:** [Where each figure is placed in the frame, their poses, gestures]
- **Character Attire:** [DETAILED description of what each character is wearing - be thorough and specific]
- **Background Elements:** [Key environmental details visible in the scene]
- **Foreground Elements:** [Objects or elements in the immediate foreground]

## Micro-Details
- **Textures:** [Specific material textures visible - fabric, skin, metal, wood, etc. Include clothing fabric textures]
- **Color Palette:** [Dominant colors, accent colors, color harmony - include character outfit colors]
- **Atmospheric Effects:** [Dust particles, fog, lens flare, bokeh, rain, etc.]
- **Time of Day:** [Specific lighting condition suggesting time]
- **Mood Indicators:** [Small details that reinforce the emotional tone]
- **Style Reference:** [Suggested art style, artist references, or visual influences]

Remember: Be specific and visual. Paint a picture with words that an AI image generator can interpret into a stunning visual. NEVER omit clothing/outfit details.`

// BuildGenerationRequest composes the request for one beat from the
// story context, the selected asset subsets and the beat's authoring
// fields. Pure and deterministic: the same inputs always produce the
// same request, with no clock or id generation inside the payload.
//
// Empty cinematography fields are omitted entirely rather than sent as
// "Auto"; when at least one is set, the request carries the explicit
// must-use-exactly instruction. The text block always precedes every
// image attachment; character images come before location images, each
// in collection order.
func BuildGenerationRequest(storyContext string, characters, locations []models.Asset, beat models.Beat) llm.GenerationRequest {
	shotType := models.OptionLabel(models.ShotTypes, beat.ShotType)
	cameraAngle := models.OptionLabel(models.CameraAngles, beat.CameraAngle)
	lighting := models.OptionLabel(models.LightingPresets, beat.Lighting)

	var b strings.Builder

	b.WriteString("## Story Context\n")
	if storyContext != "" {
		b.WriteString(storyContext)
	} else {
		b.WriteString("No story context provided.")
	}
	b.WriteString("\n\n")

	b.WriteString("## Beat Action\n")
	if beat.Action != "" {
		b.WriteString(beat.Action)
	} else {
		b.WriteString("No specific action provided.")
	}
	b.WriteString("\n\n")

	if shotType != "" || cameraAngle != "" || lighting != "" {
		b.WriteString("## Cinematography Specifications (MUST USE THESE EXACTLY)\n")
		if shotType != "" {
			fmt.Fprintf(&b, "- **Shot Type:** %s\n", shotType)
		}
		if cameraAngle != "" {
			fmt.Fprintf(&b, "- **Camera Angle:** %s\n", cameraAngle)
		}
		if lighting != "" {
			fmt.Fprintf(&b, "- **Lighting:** %s\n", lighting)
		}
		b.WriteString("\n")
	}

	if beat.OutfitOverride != "" {
		fmt.Fprintf(&b, "## Outfit Override\nThe character(s) should be wearing: %s\n\n", beat.OutfitOverride)
	}

	b.WriteString("## Reference Images\n")
	if len(characters) > 0 {
		fmt.Fprintf(&b, "Characters provided: %d character reference(s)\n", len(characters))
		b.WriteString("IMPORTANT: Describe EACH character's COMPLETE outfit in detail (all clothing items, colors, materials, accessories).\n")
		for i, char := range characters {
			fmt.Fprintf(&b, "- Reference %d: %q - describe their full appearance and every piece of clothing\n", i+1, char.Name)
		}
	}
	if len(locations) > 0 {
		fmt.Fprintf(&b, "Locations provided: %d location reference(s)\n", len(locations))
		for i, loc := range locations {
			fmt.Fprintf(&b, "- Location %d: %q\n", i+1, loc.Name)
		}
	}

	b.WriteString("\nPlease analyze all provided images and generate a comprehensive scene prompt following the structured format. Remember to include COMPLETE character outfit descriptions.")

	images := make([]llm.ImagePart, 0, len(characters)+len(locations))
	for _, asset := range characters {
		if part, ok := imagePart(asset); ok {
			images = append(images, part)
		}
	}
	for _, asset := range locations {
		if part, ok := imagePart(asset); ok {
			images = append(images, part)
		}
	}

	return llm.GenerationRequest{
		SystemInstruction: SystemInstruction,
		Text:              b.String(),
		Images:            images,
	}
}

func imagePart(asset models.Asset) (llm.ImagePart, bool) {
	mimeType, data, ok := models.SplitDataURI(asset.Image)
	if !ok {
		return llm.ImagePart{}, false
	}
	return llm.ImagePart{MIMEType: mimeType, Data: data}, true
}
