// Package prompt builds structured image prompts that merge an avatar
// description into a scene description.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lighting presets offered by the prompt form.
const (
	LightingCinematic  = "Cinematic"
	LightingNatural    = "Natural"
	LightingStudio     = "Studio"
	LightingCyberpunk  = "Cyberpunk (Neon)"
	LightingGoldenHour = "Golden Hour"
)

// LightingOptions lists the lighting presets in display order.
var LightingOptions = []string{
	LightingCinematic,
	LightingNatural,
	LightingStudio,
	LightingCyberpunk,
	LightingGoldenHour,
}

// NegativePrompt is attached to every template.
const NegativePrompt = "AI-skin, plastic textures, uncanny valley, cartoon, drawing, illustration, low quality, blur, pixelated, extra limbs, distorted face"

// Form holds the free-text inputs describing the avatar and the scene.
type Form struct {
	FacialFeatures string `json:"facial_features"`
	Clothing       string `json:"clothing"`
	Accessories    string `json:"accessories"`
	SceneVibe      string `json:"scene_vibe"`
	SceneElements  string `json:"scene_elements"`
	Lighting       string `json:"lighting"`
}

// Params are the sampler settings passed along with the prompt.
type Params struct {
	CFG     int    `json:"cfg"`
	Sampler string `json:"sampler"`
}

// Template is the structured prompt produced from a Form.
type Template struct {
	Title          string `json:"title"`
	PrimaryPrompt  string `json:"primary_prompt"`
	NegativePrompt string `json:"negative_prompt"`
	Params         Params `json:"params"`
}

// ValidLighting reports whether l is one of LightingOptions.
func ValidLighting(l string) bool {
	for _, opt := range LightingOptions {
		if opt == l {
			return true
		}
	}
	return false
}

// Build merges the avatar and scene descriptions of f into a Template.
// Blank fields fall back to neutral wording.
func Build(f Form) Template {
	lighting := strings.TrimSpace(f.Lighting)
	if lighting == "" {
		lighting = LightingCinematic
	}

	avatar := fmt.Sprintf("A photorealistic portrait of a character with %s, wearing %s and %s",
		orDefault(f.FacialFeatures, "distinct features"),
		orDefault(f.Clothing, "casual attire"),
		orDefault(f.Accessories, "minimal accessories"),
	)
	scene := fmt.Sprintf("situated in a %s environment featuring %s",
		orDefault(f.SceneVibe, "neutral"),
		orDefault(f.SceneElements, "background elements"),
	)
	light := fmt.Sprintf("Lighting is %s, casting a cohesive mood over both the character and the setting, ensuring seamless integration.", lighting)

	return Template{
		Title:          title(f),
		PrimaryPrompt:  fmt.Sprintf("%s. They are %s. %s", avatar, scene, light),
		NegativePrompt: NegativePrompt,
		Params: Params{
			CFG:     7,
			Sampler: "DPM++ 2M Karras",
		},
	}
}

// title is "<Tone> <Subject> Synthesis": the tone is the first word of the
// scene vibe, the subject depends on whether facial features were given.
func title(f Form) string {
	tone := "Modern"
	if vibe := strings.TrimSpace(f.SceneVibe); vibe != "" {
		tone = strings.Fields(vibe)[0]
	}
	subject := "Portrait"
	if strings.TrimSpace(f.FacialFeatures) != "" {
		subject = "Character"
	}
	return fmt.Sprintf("%s %s Synthesis", capitalize(tone), subject)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func orDefault(s, fallback string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return fallback
}

// JSON renders the template with two-space indentation.
func (t Template) JSON() (string, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshalling template: %w", err)
	}
	return string(data), nil
}
