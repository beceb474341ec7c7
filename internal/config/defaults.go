package config

import "github.com/ziadkadry99/avatar-launch/internal/carousel"

// defaultModels maps each provider to the model used when none is configured.
var defaultModels = map[ProviderType]string{
	ProviderGoogle: "imagen-3.0-generate-001",
	ProviderOpenAI: "dall-e-3",
}

// DefaultItems is the launch page's showcase: three avatar clips.
var DefaultItems = []carousel.MediaItem{
	{ID: "1", Source: "/assets/videos/avatar1.mp4", Label: "Avatar 1"},
	{ID: "2", Source: "/assets/videos/avatar2.mp4", Label: "Avatar 2"},
	{ID: "3", Source: "/assets/videos/avatar3.mp4", Label: "Avatar 3"},
}

// DefaultBackgroundPatterns are the image types picked up for the marquee.
var DefaultBackgroundPatterns = []string{"*.{png,jpg,jpeg,webp}"}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	items := make([]carousel.MediaItem, len(DefaultItems))
	copy(items, DefaultItems)
	patterns := make([]string, len(DefaultBackgroundPatterns))
	copy(patterns, DefaultBackgroundPatterns)

	return &Config{
		Server: ServerConfig{
			Port:    8080,
			DataDir: ".avatarlaunch",
		},
		Carousel: CarouselConfig{
			// Start on the middle clip.
			StartIndex: 1,
			Items:      items,
		},
		Backgrounds: BackgroundConfig{
			Dir:      "public/assets/images/bg_carousel",
			Patterns: patterns,
		},
		ImageGen: ImageGenConfig{
			Provider: ProviderGoogle,
			Model:    defaultModels[ProviderGoogle],
		},
	}
}

// DefaultModel returns the default model for provider, or "" if the
// provider is unknown.
func DefaultModel(provider ProviderType) string {
	return defaultModels[provider]
}
