package config

import "github.com/ziadkadry99/avatar-launch/internal/carousel"

// ProviderType identifies an image generation provider.
type ProviderType string

const (
	ProviderGoogle ProviderType = "google"
	ProviderOpenAI ProviderType = "openai"
)

// Config is the top-level avatarlaunch configuration, corresponding to .avatarlaunch.yml.
type Config struct {
	Server      ServerConfig     `yaml:"server" koanf:"server"`
	Carousel    CarouselConfig   `yaml:"carousel" koanf:"carousel"`
	Backgrounds BackgroundConfig `yaml:"backgrounds" koanf:"backgrounds"`
	ImageGen    ImageGenConfig   `yaml:"imagegen" koanf:"imagegen"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int    `yaml:"port" koanf:"port"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	DataDir         string `yaml:"data_dir" koanf:"data_dir"` // SQLite generation log lives here
}

// CarouselConfig describes the media shown in the showcase carousel.
// Items are listed first, then files under MediaDir matching Pattern.
type CarouselConfig struct {
	StartIndex int                  `yaml:"start_index" koanf:"start_index"`
	MediaDir   string               `yaml:"media_dir" koanf:"media_dir"`
	Pattern    string               `yaml:"pattern" koanf:"pattern"`
	Items      []carousel.MediaItem `yaml:"items" koanf:"items"`
}

// BackgroundConfig locates the images of the decorative background marquee.
type BackgroundConfig struct {
	Dir      string   `yaml:"dir" koanf:"dir"`
	Patterns []string `yaml:"patterns" koanf:"patterns"`
}

// ImageGenConfig selects the image generation backend.
type ImageGenConfig struct {
	Provider          ProviderType `yaml:"provider" koanf:"provider"`
	Model             string       `yaml:"model" koanf:"model"`
	BaseURL           string       `yaml:"base_url" koanf:"base_url"`
	RequestsPerMinute int          `yaml:"requests_per_minute" koanf:"requests_per_minute"`
}
