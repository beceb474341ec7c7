package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ziadkadry99/avatar-launch/internal/carousel"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ImageGen.Provider != ProviderGoogle {
		t.Errorf("expected default provider %q, got %q", ProviderGoogle, cfg.ImageGen.Provider)
	}
	if cfg.ImageGen.Model != "imagen-3.0-generate-001" {
		t.Errorf("unexpected default model %q", cfg.ImageGen.Model)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Carousel.StartIndex != 1 {
		t.Errorf("expected start index 1, got %d", cfg.Carousel.StartIndex)
	}
	if len(cfg.Carousel.Items) != 3 {
		t.Errorf("expected 3 default items, got %d", len(cfg.Carousel.Items))
	}
	if cfg.ImageGen.RequestsPerMinute != 0 {
		t.Errorf("expected rate limiting disabled by default, got %d", cfg.ImageGen.RequestsPerMinute)
	}
}

func TestDefaultConfigDoesNotShareSlices(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Carousel.Items[0].Label = "changed"
	if DefaultItems[0].Label != "Avatar 1" {
		t.Error("DefaultConfig items alias DefaultItems")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.avatarlaunch.yml")

	original := DefaultConfig()
	original.Server.Port = 9000
	original.ImageGen.Provider = ProviderOpenAI
	original.ImageGen.Model = "dall-e-2"
	original.ImageGen.RequestsPerMinute = 30
	original.Carousel.StartIndex = 0
	original.Carousel.Items = []carousel.MediaItem{
		{ID: "a", Source: "/a.mp4", Label: "A"},
		{ID: "b", Source: "/b.mp4", Label: "B"},
	}

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Server.Port != 9000 {
		t.Errorf("port: got %d, want 9000", loaded.Server.Port)
	}
	if loaded.ImageGen.Provider != ProviderOpenAI {
		t.Errorf("provider: got %q", loaded.ImageGen.Provider)
	}
	if loaded.ImageGen.Model != "dall-e-2" {
		t.Errorf("model: got %q", loaded.ImageGen.Model)
	}
	if loaded.ImageGen.RequestsPerMinute != 30 {
		t.Errorf("rpm: got %d", loaded.ImageGen.RequestsPerMinute)
	}
	if loaded.Carousel.StartIndex != 0 {
		t.Errorf("start index: got %d", loaded.Carousel.StartIndex)
	}
	if len(loaded.Carousel.Items) != 2 {
		t.Fatalf("items length: got %d, want 2", len(loaded.Carousel.Items))
	}
	if loaded.Carousel.Items[1] != original.Carousel.Items[1] {
		t.Errorf("items[1]: got %+v, want %+v", loaded.Carousel.Items[1], original.Carousel.Items[1])
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.ImageGen.Provider != ProviderGoogle {
		t.Errorf("expected default provider, got %q", cfg.ImageGen.Provider)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("AVATARLAUNCH_IMAGEGEN__PROVIDER", "openai")
	t.Setenv("AVATARLAUNCH_SERVER__PORT", "9191")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.ImageGen.Provider != ProviderOpenAI {
		t.Errorf("env override failed: got %q, want %q", loaded.ImageGen.Provider, ProviderOpenAI)
	}
	if loaded.Server.Port != 9191 {
		t.Errorf("env override failed: got port %d, want 9191", loaded.Server.Port)
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"AVATARLAUNCH_SERVER__PORT":        "server.port",
		"AVATARLAUNCH_IMAGEGEN__BASE_URL":  "imagegen.base_url",
		"AVATARLAUNCH_CAROUSEL__MEDIA_DIR": "carousel.media_dir",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"invalid provider", func(c *Config) { c.ImageGen.Provider = "invalid" }},
		{"empty provider", func(c *Config) { c.ImageGen.Provider = "" }},
		{"empty model", func(c *Config) { c.ImageGen.Model = "" }},
		{"negative rpm", func(c *Config) { c.ImageGen.RequestsPerMinute = -1 }},
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"empty data dir", func(c *Config) { c.Server.DataDir = "" }},
		{"item without source", func(c *Config) { c.Carousel.Items[0].Source = "" }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestValidateMediaDirOnly(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Carousel.Items = nil
	cfg.Carousel.MediaDir = "videos"
	cfg.Carousel.Pattern = "*.mp4"
	if err := cfg.Validate(); err != nil {
		t.Errorf("media dir without items should be valid: %v", err)
	}
}

func TestValidateEmptyCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".avatarlaunch.yml")
	if err := os.WriteFile(path, []byte("carousel:\n  items: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Carousel.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(cfg.Carousel.Items))
	}
	// The server still starts; the showcase is disabled instead.
	if err := cfg.Validate(); err != nil {
		t.Errorf("empty catalog should be valid: %v", err)
	}
}

func TestAPIKeyEnvVar(t *testing.T) {
	tests := []struct {
		provider ProviderType
		want     string
	}{
		{ProviderGoogle, "GOOGLE_API_KEY"},
		{ProviderOpenAI, "OPENAI_API_KEY"},
		{"other", ""},
	}
	for _, tt := range tests {
		if got := APIKeyEnvVar(tt.provider); got != tt.want {
			t.Errorf("APIKeyEnvVar(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}

func TestDefaultModel(t *testing.T) {
	if DefaultModel(ProviderOpenAI) != "dall-e-3" {
		t.Errorf("unexpected openai default %q", DefaultModel(ProviderOpenAI))
	}
	if DefaultModel("unknown") != "" {
		t.Error("expected empty model for unknown provider")
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"*.{png,jpg}, *.gif", []string{"*.{png,jpg}", "*.gif"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}

func TestSaveWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yml")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty config file")
	}
}
