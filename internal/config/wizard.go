package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to avatarlaunch! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Image provider.
	providerPrompt := promptui.Select{
		Label: "Select image generation provider",
		Items: []string{string(ProviderGoogle), string(ProviderOpenAI)},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.ImageGen.Provider = ProviderType(providerStr)

	// 2. Model.
	modelPrompt := promptui.Prompt{
		Label:   "Image model",
		Default: DefaultModel(cfg.ImageGen.Provider),
	}
	model, err := modelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	cfg.ImageGen.Model = strings.TrimSpace(model)

	// 3. Port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 4. Carousel media directory. Blank keeps the built-in three clips.
	mediaPrompt := promptui.Prompt{
		Label:   "Carousel video directory (blank for the default clips)",
		Default: "",
	}
	mediaDir, err := mediaPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("media dir: %w", err)
	}
	if mediaDir = strings.TrimSpace(mediaDir); mediaDir != "" {
		cfg.Carousel.MediaDir = mediaDir
		cfg.Carousel.Pattern = "*.mp4"
		cfg.Carousel.Items = nil
	}

	// 5. Background image patterns.
	bgPrompt := promptui.Prompt{
		Label:   "Background image patterns (comma-separated globs)",
		Default: strings.Join(cfg.Backgrounds.Patterns, ","),
	}
	bgStr, err := bgPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("background patterns: %w", err)
	}
	if patterns := splitAndTrim(bgStr); len(patterns) > 0 {
		cfg.Backgrounds.Patterns = patterns
	}

	envVar := APIKeyEnvVar(cfg.ImageGen.Provider)
	if envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("\nNote: Set %s in your environment before generating images.\n", envVar)
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
// Brace groups such as *.{png,jpg} are kept whole.
func splitAndTrim(s string) []string {
	var (
		result []string
		depth  int
		start  int
	)
	for i := 0; i <= len(s); i++ {
		if i < len(s) {
			switch s[i] {
			case '{':
				depth++
				continue
			case '}':
				if depth > 0 {
					depth--
				}
				continue
			case ',':
				if depth > 0 {
					continue
				}
			default:
				continue
			}
		}
		if token := strings.TrimSpace(s[start:i]); token != "" {
			result = append(result, token)
		}
		start = i + 1
	}
	return result
}
