package imagegen

import (
	"fmt"
	"os"
)

// NewGenerator creates a generator for the given provider type and model.
// Supported provider types: "google", "openai". baseURL overrides the
// provider endpoint when non-empty.
func NewGenerator(providerType, model, baseURL string) (Generator, error) {
	switch providerType {
	case "google":
		apiKey := os.Getenv("GOOGLE_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY environment variable is not set")
		}
		return NewImagenClient(apiKey, model, WithBaseURL(baseURL)), nil

	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		return NewOpenAIClient(apiKey, model, baseURL), nil

	default:
		return nil, fmt.Errorf("unsupported image provider: %s", providerType)
	}
}
