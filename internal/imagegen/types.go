package imagegen

import "context"

// Generator turns a text prompt into an image.
type Generator interface {
	// GenerateImage returns the base64-encoded bytes of a single image.
	GenerateImage(ctx context.Context, prompt string) (string, error)
	// Name returns the provider name.
	Name() string
	// Model returns the model the generator calls.
	Model() string
}

// GenerationError is returned when the provider rejects a request or answers
// with a payload that carries no image. Its message is what the user sees.
type GenerationError struct {
	StatusCode int
	Message    string
}

func (e *GenerationError) Error() string {
	return e.Message
}
