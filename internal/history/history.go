// Package history keeps an operator log of image generation attempts.
// Only metadata is stored; generated images are never persisted.
package history

import "time"

// Status is the outcome of a generation attempt.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Source identifies the surface that triggered a generation.
type Source string

const (
	SourceAPI Source = "api"
	SourceCLI Source = "cli"
	SourceMCP Source = "mcp"
)

// Entry is a single generation record.
type Entry struct {
	ID         string        `json:"id"`
	Prompt     string        `json:"prompt"`
	Provider   string        `json:"provider"`
	Model      string        `json:"model"`
	Source     Source        `json:"source"`
	Status     Status        `json:"status"`
	Error      string        `json:"error,omitempty"`
	ImageBytes int           `json:"image_bytes"`
	Duration   time.Duration `json:"duration"`
	CreatedAt  time.Time     `json:"created_at"`
}
