// Package studio is the prompt and image workshop: it builds prompts, calls
// the configured image generator and logs every attempt.
package studio

import (
	"context"
	"encoding/base64"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/avatar-launch/internal/history"
	"github.com/ziadkadry99/avatar-launch/internal/imagegen"
	"github.com/ziadkadry99/avatar-launch/internal/metrics"
)

var (
	// ErrEmptyPrompt is returned when Generate is called without a prompt.
	ErrEmptyPrompt = errors.New("studio: prompt is required")
	// ErrNoGenerator is returned when no image provider is configured.
	ErrNoGenerator = errors.New("studio: no image generator configured")
)

// Result is a generated image.
type Result struct {
	ID    string `json:"id"`
	Image string `json:"image"` // base64-encoded image bytes
}

// Studio generates images and records them in the history log.
type Studio struct {
	gen   imagegen.Generator
	store *history.Store
}

// New creates a Studio. store may be nil, in which case nothing is recorded.
func New(gen imagegen.Generator, store *history.Store) *Studio {
	return &Studio{gen: gen, store: store}
}

// Generator returns the underlying image generator.
func (s *Studio) Generator() imagegen.Generator { return s.gen }

// Generate produces one image for prompt. Failures from the provider are
// returned unchanged so callers can match *imagegen.GenerationError.
func (s *Studio) Generate(ctx context.Context, prompt string, source history.Source) (*Result, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}
	if s.gen == nil {
		return nil, ErrNoGenerator
	}

	start := time.Now()
	image, err := s.gen.GenerateImage(ctx, prompt)
	entry := history.Entry{
		Prompt:   prompt,
		Provider: s.gen.Name(),
		Model:    s.gen.Model(),
		Source:   source,
		Duration: time.Since(start),
	}
	if err != nil {
		entry.Status = history.StatusFailed
		entry.Error = err.Error()
	} else {
		entry.Status = history.StatusSucceeded
		entry.ImageBytes = decodedSize(image)
	}

	metrics.Generations.WithLabelValues(entry.Provider, string(entry.Status)).Inc()
	metrics.GenerationDuration.WithLabelValues(entry.Provider).Observe(entry.Duration.Seconds())

	id := s.record(ctx, entry)
	if err != nil {
		return nil, err
	}
	return &Result{ID: id, Image: image}, nil
}

// decodedSize returns the number of bytes encoded by the base64 string s.
func decodedSize(s string) int {
	n := base64.StdEncoding.DecodedLen(len(s))
	return n - (len(s) - len(strings.TrimRight(s, "=")))
}

// record logs entry and returns its ID. A failed insert never fails the
// generation itself.
func (s *Studio) record(ctx context.Context, entry history.Entry) string {
	if s.store == nil {
		return uuid.New().String()
	}
	// The request context may already be cancelled; the log entry still
	// belongs in the table.
	id, err := s.store.Record(context.WithoutCancel(ctx), entry)
	if err != nil {
		log.Printf("studio: recording generation: %v", err)
		return uuid.New().String()
	}
	return id
}
