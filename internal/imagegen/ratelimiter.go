package imagegen

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitedGenerator wraps a Generator with a token bucket rate limiter.
// The server uses it to protect the provider quota; the clients themselves
// never throttle.
type RateLimitedGenerator struct {
	gen     Generator
	limiter *rate.Limiter
}

// NewRateLimitedGenerator wraps gen so that at most rpm requests per minute
// reach it, with bursts of up to rpm. A non-positive rpm returns gen
// unchanged.
func NewRateLimitedGenerator(gen Generator, rpm int) Generator {
	if rpm <= 0 {
		return gen
	}
	return &RateLimitedGenerator{
		gen:     gen,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm),
	}
}

func (r *RateLimitedGenerator) Name() string {
	return r.gen.Name()
}

func (r *RateLimitedGenerator) Model() string {
	return r.gen.Model()
}

// GenerateImage waits for a token, then forwards to the wrapped generator.
// It fails early when ctx would expire before a token is available.
func (r *RateLimitedGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return r.gen.GenerateImage(ctx, prompt)
}
