// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Image generation
	Generations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "avatarlaunch_generations_total",
		Help: "Image generation attempts by provider and outcome",
	}, []string{"provider", "status"})

	GenerationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "avatarlaunch_generation_duration_seconds",
		Help:    "Time spent waiting for the image provider",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
	}, []string{"provider"})

	// Showcase carousel
	CarouselCommands = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "avatarlaunch_carousel_commands_total",
		Help: "Carousel commands applied, by command",
	}, []string{"command"})

	CarouselViewers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "avatarlaunch_carousel_viewers",
		Help: "Open carousel WebSocket connections",
	})
)

// Handler serves every registered collector in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
