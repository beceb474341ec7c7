package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ziadkadry99/avatar-launch/internal/carousel"
	"github.com/ziadkadry99/avatar-launch/internal/config"
	"github.com/ziadkadry99/avatar-launch/internal/db"
	"github.com/ziadkadry99/avatar-launch/internal/history"
	"github.com/ziadkadry99/avatar-launch/internal/imagegen"
	"github.com/ziadkadry99/avatar-launch/internal/media"
	"github.com/ziadkadry99/avatar-launch/internal/showcase"
)

// dbFile is the generation log inside the data directory.
const dbFile = "avatarlaunch.db"

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `avatarlaunch init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// createGeneratorFromConfig creates the image generator, rate limited when
// imagegen.requests_per_minute is set.
func createGeneratorFromConfig(cfg *config.Config) (imagegen.Generator, error) {
	gen, err := imagegen.NewGenerator(string(cfg.ImageGen.Provider), cfg.ImageGen.Model, cfg.ImageGen.BaseURL)
	if err != nil {
		return nil, err
	}
	return imagegen.NewRateLimitedGenerator(gen, cfg.ImageGen.RequestsPerMinute), nil
}

// openHistory opens the generation log in the configured data directory.
func openHistory(cfg *config.Config) (*db.DB, *history.Store, error) {
	database, err := db.Open(filepath.Join(cfg.Server.DataDir, dbFile))
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return database, history.NewStore(database), nil
}

// buildSession loads the carousel catalog and wraps it in a live session.
// An empty catalog is not fatal: it yields a nil session and a warning.
func buildSession(cfg *config.Config) (*showcase.Session, error) {
	items, err := media.LoadCatalog(media.CatalogSource{
		Items:     cfg.Carousel.Items,
		Dir:       cfg.Carousel.MediaDir,
		Pattern:   cfg.Carousel.Pattern,
		URLPrefix: media.VideosPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("loading carousel catalog: %w", err)
	}

	ctrl, err := carousel.New(items, cfg.Carousel.StartIndex)
	if errors.Is(err, carousel.ErrEmptyCollection) {
		fmt.Fprintf(os.Stderr, "Warning: no carousel media found; the showcase is disabled\n")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return showcase.NewSession(ctrl), nil
}
