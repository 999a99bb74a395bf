package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/paulmach/orb"

	"github.com/couchcryptid/crash-map/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	DatasetPath     string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Map projection.
	ProjectionScale float64
	TranslateX      float64
	TranslateY      float64
	BoundsMode      domain.BoundsMode

	// Presentation.
	ViewportWidth   int
	MapSize         int
	RenderCacheSize int

	// Request limits. Image memory grows with width*height.
	MaxViewportWidth int
	MaxImageHeight   int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	boundsMode, err := domain.ParseBoundsMode(sharedcfg.EnvOrDefault("BOUNDS_MODE", "independent"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOUNDS_MODE: %w", err)
	}

	scale, err := parsePositiveFloat("PROJECTION_SCALE", domain.DefaultScale)
	if err != nil {
		return nil, err
	}
	translateX, err := parseFloat("PROJECTION_TRANSLATE_X", domain.DefaultTranslate[0])
	if err != nil {
		return nil, err
	}
	translateY, err := parseFloat("PROJECTION_TRANSLATE_Y", domain.DefaultTranslate[1])
	if err != nil {
		return nil, err
	}

	viewportWidth, err := parsePositiveInt("VIEWPORT_WIDTH", 1200)
	if err != nil {
		return nil, err
	}
	mapSize, err := parsePositiveInt("MAP_SIZE", 600)
	if err != nil {
		return nil, err
	}
	cacheSize, err := parsePositiveInt("RENDER_CACHE_SIZE", 256)
	if err != nil {
		return nil, err
	}
	maxWidth, err := parsePositiveInt("MAX_VIEWPORT_WIDTH", 4096)
	if err != nil {
		return nil, err
	}
	maxHeight, err := parsePositiveInt("MAX_IMAGE_HEIGHT", 2048)
	if err != nil {
		return nil, err
	}
	if viewportWidth > maxWidth {
		return nil, fmt.Errorf("invalid VIEWPORT_WIDTH: %d exceeds MAX_VIEWPORT_WIDTH %d", viewportWidth, maxWidth)
	}

	return &Config{
		DatasetPath:     os.Getenv("DATASET_PATH"),
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		ProjectionScale: scale,
		TranslateX:      translateX,
		TranslateY:      translateY,
		BoundsMode:      boundsMode,

		ViewportWidth:   viewportWidth,
		MapSize:         mapSize,
		RenderCacheSize: cacheSize,

		MaxViewportWidth: maxWidth,
		MaxImageHeight:   maxHeight,
	}, nil
}

// ProjectionOptions returns the domain projection settings.
func (c *Config) ProjectionOptions() domain.ProjectionOptions {
	return domain.ProjectionOptions{
		Scale:     c.ProjectionScale,
		Translate: orb.Point{c.TranslateX, c.TranslateY},
		Bounds:    c.BoundsMode,
	}
}

func parseFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func parsePositiveFloat(key string, def float64) (float64, error) {
	v, err := parseFloat(key, def)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return v, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}
