// Package config loads service configuration from the boardgen config file
// and MAZAD_* environment variables via viper.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the serve and render commands need.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// TemplatePath points at the single board template PDF.
	TemplatePath string

	// FontsDir contains the Arabic TTF files the overlay strategy embeds.
	FontsDir string

	// Strategy selects the render strategy: overlay or acroform.
	Strategy string

	// RedisURL enables the Redis result cache when non-empty.
	RedisURL string

	// CacheTTL bounds how long rendered boards stay cached.
	CacheTTL time.Duration

	// MaxBodyBytes caps the JSON payload size; the logo rides along as
	// base64, so this must fit a full-resolution logo upload.
	MaxBodyBytes int64

	// AllowedOrigins restricts CORS. Empty means same-origin only is not
	// enforced and all origins are allowed (development default).
	AllowedOrigins []string
}

// SetDefaults registers defaults on the global viper instance. Called once
// from the CLI before config is read.
func SetDefaults() {
	viper.SetDefault("addr", ":8080")
	viper.SetDefault("template", "assets/board-template.pdf")
	viper.SetDefault("fonts_dir", "assets/fonts")
	viper.SetDefault("strategy", "overlay")
	viper.SetDefault("redis_url", "")
	viper.SetDefault("cache_ttl", "1h")
	viper.SetDefault("max_body_bytes", 8<<20)
	viper.SetDefault("allowed_origins", []string{})
}

// Load materializes and validates the configuration.
func Load() (Config, error) {
	cfg := Config{
		Addr:           viper.GetString("addr"),
		TemplatePath:   viper.GetString("template"),
		FontsDir:       viper.GetString("fonts_dir"),
		Strategy:       viper.GetString("strategy"),
		RedisURL:       viper.GetString("redis_url"),
		CacheTTL:       viper.GetDuration("cache_ttl"),
		MaxBodyBytes:   viper.GetInt64("max_body_bytes"),
		AllowedOrigins: viper.GetStringSlice("allowed_origins"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late and obscurely.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr cannot be empty")
	}
	if c.TemplatePath == "" {
		return errors.New("template cannot be empty")
	}
	if c.Strategy != "overlay" && c.Strategy != "acroform" {
		return fmt.Errorf("strategy must be overlay or acroform, got %q", c.Strategy)
	}
	if c.CacheTTL <= 0 {
		return errors.New("cache_ttl must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("max_body_bytes must be positive")
	}
	return nil
}
