package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	// Backend classification service settings
	Backend BackendConfig `koanf:"backend"`

	// Identity provider settings (enables submission when configured)
	Identity IdentityConfig `koanf:"identity"`

	// Recording behavior
	Capture CaptureConfig `koanf:"capture"`

	// Suggested playlist behavior
	Suggest SuggestConfig `koanf:"suggest"`

	// Desktop notifications
	Notifications NotificationsConfig `koanf:"notifications"`
}

// BackendConfig holds classification service settings.
type BackendConfig struct {
	URL                   string `koanf:"url"`                     // e.g., "http://localhost:8000"
	UploadTimeoutSeconds  int    `koanf:"upload_timeout_seconds"`  // full-file analysis (default: 120)
	SegmentTimeoutSeconds int    `koanf:"segment_timeout_seconds"` // single-segment analysis (default: 60)
	SegmentDuration       int    `koanf:"segment_duration"`        // seconds per analysis window (default: 30)
}

// IdentityConfig holds token service credentials.
type IdentityConfig struct {
	APIKey       string `koanf:"api_key"`
	RefreshToken string `koanf:"refresh_token"`
	TokenURL     string `koanf:"token_url"` // override for self-hosted token services
}

// CaptureConfig holds recording behavior settings.
type CaptureConfig struct {
	MinDurationSeconds int    `koanf:"min_duration_seconds"` // shortest stoppable recording (default: 30)
	GracePeriodMS      int    `koanf:"grace_period_ms"`      // forced-completion delay (default: 100)
	LevelIntervalMS    int    `koanf:"level_interval_ms"`    // level meter cadence (default: 16)
	InputFile          string `koanf:"input_file"`           // replay a file instead of a microphone
}

// SuggestConfig holds suggested playlist sizing.
type SuggestConfig struct {
	ListSize     int `koanf:"list_size"`      // initial playlist length (default: 8)
	AddBatchSize int `koanf:"add_batch_size"` // tracks appended per request (default: 4)
}

// NotificationsConfig holds desktop notification settings.
type NotificationsConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Normalize backend URL (remove trailing slash)
	cfg.Backend.URL = strings.TrimSuffix(cfg.Backend.URL, "/")

	// Expand ~ in the replay input file
	if cfg.Capture.InputFile != "" {
		cfg.Capture.InputFile = expandPath(cfg.Capture.InputFile)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/encore/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "encore", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasIdentityConfig returns true if the token service is configured.
func (c *Config) HasIdentityConfig() bool {
	return c.Identity.APIKey != "" && c.Identity.RefreshToken != ""
}

// GetBackendConfig returns the backend configuration with defaults applied.
func (c *Config) GetBackendConfig() BackendConfig {
	cfg := c.Backend

	if cfg.URL == "" {
		cfg.URL = "http://localhost:8000"
	}
	if cfg.UploadTimeoutSeconds <= 0 {
		cfg.UploadTimeoutSeconds = 120
	}
	if cfg.SegmentTimeoutSeconds <= 0 {
		cfg.SegmentTimeoutSeconds = 60
	}
	if cfg.SegmentDuration <= 0 {
		cfg.SegmentDuration = 30
	}

	return cfg
}

// GetCaptureConfig returns the capture configuration with defaults applied.
func (c *Config) GetCaptureConfig() CaptureConfig {
	cfg := c.Capture

	if cfg.MinDurationSeconds <= 0 {
		cfg.MinDurationSeconds = 30
	}
	if cfg.GracePeriodMS <= 0 {
		cfg.GracePeriodMS = 100
	}
	// The meter is useful between roughly 30 and 144 samples per second.
	if cfg.LevelIntervalMS < 7 || cfg.LevelIntervalMS > 33 {
		cfg.LevelIntervalMS = 16
	}

	return cfg
}

// GetSuggestConfig returns the playlist configuration with defaults applied.
func (c *Config) GetSuggestConfig() SuggestConfig {
	cfg := c.Suggest

	if cfg.ListSize <= 0 {
		cfg.ListSize = 8
	}
	if cfg.AddBatchSize <= 0 {
		cfg.AddBatchSize = 4
	}

	return cfg
}

// NotificationsEnabled returns whether desktop notifications should be sent.
func (c *Config) NotificationsEnabled() bool {
	if c.Notifications.Enabled == nil {
		return true
	}
	return *c.Notifications.Enabled
}
