// Package config loads and saves the talkulator TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all talkulator configuration.
type Config struct {
	Endpoints  EndpointsConfig  `toml:"endpoints"`
	Limiter    LimiterConfig    `toml:"limiter"`
	Audio      AudioConfig      `toml:"audio"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// EndpointsConfig holds the remote calculation service settings.
type EndpointsConfig struct {
	GenerateURL   string `toml:"generate_url"`
	SynthesizeURL string `toml:"synthesize_url"`
	TimeoutSec    int    `toml:"timeout_sec"`
}

// LimiterConfig tunes the token bucket gating remote calls.
type LimiterConfig struct {
	MaxTokens       int `toml:"max_tokens"`
	RefillPerMinute int `toml:"refill_per_minute"`
	ConsumePerCall  int `toml:"consume_per_call"`
	CooldownMS      int `toml:"cooldown_ms"`
}

// AudioConfig tunes sound playback.
type AudioConfig struct {
	Enabled           bool `toml:"enabled"`
	DebounceMS        int  `toml:"debounce_ms"`
	PreloadTimeoutSec int  `toml:"preload_timeout_sec"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Endpoints: EndpointsConfig{
			GenerateURL:   "https://api.talkulator.app/v1/generate",
			SynthesizeURL: "https://api.talkulator.app/v1/synthesize",
			TimeoutSec:    15,
		},
		Limiter: LimiterConfig{
			MaxTokens:       5,
			RefillPerMinute: 3,
			ConsumePerCall:  1,
			CooldownMS:      2000,
		},
		Audio: AudioConfig{
			Enabled:           true,
			DebounceMS:        60,
			PreloadTimeoutSec: 5,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "talkulator")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "talkulator")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LogPath returns where --debug logging goes.
func LogPath() string {
	return filepath.Join(ConfigDir(), "debug.log")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// GetGenerateURL returns the generation endpoint from env var or
// config, in that order.
func GetGenerateURL(cfg Config) string {
	if url := os.Getenv("TALKULATOR_GENERATE_URL"); url != "" {
		return url
	}
	return cfg.Endpoints.GenerateURL
}

// GetSynthesizeURL returns the synthesis endpoint from env var or
// config, in that order.
func GetSynthesizeURL(cfg Config) string {
	if url := os.Getenv("TALKULATOR_SYNTH_URL"); url != "" {
		return url
	}
	return cfg.Endpoints.SynthesizeURL
}

// RequestTimeout returns the remote call timeout as a duration.
func (c Config) RequestTimeout() time.Duration {
	if c.Endpoints.TimeoutSec <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.Endpoints.TimeoutSec) * time.Second
}

// Cooldown returns how long the busy notice is held before clearing.
func (c Config) Cooldown() time.Duration {
	if c.Limiter.CooldownMS <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.Limiter.CooldownMS) * time.Millisecond
}

// Debounce returns the non-forced playback suppression window.
func (c Config) Debounce() time.Duration {
	if c.Audio.DebounceMS <= 0 {
		return 60 * time.Millisecond
	}
	return time.Duration(c.Audio.DebounceMS) * time.Millisecond
}

// PreloadTimeout returns the per-asset preload bound.
func (c Config) PreloadTimeout() time.Duration {
	if c.Audio.PreloadTimeoutSec <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.Audio.PreloadTimeoutSec) * time.Second
}
