package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Map sampling bounds exposed to the dashboard slider.
const (
	MapSampleCapMin     = 500
	MapSampleCapMax     = 4000
	MapSampleCapDefault = 1500
)

// Config holds all application settings.
type Config struct {
	Port     string `toml:"port"`
	DataPath string `toml:"data_path"`
	LogLevel string `toml:"log_level"`

	// MapSampleCap is the default cap on geocoded points returned for maps.
	MapSampleCap int `toml:"map_sample_cap"`
	// MapSampleSeed seeds the reproducible map point sampler.
	MapSampleSeed int64 `toml:"map_sample_seed"`

	// TopN bounds the state and weather ranking sizes.
	TopN int `toml:"top_n"`

	// FilterCacheSize bounds the memoized filtered-view cache.
	FilterCacheSize int `toml:"filter_cache_size"`

	RateLimit       int           `toml:"rate_limit"`
	RateLimitWindow time.Duration `toml:"-"`
}

// Load reads configuration from an optional TOML file (CONFIG_FILE, or
// ./config.toml if present), then applies environment variable overrides.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            ":8080",
		DataPath:        "./data/cleaned/us_accidents_sample.csv",
		LogLevel:        "info",
		MapSampleCap:    MapSampleCapDefault,
		MapSampleSeed:   42,
		TopN:            15,
		FilterCacheSize: 64,
		RateLimit:       120,
		RateLimitWindow: time.Minute,
	}

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		if _, err := os.Stat("./config.toml"); err == nil {
			path = "./config.toml"
		}
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DATA_PATH"); v != "" {
		cfg.DataPath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("MAP_SAMPLE_CAP"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MAP_SAMPLE_CAP: %w", err)
		}
		cfg.MapSampleCap = n
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT: %w", err)
		}
		cfg.RateLimit = n
	}

	cfg.MapSampleCap = ClampSampleCap(cfg.MapSampleCap)

	return cfg, nil
}

// ClampSampleCap constrains a requested map sampling cap to the slider range.
func ClampSampleCap(n int) int {
	if n < MapSampleCapMin {
		return MapSampleCapMin
	}
	if n > MapSampleCapMax {
		return MapSampleCapMax
	}
	return n
}
