package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Config is the persistent application configuration
type Config struct {
	Fetch    FetchConfig    `json:"fetch"`
	Breaker  BreakerConfig  `json:"breaker"`
	Health   HealthConfig   `json:"health"`
	Market   MarketConfig   `json:"market"`
	Analysis AnalysisConfig `json:"analysis"`
}

// FetchConfig controls the feed fetch pool
type FetchConfig struct {
	IntervalMinutes int    `json:"interval_minutes"`  // Time between fetch cycles
	TimeoutSeconds  int    `json:"timeout_seconds"`   // Per-fetch timeout
	MaxConcurrent   int    `json:"max_concurrent"`    // Parallel fetches per cycle
	CacheTTLMinutes int    `json:"cache_ttl_minutes"` // Response cache TTL
	UserAgent       string `json:"user_agent,omitempty"`
}

// BreakerConfig controls the per-feed circuit breaker
type BreakerConfig struct {
	FailureThreshold int `json:"failure_threshold"` // Failures before the breaker opens
	ResetMinutes     int `json:"reset_minutes"`     // Cooldown before a half-open probe
}

// HealthConfig controls the feed-health registry
type HealthConfig struct {
	SkipThreshold   int `json:"skip_threshold"`   // Consecutive failures before auto-skip
	CooldownMinutes int `json:"cooldown_minutes"` // How long a failing feed is skipped
}

// MarketConfig controls prediction-market polling
type MarketConfig struct {
	Enabled        bool `json:"enabled"`
	StaggerSeconds int  `json:"stagger_seconds"` // Minimum gap between API requests
	Limit          int  `json:"limit"`           // Markets per poll
}

// AnalysisConfig controls the analysis loop
type AnalysisConfig struct {
	WindowHours int `json:"window_hours"` // How far back items feed the engines
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Fetch: FetchConfig{
			IntervalMinutes: 5,
			TimeoutSeconds:  8,
			MaxConcurrent:   5,
			CacheTTLMinutes: 10,
		},
		Breaker: BreakerConfig{
			FailureThreshold: 2,
			ResetMinutes:     5,
		},
		Health: HealthConfig{
			SkipThreshold:   5,
			CooldownMinutes: 60,
		},
		Market: MarketConfig{
			Enabled:        true,
			StaggerSeconds: 2,
			Limit:          50,
		},
		Analysis: AnalysisConfig{
			WindowHours: 6,
		},
	}
}

// FetchTimeout returns the per-fetch timeout as a duration
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// FetchInterval returns the fetch cycle interval as a duration
func (c *Config) FetchInterval() time.Duration {
	return time.Duration(c.Fetch.IntervalMinutes) * time.Minute
}

// BreakerReset returns the breaker cooldown as a duration
func (c *Config) BreakerReset() time.Duration {
	return time.Duration(c.Breaker.ResetMinutes) * time.Minute
}

// HealthCooldown returns the health skip window as a duration
func (c *Config) HealthCooldown() time.Duration {
	return time.Duration(c.Health.CooldownMinutes) * time.Minute
}

// MarketStagger returns the inter-request market delay as a duration
func (c *Config) MarketStagger() time.Duration {
	return time.Duration(c.Market.StaggerSeconds) * time.Second
}

// CacheTTL returns the response cache TTL as a duration
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Fetch.CacheTTLMinutes) * time.Minute
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".vigil", "config.json")
}

// Load reads config from disk, or returns defaults
func Load() (*Config, error) {
	path := ConfigPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), nil
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path := ConfigPath()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// applyDefaults fills zero values left by a partial config file
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Fetch.IntervalMinutes == 0 {
		c.Fetch.IntervalMinutes = def.Fetch.IntervalMinutes
	}
	if c.Fetch.TimeoutSeconds == 0 {
		c.Fetch.TimeoutSeconds = def.Fetch.TimeoutSeconds
	}
	if c.Fetch.MaxConcurrent == 0 {
		c.Fetch.MaxConcurrent = def.Fetch.MaxConcurrent
	}
	if c.Fetch.CacheTTLMinutes == 0 {
		c.Fetch.CacheTTLMinutes = def.Fetch.CacheTTLMinutes
	}
	if c.Breaker.FailureThreshold == 0 {
		c.Breaker.FailureThreshold = def.Breaker.FailureThreshold
	}
	if c.Breaker.ResetMinutes == 0 {
		c.Breaker.ResetMinutes = def.Breaker.ResetMinutes
	}
	if c.Health.SkipThreshold == 0 {
		c.Health.SkipThreshold = def.Health.SkipThreshold
	}
	if c.Health.CooldownMinutes == 0 {
		c.Health.CooldownMinutes = def.Health.CooldownMinutes
	}
	if c.Market.StaggerSeconds == 0 {
		c.Market.StaggerSeconds = def.Market.StaggerSeconds
	}
	if c.Market.Limit == 0 {
		c.Market.Limit = def.Market.Limit
	}
	if c.Analysis.WindowHours == 0 {
		c.Analysis.WindowHours = def.Analysis.WindowHours
	}
}
