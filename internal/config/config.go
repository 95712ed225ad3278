// Package config handles TOML configuration loading with sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the top-level configuration for symtriage.
type Config struct {
	Instance  InstanceConfig  `toml:"instance" yaml:"instance"`
	Server    ServerConfig    `toml:"server" yaml:"server"`
	DB        DBConfig        `toml:"db" yaml:"db"`
	Ntfy      NtfyConfig      `toml:"ntfy" yaml:"ntfy"`
	Cooldown  CooldownConfig  `toml:"cooldown" yaml:"cooldown"`
	Sync      SyncConfig      `toml:"sync" yaml:"sync"`
	Emergency EmergencyConfig `toml:"emergency" yaml:"emergency"`
	Locale    LocaleConfig    `toml:"locale" yaml:"locale"`
	Knowledge KnowledgeConfig `toml:"knowledge" yaml:"knowledge"`
	Log       LogConfig       `toml:"log" yaml:"log"`
}

// InstanceConfig identifies this device or clinic.
type InstanceConfig struct {
	ID     string `toml:"id" yaml:"id"`
	Region string `toml:"region" yaml:"region"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// DBConfig selects the storage backend.
type DBConfig struct {
	Driver    string   `toml:"driver" yaml:"driver"`
	Path      string   `toml:"path" yaml:"path"`
	DSN       string   `toml:"dsn" yaml:"dsn"`
	Retention Duration `toml:"retention" yaml:"retention"`
}

// NtfyConfig controls the ntfy notification target.
type NtfyConfig struct {
	URL         string            `toml:"url" yaml:"url"`
	DigestURL   string            `toml:"digest_url" yaml:"digest_url"`
	PriorityMap map[string]string `toml:"priority_map" yaml:"priority_map"`
	AlertLevels []string          `toml:"alert_levels" yaml:"alert_levels"`
}

// CooldownConfig controls per-patient alert dedup.
type CooldownConfig struct {
	Window             Duration `toml:"window" yaml:"window"`
	AggregateThreshold int      `toml:"aggregate_threshold" yaml:"aggregate_threshold"`
}

// SyncConfig controls uploading stored checks to the API backend.
type SyncConfig struct {
	Enabled  bool     `toml:"enabled" yaml:"enabled"`
	Endpoint string   `toml:"endpoint" yaml:"endpoint"`
	Token    string   `toml:"token" yaml:"-"`
	Interval Duration `toml:"interval" yaml:"interval"`
	Rate     float64  `toml:"rate" yaml:"rate"`
	Burst    int      `toml:"burst" yaml:"burst"`
	Batch    int      `toml:"batch" yaml:"batch"`
}

// EmergencyConfig holds the local emergency contact details.
type EmergencyConfig struct {
	Hotline string `toml:"hotline" yaml:"hotline"`
}

// LocaleConfig selects the default display language.
type LocaleConfig struct {
	Language string `toml:"language" yaml:"language"`
}

// KnowledgeConfig points at an optional YAML file of extra guidance
// articles that extend or replace the built-in ones by ID.
type KnowledgeConfig struct {
	Path string `toml:"path" yaml:"path"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// Duration wraps time.Duration for TOML string parsing (e.g. "30s", "10m",
// "365d").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// ParseDuration extends time.ParseDuration with support for a "d" (days)
// suffix.
func ParseDuration(s string) (time.Duration, error) {
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid days format: %s", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "unknown"
	}
	return &Config{
		Instance: InstanceConfig{
			ID: hostname,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		DB: DBConfig{
			Driver:    "sqlite",
			Retention: Duration{365 * 24 * time.Hour},
		},
		Ntfy: NtfyConfig{
			PriorityMap: map[string]string{
				"emergency": "urgent",
				"high":      "high",
				"medium":    "default",
			},
			AlertLevels: []string{"emergency"},
		},
		Cooldown: CooldownConfig{
			Window:             Duration{10 * time.Minute},
			AggregateThreshold: 3,
		},
		Sync: SyncConfig{
			Interval: Duration{30 * time.Second},
			Rate:     5,
			Burst:    5,
			Batch:    100,
		},
		Emergency: EmergencyConfig{
			Hotline: "999",
		},
		Locale: LocaleConfig{
			Language: "en",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "symtriage", "config.toml")
}

// Load reads configuration from the given path, falling back to defaults
// for any unset fields. If the file does not exist, returns defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks settings that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "sqlite":
	case "postgres":
		if c.DB.DSN == "" {
			return fmt.Errorf("db.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown db.driver %q", c.DB.Driver)
	}
	if c.Sync.Enabled && c.Sync.Endpoint == "" {
		return fmt.Errorf("sync.endpoint is required when sync is enabled")
	}
	return nil
}

// DBPath returns the SQLite database path, defaulting to the XDG data
// directory.
func (c *Config) DBPath() string {
	if c.DB.Path != "" {
		return c.DB.Path
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "symtriage", "checks.db")
}

// DigestTopic returns the ntfy URL for digests, falling back to the alert URL.
func (c *Config) DigestTopic() string {
	if c.Ntfy.DigestURL != "" {
		return c.Ntfy.DigestURL
	}
	return c.Ntfy.URL
}

// ShouldAlert returns true if the given risk level is in the configured alert
// levels.
func (c *Config) ShouldAlert(level string) bool {
	for _, l := range c.Ntfy.AlertLevels {
		if strings.EqualFold(l, level) {
			return true
		}
	}
	return false
}

// NtfyPriority maps a risk level to an ntfy priority string.
func (c *Config) NtfyPriority(level string) string {
	if p, ok := c.Ntfy.PriorityMap[level]; ok {
		return p
	}
	return "default"
}
