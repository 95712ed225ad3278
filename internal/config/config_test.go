package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Instance.ID == "" {
		t.Error("default instance ID should not be empty")
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("default server addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
	if cfg.DB.Driver != "sqlite" {
		t.Errorf("default db driver = %q, want %q", cfg.DB.Driver, "sqlite")
	}
	if cfg.DB.Retention.Duration != 365*24*time.Hour {
		t.Errorf("default retention = %v, want 365d", cfg.DB.Retention.Duration)
	}
	if cfg.Cooldown.Window.Duration != 10*time.Minute {
		t.Errorf("default cooldown window = %v, want %v", cfg.Cooldown.Window.Duration, 10*time.Minute)
	}
	if cfg.Cooldown.AggregateThreshold != 3 {
		t.Errorf("default aggregate threshold = %d, want 3", cfg.Cooldown.AggregateThreshold)
	}
	if cfg.Sync.Interval.Duration != 30*time.Second {
		t.Errorf("default sync interval = %v, want 30s", cfg.Sync.Interval.Duration)
	}
	if cfg.Emergency.Hotline != "999" {
		t.Errorf("default hotline = %q, want %q", cfg.Emergency.Hotline, "999")
	}
	if cfg.Locale.Language != "en" {
		t.Errorf("default language = %q, want %q", cfg.Locale.Language, "en")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("default log level = %q, want %q", cfg.Log.Level, "info")
	}
	if len(cfg.Ntfy.AlertLevels) != 1 {
		t.Errorf("default alert levels count = %d, want 1", len(cfg.Ntfy.AlertLevels))
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("loading nonexistent config should return defaults, got error: %v", err)
	}
	if cfg.Emergency.Hotline != "999" {
		t.Errorf("hotline = %q, want default %q", cfg.Emergency.Hotline, "999")
	}
}

func TestLoadValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[instance]
id = "clinic-sylhet-3"
region = "sylhet"

[db]
driver = "postgres"
dsn = "postgres://triage@localhost/triage?sslmode=disable"
retention = "90d"

[ntfy]
url = "https://ntfy.sh/clinic-alerts"
alert_levels = ["emergency", "high"]

[cooldown]
window = "15m"
aggregate_threshold = 5

[sync]
enabled = true
endpoint = "https://api.example.org/api"
interval = "1m"

[emergency]
hotline = "16263"

[locale]
language = "bn"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.Instance.ID != "clinic-sylhet-3" {
		t.Errorf("instance.id = %q, want %q", cfg.Instance.ID, "clinic-sylhet-3")
	}
	if cfg.Instance.Region != "sylhet" {
		t.Errorf("instance.region = %q, want %q", cfg.Instance.Region, "sylhet")
	}
	if cfg.DB.Driver != "postgres" || !strings.HasPrefix(cfg.DB.DSN, "postgres://") {
		t.Errorf("db = %+v", cfg.DB)
	}
	if cfg.DB.Retention.Duration != 90*24*time.Hour {
		t.Errorf("db.retention = %v, want 90d", cfg.DB.Retention.Duration)
	}
	if cfg.Ntfy.URL != "https://ntfy.sh/clinic-alerts" {
		t.Errorf("ntfy.url = %q", cfg.Ntfy.URL)
	}
	if len(cfg.Ntfy.AlertLevels) != 2 {
		t.Errorf("alert_levels count = %d, want 2", len(cfg.Ntfy.AlertLevels))
	}
	if cfg.Cooldown.Window.Duration != 15*time.Minute {
		t.Errorf("cooldown.window = %v, want 15m", cfg.Cooldown.Window.Duration)
	}
	if cfg.Cooldown.AggregateThreshold != 5 {
		t.Errorf("cooldown.aggregate_threshold = %d, want 5", cfg.Cooldown.AggregateThreshold)
	}
	if !cfg.Sync.Enabled || cfg.Sync.Interval.Duration != time.Minute {
		t.Errorf("sync = %+v", cfg.Sync)
	}
	// Unset sync fields keep their defaults.
	if cfg.Sync.Batch != 100 {
		t.Errorf("sync.batch = %d, want default 100", cfg.Sync.Batch)
	}
	if cfg.Emergency.Hotline != "16263" {
		t.Errorf("emergency.hotline = %q", cfg.Emergency.Hotline)
	}
	if cfg.Locale.Language != "bn" {
		t.Errorf("locale.language = %q, want %q", cfg.Locale.Language, "bn")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", "not valid [[[ toml"},
		{"unknown driver", "[db]\ndriver = \"mysql\"\n"},
		{"postgres without dsn", "[db]\ndriver = \"postgres\"\n"},
		{"sync without endpoint", "[sync]\nenabled = true\n"},
		{"bad duration", "[cooldown]\nwindow = \"soon\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
		err   bool
	}{
		{"30s", 30 * time.Second, false},
		{"10m", 10 * time.Minute, false},
		{"7d", 7 * 24 * time.Hour, false},
		{"xd", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDuration(tt.input)
		if (err != nil) != tt.err {
			t.Errorf("ParseDuration(%q) err = %v, want err %v", tt.input, err, tt.err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDBPath(t *testing.T) {
	cfg := Default()
	cfg.DB.Path = "/var/lib/symtriage/checks.db"
	if got := cfg.DBPath(); got != "/var/lib/symtriage/checks.db" {
		t.Errorf("DBPath = %q", got)
	}

	t.Setenv("XDG_DATA_HOME", "/data")
	cfg.DB.Path = ""
	if got := cfg.DBPath(); got != filepath.Join("/data", "symtriage", "checks.db") {
		t.Errorf("DBPath = %q", got)
	}
}

func TestDigestTopic(t *testing.T) {
	cfg := Default()
	cfg.Ntfy.URL = "https://ntfy.sh/alerts"
	if got := cfg.DigestTopic(); got != "https://ntfy.sh/alerts" {
		t.Errorf("DigestTopic = %q, want alert URL fallback", got)
	}
	cfg.Ntfy.DigestURL = "https://ntfy.sh/digest"
	if got := cfg.DigestTopic(); got != "https://ntfy.sh/digest" {
		t.Errorf("DigestTopic = %q", got)
	}
}

func TestShouldAlert(t *testing.T) {
	cfg := Default()

	if !cfg.ShouldAlert("emergency") {
		t.Error("emergency should be alerted by default")
	}
	if !cfg.ShouldAlert("EMERGENCY") {
		t.Error("level match should be case-insensitive")
	}
	if cfg.ShouldAlert("high") {
		t.Error("high should not be alerted by default")
	}
}

func TestNtfyPriority(t *testing.T) {
	cfg := Default()

	if p := cfg.NtfyPriority("emergency"); p != "urgent" {
		t.Errorf("emergency priority = %q, want %q", p, "urgent")
	}
	if p := cfg.NtfyPriority("high"); p != "high" {
		t.Errorf("high priority = %q, want %q", p, "high")
	}
	if p := cfg.NtfyPriority("low"); p != "default" {
		t.Errorf("low priority = %q, want %q", p, "default")
	}
}
