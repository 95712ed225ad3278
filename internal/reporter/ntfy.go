package reporter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bisheshoggo/symtriage/internal/check"
	"github.com/bisheshoggo/symtriage/internal/config"
)

// NtfyReporter sends check notifications to an ntfy server.
type NtfyReporter struct {
	cfg    *config.Config
	client *http.Client
}

// NewNtfy creates a new NtfyReporter.
func NewNtfy(cfg *config.Config) *NtfyReporter {
	return &NtfyReporter{
		cfg: cfg,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Enabled reports whether an ntfy URL is configured.
func (r *NtfyReporter) Enabled() bool {
	return r.cfg.Ntfy.URL != ""
}

// Report sends a check notification to ntfy if the check's risk level is in
// the configured alert levels. recent is the cooldown's count of earlier
// checks folded into this one.
func (r *NtfyReporter) Report(ctx context.Context, c *check.Check, recent int) error {
	if !r.Enabled() {
		slog.Debug("ntfy URL not configured, skipping notification")
		return nil
	}

	level := string(c.Level())
	if !r.cfg.ShouldAlert(level) {
		slog.Debug("risk level not in alert levels, skipping", "level", level)
		return nil
	}

	location := r.cfg.Instance.Region
	if location == "" {
		location = r.cfg.Instance.ID
	}

	title := FormatTitle(c, recent)
	body := FormatBody(c, location, r.cfg.Emergency.Hotline)
	priority := r.cfg.NtfyPriority(level)
	tags := TagsForLevel(c.Level())

	if err := r.post(ctx, r.cfg.Ntfy.URL, title, priority, tags, body); err != nil {
		return err
	}

	slog.Info("notification sent", "level", level, "check", c.ID, "priority", priority)
	return nil
}

// SendDigest posts a digest to the configured digest topic.
func (r *NtfyReporter) SendDigest(ctx context.Context, title, body string) error {
	url := r.cfg.DigestTopic()
	if url == "" {
		return fmt.Errorf("no ntfy URL configured for digest")
	}
	return r.post(ctx, url, title, "low", "chart", body)
}

func (r *NtfyReporter) post(ctx context.Context, url, title, priority, tags, body string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating ntfy request: %w", err)
	}

	req.Header.Set("Title", title)
	req.Header.Set("Priority", priority)
	req.Header.Set("Tags", tags)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ntfy returned status %d", resp.StatusCode)
	}
	return nil
}
