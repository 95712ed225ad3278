// Package syncer uploads locally stored checks to the API backend whenever
// connectivity allows.
package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/bisheshoggo/symtriage/internal/check"
)

// Store is the subset of the check store used for syncing.
type Store interface {
	Pending(limit int) ([]*check.Check, error)
	MarkSynced(id string) error
	CountPending() (int, error)
	LastSync() (time.Time, error)
	SetLastSync(t time.Time) error
}

// Options configures a Syncer.
type Options struct {
	Endpoint string
	Token    string
	Interval time.Duration
	// Rate is the maximum uploads per second; 0 means unlimited.
	Rate  float64
	Burst int
	Batch int
}

// Result summarizes one sync run.
type Result struct {
	Attempted int
	Synced    int
	Failed    int
	// Skipped is set when another run was already in progress.
	Skipped bool
}

// Status reports the sync state for display.
type Status struct {
	LastSync time.Time `json:"last_sync"`
	Pending  int       `json:"pending"`
	Syncing  bool      `json:"syncing"`
}

// Syncer periodically uploads unsynced checks.
type Syncer struct {
	store   Store
	opts    Options
	client  *http.Client
	limiter *rate.Limiter
	syncing atomic.Bool
}

// New creates a Syncer.
func New(st Store, opts Options) *Syncer {
	if opts.Batch <= 0 {
		opts.Batch = 100
	}
	if opts.Interval <= 0 {
		opts.Interval = 30 * time.Second
	}
	limit := rate.Inf
	if opts.Rate > 0 {
		limit = rate.Limit(opts.Rate)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Syncer{
		store:   st,
		opts:    opts,
		client:  &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Run syncs immediately and then on every interval until ctx is cancelled.
func (s *Syncer) Run(ctx context.Context) {
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	slog.Info("sync loop started", "endpoint", s.opts.Endpoint, "interval", s.opts.Interval)

	for {
		res, err := s.SyncNow(ctx)
		if err != nil {
			slog.Warn("sync run failed", "error", err)
		} else if res.Attempted > 0 {
			slog.Info("sync run complete", "synced", res.Synced, "failed", res.Failed)
		}

		select {
		case <-ctx.Done():
			slog.Info("sync loop stopped")
			return
		case <-ticker.C:
		}
	}
}

// SyncNow uploads up to one batch of pending checks, oldest first. A failed
// upload is logged and left pending; the remaining checks are still tried.
// If a run is already in progress SyncNow returns immediately with Skipped.
func (s *Syncer) SyncNow(ctx context.Context) (Result, error) {
	if !s.syncing.CompareAndSwap(false, true) {
		return Result{Skipped: true}, nil
	}
	defer s.syncing.Store(false)

	pending, err := s.store.Pending(s.opts.Batch)
	if err != nil {
		return Result{}, fmt.Errorf("loading pending checks: %w", err)
	}

	var res Result
	for _, c := range pending {
		if err := s.limiter.Wait(ctx); err != nil {
			return res, err
		}
		res.Attempted++

		if err := s.upload(ctx, c); err != nil {
			res.Failed++
			slog.Warn("failed to sync check", "check", c.ID, "error", err)
			continue
		}
		if err := s.store.MarkSynced(c.ID); err != nil {
			res.Failed++
			slog.Warn("failed to mark check synced", "check", c.ID, "error", err)
			continue
		}
		res.Synced++
	}

	if err := s.store.SetLastSync(time.Now()); err != nil {
		return res, fmt.Errorf("recording sync time: %w", err)
	}
	return res, nil
}

func (s *Syncer) upload(ctx context.Context, c *check.Check) error {
	body, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding check: %w", err)
	}

	url := strings.TrimRight(s.opts.Endpoint, "/") + "/symptom-check"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating sync request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", c.ID)
	if s.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.opts.Token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending check: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return nil
}

// Status returns the current sync state.
func (s *Syncer) Status() (Status, error) {
	pending, err := s.store.CountPending()
	if err != nil {
		return Status{}, fmt.Errorf("counting pending checks: %w", err)
	}
	last, err := s.store.LastSync()
	if err != nil {
		return Status{}, err
	}
	return Status{
		LastSync: last,
		Pending:  pending,
		Syncing:  s.syncing.Load(),
	}, nil
}
