// Package intake runs a submitted symptom report through assessment,
// storage, cooldown and alerting.
package intake

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bisheshoggo/symtriage/internal/check"
	"github.com/bisheshoggo/symtriage/internal/store"
	"github.com/bisheshoggo/symtriage/internal/triage"
)

// Store is the subset of the check store used by the pipeline.
type Store interface {
	Insert(c *check.Check) error
	CheckCooldown(c *check.Check, window time.Duration, threshold int) (store.DedupResult, error)
	MarkNotified(id string) error
}

// Notifier delivers alerts for stored checks.
type Notifier interface {
	Enabled() bool
	Report(ctx context.Context, c *check.Check, recent int) error
}

// Submission is a report as received from a client.
type Submission struct {
	PatientID string        `json:"patient_id"`
	Report    triage.Report `json:"report"`
}

// Options configures a Service.
type Options struct {
	InstanceID         string
	CooldownWindow     time.Duration
	AggregateThreshold int
	// ShouldAlert reports whether a risk level is alerted on.
	ShouldAlert func(level string) bool
	// Now defaults to time.Now.
	Now func() time.Time
}

// Service is the intake pipeline. It is safe for concurrent use as long as
// its Store and Notifier are.
type Service struct {
	engine   *triage.Engine
	store    Store
	notifier Notifier
	opts     Options
}

// New creates a Service. notifier may be nil to disable alerting.
func New(st Store, notifier Notifier, opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ShouldAlert == nil {
		opts.ShouldAlert = func(level string) bool { return level == string(triage.RiskEmergency) }
	}
	return &Service{
		engine:   triage.New(),
		store:    st,
		notifier: notifier,
		opts:     opts,
	}
}

// Submit validates and assesses a report, stores the resulting check and
// sends an alert when required. Validation and storage errors fail the
// submission; alert errors are logged and never do.
func (s *Service) Submit(ctx context.Context, sub Submission) (*check.Check, error) {
	if err := sub.Report.Validate(); err != nil {
		return nil, err
	}

	result := s.engine.Assess(sub.Report)
	c := check.New(s.opts.InstanceID, sub.PatientID, s.opts.Now(), sub.Report, result)

	slog.Info("check assessed",
		"check", c.ID,
		"patient", c.PatientID,
		"level", result.RiskLevel,
		"severity", sub.Report.Severity,
	)

	if err := s.store.Insert(c); err != nil {
		return nil, fmt.Errorf("storing check: %w", err)
	}

	s.alert(ctx, c)
	return c, nil
}

func (s *Service) alert(ctx context.Context, c *check.Check) {
	if s.notifier == nil || !s.notifier.Enabled() || !s.opts.ShouldAlert(string(c.Level())) {
		return
	}

	dedup, err := s.store.CheckCooldown(c, s.opts.CooldownWindow, s.opts.AggregateThreshold)
	if err != nil {
		// Fail open: alert when the cooldown state is unknown.
		slog.Error("cooldown check failed", "error", err)
		dedup.ShouldAlert = true
	}

	if !dedup.ShouldAlert {
		slog.Debug("notification suppressed by cooldown",
			"level", c.Level(),
			"patient", c.PatientID,
			"recent_count", dedup.RecentCount,
		)
		return
	}

	recent := 0
	if dedup.Aggregated {
		recent = dedup.RecentCount
	}
	if err := s.notifier.Report(ctx, c, recent); err != nil {
		slog.Error("failed to send notification", "check", c.ID, "error", err)
		return
	}
	if err := s.store.MarkNotified(c.ID); err != nil {
		slog.Warn("failed to mark check notified", "check", c.ID, "error", err)
		return
	}
	c.Notified = true
}
