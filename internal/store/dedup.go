package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bisheshoggo/symtriage/internal/check"
)

// DedupResult describes whether a check should be alerted on.
type DedupResult struct {
	// ShouldAlert is true if this check should trigger a notification.
	ShouldAlert bool
	// RecentCount is the number of earlier checks at the same level for the
	// same patient within the cooldown window.
	RecentCount int
	// Aggregated is true if the alert was suppressed during cooldown but the
	// aggregate threshold was just reached, so a summary alert should fire.
	Aggregated bool
}

// CheckCooldown determines whether a check should trigger an alert based on
// how many other checks for the same instance, patient and risk level were
// recorded within the cooldown window. The check itself is never counted, so
// it may be called before or after Insert. Checks without a patient ID
// cannot be attributed to one person and always alert.
//
// Logic:
//   - If no prior checks within window: alert (first occurrence).
//   - If prior checks exist but count < threshold: suppress (within cooldown).
//   - If count == threshold: alert as aggregated (repeated submissions).
//   - If count > threshold: suppress (already sent aggregate alert).
func (d *DB) CheckCooldown(c *check.Check, window time.Duration, threshold int) (DedupResult, error) {
	if c.PatientID == "" {
		return DedupResult{ShouldAlert: true}, nil
	}

	since := formatTS(c.Timestamp.Add(-window))
	until := formatTS(c.Timestamp)

	query := `SELECT COUNT(*) FROM checks
		WHERE instance_id = ? AND patient_id = ? AND risk_level = ?
		AND timestamp >= ? AND timestamp <= ? AND id <> ?`
	args := []any{c.InstanceID, c.PatientID, string(c.Level()), since, until, c.ID}

	var count int
	err := d.queryRow(query, args...).Scan(&count)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return DedupResult{}, fmt.Errorf("checking cooldown: %w", err)
	}

	result := DedupResult{RecentCount: count}

	switch {
	case count == 0:
		result.ShouldAlert = true
	case count == threshold:
		result.ShouldAlert = true
		result.Aggregated = true
	default:
		result.ShouldAlert = false
	}

	slog.Debug("cooldown check",
		"level", c.Level(),
		"patient", c.PatientID,
		"recent_count", count,
		"threshold", threshold,
		"should_alert", result.ShouldAlert,
	)

	return result, nil
}
