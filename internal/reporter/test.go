package reporter

import (
	"time"

	"github.com/bisheshoggo/symtriage/internal/check"
	"github.com/bisheshoggo/symtriage/internal/triage"
)

// TestCheck creates a synthetic check for testing ntfy connectivity.
type TestCheck struct {
	InstanceID string
}

// ToCheck converts a TestCheck to a real emergency Check suitable for Report().
func (t *TestCheck) ToCheck() *check.Check {
	report := triage.Report{
		Symptoms: []string{"test notification"},
		Severity: 9,
		Duration: triage.DurationUnderDay,
		Notes:    "This is a test notification to verify ntfy connectivity.",
	}
	c := check.New(t.InstanceID, "test", time.Now(), report, triage.Assess(report))
	c.ID = "test-" + time.Now().Format("20060102-150405")
	return c
}
