package reporter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bisheshoggo/symtriage/internal/check"
	"github.com/bisheshoggo/symtriage/internal/triage"
)

// topSymptomCount caps the symptom breakdown in a digest.
const topSymptomCount = 5

// DigestSummary holds aggregated check counts for a digest period.
type DigestSummary struct {
	InstanceID string
	Since      time.Time
	Until      time.Time

	Total       int
	ByLevel     map[triage.RiskLevel]int
	Symptoms    map[string]int // lowercased symptom -> count
	Patients    int            // distinct non-empty patient IDs
	Notified    int
	Unsynced    int
	Emergencies []string // one-line summaries, newest first
}

// BuildDigest aggregates a list of checks into a DigestSummary.
func BuildDigest(instanceID string, checks []*check.Check, since, until time.Time) *DigestSummary {
	d := &DigestSummary{
		InstanceID: instanceID,
		Since:      since,
		Until:      until,
		ByLevel:    make(map[triage.RiskLevel]int),
		Symptoms:   make(map[string]int),
	}

	patients := make(map[string]bool)

	for _, c := range checks {
		d.Total++
		d.ByLevel[c.Level()]++

		for _, s := range c.Report.Symptoms {
			s = strings.ToLower(strings.TrimSpace(s))
			if s == "" {
				continue
			}
			d.Symptoms[s]++
		}
		if c.PatientID != "" {
			patients[c.PatientID] = true
		}
		if c.Notified {
			d.Notified++
		}
		if !c.Synced {
			d.Unsynced++
		}
		if c.Level() == triage.RiskEmergency {
			d.Emergencies = append(d.Emergencies, c.Summary(triage.English))
		}
	}
	d.Patients = len(patients)

	return d
}

// FormatDigest formats a DigestSummary as human-readable text suitable for
// ntfy or stdout output.
func FormatDigest(d *DigestSummary) string {
	var b strings.Builder

	dateRange := fmt.Sprintf("%s - %s",
		d.Since.Local().Format("Jan 02"),
		d.Until.Local().Format("Jan 02"))

	fmt.Fprintf(&b, "=== %s ===\n", d.InstanceID)
	fmt.Fprintf(&b, "Period: %s\n\n", dateRange)

	fmt.Fprintf(&b, "Checks:      %d (%d patients)\n", d.Total, d.Patients)
	for i := len(triage.Levels) - 1; i >= 0; i-- {
		level := triage.Levels[i]
		fmt.Fprintf(&b, "  %-10s %d\n", level.Label()+":", d.ByLevel[level])
	}

	if len(d.Symptoms) > 0 {
		fmt.Fprintf(&b, "Top symptoms: %s\n", formatBreakdown(d.Symptoms, topSymptomCount))
	}
	if len(d.Emergencies) > 0 {
		b.WriteString("Emergencies:\n")
		for _, e := range d.Emergencies {
			fmt.Fprintf(&b, "  - %s\n", e)
		}
	}

	fmt.Fprintf(&b, "Alerts sent: %d\n", d.Notified)
	fmt.Fprintf(&b, "Unsynced:    %d\n", d.Unsynced)

	return b.String()
}

// FormatDigestTitle generates the ntfy title for a digest notification.
func FormatDigestTitle(since, until time.Time) string {
	return fmt.Sprintf("\U0001f4ca symtriage weekly digest (%s-%s)",
		since.Local().Format("Jan 02"),
		until.Local().Format("Jan 02"))
}

// formatBreakdown turns a map[string]int into "foo ×2, bar ×1" sorted by
// count desc, keeping at most limit entries (0 keeps all).
func formatBreakdown(m map[string]int, limit int) string {
	type entry struct {
		name  string
		count int
	}

	entries := make([]entry, 0, len(m))
	for name, count := range m {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s ×%d", e.name, e.count)
	}
	return strings.Join(parts, ", ")
}
