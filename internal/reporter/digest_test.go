package reporter

import (
	"strings"
	"testing"
	"time"

	"github.com/bisheshoggo/symtriage/internal/check"
	"github.com/bisheshoggo/symtriage/internal/triage"
)

func makeCheck(patientID string, severity int, symptoms ...string) *check.Check {
	r := triage.Report{Symptoms: symptoms, Severity: severity, Duration: triage.DurationOneToThree, Age: 30}
	return check.New("clinic-1", patientID, time.Now(), r, triage.Assess(r))
}

func TestBuildDigestEmpty(t *testing.T) {
	since := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 2, 17, 0, 0, 0, 0, time.UTC)

	d := BuildDigest("clinic-1", nil, since, until)
	if d.InstanceID != "clinic-1" {
		t.Errorf("InstanceID = %q, want clinic-1", d.InstanceID)
	}
	if d.Total != 0 || d.Patients != 0 || len(d.ByLevel) != 0 || len(d.Emergencies) != 0 {
		t.Error("expected all counts to be zero for empty check list")
	}
}

func TestBuildDigestCounts(t *testing.T) {
	since := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 2, 17, 0, 0, 0, 0, time.UTC)

	notified := makeCheck("p-1", 4, "chest pain")
	notified.Notified = true
	synced := makeCheck("p-2", 3, "Fever", "cough")
	synced.Synced = true

	checks := []*check.Check{
		notified,
		synced,
		makeCheck("p-2", 2, "fever "),
		makeCheck("", 1, "runny nose"),
		makeCheck("p-3", 2, "seizure"),
	}

	d := BuildDigest("clinic-1", checks, since, until)

	if d.Total != 5 {
		t.Errorf("Total = %d, want 5", d.Total)
	}
	if d.ByLevel[triage.RiskEmergency] != 1 {
		t.Errorf("emergency = %d, want 1", d.ByLevel[triage.RiskEmergency])
	}
	if d.ByLevel[triage.RiskHigh] != 1 {
		t.Errorf("high = %d, want 1", d.ByLevel[triage.RiskHigh])
	}
	if d.ByLevel[triage.RiskMedium] != 2 {
		t.Errorf("medium = %d, want 2", d.ByLevel[triage.RiskMedium])
	}
	if d.ByLevel[triage.RiskLow] != 1 {
		t.Errorf("low = %d, want 1", d.ByLevel[triage.RiskLow])
	}
	if d.Symptoms["fever"] != 2 {
		t.Errorf("fever = %d, want 2 (case and whitespace folded)", d.Symptoms["fever"])
	}
	if d.Patients != 3 {
		t.Errorf("Patients = %d, want 3", d.Patients)
	}
	if d.Notified != 1 {
		t.Errorf("Notified = %d, want 1", d.Notified)
	}
	if d.Unsynced != 4 {
		t.Errorf("Unsynced = %d, want 4", d.Unsynced)
	}
	if len(d.Emergencies) != 1 || !strings.Contains(d.Emergencies[0], "chest pain") {
		t.Errorf("Emergencies = %v", d.Emergencies)
	}
}

func TestFormatDigest(t *testing.T) {
	d := &DigestSummary{
		InstanceID: "clinic-1",
		Since:      time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		Until:      time.Date(2024, 2, 17, 0, 0, 0, 0, time.UTC),
		Total:      6,
		Patients:   4,
		ByLevel: map[triage.RiskLevel]int{
			triage.RiskEmergency: 1,
			triage.RiskMedium:    3,
			triage.RiskLow:       2,
		},
		Symptoms:    map[string]int{"fever": 3, "cough": 2, "rash": 1},
		Notified:    1,
		Unsynced:    2,
		Emergencies: []string{"Emergency: chest pain (severity 4/10)"},
	}

	out := FormatDigest(d)

	want := []string{
		"clinic-1",
		"Checks:      6 (4 patients)",
		"Emergency: 1",
		"High:      0",
		"Medium:    3",
		"fever ×3",
		"Emergency: chest pain",
		"Alerts sent: 1",
		"Unsynced:    2",
	}

	for _, s := range want {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q\nfull output:\n%s", s, out)
		}
	}
}

func TestFormatDigestTitle(t *testing.T) {
	since := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 2, 16, 0, 0, 0, 0, time.UTC)

	title := FormatDigestTitle(since, until)
	if !strings.Contains(title, "weekly digest") {
		t.Errorf("title missing 'weekly digest': %q", title)
	}
	if !strings.Contains(title, "Feb 10") {
		t.Errorf("title missing start date: %q", title)
	}
}

func TestFormatBreakdown(t *testing.T) {
	m := map[string]int{"fever": 3, "rash": 1, "cough": 2}
	out := formatBreakdown(m, 0)

	feverIdx := strings.Index(out, "fever")
	coughIdx := strings.Index(out, "cough")
	rashIdx := strings.Index(out, "rash")

	if feverIdx == -1 || coughIdx == -1 || rashIdx == -1 {
		t.Fatalf("missing entries in breakdown: %q", out)
	}
	if feverIdx > coughIdx || coughIdx > rashIdx {
		t.Errorf("breakdown not sorted by count desc: %q", out)
	}
	if !strings.Contains(out, "×3") {
		t.Errorf("missing count marker: %q", out)
	}

	if out := formatBreakdown(m, 2); strings.Contains(out, "rash") {
		t.Errorf("limit 2 should drop the least frequent entry: %q", out)
	}
}
