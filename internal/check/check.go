// Package check defines the stored record of one symptom assessment.
package check

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bisheshoggo/symtriage/internal/triage"
)

// Check is a submitted report together with its assessment.
type Check struct {
	ID         string        `json:"id" yaml:"id"`
	PatientID  string        `json:"patient_id,omitempty" yaml:"patient_id,omitempty"`
	InstanceID string        `json:"instance_id" yaml:"instance_id"`
	Timestamp  time.Time     `json:"timestamp" yaml:"timestamp"`
	Report     triage.Report `json:"report" yaml:"report"`
	Result     triage.Result `json:"result" yaml:"result"`
	Synced     bool          `json:"synced" yaml:"synced"`
	Notified   bool          `json:"notified" yaml:"notified"`
}

// New creates a Check with a generated UUID.
func New(instanceID, patientID string, ts time.Time, report triage.Report, result triage.Result) *Check {
	return &Check{
		ID:         uuid.NewString(),
		PatientID:  patientID,
		InstanceID: instanceID,
		Timestamp:  ts,
		Report:     report,
		Result:     result,
	}
}

// Level is shorthand for the assessed risk level.
func (c *Check) Level() triage.RiskLevel {
	return c.Result.RiskLevel
}

// Summary returns a one-line description such as
// "Emergency: chest pain, fever (severity 8/10)".
func (c *Check) Summary(lang triage.Language) string {
	symptoms := strings.Join(c.Report.Symptoms, ", ")
	if symptoms == "" {
		if lang == triage.Bengali {
			symptoms = "কোন লক্ষণ উল্লেখ নেই"
		} else {
			symptoms = "no symptoms listed"
		}
	}
	return fmt.Sprintf("%s: %s (severity %d/10)", c.Level().Label(), symptoms, c.Report.Severity)
}
