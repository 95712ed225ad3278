package reporter

import (
	"fmt"
	"strings"

	"github.com/bisheshoggo/symtriage/internal/check"
	"github.com/bisheshoggo/symtriage/internal/format"
	"github.com/bisheshoggo/symtriage/internal/triage"
)

// levelEmoji maps risk levels to display emojis for ntfy titles.
var levelEmoji = map[triage.RiskLevel]string{
	triage.RiskEmergency: "\U0001f6a8", // police light
	triage.RiskHigh:      "\U0001f534", // red circle
	triage.RiskMedium:    "\U0001f7e1", // yellow circle
	triage.RiskLow:       "\U0001f7e2", // green circle
}

// levelTags maps risk levels to ntfy tag names.
var levelTags = map[triage.RiskLevel]string{
	triage.RiskEmergency: "rotating_light,ambulance",
	triage.RiskHigh:      "warning,hospital",
	triage.RiskMedium:    "stethoscope",
	triage.RiskLow:       "white_check_mark",
}

// FormatTitle builds the ntfy notification title for a check. recent is the
// number of earlier checks folded into this alert by the cooldown.
func FormatTitle(c *check.Check, recent int) string {
	emoji := levelEmoji[c.Level()]
	if emoji == "" {
		emoji = "\u2757" // exclamation mark
	}
	summary := c.Summary(triage.English)
	if recent > 0 {
		summary = fmt.Sprintf("[x%d] %s", recent+1, summary)
	}
	return fmt.Sprintf("%s [%s] %s", emoji, c.InstanceID, summary)
}

// FormatBody builds the ntfy notification body for a check. Both languages
// are included so the receiving health worker can read it either way.
func FormatBody(c *check.Check, location, hotline string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Instance: %s\n", c.InstanceID)
	if c.PatientID != "" {
		fmt.Fprintf(&b, "Patient: %s\n", c.PatientID)
	}
	fmt.Fprintf(&b, "Time: %s\n", c.Timestamp.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "Severity: %d/10, duration %s\n", c.Report.Severity, c.Report.Duration.Label().Primary)
	if t := c.Report.TemperatureF; t != nil {
		fmt.Fprintf(&b, "Temperature: %s\n", format.Fahrenheit(*t))
	}

	res := c.Result
	fmt.Fprintf(&b, "\n%s\n%s\n", res.Urgency.Primary, res.Urgency.Secondary)

	if len(res.Reasons) > 0 {
		b.WriteString("\nReasons:\n")
		for _, r := range res.Reasons {
			fmt.Fprintf(&b, "- %s / %s\n", r.Primary, r.Secondary)
		}
	}

	fmt.Fprintf(&b, "\n%s\n", res.Recommendation.Primary)

	if res.ShouldSeekImmediateCare {
		fmt.Fprintf(&b, "Hotline: %s\n", hotline)
		sms := EmergencyMessage(EmergencyData{
			PatientName: patientName(c),
			Age:         c.Report.Age,
			Location:    location,
			Emergency:   emergencyReason(res, triage.Bengali),
			Symptoms:    c.Report.Symptoms,
		}, triage.Bengali)
		fmt.Fprintf(&b, "\nSMS:\n%s\n", sms)
	}

	return b.String()
}

// TagsForLevel returns the ntfy tags string for a risk level.
func TagsForLevel(level triage.RiskLevel) string {
	if tags, ok := levelTags[level]; ok {
		return tags
	}
	return "warning"
}

func patientName(c *check.Check) string {
	if c.PatientID != "" {
		return c.PatientID
	}
	return "Patient"
}

func emergencyReason(res triage.Result, lang triage.Language) string {
	if len(res.Reasons) > 0 {
		return res.Reasons[0].In(lang)
	}
	return res.Urgency.In(lang)
}
