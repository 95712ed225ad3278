package reporter

import (
	"fmt"
	"strings"

	"github.com/bisheshoggo/symtriage/internal/triage"
)

// Coordinates is a WGS84 position.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// EmergencyData is what a patient or health worker shares when asking for
// help.
type EmergencyData struct {
	PatientName string       `json:"patient_name"`
	Age         int          `json:"age"`
	Location    string       `json:"location"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Emergency   string       `json:"emergency"`
	Symptoms    []string     `json:"symptoms,omitempty"`
}

// EmergencyMessage renders a single SMS-sized emergency message.
func EmergencyMessage(d EmergencyData, lang triage.Language) string {
	var coords string
	if d.Coordinates != nil {
		coords = fmt.Sprintf(" (%.4f,%.4f)", d.Coordinates.Lat, d.Coordinates.Lng)
	}

	if lang == triage.Bengali {
		var symptoms string
		if len(d.Symptoms) > 0 {
			symptoms = ". লক্ষণ: " + strings.Join(d.Symptoms, ", ")
		}
		return fmt.Sprintf("জরুরি: %s, বয়স %d, অবস্থান: %s%s. জরুরি: %s%s. অবিলম্বে সাহায্য প্রয়োজন!",
			d.PatientName, d.Age, d.Location, coords, d.Emergency, symptoms)
	}

	var symptoms string
	if len(d.Symptoms) > 0 {
		symptoms = ". Symptoms: " + strings.Join(d.Symptoms, ", ")
	}
	return fmt.Sprintf("EMERGENCY: %s, age %d, at %s%s. Emergency: %s%s. Immediate help needed!",
		d.PatientName, d.Age, d.Location, coords, d.Emergency, symptoms)
}

// ShareableEmergencyText is EmergencyMessage followed by a maps link when
// coordinates are known.
func ShareableEmergencyText(d EmergencyData, lang triage.Language) string {
	msg := EmergencyMessage(d, lang)
	if d.Coordinates == nil {
		return msg
	}
	label := "Location"
	if lang == triage.Bengali {
		label = "অবস্থান"
	}
	return fmt.Sprintf("%s\n\n%s: https://maps.google.com/?q=%v,%v", msg, label, d.Coordinates.Lat, d.Coordinates.Lng)
}
