package reporter

import (
	"strings"
	"testing"

	"github.com/bisheshoggo/symtriage/internal/triage"
)

func TestEmergencyMessage(t *testing.T) {
	d := EmergencyData{
		PatientName: "Rahim",
		Age:         45,
		Location:    "Moulvibazar",
		Coordinates: &Coordinates{Lat: 24.48234, Lng: 91.77771},
		Emergency:   "Chest pain",
		Symptoms:    []string{"chest pain", "sweating"},
	}

	tests := []struct {
		lang triage.Language
		want string
	}{
		{
			triage.English,
			"EMERGENCY: Rahim, age 45, at Moulvibazar (24.4823,91.7777). Emergency: Chest pain. Symptoms: chest pain, sweating. Immediate help needed!",
		},
		{
			triage.Bengali,
			"জরুরি: Rahim, বয়স 45, অবস্থান: Moulvibazar (24.4823,91.7777). জরুরি: Chest pain. লক্ষণ: chest pain, sweating. অবিলম্বে সাহায্য প্রয়োজন!",
		},
	}

	for _, tt := range tests {
		if got := EmergencyMessage(d, tt.lang); got != tt.want {
			t.Errorf("EmergencyMessage(%s) =\n %q\nwant\n %q", tt.lang, got, tt.want)
		}
	}
}

func TestEmergencyMessageMinimal(t *testing.T) {
	d := EmergencyData{PatientName: "Rahim", Age: 45, Location: "Moulvibazar", Emergency: "Snake bite"}

	got := EmergencyMessage(d, triage.English)
	want := "EMERGENCY: Rahim, age 45, at Moulvibazar. Emergency: Snake bite. Immediate help needed!"
	if got != want {
		t.Errorf("EmergencyMessage = %q, want %q", got, want)
	}
}

func TestShareableEmergencyText(t *testing.T) {
	d := EmergencyData{
		PatientName: "Rahim",
		Age:         45,
		Location:    "Moulvibazar",
		Coordinates: &Coordinates{Lat: 24.5, Lng: 91.75},
		Emergency:   "Chest pain",
	}

	en := ShareableEmergencyText(d, triage.English)
	if !strings.HasSuffix(en, "\n\nLocation: https://maps.google.com/?q=24.5,91.75") {
		t.Errorf("English text missing maps link: %q", en)
	}

	bn := ShareableEmergencyText(d, triage.Bengali)
	if !strings.Contains(bn, "অবস্থান: https://maps.google.com/?q=24.5,91.75") {
		t.Errorf("Bengali text missing maps link: %q", bn)
	}

	d.Coordinates = nil
	if got := ShareableEmergencyText(d, triage.English); strings.Contains(got, "maps.google.com") {
		t.Errorf("text without coordinates should not link a map: %q", got)
	}
}
