package triage

import (
	"errors"
	"fmt"
	"math"
)

// Validation errors returned by Report.Validate.
var (
	ErrInvalidSeverity    = errors.New("severity must be between 1 and 10")
	ErrInvalidDuration    = errors.New("unknown duration bucket")
	ErrInvalidAge         = errors.New("age must not be negative")
	ErrInvalidTemperature = errors.New("temperature out of range")
)

// Plausible body temperature bounds in °F, used only by Validate.
const (
	minTemperatureF = 80.0
	maxTemperatureF = 115.0
)

// Report is a structured symptom report as filled in by the patient.
//
// The engine assumes Severity is already within [1,10] and Duration is a
// known bucket. Callers enforce this with Validate; Assess never rejects a
// report, it only classifies it.
type Report struct {
	Symptoms             []string       `json:"symptoms" yaml:"symptoms"`
	Duration             DurationBucket `json:"duration" yaml:"duration"`
	Severity             int            `json:"severity" yaml:"severity"`
	Age                  int            `json:"age" yaml:"age"`
	TemperatureF         *float64       `json:"temperature_f,omitempty" yaml:"temperature_f,omitempty"`
	HasChronicConditions bool           `json:"has_chronic_conditions" yaml:"has_chronic_conditions"`
	IsPregnant           bool           `json:"is_pregnant,omitempty" yaml:"is_pregnant,omitempty"`
	Notes                string         `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Validate checks the preconditions Assess relies on.
func (r Report) Validate() error {
	if r.Severity < 1 || r.Severity > 10 {
		return fmt.Errorf("%w: got %d", ErrInvalidSeverity, r.Severity)
	}
	if !r.Duration.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDuration, r.Duration)
	}
	if r.Age < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidAge, r.Age)
	}
	if t := r.TemperatureF; t != nil {
		if math.IsNaN(*t) || *t < minTemperatureF || *t > maxTemperatureF {
			return fmt.Errorf("%w: %.1f°F", ErrInvalidTemperature, *t)
		}
	}
	return nil
}

// hasTempAbove reports whether a temperature was given and exceeds limit.
func (r Report) hasTempAbove(limit float64) bool {
	return r.TemperatureF != nil && *r.TemperatureF > limit
}

// Temp returns a pointer to f, for building reports with a temperature.
func Temp(f float64) *float64 {
	return &f
}
