// Package triage classifies symptom reports into risk tiers using an ordered
// cascade of keyword and vital-sign rules, and attaches bilingual guidance.
package triage

import (
	"fmt"
	"strings"
)

// RiskLevel is the triage tier assigned to a report.
type RiskLevel string

const (
	RiskLow       RiskLevel = "low"
	RiskMedium    RiskLevel = "medium"
	RiskHigh      RiskLevel = "high"
	RiskEmergency RiskLevel = "emergency"
)

// Levels lists all risk levels from least to most severe.
var Levels = []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskEmergency}

// Rank orders risk levels: low=1 < medium=2 < high=3 < emergency=4.
// Unknown levels rank 0.
func (l RiskLevel) Rank() int {
	switch l {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	case RiskEmergency:
		return 4
	default:
		return 0
	}
}

// Label returns a human-readable label for the level.
func (l RiskLevel) Label() string {
	switch l {
	case RiskLow:
		return "Low"
	case RiskMedium:
		return "Medium"
	case RiskHigh:
		return "High"
	case RiskEmergency:
		return "Emergency"
	default:
		return string(l)
	}
}

// ParseRiskLevel converts a string such as "High" or "emergency" to a RiskLevel.
func ParseRiskLevel(s string) (RiskLevel, error) {
	l := RiskLevel(strings.ToLower(strings.TrimSpace(s)))
	if l.Rank() == 0 {
		return "", fmt.Errorf("unknown risk level %q", s)
	}
	return l, nil
}

// DurationBucket is how long the symptoms have lasted.
type DurationBucket string

const (
	DurationUnderDay     DurationBucket = "less-than-day"
	DurationOneToThree   DurationBucket = "1-3-days"
	DurationFourToSeven  DurationBucket = "4-7-days"
	DurationMoreThanWeek DurationBucket = "more-than-week"
)

// durationLabels maps each bucket to its display label.
var durationLabels = map[DurationBucket]Text{
	DurationUnderDay:     {"under a day", "এক দিনের কম"},
	DurationOneToThree:   {"1-3 days", "১-৩ দিন"},
	DurationFourToSeven:  {"4-7 days", "৪-৭ দিন"},
	DurationMoreThanWeek: {"more than a week", "এক সপ্তাহের বেশি"},
}

// Label returns the bilingual display label for the bucket.
func (d DurationBucket) Label() Text {
	if t, ok := durationLabels[d]; ok {
		return t
	}
	return Text{string(d), string(d)}
}

// Valid reports whether d is one of the known buckets.
func (d DurationBucket) Valid() bool {
	_, ok := durationLabels[d]
	return ok
}

// ParseDurationBucket accepts a bucket id ("1-3-days") or its English label
// ("1–3 days", "more than a week"), case-insensitively.
func ParseDurationBucket(s string) (DurationBucket, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("–", "-", "—", "-").Replace(norm)

	if d := DurationBucket(norm); d.Valid() {
		return d, nil
	}
	for d, label := range durationLabels {
		if norm == label.Primary || strings.ReplaceAll(norm, " ", "") == strings.ReplaceAll(label.Primary, " ", "") {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDuration, s)
}

// Text is a user-facing string in both supported languages. The two variants
// are always constructed together.
type Text struct {
	Primary   string `json:"en" yaml:"en"`
	Secondary string `json:"bn" yaml:"bn"`
}

// In returns the variant for the given language.
func (t Text) In(lang Language) string {
	if lang == Bengali {
		return t.Secondary
	}
	return t.Primary
}

// Result is the outcome of assessing a Report.
type Result struct {
	RiskLevel               RiskLevel `json:"risk_level" yaml:"risk_level"`
	Urgency                 Text      `json:"urgency" yaml:"urgency"`
	Recommendation          Text      `json:"recommendation" yaml:"recommendation"`
	Reasons                 []Text    `json:"reasons" yaml:"reasons"`
	Advice                  []Text    `json:"advice" yaml:"advice"`
	WarningSigns            []Text    `json:"warning_signs" yaml:"warning_signs"`
	ShouldSeekImmediateCare bool      `json:"should_seek_immediate_care" yaml:"should_seek_immediate_care"`
}

// Localize flattens every bilingual field of the result into one language.
func (r Result) Localize(lang Language) LocalizedResult {
	return LocalizedResult{
		RiskLevel:               r.RiskLevel,
		Urgency:                 r.Urgency.In(lang),
		Recommendation:          r.Recommendation.In(lang),
		Reasons:                 pick(r.Reasons, lang),
		Advice:                  pick(r.Advice, lang),
		WarningSigns:            pick(r.WarningSigns, lang),
		ShouldSeekImmediateCare: r.ShouldSeekImmediateCare,
	}
}

// LocalizedResult is a Result rendered in a single language.
type LocalizedResult struct {
	RiskLevel               RiskLevel `json:"risk_level" yaml:"risk_level"`
	Urgency                 string    `json:"urgency" yaml:"urgency"`
	Recommendation          string    `json:"recommendation" yaml:"recommendation"`
	Reasons                 []string  `json:"reasons" yaml:"reasons"`
	Advice                  []string  `json:"advice" yaml:"advice"`
	WarningSigns            []string  `json:"warning_signs" yaml:"warning_signs"`
	ShouldSeekImmediateCare bool      `json:"should_seek_immediate_care" yaml:"should_seek_immediate_care"`
}

func pick(texts []Text, lang Language) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = t.In(lang)
	}
	return out
}
