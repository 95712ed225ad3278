package triage

import "slices"

// Engine assesses symptom reports. It holds no state, so one value may be
// shared by any number of goroutines.
type Engine struct{}

// New creates an Engine.
func New() *Engine {
	return &Engine{}
}

var defaultEngine = New()

// Assess classifies r with a shared Engine.
func Assess(r Report) Result {
	return defaultEngine.Assess(r)
}

// Assess classifies a report into a risk tier. The first tier whose rules
// match wins; a report that matches nothing is low risk.
func (e *Engine) Assess(r Report) Result {
	text := buildCorpus(r)

	// Tier 1: Emergency
	if isEmergency(text, r) {
		return emergencyResult(text, r)
	}

	// Tier 2: High
	if isHighRisk(text, r) {
		return highRiskResult(text, r)
	}

	// Tier 3: Medium
	if isMediumRisk(text, r) {
		return mediumRiskResult(text, r)
	}

	// Tier 4: Low
	return lowRiskResult()
}

// ExplainRiskLevel returns a one-sentence explanation of a tier in the given
// language, or "" for an unknown tier.
func (e *Engine) ExplainRiskLevel(level RiskLevel, lang Language) string {
	g, ok := tierGuidance[level]
	if !ok {
		return ""
	}
	return g.explanation.In(lang)
}

// ExplainRiskLevel explains a tier with a shared Engine.
func ExplainRiskLevel(level RiskLevel, lang Language) string {
	return defaultEngine.ExplainRiskLevel(level, lang)
}

func isEmergency(text corpus, r Report) bool {
	return text.containsAny(emergencyKeywords) ||
		r.hasTempAbove(emergencyTempF) ||
		r.Severity >= emergencySeverity ||
		(r.IsPregnant && r.Severity >= pregnancyEmergencySev)
}

func isHighRisk(text corpus, r Report) bool {
	return text.containsAny(highRiskKeywords) ||
		r.hasTempAbove(highTempF) ||
		(r.Severity >= highSeverity && r.Duration == DurationMoreThanWeek) ||
		(r.HasChronicConditions && r.Severity >= chronicHighSeverity)
}

// isMediumRisk matches moderate severity only below the high threshold.
// Severity 7-8 without a high-risk qualifier falls through to low.
func isMediumRisk(text corpus, r Report) bool {
	return text.containsAny(mediumRiskKeywords) ||
		(r.hasTempAbove(mediumTempF) && !r.hasTempAbove(highTempF)) ||
		(r.Severity >= mediumSeverity && r.Severity < highSeverity)
}

func emergencyResult(text corpus, r Report) Result {
	var reasons []Text

	chest := text.containsAny(chestPainKeywords)
	breathing := text.containsAny(breathingKeywords)
	if chest {
		reasons = append(reasons, reasonChestPain)
	}
	if breathing {
		reasons = append(reasons, reasonBreathing)
	}
	if !chest && !breathing && text.containsAny(emergencyKeywords) {
		reasons = append(reasons, reasonEmergencySymptom)
	}
	if r.Severity >= emergencySeverity {
		reasons = append(reasons, reasonExtremeSeverity)
	}
	if r.hasTempAbove(emergencyTempF) {
		reasons = append(reasons, reasonDangerousFever)
	}
	if r.IsPregnant && r.Severity >= pregnancyEmergencySev {
		reasons = append(reasons, reasonPregnancySevere)
	}

	return build(RiskEmergency, reasons)
}

func highRiskResult(text corpus, r Report) Result {
	var reasons []Text

	if text.containsAny(highRiskKeywords) {
		reasons = append(reasons, reasonHighRiskSymptom)
	}
	if r.hasTempAbove(highTempF) {
		reasons = append(reasons, reasonHighFever)
	}
	if r.Severity >= highSeverity {
		reasons = append(reasons, reasonHighSeverity)
	}
	if r.HasChronicConditions {
		reasons = append(reasons, reasonChronic)
	}

	return build(RiskHigh, reasons)
}

func mediumRiskResult(text corpus, r Report) Result {
	var reasons []Text

	if text.containsAny(mediumRiskKeywords) {
		reasons = append(reasons, reasonMediumSymptom)
	}
	if r.hasTempAbove(mediumTempF) {
		reasons = append(reasons, reasonModerateFever)
	}
	if r.Severity >= mediumSeverity {
		reasons = append(reasons, reasonModerateSeverity)
	}
	if r.Duration == DurationMoreThanWeek {
		reasons = append(reasons, reasonLongDuration)
	}

	return build(RiskMedium, reasons)
}

func lowRiskResult() Result {
	return build(RiskLow, slices.Clone(lowReasons))
}

// build attaches the tier's canned guidance. Slices are cloned so callers
// can never mutate the shared tables.
func build(level RiskLevel, reasons []Text) Result {
	g := tierGuidance[level]
	if reasons == nil {
		reasons = []Text{}
	}
	return Result{
		RiskLevel:               level,
		Urgency:                 g.urgency,
		Recommendation:          g.recommendation,
		Reasons:                 reasons,
		Advice:                  slices.Clone(g.advice),
		WarningSigns:            slices.Clone(g.warningSigns),
		ShouldSeekImmediateCare: level == RiskEmergency,
	}
}
