package triage

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Keyword tables are matched as plain substrings of the lowercased, NFC
// normalized corpus. Each list carries English and Bengali phrases.

// Emergency keywords
var emergencyKeywords = normalizeAll([]string{
	"chest pain",
	"difficulty breathing",
	"unconscious",
	"severe bleeding",
	"snake bite",
	"poisoning",
	"stroke",
	"heart attack",
	"severe burn",
	"head injury",
	"বুকে ব্যথা",
	"শ্বাসকষ্ট",
	"অজ্ঞান",
	"রক্তপাত",
	"সাপে কাটা",
	"বিষক্রিয়া",
})

// High-risk keywords
var highRiskKeywords = normalizeAll([]string{
	"high fever",
	"persistent vomiting",
	"severe pain",
	"confusion",
	"seizure",
	"blood in stool",
	"blood in urine",
	"severe headache",
	"তীব্র জ্বর",
	"বমি",
	"তীব্র ব্যথা",
	"খিঁচুনি",
	"মাথাব্যথা",
})

// Medium-risk keywords
var mediumRiskKeywords = normalizeAll([]string{
	"fever",
	"cough",
	"diarrhea",
	"nausea",
	"rash",
	"joint pain",
	"fatigue",
	"headache",
	"জ্বর",
	"কাশি",
	"ডায়রিয়া",
	"ফুসকুড়ি",
	"ক্লান্তি",
})

// Phrases that produce a specific emergency reason.
var (
	chestPainKeywords = normalizeAll([]string{"chest pain", "বুকে ব্যথা"})
	breathingKeywords = normalizeAll([]string{"difficulty breathing", "শ্বাসকষ্ট"})
)

// Temperature thresholds in °F. All comparisons are strict.
const (
	emergencyTempF = 104.0
	highTempF      = 102.0
	mediumTempF    = 100.0
)

// Severity thresholds on the 1-10 self-reported scale.
const (
	emergencySeverity     = 9
	pregnancyEmergencySev = 7
	highSeverity          = 7
	chronicHighSeverity   = 6
	mediumSeverity        = 5
)

// corpus is the text keyword tables are matched against.
type corpus string

// buildCorpus joins the symptoms and notes with single spaces, lowercases
// the result and normalizes it to NFC.
func buildCorpus(r Report) corpus {
	parts := make([]string, 0, len(r.Symptoms)+1)
	parts = append(parts, r.Symptoms...)
	parts = append(parts, r.Notes)
	return corpus(normalize(strings.Join(parts, " ")))
}

// containsAny reports whether any keyword is a substring of the corpus.
func (c corpus) containsAny(keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(string(c), kw) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return norm.NFC.String(strings.ToLower(s))
}

func normalizeAll(keywords []string) []string {
	out := make([]string, len(keywords))
	for i, kw := range keywords {
		out[i] = normalize(kw)
	}
	return out
}
