package triage

import "golang.org/x/text/language"

// Language selects which variant of a Text is shown.
type Language string

const (
	English Language = "en"
	Bengali Language = "bn"
)

// supportedTags is ordered so that index 0 is the fallback.
var supportedTags = []language.Tag{language.English, language.Bengali}

var tagMatcher = language.NewMatcher(supportedTags)

// ParseLanguage maps a BCP 47 tag or an Accept-Language header value
// ("bn-BD", "en-US,en;q=0.9") to a supported language. Anything it cannot
// match falls back to English.
func ParseLanguage(s string) Language {
	if s == "" {
		return English
	}
	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil || len(tags) == 0 {
		return English
	}
	_, idx, conf := tagMatcher.Match(tags...)
	if conf == language.No {
		return English
	}
	if supportedTags[idx] == language.Bengali {
		return Bengali
	}
	return English
}
