// Package locale resolves the two UI languages and holds the few strings the
// backend renders itself.
package locale

import (
	"golang.org/x/text/language"
)

// Language is a supported UI language.
type Language string

const (
	English Language = "en"
	Arabic  Language = "ar"
)

var (
	supported = []language.Tag{language.English, language.Arabic}
	matcher   = language.NewMatcher(supported)
)

// Parse maps a BCP 47 tag or Accept-Language header value onto a supported
// language. Anything unrecognised resolves to English.
func Parse(s string) Language {
	if s == "" {
		return English
	}

	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil || len(tags) == 0 {
		return English
	}

	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return English
	}
	if supported[idx] == language.Arabic {
		return Arabic
	}
	return English
}

// RTL reports whether the language is written right to left.
func (l Language) RTL() bool {
	return l == Arabic
}

// String implements fmt.Stringer.
func (l Language) String() string {
	return string(l)
}

// Fallback reasons shown when text generation is unavailable. The "empty"
// variant covers a successful call that produced no text.
var (
	emptyReason = map[Language]string{
		English: "A brilliant choice that perfectly matches your current vibe.",
		Arabic:  "خيار رائع يتناسب مع مزاجك الحالي تماماً.",
	}
	errorReason = map[Language]string{
		English: "An excellent choice perfectly suited to your mood.",
		Arabic:  "خيار رائع يتناسب مع مزاجك الحالي.",
	}
)

// EmptyReason returns the fallback used when generation returned no text.
func EmptyReason(l Language) string {
	if s, ok := emptyReason[l]; ok {
		return s
	}
	return emptyReason[English]
}

// ErrorReason returns the fallback used when generation failed.
func ErrorReason(l Language) string {
	if s, ok := errorReason[l]; ok {
		return s
	}
	return errorReason[English]
}
