package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Number words one..ten translate to digits so "2 of cups" and
// "two of cups" normalize identically.
var numberWords = map[string]string{
	"one": "1", "two": "2", "three": "3", "four": "4", "five": "5",
	"six": "6", "seven": "7", "eight": "8", "nine": "9", "ten": "10",
}

var (
	numberWordsRE = regexp.MustCompile(`\b(one|two|three|four|five|six|seven|eight|nine|ten)\b`)
	punctRE       = regexp.MustCompile(`[^a-z0-9\s]+`)
	spaceRE       = regexp.MustCompile(`\s+`)
)

// stripDiacritics removes combining marks so queries like "hérmit" still
// match. A fresh transformer chain is built per call; the chained
// transformers carry state and are not safe for concurrent reuse.
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize canonicalizes a card name or user query for matching:
// lowercase, diacritics stripped, number words translated to digits,
// punctuation dropped, whitespace collapsed, and a leading "the " removed.
// Card names and queries go through the same function so both sides of a
// comparison agree.
func Normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = stripDiacritics(s)
	s = numberWordsRE.ReplaceAllStringFunc(s, func(w string) string {
		return numberWords[w]
	})
	s = punctRE.ReplaceAllString(s, "")
	s = spaceRE.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "the ")
	return s
}
