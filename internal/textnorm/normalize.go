// Package textnorm provides deterministic canonicalization of Spanish
// free-text input and character-level spelling out for the spell-out
// fallback mode.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	repeatedBang     = regexp.MustCompile(`!{2,}`)
	repeatedQuestion = regexp.MustCompile(`\?{2,}`)
	repeatedDot      = regexp.MustCompile(`\.{2,}`)
	repeatedOther    = regexp.MustCompile(`([,;:]){2,}`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
)

// stripMarks decomposes to NFD, drops combining marks, and recomposes, so
// accented and unaccented spellings of the same word collapse to one form.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes text for matching: lowercase, collapse repeated
// punctuation, strip diacritics, replace everything that is not a letter,
// digit, or whitespace with a space, and collapse whitespace runs.
//
// Repeated punctuation is collapsed before the diacritics/special-character
// passes so that "hola!!!" and "hola" normalize to the same string. The
// function is total: any input, including empty or all-noise text, yields a
// (possibly empty) valid result.
func Normalize(text string) string {
	text = strings.ToLower(text)

	text = repeatedBang.ReplaceAllString(text, "!")
	text = repeatedQuestion.ReplaceAllString(text, "?")
	text = repeatedDot.ReplaceAllString(text, ".")
	text = repeatedOther.ReplaceAllString(text, "$1")

	if stripped, _, err := transform.String(stripMarks, text); err == nil {
		text = stripped
	}

	text = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, text)

	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// NormalizeAll normalizes every string in texts, preserving order.
func NormalizeAll(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = Normalize(t)
	}
	return out
}
