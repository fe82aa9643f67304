package textnorm

import "unicode"

// leetMap translates common digit/symbol substitutions back to letters.
var leetMap = map[rune]rune{
	'@': 'a',
	'4': 'a',
	'3': 'e',
	'1': 'i',
	'!': 'i',
	'0': 'o',
	'5': 's',
	'$': 's',
	'7': 't',
	'+': 't',
	'8': 'b',
	'9': 'g',
	'6': 'g',
}

// NormalizeLeet rewrites leet-speak substitutions to plain letters, e.g.
// "M4ri@" to "Maria" or "P3dro" to "Pedro". Casing is preserved
// heuristically: a substituted first character comes out uppercase, and a
// substituted second character follows the first character's case.
//
// Only the spell-out path uses this; running it before matching would
// corrupt queries with genuine digits or punctuation.
func NormalizeLeet(text string) string {
	out := make([]rune, 0, len(text))
	for i, r := range []rune(text) {
		mapped, ok := leetMap[unicode.ToLower(r)]
		if !ok {
			out = append(out, r)
			continue
		}
		if i == 0 && (unicode.IsUpper(r) || !unicode.IsLetter(r)) {
			mapped = unicode.ToUpper(mapped)
		} else if i > 0 && len(out) == 1 && unicode.IsUpper(out[0]) && r == unicode.ToUpper(r) {
			mapped = unicode.ToUpper(mapped)
		}
		out = append(out, mapped)
	}
	return string(out)
}
