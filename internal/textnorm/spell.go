package textnorm

import (
	"strings"
	"unicode"
)

// SpaceToken is emitted for a space when spelling with spaces included.
const SpaceToken = "espacio"

// charNames maps punctuation to its spoken Spanish name.
var charNames = map[rune]string{
	'.':  "punto",
	',':  "coma",
	';':  "punto y coma",
	':':  "dos puntos",
	'!':  "exclamación",
	'?':  "interrogación",
	'-':  "guión",
	'_':  "guión bajo",
	'@':  "arroba",
	'#':  "numeral",
	'$':  "dólar",
	'%':  "porcentaje",
	'&':  "ampersand",
	'/':  "barra",
	'\\': "barra invertida",
	'(':  "paréntesis abierto",
	')':  "paréntesis cerrado",
	'[':  "corchete abierto",
	']':  "corchete cerrado",
	'{':  "llave abierta",
	'}':  "llave cerrada",
	'+':  "más",
	'=':  "igual",
	'*':  "asterisco",
	'"':  "comillas",
	'\'': "comilla simple",
}

// SpellOut spells text character by character, uppercased. The Spanish
// digraphs LL, RR, and CH are emitted as single tokens; the scan checks
// them greedily before falling back to single characters. Spaces become
// the "espacio" token, or are dropped entirely when includeSpaces is
// false. Punctuation maps to its Spanish name; anything unmapped yields a
// literal "carácter especial: <char>" token.
//
// Total over any input; empty text yields an empty sequence.
func SpellOut(text string, includeSpaces bool) []string {
	if text == "" {
		return []string{}
	}

	chars := []rune(strings.ToUpper(text))
	out := make([]string, 0, len(chars))
	for i := 0; i < len(chars); {
		if i+1 < len(chars) {
			switch pair := string(chars[i : i+2]); pair {
			case "LL", "RR", "CH":
				out = append(out, pair)
				i += 2
				continue
			}
		}

		r := chars[i]
		switch {
		case r == ' ':
			if includeSpaces {
				out = append(out, SpaceToken)
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			out = append(out, string(r))
		default:
			if name, ok := charNames[r]; ok {
				out = append(out, name)
			} else {
				out = append(out, "carácter especial: "+string(r))
			}
		}
		i++
	}
	return out
}
