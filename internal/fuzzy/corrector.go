// Package fuzzy provides light edit-distance correction of a query
// against a reference phrase list.
package fuzzy

import (
	"github.com/hbollon/go-edlib"

	"github.com/vozclara/fraseo/internal/textnorm"
)

// DefaultThreshold is the minimum 0-100 similarity for a correction.
const DefaultThreshold = 80.0

// Correct compares the normalized query against every normalized reference
// phrase using normalized Levenshtein similarity on a 0-100 scale. When the
// best score reaches threshold, the matching reference phrase is returned
// in its original form; otherwise the query is returned unchanged.
//
// Ties break first-encountered-wins: a later phrase must strictly beat the
// running best score to replace it. Pure function of its inputs.
func Correct(query string, referencePhrases []string, threshold float64) string {
	queryNorm := textnorm.Normalize(query)

	bestMatch := ""
	bestScore := 0.0
	for _, phrase := range referencePhrases {
		phraseNorm := textnorm.Normalize(phrase)
		sim, err := edlib.StringsSimilarity(queryNorm, phraseNorm, edlib.Levenshtein)
		if err != nil {
			continue
		}
		score := float64(sim) * 100
		if score > bestScore && score >= threshold {
			bestScore = score
			bestMatch = phrase
		}
	}

	if bestMatch != "" && bestScore >= threshold {
		return bestMatch
	}
	return query
}
