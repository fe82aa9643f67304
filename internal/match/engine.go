package match

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/vozclara/fraseo/internal/embedding"
	"github.com/vozclara/fraseo/internal/fuzzy"
	"github.com/vozclara/fraseo/internal/observability"
	"github.com/vozclara/fraseo/internal/textnorm"
)

// ErrNotReady is returned when Search is called on an engine without a
// built index.
var ErrNotReady = errors.New("match engine not initialized")

// Result is the outcome of one search: either a matched catalog phrase
// with its group, or a spell-out of the query.
type Result struct {
	Query      string
	Group      string // empty when spelling out
	Phrase     string // matched phrase, or the space-joined spelled tokens
	Similarity float64
	SpellOut   bool
	Spelled    []string // nil unless spelling out
}

// EngineConfig configures the decision pipeline.
type EngineConfig struct {
	// SynonymExpansion enables query-variant averaging for group
	// pre-selection.
	SynonymExpansion bool
	// FuzzyThreshold is the 0-100 score required for typo correction.
	// Zero means fuzzy.DefaultThreshold.
	FuzzyThreshold float64
}

// Engine runs the matching pipeline against an immutable Index. Safe for
// concurrent use: Search only reads shared state, and the embedder is
// required to be reentrant.
type Engine struct {
	index    *Index
	embedder embedding.Embedder
	cfg      EngineConfig
	logger   *observability.Logger
}

// NewEngine creates a ready-to-use engine. The index must already be
// built; construction of the index, not of the engine, is the slow
// blocking step.
func NewEngine(index *Index, embedder embedding.Embedder, cfg EngineConfig, logger *observability.Logger) (*Engine, error) {
	if index == nil {
		return nil, ErrNotReady
	}
	if len(index.Groups()) == 0 {
		return nil, fmt.Errorf("index has no groups")
	}
	if cfg.FuzzyThreshold <= 0 {
		cfg.FuzzyThreshold = fuzzy.DefaultThreshold
	}
	if logger == nil {
		logger = observability.Nop()
	}
	return &Engine{index: index, embedder: embedder, cfg: cfg, logger: logger}, nil
}

type groupScore struct {
	group Group
	score float64
}

type candidate struct {
	group      Group
	phrase     string
	similarity float64
	found      bool
}

// Search classifies query into a phrase group or falls back to spelling
// it out. The caller must reject empty/whitespace-only input; for any
// other string Search fails only if the embedding oracle does.
func (e *Engine) Search(ctx context.Context, query string) (Result, error) {
	if e == nil || e.index == nil {
		return Result{}, ErrNotReady
	}

	canonical := e.canonicalQuery(query)

	// Stage 1: variant expansion and averaged embedding.
	variants := e.expandSynonyms(canonical)
	variantVecs, err := e.embedder.Embed(ctx, variants)
	if err != nil {
		return Result{}, fmt.Errorf("encode query variants: %w", err)
	}
	avgVec := averageUnit(variantVecs)

	// Stage 2: centroid pre-selection, top 3 groups.
	ranked := e.rankGroups(avgVec)
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}

	// Stage 3: fine-grained re-ranking on the canonical embedding.
	queryVec, err := e.embedder.EmbedSingle(ctx, canonical)
	if err != nil {
		return Result{}, fmt.Errorf("encode query: %w", err)
	}
	best := e.rerank(ranked, queryVec)

	sim := best.similarity
	group := best.group
	phrase := best.phrase

	// Stage 4: spell-out decision with name heuristics.
	spellThr := spellThreshold(group.ID)
	shouldSpell := sim < spellThr

	trimmed := strings.ToLower(strings.TrimSpace(query))
	if words := strings.Fields(trimmed); len(words) == 1 {
		if n := len([]rune(words[0])); n >= nameMinLen && n <= nameMaxLen {
			if _, isName := commonSpanishNames[trimmed]; isName {
				shouldSpell = true
				e.logger.Debug().Str("query", query).Msg("common first name, spelling out")
			} else if !e.index.IsKnownWord(trimmed) && sim >= nameBandLow && sim < nameBandHigh {
				shouldSpell = true
				e.logger.Debug().Str("query", query).Float64("similarity", sim).Msg("unknown short word, spelling out")
			}
		}
	}
	if isTitleCase(query) && sim < capitalizedCutoff {
		shouldSpell = true
		e.logger.Debug().Str("query", query).Msg("title-case proper noun, spelling out")
	}

	// Stage 5: single-word length-mismatch penalty. The spell decision is
	// recomputed from the penalized score afterwards.
	queryWords := strings.Fields(strings.TrimSpace(query))
	phraseWords := strings.Fields(strings.TrimSpace(phrase))
	if len(queryWords) == 1 && len(phraseWords) == 1 {
		diff := len([]rune(queryWords[0])) - len([]rune(phraseWords[0]))
		if diff < 0 {
			diff = -diff
		}
		if diff > 1 {
			sim = clamp(sim - lengthPenaltyStep*float64(diff))
			shouldSpell = sim < spellThr
		}
	}

	// Stage 6: output.
	if shouldSpell {
		spelled := textnorm.SpellOut(textnorm.NormalizeLeet(query), true)
		return Result{
			Query:      query,
			Phrase:     strings.Join(spelled, " "),
			Similarity: sim,
			SpellOut:   true,
			Spelled:    spelled,
		}, nil
	}
	return Result{
		Query:      query,
		Group:      group.ID,
		Phrase:     phrase,
		Similarity: sim,
	}, nil
}

// canonicalQuery applies fuzzy correction against the full catalog and
// then normalization.
func (e *Engine) canonicalQuery(query string) string {
	corrected := fuzzy.Correct(query, e.index.AllPhrases(), e.cfg.FuzzyThreshold)
	return textnorm.Normalize(corrected)
}

// expandSynonyms substitutes known words by their synonyms word-for-word,
// keeping the original as variant 0 and capping at 5 variants.
func (e *Engine) expandSynonyms(query string) []string {
	variants := []string{query}
	if !e.cfg.SynonymExpansion {
		return variants
	}

	lower := strings.ToLower(query)
	for _, word := range strings.Fields(lower) {
		for _, syn := range synonyms[word] {
			variants = append(variants, strings.ReplaceAll(lower, word, syn))
		}
	}
	if len(variants) > maxSynonymVariants {
		variants = variants[:maxSynonymVariants]
	}
	return variants
}

// rankGroups scores every group centroid against the averaged query
// vector, clamps each score, and sorts descending. The sort is stable
// over the index's fixed group order, so equal scores keep a
// deterministic order.
func (e *Engine) rankGroups(queryVec []float32) []groupScore {
	groups := e.index.Groups()
	scores := make([]groupScore, 0, len(groups))
	for _, g := range groups {
		scores = append(scores, groupScore{
			group: g,
			score: clamp(embedding.Dot(queryVec, g.Centroid)),
		})
	}
	stableSortByScore(scores)
	return scores
}

// rerank picks the best phrase across the candidate groups. Per group the
// phrase scores get a word-count boost, the group's arg-max is clamped,
// the centroid-top group gets a further bonus, and the group must clear
// its own match threshold. When no group clears, the absolute unboosted
// best of the top centroid-ranked group wins.
func (e *Engine) rerank(ranked []groupScore, queryVec []float32) candidate {
	best := candidate{similarity: -1}
	for rank, gs := range ranked {
		g := gs.group

		bestIdx := 0
		bestScore := math.Inf(-1)
		for i, emb := range g.Embeddings {
			score := embedding.Dot(queryVec, emb)
			switch wc := wordCount(g.Phrases[i]); {
			case wc >= 3:
				score += longPhraseBoost
			case wc == 2:
				score += mediumPhraseBoost
			}
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}

		boosted := clamp(bestScore)
		if rank == 0 {
			boosted = clamp(boosted + topGroupBonus)
		}

		if boosted > best.similarity && boosted >= matchThreshold(g.ID) {
			best = candidate{group: g, phrase: g.Phrases[bestIdx], similarity: boosted, found: true}
		}
	}

	if !best.found {
		g := ranked[0].group
		bestIdx := 0
		bestScore := math.Inf(-1)
		for i, emb := range g.Embeddings {
			if score := embedding.Dot(queryVec, emb); score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		best = candidate{group: g, phrase: g.Phrases[bestIdx], similarity: clamp(bestScore), found: true}
	}
	return best
}

// averageUnit renormalizes the arithmetic mean of unit vectors.
func averageUnit(vecs [][]float32) []float32 {
	if len(vecs) == 1 {
		return vecs[0]
	}
	mean := make([]float32, len(vecs[0]))
	for _, v := range vecs {
		for i := range mean {
			mean[i] += v[i]
		}
	}
	inv := 1.0 / float32(len(vecs))
	for i := range mean {
		mean[i] *= inv
	}
	return embedding.L2Normalize(mean)
}

// clamp keeps similarity in [0, 1]; applied at every point where boosts
// or penalties could push it out of range.
func clamp(similarity float64) float64 {
	return math.Max(0.0, math.Min(1.0, similarity))
}

// isTitleCase reports whether the raw query looks like a proper noun: more
// than two characters, an uppercase first character, and a rest that
// contains lowercase letters and no uppercase ones.
func isTitleCase(query string) bool {
	chars := []rune(query)
	if len(chars) <= 2 || !unicode.IsUpper(chars[0]) {
		return false
	}
	hasLower := false
	for _, r := range chars[1:] {
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsLower(r) {
			hasLower = true
		}
	}
	return hasLower
}

// stableSortByScore orders descending by score; equal scores keep the
// index's fixed group order.
func stableSortByScore(scores []groupScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})
}
