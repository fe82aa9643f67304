// Package match implements the phrase matching pipeline: centroid-based
// group pre-selection, in-group re-ranking with length boosting, adaptive
// thresholds, proper-name heuristics, and the spell-out fallback.
package match

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/vozclara/fraseo/internal/catalog"
	"github.com/vozclara/fraseo/internal/embedding"
	"github.com/vozclara/fraseo/internal/observability"
	"github.com/vozclara/fraseo/internal/textnorm"
)

// Group holds one group's phrases and their precomputed embeddings.
// Phrases, Normalized, and Embeddings are index-aligned; Centroid is the
// renormalized mean of the embeddings. Immutable after build.
type Group struct {
	ID         string
	Phrases    []string
	Normalized []string
	Embeddings [][]float32
	Centroid   []float32
}

// Index is the read-only phrase index built once at startup. Concurrent
// readers need no locking.
type Index struct {
	groups     []Group
	byID       map[string]int
	allPhrases []string
	knownWords map[string]struct{}
	model      string
}

// IndexConfig configures index construction.
type IndexConfig struct {
	// CachePath is the embedding cache file. Empty disables persistence.
	CachePath string
}

// BuildIndex normalizes and encodes every catalog phrase, reusing the
// on-disk embedding cache when its fingerprint matches the current model
// and dataset. Any cache read problem falls back to full recomputation;
// encoder failure is fatal.
func BuildIndex(ctx context.Context, cat *catalog.Catalog, embedder embedding.Embedder, cfg IndexConfig, logger *observability.Logger) (*Index, error) {
	idx := &Index{
		byID:       make(map[string]int),
		allPhrases: cat.AllPhrases(),
		knownWords: cat.KnownWords(),
		model:      embedder.Model(),
	}
	for _, w := range extraKnownWords {
		idx.knownWords[w] = struct{}{}
	}

	groupIDs := cat.Groups()
	normalized := make(map[string][]string, len(groupIDs))
	for _, id := range groupIDs {
		phrases, err := cat.Phrases(id)
		if err != nil {
			return nil, err
		}
		normalized[id] = textnorm.NormalizeAll(phrases)
	}

	fingerprint := indexFingerprint(idx.model, groupIDs, normalized)

	cached, ok := loadEmbeddingCache(cfg.CachePath, fingerprint, groupIDs, normalized, logger)
	if !ok {
		var err error
		cached, err = encodeGroups(ctx, embedder, groupIDs, normalized)
		if err != nil {
			return nil, fmt.Errorf("encode catalog: %w", err)
		}
		saveEmbeddingCache(cfg.CachePath, fingerprint, idx.model, cached, logger)
	}

	for _, id := range groupIDs {
		phrases, _ := cat.Phrases(id)
		embeddings := cached[id]
		if len(embeddings) != len(phrases) {
			return nil, fmt.Errorf("group %s: %d phrases but %d embeddings", id, len(phrases), len(embeddings))
		}

		g := Group{
			ID:         id,
			Phrases:    phrases,
			Normalized: normalized[id],
			Embeddings: embeddings,
			Centroid:   centroid(embeddings),
		}
		idx.byID[id] = len(idx.groups)
		idx.groups = append(idx.groups, g)
	}

	if logger != nil {
		logger.Info().
			Int("groups", len(idx.groups)).
			Int("phrases", len(idx.allPhrases)).
			Str("model", idx.model).
			Msg("phrase index built")
	}
	return idx, nil
}

// Groups returns the groups in sorted id order.
func (idx *Index) Groups() []Group { return idx.groups }

// Group returns one group by id.
func (idx *Index) Group(id string) (Group, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return Group{}, false
	}
	return idx.groups[i], true
}

// AllPhrases returns every catalog phrase, flattened in group order.
func (idx *Index) AllPhrases() []string { return idx.allPhrases }

// IsKnownWord reports whether w occurs in the dataset vocabulary or the
// fixed interjection/typo list.
func (idx *Index) IsKnownWord(w string) bool {
	_, ok := idx.knownWords[w]
	return ok
}

// Model returns the encoder model the index was built with.
func (idx *Index) Model() string { return idx.model }

func encodeGroups(ctx context.Context, embedder embedding.Embedder, groupIDs []string, normalized map[string][]string) (map[string][][]float32, error) {
	out := make(map[string][][]float32, len(groupIDs))
	for _, id := range groupIDs {
		vecs, err := embedder.Embed(ctx, normalized[id])
		if err != nil {
			return nil, fmt.Errorf("group %s: %w", id, err)
		}
		for _, v := range vecs {
			embedding.L2Normalize(v)
		}
		out[id] = vecs
	}
	return out, nil
}

// centroid is the arithmetic mean of the vectors, renormalized to unit
// length.
func centroid(vecs [][]float32) []float32 {
	if len(vecs) == 0 {
		return nil
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

// indexFingerprint keys the embedding cache by model and normalized
// dataset content.
func indexFingerprint(model string, groupIDs []string, normalized map[string][]string) string {
	h := sha256.New()
	h.Write([]byte(model))
	for _, id := range groupIDs {
		h.Write([]byte{0})
		h.Write([]byte(id))
		for _, phrase := range normalized[id] {
			h.Write([]byte{1})
			h.Write([]byte(phrase))
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// wordCount counts whitespace-separated words.
func wordCount(s string) int {
	return len(strings.Fields(s))
}
