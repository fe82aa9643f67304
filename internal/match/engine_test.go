package match

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vozclara/fraseo/internal/catalog"
	"github.com/vozclara/fraseo/internal/embedding"
)

// stubEmbedder assigns each distinct input string its own one-hot unit
// vector, so identical texts score 1.0 and unrelated texts score 0.0.
// The alias map forces chosen inputs onto another input's axis, which
// lets a test make a query "semantically close" to a catalog phrase.
// Mixes place an input at a chosen cosine to another input instead, for
// tests that need a mid-range similarity.
type stubEmbedder struct {
	mu    sync.Mutex
	dim   int
	axes  map[string]int
	alias map[string]string
	mixes map[string]mixTarget
	calls int
}

type mixTarget struct {
	target string
	cosine float64
}

func newStubEmbedder(alias map[string]string) *stubEmbedder {
	return &stubEmbedder{
		dim:   256,
		axes:  make(map[string]int),
		alias: alias,
		mixes: make(map[string]mixTarget),
	}
}

// mixIn makes text embed at exactly the given cosine to target, with the
// remaining mass on text's own axis.
func (s *stubEmbedder) mixIn(text, target string, cosine float64) {
	s.mixes[text] = mixTarget{target: target, cosine: cosine}
}

func (s *stubEmbedder) axisFor(text string) int {
	if target, ok := s.alias[text]; ok {
		text = target
	}
	if axis, ok := s.axes[text]; ok {
		return axis
	}
	axis := len(s.axes)
	s.axes[text] = axis
	return axis
}

func (s *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, s.dim)
		if m, ok := s.mixes[text]; ok {
			vec[s.axisFor(m.target)] = float32(m.cosine)
			vec[s.axisFor(text)] = float32(math.Sqrt(1 - m.cosine*m.cosine))
		} else {
			vec[s.axisFor(text)] = 1
		}
		out[i] = vec
	}
	return out, nil
}

func (s *stubEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	vecs, err := s.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (s *stubEmbedder) Model() string  { return "stub-model" }
func (s *stubEmbedder) Dimension() int { return s.dim }

var _ embedding.Embedder = (*stubEmbedder)(nil)

func newTestEngine(t *testing.T, alias map[string]string) *Engine {
	engine, _ := newTestEngineWithStub(t, alias)
	return engine
}

func newTestEngineWithStub(t *testing.T, alias map[string]string) (*Engine, *stubEmbedder) {
	t.Helper()

	cat, err := catalog.Load("")
	require.NoError(t, err)

	stub := newStubEmbedder(alias)
	index, err := BuildIndex(context.Background(), cat, stub, IndexConfig{}, nil)
	require.NoError(t, err)

	engine, err := NewEngine(index, stub, EngineConfig{SynonymExpansion: true}, nil)
	require.NoError(t, err)
	return engine, stub
}

func TestNewEngine_Validation(t *testing.T) {
	_, err := NewEngine(nil, nil, EngineConfig{}, nil)
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestSearch_ExactPhrase(t *testing.T) {
	engine := newTestEngine(t, nil)

	result, err := engine.Search(context.Background(), "hola")
	require.NoError(t, err)

	assert.False(t, result.SpellOut)
	assert.Equal(t, "B", result.Group)
	assert.Equal(t, "Hola", result.Phrase)
	assert.InDelta(t, 1.0, result.Similarity, 1e-9)
	assert.Nil(t, result.Spelled)
}

func TestSearch_SimilarityRange(t *testing.T) {
	engine := newTestEngine(t, nil)

	for _, q := range []string{"hola", "Juan", "xyz123", "Buenos días", "qwerty asdf zxcv"} {
		result, err := engine.Search(context.Background(), q)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Similarity, 0.0, "query %q", q)
		assert.LessOrEqual(t, result.Similarity, 1.0, "query %q", q)
	}
}

func TestSearch_Deterministic(t *testing.T) {
	engine := newTestEngine(t, nil)

	first, err := engine.Search(context.Background(), "hola")
	require.NoError(t, err)
	second, err := engine.Search(context.Background(), "hola")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSearch_CaseInsensitive(t *testing.T) {
	engine := newTestEngine(t, nil)

	lower, err := engine.Search(context.Background(), "hola")
	require.NoError(t, err)
	upper, err := engine.Search(context.Background(), "HOLA")
	require.NoError(t, err)

	assert.Equal(t, lower.Group, upper.Group)
	assert.Equal(t, lower.Phrase, upper.Phrase)
	assert.InDelta(t, lower.Similarity, upper.Similarity, 1e-9)
}

func TestSearch_TrailingPunctuationEquivalent(t *testing.T) {
	engine := newTestEngine(t, nil)

	plain, err := engine.Search(context.Background(), "hola")
	require.NoError(t, err)
	noisy, err := engine.Search(context.Background(), "hola!!!")
	require.NoError(t, err)

	assert.Equal(t, plain.Group, noisy.Group)
	assert.Equal(t, plain.Phrase, noisy.Phrase)
	assert.InDelta(t, plain.Similarity, noisy.Similarity, 1e-9)
}

func TestSearch_AccentInsensitive(t *testing.T) {
	// "medico" lands on the axis of the normalized catalog phrase
	// "necesito un medico", standing in for real semantic closeness.
	engine := newTestEngine(t, map[string]string{
		"medico": "necesito un medico",
	})

	withAccent, err := engine.Search(context.Background(), "médico")
	require.NoError(t, err)
	withoutAccent, err := engine.Search(context.Background(), "medico")
	require.NoError(t, err)

	assert.False(t, withAccent.SpellOut)
	assert.Equal(t, "A", withAccent.Group)
	assert.Equal(t, "Necesito un médico", withAccent.Phrase)
	assert.Equal(t, withAccent.Group, withoutAccent.Group)
	assert.Equal(t, withAccent.Phrase, withoutAccent.Phrase)
	assert.InDelta(t, withAccent.Similarity, withoutAccent.Similarity, 1e-9)
}

func TestSearch_ExactMultiWordPhrase(t *testing.T) {
	engine := newTestEngine(t, nil)

	result, err := engine.Search(context.Background(), "Buenos días")
	require.NoError(t, err)

	assert.False(t, result.SpellOut)
	assert.Equal(t, "B", result.Group)
	assert.Equal(t, "Buenos días", result.Phrase)
	assert.GreaterOrEqual(t, result.Similarity, 0.95)
}

func TestSearch_CommonNameSpelledOut(t *testing.T) {
	engine := newTestEngine(t, nil)

	result, err := engine.Search(context.Background(), "Juan")
	require.NoError(t, err)

	assert.True(t, result.SpellOut)
	assert.Empty(t, result.Group)
	assert.Equal(t, []string{"J", "U", "A", "N"}, result.Spelled)
	assert.Equal(t, "J U A N", result.Phrase)
}

func TestSearch_GibberishSpelledOut(t *testing.T) {
	engine := newTestEngine(t, nil)

	result, err := engine.Search(context.Background(), "xyz123")
	require.NoError(t, err)

	assert.True(t, result.SpellOut)
	// Leet decoding rewrites 1 and 3 before spelling.
	assert.Equal(t, []string{"X", "Y", "Z", "I", "2", "E"}, result.Spelled)
}

func TestSearch_LeetNameSpelledOut(t *testing.T) {
	engine := newTestEngine(t, nil)

	result, err := engine.Search(context.Background(), "M4ri@")
	require.NoError(t, err)

	assert.True(t, result.SpellOut)
	assert.Equal(t, []string{"M", "A", "R", "I", "A"}, result.Spelled)
}

func TestSearch_UnknownShortWordMidBandSpelledOut(t *testing.T) {
	// "zorp" sits at cosine 0.78 to the phrase "fuego"; with the
	// top-group bonus the similarity lands at 0.83, above group A's 0.75
	// spell threshold. Thresholding alone would accept the match; the
	// unknown-short-word band forces the spell-out.
	engine, stub := newTestEngineWithStub(t, nil)
	stub.mixIn("zorp", "fuego", 0.78)

	result, err := engine.Search(context.Background(), "zorp")
	require.NoError(t, err)

	assert.True(t, result.SpellOut)
	assert.Equal(t, []string{"Z", "O", "R", "P"}, result.Spelled)
	assert.GreaterOrEqual(t, result.Similarity, 0.75)
	assert.InDelta(t, 0.83, result.Similarity, 1e-6)
}

func TestSearch_CommonNameSpelledOutAboveThreshold(t *testing.T) {
	// Same mid-band setup, but the word is in the first-name table; the
	// name override, not the similarity, decides.
	engine, stub := newTestEngineWithStub(t, nil)
	stub.mixIn("maria", "fuego", 0.78)

	result, err := engine.Search(context.Background(), "maria")
	require.NoError(t, err)

	assert.True(t, result.SpellOut)
	assert.Equal(t, []string{"M", "A", "R", "I", "A"}, result.Spelled)
	assert.GreaterOrEqual(t, result.Similarity, 0.75)
}

func TestSearch_TitleCaseSpelledOutAboveThreshold(t *testing.T) {
	// "valentina" is too long for the short-word band and scores 0.93
	// against "necesito un medico" (0.73 cosine + long-phrase boost +
	// top-group bonus), well above every threshold. Capitalized it is
	// treated as a proper noun and spelled; lowercased the same query
	// matches normally, so the title-case check alone flips the outcome.
	engine, stub := newTestEngineWithStub(t, nil)
	stub.mixIn("valentina", "necesito un medico", 0.73)

	capitalized, err := engine.Search(context.Background(), "Valentina")
	require.NoError(t, err)
	assert.True(t, capitalized.SpellOut)
	assert.Equal(t, []string{"V", "A", "L", "E", "N", "T", "I", "N", "A"}, capitalized.Spelled)
	assert.InDelta(t, 0.93, capitalized.Similarity, 1e-6)

	lowercased, err := engine.Search(context.Background(), "valentina")
	require.NoError(t, err)
	assert.False(t, lowercased.SpellOut)
	assert.Equal(t, "A", lowercased.Group)
	assert.Equal(t, "Necesito un médico", lowercased.Phrase)
	assert.InDelta(t, 0.93, lowercased.Similarity, 1e-6)
}

func TestSearch_SingleWordLengthPenalty(t *testing.T) {
	// "omar" shares its axis with the normalized phrase "si", so the raw
	// similarity is 1.0; the two-character length mismatch then costs
	// exactly two penalty steps.
	engine := newTestEngine(t, map[string]string{
		"omar": "si",
	})

	result, err := engine.Search(context.Background(), "Omar")
	require.NoError(t, err)

	assert.False(t, result.SpellOut)
	assert.Equal(t, "C", result.Group)
	assert.Equal(t, "Sí", result.Phrase)
	assert.InDelta(t, 0.9, result.Similarity, 1e-9)
}

func TestSearch_QueryEchoedBack(t *testing.T) {
	engine := newTestEngine(t, nil)

	result, err := engine.Search(context.Background(), "  Hola  ")
	require.NoError(t, err)
	assert.Equal(t, "  Hola  ", result.Query)
}

func TestExpandSynonyms(t *testing.T) {
	engine := newTestEngine(t, nil)

	variants := engine.expandSynonyms("hola")
	assert.Equal(t, "hola", variants[0])
	assert.Contains(t, variants, "saludos")
	assert.LessOrEqual(t, len(variants), maxSynonymVariants)

	// A word with many synonyms caps at the variant limit.
	many := engine.expandSynonyms("quiero ayuda")
	assert.LessOrEqual(t, len(many), maxSynonymVariants)
	assert.Equal(t, "quiero ayuda", many[0])

	// No known words: just the original.
	assert.Equal(t, []string{"zzz"}, engine.expandSynonyms("zzz"))
}

func TestIsTitleCase(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Pedro", true},
		{"Buenos días", true},
		{"hola", false},
		{"HOLA", false},
		{"Ab", false},    // too short
		{"PeDro", false}, // inner uppercase disqualifies
		{"123abc", false},
		{"X9999", false}, // no lowercase in the rest
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isTitleCase(tt.input), "input %q", tt.input)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, clamp(-0.3))
	assert.Equal(t, 1.0, clamp(1.2))
	assert.Equal(t, 0.5, clamp(0.5))
}

func TestThresholdLookups(t *testing.T) {
	assert.Equal(t, 0.60, matchThreshold("A"))
	assert.Equal(t, 0.63, matchThreshold("B"))
	assert.Equal(t, 0.78, matchThreshold("C"))
	assert.Equal(t, defaultMatchThreshold, matchThreshold("Z"))

	assert.Equal(t, 0.75, spellThreshold("A"))
	assert.Equal(t, 0.80, spellThreshold("B"))
	assert.Equal(t, 0.85, spellThreshold("C"))
	assert.Equal(t, defaultSpellThreshold, spellThreshold("Z"))
}
