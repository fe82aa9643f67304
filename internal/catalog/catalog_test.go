package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedDataset(t *testing.T) {
	cat, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, cat.Groups())
	assert.Equal(t, 43, cat.TotalPhrases())

	a, err := cat.Phrases("A")
	require.NoError(t, err)
	assert.Len(t, a, 13)
	assert.Contains(t, a, "Ayuda, por favor")

	b, err := cat.Phrases("B")
	require.NoError(t, err)
	assert.Len(t, b, 13)
	assert.Contains(t, b, "Hola")

	c, err := cat.Phrases("C")
	require.NoError(t, err)
	assert.Len(t, c, 17)
	assert.Contains(t, c, "Gracias")
}

func TestLoad_CustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grupos.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"grupos": {"X": ["uno", "dos"]}}`), 0o644))

	cat, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"X"}, cat.Groups())
	assert.Equal(t, 2, cat.TotalPhrases())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"grupos": [`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EmptyGroupRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"grupos": {"A": []}}`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyGroup)
}

func TestLoad_NoGroups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"grupos": {}}`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestPhrases_UnknownGroup(t *testing.T) {
	cat, err := Load("")
	require.NoError(t, err)

	_, err = cat.Phrases("Z")
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestAllPhrases_GroupOrder(t *testing.T) {
	cat, err := Load("")
	require.NoError(t, err)

	all := cat.AllPhrases()
	assert.Len(t, all, 43)
	// Flattened in sorted group order: group A first, group C last.
	assert.Equal(t, "Ayuda, por favor", all[0])
	assert.Equal(t, "Hola", all[13])
}

func TestKnownWords(t *testing.T) {
	cat, err := Load("")
	require.NoError(t, err)

	words := cat.KnownWords()
	// Normalized forms: lowercased, accents stripped.
	assert.Contains(t, words, "hola")
	assert.Contains(t, words, "gracias")
	assert.Contains(t, words, "medico")
	assert.NotContains(t, words, "Hola")
	assert.NotContains(t, words, "zzz")
}
