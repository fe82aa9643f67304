// Package catalog loads and exposes the static phrase dataset: a small
// closed set of thematic groups, each owning an ordered list of canonical
// phrases.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/vozclara/fraseo/internal/textnorm"
)

// Common errors.
var (
	ErrGroupNotFound = errors.New("group not found")
	ErrEmptyGroup    = errors.New("group has no phrases")
)

//go:embed grupos.json
var defaultDataset []byte

type datasetFile struct {
	Grupos map[string][]string `json:"grupos"`
}

// Catalog is the immutable phrase dataset. Group iteration order is the
// sorted group id order, so downstream tie-breaks stay deterministic.
type Catalog struct {
	order  []string
	groups map[string][]string
}

// Load reads the dataset from path, or from the embedded default dataset
// when path is empty. A missing or malformed file is a fatal configuration
// error surfaced to the caller.
func Load(path string) (*Catalog, error) {
	data := defaultDataset
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read dataset %s: %w", path, err)
		}
		data = b
	}

	var file datasetFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if len(file.Grupos) == 0 {
		return nil, fmt.Errorf("parse dataset: no groups defined")
	}

	order := make([]string, 0, len(file.Grupos))
	for id, phrases := range file.Grupos {
		if len(phrases) == 0 {
			return nil, fmt.Errorf("group %s: %w", id, ErrEmptyGroup)
		}
		order = append(order, id)
	}
	sort.Strings(order)

	return &Catalog{order: order, groups: file.Grupos}, nil
}

// Groups returns the group ids in sorted order.
func (c *Catalog) Groups() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Phrases returns the phrases of one group in dataset order.
func (c *Catalog) Phrases(groupID string) ([]string, error) {
	phrases, ok := c.groups[groupID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
	}
	out := make([]string, len(phrases))
	copy(out, phrases)
	return out, nil
}

// AllPhrases returns every phrase, flattened in group order.
func (c *Catalog) AllPhrases() []string {
	var out []string
	for _, id := range c.order {
		out = append(out, c.groups[id]...)
	}
	return out
}

// TotalPhrases returns the phrase count across all groups.
func (c *Catalog) TotalPhrases() int {
	n := 0
	for _, phrases := range c.groups {
		n += len(phrases)
	}
	return n
}

// KnownWords returns the union of normalized words occurring in any
// catalog phrase. The match engine uses it to decide whether a lone short
// word might be an out-of-vocabulary proper name.
func (c *Catalog) KnownWords() map[string]struct{} {
	words := make(map[string]struct{})
	for _, phrases := range c.groups {
		for _, phrase := range phrases {
			for _, w := range strings.Fields(textnorm.Normalize(phrase)) {
				words[w] = struct{}{}
			}
		}
	}
	return words
}
