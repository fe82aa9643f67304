package main

import (
	"context"
	"time"

	"github.com/briandowns/spinner"

	"github.com/vozclara/fraseo/internal/catalog"
	"github.com/vozclara/fraseo/internal/embedding"
	"github.com/vozclara/fraseo/internal/match"
)

// buildEngine loads the catalog and builds a ready match engine. The
// embedding work runs behind a spinner unless --json suppresses it.
func buildEngine(ctx context.Context) (*catalog.Catalog, *match.Engine, error) {
	cat, err := catalog.Load(cfg.Dataset.Path)
	if err != nil {
		return nil, nil, err
	}

	embedder, err := newEmbedder()
	if err != nil {
		return nil, nil, err
	}

	var spin *spinner.Spinner
	if !outputJSON {
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		spin.Suffix = " Construyendo índice de frases..."
		spin.Start()
	}

	index, err := match.BuildIndex(ctx, cat, embedder, match.IndexConfig{
		CachePath: cfg.Matcher.EmbeddingCachePath,
	}, logger)

	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return nil, nil, err
	}

	engine, err := match.NewEngine(index, embedder, match.EngineConfig{
		SynonymExpansion: cfg.Matcher.SynonymExpansion,
		FuzzyThreshold:   cfg.Matcher.FuzzyThreshold,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	return cat, engine, nil
}

func newEmbedder() (embedding.Embedder, error) {
	if cfg.Embedding.Mock {
		return embedding.NewMockClient(cfg.Embedding.Dimension), nil
	}
	return embedding.NewClient(embedding.Config{
		BaseURL:   cfg.Embedding.BaseURL,
		APIKey:    cfg.Embedding.APIKey,
		Model:     cfg.Embedding.Model,
		Dimension: cfg.Embedding.Dimension,
		Timeout:   cfg.Embedding.Timeout,
	})
}
