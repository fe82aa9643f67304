package match

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/vozclara/fraseo/internal/observability"
)

// embeddingCacheFile is the on-disk representation of the per-group
// embedding matrices. The fingerprint ties the cache to one model and one
// dataset; the file is regenerated wholesale, never partially updated.
type embeddingCacheFile struct {
	Fingerprint string                 `json:"fingerprint"`
	Model       string                 `json:"model"`
	Groups      map[string][][]float32 `json:"groups"`
}

// loadEmbeddingCache returns the cached matrices when the file exists,
// parses cleanly, carries the expected fingerprint, and covers every group
// with the right row count. Any failure reports a miss; corruption is
// recovered by recomputation, never surfaced as an error.
func loadEmbeddingCache(path, fingerprint string, groupIDs []string, normalized map[string][]string, logger *observability.Logger) (map[string][][]float32, bool) {
	if path == "" {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) && logger != nil {
			logger.Warn().Err(err).Str("path", path).Msg("embedding cache unreadable, recomputing")
		}
		return nil, false
	}

	var file embeddingCacheFile
	if err := json.Unmarshal(data, &file); err != nil {
		if logger != nil {
			logger.Warn().Err(err).Str("path", path).Msg("embedding cache corrupt, recomputing")
		}
		return nil, false
	}

	if file.Fingerprint != fingerprint {
		if logger != nil {
			logger.Info().Str("path", path).Msg("embedding cache stale, recomputing")
		}
		return nil, false
	}

	for _, id := range groupIDs {
		if len(file.Groups[id]) != len(normalized[id]) {
			if logger != nil {
				logger.Warn().Str("path", path).Str("group", id).Msg("embedding cache incomplete, recomputing")
			}
			return nil, false
		}
	}

	if logger != nil {
		logger.Info().Str("path", path).Msg("embeddings loaded from cache")
	}
	return file.Groups, true
}

// saveEmbeddingCache persists the matrices; failures are logged and
// otherwise ignored.
func saveEmbeddingCache(path, fingerprint, model string, groups map[string][][]float32, logger *observability.Logger) {
	if path == "" {
		return
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			if logger != nil {
				logger.Error().Err(err).Str("path", path).Msg("create embedding cache dir failed")
			}
			return
		}
	}

	data, err := json.Marshal(embeddingCacheFile{
		Fingerprint: fingerprint,
		Model:       model,
		Groups:      groups,
	})
	if err != nil {
		if logger != nil {
			logger.Error().Err(err).Msg("marshal embedding cache failed")
		}
		return
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		if logger != nil {
			logger.Error().Err(err).Str("path", path).Msg("write embedding cache failed")
		}
		return
	}

	if logger != nil {
		logger.Info().Str("path", path).Msg("embedding cache written")
	}
}
