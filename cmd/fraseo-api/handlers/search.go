package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/vozclara/fraseo/internal/audit"
	"github.com/vozclara/fraseo/internal/cache"
	"github.com/vozclara/fraseo/internal/match"
	"github.com/vozclara/fraseo/internal/observability"
)

// SearchHandler serves the phrase search endpoint.
type SearchHandler struct {
	logger   *observability.Logger
	engine   *match.Engine
	cache    cache.Client
	cacheTTL time.Duration
	audit    *audit.Store
}

// NewSearchHandler creates a search handler. cacheClient and auditStore
// may be nil.
func NewSearchHandler(logger *observability.Logger, engine *match.Engine, cacheClient cache.Client, cacheTTL time.Duration, auditStore *audit.Store) *SearchHandler {
	return &SearchHandler{
		logger:   logger,
		engine:   engine,
		cache:    cacheClient,
		cacheTTL: cacheTTL,
		audit:    auditStore,
	}
}

// SearchRequestDTO is the /buscar request body.
type SearchRequestDTO struct {
	Texto string `json:"texto"`
}

// maxSearchTextLength bounds the /buscar query, in runes.
const maxSearchTextLength = 500

// SearchResponseDTO is the fixed result surface of the matcher.
type SearchResponseDTO struct {
	Query            string   `json:"query"`
	Grupo            *string  `json:"grupo"`
	FraseSimilar     string   `json:"frase_similar"`
	Similitud        float64  `json:"similitud"`
	DeletreoActivado bool     `json:"deletreo_activado"`
	Deletreo         []string `json:"deletreo"`
	TotalCaracteres  *int     `json:"total_caracteres"`
}

// Search handles POST /buscar.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.engine == nil {
		writeError(w, http.StatusServiceUnavailable, "servicio no disponible", "matcher no inicializado")
		return
	}

	var req SearchRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "cuerpo de solicitud inválido", err.Error())
		return
	}
	if strings.TrimSpace(req.Texto) == "" {
		writeError(w, http.StatusBadRequest, "el texto no puede estar vacío", "")
		return
	}
	if len([]rune(req.Texto)) > maxSearchTextLength {
		writeError(w, http.StatusBadRequest, "el texto es demasiado largo", "máximo 500 caracteres")
		return
	}

	cacheKey := searchCacheKey(req.Texto)
	if h.cache != nil {
		if data, err := h.cache.Get(ctx, cacheKey); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Write(data)
			return
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			h.logger.Warn().Err(err).Msg("response cache read failed")
		}
	}

	result, err := h.engine.Search(ctx, req.Texto)
	if err != nil {
		if errors.Is(err, match.ErrNotReady) {
			writeError(w, http.StatusServiceUnavailable, "servicio no disponible", "matcher no inicializado")
			return
		}
		h.logger.Error().Err(err).Str("query", req.Texto).Msg("search failed")
		writeError(w, http.StatusInternalServerError, "error interno del servidor", "")
		return
	}

	dto := toSearchDTO(result)
	h.logger.Info().
		Str("query", result.Query).
		Str("grupo", result.Group).
		Float64("similitud", dto.Similitud).
		Bool("deletreo", result.SpellOut).
		Msg("search completed")

	h.recordAudit(ctx, result)

	data, err := json.Marshal(dto)
	if err != nil {
		h.logger.Error().Err(err).Msg("encode response failed")
		writeError(w, http.StatusInternalServerError, "error interno del servidor", "")
		return
	}
	if h.cache != nil {
		if err := h.cache.Set(ctx, cacheKey, data, h.cacheTTL); err != nil {
			h.logger.Warn().Err(err).Msg("response cache write failed")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (h *SearchHandler) recordAudit(ctx context.Context, result match.Result) {
	if h.audit == nil {
		return
	}
	err := h.audit.Record(ctx, audit.SearchEvent{
		Query:      result.Query,
		Group:      result.Group,
		Phrase:     result.Phrase,
		Similarity: result.Similarity,
		SpellOut:   result.SpellOut,
	})
	if err != nil {
		h.logger.Warn().Err(err).Msg("audit write failed")
	}
}

func toSearchDTO(result match.Result) SearchResponseDTO {
	dto := SearchResponseDTO{
		Query:            result.Query,
		FraseSimilar:     result.Phrase,
		Similitud:        round4(result.Similarity),
		DeletreoActivado: result.SpellOut,
	}
	if result.SpellOut {
		dto.Deletreo = result.Spelled
		n := len(result.Spelled)
		dto.TotalCaracteres = &n
	} else {
		grupo := result.Group
		dto.Grupo = &grupo
	}
	return dto
}

// round4 rounds to 4 decimals, the precision of the result surface.
func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}

func searchCacheKey(texto string) string {
	sum := sha256.Sum256([]byte(texto))
	return "buscar:" + hex.EncodeToString(sum[:])
}
