package handlers

import (
	"net/http"

	"github.com/vozclara/fraseo/internal/catalog"
	"github.com/vozclara/fraseo/internal/match"
)

// StatusHandler serves the root status and health endpoints.
type StatusHandler struct {
	catalog *catalog.Catalog
	engine  *match.Engine
}

// NewStatusHandler creates a status handler.
func NewStatusHandler(cat *catalog.Catalog, engine *match.Engine) *StatusHandler {
	return &StatusHandler{catalog: cat, engine: engine}
}

// StatusResponseDTO describes the service state at the root endpoint.
type StatusResponseDTO struct {
	Status            string   `json:"status"`
	GruposDisponibles []string `json:"grupos_disponibles"`
	TotalFrases       int      `json:"total_frases"`
}

// HealthResponseDTO is the health probe body.
type HealthResponseDTO struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Status handles GET /.
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponseDTO{
		Status:            "OK",
		GruposDisponibles: h.catalog.Groups(),
		TotalFrases:       h.catalog.TotalPhrases(),
	})
}

// Health handles GET /health.
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		writeJSON(w, http.StatusOK, HealthResponseDTO{Status: "unhealthy", Reason: "matcher no inicializado"})
		return
	}
	if len(h.catalog.Groups()) == 0 {
		writeJSON(w, http.StatusOK, HealthResponseDTO{Status: "unhealthy", Reason: "no se pudieron cargar los grupos"})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponseDTO{Status: "healthy"})
}
