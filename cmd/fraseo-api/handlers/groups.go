package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vozclara/fraseo/internal/catalog"
	"github.com/vozclara/fraseo/internal/observability"
)

// GroupsHandler serves the phrase catalog endpoints.
type GroupsHandler struct {
	logger  *observability.Logger
	catalog *catalog.Catalog
}

// NewGroupsHandler creates a groups handler.
func NewGroupsHandler(logger *observability.Logger, cat *catalog.Catalog) *GroupsHandler {
	return &GroupsHandler{logger: logger, catalog: cat}
}

// GroupsResponseDTO lists every group with its phrases.
type GroupsResponseDTO struct {
	Grupos map[string][]string `json:"grupos"`
}

// GroupPhrasesDTO lists the phrases of a single group.
type GroupPhrasesDTO struct {
	Grupo  string   `json:"grupo"`
	Frases []string `json:"frases"`
}

// List handles GET /grupos.
func (h *GroupsHandler) List(w http.ResponseWriter, r *http.Request) {
	grupos := make(map[string][]string, len(h.catalog.Groups()))
	for _, id := range h.catalog.Groups() {
		phrases, err := h.catalog.Phrases(id)
		if err != nil {
			h.logger.Error().Err(err).Str("grupo", id).Msg("catalog read failed")
			writeError(w, http.StatusInternalServerError, "error interno del servidor", "")
			return
		}
		grupos[id] = phrases
	}
	writeJSON(w, http.StatusOK, GroupsResponseDTO{Grupos: grupos})
}

// Get handles GET /grupos/{grupo}.
func (h *GroupsHandler) Get(w http.ResponseWriter, r *http.Request) {
	grupo := chi.URLParam(r, "grupo")
	phrases, err := h.catalog.Phrases(grupo)
	if err != nil {
		if errors.Is(err, catalog.ErrGroupNotFound) {
			writeError(w, http.StatusNotFound, "grupo no encontrado", "los grupos disponibles son A, B y C")
			return
		}
		h.logger.Error().Err(err).Str("grupo", grupo).Msg("catalog read failed")
		writeError(w, http.StatusInternalServerError, "error interno del servidor", "")
		return
	}
	writeJSON(w, http.StatusOK, GroupPhrasesDTO{Grupo: grupo, Frases: phrases})
}
