package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vozclara/fraseo/internal/observability"
	"github.com/vozclara/fraseo/internal/textnorm"
)

// SpellHandler serves the standalone spell-out endpoint.
type SpellHandler struct {
	logger *observability.Logger
}

// NewSpellHandler creates a spell handler.
func NewSpellHandler(logger *observability.Logger) *SpellHandler {
	return &SpellHandler{logger: logger}
}

// SpellRequestDTO is the /deletreo request body. IncluirEspacios
// defaults to true when omitted.
type SpellRequestDTO struct {
	Texto           string `json:"texto"`
	IncluirEspacios *bool  `json:"incluir_espacios"`
}

// maxSpellTextLength bounds the /deletreo text, in runes.
const maxSpellTextLength = 200

// SpellResponseDTO is the /deletreo response body.
type SpellResponseDTO struct {
	TextoOriginal   string   `json:"texto_original"`
	Deletreo        []string `json:"deletreo"`
	TotalCaracteres int      `json:"total_caracteres"`
}

// Spell handles POST /deletreo.
func (h *SpellHandler) Spell(w http.ResponseWriter, r *http.Request) {
	var req SpellRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "cuerpo de solicitud inválido", err.Error())
		return
	}
	if strings.TrimSpace(req.Texto) == "" {
		writeError(w, http.StatusBadRequest, "el texto no puede estar vacío", "")
		return
	}
	if len([]rune(req.Texto)) > maxSpellTextLength {
		writeError(w, http.StatusBadRequest, "el texto es demasiado largo", "máximo 200 caracteres")
		return
	}

	includeSpaces := true
	if req.IncluirEspacios != nil {
		includeSpaces = *req.IncluirEspacios
	}

	spelled := textnorm.SpellOut(req.Texto, includeSpaces)
	h.logger.Info().Str("texto", req.Texto).Int("caracteres", len(spelled)).Msg("spell-out completed")

	writeJSON(w, http.StatusOK, SpellResponseDTO{
		TextoOriginal:   req.Texto,
		Deletreo:        spelled,
		TotalCaracteres: len(spelled),
	})
}
