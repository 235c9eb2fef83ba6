package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bimakw/polywallet/internal/infrastructure/presets"
)

// PresetsHandler serves the preset wallet shortcuts
type PresetsHandler struct {
	presets []presets.Preset
}

// NewPresetsHandler creates a new presets handler
func NewPresetsHandler(list []presets.Preset) *PresetsHandler {
	if list == nil {
		list = []presets.Preset{}
	}
	return &PresetsHandler{presets: list}
}

// RegisterRoutes registers the presets route on a chi router
func (h *PresetsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/presets", h.List)
}

// List handles GET /api/v1/presets
func (h *PresetsHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, DataResponse[[]presets.Preset]{Data: h.presets})
}
