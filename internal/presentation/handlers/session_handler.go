package handlers

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bimakw/polywallet/internal/application/services"
	"github.com/bimakw/polywallet/internal/domain/entities"
)

// SessionHandler drives the interactive search. Only the newest search
// becomes the current session.
type SessionHandler struct {
	service *services.DashboardService
	logger  *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(service *services.DashboardService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		logger:  logger,
	}
}

// SearchRequest is the body of a search
type SearchRequest struct {
	Wallet string `json:"wallet"`
}

// RegisterRoutes registers the session routes on a chi router
func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Route("/session", func(r chi.Router) {
		r.Post("/", h.Search)
		r.Get("/", h.GetCurrent)
		r.Get("/raw/{endpoint}", h.GetRaw)
	})
}

// Search handles POST /api/v1/session
func (h *SessionHandler) Search(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.service.Search(r.Context(), req.Wallet)
	if err != nil {
		status, message := errorStatus(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("Search failed", zap.Error(err), zap.String("wallet", req.Wallet))
		}
		respondError(w, status, message)
		return
	}

	respondJSON(w, http.StatusOK, session.Dashboard(period))
}

// GetCurrent handles GET /api/v1/session
func (h *SessionHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	session := h.service.Current()
	if session == nil {
		status, message := errorStatus(services.ErrNoSession)
		respondError(w, status, message)
		return
	}

	respondJSON(w, http.StatusOK, session.Dashboard(period))
}

// GetRaw handles GET /api/v1/session/raw/{endpoint}
func (h *SessionHandler) GetRaw(w http.ResponseWriter, r *http.Request) {
	endpoint := entities.Endpoint("/" + chi.URLParam(r, "endpoint"))
	if !slices.Contains(services.RawEndpoints, endpoint) {
		respondError(w, http.StatusNotFound, "Unknown endpoint")
		return
	}

	session := h.service.Current()
	if session == nil {
		status, message := errorStatus(services.ErrNoSession)
		respondError(w, status, message)
		return
	}

	view, ok := session.Raw(string(endpoint))
	if !ok {
		respondError(w, http.StatusNotFound, "No data for this endpoint")
		return
	}

	respondJSON(w, http.StatusOK, view)
}
