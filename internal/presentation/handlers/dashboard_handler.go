package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bimakw/polywallet/internal/application/services"
	"github.com/bimakw/polywallet/internal/infrastructure/chart"
)

// DashboardHandler serves stateless wallet views. Every request loads the
// wallet afresh and leaves the current session alone.
type DashboardHandler struct {
	service *services.DashboardService
	logger  *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *services.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the wallet routes on a chi router
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Route("/wallets", func(r chi.Router) {
		r.Get("/{address}/dashboard", h.GetDashboard)
		r.Get("/{address}/profile", h.GetProfile)
		r.Get("/{address}/timeline", h.GetTimeline)
		r.Get("/{address}/timeline.png", h.GetTimelineChart)
	})
}

// GetDashboard handles GET /api/v1/wallets/{address}/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, ok := h.load(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, session.Dashboard(period))
}

// GetProfile handles GET /api/v1/wallets/{address}/profile
func (h *DashboardHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, ok := h.load(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, DataResponse[services.ProfileDTO]{Data: session.Profile(period)})
}

// GetTimeline handles GET /api/v1/wallets/{address}/timeline
func (h *DashboardHandler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	session, ok := h.load(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, DataResponse[services.AnalysisDTO]{Data: session.Analysis})
}

// GetTimelineChart handles GET /api/v1/wallets/{address}/timeline.png
func (h *DashboardHandler) GetTimelineChart(w http.ResponseWriter, r *http.Request) {
	session, ok := h.load(w, r)
	if !ok {
		return
	}

	img, err := chart.RenderTimeline(session.Analysis.Chart)
	if errors.Is(err, chart.ErrNoPoints) {
		respondError(w, http.StatusNotFound, "No temporal data")
		return
	}
	if err != nil {
		h.logger.Error("Failed to render timeline chart",
			zap.Error(err),
			zap.String("wallet", session.Wallet),
		)
		respondError(w, http.StatusInternalServerError, "Failed to render chart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}

func (h *DashboardHandler) load(w http.ResponseWriter, r *http.Request) (*services.Session, bool) {
	address := chi.URLParam(r, "address")

	session, err := h.service.Load(r.Context(), address)
	if err != nil {
		status, message := errorStatus(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("Failed to load wallet",
				zap.Error(err),
				zap.String("address", address),
			)
		}
		respondError(w, status, message)
		return nil, false
	}
	return session, true
}
