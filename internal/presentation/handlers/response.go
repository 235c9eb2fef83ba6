package handlers

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/bimakw/polywallet/internal/application/services"
	"github.com/bimakw/polywallet/internal/domain/entities"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DataResponse wraps a view for API response
type DataResponse[T any] struct {
	Data T `json:"data"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// errorStatus maps service errors to a status code and client message
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, entities.ErrInvalidWallet):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrSessionSuperseded):
		return http.StatusConflict, "Search superseded by a newer search"
	case errors.Is(err, services.ErrNoSession):
		return http.StatusNotFound, "No wallet loaded. Search a wallet first"
	default:
		return http.StatusInternalServerError, "Failed to load wallet"
	}
}

func parsePeriod(r *http.Request) (entities.Period, error) {
	return entities.ParsePeriod(r.URL.Query().Get("period"))
}
