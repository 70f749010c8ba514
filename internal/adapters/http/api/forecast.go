// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/config"
)

// ForecastHandler serves trend forecasts per event.
type ForecastHandler struct {
	deps Dependencies
}

// NewForecastHandler creates a new forecast handler.
func NewForecastHandler(deps Dependencies) *ForecastHandler {
	return &ForecastHandler{deps: deps}
}

// HandleGetForecast handles GET /forecast/{event}?target=YYYY-MM-DD.
// An event with too little history answers 404 insufficient_data — an
// expected outcome the presentation layer renders as a placeholder, not
// an error object.
func (h *ForecastHandler) HandleGetForecast(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_forecast"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	eventLabel := strings.TrimPrefix(r.URL.Path, "/forecast/")
	if eventLabel == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	targetStr := r.URL.Query().Get("target")
	if targetStr == "" {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("missing target")))
		return
	}
	target, err := time.Parse(config.DateLayout, targetStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("invalid target; must be YYYY-MM-DD")))
		return
	}

	forecast, err := h.deps.Forecast(r.Context(), eventLabel, target)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if forecast == nil {
		writeError(w, http.StatusNotFound, "insufficient_data", NewKind(op, ErrInsufficientData))
		return
	}
	writeJSON(w, http.StatusOK, forecast)
}
