// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/config"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/standards"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/swimtime"
)

// StandardsHandler grades ad hoc times against the standards table.
type StandardsHandler struct {
	deps Dependencies
}

// NewStandardsHandler creates a new standards handler.
func NewStandardsHandler(deps Dependencies) *StandardsHandler {
	return &StandardsHandler{deps: deps}
}

// HandleClassify handles GET /standards/{event}?time=T[&date=YYYY-MM-DD].
// The date picks the age group in effect for that day and defaults to
// today; historical swims must grade against their own band.
func (h *StandardsHandler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	const op = "api.classify"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	eventLabel := strings.TrimPrefix(r.URL.Path, "/standards/")
	if eventLabel == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	seconds, ok, err := swimtime.Parse(r.URL.Query().Get("time"))
	if err != nil || !ok {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("time must be a valid race time")))
		return
	}

	onDate := time.Now()
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		onDate, err = time.Parse(config.DateLayout, dateStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request",
				WrapKind(op, ErrBadRequest, errors.New("invalid date; must be YYYY-MM-DD")))
			return
		}
	}

	classification, err := h.deps.Classify(r.Context(), eventLabel, seconds, onDate)
	if err != nil {
		if errors.Is(err, standards.ErrUnknownStandard) {
			writeError(w, http.StatusNotFound, "unknown_standard", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, classification)
}
