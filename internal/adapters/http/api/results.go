// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/config"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/model"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/swimtime"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/pkg/metrics"
)

// resultRequest mirrors the JSON schema for POST /results.
type resultRequest struct {
	ResultID   string `json:"result_id"`
	EventLabel string `json:"event_label"`
	Date       string `json:"date"` // YYYY-MM-DD
	Time       string `json:"time"` // "35.15", "1:04.29", "DQ", "Pending", "NS"
	Meet       string `json:"meet"`
	Points     int    `json:"points"`
	Age        int    `json:"age"`
}

func (r resultRequest) validate() error {
	switch {
	case strings.TrimSpace(r.EventLabel) == "":
		return errors.New("missing event_label")
	case strings.TrimSpace(r.Date) == "":
		return errors.New("missing date")
	}
	if _, err := time.Parse(config.DateLayout, r.Date); err != nil {
		return errors.New("invalid date; must be YYYY-MM-DD")
	}
	// Reject obviously malformed times at the door; no-time sentinels and
	// empty pass through to the worker, which stores them as no-time.
	if _, _, err := swimtime.Parse(r.Time); err != nil {
		return errors.New("invalid time; must be SS.ss, MM:SS.ss, or DQ/Pending/NS")
	}
	return nil
}

// resultResponse is one normalized result in GET /results.
type resultResponse struct {
	ResultID   string  `json:"result_id"`
	EventLabel string  `json:"event_label"`
	Date       string  `json:"date"`
	Time       string  `json:"time,omitempty"` // formatted, empty for no-time swims
	Seconds    float64 `json:"seconds,omitempty"`
	Meet       string  `json:"meet,omitempty"`
	Points     int     `json:"points,omitempty"`
	Age        int     `json:"age,omitempty"`
}

// ResultsHandler handles result ingest and listing.
type ResultsHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewResultsHandler creates a new results handler.
func NewResultsHandler(deps Dependencies, maxLimit int) *ResultsHandler {
	return &ResultsHandler{deps: deps, maxLimit: maxLimit}
}

// HandleResults dispatches POST (ingest) and GET (list) on /results.
func (h *ResultsHandler) HandleResults(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handlePost(w, r)
	case http.MethodGet:
		h.handleGet(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ResultsHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_result"
	var req resultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	// Missing ids get a server-assigned one; the scraper's rows always
	// carry theirs, so this path is for manual entry.
	if strings.TrimSpace(req.ResultID) == "" {
		req.ResultID = uuid.NewString()
	}

	// Idempotency: re-posting a known row acks as duplicate. The store
	// overwrite still happens on the worker side for changed fields.
	duplicate := h.deps.HasResult(r.Context(), req.ResultID)
	if duplicate {
		metrics.RecordResultDuplicate()
	}

	date, _ := time.Parse(config.DateLayout, req.Date)
	raw := model.RawResult{
		ResultID:   req.ResultID,
		EventLabel: strings.TrimSpace(req.EventLabel),
		Date:       date,
		Time:       strings.TrimSpace(req.Time),
		Meet:       req.Meet,
		Points:     req.Points,
		Age:        req.Age,
	}
	if ok := h.deps.Enqueue(r.Context(), raw); !ok {
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{
		Status:    "accepted",
		ResultID:  req.ResultID,
		Duplicate: duplicate,
	})
}

func (h *ResultsHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_results"
	eventLabel := r.URL.Query().Get("event")
	results, err := h.deps.Results(r.Context(), eventLabel)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if len(results) > h.maxLimit {
		results = results[len(results)-h.maxLimit:]
	}

	out := make([]resultResponse, len(results))
	for i, res := range results {
		out[i] = resultResponse{
			ResultID:   res.ResultID,
			EventLabel: res.EventLabel,
			Date:       res.Date.Format(config.DateLayout),
			Meet:       res.Meet,
			Points:     res.Points,
			Age:        res.Age,
		}
		if res.HasTime() {
			out[i].Seconds = res.Seconds()
			out[i].Time = swimtime.Format(res.Seconds())
		}
	}
	writeJSON(w, http.StatusOK, out)
}
