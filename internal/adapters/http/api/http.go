// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/model"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/standards"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// HasResult reports whether a result id was already ingested.
	HasResult(ctx context.Context, resultID string) bool

	// Enqueue pushes a raw result for async normalization. Returns false
	// on backpressure.
	Enqueue(ctx context.Context, r model.RawResult) bool

	// Read operations over the normalized history.
	Results(ctx context.Context, eventLabel string) ([]model.Result, error)
	Records(ctx context.Context) ([]RecordEntry, error)
	Improvements(ctx context.Context) ([]model.Improvement, error)
	Forecast(ctx context.Context, eventLabel string, target time.Time) (*model.Forecast, error)
	Classify(ctx context.Context, eventLabel string, seconds float64, onDate time.Time) (Classification, error)
}

// RecordEntry is a personal record enriched with its standings against the
// time standards. Standard and NextTarget stay empty/nil when no tier
// table covers the event; one uncovered event never fails the table.
type RecordEntry struct {
	model.PersonalRecord
	TimeText   string            `json:"time_text"`
	AgeGroup   string            `json:"age_group"`
	Standard   standards.Tier    `json:"standard,omitempty"`
	NextTarget *standards.Target `json:"next_target,omitempty"`
	// StandardUnavailable flags records whose event has no tier table.
	StandardUnavailable bool `json:"standard_unavailable,omitempty"`
}

// Classification is the grading of one ad hoc time.
type Classification struct {
	EventLabel  string            `json:"event_label"`
	AgeGroup    string            `json:"age_group"`
	TimeSeconds float64           `json:"time_seconds"`
	Standard    standards.Tier    `json:"standard"`
	NextTarget  *standards.Target `json:"next_target,omitempty"`
}

// Server wires HTTP routes for the business API.
type Server struct {
	resultsHandler      *ResultsHandler
	recordsHandler      *RecordsHandler
	improvementsHandler *ImprovementsHandler
	forecastHandler     *ForecastHandler
	standardsHandler    *StandardsHandler
	statsHandler        *StatsHandler
	healthHandler       *HealthHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxResultsLimit int) *Server {
	return &Server{
		resultsHandler:      NewResultsHandler(deps, maxResultsLimit),
		recordsHandler:      NewRecordsHandler(deps),
		improvementsHandler: NewImprovementsHandler(deps),
		forecastHandler:     NewForecastHandler(deps),
		standardsHandler:    NewStandardsHandler(deps),
		statsHandler:        NewStatsHandler(statsProvider),
		healthHandler:       NewHealthHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/results", MetricsMiddleware(s.resultsHandler.HandleResults, "results"))
	mux.HandleFunc("/records", MetricsMiddleware(s.recordsHandler.HandleGetRecords, "records"))
	mux.HandleFunc("/improvements", MetricsMiddleware(s.improvementsHandler.HandleGetImprovements, "improvements"))
	mux.HandleFunc("/forecast/", MetricsMiddleware(s.forecastHandler.HandleGetForecast, "forecast"))
	mux.HandleFunc("/standards/", MetricsMiddleware(s.standardsHandler.HandleClassify, "standards"))
}

type ackResponse struct {
	Status    string `json:"status"`
	ResultID  string `json:"result_id"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
