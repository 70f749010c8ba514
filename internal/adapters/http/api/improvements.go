// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// ImprovementsHandler serves first-versus-latest improvement summaries.
type ImprovementsHandler struct {
	deps Dependencies
}

// NewImprovementsHandler creates a new improvements handler.
func NewImprovementsHandler(deps Dependencies) *ImprovementsHandler {
	return &ImprovementsHandler{deps: deps}
}

// HandleGetImprovements handles GET /improvements requests. Events with
// fewer than two valid swims are simply absent; a single data point makes
// no improvement claim.
func (h *ImprovementsHandler) HandleGetImprovements(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_improvements"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	summaries, err := h.deps.Improvements(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}
