// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// ResetDependencies defines the interface for the demo reset operation.
type ResetDependencies interface {
	Reset(ctx context.Context)
}

// ResetHandler handles demo reset requests.
type ResetHandler struct {
	deps ResetDependencies
}

// NewResetHandler creates a new reset handler.
func NewResetHandler(deps ResetDependencies) *ResetHandler {
	return &ResetHandler{deps: deps}
}

// HandleReset handles POST /api/reset requests. It drops all work items,
// evaluations, and committee memberships, then reseeds the demo data.
func (h *ResetHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	h.deps.Reset(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"reset": true})
}
