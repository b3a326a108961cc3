// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
	"strings"
)

const defaultAuditLimit = 50

// DashboardHandler handles dashboard statistics requests.
type DashboardHandler struct {
	deps DashboardDependencies
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(deps DashboardDependencies) *DashboardHandler {
	return &DashboardHandler{deps: deps}
}

// HandleStats handles GET /api/dashboard/stats requests.
func (h *DashboardHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.DashboardStats(r.Context()))
}

// HandleEmployeeStats handles GET /api/dashboard/stats/{pernr} requests.
func (h *DashboardHandler) HandleEmployeeStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/dashboard/stats/")
	if rest == "" || strings.Contains(rest, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	id, err := strconv.Atoi(rest)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	stats, err := h.deps.EmployeeDashboard(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// HandleAudit handles GET /api/audit?limit= requests, returning the
// recent activity feed newest first.
func (h *DashboardHandler) HandleAudit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limit := parsePositiveInt(r.URL.Query().Get("limit"), defaultAuditLimit)
	writeJSON(w, http.StatusOK, h.deps.AuditTrail(r.Context(), limit))
}
