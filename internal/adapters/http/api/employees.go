// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
	"strings"
)

// EmployeeHandler handles employee directory requests.
type EmployeeHandler struct {
	deps EmployeeDependencies
}

// NewEmployeeHandler creates a new employee handler.
func NewEmployeeHandler(deps EmployeeDependencies) *EmployeeHandler {
	return &EmployeeHandler{deps: deps}
}

// HandleList handles GET /api/employees?search=&page=&limit= requests.
func (h *EmployeeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	page := parsePositiveInt(q.Get("page"), 1)
	limit := parsePositiveInt(q.Get("limit"), 0)

	result := h.deps.Directory().Search(q.Get("search"), page, limit)
	writeJSON(w, http.StatusOK, result)
}

// HandleByID handles GET /api/employees/{id} and GET /api/employees/{id}/chain.
func (h *EmployeeHandler) HandleByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/employees/")
	parts := strings.Split(rest, "/")

	id, err := strconv.Atoi(parts[0])
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	switch {
	case len(parts) == 1:
		emp, err := h.deps.Directory().Get(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, emp)
	case len(parts) == 2 && parts[1] == "chain":
		writeJSON(w, http.StatusOK, h.deps.ChainOfCommand(r.Context(), id))
	default:
		http.NotFound(w, r)
	}
}

// HandleLoginOptions handles GET /api/employees/login/options requests.
// It returns curated persona groups for the demo login screen.
func (h *EmployeeHandler) HandleLoginOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.LoginOptions(r.Context()))
}

// parsePositiveInt parses s as a positive integer, falling back to def
// when s is empty, malformed, or non-positive.
func parsePositiveInt(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
