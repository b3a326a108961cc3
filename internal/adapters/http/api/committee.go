// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gun110939/demo-flow-send-pwa/internal/domain/model"
)

// memberRequest mirrors the OpenAPI schema for POST /api/committee.
type memberRequest struct {
	EmployeePernr int    `json:"employeePernr"`
	Stage         string `json:"stage"`
	OrgFilter     string `json:"orgFilter"`
}

func (m memberRequest) validate() error {
	switch {
	case m.EmployeePernr <= 0:
		return errors.New("missing employeePernr")
	case strings.TrimSpace(m.Stage) == "":
		return errors.New("missing stage")
	}
	return nil
}

// CommitteeHandler handles committee administration requests.
type CommitteeHandler struct {
	deps CommitteeDependencies
}

// NewCommitteeHandler creates a new committee handler.
func NewCommitteeHandler(deps CommitteeDependencies) *CommitteeHandler {
	return &CommitteeHandler{deps: deps}
}

// HandleCollection handles GET /api/committee?stage= listings and
// POST /api/committee member additions.
func (h *CommitteeHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		stage := model.Stage(r.URL.Query().Get("stage"))
		writeJSON(w, http.StatusOK, h.deps.ListCommittee(r.Context(), stage))
	case http.MethodPost:
		var req memberRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		if err := req.validate(); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		member, err := h.deps.AddCommitteeMember(r.Context(), req.EmployeePernr, model.Stage(req.Stage), req.OrgFilter)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, member)
	default:
		http.NotFound(w, r)
	}
}

// HandleByID handles DELETE /api/committee/{id} requests.
func (h *CommitteeHandler) HandleByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/committee/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := h.deps.RemoveCommitteeMember(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": true})
}

// HandleCoverage handles GET /api/committee/coverage requests.
func (h *CommitteeHandler) HandleCoverage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Coverage(r.Context()))
}

// HandleCheck handles GET /api/committee/check/{org} requests.
func (h *CommitteeHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	org := strings.TrimPrefix(r.URL.Path, "/api/committee/check/")
	if org == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.CheckCoverage(r.Context(), org))
}

// HandleSuggestions handles GET /api/committee/suggestions/{org} requests.
func (h *CommitteeHandler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	org := strings.TrimPrefix(r.URL.Path, "/api/committee/suggestions/")
	if org == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Suggestions(r.Context(), org))
}
