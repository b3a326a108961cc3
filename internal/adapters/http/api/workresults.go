// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gun110939/demo-flow-send-pwa/internal/adapters/repository"
	"github.com/gun110939/demo-flow-send-pwa/internal/domain/model"
)

// submitRequest mirrors the OpenAPI schema for POST /api/work-results.
type submitRequest struct {
	EmployeePernr int    `json:"employeePernr"`
	Title         string `json:"title"`
	Description   string `json:"description"`
}

func (s submitRequest) validate() error {
	switch {
	case s.EmployeePernr <= 0:
		return errors.New("missing employeePernr")
	case strings.TrimSpace(s.Title) == "":
		return errors.New("missing title")
	}
	return nil
}

// evaluateRequest mirrors the OpenAPI schema for POST /api/work-results/{id}/evaluate.
type evaluateRequest struct {
	EvaluatorPernr int      `json:"evaluatorPernr"`
	Decision       string   `json:"decision"`
	Comments       string   `json:"comments"`
	Score          *float64 `json:"score"`
}

func (e evaluateRequest) validate() error {
	switch {
	case e.EvaluatorPernr <= 0:
		return errors.New("missing evaluatorPernr")
	case strings.TrimSpace(e.Decision) == "":
		return errors.New("missing decision")
	}
	return nil
}

// WorkResultHandler handles work-result lifecycle requests.
type WorkResultHandler struct {
	deps WorkResultDependencies
}

// NewWorkResultHandler creates a new work-result handler.
func NewWorkResultHandler(deps WorkResultDependencies) *WorkResultHandler {
	return &WorkResultHandler{deps: deps}
}

// HandleCollection handles POST /api/work-results submissions and
// GET /api/work-results?status=&employeePernr=&evaluatorPernr= listings.
func (h *WorkResultHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleSubmit(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *WorkResultHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	detail, err := h.deps.SubmitWork(r.Context(), req.EmployeePernr, req.Title, req.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, detail)
}

func (h *WorkResultHandler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.WorkItemFilter{
		Status: model.Status(q.Get("status")),
	}
	if v := q.Get("employeePernr"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		filter.EmployeeID = id
	}
	if v := q.Get("evaluatorPernr"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		filter.EvaluatorID = id
	}
	writeJSON(w, http.StatusOK, h.deps.ListWorkItems(r.Context(), filter))
}

// HandleByID handles GET /api/work-results/{id},
// GET /api/work-results/{id}/evaluations, and
// POST /api/work-results/{id}/evaluate.
func (h *WorkResultHandler) HandleByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/work-results/")
	parts := strings.Split(rest, "/")
	if parts[0] == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	id := parts[0]

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		detail, err := h.deps.GetWorkItem(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, detail)
	case len(parts) == 2 && parts[1] == "evaluations" && r.Method == http.MethodGet:
		history, err := h.deps.EvaluationHistory(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, history)
	case len(parts) == 2 && parts[1] == "evaluate" && r.Method == http.MethodPost:
		h.handleEvaluate(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (h *WorkResultHandler) handleEvaluate(w http.ResponseWriter, r *http.Request, id string) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	result, err := h.deps.Evaluate(r.Context(), id, req.EvaluatorPernr, model.Decision(req.Decision), req.Comments, req.Score)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandlePending handles GET /api/work-results/pending/{evaluatorPernr} requests.
func (h *WorkResultHandler) HandlePending(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/work-results/pending/")
	if rest == "" || strings.Contains(rest, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	evaluatorID, err := strconv.Atoi(rest)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	pending, err := h.deps.PendingFor(r.Context(), evaluatorID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pending)
}
