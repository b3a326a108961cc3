// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gun110939/demo-flow-send-pwa/internal/adapters/directory"
	"github.com/gun110939/demo-flow-send-pwa/internal/adapters/repository"
	"github.com/gun110939/demo-flow-send-pwa/internal/app"
	"github.com/gun110939/demo-flow-send-pwa/internal/domain/errs"
	"github.com/gun110939/demo-flow-send-pwa/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	EmployeeDependencies
	WorkResultDependencies
	CommitteeDependencies
	DashboardDependencies

	// Reset restores the service to its freshly seeded state.
	Reset(ctx context.Context)
}

// EmployeeDependencies exposes directory reads and login helpers.
type EmployeeDependencies interface {
	Directory() *directory.Directory
	ChainOfCommand(ctx context.Context, employeeID int) []model.Employee
	LoginOptions(ctx context.Context) app.LoginOptions
}

// WorkResultDependencies exposes the work-result lifecycle.
type WorkResultDependencies interface {
	SubmitWork(ctx context.Context, employeeID int, title, description string) (app.WorkItemDetail, error)
	GetWorkItem(ctx context.Context, id string) (app.WorkItemDetail, error)
	ListWorkItems(ctx context.Context, filter repository.WorkItemFilter) []app.WorkItemDetail
	EvaluationHistory(ctx context.Context, workItemID string) ([]app.EvaluationDetail, error)
	Evaluate(ctx context.Context, workItemID string, evaluatorID int, decision model.Decision, comments string, score *float64) (app.EvaluateResult, error)
	PendingFor(ctx context.Context, evaluatorID int) ([]app.WorkItemDetail, error)
}

// CommitteeDependencies exposes committee administration.
type CommitteeDependencies interface {
	AddCommitteeMember(ctx context.Context, employeeID int, stage model.Stage, orgFilter string) (app.CommitteeMemberDetail, error)
	RemoveCommitteeMember(ctx context.Context, id string) error
	ListCommittee(ctx context.Context, stage model.Stage) []app.CommitteeMemberDetail
	Coverage(ctx context.Context) []app.OrgCoverage
	CheckCoverage(ctx context.Context, org string) app.OrgCoverage
	Suggestions(ctx context.Context, org string) []app.Suggestion
}

// DashboardDependencies exposes aggregate and per-employee statistics
// plus the activity feed.
type DashboardDependencies interface {
	DashboardStats(ctx context.Context) app.Stats
	EmployeeDashboard(ctx context.Context, employeeID int) (app.EmployeeStats, error)
	AuditTrail(ctx context.Context, n int) []model.AuditEvent
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	employeeHandler   *EmployeeHandler
	workResultHandler *WorkResultHandler
	committeeHandler  *CommitteeHandler
	dashboardHandler  *DashboardHandler
	resetHandler      *ResetHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(deps),
		employeeHandler:   NewEmployeeHandler(deps),
		workResultHandler: NewWorkResultHandler(deps),
		committeeHandler:  NewCommitteeHandler(deps),
		dashboardHandler:  NewDashboardHandler(deps),
		resetHandler:      NewResetHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", MetricsMiddleware(s.healthHandler.HandleHealth, "metrics"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/employees/login/options", MetricsMiddleware(s.employeeHandler.HandleLoginOptions, "login_options"))
	mux.HandleFunc("/api/employees", MetricsMiddleware(s.employeeHandler.HandleList, "employees"))
	mux.HandleFunc("/api/employees/", MetricsMiddleware(s.employeeHandler.HandleByID, "employee"))
	mux.HandleFunc("/api/work-results", MetricsMiddleware(s.workResultHandler.HandleCollection, "work_results"))
	mux.HandleFunc("/api/work-results/pending/", MetricsMiddleware(s.workResultHandler.HandlePending, "pending"))
	mux.HandleFunc("/api/work-results/", MetricsMiddleware(s.workResultHandler.HandleByID, "work_result"))
	mux.HandleFunc("/api/committee", MetricsMiddleware(s.committeeHandler.HandleCollection, "committee"))
	mux.HandleFunc("/api/committee/coverage", MetricsMiddleware(s.committeeHandler.HandleCoverage, "coverage"))
	mux.HandleFunc("/api/committee/check/", MetricsMiddleware(s.committeeHandler.HandleCheck, "coverage_check"))
	mux.HandleFunc("/api/committee/suggestions/", MetricsMiddleware(s.committeeHandler.HandleSuggestions, "suggestions"))
	mux.HandleFunc("/api/committee/", MetricsMiddleware(s.committeeHandler.HandleByID, "committee_member"))
	mux.HandleFunc("/api/dashboard/stats", MetricsMiddleware(s.dashboardHandler.HandleStats, "dashboard_stats"))
	mux.HandleFunc("/api/dashboard/stats/", MetricsMiddleware(s.dashboardHandler.HandleEmployeeStats, "employee_stats"))
	mux.HandleFunc("/api/audit", MetricsMiddleware(s.dashboardHandler.HandleAudit, "audit"))
	mux.HandleFunc("/api/reset", MetricsMiddleware(s.resetHandler.HandleReset, "reset"))
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

// writeDomainError translates domain errors to HTTP responses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, errs.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid_transition", err)
	case errors.Is(err, errs.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", err)
	case errors.Is(err, app.ErrInvalidDecision), errors.Is(err, app.ErrInvalidStage):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
