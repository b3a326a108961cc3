package app

import (
	"context"

	"github.com/gun110939/demo-flow-send-pwa/internal/adapters/repository"
	"github.com/gun110939/demo-flow-send-pwa/internal/domain/model"
	"github.com/gun110939/demo-flow-send-pwa/internal/domain/visibility"
	"github.com/gun110939/demo-flow-send-pwa/pkg/metrics"
)

// Stats aggregates counts over the current store contents.
type Stats struct {
	TotalEmployees   int `json:"totalEmployees"`
	TotalWorkResults int `json:"totalWorkResults"`
	Pending          int `json:"pending"`
	Approved         int `json:"approved"`
	Rejected         int `json:"rejected"`
	InPreFinal       int `json:"inPreFinal"`
	InFinal          int `json:"inFinal"`
	TotalEvaluations int `json:"totalEvaluations"`
}

// WorkResultCounts breaks down one employee's own submissions.
type WorkResultCounts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// EmployeeStats is the per-user dashboard: committee role, pending
// workload and own submission outcomes.
type EmployeeStats struct {
	Employee            model.Employee   `json:"employee"`
	IsCommitteeMember   bool             `json:"isCommitteeMember"`
	CommitteeStage      model.Stage      `json:"committeeStage,omitempty"`
	PendingEvaluations  int              `json:"pendingEvaluations"`
	MyWorkResults       WorkResultCounts `json:"myWorkResults"`
	TotalEvaluationsDone int             `json:"totalEvaluationsDone"`
}

// DashboardStats returns service-wide aggregate counts. Pure read; the
// only guarantee is consistency with the store contents at call time.
func (s *Service) DashboardStats(ctx context.Context) Stats {
	items := s.items.Snapshot(ctx)

	stats := Stats{
		TotalEmployees:   s.dir.Count(),
		TotalWorkResults: len(items),
		TotalEvaluations: s.ledger.Len(ctx),
	}
	for _, item := range items {
		switch item.Status {
		case model.StatusPending:
			stats.Pending++
		case model.StatusApproved:
			stats.Approved++
		case model.StatusRejected:
			stats.Rejected++
		}
		switch item.Stage {
		case model.StagePreFinal:
			stats.InPreFinal++
		case model.StageFinal:
			stats.InFinal++
		case model.StageNone:
		}
	}

	metrics.UpdatePendingItems(stats.Pending)
	metrics.UpdateTotalWorkItems(stats.TotalWorkResults)
	return stats
}

// EmployeeDashboard returns the per-user counts for one employee.
func (s *Service) EmployeeDashboard(ctx context.Context, employeeID int) (EmployeeStats, error) {
	emp, err := s.dir.Get(ctx, employeeID)
	if err != nil {
		return EmployeeStats{}, err
	}

	out := EmployeeStats{Employee: emp}

	var membership *model.CommitteeMembership
	if m, ok := s.registry.FindByEmployee(ctx, employeeID); ok {
		membership = &m
		out.IsCommitteeMember = true
		out.CommitteeStage = m.Stage
	}

	out.PendingEvaluations = len(visibility.PendingFor(employeeID, membership, s.items.Snapshot(ctx), s.dir))

	for _, item := range s.items.List(ctx, repository.WorkItemFilter{EmployeeID: employeeID}) {
		out.MyWorkResults.Total++
		switch item.Status {
		case model.StatusPending:
			out.MyWorkResults.Pending++
		case model.StatusApproved:
			out.MyWorkResults.Approved++
		case model.StatusRejected:
			out.MyWorkResults.Rejected++
		}
	}

	out.TotalEvaluationsDone = s.ledger.CountByEvaluator(ctx, employeeID)
	return out, nil
}

// GetStats returns service statistics for the monitoring endpoint.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := s.DashboardStats(ctx)

	counts := s.registry.CountByStage(ctx)
	return map[string]interface{}{
		"started":          s.started,
		"totalEmployees":   stats.TotalEmployees,
		"totalWorkResults": stats.TotalWorkResults,
		"pending":          stats.Pending,
		"approved":         stats.Approved,
		"rejected":         stats.Rejected,
		"inPreFinal":       stats.InPreFinal,
		"inFinal":          stats.InFinal,
		"totalEvaluations": stats.TotalEvaluations,
		"preFinalMembers":  counts[model.StagePreFinal],
		"finalMembers":     counts[model.StageFinal],
	}
}
