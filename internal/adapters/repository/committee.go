package repository

import (
	"context"
	"sync"

	"github.com/gun110939/demo-flow-send-pwa/internal/domain/errs"
	"github.com/gun110939/demo-flow-send-pwa/internal/domain/model"
)

// CommitteeRegistry tracks committee memberships. The uniqueness
// invariant is at most one membership per (employee, stage) pair; Add
// and Remove run under the registry lock so concurrent adds cannot
// slip past the check.
type CommitteeRegistry struct {
	mu    sync.RWMutex
	byID  map[string]model.CommitteeMembership
	order []string // insertion order for stable listings
}

// NewCommitteeRegistry creates an empty registry.
func NewCommitteeRegistry() *CommitteeRegistry {
	return &CommitteeRegistry{
		byID: make(map[string]model.CommitteeMembership),
	}
}

// Add inserts a membership. FINAL memberships always carry an empty
// org filter; a duplicate (employee, stage) pair is a conflict.
// Resolving a defaulted PRE_FINAL org filter from the directory is the
// caller's job; the registry only enforces its own invariants.
func (r *CommitteeRegistry) Add(_ context.Context, m model.CommitteeMembership) (model.CommitteeMembership, error) {
	if m.Stage == model.StageFinal {
		m.OrgFilter = ""
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.EmployeeID == m.EmployeeID && existing.Stage == m.Stage {
			return model.CommitteeMembership{}, errs.Conflict("already a committee member in this stage")
		}
	}

	r.byID[m.ID] = m
	r.order = append(r.order, m.ID)
	return m, nil
}

// Remove deletes a membership by its identifier.
func (r *CommitteeRegistry) Remove(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return errs.NotFound("committee member", id)
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// ListByStage returns memberships for one stage, or every membership
// when stage is empty, in insertion order.
func (r *CommitteeRegistry) ListByStage(_ context.Context, stage model.Stage) []model.CommitteeMembership {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.CommitteeMembership, 0, len(r.order))
	for _, id := range r.order {
		m := r.byID[id]
		if stage == "" || m.Stage == stage {
			out = append(out, m)
		}
	}
	return out
}

// FindByEmployee returns the membership governing an employee's
// visibility. When an employee somehow holds both stages, FINAL wins.
func (r *CommitteeRegistry) FindByEmployee(_ context.Context, employeeID int) (model.CommitteeMembership, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var preFinal model.CommitteeMembership
	var havePreFinal bool
	for _, id := range r.order {
		m := r.byID[id]
		if m.EmployeeID != employeeID {
			continue
		}
		if m.Stage == model.StageFinal {
			return m, true
		}
		if !havePreFinal {
			preFinal, havePreFinal = m, true
		}
	}
	return preFinal, havePreFinal
}

// FindPreFinalFor returns the PRE_FINAL membership scoped to the given
// parent organization, if one exists.
func (r *CommitteeRegistry) FindPreFinalFor(_ context.Context, org string) (model.CommitteeMembership, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		m := r.byID[id]
		if m.Stage == model.StagePreFinal && m.OrgFilter == org {
			return m, true
		}
	}
	return model.CommitteeMembership{}, false
}

// IsMember reports whether the employee holds any membership.
func (r *CommitteeRegistry) IsMember(ctx context.Context, employeeID int) bool {
	_, ok := r.FindByEmployee(ctx, employeeID)
	return ok
}

// CountByStage returns the number of memberships per stage.
func (r *CommitteeRegistry) CountByStage(_ context.Context) map[model.Stage]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[model.Stage]int, 2)
	for _, m := range r.byID {
		counts[m.Stage]++
	}
	return counts
}

// Clear drops every membership. Used by the demo reset.
func (r *CommitteeRegistry) Clear(_ context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = make(map[string]model.CommitteeMembership)
	r.order = nil
}
