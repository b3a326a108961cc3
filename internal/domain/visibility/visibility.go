// Package visibility computes which work items an evaluator should see.
package visibility

import "github.com/gun110939/demo-flow-send-pwa/internal/domain/model"

// Directory is the read-only employee lookup used to resolve the
// submitting employee's organization for org-scoped filtering.
type Directory interface {
	Lookup(id int) (model.Employee, bool)
}

// PendingFor returns the subset of items the evaluator should act on,
// preserving the input order.
//
// Resolution tiers, first match wins:
//  1. FINAL committee members see every item in the FINAL stage.
//  2. PRE_FINAL committee members see PRE_FINAL items whose submitter
//     belongs to the membership's parent organization.
//  3. Everyone else sees the PENDING, in-chain items assigned to them.
//
// membership is nil when the evaluator sits on no committee. Callers
// holding both memberships for one identity must pass the FINAL one;
// the committee registry's FindByEmployee already enforces that
// precedence.
func PendingFor(evaluatorID int, membership *model.CommitteeMembership, items []model.WorkItem, dir Directory) []model.WorkItem {
	visible := make([]model.WorkItem, 0, len(items))

	switch {
	case membership != nil && membership.Stage == model.StageFinal:
		for _, item := range items {
			if item.Stage == model.StageFinal {
				visible = append(visible, item)
			}
		}

	case membership != nil && membership.Stage == model.StagePreFinal:
		for _, item := range items {
			if item.Stage != model.StagePreFinal {
				continue
			}
			submitter, ok := dir.Lookup(item.EmployeeID)
			if ok && submitter.ParentOrg == membership.OrgFilter {
				visible = append(visible, item)
			}
		}

	default:
		for _, item := range items {
			if item.EvaluatorID == evaluatorID &&
				item.Status == model.StatusPending &&
				item.Stage == model.StageNone {
				visible = append(visible, item)
			}
		}
	}

	return visible
}
