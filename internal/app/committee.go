package app

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/gun110939/demo-flow-send-pwa/internal/domain/model"
	"github.com/gun110939/demo-flow-send-pwa/pkg/logger"
	"github.com/gun110939/demo-flow-send-pwa/pkg/metrics"
)

// CommitteeMemberDetail is a membership enriched with the member's
// directory record.
type CommitteeMemberDetail struct {
	model.CommitteeMembership
	Employee *model.Employee `json:"employee,omitempty"`
}

// OrgCoverage reports, for one parent organization, whether a
// PRE_FINAL membership covers it. Submitters in uncovered
// organizations would escalate into a void.
type OrgCoverage struct {
	ParentOrg     string                 `json:"parentorg"`
	HasCommittee  bool                   `json:"hasCommittee"`
	Committee     *CommitteeMemberDetail `json:"committee"`
	EmployeeCount int                    `json:"employeeCount"`
}

// Suggestion is a committee nominee: an employee in the senior band,
// annotated with whether they already sit on any committee.
type Suggestion struct {
	model.Employee
	IsAlreadyCommittee bool `json:"isAlreadyCommittee"`
}

// AddCommitteeMember registers an employee on a committee stage. For
// PRE_FINAL the org filter defaults to the employee's own parent
// organization; for FINAL it is forced empty.
func (s *Service) AddCommitteeMember(ctx context.Context, employeeID int, stage model.Stage, orgFilter string) (CommitteeMemberDetail, error) {
	if stage != model.StagePreFinal && stage != model.StageFinal {
		return CommitteeMemberDetail{}, ErrInvalidStage
	}

	emp, err := s.dir.Get(ctx, employeeID)
	if err != nil {
		return CommitteeMemberDetail{}, err
	}

	if stage == model.StagePreFinal && orgFilter == "" {
		orgFilter = emp.ParentOrg
	}

	added, err := s.registry.Add(ctx, model.CommitteeMembership{
		ID:         uuid.New().String(),
		EmployeeID: emp.ID,
		Stage:      stage,
		OrgFilter:  orgFilter,
	})
	if err != nil {
		return CommitteeMemberDetail{}, err
	}

	s.updateCommitteeMetrics(ctx)
	s.logger.Info(ctx, "committee member added",
		logger.Int("employeeId", emp.ID),
		logger.String("stage", string(stage)),
		logger.String("orgFilter", added.OrgFilter),
	)

	return CommitteeMemberDetail{CommitteeMembership: added, Employee: &emp}, nil
}

// RemoveCommitteeMember deletes a membership by id.
func (s *Service) RemoveCommitteeMember(ctx context.Context, id string) error {
	if err := s.registry.Remove(ctx, id); err != nil {
		return err
	}
	s.updateCommitteeMetrics(ctx)
	s.logger.Info(ctx, "committee member removed", logger.String("membershipId", id))
	return nil
}

// ListCommittee returns memberships for one stage, or all of them when
// stage is empty, enriched with directory records.
func (s *Service) ListCommittee(ctx context.Context, stage model.Stage) []CommitteeMemberDetail {
	members := s.registry.ListByStage(ctx, stage)
	out := make([]CommitteeMemberDetail, 0, len(members))
	for _, m := range members {
		out = append(out, s.enrichMembership(m))
	}
	return out
}

// Coverage reports, for every parent organization in the directory,
// whether a PRE_FINAL committee covers it, sorted by organization.
func (s *Service) Coverage(ctx context.Context) []OrgCoverage {
	orgs := s.dir.ParentOrgs()
	out := make([]OrgCoverage, 0, len(orgs))
	for _, org := range orgs {
		cov := OrgCoverage{
			ParentOrg:     org,
			EmployeeCount: len(s.dir.ByParentOrg(org)),
		}
		if m, ok := s.registry.FindPreFinalFor(ctx, org); ok {
			cov.HasCommittee = true
			detail := s.enrichMembership(m)
			cov.Committee = &detail
		}
		out = append(out, cov)
	}
	return out
}

// CheckCoverage reports whether one parent organization has a
// PRE_FINAL committee, and who holds it.
func (s *Service) CheckCoverage(ctx context.Context, org string) OrgCoverage {
	cov := OrgCoverage{
		ParentOrg:     org,
		EmployeeCount: len(s.dir.ByParentOrg(org)),
	}
	if m, ok := s.registry.FindPreFinalFor(ctx, org); ok {
		cov.HasCommittee = true
		detail := s.enrichMembership(m)
		cov.Committee = &detail
	}
	return cov
}

// Suggestions returns nominee candidates for an organization's
// committee: employees in the configured senior band, most senior
// first.
func (s *Service) Suggestions(ctx context.Context, org string) []Suggestion {
	candidates := s.dir.ByParentOrg(org)
	out := make([]Suggestion, 0, len(candidates))
	for _, e := range candidates {
		if e.Level < s.suggestionMinLevel || e.Level > s.suggestionMaxLevel {
			continue
		}
		out = append(out, Suggestion{
			Employee:           e,
			IsAlreadyCommittee: s.registry.IsMember(ctx, e.ID),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Level > out[j].Level })
	return out
}

func (s *Service) enrichMembership(m model.CommitteeMembership) CommitteeMemberDetail {
	detail := CommitteeMemberDetail{CommitteeMembership: m}
	if emp, ok := s.dir.Lookup(m.EmployeeID); ok {
		detail.Employee = &emp
	}
	return detail
}

func (s *Service) updateCommitteeMetrics(ctx context.Context) {
	counts := s.registry.CountByStage(ctx)
	metrics.UpdateCommitteeMembers(string(model.StagePreFinal), counts[model.StagePreFinal])
	metrics.UpdateCommitteeMembers(string(model.StageFinal), counts[model.StageFinal])
}
