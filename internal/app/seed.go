package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gun110939/demo-flow-send-pwa/internal/domain/model"
	"github.com/gun110939/demo-flow-send-pwa/pkg/logger"
)

// Demo seeding parameters, mirroring the committee shape the
// organization actually runs: one org-scoped screener per parent org
// drawn from levels 9-10, five top-level members from levels 10-11,
// and a handful of sample submissions from regular employees.
const (
	seedPreFinalMinLevel  = 9
	seedPreFinalMaxLevel  = 10
	seedFinalMinLevel     = 10
	seedFinalMaxLevel     = 11
	seedFinalSize         = 5
	seedSampleItems       = 10
	seedSampleMaxLevel    = 8
)

var seedWorkTitles = []string{
	"Water consumption tracking system",
	"Tap water production process improvement",
	"Water loss reduction program",
	"Issue reporting mobile application",
	"Customer service workflow revamp",
	"Energy saving initiative",
	"Water quality monitoring system",
	"Revenue collection system upgrade",
	"Preventive maintenance program",
	"Operational reporting dashboard",
}

// seed populates committees and sample work items using the injected
// random source. Callers hold no locks; seeding happens before the
// service accepts traffic (Start) or after a full Clear (Reset).
func (s *Service) seed(ctx context.Context) {
	s.seedPreFinalCommittee(ctx)
	s.seedFinalCommittee(ctx)
	s.seedSampleWorkItems(ctx)
}

// seedPreFinalCommittee assigns one PRE_FINAL member per parent
// organization, picked from that organization's level 9-10 band. Orgs
// without candidates stay uncovered and show up in Coverage.
func (s *Service) seedPreFinalCommittee(ctx context.Context) {
	for _, org := range s.dir.ParentOrgs() {
		var candidates []model.Employee
		for _, e := range s.dir.ByParentOrg(org) {
			if e.Level >= seedPreFinalMinLevel && e.Level <= seedPreFinalMaxLevel {
				candidates = append(candidates, e)
			}
		}
		if len(candidates) == 0 {
			continue
		}

		selected := candidates[s.rng.Intn(len(candidates))]
		_, err := s.registry.Add(ctx, model.CommitteeMembership{
			ID:         uuid.New().String(),
			EmployeeID: selected.ID,
			Stage:      model.StagePreFinal,
			OrgFilter:  org,
		})
		if err != nil {
			s.logger.Warn(ctx, "skipping pre-final seed assignment",
				logger.Int("employeeId", selected.ID),
				logger.String("org", org),
				logger.Error(err),
			)
		}
	}
}

// seedFinalCommittee assigns five FINAL members from the level 10-11
// band across the whole directory.
func (s *Service) seedFinalCommittee(ctx context.Context) {
	candidates := s.dir.ByLevelRange(seedFinalMinLevel, seedFinalMaxLevel)
	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	seeded := 0
	for _, e := range candidates {
		if seeded >= seedFinalSize {
			break
		}
		_, err := s.registry.Add(ctx, model.CommitteeMembership{
			ID:         uuid.New().String(),
			EmployeeID: e.ID,
			Stage:      model.StageFinal,
		})
		if err != nil {
			continue
		}
		seeded++
	}
}

// seedSampleWorkItems submits demo work results for ten regular
// employees so a fresh instance has something to route.
func (s *Service) seedSampleWorkItems(ctx context.Context) {
	candidates := s.dir.ByLevelRange(1, seedSampleMaxLevel)
	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	n := seedSampleItems
	if n > len(candidates) {
		n = len(candidates)
	}
	for i := 0; i < n; i++ {
		emp := candidates[i]
		title := seedWorkTitles[i%len(seedWorkTitles)]

		item := model.WorkItem{
			ID:          uuid.New().String(),
			EmployeeID:  emp.ID,
			Title:       title,
			Description: fmt.Sprintf("%s, submitted by %s", title, emp.Name),
			Status:      model.StatusPending,
			Stage:       model.StageNone,
			EvaluatorID: emp.ManagerID,
			SubmittedAt: time.Now(),
		}
		if !emp.HasParentOrg() || !emp.HasManager() {
			item.Stage = model.StagePreFinal
			item.EvaluatorID = 0
		}

		if err := s.items.Create(ctx, item); err != nil {
			s.logger.Warn(ctx, "skipping sample work item", logger.Error(err))
		}
	}

	s.logger.Info(ctx, "demo data seeded",
		logger.Int("workItems", s.items.Count(ctx)),
		logger.Int("committeeMembers", len(s.registry.ListByStage(ctx, ""))),
	)
}
