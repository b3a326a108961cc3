package app

import (
	"context"

	"github.com/gun110939/demo-flow-send-pwa/internal/domain/model"
)

// Identity-picker sample sizes. The demo client is unauthenticated;
// users claim an identity from these role-grouped samples.
const (
	loginRegularMaxLevel  = 7
	loginManagerMinLevel  = 8
	loginManagerMaxLevel  = 9
	loginExecutiveLevel   = 10
	loginRegularSample    = 10
	loginManagerSample    = 10
	loginExecutiveSample  = 5
	loginPreFinalSample   = 5
)

// CommitteeLoginOption is an employee annotated with the committee
// role they would sign in under.
type CommitteeLoginOption struct {
	model.Employee
	CommitteeRole model.Stage `json:"committeeRole"`
}

// LoginOptions groups sample identities by role for the demo client's
// identity picker.
type LoginOptions struct {
	RegularEmployees  []model.Employee       `json:"regularEmployees"`
	Managers          []model.Employee       `json:"managers"`
	Executives        []model.Employee       `json:"executives"`
	PreFinalCommittee []CommitteeLoginOption `json:"preFinalCommittee"`
	FinalCommittee    []CommitteeLoginOption `json:"finalCommittee"`
}

// LoginOptions returns role-grouped identity samples. Samples are
// drawn with the service's random source, so a seeded service yields
// a stable picker.
func (s *Service) LoginOptions(ctx context.Context) LoginOptions {
	out := LoginOptions{
		RegularEmployees: s.sampleByLevel(1, loginRegularMaxLevel, loginRegularSample),
		Managers:         s.sampleByLevel(loginManagerMinLevel, loginManagerMaxLevel, loginManagerSample),
		Executives:       s.sampleByLevel(loginExecutiveLevel, 99, loginExecutiveSample),
	}

	for i, m := range s.registry.ListByStage(ctx, model.StagePreFinal) {
		if i >= loginPreFinalSample {
			break
		}
		if emp, ok := s.dir.Lookup(m.EmployeeID); ok {
			out.PreFinalCommittee = append(out.PreFinalCommittee, CommitteeLoginOption{
				Employee:      emp,
				CommitteeRole: model.StagePreFinal,
			})
		}
	}
	for _, m := range s.registry.ListByStage(ctx, model.StageFinal) {
		if emp, ok := s.dir.Lookup(m.EmployeeID); ok {
			out.FinalCommittee = append(out.FinalCommittee, CommitteeLoginOption{
				Employee:      emp,
				CommitteeRole: model.StageFinal,
			})
		}
	}

	return out
}

func (s *Service) sampleByLevel(min, max, n int) []model.Employee {
	candidates := s.dir.ByLevelRange(min, max)
	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if n > len(candidates) {
		n = len(candidates)
	}
	out := make([]model.Employee, n)
	copy(out, candidates[:n])
	return out
}
