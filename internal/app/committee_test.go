package app_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gun110939/demo-flow-send-pwa/internal/adapters/repository"
	"github.com/gun110939/demo-flow-send-pwa/internal/app"
	"github.com/gun110939/demo-flow-send-pwa/internal/domain/errs"
	"github.com/gun110939/demo-flow-send-pwa/internal/domain/model"
)

func TestCommitteeManagement(t *testing.T) {
	ctx := context.Background()

	Convey("Given the evaluation service", t, func() {
		svc := newService(t)

		Convey("When adding a PRE_FINAL member without an org filter", func() {
			added, err := svc.AddCommitteeMember(ctx, 20, model.StagePreFinal, "")
			So(err, ShouldBeNil)

			Convey("Then the filter defaults to the member's own organization", func() {
				So(added.OrgFilter, ShouldEqual, "WATER-OPS")
				So(added.Employee.ID, ShouldEqual, 20)
			})

			Convey("Then a duplicate membership in the same stage conflicts", func() {
				_, err := svc.AddCommitteeMember(ctx, 20, model.StagePreFinal, "CUSTOMER-SVC")
				So(errors.Is(err, errs.ErrConflict), ShouldBeTrue)
			})
		})

		Convey("When adding a FINAL member with an org filter", func() {
			added, err := svc.AddCommitteeMember(ctx, 30, model.StageFinal, "WATER-OPS")
			So(err, ShouldBeNil)
			So(added.OrgFilter, ShouldBeEmpty)
		})

		Convey("When the stage is not a committee stage", func() {
			_, err := svc.AddCommitteeMember(ctx, 20, model.StageNone, "")
			So(errors.Is(err, app.ErrInvalidStage), ShouldBeTrue)
		})

		Convey("When the employee is unknown", func() {
			_, err := svc.AddCommitteeMember(ctx, 404, model.StageFinal, "")
			So(errors.Is(err, errs.ErrNotFound), ShouldBeTrue)
		})

		Convey("When listing and removing", func() {
			added, _ := svc.AddCommitteeMember(ctx, 20, model.StagePreFinal, "")
			_, _ = svc.AddCommitteeMember(ctx, 30, model.StageFinal, "")

			So(svc.ListCommittee(ctx, ""), ShouldHaveLength, 2)
			So(svc.ListCommittee(ctx, model.StageFinal), ShouldHaveLength, 1)

			So(svc.RemoveCommitteeMember(ctx, added.ID), ShouldBeNil)
			So(errors.Is(svc.RemoveCommitteeMember(ctx, added.ID), errs.ErrNotFound), ShouldBeTrue)
			So(svc.ListCommittee(ctx, ""), ShouldHaveLength, 1)
		})
	})
}

func TestCoverageAndSuggestions(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service with one covered organization", t, func() {
		svc := newService(t)
		_, err := svc.AddCommitteeMember(ctx, 20, model.StagePreFinal, "")
		So(err, ShouldBeNil)

		Convey("Then Coverage reports every org, covered or not, sorted", func() {
			coverage := svc.Coverage(ctx)
			So(coverage, ShouldHaveLength, 3) // CUSTOMER-SVC, HQ, WATER-OPS

			So(coverage[0].ParentOrg, ShouldEqual, "CUSTOMER-SVC")
			So(coverage[0].HasCommittee, ShouldBeFalse)
			So(coverage[0].Committee, ShouldBeNil)
			So(coverage[0].EmployeeCount, ShouldEqual, 3)

			So(coverage[2].ParentOrg, ShouldEqual, "WATER-OPS")
			So(coverage[2].HasCommittee, ShouldBeTrue)
			So(coverage[2].Committee.Employee.ID, ShouldEqual, 20)
		})

		Convey("Then CheckCoverage answers for a single org", func() {
			So(svc.CheckCoverage(ctx, "WATER-OPS").HasCommittee, ShouldBeTrue)
			So(svc.CheckCoverage(ctx, "CUSTOMER-SVC").HasCommittee, ShouldBeFalse)
		})

		Convey("Then Suggestions returns the senior band, most senior first", func() {
			got := svc.Suggestions(ctx, "WATER-OPS")
			So(got, ShouldHaveLength, 3) // E001 (11), E020 (9), E003 (8)
			So(got[0].ID, ShouldEqual, 1)
			So(got[0].Level, ShouldEqual, 11)
			So(got[0].IsAlreadyCommittee, ShouldBeFalse)

			Convey("And current members are annotated", func() {
				for _, sug := range got {
					if sug.ID == 20 {
						So(sug.IsAlreadyCommittee, ShouldBeTrue)
					}
				}
			})
		})

		Convey("Then an org with no senior-band employees suggests nothing", func() {
			So(svc.Suggestions(ctx, "NO-SUCH-ORG"), ShouldBeEmpty)
		})
	})
}

func TestDashboards(t *testing.T) {
	ctx := context.Background()

	Convey("Given submissions in assorted states", t, func() {
		svc := newService(t)
		_, _ = svc.AddCommitteeMember(ctx, 30, model.StageFinal, "")

		a, _ := svc.SubmitWork(ctx, 7, "a", "d")
		_, _ = svc.SubmitWork(ctx, 8, "b", "d")
		_, _ = svc.SubmitWork(ctx, 9, "c", "d") // straight to PRE_FINAL
		_, err := svc.Evaluate(ctx, a.ID, 3, model.DecisionRejected, "", nil)
		So(err, ShouldBeNil)

		Convey("Then DashboardStats aggregates the store", func() {
			stats := svc.DashboardStats(ctx)
			So(stats.TotalEmployees, ShouldEqual, 9)
			So(stats.TotalWorkResults, ShouldEqual, 3)
			So(stats.Pending, ShouldEqual, 2)
			So(stats.Rejected, ShouldEqual, 1)
			So(stats.InPreFinal, ShouldEqual, 1)
			So(stats.InFinal, ShouldEqual, 0)
			So(stats.TotalEvaluations, ShouldEqual, 1)
		})

		Convey("Then EmployeeDashboard covers a submitter", func() {
			got, err := svc.EmployeeDashboard(ctx, 7)
			So(err, ShouldBeNil)
			So(got.IsCommitteeMember, ShouldBeFalse)
			So(got.MyWorkResults.Total, ShouldEqual, 1)
			So(got.MyWorkResults.Rejected, ShouldEqual, 1)
			So(got.TotalEvaluationsDone, ShouldEqual, 0)
		})

		Convey("Then EmployeeDashboard covers an evaluator", func() {
			got, err := svc.EmployeeDashboard(ctx, 3)
			So(err, ShouldBeNil)
			So(got.PendingEvaluations, ShouldEqual, 0) // their only assignment was rejected above
			So(got.TotalEvaluationsDone, ShouldEqual, 1)
		})

		Convey("Then EmployeeDashboard covers a committee member", func() {
			got, err := svc.EmployeeDashboard(ctx, 30)
			So(err, ShouldBeNil)
			So(got.IsCommitteeMember, ShouldBeTrue)
			So(got.CommitteeStage, ShouldEqual, model.StageFinal)
			So(got.PendingEvaluations, ShouldEqual, 0)
		})

		Convey("Then an unknown employee is a not-found", func() {
			_, err := svc.EmployeeDashboard(ctx, 404)
			So(errors.Is(err, errs.ErrNotFound), ShouldBeTrue)
		})

		Convey("Then GetStats mirrors the aggregate view", func() {
			m := svc.GetStats()
			So(m["totalWorkResults"], ShouldEqual, 3)
			So(m["finalMembers"], ShouldEqual, 1)
		})
	})
}

func TestDemoSeedAndReset(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service seeded with a fixed random source", t, func() {
		svc := newService(t, app.WithDemoSeed(true), app.WithRandom(rand.New(rand.NewSource(42)))) //nolint:gosec // deterministic test seed

		Convey("Then every parent org with band candidates gets a screener", func() {
			preFinal := svc.ListCommittee(ctx, model.StagePreFinal)
			orgs := make(map[string]bool)
			for _, m := range preFinal {
				orgs[m.OrgFilter] = true
			}
			// WATER-OPS and CUSTOMER-SVC have level 9-10 candidates; HQ's
			// only resident is level 10, also eligible.
			So(orgs["WATER-OPS"], ShouldBeTrue)
			So(orgs["CUSTOMER-SVC"], ShouldBeTrue)
		})

		Convey("Then FINAL members come from the executive band", func() {
			finals := svc.ListCommittee(ctx, model.StageFinal)
			So(len(finals), ShouldBeGreaterThan, 0)
			for _, m := range finals {
				So(m.Employee.Level, ShouldBeBetweenOrEqual, 10, 11)
				So(m.OrgFilter, ShouldBeEmpty)
			}
		})

		Convey("Then sample work items exist for regular employees", func() {
			stats := svc.DashboardStats(ctx)
			So(stats.TotalWorkResults, ShouldBeGreaterThan, 0)
			So(stats.Pending, ShouldEqual, stats.TotalWorkResults)
		})

		Convey("Then seeding is deterministic for a fixed seed", func() {
			other := newService(t, app.WithDemoSeed(true), app.WithRandom(rand.New(rand.NewSource(42)))) //nolint:gosec // deterministic test seed

			a := svc.ListCommittee(ctx, model.StageFinal)
			b := other.ListCommittee(ctx, model.StageFinal)
			So(len(a), ShouldEqual, len(b))
			for i := range a {
				So(a[i].EmployeeID, ShouldEqual, b[i].EmployeeID)
			}
		})

		Convey("Then Reset clears evaluations and reseeds", func() {
			items := svc.ListWorkItems(ctx, repository.WorkItemFilter{})
			So(items, ShouldNotBeEmpty)

			svc.Reset(ctx)

			stats := svc.DashboardStats(ctx)
			So(stats.TotalEvaluations, ShouldEqual, 0)
			So(stats.TotalWorkResults, ShouldBeGreaterThan, 0)
		})
	})
}

func TestLoginOptions(t *testing.T) {
	ctx := context.Background()

	Convey("Given a seeded service", t, func() {
		svc := newService(t, app.WithDemoSeed(true))

		Convey("Then the identity picker groups roles by level band", func() {
			opts := svc.LoginOptions(ctx)

			for _, e := range opts.RegularEmployees {
				So(e.Level, ShouldBeLessThanOrEqualTo, 7)
			}
			for _, e := range opts.Managers {
				So(e.Level, ShouldBeBetweenOrEqual, 8, 9)
			}
			for _, e := range opts.Executives {
				So(e.Level, ShouldBeGreaterThanOrEqualTo, 10)
			}
			for _, c := range opts.PreFinalCommittee {
				So(c.CommitteeRole, ShouldEqual, model.StagePreFinal)
			}
			for _, c := range opts.FinalCommittee {
				So(c.CommitteeRole, ShouldEqual, model.StageFinal)
			}
		})
	})
}
