package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gun110939/demo-flow-send-pwa/internal/adapters/repository"
	"github.com/gun110939/demo-flow-send-pwa/internal/domain/errs"
	"github.com/gun110939/demo-flow-send-pwa/internal/domain/model"
)

func membership(id string, employeeID int, stage model.Stage, org string) model.CommitteeMembership {
	return model.CommitteeMembership{ID: id, EmployeeID: employeeID, Stage: stage, OrgFilter: org}
}

func TestCommitteeRegistry(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty committee registry", t, func() {
		reg := repository.NewCommitteeRegistry()

		Convey("When adding a PRE_FINAL membership", func() {
			added, err := reg.Add(ctx, membership("m1", 20, model.StagePreFinal, "WATER-OPS"))
			So(err, ShouldBeNil)
			So(added.OrgFilter, ShouldEqual, "WATER-OPS")

			Convey("Then a second PRE_FINAL membership for the same employee conflicts", func() {
				_, err := reg.Add(ctx, membership("m2", 20, model.StagePreFinal, "CUSTOMER-SVC"))
				So(errors.Is(err, errs.ErrConflict), ShouldBeTrue)
			})

			Convey("And a PRE_FINAL membership for another employee in the same org succeeds", func() {
				_, err := reg.Add(ctx, membership("m3", 21, model.StagePreFinal, "WATER-OPS"))
				So(err, ShouldBeNil)
			})

			Convey("And the same employee can still join the FINAL committee", func() {
				_, err := reg.Add(ctx, membership("m4", 20, model.StageFinal, ""))
				So(err, ShouldBeNil)
			})
		})

		Convey("When adding a FINAL membership with an org filter", func() {
			added, err := reg.Add(ctx, membership("m1", 30, model.StageFinal, "WATER-OPS"))

			Convey("Then the filter is forced empty so the member sees all", func() {
				So(err, ShouldBeNil)
				So(added.OrgFilter, ShouldBeEmpty)
			})
		})

		Convey("When removing", func() {
			_, err := reg.Add(ctx, membership("m1", 20, model.StagePreFinal, "WATER-OPS"))
			So(err, ShouldBeNil)

			So(reg.Remove(ctx, "m1"), ShouldBeNil)
			So(errors.Is(reg.Remove(ctx, "m1"), errs.ErrNotFound), ShouldBeTrue)
			So(reg.ListByStage(ctx, ""), ShouldBeEmpty)
		})

		Convey("When listing by stage", func() {
			_, _ = reg.Add(ctx, membership("m1", 20, model.StagePreFinal, "WATER-OPS"))
			_, _ = reg.Add(ctx, membership("m2", 21, model.StagePreFinal, "CUSTOMER-SVC"))
			_, _ = reg.Add(ctx, membership("m3", 30, model.StageFinal, ""))

			So(reg.ListByStage(ctx, model.StagePreFinal), ShouldHaveLength, 2)
			So(reg.ListByStage(ctx, model.StageFinal), ShouldHaveLength, 1)
			So(reg.ListByStage(ctx, ""), ShouldHaveLength, 3)

			counts := reg.CountByStage(ctx)
			So(counts[model.StagePreFinal], ShouldEqual, 2)
			So(counts[model.StageFinal], ShouldEqual, 1)
		})

		Convey("When resolving an employee with both memberships", func() {
			_, _ = reg.Add(ctx, membership("m1", 20, model.StagePreFinal, "WATER-OPS"))
			_, _ = reg.Add(ctx, membership("m2", 20, model.StageFinal, ""))

			Convey("Then FINAL takes precedence", func() {
				m, ok := reg.FindByEmployee(ctx, 20)
				So(ok, ShouldBeTrue)
				So(m.Stage, ShouldEqual, model.StageFinal)
			})
		})

		Convey("When checking org coverage", func() {
			_, _ = reg.Add(ctx, membership("m1", 20, model.StagePreFinal, "WATER-OPS"))

			_, covered := reg.FindPreFinalFor(ctx, "WATER-OPS")
			So(covered, ShouldBeTrue)
			_, covered = reg.FindPreFinalFor(ctx, "CUSTOMER-SVC")
			So(covered, ShouldBeFalse)

			So(reg.IsMember(ctx, 20), ShouldBeTrue)
			So(reg.IsMember(ctx, 99), ShouldBeFalse)
		})
	})
}

func TestCommitteeRegistryConcurrentAdds(t *testing.T) {
	ctx := context.Background()

	Convey("Given concurrent adds for the same employee and stage", t, func() {
		reg := repository.NewCommitteeRegistry()
		const attempts = 32

		var wg sync.WaitGroup
		errCh := make(chan error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := reg.Add(ctx, membership(fmt.Sprintf("m%d", i), 20, model.StagePreFinal, "WATER-OPS"))
				errCh <- err
			}(i)
		}
		wg.Wait()
		close(errCh)

		Convey("Then exactly one add wins", func() {
			var succeeded int
			for err := range errCh {
				if err == nil {
					succeeded++
				} else {
					So(errors.Is(err, errs.ErrConflict), ShouldBeTrue)
				}
			}
			So(succeeded, ShouldEqual, 1)
			So(reg.ListByStage(ctx, model.StagePreFinal), ShouldHaveLength, 1)
		})
	})
}
