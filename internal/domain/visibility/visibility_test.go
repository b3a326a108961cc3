package visibility_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gun110939/demo-flow-send-pwa/internal/domain/model"
	"github.com/gun110939/demo-flow-send-pwa/internal/domain/visibility"
)

type mapDirectory map[int]model.Employee

func (d mapDirectory) Lookup(id int) (model.Employee, bool) {
	e, ok := d[id]
	return e, ok
}

func TestPendingFor(t *testing.T) {
	dir := mapDirectory{
		7:  {ID: 7, ParentOrg: "WATER-OPS"},
		8:  {ID: 8, ParentOrg: "CUSTOMER-SVC"},
		9:  {ID: 9}, // no parent org
		20: {ID: 20, Level: 9},
	}

	items := []model.WorkItem{
		{ID: "a", EmployeeID: 7, Stage: model.StageNone, Status: model.StatusPending, EvaluatorID: 20},
		{ID: "b", EmployeeID: 7, Stage: model.StagePreFinal, Status: model.StatusPending},
		{ID: "c", EmployeeID: 8, Stage: model.StagePreFinal, Status: model.StatusPending},
		{ID: "d", EmployeeID: 8, Stage: model.StageFinal, Status: model.StatusPending},
		{ID: "e", EmployeeID: 9, Stage: model.StageNone, Status: model.StatusRejected, EvaluatorID: 20},
		{ID: "f", EmployeeID: 9, Stage: model.StageFinal, Status: model.StatusApproved},
	}

	Convey("Given a FINAL committee member", t, func() {
		m := &model.CommitteeMembership{EmployeeID: 50, Stage: model.StageFinal}

		Convey("Then every FINAL-stage item is visible regardless of status", func() {
			got := visibility.PendingFor(50, m, items, dir)
			So(got, ShouldHaveLength, 2)
			So(got[0].ID, ShouldEqual, "d")
			So(got[1].ID, ShouldEqual, "f")
		})
	})

	Convey("Given a PRE_FINAL committee member scoped to WATER-OPS", t, func() {
		m := &model.CommitteeMembership{EmployeeID: 51, Stage: model.StagePreFinal, OrgFilter: "WATER-OPS"}

		Convey("Then only PRE_FINAL items from that organization show", func() {
			got := visibility.PendingFor(51, m, items, dir)
			So(got, ShouldHaveLength, 1)
			So(got[0].ID, ShouldEqual, "b")
		})
	})

	Convey("Given a regular evaluator", t, func() {
		Convey("Then only their pending in-chain assignments show", func() {
			got := visibility.PendingFor(20, nil, items, dir)
			So(got, ShouldHaveLength, 1)
			So(got[0].ID, ShouldEqual, "a")
		})

		Convey("And an evaluator with nothing assigned sees nothing", func() {
			So(visibility.PendingFor(999, nil, items, dir), ShouldBeEmpty)
		})
	})
}
