package model_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gun110939/demo-flow-send-pwa/internal/domain/model"
)

func TestStatus(t *testing.T) {
	Convey("Given the work item statuses", t, func() {
		Convey("Then only APPROVED and REJECTED are terminal", func() {
			So(model.StatusPending.Terminal(), ShouldBeFalse)
			So(model.StatusApproved.Terminal(), ShouldBeTrue)
			So(model.StatusRejected.Terminal(), ShouldBeTrue)
		})
	})
}

func TestDecision(t *testing.T) {
	Convey("Given evaluation decisions", t, func() {
		So(model.DecisionApproved.Valid(), ShouldBeTrue)
		So(model.DecisionRejected.Valid(), ShouldBeTrue)
		So(model.Decision("MAYBE").Valid(), ShouldBeFalse)
		So(model.Decision("").Valid(), ShouldBeFalse)
	})
}

func TestEmployeePredicates(t *testing.T) {
	Convey("Given directory records", t, func() {
		Convey("An employee with org and manager references", func() {
			e := model.Employee{ID: 7, ParentOrg: "WATER-OPS", ManagerID: 3}
			So(e.HasParentOrg(), ShouldBeTrue)
			So(e.HasManager(), ShouldBeTrue)
		})

		Convey("An employee at the top of the hierarchy", func() {
			e := model.Employee{ID: 1, ParentOrg: "HQ"}
			So(e.HasParentOrg(), ShouldBeTrue)
			So(e.HasManager(), ShouldBeFalse)
		})

		Convey("An employee outside any parent organization", func() {
			e := model.Employee{ID: 99, ManagerID: 1}
			So(e.HasParentOrg(), ShouldBeFalse)
		})
	})
}

func TestWorkItemTerminal(t *testing.T) {
	Convey("Given work items in each status", t, func() {
		So(model.WorkItem{Status: model.StatusPending}.Terminal(), ShouldBeFalse)
		So(model.WorkItem{Status: model.StatusApproved}.Terminal(), ShouldBeTrue)
		So(model.WorkItem{Status: model.StatusRejected}.Terminal(), ShouldBeTrue)
	})
}
