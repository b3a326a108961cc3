package directory_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gun110939/demo-flow-send-pwa/internal/adapters/directory"
	"github.com/gun110939/demo-flow-send-pwa/internal/domain/errs"
	"github.com/gun110939/demo-flow-send-pwa/internal/domain/model"
	"github.com/gun110939/demo-flow-send-pwa/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func employees() []model.Employee {
	return []model.Employee{
		{ID: 1001, Name: "Anan Director", Level: 11, ParentOrg: "HQ"},
		{ID: 1003, Name: "Busaba Manager", Level: 8, ParentOrg: "WATER-OPS", ManagerID: 1001},
		{ID: 1007, Name: "Chai Engineer", Level: 5, ParentOrg: "WATER-OPS", ManagerID: 1003},
		{ID: 1009, Name: "Duang Analyst", Level: 6, ParentOrg: "CUSTOMER-SVC", ManagerID: 1001},
		{ID: 1011, Name: "Ekkarat Contractor", Level: 4, ManagerID: 1003},
	}
}

func TestDirectoryQueries(t *testing.T) {
	Convey("Given a loaded directory", t, func() {
		d := directory.New(employees())
		ctx := context.Background()

		Convey("Then Lookup and Get resolve known ids", func() {
			e, ok := d.Lookup(1007)
			So(ok, ShouldBeTrue)
			So(e.Name, ShouldEqual, "Chai Engineer")

			got, err := d.Get(ctx, 1007)
			So(err, ShouldBeNil)
			So(got.ID, ShouldEqual, 1007)
		})

		Convey("Then Get returns a typed not-found for unknown ids", func() {
			_, err := d.Get(ctx, 9999)
			So(errors.Is(err, errs.ErrNotFound), ShouldBeTrue)

			var nf *errs.NotFoundError
			So(errors.As(err, &nf), ShouldBeTrue)
			So(nf.Entity, ShouldEqual, "employee")
		})

		Convey("Then Count and All reflect the load", func() {
			So(d.Count(), ShouldEqual, 5)
			So(d.All(), ShouldHaveLength, 5)
		})

		Convey("Then ParentOrgs is distinct and sorted", func() {
			So(d.ParentOrgs(), ShouldResemble, []string{"CUSTOMER-SVC", "HQ", "WATER-OPS"})
		})

		Convey("Then ByParentOrg scopes employees to one organization", func() {
			ops := d.ByParentOrg("WATER-OPS")
			So(ops, ShouldHaveLength, 2)
			So(ops[0].ID, ShouldEqual, 1003)
		})

		Convey("Then ByLevelRange selects the senior band", func() {
			band := d.ByLevelRange(8, 11)
			So(band, ShouldHaveLength, 2)
		})
	})
}

func TestDirectorySearch(t *testing.T) {
	Convey("Given a loaded directory", t, func() {
		d := directory.New(employees())

		Convey("When searching by name substring", func() {
			res := d.Search("manager", 1, 50)
			So(res.Total, ShouldEqual, 1)
			So(res.Data[0].ID, ShouldEqual, 1003)
		})

		Convey("When searching by id substring", func() {
			res := d.Search("100", 1, 50)
			So(res.Total, ShouldEqual, 5)
		})

		Convey("When paginating", func() {
			page1 := d.Search("", 1, 2)
			page3 := d.Search("", 3, 2)
			So(page1.Total, ShouldEqual, 5)
			So(page1.Data, ShouldHaveLength, 2)
			So(page3.Data, ShouldHaveLength, 1)

			Convey("And a page past the end is empty, not an error", func() {
				So(d.Search("", 9, 2).Data, ShouldBeEmpty)
			})
		})

		Convey("When the page and limit are out of range they are clamped", func() {
			res := d.Search("", 0, -1)
			So(res.Page, ShouldEqual, 1)
			So(res.Limit, ShouldEqual, 50)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given an employee export on disk", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "employees.json")
		payload := `[
			{"PERNR": 1001, "ENAME": "Anan Director", "PERSK": 11, "PARENTORG": "HQ"},
			{"PERNR": 1007, "ENAME": "Chai Engineer", "PERSK": 5, "PARENTORG": "WATER-OPS", "MGRPERNR": 1001},
			{"PERNR": 0, "ENAME": "broken row"}
		]`
		So(os.WriteFile(path, []byte(payload), 0o600), ShouldBeNil)

		Convey("Then Load builds a directory and drops rows without an id", func() {
			d, err := directory.Load(context.Background(), path)
			So(err, ShouldBeNil)
			So(d.Count(), ShouldEqual, 2)

			e, ok := d.Lookup(1007)
			So(ok, ShouldBeTrue)
			So(e.ManagerID, ShouldEqual, 1001)
		})

		Convey("Then a missing file reports a load error", func() {
			_, err := directory.Load(context.Background(), filepath.Join(dir, "absent.json"))
			So(errors.Is(err, directory.ErrLoadDirectory), ShouldBeTrue)
		})

		Convey("Then malformed JSON reports a parse error", func() {
			bad := filepath.Join(dir, "bad.json")
			So(os.WriteFile(bad, []byte("{not json"), 0o600), ShouldBeNil)
			_, err := directory.Load(context.Background(), bad)
			So(errors.Is(err, directory.ErrParseDirectory), ShouldBeTrue)
		})
	})
}
