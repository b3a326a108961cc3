package gendata_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gun110939/demo-flow-send-pwa/internal/adapters/directory"
	"github.com/gun110939/demo-flow-send-pwa/internal/gendata"
	"github.com/gun110939/demo-flow-send-pwa/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestGenerate(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		ctx := context.Background()
		cfg := &gendata.Config{NumOrgs: 3, StaffPerOrg: 10, Seed: 42}

		employees := gendata.Generate(ctx, cfg)

		Convey("It produces a director plus three populated orgs", func() {
			So(len(employees), ShouldBeGreaterThan, 3*10)

			director := employees[0]
			So(director.Level, ShouldEqual, 11)
			So(director.ManagerID, ShouldEqual, 0)
			So(director.ParentOrg, ShouldBeEmpty)
		})

		Convey("Every non-director employee has a resolvable manager", func() {
			byID := make(map[int]bool, len(employees))
			for _, e := range employees {
				byID[e.ID] = true
			}
			for _, e := range employees[1:] {
				So(byID[e.ManagerID], ShouldBeTrue)
			}
		})

		Convey("The same seed reproduces the same directory", func() {
			again := gendata.Generate(ctx, &gendata.Config{NumOrgs: 3, StaffPerOrg: 10, Seed: 42})
			So(len(again), ShouldEqual, len(employees))
			So(again[0].Name, ShouldEqual, employees[0].Name)
			So(again[len(again)-1].Name, ShouldEqual, employees[len(employees)-1].Name)
		})

		Convey("Verbose mode only adds logging, never changes the output", func() {
			verbose := gendata.Generate(ctx, &gendata.Config{NumOrgs: 3, StaffPerOrg: 10, Seed: 42, Verbose: true})
			So(verbose, ShouldResemble, employees)
		})

		Convey("Management chains terminate at the director", func() {
			dir := directory.New(employees)
			for _, e := range employees[1:] {
				chain := chainIDs(dir, e.ID)
				So(chain[len(chain)-1], ShouldEqual, employees[0].ID)
			}
		})
	})
}

func chainIDs(dir *directory.Directory, id int) []int {
	var out []int
	cur, _ := dir.Lookup(id)
	for cur.ManagerID != 0 {
		next, ok := dir.Lookup(cur.ManagerID)
		if !ok {
			break
		}
		out = append(out, next.ID)
		cur = next
	}
	return out
}

func TestWriteFile(t *testing.T) {
	Convey("Given a generated directory", t, func() {
		ctx := context.Background()
		employees := gendata.Generate(ctx, &gendata.Config{NumOrgs: 2, StaffPerOrg: 5, Seed: 7})
		path := filepath.Join(t.TempDir(), "exports", "employees.json")

		So(gendata.WriteFile(path, employees), ShouldBeNil)

		Convey("The export round-trips through the directory loader", func() {
			dir, err := directory.Load(ctx, path)
			So(err, ShouldBeNil)
			So(dir.Count(), ShouldEqual, len(employees))
		})

		Convey("The export uses the personnel column names", func() {
			raw, err := os.ReadFile(path) //nolint:gosec // test temp file
			So(err, ShouldBeNil)

			var rows []map[string]any
			So(json.Unmarshal(raw, &rows), ShouldBeNil)
			So(rows[0], ShouldContainKey, "PERNR")
			So(rows[0], ShouldContainKey, "MGRPERNR")
			So(rows[0], ShouldContainKey, "PARENTORG")
		})
	})
}
