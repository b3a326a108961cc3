// Package gendata produces synthetic personnel exports for local runs
// and demos. The output matches the column naming of the real directory
// export, so the generated file loads through the normal directory
// adapter without a mapping step.
package gendata

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gun110939/demo-flow-send-pwa/internal/domain/model"
	"github.com/gun110939/demo-flow-send-pwa/pkg/logger"
)

// Hierarchy level bands per role.
const (
	directorLevel      = 11
	headMinLevel       = 9
	headMaxLevel       = 10
	supervisorMinLevel = 7
	supervisorMaxLevel = 8
	staffMinLevel      = 1
	staffMaxLevel      = 6

	staffPerSupervisor = 5
)

var orgNames = []string{
	"WATER-OPS",
	"CUSTOMER-SVC",
	"NETWORK-MAINT",
	"WATER-QUALITY",
	"ENGINEERING",
	"FINANCE",
	"PROCUREMENT",
	"HUMAN-RESOURCES",
	"IT-SERVICES",
	"METERING",
}

var firstNames = []string{
	"Irene", "Tom", "Dana", "Luis", "Greta", "Omar", "Priya", "Jonas",
	"Amira", "Viktor", "Sofia", "Mihail", "Elena", "Karim", "Anna",
	"Pavel", "Leila", "Stefan", "Marta", "Nikolai",
}

var lastNames = []string{
	"Vasquez", "Okafor", "Petrov", "Moreno", "Lindqvist", "Haddad",
	"Sharma", "Berg", "Mansour", "Ivanov", "Ricci", "Georgiev",
	"Popova", "Aziz", "Keller", "Novak", "Rahimi", "Larsen",
	"Kowalska", "Dimitrov",
}

var titlesByBand = map[string][]string{
	"staff":      {"Field Technician", "Billing Clerk", "Lab Analyst", "Meter Reader", "Dispatcher", "Maintenance Worker"},
	"supervisor": {"Shift Supervisor", "Network Supervisor", "Team Lead", "Senior Analyst"},
	"head":       {"Department Head", "Quality Lead", "Chief Engineer", "Regional Manager"},
}

// Generate builds a synthetic employee directory: one director at the
// top, one head per organization reporting to the director, supervisors
// under each head, and staff under the supervisors.
func Generate(ctx context.Context, cfg *Config) []model.Employee {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // synthetic data only

	numOrgs := cfg.NumOrgs
	if numOrgs < 1 || numOrgs > len(orgNames) {
		numOrgs = len(orgNames)
	}
	staffPerOrg := cfg.StaffPerOrg
	if staffPerOrg < 1 {
		staffPerOrg = staffPerSupervisor * 2
	}

	logger.Get().Info(ctx, "generating synthetic directory",
		logger.Int("orgs", numOrgs),
		logger.Int("staffPerOrg", staffPerOrg),
	)

	var out []model.Employee
	nextID := 1000

	// The director sits above every organization and carries no parent
	// org of their own, so their approvals bypass the org committee.
	director := model.Employee{
		ID:      nextID,
		Name:    randomName(rng),
		Title:   "Managing Director",
		Level:   directorLevel,
		OrgID:   1,
		OrgName: "EXECUTIVE",
	}
	out = append(out, director)
	nextID++

	for i := 0; i < numOrgs; i++ {
		org := orgNames[i]
		orgID := 100 + i

		head := model.Employee{
			ID:          nextID,
			Name:        randomName(rng),
			Title:       pick(rng, titlesByBand["head"]),
			Level:       randBetween(rng, headMinLevel, headMaxLevel),
			OrgID:       orgID,
			OrgName:     org,
			ParentOrgID: orgID,
			ParentOrg:   org,
			ManagerID:   director.ID,
		}
		out = append(out, head)
		nextID++

		supervisors := supervisorCount(staffPerOrg)
		supIDs := make([]int, 0, supervisors)
		for s := 0; s < supervisors; s++ {
			sup := model.Employee{
				ID:          nextID,
				Name:        randomName(rng),
				Title:       pick(rng, titlesByBand["supervisor"]),
				Level:       randBetween(rng, supervisorMinLevel, supervisorMaxLevel),
				OrgID:       orgID,
				OrgName:     org,
				ParentOrgID: orgID,
				ParentOrg:   org,
				ManagerID:   head.ID,
			}
			out = append(out, sup)
			supIDs = append(supIDs, sup.ID)
			nextID++
		}

		for s := 0; s < staffPerOrg; s++ {
			staff := model.Employee{
				ID:          nextID,
				Name:        randomName(rng),
				Title:       pick(rng, titlesByBand["staff"]),
				Level:       randBetween(rng, staffMinLevel, staffMaxLevel),
				OrgID:       orgID,
				OrgName:     org,
				ParentOrgID: orgID,
				ParentOrg:   org,
				ManagerID:   supIDs[s%len(supIDs)],
			}
			out = append(out, staff)
			nextID++
		}

		if cfg.Verbose {
			logger.Get().Debug(ctx, "organization generated",
				logger.String("org", org),
				logger.Int("head", head.ID),
				logger.Int("supervisors", supervisors),
				logger.Int("staff", staffPerOrg),
			)
		}
	}

	logger.Get().Info(ctx, "directory generated", logger.Int("employees", len(out)))
	return out
}

// supervisorCount sizes the supervisor tier for a given staff count.
func supervisorCount(staff int) int {
	n := staff / staffPerSupervisor
	if n < 1 {
		n = 1
	}
	return n
}

func randomName(rng *rand.Rand) string {
	return fmt.Sprintf("%s %s", pick(rng, firstNames), pick(rng, lastNames))
}

func pick(rng *rand.Rand, from []string) string {
	return from[rng.Intn(len(from))]
}

func randBetween(rng *rand.Rand, min, max int) int {
	return min + rng.Intn(max-min+1)
}
