// Package directory provides the read-only employee directory: lookup
// by identifier, name/id search with pagination, and organizational
// groupings. The directory is immutable once loaded; no writes flow
// back into it.
package directory

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/gun110939/demo-flow-send-pwa/internal/domain/errs"
	"github.com/gun110939/demo-flow-send-pwa/internal/domain/model"
)

// Default pagination bounds for Search.
const (
	defaultPageLimit = 50
	maxPageLimit     = 500
)

// Directory is an in-memory, read-only employee registry.
type Directory struct {
	byID       map[int]model.Employee
	ordered    []model.Employee // load order, stable across calls
	parentOrgs []string         // distinct, sorted
}

// New builds a Directory from a slice of employees. Later duplicates
// of the same id win, matching the source export's row precedence.
func New(employees []model.Employee) *Directory {
	d := &Directory{
		byID:    make(map[int]model.Employee, len(employees)),
		ordered: make([]model.Employee, 0, len(employees)),
	}

	for _, e := range employees {
		if _, dup := d.byID[e.ID]; !dup {
			d.ordered = append(d.ordered, e)
		}
		d.byID[e.ID] = e
	}

	orgSet := make(map[string]struct{})
	for _, e := range d.ordered {
		if e.HasParentOrg() {
			orgSet[e.ParentOrg] = struct{}{}
		}
	}
	d.parentOrgs = make([]string, 0, len(orgSet))
	for org := range orgSet {
		d.parentOrgs = append(d.parentOrgs, org)
	}
	sort.Strings(d.parentOrgs)

	return d
}

// Lookup resolves an employee by identifier.
func (d *Directory) Lookup(id int) (model.Employee, bool) {
	e, ok := d.byID[id]
	return e, ok
}

// Get resolves an employee by identifier, returning a typed not-found
// error for unknown ids.
func (d *Directory) Get(_ context.Context, id int) (model.Employee, error) {
	e, ok := d.byID[id]
	if !ok {
		return model.Employee{}, errs.NotFound("employee", strconv.Itoa(id))
	}
	return e, nil
}

// All returns every employee in load order. The returned slice is a
// copy; callers may not mutate directory state through it.
func (d *Directory) All() []model.Employee {
	out := make([]model.Employee, len(d.ordered))
	copy(out, d.ordered)
	return out
}

// Count returns the number of employees in the directory.
func (d *Directory) Count() int {
	return len(d.ordered)
}

// SearchResult is one page of directory search output.
type SearchResult struct {
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Data  []model.Employee `json:"data"`
}

// Search filters employees by a case-insensitive name substring or an
// id substring, then paginates. An empty query matches everyone.
func (d *Directory) Search(query string, page, limit int) SearchResult {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	matched := d.ordered
	if q := strings.TrimSpace(query); q != "" {
		lower := strings.ToLower(q)
		matched = make([]model.Employee, 0)
		for _, e := range d.ordered {
			if strings.Contains(strings.ToLower(e.Name), lower) ||
				strings.Contains(strconv.Itoa(e.ID), q) {
				matched = append(matched, e)
			}
		}
	}

	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	pageData := make([]model.Employee, end-start)
	copy(pageData, matched[start:end])

	return SearchResult{
		Total: len(matched),
		Page:  page,
		Limit: limit,
		Data:  pageData,
	}
}

// ByParentOrg returns the employees belonging to the given parent
// organization, in load order.
func (d *Directory) ByParentOrg(org string) []model.Employee {
	out := make([]model.Employee, 0)
	for _, e := range d.ordered {
		if e.ParentOrg == org {
			out = append(out, e)
		}
	}
	return out
}

// ByLevelRange returns employees whose hierarchy level satisfies
// min <= level <= max, in load order.
func (d *Directory) ByLevelRange(min, max int) []model.Employee {
	out := make([]model.Employee, 0)
	for _, e := range d.ordered {
		if e.Level >= min && e.Level <= max {
			out = append(out, e)
		}
	}
	return out
}

// ParentOrgs returns the distinct parent organizations, sorted.
func (d *Directory) ParentOrgs() []string {
	out := make([]string, len(d.parentOrgs))
	copy(out, d.parentOrgs)
	return out
}
