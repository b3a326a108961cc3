// Package repository provides the in-memory stores behind the
// evaluation service: the work-item store, the append-only evaluation
// ledger and the committee registry. All stores are safe for
// concurrent use; the work-item store serializes mutations per item,
// never across items.
package repository

import (
	"context"
	"sync"

	"github.com/gun110939/demo-flow-send-pwa/internal/domain/errs"
	"github.com/gun110939/demo-flow-send-pwa/internal/domain/model"
)

// WorkItemFilter narrows List results. Zero values match everything.
type WorkItemFilter struct {
	Status      model.Status
	EmployeeID  int
	EvaluatorID int
}

// workItemEntry pairs a work item with its own lock. Holding the entry
// lock makes the item's read-decide-mutate sequence atomic without
// blocking operations on other items.
type workItemEntry struct {
	mu   sync.Mutex
	item model.WorkItem
}

// WorkItemStore holds the mutable lifecycle state of submitted work
// items, keyed by identifier.
type WorkItemStore struct {
	mu      sync.RWMutex // guards the map and insertion order, not item state
	entries map[string]*workItemEntry
	order   []string // insertion order for stable listings
}

// NewWorkItemStore creates an empty store.
func NewWorkItemStore() *WorkItemStore {
	return &WorkItemStore{
		entries: make(map[string]*workItemEntry),
	}
}

// Create inserts a new work item. Fails with a conflict if the id is
// already present.
func (s *WorkItemStore) Create(_ context.Context, item model.WorkItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[item.ID]; exists {
		return errs.Conflict("work item " + item.ID + " already exists")
	}
	s.entries[item.ID] = &workItemEntry{item: item}
	s.order = append(s.order, item.ID)
	return nil
}

// Get returns a copy of the work item with the given id.
func (s *WorkItemStore) Get(_ context.Context, id string) (model.WorkItem, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return model.WorkItem{}, errs.NotFound("work item", id)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.item, nil
}

// Update runs fn against the work item with the given id as one atomic
// unit: the entry lock is held across the read, the mutation and
// anything fn does (such as appending to the ledger), so concurrent
// evaluates against the same item serialize while other items proceed.
//
// Terminal items refuse mutation with an invalid-transition error; fn
// is not called. If fn returns an error the item is left unchanged.
func (s *WorkItemStore) Update(_ context.Context, id string, fn func(*model.WorkItem) error) (model.WorkItem, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return model.WorkItem{}, errs.NotFound("work item", id)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.item.Terminal() {
		return model.WorkItem{}, errs.InvalidTransition(id, string(entry.item.Status))
	}

	updated := entry.item
	if err := fn(&updated); err != nil {
		return model.WorkItem{}, err
	}
	entry.item = updated
	return updated, nil
}

// List returns copies of the work items matching filter, in insertion
// order.
func (s *WorkItemStore) List(_ context.Context, filter WorkItemFilter) []model.WorkItem {
	s.mu.RLock()
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	entriesByID := make(map[string]*workItemEntry, len(s.entries))
	for id, e := range s.entries {
		entriesByID[id] = e
	}
	s.mu.RUnlock()

	out := make([]model.WorkItem, 0, len(ids))
	for _, id := range ids {
		entry := entriesByID[id]
		entry.mu.Lock()
		item := entry.item
		entry.mu.Unlock()

		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.EmployeeID != 0 && item.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.EvaluatorID != 0 && item.EvaluatorID != filter.EvaluatorID {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Snapshot returns copies of every work item in insertion order.
func (s *WorkItemStore) Snapshot(ctx context.Context) []model.WorkItem {
	return s.List(ctx, WorkItemFilter{})
}

// Count returns the number of work items tracked.
func (s *WorkItemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear drops every work item. Used by the demo reset.
func (s *WorkItemStore) Clear(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*workItemEntry)
	s.order = nil
}
