package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/gun110939/demo-flow-send-pwa/internal/domain/model"
)

// EvaluationLedger is the append-only record of every evaluation
// decision. Records are never mutated or deleted once appended; the
// demo reset swaps the whole ledger.
type EvaluationLedger struct {
	mu      sync.RWMutex
	records []model.EvaluationRecord
	byItem  map[string][]int // work item id -> record indexes
}

// NewEvaluationLedger creates an empty ledger.
func NewEvaluationLedger() *EvaluationLedger {
	return &EvaluationLedger{
		byItem: make(map[string][]int),
	}
}

// Append adds a record to the ledger.
func (l *EvaluationLedger) Append(_ context.Context, rec model.EvaluationRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.byItem[rec.WorkItemID] = append(l.byItem[rec.WorkItemID], len(l.records))
	l.records = append(l.records, rec)
}

// ByWorkItem returns the records for one work item ordered by their
// 1-based evaluation order.
func (l *EvaluationLedger) ByWorkItem(_ context.Context, workItemID string) []model.EvaluationRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	idxs := l.byItem[workItemID]
	out := make([]model.EvaluationRecord, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, l.records[i])
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Order < out[b].Order })
	return out
}

// CountByEvaluator returns how many decisions an evaluator has made.
func (l *EvaluationLedger) CountByEvaluator(_ context.Context, evaluatorID int) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := 0
	for _, rec := range l.records {
		if rec.EvaluatorID == evaluatorID {
			n++
		}
	}
	return n
}

// Len returns the total number of records in the ledger.
func (l *EvaluationLedger) Len(_ context.Context) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Clear drops every record. Used by the demo reset.
func (l *EvaluationLedger) Clear(_ context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = nil
	l.byItem = make(map[string][]int)
}
