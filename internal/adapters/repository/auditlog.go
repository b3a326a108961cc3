package repository

import (
	"context"
	"sync"

	"github.com/gun110939/demo-flow-send-pwa/internal/domain/model"
)

const defaultAuditRetention = 1000

// AuditLog is a bounded in-memory activity feed. Entries arrive from
// the audit workers, newest kept, oldest evicted once the retention
// cap is hit.
type AuditLog struct {
	mu        sync.RWMutex
	entries   []model.AuditEvent
	retention int
}

// NewAuditLog creates an audit log keeping at most retention entries.
// A non-positive retention falls back to the default.
func NewAuditLog(retention int) *AuditLog {
	if retention <= 0 {
		retention = defaultAuditRetention
	}
	return &AuditLog{retention: retention}
}

// Record appends one entry, evicting the oldest past retention.
func (l *AuditLog) Record(_ context.Context, e model.AuditEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, e)
	if len(l.entries) > l.retention {
		l.entries = l.entries[len(l.entries)-l.retention:]
	}
	return nil
}

// Recent returns up to n entries, newest first. n < 1 returns everything.
func (l *AuditLog) Recent(_ context.Context, n int) []model.AuditEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n < 1 || n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]model.AuditEvent, n)
	for i := 0; i < n; i++ {
		out[i] = l.entries[len(l.entries)-1-i]
	}
	return out
}

// Len returns the number of retained entries.
func (l *AuditLog) Len(_ context.Context) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Clear drops all entries.
func (l *AuditLog) Clear(_ context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
