// Package model contains domain models passed between layers.
package model

import "time"

// AuditKind labels one audit trail entry.
type AuditKind string

// Audit entry kinds.
const (
	AuditSubmitted AuditKind = "SUBMITTED"
	AuditEvaluated AuditKind = "EVALUATED"
	AuditEscalated AuditKind = "ESCALATED"
	AuditCompleted AuditKind = "COMPLETED"
	AuditRejected  AuditKind = "REJECTED"
)

// AuditEvent records one lifecycle occurrence for the activity feed.
// Events flow through the audit queue and are persisted off the
// request path.
type AuditEvent struct {
	ID         string    `json:"id"`
	Kind       AuditKind `json:"kind"`
	WorkItemID string    `json:"workResultId"`
	ActorID    int       `json:"actorPernr"`
	Stage      Stage     `json:"committeeStage"`
	Decision   Decision  `json:"decision,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	At         time.Time `json:"at"`
}
