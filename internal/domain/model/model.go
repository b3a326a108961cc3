// Package model contains domain models passed between layers.
package model

import "time"

// Status classifies a work item's lifecycle outcome.
type Status string

// Work item statuses. APPROVED and REJECTED are terminal.
const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Stage is the escalation phase of a work item.
type Stage string

// Escalation stages. NONE means the item is still inside the
// management chain; PRE_FINAL and FINAL are committee stages.
const (
	StageNone     Stage = "NONE"
	StagePreFinal Stage = "PRE_FINAL"
	StageFinal    Stage = "FINAL"
)

// Decision is the outcome an evaluator records against a work item.
type Decision string

// Evaluation decisions.
const (
	DecisionApproved Decision = "APPROVED"
	DecisionRejected Decision = "REJECTED"
)

// Valid reports whether d is one of the known decisions.
func (d Decision) Valid() bool {
	return d == DecisionApproved || d == DecisionRejected
}

// NextAction describes where an evaluate call sent the work item.
type NextAction string

// Next actions reported by evaluate.
const (
	ActionRejected       NextAction = "REJECTED"
	ActionCompleted      NextAction = "COMPLETED"
	ActionSentToFinal    NextAction = "SENT_TO_FINAL"
	ActionSentToPreFinal NextAction = "SENT_TO_PRE_FINAL"
	ActionSentToNext     NextAction = "SENT_TO_NEXT"
)

// Employee is a read-only directory record. Field tags mirror the
// column names of the source personnel export so the raw JSON file
// loads without a mapping layer.
type Employee struct {
	ID          int    `json:"PERNR"`
	Name        string `json:"ENAME"`
	Title       string `json:"STELL"`
	Level       int    `json:"PERSK"`
	OrgID       int    `json:"ORGEHID"`
	OrgName     string `json:"ORGEH"`
	ParentOrgID int    `json:"PARENTORGID"`
	ParentOrg   string `json:"PARENTORG"`
	ManagerID   int    `json:"MGRPERNR"`
}

// HasParentOrg reports whether the employee belongs to a parent
// organization. Employees without one bypass the org-scoped committee.
func (e Employee) HasParentOrg() bool {
	return e.ParentOrg != ""
}

// HasManager reports whether the employee has a manager reference.
func (e Employee) HasManager() bool {
	return e.ManagerID != 0
}

// WorkItem is the mutable lifecycle state of a submitted work result.
type WorkItem struct {
	ID              string     `json:"id"`
	EmployeeID      int        `json:"employeePernr"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Status          Status     `json:"status"`
	Stage           Stage      `json:"committeeStage"`
	EvaluatorID     int        `json:"currentEvaluatorPernr"`
	EvaluationCount int        `json:"evaluationCount"`
	Score           *float64   `json:"score"`
	SubmittedAt     time.Time  `json:"submittedAt"`
	CompletedAt     *time.Time `json:"completedAt"`
}

// Terminal reports whether the item reached a terminal status and is
// immutable from here on.
func (w WorkItem) Terminal() bool {
	return w.Status.Terminal()
}

// CommitteeMembership assigns an employee to an escalation committee.
// OrgFilter scopes PRE_FINAL members to one parent organization; it is
// always empty for FINAL members, who see every item in their stage.
type CommitteeMembership struct {
	ID         string `json:"id"`
	EmployeeID int    `json:"employeePernr"`
	Stage      Stage  `json:"committeeStage"`
	OrgFilter  string `json:"parentorgFilter,omitempty"`
}

// EvaluationRecord is one append-only ledger entry. EvaluatorLevel is
// captured at decision time and never re-derived from the directory.
type EvaluationRecord struct {
	ID             string    `json:"id"`
	WorkItemID     string    `json:"workResultId"`
	EvaluatorID    int       `json:"evaluatorPernr"`
	EvaluatorLevel int       `json:"evaluatorLevel"`
	Order          int       `json:"evaluationOrder"`
	Decision       Decision  `json:"status"`
	Comments       string    `json:"comments"`
	Score          *float64  `json:"score"`
	EvaluatedAt    time.Time `json:"evaluatedAt"`
}
