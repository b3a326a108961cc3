// Package routing decides, after each evaluation, who evaluates a work
// item next: the next manager up the chain or the PRE_FINAL committee.
package routing

import "github.com/gun110939/demo-flow-send-pwa/internal/domain/model"

// Default escalation tuning. Level 10 marks senior management; once an
// item has two evaluations a senior chain does not get another pass.
const (
	defaultSeniorLevel       = 10
	defaultSeniorReviewLimit = 2
)

// Directory is the read-only employee lookup the engine consumes.
type Directory interface {
	// Lookup resolves an employee by identifier.
	Lookup(id int) (model.Employee, bool)
}

// Target names where a routing decision sends the work item.
type Target string

// Routing targets.
const (
	// TargetNext keeps the item inside the management chain, assigned
	// to Decision.EvaluatorID.
	TargetNext Target = "NEXT"
	// TargetPreFinal escalates the item to the org-scoped committee
	// with no individual assignment.
	TargetPreFinal Target = "PRE_FINAL"
)

// Decision is the outcome of one routing step. EvaluatorID is set only
// when Target is TargetNext.
type Decision struct {
	Target      Target
	EvaluatorID int
}

// Engine computes routing decisions. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	seniorLevel       int
	seniorReviewLimit int
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithSeniorLevel sets the hierarchy level at which a manager counts
// as senior for escalation purposes.
func WithSeniorLevel(level int) Option {
	return func(e *Engine) {
		if level > 0 {
			e.seniorLevel = level
		}
	}
}

// WithSeniorReviewLimit sets how many evaluations an item must have
// accumulated before a senior manager is skipped in favor of the
// PRE_FINAL committee.
func WithSeniorReviewLimit(limit int) Option {
	return func(e *Engine) {
		if limit > 0 {
			e.seniorReviewLimit = limit
		}
	}
}

// NewEngine constructs an Engine with default thresholds.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		seniorLevel:       defaultSeniorLevel,
		seniorReviewLimit: defaultSeniorReviewLimit,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Decide computes the next hop for item. It is a pure function of the
// item and the directory snapshot and never errors: every branch falls
// back to the PRE_FINAL committee rather than failing.
//
// The walk is lazy, one hop per call, and never revisits a node: each
// call only looks at the current evaluator's direct manager.
func (e *Engine) Decide(item model.WorkItem, dir Directory) Decision {
	submitter, ok := dir.Lookup(item.EmployeeID)

	// No parent organization means no PRE_FINAL org filter could ever
	// match this submitter; escalate directly. Intentional fallback,
	// not an error.
	if !ok || !submitter.HasParentOrg() {
		return Decision{Target: TargetPreFinal}
	}

	// Chain position unknown: the item has no evaluator or the
	// evaluator left the directory.
	current, ok := dir.Lookup(item.EvaluatorID)
	if !ok {
		return Decision{Target: TargetPreFinal}
	}

	// Chain exhausted at the top.
	next, ok := dir.Lookup(current.ManagerID)
	if !ok {
		return Decision{Target: TargetPreFinal}
	}

	if next.Level >= e.seniorLevel {
		// A senior chain that has already had its say does not get
		// walked further up.
		if item.EvaluationCount >= e.seniorReviewLimit {
			return Decision{Target: TargetPreFinal}
		}
		// A senior manager still gets one mandatory look first.
		return Decision{Target: TargetNext, EvaluatorID: next.ID}
	}

	return Decision{Target: TargetNext, EvaluatorID: next.ID}
}

// Chain returns the chain of command starting at id and following
// manager references upward. The walk stops at a missing manager or,
// defensively, when it would revisit an employee, returning the
// partial chain accumulated so far.
func Chain(id int, dir Directory) []model.Employee {
	chain := make([]model.Employee, 0, 8)
	visited := make(map[int]struct{})

	current, ok := dir.Lookup(id)
	for ok {
		if _, seen := visited[current.ID]; seen {
			break
		}
		chain = append(chain, current)
		visited[current.ID] = struct{}{}

		if !current.HasManager() {
			break
		}
		current, ok = dir.Lookup(current.ManagerID)
	}

	return chain
}
