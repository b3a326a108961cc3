// Package app provides the core business service that implements the
// work-result evaluation workflow: submission, evaluation routing,
// committee management and dashboards.
package app

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gun110939/demo-flow-send-pwa/internal/adapters/directory"
	"github.com/gun110939/demo-flow-send-pwa/internal/adapters/mq/queue"
	"github.com/gun110939/demo-flow-send-pwa/internal/adapters/mq/worker"
	"github.com/gun110939/demo-flow-send-pwa/internal/adapters/repository"
	"github.com/gun110939/demo-flow-send-pwa/internal/domain/errs"
	"github.com/gun110939/demo-flow-send-pwa/internal/domain/model"
	"github.com/gun110939/demo-flow-send-pwa/internal/domain/routing"
	"github.com/gun110939/demo-flow-send-pwa/internal/domain/visibility"
	"github.com/gun110939/demo-flow-send-pwa/pkg/logger"
	"github.com/gun110939/demo-flow-send-pwa/pkg/metrics"
)

// Suggestion band defaults: committee nominees come from this
// hierarchy-level range.
const (
	defaultSuggestionMinLevel = 8
	defaultSuggestionMaxLevel = 11
)

// Audit pipeline defaults.
const (
	defaultAuditWorkers       = 2
	defaultAuditQueueCapacity = 4096
	auditShutdownTimeout      = 5 * time.Second
)

// Service implements the evaluation workflow on top of the employee
// directory, the work-item store, the evaluation ledger and the
// committee registry.
type Service struct {
	mu sync.RWMutex

	dir      *directory.Directory
	items    *repository.WorkItemStore
	ledger   *repository.EvaluationLedger
	registry *repository.CommitteeRegistry
	engine   *routing.Engine

	// Audit pipeline: lifecycle events flow through the queue into the
	// bounded activity feed off the request path.
	auditQueue   *queue.InMemoryQueue
	auditLog     *repository.AuditLog
	auditWorkers []*worker.InMemoryWorker
	auditCancel  context.CancelFunc

	// Configuration
	suggestionMinLevel int
	suggestionMaxLevel int
	auditWorkerCount   int
	auditQueueCapacity int
	seedDemo           bool
	rng                *rand.Rand

	// State
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRoutingEngine replaces the default routing engine, e.g. to tune
// the senior level threshold.
func WithRoutingEngine(engine *routing.Engine) Option {
	return func(s *Service) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithSuggestionBand sets the hierarchy-level range for committee
// nominee suggestions.
func WithSuggestionBand(min, max int) Option {
	return func(s *Service) {
		if min > 0 && max >= min {
			s.suggestionMinLevel = min
			s.suggestionMaxLevel = max
		}
	}
}

// WithDemoSeed enables demo seeding on Start and Reset.
func WithDemoSeed(enabled bool) Option {
	return func(s *Service) {
		s.seedDemo = enabled
	}
}

// WithAuditWorkers sets the number of audit workers draining the
// activity feed queue.
func WithAuditWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.auditWorkerCount = n
		}
	}
}

// WithAuditQueueCapacity bounds the audit queue.
func WithAuditQueueCapacity(capacity int) Option {
	return func(s *Service) {
		if capacity > 0 {
			s.auditQueueCapacity = capacity
		}
	}
}

// WithRandom injects the random source used for demo seeding and the
// identity-picker samples. Tests pass a fixed seed for determinism.
func WithRandom(rng *rand.Rand) Option {
	return func(s *Service) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// New constructs a Service over the given directory.
func New(dir *directory.Directory, opts ...Option) *Service {
	s := &Service{
		dir:                dir,
		engine:             routing.NewEngine(),
		suggestionMinLevel: defaultSuggestionMinLevel,
		suggestionMaxLevel: defaultSuggestionMaxLevel,
		auditWorkerCount:   defaultAuditWorkers,
		auditQueueCapacity: defaultAuditQueueCapacity,
		rng:                rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // demo seeding, not security
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the stores and, when enabled, seeds demo data.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.items = repository.NewWorkItemStore()
	s.ledger = repository.NewEvaluationLedger()
	s.registry = repository.NewCommitteeRegistry()

	// Audit pipeline: workers outlive the Start call, so they run on
	// their own cancelable context rather than ctx.
	s.auditLog = repository.NewAuditLog(0)
	s.auditQueue = queue.NewInMemoryQueue(queue.WithCapacity(s.auditQueueCapacity))
	workerCtx, cancel := context.WithCancel(context.Background())
	s.auditCancel = cancel
	for i := 0; i < s.auditWorkerCount; i++ {
		w := worker.NewInMemoryWorker(s.auditQueue, s.auditLog,
			worker.WithName("audit-"+strconv.Itoa(i)),
			worker.WithLogger(s.logger),
		)
		s.auditWorkers = append(s.auditWorkers, w)
		go w.Run(workerCtx)
	}

	if s.seedDemo {
		s.seed(ctx)
	}

	s.started = true
	metrics.UpdateTotalEmployees(s.dir.Count())
	s.logger.Info(ctx, "evaluation service started",
		logger.Int("employees", s.dir.Count()),
		logger.Int("workItems", s.items.Count(ctx)),
		logger.Int("committeeMembers", len(s.registry.ListByStage(ctx, ""))),
	)

	return nil
}

// Stop shuts the service down, closing the audit queue and stopping
// the workers.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false

	_ = s.auditQueue.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), auditShutdownTimeout)
	defer cancel()
	for _, w := range s.auditWorkers {
		if err := w.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn(shutdownCtx, "audit worker shutdown timed out", logger.Error(err))
		}
	}
	s.auditCancel()
	s.auditWorkers = nil

	s.logger.Info(context.Background(), "evaluation service stopped")
}

// Reset clears all mutable state and reseeds the demo data. Directory
// contents are untouched; the directory is read-only.
func (s *Service) Reset(ctx context.Context) {
	s.items.Clear(ctx)
	s.ledger.Clear(ctx)
	s.registry.Clear(ctx)
	s.auditLog.Clear(ctx)
	if s.seedDemo {
		s.seed(ctx)
	}
	s.logger.Info(ctx, "service state reset")
}

// WorkItemDetail is a work item enriched with directory records, the
// shape API consumers receive.
type WorkItemDetail struct {
	model.WorkItem
	Employee         *model.Employee    `json:"employee,omitempty"`
	CurrentEvaluator *model.Employee    `json:"currentEvaluator,omitempty"`
	Evaluations      []EvaluationDetail `json:"evaluations,omitempty"`
}

// EvaluationDetail is a ledger record enriched with the evaluator's
// directory record.
type EvaluationDetail struct {
	model.EvaluationRecord
	Evaluator *model.Employee `json:"evaluator,omitempty"`
}

// EvaluateResult reports the outcome of one evaluate call.
type EvaluateResult struct {
	Item          WorkItemDetail         `json:"workResult"`
	Record        model.EvaluationRecord `json:"evaluation"`
	NextAction    model.NextAction       `json:"nextAction"`
	NextEvaluator *model.Employee        `json:"nextEvaluator,omitempty"`
}

// SubmitWork creates a work item for the given employee, assigned to
// their direct manager. Submitters with no parent organization or no
// manager escalate straight to the PRE_FINAL committee.
func (s *Service) SubmitWork(ctx context.Context, employeeID int, title, description string) (WorkItemDetail, error) {
	emp, err := s.dir.Get(ctx, employeeID)
	if err != nil {
		return WorkItemDetail{}, err
	}

	item := model.WorkItem{
		ID:          uuid.New().String(),
		EmployeeID:  emp.ID,
		Title:       title,
		Description: description,
		Status:      model.StatusPending,
		Stage:       model.StageNone,
		EvaluatorID: emp.ManagerID,
		SubmittedAt: time.Now(),
	}

	if !emp.HasParentOrg() || !emp.HasManager() {
		item.Stage = model.StagePreFinal
		item.EvaluatorID = 0
	}

	if err := s.items.Create(ctx, item); err != nil {
		return WorkItemDetail{}, err
	}

	metrics.RecordWorkSubmitted()
	metrics.UpdateTotalWorkItems(s.items.Count(ctx))
	s.audit(ctx, model.AuditEvent{
		Kind:       model.AuditSubmitted,
		WorkItemID: item.ID,
		ActorID:    emp.ID,
		Stage:      item.Stage,
		Detail:     title,
	})
	s.logger.Info(ctx, "work result submitted",
		logger.String("workItemId", item.ID),
		logger.Int("employeeId", emp.ID),
		logger.String("stage", string(item.Stage)),
		logger.Int("evaluatorId", item.EvaluatorID),
	)

	return s.enrich(item, false), nil
}

// GetWorkItem returns the work item with its evaluation history.
func (s *Service) GetWorkItem(ctx context.Context, id string) (WorkItemDetail, error) {
	item, err := s.items.Get(ctx, id)
	if err != nil {
		return WorkItemDetail{}, err
	}
	return s.enrich(item, true), nil
}

// ListWorkItems returns the work items matching filter, enriched but
// without their evaluation history.
func (s *Service) ListWorkItems(ctx context.Context, filter repository.WorkItemFilter) []WorkItemDetail {
	items := s.items.List(ctx, filter)
	out := make([]WorkItemDetail, 0, len(items))
	for _, item := range items {
		out = append(out, s.enrich(item, false))
	}
	return out
}

// EvaluationHistory returns the ledger records for a work item,
// enriched with evaluator records.
func (s *Service) EvaluationHistory(ctx context.Context, workItemID string) ([]EvaluationDetail, error) {
	if _, err := s.items.Get(ctx, workItemID); err != nil {
		return nil, err
	}
	return s.evaluations(ctx, workItemID), nil
}

// Evaluate records a decision against a work item and routes it to its
// next stop. The whole read-decide-mutate-append sequence runs under
// the item's lock; evaluations of other items proceed in parallel.
func (s *Service) Evaluate(ctx context.Context, workItemID string, evaluatorID int, decision model.Decision, comments string, score *float64) (EvaluateResult, error) {
	start := time.Now()

	if !decision.Valid() {
		return EvaluateResult{}, ErrInvalidDecision
	}

	evaluator, err := s.dir.Get(ctx, evaluatorID)
	if err != nil {
		return EvaluateResult{}, notFoundEvaluator(evaluatorID)
	}

	var (
		record model.EvaluationRecord
		action model.NextAction
	)

	updated, err := s.items.Update(ctx, workItemID, func(w *model.WorkItem) error {
		now := time.Now()
		record = model.EvaluationRecord{
			ID:             uuid.New().String(),
			WorkItemID:     w.ID,
			EvaluatorID:    evaluator.ID,
			EvaluatorLevel: evaluator.Level,
			Order:          w.EvaluationCount + 1,
			Decision:       decision,
			Comments:       comments,
			Score:          score,
			EvaluatedAt:    now,
		}
		w.EvaluationCount++

		switch {
		case decision == model.DecisionRejected:
			w.Status = model.StatusRejected
			w.CompletedAt = &now
			action = model.ActionRejected

		case w.Stage == model.StageFinal:
			w.Status = model.StatusApproved
			w.CompletedAt = &now
			action = model.ActionCompleted

		case w.Stage == model.StagePreFinal:
			w.Stage = model.StageFinal
			w.Score = score
			w.EvaluatorID = 0
			action = model.ActionSentToFinal

		default:
			// Still inside the management chain: ask the routing
			// engine for the next hop. The decision sees the count
			// including this evaluation.
			d := s.engine.Decide(*w, s.dir)
			if d.Target == routing.TargetPreFinal {
				w.Stage = model.StagePreFinal
				w.EvaluatorID = 0
				action = model.ActionSentToPreFinal
			} else {
				w.EvaluatorID = d.EvaluatorID
				action = model.ActionSentToNext
			}
		}

		// Append while still holding the item lock so the ledger never
		// shows a record for a transition that did not commit.
		s.ledger.Append(ctx, record)
		return nil
	})
	if err != nil {
		return EvaluateResult{}, err
	}

	s.recordEvaluateMetrics(ctx, updated, decision, action, start)
	s.audit(ctx, model.AuditEvent{
		Kind:       auditKindFor(action),
		WorkItemID: updated.ID,
		ActorID:    evaluator.ID,
		Stage:      updated.Stage,
		Decision:   decision,
		Detail:     comments,
	})
	s.logger.Info(ctx, "work result evaluated",
		logger.String("workItemId", updated.ID),
		logger.Int("evaluatorId", evaluator.ID),
		logger.String("decision", string(decision)),
		logger.String("nextAction", string(action)),
		logger.Int("evaluationCount", updated.EvaluationCount),
	)

	result := EvaluateResult{
		Item:       s.enrich(updated, false),
		Record:     record,
		NextAction: action,
	}
	if action == model.ActionSentToNext {
		if next, ok := s.dir.Lookup(updated.EvaluatorID); ok {
			result.NextEvaluator = &next
		}
	}
	return result, nil
}

// PendingFor returns the work items the evaluator should act on,
// enriched with submitter records and evaluation history.
func (s *Service) PendingFor(ctx context.Context, evaluatorID int) ([]WorkItemDetail, error) {
	if _, err := s.dir.Get(ctx, evaluatorID); err != nil {
		return nil, notFoundEvaluator(evaluatorID)
	}

	var membership *model.CommitteeMembership
	if m, ok := s.registry.FindByEmployee(ctx, evaluatorID); ok {
		membership = &m
	}

	visible := visibility.PendingFor(evaluatorID, membership, s.items.Snapshot(ctx), s.dir)
	out := make([]WorkItemDetail, 0, len(visible))
	for _, item := range visible {
		out = append(out, s.enrich(item, true))
	}
	return out, nil
}

// ChainOfCommand returns the management chain starting at the given
// employee. An unknown employee yields an empty chain.
func (s *Service) ChainOfCommand(_ context.Context, employeeID int) []model.Employee {
	return routing.Chain(employeeID, s.dir)
}

// Directory exposes the read-only employee directory to the transport
// layer.
func (s *Service) Directory() *directory.Directory {
	return s.dir
}

// enrich joins a work item with its directory records and, when asked,
// its evaluation history.
func (s *Service) enrich(item model.WorkItem, withHistory bool) WorkItemDetail {
	detail := WorkItemDetail{WorkItem: item}
	if emp, ok := s.dir.Lookup(item.EmployeeID); ok {
		detail.Employee = &emp
	}
	if item.EvaluatorID != 0 {
		if ev, ok := s.dir.Lookup(item.EvaluatorID); ok {
			detail.CurrentEvaluator = &ev
		}
	}
	if withHistory {
		detail.Evaluations = s.evaluations(context.Background(), item.ID)
	}
	return detail
}

func (s *Service) evaluations(ctx context.Context, workItemID string) []EvaluationDetail {
	recs := s.ledger.ByWorkItem(ctx, workItemID)
	out := make([]EvaluationDetail, 0, len(recs))
	for _, rec := range recs {
		d := EvaluationDetail{EvaluationRecord: rec}
		if ev, ok := s.dir.Lookup(rec.EvaluatorID); ok {
			d.Evaluator = &ev
		}
		out = append(out, d)
	}
	return out
}

func (s *Service) recordEvaluateMetrics(ctx context.Context, item model.WorkItem, decision model.Decision, action model.NextAction, start time.Time) {
	metrics.RecordEvaluation(string(decision))
	metrics.RecordEvaluateLatency(float64(time.Since(start).Nanoseconds()) / 1e6)
	metrics.UpdateLedgerSize(s.ledger.Len(ctx))

	switch action {
	case model.ActionSentToPreFinal:
		metrics.RecordEscalation(string(model.StagePreFinal))
	case model.ActionSentToFinal:
		metrics.RecordEscalation(string(model.StageFinal))
	case model.ActionRejected, model.ActionCompleted:
		metrics.RecordItemCompleted(string(item.Status))
	case model.ActionSentToNext:
	}
}

// AuditTrail returns up to n recent activity entries, newest first.
func (s *Service) AuditTrail(ctx context.Context, n int) []model.AuditEvent {
	return s.auditLog.Recent(ctx, n)
}

// audit enqueues one activity entry. A full queue drops the entry;
// the feed is best-effort and never blocks the request path.
func (s *Service) audit(ctx context.Context, e model.AuditEvent) {
	e.ID = uuid.New().String()
	e.At = time.Now()
	if !s.auditQueue.Enqueue(ctx, e) {
		s.logger.Warn(ctx, "audit event dropped",
			logger.String("kind", string(e.Kind)),
			logger.String("workItemId", e.WorkItemID),
		)
	}
}

// auditKindFor maps a routing outcome to its audit entry kind.
func auditKindFor(action model.NextAction) model.AuditKind {
	switch action {
	case model.ActionRejected:
		return model.AuditRejected
	case model.ActionCompleted:
		return model.AuditCompleted
	case model.ActionSentToPreFinal, model.ActionSentToFinal:
		return model.AuditEscalated
	default:
		return model.AuditEvaluated
	}
}

// notFoundEvaluator reports a failed evaluator lookup under the
// entity name the caller acted as, not the directory's.
func notFoundEvaluator(id int) error {
	return errs.NotFound("evaluator", strconv.Itoa(id))
}
