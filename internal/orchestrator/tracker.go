package orchestrator

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// RunStatus is the lifecycle state of a tracked refresh run.
type RunStatus string

const (
	RunPending   RunStatus = "pending"
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// Run is the polling-facing snapshot of one refresh invocation, surfaced by
// GET /api/v1/refresh/status/:run_id.
type Run struct {
	RunID       string
	Status      RunStatus
	StartedAt   time.Time
	CompletedAt time.Time
	SpotOutcomes []SpotOutcome
}

// Tracker is an in-memory, process-lifetime registry of refresh runs. It
// does not persist across restarts; a restart loses in-flight run status,
// which is acceptable since the underlying refresh itself is idempotent.
type Tracker struct {
	mu   sync.Mutex
	runs map[string]*Run
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{runs: make(map[string]*Run)}
}

// Start registers a new run and returns its ID.
func (t *Tracker) Start() string {
	id := uuid.NewString()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.runs[id] = &Run{RunID: id, Status: RunRunning, StartedAt: time.Now().UTC()}
	return id
}

// Complete marks a run finished with the given per-spot outcomes.
func (t *Tracker) Complete(runID string, outcomes []SpotOutcome) {
	t.mu.Lock()
	defer t.mu.Unlock()
	run, ok := t.runs[runID]
	if !ok {
		return
	}
	run.Status = RunCompleted
	run.SpotOutcomes = outcomes
	run.CompletedAt = time.Now().UTC()
}

// Fail marks a run finished with a fatal top-level error, distinct from
// per-spot outcomes (which are partial successes, not run failures).
func (t *Tracker) Fail(runID string, outcomes []SpotOutcome) {
	t.mu.Lock()
	defer t.mu.Unlock()
	run, ok := t.runs[runID]
	if !ok {
		return
	}
	run.Status = RunFailed
	run.SpotOutcomes = outcomes
	run.CompletedAt = time.Now().UTC()
}

// Get returns the run snapshot for runID, or false if unknown.
func (t *Tracker) Get(runID string) (Run, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	run, ok := t.runs[runID]
	if !ok {
		return Run{}, false
	}
	return *run, true
}
