package run

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"flowci/internal/event"
)

// Outcome is the terminal (or pending) state of a job within a run.
type Outcome string

const (
	OutcomeNotRun    Outcome = "not_run"
	OutcomeSuccess   Outcome = "success"
	OutcomeFailure   Outcome = "failure"
	OutcomeCancelled Outcome = "cancelled"
)

// Terminal reports whether no further state change is possible.
func (o Outcome) Terminal() bool {
	switch o {
	case OutcomeSuccess, OutcomeFailure, OutcomeCancelled:
		return true
	}
	return false
}

// StepResult records one executed (or skipped) step.
type StepResult struct {
	Name    string `json:"name,omitempty"`
	Command string `json:"command"`
	Output  string `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`
	Skipped bool   `json:"skipped,omitempty"`
}

// JobResult is the recorded outcome of one job instance. A JobResult
// installed into a Run is never mutated afterwards.
type JobResult struct {
	Name    string       `json:"name"`
	Outcome Outcome      `json:"outcome"`
	Steps   []StepResult `json:"steps,omitempty"`
}

// Run is one execution instance: the triggering event plus a fully
// populated mapping from job instance name to outcome. Runs live in
// memory only and are discarded once the aggregator has evaluated.
type Run struct {
	ID      string
	Event   *event.Event
	Created time.Time

	mu        sync.RWMutex
	cancelled bool
	jobs      map[string]*JobResult
}

// New creates an empty run for the given event.
func New(ev *event.Event) *Run {
	return &Run{
		ID:      uuid.NewString(),
		Event:   ev,
		Created: time.Now().UTC(),
		jobs:    make(map[string]*JobResult),
	}
}

// SetJob installs (or replaces) a job result.
func (r *Run) SetJob(res *JobResult) {
	r.mu.Lock()
	r.jobs[res.Name] = res
	r.mu.Unlock()
}

// Job returns the result recorded under name, or nil.
func (r *Run) Job(name string) *JobResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.jobs[name]
}

// Jobs returns a copy of the outcome mapping.
func (r *Run) Jobs() map[string]*JobResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]*JobResult, len(r.jobs))
	for name, res := range r.jobs {
		out[name] = res
	}
	return out
}

// MarkCancelled flags the run itself as cancelled.
func (r *Run) MarkCancelled() {
	r.mu.Lock()
	r.cancelled = true
	r.mu.Unlock()
}

// Cancelled reports whether the run itself was cancelled.
func (r *Run) Cancelled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cancelled
}

// AnyFailure reports whether at least one job outcome is failure.
func (r *Run) AnyFailure() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, res := range r.jobs {
		if res.Outcome == OutcomeFailure {
			return true
		}
	}
	return false
}

// Settled reports whether every job outcome is terminal.
func (r *Run) Settled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, res := range r.jobs {
		if !res.Outcome.Terminal() {
			return false
		}
	}
	return true
}

// Outcome is the aggregate outcome of the whole run.
func (r *Run) Outcome() Outcome {
	if r.Cancelled() {
		return OutcomeCancelled
	}
	if r.AnyFailure() {
		return OutcomeFailure
	}
	if !r.Settled() {
		return OutcomeNotRun
	}
	return OutcomeSuccess
}

// URL is the link back to this run in the hosting forge's UI.
func (r *Run) URL(repository string) string {
	return fmt.Sprintf("https://github.com/%s/actions/runs/%s", repository, r.ID)
}
