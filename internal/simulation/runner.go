package simulation

import (
	"time"

	"promptdojo/internal/catalog"
	"promptdojo/internal/progress"
)

// Runner owns the cursor state for one scenario run. The engine functions
// stay pure; the runner tracks which step is active, which orders have
// completed, and the attempt/hint counters. A run that never reaches the
// final step is simply abandoned: Result then reports Successful=false.
type Runner struct {
	scenario  *catalog.SimulationScenario
	cursor    int
	completed []int
	attempts  int
	hintsUsed int
	startedAt time.Time

	clock func() time.Time
}

// NewRunner starts a run positioned before the first step.
func NewRunner(scenario *catalog.SimulationScenario) *Runner {
	r := &Runner{scenario: scenario, clock: time.Now}
	r.startedAt = r.clock()
	if first := NextStep(scenario, 0); first != nil {
		r.cursor = first.Order
	}
	return r
}

// Step returns the active step, or nil once the run is done.
func (r *Runner) Step() *catalog.SimulationStep {
	if r.Done() {
		return nil
	}
	return CurrentStep(r.scenario, r.cursor)
}

// Submit validates an action against the active step. Every submission
// counts as an attempt; only a match advances the cursor. The matched
// step's scripted response is returned so the caller can replay it.
func (r *Runner) Submit(kind catalog.TriggerKind, value string) (*catalog.SimulatedResponse, bool) {
	if r.Done() {
		return nil, false
	}
	r.attempts++
	step := CurrentStep(r.scenario, r.cursor)
	if !ValidateAction(step, kind, value) {
		return nil, false
	}
	r.completed = append(r.completed, step.Order)
	if next := NextStep(r.scenario, r.cursor); next != nil {
		r.cursor = next.Order
	} else {
		r.cursor = 0
	}
	return &step.Response, true
}

// Hint reveals a hint for the active step and counts the reveal.
func (r *Runner) Hint() string {
	order := r.cursor
	if r.Done() && len(r.completed) > 0 {
		order = r.completed[len(r.completed)-1]
	}
	h := Hint(r.scenario, order, r.hintsUsed)
	if h != "" {
		r.hintsUsed++
	}
	return h
}

// Done reports whether every step has been completed.
func (r *Runner) Done() bool {
	if r.scenario == nil {
		return true
	}
	return len(r.completed) == len(r.scenario.Steps)
}

func (r *Runner) Attempts() int  { return r.attempts }
func (r *Runner) HintsUsed() int { return r.hintsUsed }

// Result scores the run as it stands now.
func (r *Runner) Result() progress.SimulationResult {
	return CalculateResult(r.scenario, r.completed, r.attempts, r.hintsUsed, r.startedAt, r.clock())
}
