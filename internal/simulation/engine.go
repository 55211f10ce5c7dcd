package simulation

import (
	"math"
	"strings"
	"time"

	"promptdojo/internal/catalog"
	"promptdojo/internal/progress"

	"github.com/agnivade/levenshtein"
)

// CurrentStep returns the step with exactly the given order, or nil.
func CurrentStep(scenario *catalog.SimulationScenario, order int) *catalog.SimulationStep {
	if scenario == nil {
		return nil
	}
	for i := range scenario.Steps {
		if scenario.Steps[i].Order == order {
			return &scenario.Steps[i]
		}
	}
	return nil
}

// ValidateAction reports whether the submitted action matches the step's
// trigger. Matching is exact and case-sensitive on both kind and value:
// the simulation is a scripted demo, not an interpreter.
func ValidateAction(step *catalog.SimulationStep, kind catalog.TriggerKind, value string) bool {
	if step == nil {
		return false
	}
	return step.Trigger.Kind == kind && step.Trigger.Value == value
}

// HasNext reports whether any step follows the given order.
func HasNext(scenario *catalog.SimulationScenario, order int) bool {
	return NextStep(scenario, order) != nil
}

// NextStep returns the lowest-order step strictly after the given order,
// or nil when the scenario is finished.
func NextStep(scenario *catalog.SimulationScenario, order int) *catalog.SimulationStep {
	if scenario == nil {
		return nil
	}
	var next *catalog.SimulationStep
	for i := range scenario.Steps {
		s := &scenario.Steps[i]
		if s.Order <= order {
			continue
		}
		if next == nil || s.Order < next.Order {
			next = s
		}
	}
	return next
}

// Hint resolves a hint for the step at the given order. The step's own
// instruction wins; otherwise the scenario hint at hintIndex; otherwise the
// first scenario hint. The fallback chain guarantees the UI never shows an
// empty hint for a scenario that has any.
func Hint(scenario *catalog.SimulationScenario, order, hintIndex int) string {
	if scenario == nil {
		return ""
	}
	if step := CurrentStep(scenario, order); step != nil && step.InstructionMD != "" {
		return step.InstructionMD
	}
	if hintIndex >= 0 && hintIndex < len(scenario.Hints) {
		return scenario.Hints[hintIndex]
	}
	if len(scenario.Hints) > 0 {
		return scenario.Hints[0]
	}
	return ""
}

// CalculateResult scores a finished or abandoned run. Success means the
// number of completed step orders equals the scenario's step count,
// regardless of how many mismatched attempts it took.
func CalculateResult(scenario *catalog.SimulationScenario, completedOrders []int, attempts, hintsUsed int, startTime, now time.Time) progress.SimulationResult {
	res := progress.SimulationResult{
		Attempts:    attempts,
		HintsUsed:   hintsUsed,
		CompletedAt: now,
	}
	if scenario != nil {
		res.ScenarioID = scenario.ScenarioID
		res.Successful = len(completedOrders) == len(scenario.Steps)
	}
	if !startTime.IsZero() && now.After(startTime) {
		res.ElapsedSeconds = int(math.Round(now.Sub(startTime).Seconds()))
	}
	return res
}

// Search returns scenarios whose title or description contains the query,
// case-insensitively. An empty query matches everything.
func Search(scenarios []*catalog.SimulationScenario, query string) []*catalog.SimulationScenario {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]*catalog.SimulationScenario, 0, len(scenarios))
	for _, s := range scenarios {
		if q == "" ||
			strings.Contains(strings.ToLower(s.Title), q) ||
			strings.Contains(strings.ToLower(s.DescriptionMD), q) {
			out = append(out, s)
		}
	}
	return out
}

// suggestMaxDistance bounds how far a submission may be from the expected
// value before a near-miss suggestion stops being useful.
const suggestMaxDistance = 3

// SuggestValue reports whether the submitted value is a near miss for the
// step's trigger and, if so, returns the expected value. Purely advisory:
// it feeds the "almost — check capitalization" banner and never affects
// validation.
func SuggestValue(step *catalog.SimulationStep, value string) (string, bool) {
	if step == nil || value == "" || step.Trigger.Value == value {
		return "", false
	}
	dist := levenshtein.ComputeDistance(value, step.Trigger.Value)
	if dist > suggestMaxDistance {
		return "", false
	}
	return step.Trigger.Value, true
}
