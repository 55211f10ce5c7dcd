package simulation

import (
	"testing"
	"time"

	"promptdojo/internal/catalog"
)

func tabScenario() *catalog.SimulationScenario {
	return &catalog.SimulationScenario{
		ScenarioID: "tab-function-completion",
		Title:      "Accept a Function Completion",
		Hints:      []string{"first hint", "second hint"},
		Steps: []catalog.SimulationStep{
			{
				Order:         1,
				InstructionMD: "Press Tab.",
				Trigger:       catalog.Trigger{Kind: catalog.TriggerKeystroke, Value: "Tab"},
				Response:      catalog.SimulatedResponse{Kind: catalog.ResponseCompletion, ContentMD: "done"},
			},
		},
	}
}

func twoStepScenario() *catalog.SimulationScenario {
	return &catalog.SimulationScenario{
		ScenarioID: "agent-demo",
		Title:      "Agent Demo",
		Hints:      []string{"scenario hint"},
		Steps: []catalog.SimulationStep{
			{
				Order:    1,
				Trigger:  catalog.Trigger{Kind: catalog.TriggerCommand, Value: "run the plan"},
				Response: catalog.SimulatedResponse{Kind: catalog.ResponseText, ContentMD: "planning"},
			},
			{
				Order:         3,
				InstructionMD: "Click apply.",
				Trigger:       catalog.Trigger{Kind: catalog.TriggerClick, Value: "apply"},
				Response:      catalog.SimulatedResponse{Kind: catalog.ResponseDiff, ContentMD: "diff"},
			},
		},
	}
}

func TestValidateActionExactMatchOnly(t *testing.T) {
	step := CurrentStep(tabScenario(), 1)
	if step == nil {
		t.Fatalf("step 1 missing")
	}

	if !ValidateAction(step, catalog.TriggerKeystroke, "Tab") {
		t.Fatalf("exact match must validate")
	}
	for _, bad := range []struct {
		kind  catalog.TriggerKind
		value string
	}{
		{catalog.TriggerKeystroke, "tab"},
		{catalog.TriggerKeystroke, "Tab "},
		{catalog.TriggerKeystroke, " Tab"},
		{catalog.TriggerCommand, "Tab"},
		{catalog.TriggerClick, "Tab"},
		{catalog.TriggerKeystroke, ""},
	} {
		if ValidateAction(step, bad.kind, bad.value) {
			t.Fatalf("(%s, %q) must not validate", bad.kind, bad.value)
		}
	}
	if ValidateAction(nil, catalog.TriggerKeystroke, "Tab") {
		t.Fatalf("nil step must not validate")
	}
}

func TestTraversalByAscendingOrder(t *testing.T) {
	s := twoStepScenario()

	if got := CurrentStep(s, 2); got != nil {
		t.Fatalf("no step has order 2, got %+v", got)
	}
	if !HasNext(s, 1) {
		t.Fatalf("step after order 1 expected")
	}
	next := NextStep(s, 1)
	if next == nil || next.Order != 3 {
		t.Fatalf("expected next order 3, got %+v", next)
	}
	if HasNext(s, 3) {
		t.Fatalf("no step after order 3")
	}
	if NextStep(nil, 0) != nil {
		t.Fatalf("nil scenario has no steps")
	}
}

func TestHintFallbackChain(t *testing.T) {
	s := twoStepScenario()

	// Step 3 carries its own instruction: it wins regardless of index.
	if got := Hint(s, 3, 0); got != "Click apply." {
		t.Fatalf("expected step instruction, got %q", got)
	}
	// Step 1 has none: indexable scenario hint.
	if got := Hint(s, 1, 0); got != "scenario hint" {
		t.Fatalf("expected scenario hint, got %q", got)
	}
	// Out-of-range index falls back to the first hint.
	if got := Hint(s, 1, 7); got != "scenario hint" {
		t.Fatalf("expected first-hint fallback, got %q", got)
	}
	if got := Hint(&catalog.SimulationScenario{}, 1, 0); got != "" {
		t.Fatalf("scenario without hints yields empty, got %q", got)
	}
}

func TestCalculateResultSuccessByCount(t *testing.T) {
	s := tabScenario()
	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	now := start.Add(92*time.Second + 600*time.Millisecond)

	res := CalculateResult(s, []int{1}, 4, 1, start, now)
	if !res.Successful {
		t.Fatalf("all steps completed: expected success")
	}
	if res.Attempts != 4 {
		t.Fatalf("attempts must count mismatches too, got %d", res.Attempts)
	}
	if res.ElapsedSeconds != 93 {
		t.Fatalf("expected rounded 93s, got %d", res.ElapsedSeconds)
	}
	if res.ScenarioID != "tab-function-completion" {
		t.Fatalf("unexpected scenario id %q", res.ScenarioID)
	}

	abandoned := CalculateResult(s, nil, 2, 0, start, now)
	if abandoned.Successful {
		t.Fatalf("incomplete run must not be successful")
	}
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	scenarios := []*catalog.SimulationScenario{tabScenario(), twoStepScenario()}

	if got := Search(scenarios, "FUNCTION"); len(got) != 1 || got[0].ScenarioID != "tab-function-completion" {
		t.Fatalf("title match failed: %+v", got)
	}
	if got := Search(scenarios, "agent"); len(got) != 1 {
		t.Fatalf("expected 1 agent match, got %d", len(got))
	}
	if got := Search(scenarios, ""); len(got) != 2 {
		t.Fatalf("empty query matches all, got %d", len(got))
	}
	if got := Search(scenarios, "zzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestSuggestValueNearMiss(t *testing.T) {
	step := CurrentStep(tabScenario(), 1)

	if expected, ok := SuggestValue(step, "tab"); !ok || expected != "Tab" {
		t.Fatalf("case slip should suggest, got %q %v", expected, ok)
	}
	if _, ok := SuggestValue(step, "open the door"); ok {
		t.Fatalf("distant value must not suggest")
	}
	if _, ok := SuggestValue(step, "Tab"); ok {
		t.Fatalf("exact value needs no suggestion")
	}
}
