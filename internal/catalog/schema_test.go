package catalog

import (
	"strings"
	"testing"
)

func validScenario() SimulationScenario {
	return SimulationScenario{
		ScenarioID: "demo-scenario",
		Title:      "Demo",
		Steps: []SimulationStep{
			{
				Order:   1,
				Trigger: Trigger{Kind: TriggerKeystroke, Value: "Tab"},
				Response: SimulatedResponse{
					Kind:      ResponseText,
					ContentMD: "ok",
				},
			},
		},
	}
}

func TestScenarioValidateRejectsDuplicateOrders(t *testing.T) {
	s := validScenario()
	s.Steps = append(s.Steps, SimulationStep{
		Order:    1,
		Trigger:  Trigger{Kind: TriggerCommand, Value: "x"},
		Response: SimulatedResponse{Kind: ResponseText, ContentMD: "y"},
	})
	err := s.Validate()
	if err == nil {
		t.Fatalf("expected duplicate-order error")
	}
	if !strings.Contains(err.Error(), "order") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestScenarioValidateRejectsDescendingOrders(t *testing.T) {
	s := validScenario()
	s.Steps[0].Order = 3
	s.Steps = append(s.Steps, SimulationStep{
		Order:    2,
		Trigger:  Trigger{Kind: TriggerClick, Value: "apply"},
		Response: SimulatedResponse{Kind: ResponseText, ContentMD: "y"},
	})
	if s.Validate() == nil {
		t.Fatalf("expected descending-order error")
	}
}

func TestTriggerValidateKinds(t *testing.T) {
	for _, kind := range []TriggerKind{TriggerKeystroke, TriggerCommand, TriggerClick} {
		if err := (Trigger{Kind: kind, Value: "v"}).Validate(); err != nil {
			t.Fatalf("kind %q should be valid: %v", kind, err)
		}
	}
	if err := (Trigger{Kind: "mouse", Value: "v"}).Validate(); err == nil {
		t.Fatalf("expected invalid kind error")
	}
	if err := (Trigger{Kind: TriggerKeystroke}).Validate(); err == nil {
		t.Fatalf("expected missing value error")
	}
}

func TestCriteriaValidateKindParams(t *testing.T) {
	cases := []struct {
		name string
		c    CompletionCriteria
		ok   bool
	}{
		{"view", CompletionCriteria{Kind: CriteriaView}, true},
		{"action with value", CompletionCriteria{Kind: CriteriaAction, Action: "open-panel"}, true},
		{"action missing value", CompletionCriteria{Kind: CriteriaAction}, false},
		{"success with scenario", CompletionCriteria{Kind: CriteriaSuccess, ScenarioID: "s"}, true},
		{"success missing scenario", CompletionCriteria{Kind: CriteriaSuccess}, false},
		{"time positive", CompletionCriteria{Kind: CriteriaTime, Seconds: 30}, true},
		{"time zero", CompletionCriteria{Kind: CriteriaTime}, false},
		{"unknown kind", CompletionCriteria{Kind: "quiz"}, false},
	}
	for _, tc := range cases {
		err := tc.c.Validate()
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestTutorialValidateRejectsDuplicateStepIDs(t *testing.T) {
	tut := Tutorial{
		TutorialID: "demo-tutorial",
		Title:      "Demo",
		Steps: []TutorialStep{
			{StepID: "step-one", Order: 1, Criteria: CompletionCriteria{Kind: CriteriaView}},
			{StepID: "step-one", Order: 2, Criteria: CompletionCriteria{Kind: CriteriaView}},
		},
	}
	if tut.Validate() == nil {
		t.Fatalf("expected duplicate step_id error")
	}
}

func TestBuiltinPackValidates(t *testing.T) {
	if err := builtinPack().Validate(); err != nil {
		t.Fatalf("builtin pack must validate: %v", err)
	}
}
