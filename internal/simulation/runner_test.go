package simulation

import (
	"testing"
	"time"

	"promptdojo/internal/catalog"
)

func TestRunnerAdvancesOnlyOnMatch(t *testing.T) {
	r := NewRunner(twoStepScenario())

	step := r.Step()
	if step == nil || step.Order != 1 {
		t.Fatalf("expected to start at order 1, got %+v", step)
	}

	if _, matched := r.Submit(catalog.TriggerCommand, "wrong"); matched {
		t.Fatalf("mismatch must not advance")
	}
	if got := r.Step(); got == nil || got.Order != 1 {
		t.Fatalf("cursor moved on mismatch: %+v", got)
	}

	resp, matched := r.Submit(catalog.TriggerCommand, "run the plan")
	if !matched {
		t.Fatalf("exact match must advance")
	}
	if resp == nil || resp.ContentMD != "planning" {
		t.Fatalf("expected scripted response, got %+v", resp)
	}
	if got := r.Step(); got == nil || got.Order != 3 {
		t.Fatalf("expected cursor at order 3, got %+v", got)
	}

	if _, matched := r.Submit(catalog.TriggerClick, "apply"); !matched {
		t.Fatalf("final step should match")
	}
	if !r.Done() {
		t.Fatalf("runner should be done")
	}
	if r.Step() != nil {
		t.Fatalf("no active step after done")
	}
	if r.Attempts() != 3 {
		t.Fatalf("every submission counts: expected 3 attempts, got %d", r.Attempts())
	}
}

func TestRunnerSubmitAfterDoneIsNoop(t *testing.T) {
	r := NewRunner(tabScenario())
	if _, matched := r.Submit(catalog.TriggerKeystroke, "Tab"); !matched {
		t.Fatalf("expected match")
	}
	if _, matched := r.Submit(catalog.TriggerKeystroke, "Tab"); matched {
		t.Fatalf("submissions after done must not match")
	}
	if r.Attempts() != 1 {
		t.Fatalf("done runner must stop counting, got %d", r.Attempts())
	}
}

func TestRunnerResult(t *testing.T) {
	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	now := start

	r := NewRunner(tabScenario())
	r.clock = func() time.Time { return now }
	r.startedAt = start

	r.Submit(catalog.TriggerKeystroke, "tab")
	r.Hint()
	r.Submit(catalog.TriggerKeystroke, "Tab")
	now = start.Add(45 * time.Second)

	res := r.Result()
	if !res.Successful {
		t.Fatalf("expected success")
	}
	if res.Attempts != 2 || res.HintsUsed != 1 {
		t.Fatalf("unexpected counters: %+v", res)
	}
	if res.ElapsedSeconds != 45 {
		t.Fatalf("expected 45s elapsed, got %d", res.ElapsedSeconds)
	}

	abandoned := NewRunner(twoStepScenario())
	if got := abandoned.Result(); got.Successful {
		t.Fatalf("abandoned run must not be successful")
	}
}

func TestRunnerHintCountsReveals(t *testing.T) {
	r := NewRunner(twoStepScenario())
	if h := r.Hint(); h != "scenario hint" {
		t.Fatalf("unexpected hint %q", h)
	}
	if r.HintsUsed() != 1 {
		t.Fatalf("expected 1 reveal, got %d", r.HintsUsed())
	}
}
