package progress

import (
	"reflect"
	"testing"
	"time"

	"pgregory.net/rapid"
)

func TestStepSetAddIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ids := rapid.SliceOf(rapid.StringMatching(`[a-z][a-z0-9-]{0,15}`)).Draw(t, "ids")

		once := NewStepSet()
		twice := NewStepSet()
		for _, id := range ids {
			once.Add(id)
			twice.Add(id)
			twice.Add(id)
		}
		if !reflect.DeepEqual(once.Sorted(), twice.Sorted()) {
			t.Fatalf("double add diverged: %v vs %v", once.Sorted(), twice.Sorted())
		}
		if once.Len() > len(ids) {
			t.Fatalf("set larger than inputs")
		}
	})
}

func TestAggregateRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		agg := genAggregate(t)

		b, err := EncodeAggregate(agg)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		got, err := DecodeAggregate(b)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !reflect.DeepEqual(agg, got) {
			t.Fatalf("round trip diverged:\nin:  %+v\nout: %+v", agg, got)
		}
	})
}

func TestDecodeAggregateFailsSoftInputs(t *testing.T) {
	for _, payload := range []string{"", "{", "[]", `{"tutorials":{}}`, "not json"} {
		if _, err := DecodeAggregate([]byte(payload)); err == nil {
			t.Fatalf("payload %q should not decode", payload)
		}
	}
}

func TestDecodeAggregateNormalizesPartialRecords(t *testing.T) {
	payload := `{"user_id":"u","created_at":"2026-04-01T08:00:00Z","last_active_at":"2026-04-01T08:00:00Z",` +
		`"tutorials":{"a-tutorial":{"tutorial_id":"a-tutorial","last_accessed_at":"2026-04-01T08:00:00Z"}},` +
		`"stats":{},"preferences":{}}`
	got, err := DecodeAggregate([]byte(payload))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	tp := got.Tutorials["a-tutorial"]
	if tp.CompletedSteps == nil {
		t.Fatalf("missing step set must be normalized to empty")
	}
	if tp.Status != StatusInProgress {
		t.Fatalf("missing status must normalize to in-progress, got %q", tp.Status)
	}
}

// genAggregate draws a structurally valid aggregate. Timestamps are drawn
// at second precision since the codec stores RFC 3339.
func genAggregate(t *rapid.T) *UserProgress {
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	ts := func(label string) time.Time {
		return base.Add(time.Duration(rapid.IntRange(0, 1<<20).Draw(t, label)) * time.Second)
	}

	agg := NewUserProgress(rapid.StringMatching(`[a-z][a-z0-9]{2,8}`).Draw(t, "user"), ts("created"))
	agg.LastActiveAt = ts("active")
	agg.Stats = UserStats{
		TutorialsCompleted: rapid.IntRange(0, 50).Draw(t, "tc"),
		StepsCompleted:     rapid.IntRange(0, 500).Draw(t, "sc"),
		SimulationsRun:     rapid.IntRange(0, 100).Draw(t, "sr"),
		SimulationSeconds:  rapid.IntRange(0, 10000).Draw(t, "ss"),
		HintsUsed:          rapid.IntRange(0, 100).Draw(t, "hu"),
	}
	agg.Preferences = UserPreferences{
		StyleVariant:  rapid.SampledFrom([]string{"", "dojo_dark", "paper_light"}).Draw(t, "style"),
		ReducedMotion: rapid.Bool().Draw(t, "motion"),
	}

	n := rapid.IntRange(0, 4).Draw(t, "tutorials")
	for i := 0; i < n; i++ {
		id := rapid.StringMatching(`[a-z][a-z0-9-]{3,12}`).Draw(t, "tid")
		if _, dup := agg.Tutorials[id]; dup {
			continue
		}
		started := ts("started")
		tp := &TutorialProgress{
			TutorialID:     id,
			Status:         rapid.SampledFrom([]Status{StatusInProgress, StatusCompleted}).Draw(t, "status"),
			CompletedSteps: NewStepSet(rapid.SliceOfDistinct(rapid.StringMatching(`[a-z][a-z0-9-]{2,10}`), rapid.ID).Draw(t, "steps")...),
			StartedAt:      &started,
			LastAccessedAt: ts("accessed"),
		}
		if tp.Status == StatusCompleted {
			done := ts("done")
			tp.CompletedAt = &done
		}
		results := rapid.IntRange(0, 3).Draw(t, "results")
		for j := 0; j < results; j++ {
			tp.Results = append(tp.Results, SimulationResult{
				ScenarioID:     rapid.StringMatching(`[a-z][a-z0-9-]{3,12}`).Draw(t, "sid"),
				Attempts:       rapid.IntRange(1, 30).Draw(t, "attempts"),
				Successful:     rapid.Bool().Draw(t, "ok"),
				CompletedAt:    ts("completed"),
				ElapsedSeconds: rapid.IntRange(0, 3600).Draw(t, "elapsed"),
				HintsUsed:      rapid.IntRange(0, 10).Draw(t, "hints"),
			})
		}
		agg.Tutorials[id] = tp
	}
	return agg
}
