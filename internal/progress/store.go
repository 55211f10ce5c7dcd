package progress

import (
	"context"
	"math"
	"sync"
	"time"

	"promptdojo/internal/catalog"

	clog "github.com/charmbracelet/log"
)

// Persister is the durable-storage collaborator. Save must round-trip the
// aggregate losslessly.
type Persister interface {
	Save(ctx context.Context, userID string, p *UserProgress) error
}

// Reference is the slice of the catalog the store needs: id validation and
// step counts. Prerequisites stay advisory; the store never reads them.
type Reference interface {
	TutorialByID(id string) *catalog.Tutorial
}

// Store owns the UserProgress aggregate for one user. Mutations update the
// in-memory aggregate first, notify subscribers, then write through to the
// persister. Reads never wait on persistence.
//
// Lookup misses are soft: operations on unknown tutorial ids no-op and
// reads return nil. Nothing here panics across the presentation boundary.
type Store struct {
	mu        sync.Mutex
	agg       *UserProgress
	ref       Reference
	persister Persister
	logger    *clog.Logger
	clock     func() time.Time

	subs        []func()
	lastSaveErr error
}

type Options struct {
	UserID    string
	Loaded    *UserProgress // rehydrated aggregate, nil for a fresh user
	Reference Reference
	Persister Persister
	Logger    *clog.Logger
	Clock     func() time.Time
}

func NewStore(opts Options) *Store {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = clog.New(nil)
	}
	agg := opts.Loaded
	if agg == nil {
		agg = NewUserProgress(opts.UserID, clock())
	}
	return &Store{
		agg:       agg,
		ref:       opts.Reference,
		persister: opts.Persister,
		logger:    logger,
		clock:     clock,
	}
}

// Subscribe registers a callback invoked after every mutation.
func (s *Store) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// StartTutorial creates an in-progress record if none exists. Re-starting
// is a no-op and never resets progress; unknown ids are ignored.
func (s *Store) StartTutorial(ctx context.Context, tutorialID string) {
	if s.ref != nil && s.ref.TutorialByID(tutorialID) == nil {
		s.logger.Debug("start ignored: unknown tutorial", "tutorial", tutorialID)
		return
	}
	s.mu.Lock()
	s.ensureRecord(tutorialID)
	s.touch()
	s.mu.Unlock()
	s.commit(ctx)
}

// CompleteStep marks a step complete, implicitly starting the tutorial.
// Set semantics: repeating the call changes nothing. Status is never
// flipped to completed here, even when this was the last step. The step
// must belong to the tutorial; the completed set only ever holds real
// step ids.
func (s *Store) CompleteStep(ctx context.Context, tutorialID, stepID string) {
	if s.ref != nil {
		t := s.ref.TutorialByID(tutorialID)
		if t == nil {
			s.logger.Debug("complete step ignored: unknown tutorial", "tutorial", tutorialID, "step", stepID)
			return
		}
		if !tutorialHasStep(t, stepID) {
			s.logger.Debug("complete step ignored: unknown step", "tutorial", tutorialID, "step", stepID)
			return
		}
	}
	s.mu.Lock()
	tp := s.ensureRecord(tutorialID)
	if tp.CompletedSteps.Add(stepID) {
		s.agg.Stats.StepsCompleted++
	}
	tp.CurrentStepID = stepID
	tp.LastAccessedAt = s.clock()
	s.touch()
	s.mu.Unlock()
	s.commit(ctx)
}

// CompleteTutorial records the explicit completion event. It works even if
// no step was ever individually marked: skipping ahead is allowed.
func (s *Store) CompleteTutorial(ctx context.Context, tutorialID string) {
	if s.ref != nil && s.ref.TutorialByID(tutorialID) == nil {
		s.logger.Debug("complete ignored: unknown tutorial", "tutorial", tutorialID)
		return
	}
	s.mu.Lock()
	tp := s.ensureRecord(tutorialID)
	if tp.Status != StatusCompleted {
		tp.Status = StatusCompleted
		now := s.clock()
		tp.CompletedAt = &now
		tp.LastAccessedAt = now
		s.agg.Stats.TutorialsCompleted++
	}
	s.touch()
	s.mu.Unlock()
	s.commit(ctx)
}

// RecordSimulationResult appends a result to the tutorial's record,
// implicitly starting the tutorial if needed.
func (s *Store) RecordSimulationResult(ctx context.Context, tutorialID string, result SimulationResult) {
	if s.ref != nil && s.ref.TutorialByID(tutorialID) == nil {
		s.logger.Debug("result ignored: unknown tutorial", "tutorial", tutorialID, "scenario", result.ScenarioID)
		return
	}
	s.mu.Lock()
	tp := s.ensureRecord(tutorialID)
	tp.Results = append(tp.Results, result)
	tp.LastAccessedAt = s.clock()
	s.agg.Stats.SimulationsRun++
	s.agg.Stats.SimulationSeconds += result.ElapsedSeconds
	s.agg.Stats.HintsUsed += result.HintsUsed
	s.touch()
	s.mu.Unlock()
	s.commit(ctx)
}

// TutorialProgress returns a copy of the record for the tutorial, or nil
// for tutorials never started. Callers treat nil as not-started.
func (s *Store) TutorialProgress(tutorialID string) *TutorialProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	tp := s.agg.Tutorials[tutorialID]
	if tp == nil {
		return nil
	}
	cp := *tp
	cp.CompletedSteps = NewStepSet(tp.CompletedSteps.Sorted()...)
	cp.Results = append([]SimulationResult(nil), tp.Results...)
	return &cp
}

// Status resolves the tutorial's status, mapping a missing record to
// not-started.
func (s *Store) Status(tutorialID string) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tp := s.agg.Tutorials[tutorialID]; tp != nil {
		return tp.Status
	}
	return StatusNotStarted
}

// CompletionPercent is |completed steps| / |tutorial steps| rounded to the
// nearest integer percent; 0 when there is no record or no such tutorial.
func (s *Store) CompletionPercent(tutorialID string) int {
	var total int
	if s.ref != nil {
		if t := s.ref.TutorialByID(tutorialID); t != nil {
			total = len(t.Steps)
		}
	}
	if total == 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tp := s.agg.Tutorials[tutorialID]
	if tp == nil {
		return 0
	}
	return int(math.Round(float64(tp.CompletedSteps.Len()) / float64(total) * 100))
}

// Stats returns the aggregate roll-up counters.
func (s *Store) Stats() UserStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agg.Stats
}

// Preferences returns the persisted user preferences.
func (s *Store) Preferences() UserPreferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agg.Preferences
}

// SetPreferences replaces the user preferences and persists.
func (s *Store) SetPreferences(ctx context.Context, prefs UserPreferences) {
	s.mu.Lock()
	s.agg.Preferences = prefs
	s.touch()
	s.mu.Unlock()
	s.commit(ctx)
}

// Reset discards the whole aggregate and starts fresh. The only way user
// progress is ever deleted.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	s.agg = NewUserProgress(s.agg.UserID, s.clock())
	s.mu.Unlock()
	s.commit(ctx)
}

// LastSaveErr reports the outcome of the most recent persistence write.
// The UI may surface it as "progress not saved this session".
func (s *Store) LastSaveErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaveErr
}

// Snapshot returns the live aggregate for encoding. Callers must not
// mutate it.
func (s *Store) Snapshot() *UserProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agg
}

func (s *Store) ensureRecord(tutorialID string) *TutorialProgress {
	if tp, ok := s.agg.Tutorials[tutorialID]; ok {
		return tp
	}
	now := s.clock()
	tp := &TutorialProgress{
		TutorialID:     tutorialID,
		Status:         StatusInProgress,
		CompletedSteps: NewStepSet(),
		StartedAt:      &now,
		LastAccessedAt: now,
	}
	s.agg.Tutorials[tutorialID] = tp
	return tp
}

func tutorialHasStep(t *catalog.Tutorial, stepID string) bool {
	for i := range t.Steps {
		if t.Steps[i].StepID == stepID {
			return true
		}
	}
	return false
}

func (s *Store) touch() {
	s.agg.LastActiveAt = s.clock()
}

// commit notifies subscribers and writes through. The in-memory aggregate
// is already updated; a failed save leaves it authoritative and only
// records the error.
func (s *Store) commit(ctx context.Context) {
	s.mu.Lock()
	subs := append([]func(){}, s.subs...)
	agg := s.agg
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}

	if s.persister == nil {
		return
	}
	err := s.persister.Save(ctx, agg.UserID, agg)
	s.mu.Lock()
	s.lastSaveErr = err
	s.mu.Unlock()
	if err != nil {
		s.logger.Warn("progress not saved", "user", agg.UserID, "err", err)
	}
}
