package progress

import (
	"fmt"
	"sort"
	"time"

	json "github.com/goccy/go-json"
)

// Status of a tutorial for one user. NotStarted is never stored: it is the
// implied status of any tutorial with no TutorialProgress record.
type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// UserProgress is the single aggregate the store owns for a user. It is
// persisted whole after every mutation.
type UserProgress struct {
	UserID       string                       `json:"user_id"`
	CreatedAt    time.Time                    `json:"created_at"`
	LastActiveAt time.Time                    `json:"last_active_at"`
	Tutorials    map[string]*TutorialProgress `json:"tutorials"`
	Stats        UserStats                    `json:"stats"`
	Preferences  UserPreferences              `json:"preferences"`
}

// TutorialProgress records one user's state for one tutorial. Completed is
// an explicit event: it is never inferred from the step set covering every
// step, and the step set is never required to be full for completion.
type TutorialProgress struct {
	TutorialID     string             `json:"tutorial_id"`
	Status         Status             `json:"status"`
	CurrentStepID  string             `json:"current_step_id,omitempty"`
	CompletedSteps StepSet            `json:"completed_steps"`
	StartedAt      *time.Time         `json:"started_at,omitempty"`
	CompletedAt    *time.Time         `json:"completed_at,omitempty"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	Results        []SimulationResult `json:"results,omitempty"`
}

// SimulationResult is appended once per finished or abandoned run and is
// immutable afterwards.
type SimulationResult struct {
	ScenarioID     string    `json:"scenario_id"`
	Attempts       int       `json:"attempts"`
	Successful     bool      `json:"successful"`
	CompletedAt    time.Time `json:"completed_at"`
	ElapsedSeconds int       `json:"elapsed_seconds"`
	HintsUsed      int       `json:"hints_used"`
}

type UserStats struct {
	TutorialsCompleted int `json:"tutorials_completed"`
	StepsCompleted     int `json:"steps_completed"`
	SimulationsRun     int `json:"simulations_run"`
	SimulationSeconds  int `json:"simulation_seconds"`
	HintsUsed          int `json:"hints_used"`
}

type UserPreferences struct {
	StyleVariant  string `json:"style_variant,omitempty"`
	ReducedMotion bool   `json:"reduced_motion,omitempty"`
	ASCIIOnly     bool   `json:"ascii_only,omitempty"`
}

// StepSet is a duplicate-free set of step ids. It serializes as a sorted
// array so encoded aggregates are stable byte-for-byte.
type StepSet map[string]struct{}

func NewStepSet(ids ...string) StepSet {
	s := make(StepSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id and reports whether it was newly added.
func (s StepSet) Add(id string) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

func (s StepSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s StepSet) Len() int { return len(s) }

// Sorted returns the members in lexical order.
func (s StepSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s StepSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *StepSet) UnmarshalJSON(b []byte) error {
	var ids []string
	if err := json.Unmarshal(b, &ids); err != nil {
		return err
	}
	*s = NewStepSet(ids...)
	return nil
}

// NewUserProgress creates a fresh aggregate for the user.
func NewUserProgress(userID string, now time.Time) *UserProgress {
	return &UserProgress{
		UserID:       userID,
		CreatedAt:    now,
		LastActiveAt: now,
		Tutorials:    map[string]*TutorialProgress{},
	}
}

// EncodeAggregate serializes the aggregate; timestamps end up RFC 3339.
func EncodeAggregate(p *UserProgress) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("nil aggregate")
	}
	return json.Marshal(p)
}

// DecodeAggregate deserializes a persisted aggregate and normalizes fields
// a hand-edited or truncated payload may have dropped.
func DecodeAggregate(b []byte) (*UserProgress, error) {
	var p UserProgress
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("decode aggregate: %w", err)
	}
	if p.UserID == "" {
		return nil, fmt.Errorf("decode aggregate: missing user_id")
	}
	if p.Tutorials == nil {
		p.Tutorials = map[string]*TutorialProgress{}
	}
	for id, tp := range p.Tutorials {
		if tp == nil {
			delete(p.Tutorials, id)
			continue
		}
		if tp.CompletedSteps == nil {
			tp.CompletedSteps = NewStepSet()
		}
		if tp.Status == "" {
			tp.Status = StatusInProgress
		}
	}
	return &p, nil
}
