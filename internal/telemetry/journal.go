package telemetry

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// Journal appends one JSON line per session event. With an empty path it
// discards everything, so call sites never need a nil check.
type Journal struct {
	mu sync.Mutex
	w  io.WriteCloser
}

func NewJournal(path string) (*Journal, error) {
	if path == "" {
		return &Journal{w: nopCloser{Writer: io.Discard}}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &Journal{w: f}, nil
}

func (j *Journal) SessionStart(sessionID, userID string) {
	j.write("session.start", map[string]any{"session": sessionID, "user": userID})
}

// Attempt records one submitted action against a scenario step.
func (j *Journal) Attempt(scenarioID string, order int, kind, value string, matched bool) {
	j.write("simulation.attempt", map[string]any{
		"scenario": scenarioID,
		"step":     order,
		"kind":     kind,
		"value":    value,
		"matched":  matched,
	})
}

func (j *Journal) HintRevealed(scenarioID string, order int) {
	j.write("simulation.hint", map[string]any{"scenario": scenarioID, "step": order})
}

func (j *Journal) SimulationFinished(scenarioID string, successful bool, attempts, elapsedSeconds, hintsUsed int) {
	j.write("simulation.finished", map[string]any{
		"scenario":   scenarioID,
		"successful": successful,
		"attempts":   attempts,
		"elapsed_s":  elapsedSeconds,
		"hints":      hintsUsed,
	})
}

func (j *Journal) TutorialCompleted(tutorialID string) {
	j.write("tutorial.completed", map[string]any{"tutorial": tutorialID})
}

func (j *Journal) Error(msg string, fields map[string]any) {
	entry := map[string]any{}
	for k, v := range fields {
		entry[k] = v
	}
	entry["error"] = msg
	j.write("error", entry)
}

func (j *Journal) write(event string, fields map[string]any) {
	if j == nil || j.w == nil {
		return
	}
	entry := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"event": event,
	}
	for k, v := range fields {
		entry[k] = v
	}
	b, _ := json.Marshal(entry)
	j.mu.Lock()
	defer j.mu.Unlock()
	_, _ = j.w.Write(append(b, '\n'))
}

func (j *Journal) Close() error {
	if j == nil || j.w == nil {
		return nil
	}
	return j.w.Close()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
