package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"promptdojo/internal/catalog"
	"promptdojo/internal/progress"
	"promptdojo/internal/simulation"
	"promptdojo/internal/state"
	"promptdojo/internal/telemetry"
	"promptdojo/internal/ui"

	clog "github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Service owns the long-lived collaborators: reference catalog, sqlite
// store, progress store, journal, and the view. Everything is constructed
// once in New and passed by reference; there are no package-level
// singletons.
type Service struct {
	cfg     Config
	logger  *clog.Logger
	journal *telemetry.Journal
	catalog *catalog.Provider
	db      *state.SQLiteStore
	store   *progress.Store
	view    ui.View

	sessionID string

	// active simulation run, nil between runs
	runner   *simulation.Runner
	scenario *catalog.SimulationScenario
}

func New(cfg Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}

	level := clog.WarnLevel
	if cfg.Debug {
		level = clog.DebugLevel
	}
	logger := clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "promptdojo", Level: level})

	journal, err := telemetry.NewJournal(cfg.JournalPath)
	if err != nil {
		return nil, err
	}

	db, err := state.NewSQLite(filepath.Join(cfg.DataDir, "progress.db"))
	if err != nil {
		_ = journal.Close()
		return nil, err
	}
	ctx := context.Background()
	if err := db.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		_ = journal.Close()
		return nil, err
	}

	loader := catalog.NewLoader()
	packs, err := loader.LoadPacks(ctx, cfg.PacksDir)
	if err != nil {
		_ = db.Close()
		_ = journal.Close()
		return nil, fmt.Errorf("load content packs: %w", err)
	}
	provider := catalog.NewProvider(packs...)

	loaded, err := db.Load(ctx, cfg.UserID)
	if err != nil {
		// Unreadable progress is discarded, never surfaced to the view.
		logger.Warn("discarding unreadable progress, starting fresh", "user", cfg.UserID, "err", err)
		loaded = nil
	}

	store := progress.NewStore(progress.Options{
		UserID:    cfg.UserID,
		Loaded:    loaded,
		Reference: provider,
		Persister: db,
		Logger:    logger,
	})

	styleVariant := cfg.UI.StyleVariant
	asciiOnly := cfg.ASCIIOnly
	prefs := store.Preferences()
	if prefs.StyleVariant != "" {
		styleVariant = prefs.StyleVariant
	}
	if prefs.ASCIIOnly {
		asciiOnly = true
	}
	motion := effectiveMotion(cfg.UI.MotionLevel, prefs)

	s := &Service{
		cfg:       cfg,
		logger:    logger,
		journal:   journal,
		catalog:   provider,
		db:        db,
		store:     store,
		sessionID: uuid.NewString(),
	}

	view := ui.New(ui.Options{
		Controller:   s,
		StyleVariant: styleVariant,
		MotionLevel:  motion,
		ASCIIOnly:    asciiOnly,
		Debug:        cfg.Debug,
	})
	s.view = view
	store.Subscribe(view.RequestRedraw)

	return s, nil
}

func (s *Service) Run() error {
	s.journal.SessionStart(s.sessionID, s.cfg.UserID)
	s.logger.Debug("session start", "session", s.sessionID, "user", s.cfg.UserID)
	if err := s.db.SaveSettings(context.Background(), map[string]string{
		"last_session": s.sessionID,
		"last_user":    s.cfg.UserID,
	}); err != nil {
		s.logger.Warn("record session settings", "err", err)
	}
	return s.view.Run()
}

func (s *Service) Close() {
	if s.runner != nil && !s.runner.Done() {
		s.abandonRun()
	}
	if err := s.db.Close(); err != nil {
		s.logger.Warn("close store", "err", err)
	}
	_ = s.journal.Close()
}

// --- ui.Controller ---

func (s *Service) TutorialRows() []ui.TutorialRow {
	tutorials := s.catalog.Tutorials()
	rows := make([]ui.TutorialRow, 0, len(tutorials))
	for _, t := range tutorials {
		rows = append(rows, ui.TutorialRow{
			TutorialID: t.TutorialID,
			Title:      t.Title,
			Category:   t.Category,
			Status:     string(s.store.Status(t.TutorialID)),
			Percent:    s.store.CompletionPercent(t.TutorialID),
		})
	}
	return rows
}

func (s *Service) TutorialDetail(tutorialID string) ui.TutorialDetail {
	t := s.catalog.TutorialByID(tutorialID)
	if t == nil {
		return ui.TutorialDetail{TutorialID: tutorialID, Title: tutorialID}
	}
	tp := s.store.TutorialProgress(tutorialID)

	d := ui.TutorialDetail{
		TutorialID: t.TutorialID,
		Title:      t.Title,
		BodyMD:     t.BodyMD,
		Status:     string(s.store.Status(tutorialID)),
		Percent:    s.store.CompletionPercent(tutorialID),
	}
	for _, pre := range t.Prerequisites {
		row := ui.PrereqRow{TutorialID: pre, Title: pre}
		if pt := s.catalog.TutorialByID(pre); pt != nil {
			row.Title = pt.Title
		}
		row.Completed = s.store.Status(pre) == progress.StatusCompleted
		d.Prerequisites = append(d.Prerequisites, row)
	}
	for _, step := range t.Steps {
		row := ui.StepRow{StepID: step.StepID, Title: step.Title, BodyMD: step.BodyMD}
		if tp != nil {
			row.Done = tp.CompletedSteps.Has(step.StepID)
		}
		if step.Criteria.Kind == catalog.CriteriaSuccess {
			row.ScenarioID = step.Criteria.ScenarioID
		}
		d.Steps = append(d.Steps, row)
	}
	for _, scn := range s.catalog.ScenariosByTutorialID(tutorialID) {
		d.Scenarios = append(d.Scenarios, scenarioRow(scn))
	}
	for _, ex := range s.catalog.ExamplesByTutorialID(tutorialID) {
		d.Examples = append(d.Examples, ui.ExampleRow{Title: ex.Title, PromptMD: ex.PromptMD, OutcomeMD: ex.OutcomeMD})
	}
	for _, tip := range s.catalog.TipsByTutorialID(tutorialID) {
		d.Tips = append(d.Tips, tip.TextMD)
	}
	for _, sc := range s.catalog.ShortcutsByCategory(t.Category) {
		d.Shortcuts = append(d.Shortcuts, ui.ShortcutRow{Keys: sc.Keys, Description: sc.Description})
	}
	return d
}

func (s *Service) SearchScenarios(query string) []ui.ScenarioRow {
	matches := simulation.Search(s.catalog.Scenarios(), query)
	rows := make([]ui.ScenarioRow, 0, len(matches))
	for _, scn := range matches {
		rows = append(rows, scenarioRow(scn))
	}
	return rows
}

func (s *Service) OnStartTutorial(tutorialID string) {
	s.store.StartTutorial(context.Background(), tutorialID)
}

func (s *Service) OnCompleteStep(tutorialID, stepID string) {
	s.store.CompleteStep(context.Background(), tutorialID, stepID)
}

func (s *Service) OnCompleteTutorial(tutorialID string) {
	s.store.CompleteTutorial(context.Background(), tutorialID)
	s.journal.TutorialCompleted(tutorialID)
}

func (s *Service) OnStartSimulation(scenarioID string) bool {
	scn := s.catalog.ScenarioByID(scenarioID)
	if scn == nil {
		s.logger.Debug("unknown scenario", "scenario", scenarioID)
		return false
	}
	if s.runner != nil && !s.runner.Done() {
		s.abandonRun()
	}
	s.scenario = scn
	s.runner = simulation.NewRunner(scn)
	if scn.TutorialID != "" {
		s.store.StartTutorial(context.Background(), scn.TutorialID)
	}
	return true
}

func (s *Service) OnSubmitAction(kind, value string) ui.ActionOutcome {
	if s.runner == nil || s.scenario == nil {
		return ui.ActionOutcome{}
	}
	step := s.runner.Step()
	resp, matched := s.runner.Submit(catalog.TriggerKind(kind), value)
	order := 0
	if step != nil {
		order = step.Order
	}
	s.journal.Attempt(s.scenario.ScenarioID, order, kind, value, matched)

	out := ui.ActionOutcome{Matched: matched}
	if !matched {
		if expected, ok := simulation.SuggestValue(step, value); ok {
			out.Suggestion = expected
		}
		return out
	}
	if resp != nil {
		out.ResponseMD = resp.ContentMD
		out.DelayMS = resp.DelayMS
	}
	if s.runner.Done() {
		out.Done = true
		out.Successful = s.finishRun()
	}
	return out
}

func (s *Service) OnRevealHint() string {
	if s.runner == nil || s.scenario == nil {
		return ""
	}
	h := s.runner.Hint()
	order := 0
	if step := s.runner.Step(); step != nil {
		order = step.Order
	}
	s.journal.HintRevealed(s.scenario.ScenarioID, order)
	return h
}

func (s *Service) OnAbandonSimulation() {
	if s.runner == nil || s.runner.Done() {
		s.runner = nil
		s.scenario = nil
		return
	}
	s.abandonRun()
}

func (s *Service) SimulationState() ui.SimulationState {
	if s.runner == nil || s.scenario == nil {
		return ui.SimulationState{}
	}
	st := ui.SimulationState{
		Active:     true,
		ScenarioID: s.scenario.ScenarioID,
		Title:      s.scenario.Title,
		StepCount:  len(s.scenario.Steps),
		Attempts:   s.runner.Attempts(),
		HintsUsed:  s.runner.HintsUsed(),
		Done:       s.runner.Done(),
	}
	if step := s.runner.Step(); step != nil {
		st.StepOrder = step.Order
		st.InstructionMD = step.InstructionMD
		st.TriggerKind = string(step.Trigger.Kind)
	}
	return st
}

// effectiveMotion downgrades the configured motion level when the user
// prefers reduced motion.
func effectiveMotion(level string, prefs progress.UserPreferences) string {
	if prefs.ReducedMotion && level == "full" {
		return "reduced"
	}
	return level
}

var styleVariants = []string{"dojo_dark", "paper_light", "retro_terminal"}

func (s *Service) OnCycleStyle() string {
	current := s.store.Preferences().StyleVariant
	if current == "" {
		current = s.cfg.UI.StyleVariant
	}
	next := styleVariants[0]
	for i, v := range styleVariants {
		if v == current {
			next = styleVariants[(i+1)%len(styleVariants)]
			break
		}
	}
	prefs := s.store.Preferences()
	prefs.StyleVariant = next
	s.store.SetPreferences(context.Background(), prefs)
	return next
}

func (s *Service) SaveWarning() string {
	if s.store.LastSaveErr() != nil {
		return "progress not saved this session"
	}
	return ""
}

func (s *Service) OnQuit() {
	s.logger.Debug("session end", "session", s.sessionID)
}

// finishRun records the completed run and marks the tutorial step this
// scenario satisfies. The runner stays around so the view can render the
// finished state until the user leaves the screen.
func (s *Service) finishRun() bool {
	result := s.runner.Result()
	s.recordResult(result)
	return result.Successful
}

func (s *Service) abandonRun() {
	result := s.runner.Result()
	s.recordResult(result)
	s.runner = nil
	s.scenario = nil
}

func (s *Service) recordResult(result progress.SimulationResult) {
	ctx := context.Background()
	tutorialID := s.scenario.TutorialID
	if tutorialID != "" {
		s.store.RecordSimulationResult(ctx, tutorialID, result)
	}
	s.journal.SimulationFinished(result.ScenarioID, result.Successful, result.Attempts, result.ElapsedSeconds, result.HintsUsed)
	if !result.Successful || tutorialID == "" {
		return
	}
	if t := s.catalog.TutorialByID(tutorialID); t != nil {
		for _, step := range t.Steps {
			if step.Criteria.Kind == catalog.CriteriaSuccess && step.Criteria.ScenarioID == result.ScenarioID {
				s.store.CompleteStep(ctx, tutorialID, step.StepID)
			}
		}
	}
}

func scenarioRow(scn *catalog.SimulationScenario) ui.ScenarioRow {
	return ui.ScenarioRow{
		ScenarioID:    scn.ScenarioID,
		Title:         scn.Title,
		DescriptionMD: scn.DescriptionMD,
		StepCount:     len(scn.Steps),
	}
}
