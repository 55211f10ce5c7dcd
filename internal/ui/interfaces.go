package ui

// Controller is implemented by the app service. The view calls it on user
// gestures and re-reads rows through it on every render, so the progress
// store's notification only has to trigger a redraw.
type Controller interface {
	TutorialRows() []TutorialRow
	TutorialDetail(tutorialID string) TutorialDetail
	SearchScenarios(query string) []ScenarioRow

	OnStartTutorial(tutorialID string)
	OnCompleteStep(tutorialID, stepID string)
	OnCompleteTutorial(tutorialID string)

	OnStartSimulation(scenarioID string) bool
	OnSubmitAction(kind, value string) ActionOutcome
	OnRevealHint() string
	OnAbandonSimulation()
	SimulationState() SimulationState

	// OnCycleStyle advances to the next style variant, persists the choice,
	// and returns the new variant name.
	OnCycleStyle() string

	SaveWarning() string
	OnQuit()
}

type View interface {
	Run() error
	RequestRedraw()
}

type Screen int

const (
	ScreenTutorials Screen = iota
	ScreenTutorial
	ScreenSimulation
)

type TutorialRow struct {
	TutorialID string
	Title      string
	Category   string
	Status     string
	Percent    int
}

type TutorialDetail struct {
	TutorialID    string
	Title         string
	BodyMD        string
	Status        string
	Percent       int
	Prerequisites []PrereqRow
	Steps         []StepRow
	Scenarios     []ScenarioRow
	Examples      []ExampleRow
	Tips          []string
	Shortcuts     []ShortcutRow
}

// PrereqRow is advisory only: the banner nudges, nothing gates.
type PrereqRow struct {
	TutorialID string
	Title      string
	Completed  bool
}

type StepRow struct {
	StepID string
	Title  string
	BodyMD string
	Done   bool
	// ScenarioID is set for steps completed by running a simulation.
	ScenarioID string
}

type ScenarioRow struct {
	ScenarioID    string
	Title         string
	DescriptionMD string
	StepCount     int
}

type ExampleRow struct {
	Title     string
	PromptMD  string
	OutcomeMD string
}

type ShortcutRow struct {
	Keys        string
	Description string
}

// SimulationState is the view's snapshot of the active run.
type SimulationState struct {
	Active        bool
	ScenarioID    string
	Title         string
	StepOrder     int
	StepCount     int
	InstructionMD string
	TriggerKind   string
	Attempts      int
	HintsUsed     int
	Done          bool
}

// ActionOutcome is what one submission produced.
type ActionOutcome struct {
	Matched    bool
	ResponseMD string
	// DelayMS paces the scripted response at full motion.
	DelayMS    int
	Suggestion string
	Done       bool
	Successful bool
}
