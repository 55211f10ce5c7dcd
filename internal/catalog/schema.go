package catalog

import (
	"fmt"
	"regexp"
)

const (
	PackKind               = "content_pack"
	SupportedSchemaVersion = 1
)

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{2,63}$`)

// CriteriaKind discriminates how a tutorial step is considered complete.
type CriteriaKind string

const (
	CriteriaView    CriteriaKind = "view"
	CriteriaAction  CriteriaKind = "action"
	CriteriaSuccess CriteriaKind = "success"
	CriteriaTime    CriteriaKind = "time"
)

// TriggerKind discriminates the gesture a simulation step waits for.
type TriggerKind string

const (
	TriggerKeystroke TriggerKind = "keystroke"
	TriggerCommand   TriggerKind = "command"
	TriggerClick     TriggerKind = "click"
)

// ResponseKind discriminates what the scripted response pretends to be.
type ResponseKind string

const (
	ResponseText       ResponseKind = "text"
	ResponseCode       ResponseKind = "code"
	ResponseCompletion ResponseKind = "completion"
	ResponseDiff       ResponseKind = "diff"
)

type Pack struct {
	Kind          string               `yaml:"kind"`
	SchemaVersion int                  `yaml:"schema_version"`
	PackID        string               `yaml:"pack_id"`
	Name          string               `yaml:"name"`
	Version       string               `yaml:"version"`
	Tutorials     []Tutorial           `yaml:"tutorials"`
	Scenarios     []SimulationScenario `yaml:"scenarios"`
	Examples      []Example            `yaml:"examples"`
	Tips          []Tip                `yaml:"tips"`
	Shortcuts     []Shortcut           `yaml:"shortcuts"`

	Path string `yaml:"-"`
}

type Tutorial struct {
	TutorialID    string         `yaml:"tutorial_id"`
	Title         string         `yaml:"title"`
	SummaryMD     string         `yaml:"summary_md"`
	BodyMD        string         `yaml:"body_md"`
	Category      string         `yaml:"category"`
	DisplayOrder  int            `yaml:"display_order"`
	Prerequisites []string       `yaml:"prerequisites"`
	Steps         []TutorialStep `yaml:"steps"`
}

type TutorialStep struct {
	StepID   string             `yaml:"step_id"`
	Title    string             `yaml:"title"`
	Order    int                `yaml:"order"`
	BodyMD   string             `yaml:"body_md"`
	Criteria CompletionCriteria `yaml:"criteria"`
}

// CompletionCriteria carries kind-specific parameters; only the fields for
// its Kind are meaningful.
type CompletionCriteria struct {
	Kind CriteriaKind `yaml:"kind"`

	// action
	Action string `yaml:"action"`

	// success
	ScenarioID string `yaml:"scenario_id"`

	// time
	Seconds int `yaml:"seconds"`
}

type SimulationScenario struct {
	ScenarioID    string           `yaml:"scenario_id"`
	Title         string           `yaml:"title"`
	DescriptionMD string           `yaml:"description_md"`
	Command       string           `yaml:"command"`
	TutorialID    string           `yaml:"tutorial_id"`
	Steps         []SimulationStep `yaml:"steps"`
	Hints         []string         `yaml:"hints"`
}

type SimulationStep struct {
	Order         int               `yaml:"order"`
	InstructionMD string            `yaml:"instruction_md"`
	Trigger       Trigger           `yaml:"trigger"`
	Response      SimulatedResponse `yaml:"response"`
}

type Trigger struct {
	Kind  TriggerKind `yaml:"kind"`
	Value string      `yaml:"value"`
}

type SimulatedResponse struct {
	Kind      ResponseKind `yaml:"kind"`
	ContentMD string       `yaml:"content_md"`
	DelayMS   int          `yaml:"delay_ms"`
}

type Example struct {
	ExampleID  string `yaml:"example_id"`
	TutorialID string `yaml:"tutorial_id"`
	Title      string `yaml:"title"`
	PromptMD   string `yaml:"prompt_md"`
	OutcomeMD  string `yaml:"outcome_md"`
}

type Tip struct {
	TipID      string `yaml:"tip_id"`
	TutorialID string `yaml:"tutorial_id"`
	TextMD     string `yaml:"text_md"`
}

type Shortcut struct {
	Category    string `yaml:"category"`
	Keys        string `yaml:"keys"`
	Description string `yaml:"description"`
}

func (p Pack) Validate() error {
	if p.Kind != PackKind {
		return fmt.Errorf("kind must be %q", PackKind)
	}
	if p.SchemaVersion == 0 {
		return fmt.Errorf("schema_version is required")
	}
	if p.SchemaVersion > SupportedSchemaVersion {
		return fmt.Errorf("unsupported pack schema_version %d (max supported %d)", p.SchemaVersion, SupportedSchemaVersion)
	}
	if !idPattern.MatchString(p.PackID) {
		return fmt.Errorf("invalid pack_id %q", p.PackID)
	}
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	seenTut := map[string]struct{}{}
	for _, t := range p.Tutorials {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("tutorial %q: %w", t.TutorialID, err)
		}
		if _, ok := seenTut[t.TutorialID]; ok {
			return fmt.Errorf("duplicate tutorial_id %q", t.TutorialID)
		}
		seenTut[t.TutorialID] = struct{}{}
	}
	seenScn := map[string]struct{}{}
	for _, s := range p.Scenarios {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("scenario %q: %w", s.ScenarioID, err)
		}
		if _, ok := seenScn[s.ScenarioID]; ok {
			return fmt.Errorf("duplicate scenario_id %q", s.ScenarioID)
		}
		seenScn[s.ScenarioID] = struct{}{}
	}
	return nil
}

func (t Tutorial) Validate() error {
	if !idPattern.MatchString(t.TutorialID) {
		return fmt.Errorf("invalid tutorial_id %q", t.TutorialID)
	}
	if t.Title == "" {
		return fmt.Errorf("title is required")
	}
	if len(t.Steps) == 0 {
		return fmt.Errorf("tutorial must have at least one step")
	}
	seen := map[string]struct{}{}
	for _, s := range t.Steps {
		if !idPattern.MatchString(s.StepID) {
			return fmt.Errorf("invalid step_id %q", s.StepID)
		}
		if _, ok := seen[s.StepID]; ok {
			return fmt.Errorf("duplicate step_id %q", s.StepID)
		}
		seen[s.StepID] = struct{}{}
		if s.Order <= 0 {
			return fmt.Errorf("step %q order must be > 0", s.StepID)
		}
		if err := s.Criteria.Validate(); err != nil {
			return fmt.Errorf("step %q: %w", s.StepID, err)
		}
	}
	return nil
}

func (c CompletionCriteria) Validate() error {
	switch c.Kind {
	case CriteriaView:
	case CriteriaAction:
		if c.Action == "" {
			return fmt.Errorf("criteria kind action requires action")
		}
	case CriteriaSuccess:
		if c.ScenarioID == "" {
			return fmt.Errorf("criteria kind success requires scenario_id")
		}
	case CriteriaTime:
		if c.Seconds <= 0 {
			return fmt.Errorf("criteria kind time requires seconds > 0")
		}
	default:
		return fmt.Errorf("invalid criteria kind %q", c.Kind)
	}
	return nil
}

func (s SimulationScenario) Validate() error {
	if !idPattern.MatchString(s.ScenarioID) {
		return fmt.Errorf("invalid scenario_id %q", s.ScenarioID)
	}
	if s.Title == "" {
		return fmt.Errorf("title is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario must have at least one step")
	}
	// Orders must be strictly ascending. Duplicate orders would make the
	// lowest match win during traversal, so reject them at load time.
	prev := 0
	for i, step := range s.Steps {
		if step.Order <= prev {
			return fmt.Errorf("steps[%d] order %d must be greater than %d", i, step.Order, prev)
		}
		prev = step.Order
		if err := step.Trigger.Validate(); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
		if err := step.Response.Validate(); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	return nil
}

func (t Trigger) Validate() error {
	switch t.Kind {
	case TriggerKeystroke, TriggerCommand, TriggerClick:
	default:
		return fmt.Errorf("invalid trigger kind %q", t.Kind)
	}
	if t.Value == "" {
		return fmt.Errorf("trigger value is required")
	}
	return nil
}

func (r SimulatedResponse) Validate() error {
	switch r.Kind {
	case ResponseText, ResponseCode, ResponseCompletion, ResponseDiff:
	default:
		return fmt.Errorf("invalid response kind %q", r.Kind)
	}
	if r.ContentMD == "" {
		return fmt.Errorf("response content_md is required")
	}
	if r.DelayMS < 0 {
		return fmt.Errorf("response delay_ms must be >= 0")
	}
	return nil
}
