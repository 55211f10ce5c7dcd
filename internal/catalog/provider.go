package catalog

import "sort"

// Provider is the read-only reference data surface. All lookups are total:
// a miss returns nil or an empty slice, never an error.
type Provider struct {
	tutorials map[string]*Tutorial
	scenarios map[string]*SimulationScenario
	examples  map[string][]Example
	tips      map[string][]Tip
	shortcuts map[string][]Shortcut

	orderedTutorials []*Tutorial
	orderedScenarios []*SimulationScenario
}

// NewProvider builds a provider from the builtin catalog plus any loaded
// content packs. Pack entries with an id already present override the
// builtin definition.
func NewProvider(packs ...Pack) *Provider {
	p := &Provider{
		tutorials: map[string]*Tutorial{},
		scenarios: map[string]*SimulationScenario{},
		examples:  map[string][]Example{},
		tips:      map[string][]Tip{},
		shortcuts: map[string][]Shortcut{},
	}
	p.absorb(builtinPack())
	for _, pack := range packs {
		p.absorb(pack)
	}
	p.reindex()
	return p
}

func (p *Provider) absorb(pack Pack) {
	for i := range pack.Tutorials {
		t := pack.Tutorials[i]
		p.tutorials[t.TutorialID] = &t
	}
	for i := range pack.Scenarios {
		s := pack.Scenarios[i]
		p.scenarios[s.ScenarioID] = &s
	}
	for _, e := range pack.Examples {
		p.examples[e.TutorialID] = append(p.examples[e.TutorialID], e)
	}
	for _, t := range pack.Tips {
		p.tips[t.TutorialID] = append(p.tips[t.TutorialID], t)
	}
	for _, s := range pack.Shortcuts {
		p.shortcuts[s.Category] = append(p.shortcuts[s.Category], s)
	}
}

func (p *Provider) reindex() {
	p.orderedTutorials = p.orderedTutorials[:0]
	for _, t := range p.tutorials {
		p.orderedTutorials = append(p.orderedTutorials, t)
	}
	sort.Slice(p.orderedTutorials, func(i, j int) bool {
		a, b := p.orderedTutorials[i], p.orderedTutorials[j]
		if a.DisplayOrder != b.DisplayOrder {
			return a.DisplayOrder < b.DisplayOrder
		}
		return a.TutorialID < b.TutorialID
	})

	p.orderedScenarios = p.orderedScenarios[:0]
	for _, s := range p.scenarios {
		p.orderedScenarios = append(p.orderedScenarios, s)
	}
	sort.Slice(p.orderedScenarios, func(i, j int) bool {
		return p.orderedScenarios[i].ScenarioID < p.orderedScenarios[j].ScenarioID
	})
}

func (p *Provider) TutorialByID(id string) *Tutorial {
	return p.tutorials[id]
}

func (p *Provider) ScenarioByID(id string) *SimulationScenario {
	return p.scenarios[id]
}

// Tutorials returns every tutorial ordered by display order, then id.
func (p *Provider) Tutorials() []*Tutorial {
	return p.orderedTutorials
}

func (p *Provider) TutorialsByCategory(category string) []*Tutorial {
	out := make([]*Tutorial, 0)
	for _, t := range p.orderedTutorials {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// Scenarios returns every scenario ordered by id.
func (p *Provider) Scenarios() []*SimulationScenario {
	return p.orderedScenarios
}

func (p *Provider) ScenariosByCommand(command string) []*SimulationScenario {
	out := make([]*SimulationScenario, 0)
	for _, s := range p.orderedScenarios {
		if s.Command == command {
			out = append(out, s)
		}
	}
	return out
}

func (p *Provider) ScenariosByTutorialID(tutorialID string) []*SimulationScenario {
	out := make([]*SimulationScenario, 0)
	for _, s := range p.orderedScenarios {
		if s.TutorialID == tutorialID {
			out = append(out, s)
		}
	}
	return out
}

func (p *Provider) ExamplesByTutorialID(tutorialID string) []Example {
	return p.examples[tutorialID]
}

func (p *Provider) TipsByTutorialID(tutorialID string) []Tip {
	return p.tips[tutorialID]
}

func (p *Provider) ShortcutsByCategory(category string) []Shortcut {
	return p.shortcuts[category]
}

// StepByID finds a step within a tutorial. Nil on either miss.
func (p *Provider) StepByID(tutorialID, stepID string) *TutorialStep {
	t := p.tutorials[tutorialID]
	if t == nil {
		return nil
	}
	for i := range t.Steps {
		if t.Steps[i].StepID == stepID {
			return &t.Steps[i]
		}
	}
	return nil
}
