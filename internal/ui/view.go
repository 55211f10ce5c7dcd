package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	clog "github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
)

type redrawMsg struct{}

// responseMsg delivers a scripted response after its pacing delay.
type responseMsg struct{ md string }

type listKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Search key.Binding
	Style  key.Binding
	Hint   key.Binding
	Done   key.Binding
	Quit   key.Binding
}

func (k listKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.Search, k.Hint, k.Done, k.Quit}
}

func (k listKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Select, k.Search}, {k.Back, k.Style, k.Hint, k.Done, k.Quit}}
}

type Options struct {
	Controller   Controller
	StyleVariant string
	MotionLevel  string
	ASCIIOnly    bool
	Debug        bool
}

// Root is the bubbletea model for the whole program. It keeps only cursor
// and transcript state; everything it draws is re-read from the controller
// on each render.
type Root struct {
	theme  Theme
	ascii  bool
	motion string
	ctrl   Controller
	screen Screen

	cols int
	rows int

	cursor     int
	stepCursor int
	tutorialID string

	searching    bool
	query        string
	searchCursor int
	returnScreen Screen

	input      string
	transcript []string
	flash      string
	hint       string

	keymap   listKeyMap
	help     help.Model
	bar      progress.Model
	markdown *glamour.TermRenderer
	logger   *clog.Logger

	program *tea.Program
}

func New(opts Options) *Root {
	logger := clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "promptdojo-ui", Level: clog.WarnLevel})
	if opts.Debug {
		logger.SetLevel(clog.DebugLevel)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(78),
	)
	if err != nil {
		renderer = nil
	}

	h := help.New()
	h.Styles = help.DefaultDarkStyles()

	theme := ThemeForVariant(opts.StyleVariant)
	bar := progress.New(
		progress.WithWidth(22),
		progress.WithColors(lipgloss.Color("#5EE2FF"), lipgloss.Color("#74EFA9"), lipgloss.Color("#FFD166")),
	)

	r := &Root{
		theme:    theme,
		ascii:    opts.ASCIIOnly,
		motion:   opts.MotionLevel,
		ctrl:     opts.Controller,
		screen:   ScreenTutorials,
		cols:     100,
		rows:     30,
		help:     h,
		bar:      bar,
		markdown: renderer,
		logger:   logger,
	}
	r.keymap = listKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find scenario")),
		Style:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "cycle theme")),
		Hint:   key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "hint")),
		Done:   key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "mark tutorial done")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
	return r
}

func (r *Root) Run() error {
	p := tea.NewProgram(r)
	r.program = p
	_, err := p.Run()
	return err
}

// RequestRedraw is the store's change-notification hook: the next render
// re-reads everything through the controller.
func (r *Root) RequestRedraw() {
	if r.program != nil {
		go r.program.Send(redrawMsg{})
	}
}

func (r *Root) Init() tea.Cmd { return nil }

func (r *Root) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case redrawMsg:
		return r, nil
	case responseMsg:
		r.transcript = append(r.transcript, msg.md)
		return r, nil
	case tea.WindowSizeMsg:
		r.cols, r.rows = msg.Width, msg.Height
		return r, nil
	case tea.KeyPressMsg:
		return r.handleKey(msg)
	}
	return r, nil
}

func (r *Root) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, r.keymap.Quit) {
		r.ctrl.OnQuit()
		return r, tea.Quit
	}
	r.flash = ""

	switch r.screen {
	case ScreenTutorials:
		return r.handleTutorialsKey(msg)
	case ScreenTutorial:
		return r.handleTutorialKey(msg)
	case ScreenSimulation:
		return r.handleSimulationKey(msg)
	}
	return r, nil
}

func (r *Root) handleTutorialsKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if r.searching {
		return r.handleSearchKey(msg)
	}
	rows := r.ctrl.TutorialRows()
	switch {
	case key.Matches(msg, r.keymap.Up):
		if r.cursor > 0 {
			r.cursor--
		}
	case key.Matches(msg, r.keymap.Down):
		if r.cursor < len(rows)-1 {
			r.cursor++
		}
	case key.Matches(msg, r.keymap.Search):
		r.searching = true
		r.query = ""
		r.searchCursor = 0
	case key.Matches(msg, r.keymap.Style):
		variant := r.ctrl.OnCycleStyle()
		r.theme = ThemeForVariant(variant)
		r.flash = "Theme: " + variant
	case key.Matches(msg, r.keymap.Select):
		if r.cursor < len(rows) {
			r.tutorialID = rows[r.cursor].TutorialID
			r.ctrl.OnStartTutorial(r.tutorialID)
			r.stepCursor = 0
			r.screen = ScreenTutorial
		}
	}
	return r, nil
}

// handleSearchKey drives the scenario finder on the tutorials screen. The
// query filters scenarios as it is typed; enter jumps straight into a run.
func (r *Root) handleSearchKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	results := r.ctrl.SearchScenarios(r.query)
	switch msg.String() {
	case "esc":
		r.searching = false
		r.query = ""
	case "up":
		if r.searchCursor > 0 {
			r.searchCursor--
		}
	case "down":
		if r.searchCursor < len(results)-1 {
			r.searchCursor++
		}
	case "enter":
		if r.searchCursor < len(results) {
			if r.ctrl.OnStartSimulation(results[r.searchCursor].ScenarioID) {
				r.searching = false
				r.query = ""
				r.input = ""
				r.hint = ""
				r.transcript = nil
				r.returnScreen = ScreenTutorials
				r.screen = ScreenSimulation
			}
		}
	case "backspace":
		if len(r.query) > 0 {
			r.query = r.query[:len(r.query)-1]
			r.searchCursor = 0
		}
	case "space":
		r.query += " "
		r.searchCursor = 0
	default:
		s := msg.String()
		if len([]rune(s)) == 1 {
			r.query += s
			r.searchCursor = 0
		}
	}
	return r, nil
}

func (r *Root) handleTutorialKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	detail := r.ctrl.TutorialDetail(r.tutorialID)
	switch {
	case key.Matches(msg, r.keymap.Back):
		r.screen = ScreenTutorials
	case key.Matches(msg, r.keymap.Up):
		if r.stepCursor > 0 {
			r.stepCursor--
		}
	case key.Matches(msg, r.keymap.Down):
		if r.stepCursor < len(detail.Steps)-1 {
			r.stepCursor++
		}
	case key.Matches(msg, r.keymap.Done):
		r.ctrl.OnCompleteTutorial(r.tutorialID)
		r.flash = "Tutorial marked complete."
	case key.Matches(msg, r.keymap.Select):
		if r.stepCursor >= len(detail.Steps) {
			break
		}
		step := detail.Steps[r.stepCursor]
		if step.ScenarioID != "" {
			if r.ctrl.OnStartSimulation(step.ScenarioID) {
				r.input = ""
				r.hint = ""
				r.transcript = nil
				r.returnScreen = ScreenTutorial
				r.screen = ScreenSimulation
			}
			break
		}
		r.ctrl.OnCompleteStep(r.tutorialID, step.StepID)
	}
	return r, nil
}

func (r *Root) handleSimulationKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	sim := r.ctrl.SimulationState()

	switch {
	case key.Matches(msg, r.keymap.Back):
		r.ctrl.OnAbandonSimulation()
		r.screen = r.returnScreen
		return r, nil
	case key.Matches(msg, r.keymap.Hint):
		r.hint = r.ctrl.OnRevealHint()
		return r, nil
	}

	if sim.Done {
		// Any other key leaves the run after the final response.
		r.screen = r.returnScreen
		return r, nil
	}

	if sim.TriggerKind == "keystroke" {
		return r, r.submit("keystroke", keystrokeName(msg.String()))
	}

	// command and click triggers are typed into the prompt line
	switch msg.String() {
	case "enter":
		if strings.TrimSpace(r.input) != "" {
			cmd := r.submit(sim.TriggerKind, r.input)
			r.input = ""
			return r, cmd
		}
	case "backspace":
		if len(r.input) > 0 {
			r.input = r.input[:len(r.input)-1]
		}
	case "space":
		r.input += " "
	default:
		s := msg.String()
		if len([]rune(s)) == 1 {
			r.input += s
		}
	}
	return r, nil
}

func (r *Root) submit(kind, value string) tea.Cmd {
	outcome := r.ctrl.OnSubmitAction(kind, value)
	if outcome.Matched {
		r.hint = ""
		var cmd tea.Cmd
		if outcome.ResponseMD != "" {
			if d := responseDelay(r.motion, outcome.DelayMS); d > 0 {
				md := outcome.ResponseMD
				cmd = tea.Tick(d, func(time.Time) tea.Msg { return responseMsg{md: md} })
			} else {
				r.transcript = append(r.transcript, outcome.ResponseMD)
			}
		}
		if outcome.Done {
			if outcome.Successful {
				r.flash = "Scenario complete."
			} else {
				r.flash = "Scenario finished."
			}
		}
		return cmd
	}
	if outcome.Suggestion != "" {
		r.flash = fmt.Sprintf("Almost — expected %q. Check spelling and capitalization.", outcome.Suggestion)
		return nil
	}
	r.flash = "Not quite. Try again, or press F1 for a hint."
	return nil
}

// responseDelay is how long a scripted response is held back before it
// appears in the transcript. Any motion level below full shows responses
// immediately.
func responseDelay(motion string, delayMS int) time.Duration {
	if motion != "full" || delayMS <= 0 {
		return 0
	}
	return time.Duration(delayMS) * time.Millisecond
}

// keystrokeName maps a bubbletea key string to the trigger vocabulary used
// by the catalog ("tab" → "Tab"). Single runes pass through verbatim.
func keystrokeName(s string) string {
	switch s {
	case "tab":
		return "Tab"
	case "enter":
		return "Enter"
	case "space":
		return "Space"
	case "backspace":
		return "Backspace"
	case "up":
		return "Up"
	case "down":
		return "Down"
	case "left":
		return "Left"
	case "right":
		return "Right"
	}
	return s
}

func (r *Root) View() tea.View {
	width := max(1, r.cols)

	var body string
	switch r.screen {
	case ScreenTutorials:
		body = r.viewTutorials(width)
	case ScreenTutorial:
		body = r.viewTutorial(width)
	case ScreenSimulation:
		body = r.viewSimulation(width)
	}

	header := r.theme.Header.Width(width).Render("promptdojo — learn the AI editor")
	footer := r.viewFooter(width)

	v := tea.NewView(lipgloss.JoinVertical(lipgloss.Left, header, body, footer))
	v.AltScreen = true
	return v
}

func (r *Root) viewTutorials(width int) string {
	rows := r.ctrl.TutorialRows()
	var b strings.Builder
	b.WriteString(r.theme.PanelTitle.Render("Tutorials"))
	b.WriteString("\n\n")
	for i, row := range rows {
		marker := "  "
		style := r.theme.Muted
		if i == r.cursor {
			marker = r.theme.Accent.Render("» ")
			style = r.theme.Selected
		}
		icon := r.statusIcon(row.Status)
		line := fmt.Sprintf("%s %s %s", icon, style.Render(row.Title), r.theme.Muted.Render("["+row.Category+"]"))
		bar := r.bar.ViewAs(float64(row.Percent) / 100)
		b.WriteString(fmt.Sprintf("%s%s %s %3d%%\n", marker, ansi.Truncate(line, max(1, width-32), "…"), bar, row.Percent))
	}

	if r.searching {
		b.WriteString("\n" + r.theme.PanelTitle.Render("Find a scenario") + "\n")
		b.WriteString(r.theme.InputPrompt.Render("/ ") + r.query + r.theme.Accent.Render("▌") + "\n")
		for i, scn := range r.ctrl.SearchScenarios(r.query) {
			marker := "  "
			style := r.theme.Muted
			if i == r.searchCursor {
				marker = r.theme.Accent.Render("» ")
				style = r.theme.Selected
			}
			line := fmt.Sprintf("%s %s", style.Render(scn.Title), r.theme.Muted.Render(fmt.Sprintf("(%d steps)", scn.StepCount)))
			b.WriteString(marker + ansi.Truncate(line, max(1, width-4), "…") + "\n")
		}
	}
	return b.String()
}

func (r *Root) viewTutorial(width int) string {
	d := r.ctrl.TutorialDetail(r.tutorialID)
	var b strings.Builder
	b.WriteString(r.theme.PanelTitle.Render(d.Title))
	b.WriteString(r.theme.Muted.Render(fmt.Sprintf("  %s · %d%%", d.Status, d.Percent)))
	b.WriteString("\n")

	if banner := prereqBanner(d.Prerequisites); banner != "" {
		b.WriteString(r.theme.Pending.Render(banner))
		b.WriteString("\n")
	}

	b.WriteString(r.renderMarkdown(d.BodyMD))
	b.WriteString("\n")
	b.WriteString(r.theme.PanelTitle.Render("Steps"))
	b.WriteString("\n")
	for i, step := range d.Steps {
		marker := "  "
		if i == r.stepCursor {
			marker = r.theme.Accent.Render("» ")
		}
		check := r.theme.Pending.Render(r.glyph("[ ]", "( )"))
		if step.Done {
			check = r.theme.Done.Render(r.glyph("[✓]", "[x]"))
		}
		title := step.Title
		if step.ScenarioID != "" {
			title += r.theme.Muted.Render("  (interactive)")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", marker, check, ansi.Truncate(title, max(1, width-8), "…")))
	}

	if len(d.Examples) > 0 {
		b.WriteString("\n" + r.theme.PanelTitle.Render("Prompt Examples") + "\n")
		for _, ex := range d.Examples {
			b.WriteString("  " + r.theme.Selected.Render(ex.Title) + "\n")
			b.WriteString("    " + r.theme.Accent.Render("prompt: ") + ansi.Truncate(ex.PromptMD, max(1, width-12), "…") + "\n")
			b.WriteString("    " + r.theme.Muted.Render(ansi.Truncate(ex.OutcomeMD, max(1, width-6), "…")) + "\n")
		}
	}

	if len(d.Tips) > 0 {
		b.WriteString("\n" + r.theme.PanelTitle.Render("Tips") + "\n")
		for _, tip := range d.Tips {
			b.WriteString("  • " + ansi.Truncate(tip, max(1, width-4), "…") + "\n")
		}
	}
	if len(d.Shortcuts) > 0 {
		b.WriteString("\n" + r.theme.PanelTitle.Render("Shortcuts") + "\n")
		for _, sc := range d.Shortcuts {
			b.WriteString(fmt.Sprintf("  %s  %s\n", r.theme.Accent.Render(sc.Keys), r.theme.Muted.Render(sc.Description)))
		}
	}
	return b.String()
}

func (r *Root) viewSimulation(width int) string {
	sim := r.ctrl.SimulationState()
	var b strings.Builder
	b.WriteString(r.theme.PanelTitle.Render(sim.Title))
	if sim.Done {
		b.WriteString(r.theme.Done.Render("  done — press any key to continue"))
	} else {
		b.WriteString(r.theme.Muted.Render(fmt.Sprintf("  step %d/%d · attempts %d · hints %d", sim.StepOrder, sim.StepCount, sim.Attempts, sim.HintsUsed)))
	}
	b.WriteString("\n\n")

	if !sim.Done && sim.InstructionMD != "" {
		b.WriteString(r.renderMarkdown(sim.InstructionMD))
		b.WriteString("\n")
	}

	for _, resp := range r.transcript {
		b.WriteString(r.theme.ResponsePane.Width(max(10, width-4)).Render(r.renderMarkdown(resp)))
		b.WriteString("\n")
	}

	if r.hint != "" {
		b.WriteString(r.theme.HintBar.Render("hint: "+r.hint) + "\n")
	}

	if !sim.Done {
		switch sim.TriggerKind {
		case "keystroke":
			b.WriteString("\n" + r.theme.Muted.Render("press the key the instruction asks for") + "\n")
		default:
			b.WriteString("\n" + r.theme.InputPrompt.Render("> ") + r.input + r.theme.Accent.Render("▌") + "\n")
		}
	}
	return b.String()
}

func (r *Root) viewFooter(width int) string {
	parts := []string{r.help.View(r.keymap)}
	if r.flash != "" {
		parts = append([]string{r.theme.Warn.Render(ansi.Truncate(r.flash, max(1, width-2), "…"))}, parts...)
	}
	if warn := r.ctrl.SaveWarning(); warn != "" {
		parts = append([]string{r.theme.Warn.Render(warn)}, parts...)
	}
	return r.theme.Status.Width(width).Render(strings.Join(parts, "  "))
}

func (r *Root) renderMarkdown(md string) string {
	if md == "" {
		return ""
	}
	if r.markdown != nil {
		if out, err := r.markdown.Render(md); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return md
}

func (r *Root) statusIcon(status string) string {
	switch status {
	case "completed":
		return r.theme.Done.Render(r.glyph("●", "*"))
	case "in-progress":
		return r.theme.Pending.Render(r.glyph("◐", "o"))
	default:
		return r.theme.Muted.Render(r.glyph("○", "."))
	}
}

func (r *Root) glyph(unicode, fallback string) string {
	if r.ascii {
		return fallback
	}
	return unicode
}

func prereqBanner(prereqs []PrereqRow) string {
	missing := make([]string, 0, len(prereqs))
	for _, p := range prereqs {
		if !p.Completed {
			missing = append(missing, p.Title)
		}
	}
	if len(missing) == 0 {
		return ""
	}
	return "Suggested first: " + strings.Join(missing, ", ")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
