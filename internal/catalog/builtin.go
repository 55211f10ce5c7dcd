package catalog

// builtinPack is the catalog shipped with the binary. Content packs loaded
// from disk may extend or override it.
func builtinPack() Pack {
	return Pack{
		Kind:          PackKind,
		SchemaVersion: SupportedSchemaVersion,
		PackID:        "builtin-editor-basics",
		Name:          "Editor Basics",
		Version:       "0.3.0",
		Tutorials: []Tutorial{
			{
				TutorialID:   "getting-started",
				Title:        "Getting Started",
				SummaryMD:    "Tour the editor panes and learn where the assistant lives.",
				BodyMD:       "# Getting Started\n\nThe assistant sits beside your code. This tour shows the chat pane, the inline completion ghost text, and the command palette.",
				Category:     "basics",
				DisplayOrder: 1,
				Steps: []TutorialStep{
					{StepID: "open-editor", Title: "Open the editor", Order: 1, BodyMD: "Open any file to see the layout.", Criteria: CompletionCriteria{Kind: CriteriaView}},
					{StepID: "meet-the-panes", Title: "Meet the panes", Order: 2, BodyMD: "Code left, chat right, palette on top.", Criteria: CompletionCriteria{Kind: CriteriaView}},
					{StepID: "first-completion", Title: "Accept a completion", Order: 3, BodyMD: "Press Tab when ghost text appears.", Criteria: CompletionCriteria{Kind: CriteriaSuccess, ScenarioID: "tab-function-completion"}},
				},
			},
			{
				TutorialID:    "agent-working",
				Title:         "Working With the Agent",
				SummaryMD:     "Hand the agent a multi-file task and review what it changes.",
				BodyMD:        "# Working With the Agent\n\nThe agent plans, edits, and reports back. You stay in control: every change lands as a reviewable diff.",
				Category:      "agent",
				DisplayOrder:  2,
				Prerequisites: []string{"getting-started"},
				Steps: []TutorialStep{
					{StepID: "what-is-agent", Title: "What the agent does", Order: 1, BodyMD: "The agent takes a goal, not a keystroke.", Criteria: CompletionCriteria{Kind: CriteriaView}},
					{StepID: "compose-a-task", Title: "Compose a task", Order: 2, BodyMD: "Describe the outcome you want in one or two sentences.", Criteria: CompletionCriteria{Kind: CriteriaAction, Action: "open-agent-panel"}},
					{StepID: "run-the-agent", Title: "Run the agent", Order: 3, BodyMD: "Watch the scripted run to see the shape of a session.", Criteria: CompletionCriteria{Kind: CriteriaSuccess, ScenarioID: "agent-rename-symbol"}},
					{StepID: "review-the-diff", Title: "Review the diff", Order: 4, BodyMD: "Spend at least half a minute reading what changed.", Criteria: CompletionCriteria{Kind: CriteriaTime, Seconds: 30}},
				},
			},
			{
				TutorialID:    "inline-edits",
				Title:         "Inline Edits",
				SummaryMD:     "Select code, describe the change, accept or reject the rewrite.",
				BodyMD:        "# Inline Edits\n\nInline edits rewrite only the selection. Nothing outside the selection is touched.",
				Category:      "editing",
				DisplayOrder:  3,
				Prerequisites: []string{"getting-started"},
				Steps: []TutorialStep{
					{StepID: "select-and-ask", Title: "Select and ask", Order: 1, BodyMD: "Select a block, then open the edit prompt.", Criteria: CompletionCriteria{Kind: CriteriaView}},
					{StepID: "try-inline-edit", Title: "Try it", Order: 2, BodyMD: "Run the scripted inline edit.", Criteria: CompletionCriteria{Kind: CriteriaSuccess, ScenarioID: "inline-edit-docstring"}},
				},
			},
		},
		Scenarios: []SimulationScenario{
			{
				ScenarioID:    "tab-function-completion",
				Title:         "Accept a Function Completion",
				DescriptionMD: "Ghost text suggests the rest of the function. Accept it with a single keystroke.",
				Command:       "tab",
				TutorialID:    "getting-started",
				Hints: []string{
					"The suggestion is shown as dim ghost text after the cursor.",
					"Tab accepts, Escape dismisses.",
				},
				Steps: []SimulationStep{
					{
						Order:         1,
						InstructionMD: "Press **Tab** to accept the suggested function body.",
						Trigger:       Trigger{Kind: TriggerKeystroke, Value: "Tab"},
						Response: SimulatedResponse{
							Kind:      ResponseCompletion,
							ContentMD: "```go\nfunc clamp(v, lo, hi int) int {\n\tif v < lo {\n\t\treturn lo\n\t}\n\tif v > hi {\n\t\treturn hi\n\t}\n\treturn v\n}\n```",
							DelayMS:   120,
						},
					},
				},
			},
			{
				ScenarioID:    "agent-rename-symbol",
				Title:         "Agent: Rename Across Files",
				DescriptionMD: "Ask the agent to rename a symbol everywhere and watch it work through the plan.",
				Command:       "agent",
				TutorialID:    "agent-working",
				Hints: []string{
					"Type the task exactly as shown, then press Enter.",
					"The agent reports each file it touches before moving on.",
					"Approve the plan with the apply command when it finishes.",
				},
				Steps: []SimulationStep{
					{
						Order:         1,
						InstructionMD: "Type `rename parseConfig to loadConfig everywhere` and press Enter.",
						Trigger:       Trigger{Kind: TriggerCommand, Value: "rename parseConfig to loadConfig everywhere"},
						Response: SimulatedResponse{
							Kind:      ResponseText,
							ContentMD: "Planning: found 3 references in 2 files. Renaming `parseConfig` → `loadConfig`.",
							DelayMS:   400,
						},
					},
					{
						Order:         2,
						InstructionMD: "Click **Apply** to accept the agent's changes.",
						Trigger:       Trigger{Kind: TriggerClick, Value: "apply"},
						Response: SimulatedResponse{
							Kind:      ResponseDiff,
							ContentMD: "```diff\n-func parseConfig(path string) (*Config, error) {\n+func loadConfig(path string) (*Config, error) {\n```\nApplied to `config.go`, `main.go`.",
							DelayMS:   250,
						},
					},
				},
			},
			{
				ScenarioID:    "inline-edit-docstring",
				Title:         "Inline Edit: Add a Docstring",
				DescriptionMD: "Select a function and ask for a doc comment without touching the body.",
				Command:       "edit",
				TutorialID:    "inline-edits",
				Hints: []string{
					"The edit prompt only sees your selection.",
				},
				Steps: []SimulationStep{
					{
						Order:         1,
						InstructionMD: "Type `add a doc comment` and press Enter.",
						Trigger:       Trigger{Kind: TriggerCommand, Value: "add a doc comment"},
						Response: SimulatedResponse{
							Kind:      ResponseCode,
							ContentMD: "```go\n// clamp bounds v to the inclusive range [lo, hi].\n```",
							DelayMS:   300,
						},
					},
					{
						Order:         2,
						InstructionMD: "Press **Enter** to accept the rewrite.",
						Trigger:       Trigger{Kind: TriggerKeystroke, Value: "Enter"},
						Response: SimulatedResponse{
							Kind:      ResponseText,
							ContentMD: "Accepted. The selection now carries the doc comment; the body is unchanged.",
							DelayMS:   100,
						},
					},
				},
			},
		},
		Examples: []Example{
			{ExampleID: "agent-example-tests", TutorialID: "agent-working", Title: "Backfill tests", PromptMD: "`write table tests for the parser edge cases`", OutcomeMD: "The agent adds a `_test.go` file and runs it before reporting back."},
			{ExampleID: "agent-example-upgrade", TutorialID: "agent-working", Title: "Dependency bump", PromptMD: "`upgrade the yaml library and fix the fallout`", OutcomeMD: "The agent edits go.mod and every call site that changed."},
			{ExampleID: "inline-example-guard", TutorialID: "inline-edits", Title: "Add a guard clause", PromptMD: "`return early when the slice is empty`", OutcomeMD: "Only the selected function gains the guard."},
		},
		Tips: []Tip{
			{TipID: "tip-agent-scope", TutorialID: "agent-working", TextMD: "Small, outcome-shaped tasks beat long instruction lists."},
			{TipID: "tip-agent-review", TutorialID: "agent-working", TextMD: "Always read the diff. The agent is confident, not infallible."},
			{TipID: "tip-inline-selection", TutorialID: "inline-edits", TextMD: "Tight selections produce tight rewrites."},
		},
		Shortcuts: []Shortcut{
			{Category: "completion", Keys: "Tab", Description: "Accept the current ghost-text suggestion"},
			{Category: "completion", Keys: "Esc", Description: "Dismiss the current suggestion"},
			{Category: "agent", Keys: "Ctrl+I", Description: "Open the agent panel"},
			{Category: "editing", Keys: "Ctrl+K", Description: "Inline edit the selection"},
			{Category: "chat", Keys: "Ctrl+L", Description: "Open the chat pane"},
		},
	}
}
