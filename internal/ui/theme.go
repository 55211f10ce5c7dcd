package ui

import lipgloss "charm.land/lipgloss/v2"

type Theme struct {
	Header       lipgloss.Style
	Status       lipgloss.Style
	PanelTitle   lipgloss.Style
	PanelBorder  lipgloss.Style
	Accent       lipgloss.Style
	Done         lipgloss.Style
	Pending      lipgloss.Style
	Muted        lipgloss.Style
	Warn         lipgloss.Style
	Selected     lipgloss.Style
	ResponsePane lipgloss.Style
	HintBar      lipgloss.Style
	InputPrompt  lipgloss.Style
}

func DefaultTheme() Theme {
	return ThemeForVariant("dojo_dark")
}

func ThemeForVariant(variant string) Theme {
	switch variant {
	case "paper_light":
		return paperLightTheme()
	case "retro_terminal":
		return retroTerminalTheme()
	default:
		return dojoDarkTheme()
	}
}

func dojoDarkTheme() Theme {
	ink := lipgloss.Color("#10141F")
	slate := lipgloss.Color("#1C2536")
	powder := lipgloss.Color("#E8EFFB")
	cyan := lipgloss.Color("#5EE2FF")
	mint := lipgloss.Color("#74EFA9")
	gold := lipgloss.Color("#FFD166")
	rose := lipgloss.Color("#FF6F91")
	border := lipgloss.Color("#45577E")
	dim := lipgloss.Color("#77839E")

	return Theme{
		Header:       lipgloss.NewStyle().Background(ink).Foreground(powder).Padding(0, 1),
		Status:       lipgloss.NewStyle().Background(slate).Foreground(powder).Padding(0, 1),
		PanelTitle:   lipgloss.NewStyle().Foreground(cyan).Bold(true),
		PanelBorder:  lipgloss.NewStyle().Foreground(border),
		Accent:       lipgloss.NewStyle().Foreground(cyan),
		Done:         lipgloss.NewStyle().Foreground(mint),
		Pending:      lipgloss.NewStyle().Foreground(gold),
		Muted:        lipgloss.NewStyle().Foreground(dim),
		Warn:         lipgloss.NewStyle().Foreground(rose).Bold(true),
		Selected:     lipgloss.NewStyle().Background(slate).Foreground(cyan).Bold(true),
		ResponsePane: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		HintBar:      lipgloss.NewStyle().Foreground(gold).Italic(true),
		InputPrompt:  lipgloss.NewStyle().Foreground(mint).Bold(true),
	}
}

func paperLightTheme() Theme {
	paper := lipgloss.Color("#FAF7F0")
	inkblue := lipgloss.Color("#24415E")
	moss := lipgloss.Color("#3E7C4F")
	clay := lipgloss.Color("#B4543C")
	honey := lipgloss.Color("#A67C16")
	border := lipgloss.Color("#B9B2A4")
	dim := lipgloss.Color("#8A8578")

	return Theme{
		Header:       lipgloss.NewStyle().Background(inkblue).Foreground(paper).Padding(0, 1),
		Status:       lipgloss.NewStyle().Background(border).Foreground(inkblue).Padding(0, 1),
		PanelTitle:   lipgloss.NewStyle().Foreground(inkblue).Bold(true),
		PanelBorder:  lipgloss.NewStyle().Foreground(border),
		Accent:       lipgloss.NewStyle().Foreground(inkblue),
		Done:         lipgloss.NewStyle().Foreground(moss),
		Pending:      lipgloss.NewStyle().Foreground(honey),
		Muted:        lipgloss.NewStyle().Foreground(dim),
		Warn:         lipgloss.NewStyle().Foreground(clay).Bold(true),
		Selected:     lipgloss.NewStyle().Background(inkblue).Foreground(paper).Bold(true),
		ResponsePane: lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(border).Padding(0, 1),
		HintBar:      lipgloss.NewStyle().Foreground(honey).Italic(true),
		InputPrompt:  lipgloss.NewStyle().Foreground(moss).Bold(true),
	}
}

func retroTerminalTheme() Theme {
	black := lipgloss.Color("#0A0A0A")
	green := lipgloss.Color("#33FF66")
	dimGreen := lipgloss.Color("#1E9944")
	amber := lipgloss.Color("#FFB000")

	mono := lipgloss.NewStyle().Foreground(green)
	return Theme{
		Header:       lipgloss.NewStyle().Background(black).Foreground(green).Padding(0, 1),
		Status:       lipgloss.NewStyle().Background(black).Foreground(dimGreen).Padding(0, 1),
		PanelTitle:   mono.Bold(true),
		PanelBorder:  lipgloss.NewStyle().Foreground(dimGreen),
		Accent:       mono,
		Done:         mono,
		Pending:      lipgloss.NewStyle().Foreground(amber),
		Muted:        lipgloss.NewStyle().Foreground(dimGreen),
		Warn:         lipgloss.NewStyle().Foreground(amber).Bold(true),
		Selected:     lipgloss.NewStyle().Background(dimGreen).Foreground(black),
		ResponsePane: lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(dimGreen).Padding(0, 1),
		HintBar:      lipgloss.NewStyle().Foreground(amber),
		InputPrompt:  mono.Bold(true),
	}
}
