package main

import "github.com/charmbracelet/lipgloss"

var palette = struct {
	text      lipgloss.AdaptiveColor
	textMuted lipgloss.AdaptiveColor
	accent    lipgloss.AdaptiveColor
	selection lipgloss.AdaptiveColor
	border    lipgloss.AdaptiveColor
	danger    lipgloss.AdaptiveColor
}{
	text:      lipgloss.AdaptiveColor{Light: "235", Dark: "252"},
	textMuted: lipgloss.AdaptiveColor{Light: "245", Dark: "243"},
	accent:    lipgloss.AdaptiveColor{Light: "26", Dark: "39"},
	selection: lipgloss.AdaptiveColor{Light: "153", Dark: "24"},
	border:    lipgloss.AdaptiveColor{Light: "250", Dark: "238"},
	danger:    lipgloss.AdaptiveColor{Light: "124", Dark: "167"},
}

type styles struct {
	app, topBar, topStatus           lipgloss.Style
	tabActive, tabInactive, tabsRow  lipgloss.Style
	panel, panelFocused, columnTitle lipgloss.Style
	processRow, processRowSel        lipgloss.Style
	trackRow, trackRowSel            lipgloss.Style
	trackHidden, trackBody           lipgloss.Style
	closeAffordance                  lipgloss.Style
	statusBar, statusSeg, statusHint lipgloss.Style
	menuOverlay, menuItem, menuSel   lipgloss.Style
	helpOverlay                      lipgloss.Style
	toast                            lipgloss.Style
}

func newStyles() styles {
	base := lipgloss.NewStyle()
	panelBorder := lipgloss.NormalBorder()
	focusedBorder := lipgloss.DoubleBorder()

	return styles{
		app:       base,
		topBar:    base.Padding(0, 1).Bold(true),
		topStatus: base.Foreground(palette.textMuted),

		tabActive:   base.Copy().Bold(true).Padding(0, 1).Foreground(palette.accent).Underline(true),
		tabInactive: base.Padding(0, 1).Foreground(palette.textMuted),
		tabsRow:     base.Padding(0, 1),

		panel:        base.BorderStyle(panelBorder).BorderForeground(palette.border),
		panelFocused: base.BorderStyle(focusedBorder).BorderForeground(palette.accent),
		columnTitle:  base.Copy().Bold(true).Padding(0, 1),

		// Row styles carry no padding: the timeline's mouse hit-testing
		// relies on cell-exact row layout.
		processRow:    base.Copy().Bold(true),
		processRowSel: base.Copy().Bold(true).Background(palette.selection),
		trackRow:      base.Foreground(palette.text),
		trackRowSel:   base.Background(palette.selection),
		trackHidden:   base.Faint(true).Foreground(palette.textMuted),
		trackBody:     base.Foreground(palette.accent),

		closeAffordance: base.Foreground(palette.danger),

		statusBar:  base.Padding(0, 1),
		statusSeg:  base.Padding(0, 1).MarginRight(1),
		statusHint: base.Foreground(palette.textMuted),

		menuOverlay: base.Border(lipgloss.RoundedBorder()).Padding(0, 1).BorderForeground(palette.accent),
		menuItem:    base.Padding(0, 1),
		menuSel:     base.Padding(0, 1).Background(palette.selection),

		helpOverlay: base.Border(lipgloss.RoundedBorder()).Padding(1, 2),
		toast:       base.Padding(0, 1).Foreground(palette.accent),
	}
}
