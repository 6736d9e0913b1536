package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	trackNameWidth = 22
	// Row geometry: cursor mark, space, two-cell indent, name, space, close
	// affordance, space, body. Mouse hit-testing depends on these offsets.
	localRowIndent = 4
)

type rowKind int

const (
	rowProcess rowKind = iota
	rowLocal
)

// timelineRow is one rendered line of the timeline: a process (global) row
// or a local track row with its resolved props.
type timelineRow struct {
	kind  rowKind
	ref   trackRef
	desc  localTrack
	props trackProps
}

// timelineColumn hosts the track rows. It owns only ephemeral UI state
// (cursor, scroll, filter, the one-shot initial notification); everything
// it shows is resolved fresh from the view state on Rebuild, and every
// interaction leaves as a command message for the reducer.
type timelineColumn struct {
	title  string
	width  int
	height int

	rows   []timelineRow
	cursor int
	offset int
	filter string

	contentOffsetX int
	contentOffsetY int

	initialNoticeDone bool
}

func newTimelineColumn() *timelineColumn {
	return &timelineColumn{
		title:          "Timeline",
		contentOffsetX: 1,
		contentOffsetY: 2,
	}
}

// ResetForProfile re-arms the one-shot initial selection notice. Called
// when a profile finishes loading, before the first Rebuild.
func (c *timelineColumn) ResetForProfile() {
	c.initialNoticeDone = false
	c.cursor = 0
	c.offset = 0
}

// Rebuild re-resolves every row from the current snapshot. On the first
// build after a profile load it reports the first initially-selected row,
// at most once, so a single pane claims initial focus.
func (c *timelineColumn) Rebuild(v *viewState, p *profile, ts *trackSet) tea.Cmd {
	c.rows = c.rows[:0]
	for pi := range ts.Processes {
		pt := &ts.Processes[pi]
		c.rows = append(c.rows, timelineRow{
			kind:  rowProcess,
			ref:   trackRef{Kind: trackRefGlobal, PID: pt.PID, TrackIndex: 0},
			props: resolveGlobalTrack(v, p, pt),
		})
		for ti, desc := range pt.Local {
			props := resolveLocalTrack(v, p, ts, pt.PID, ti, desc)
			if c.filter != "" && !strings.Contains(strings.ToLower(props.Name), strings.ToLower(c.filter)) {
				continue
			}
			c.rows = append(c.rows, timelineRow{
				kind:  rowLocal,
				ref:   trackRef{Kind: trackRefLocal, PID: pt.PID, TrackIndex: ti},
				desc:  desc,
				props: props,
			})
		}
	}
	if c.cursor >= len(c.rows) {
		c.cursor = len(c.rows) - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
	c.clampScroll()

	if c.initialNoticeDone {
		return nil
	}
	c.initialNoticeDone = true
	for _, row := range c.rows {
		if row.props.Selected {
			ref := row.ref
			return func() tea.Msg { return initialPaneSelectedMsg{ref: ref} }
		}
	}
	return nil
}

func (c *timelineColumn) SetFilter(filter string) {
	c.filter = strings.TrimSpace(filter)
}

func (c *timelineColumn) SetSize(width, height int) {
	c.width = width
	if height < 3 {
		height = 3
	}
	c.height = height
	c.clampScroll()
}

func (c *timelineColumn) visibleRows() int {
	rows := c.height - c.contentOffsetY - 1
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (c *timelineColumn) clampScroll() {
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.visibleRows() {
		c.offset = c.cursor - c.visibleRows() + 1
	}
	if c.offset < 0 {
		c.offset = 0
	}
}

func (c *timelineColumn) CurrentRow() (timelineRow, bool) {
	if c.cursor < 0 || c.cursor >= len(c.rows) {
		return timelineRow{}, false
	}
	return c.rows[c.cursor], true
}

func (c *timelineColumn) rowAt(ref trackRef) (timelineRow, bool) {
	for _, row := range c.rows {
		if row.ref == ref {
			return row, true
		}
	}
	return timelineRow{}, false
}

// Update handles keyboard interaction. Activation emits a select command;
// x emits hide; m is the keyboard spelling of ctrl+click and r is the only
// spelling of range-select. Hidden rows keep their place in navigation but
// stay inert.
func (c *timelineColumn) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
		c.clampScroll()
	case "down", "j":
		if c.cursor < len(c.rows)-1 {
			c.cursor++
		}
		c.clampScroll()
	case "pgup":
		c.cursor -= c.visibleRows()
		if c.cursor < 0 {
			c.cursor = 0
		}
		c.clampScroll()
	case "pgdown":
		c.cursor += c.visibleRows()
		if c.cursor > len(c.rows)-1 {
			c.cursor = len(c.rows) - 1
		}
		c.clampScroll()
	case "home", "g":
		c.cursor = 0
		c.clampScroll()
	case "end", "G":
		c.cursor = len(c.rows) - 1
		if c.cursor < 0 {
			c.cursor = 0
		}
		c.clampScroll()
	case "enter", " ":
		return c.selectCurrent(selectionModifiers{})
	case "m":
		return c.selectCurrent(selectionModifiers{Multi: true})
	case "r":
		return c.selectCurrent(selectionModifiers{Range: true})
	case "x":
		return c.hideCurrent()
	}
	return nil
}

func (c *timelineColumn) selectCurrent(mods selectionModifiers) tea.Cmd {
	row, ok := c.CurrentRow()
	if !ok || row.props.Hidden {
		return nil
	}
	ref := row.ref
	return func() tea.Msg { return selectTrackMsg{ref: ref, modifiers: mods} }
}

func (c *timelineColumn) hideCurrent() tea.Cmd {
	row, ok := c.CurrentRow()
	if !ok || row.kind != rowLocal || row.props.Hidden {
		return nil
	}
	ref := row.ref
	return func() tea.Msg { return hideTrackMsg{pid: ref.PID, trackIndex: ref.TrackIndex} }
}

// closeX is the column of the ✕ affordance within a local row line.
func (c *timelineColumn) closeX() int {
	return localRowIndent + trackNameWidth + 1
}

// HandleMouse maps pointer events to commands. A click on the close
// affordance produces only the hide command; it is consumed here and never
// falls through to row selection. Right click produces the context-menu
// command. Hidden rows swallow everything.
func (c *timelineColumn) HandleMouse(localX, localY int, msg tea.MouseMsg) tea.Cmd {
	switch msg.Type {
	case tea.MouseWheelUp:
		if c.offset > 0 {
			c.offset--
		}
		return nil
	case tea.MouseWheelDown:
		if c.offset < len(c.rows)-1 {
			c.offset++
		}
		return nil
	}

	rowIdx := localY - c.contentOffsetY + c.offset
	if rowIdx < 0 || rowIdx >= len(c.rows) {
		return nil
	}
	row := c.rows[rowIdx]
	if row.props.Hidden {
		return nil
	}

	switch msg.Type {
	case tea.MouseLeft:
		c.cursor = rowIdx
		c.clampScroll()
		ref := row.ref
		if row.kind == rowLocal && localX-c.contentOffsetX == c.closeX() {
			return func() tea.Msg { return hideTrackMsg{pid: ref.PID, trackIndex: ref.TrackIndex} }
		}
		// Mouse events at this bubbletea version carry no shift flag, so
		// range-select stays a keyboard gesture (r).
		mods := selectionModifiers{Multi: msg.Ctrl || msg.Alt}
		return func() tea.Msg { return selectTrackMsg{ref: ref, modifiers: mods} }
	case tea.MouseRight:
		c.cursor = rowIdx
		c.clampScroll()
		ref := row.ref
		x, y := msg.X, msg.Y
		return func() tea.Msg { return rightClickTrackMsg{ref: ref, x: x, y: y} }
	}
	return nil
}

func (c *timelineColumn) View(s styles, p *profile, focused bool) string {
	var b strings.Builder
	title := c.title
	if c.filter != "" {
		title += " (filter: " + c.filter + ")"
	}
	b.WriteString(s.columnTitle.Render(title))
	b.WriteRune('\n')

	bodyWidth := c.width - c.closeX() - 4
	if bodyWidth < 0 {
		bodyWidth = 0
	}

	end := c.offset + c.visibleRows()
	if end > len(c.rows) {
		end = len(c.rows)
	}
	for i := c.offset; i < end; i++ {
		b.WriteString(c.renderRow(s, p, i, bodyWidth, focused))
		b.WriteRune('\n')
	}

	content := strings.TrimRight(b.String(), "\n")
	if focused {
		return s.panelFocused.Width(c.width).Height(c.height).Render(content)
	}
	return s.panel.Width(c.width).Height(c.height).Render(content)
}

func (c *timelineColumn) renderRow(s styles, p *profile, idx, bodyWidth int, focused bool) string {
	row := c.rows[idx]
	cur := " "
	if focused && idx == c.cursor {
		cur = "›"
	}

	if row.kind == rowProcess {
		label := cur + " ▾ " + row.props.Name + " (pid " + row.ref.PID + ")"
		if row.props.Selected {
			return s.processRowSel.Render(label)
		}
		return s.processRow.Render(label)
	}

	if row.props.Hidden {
		// Inert placeholder: keeps the row's slot in the list, draws no
		// body, wires no affordance.
		return s.trackHidden.Render(cur + "   " + padName(row.props.Name) + "  (hidden)")
	}

	name := padName(row.props.Name)
	line := cur + "   " + s.trackRow.Render(name)
	if row.props.Selected {
		line = cur + "   " + s.trackRowSel.Render(name)
	}
	line += " " + s.closeAffordance.Render("✕")
	line += " " + s.trackBody.Render(renderTrackBody(row.desc, bodyWidth, p))
	return line
}

func padName(name string) string {
	w := lipgloss.Width(name)
	if w > trackNameWidth {
		runes := []rune(name)
		if len(runes) > trackNameWidth-1 {
			runes = runes[:trackNameWidth-1]
		}
		return string(runes) + "…"
	}
	return name + strings.Repeat(" ", trackNameWidth-w)
}
