package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func buildTimeline(t *testing.T, v *viewState) (*timelineColumn, *profile, *trackSet) {
	t.Helper()
	p := testProfile()
	ts := buildTracks(p)
	c := newTimelineColumn()
	c.SetSize(100, 30)
	c.Rebuild(v, p, ts)
	return c, p, ts
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	return cmd()
}

func TestTimelineRebuildRows(t *testing.T) {
	c, _, _ := buildTimeline(t, newViewState())

	// two process rows plus pid 7's ten local tracks
	if len(c.rows) != 12 {
		t.Fatalf("row count = %d, want 12", len(c.rows))
	}
	if c.rows[0].kind != rowProcess || c.rows[0].ref.PID != "12" {
		t.Errorf("row 0 = %+v", c.rows[0].ref)
	}
	if c.rows[1].kind != rowProcess || c.rows[1].ref.PID != "7" {
		t.Errorf("row 1 = %+v", c.rows[1].ref)
	}
	for i := 2; i < 12; i++ {
		if c.rows[i].kind != rowLocal || c.rows[i].ref.TrackIndex != i-2 {
			t.Errorf("row %d = %+v", i, c.rows[i].ref)
		}
	}
}

func TestTimelineInitialNoticeOnce(t *testing.T) {
	v := newViewState()
	v.selectedThreads[0] = true // pid 7 main thread
	c, p, ts := buildTimeline(t, v)

	// buildTimeline already ran the first Rebuild; re-arm and watch it fire.
	c.ResetForProfile()
	msg := runCmd(t, c.Rebuild(v, p, ts))
	notice, ok := msg.(initialPaneSelectedMsg)
	if !ok {
		t.Fatalf("got %T, want initialPaneSelectedMsg", msg)
	}
	want := trackRef{Kind: trackRefGlobal, PID: "7", TrackIndex: 0}
	if notice.ref != want {
		t.Errorf("notice ref = %v, want %v", notice.ref, want)
	}

	if cmd := c.Rebuild(v, p, ts); cmd != nil {
		t.Error("second rebuild must not re-announce")
	}

	c.ResetForProfile()
	if cmd := c.Rebuild(v, p, ts); cmd == nil {
		t.Error("ResetForProfile should re-arm the notice")
	}
}

func TestTimelineCloseClickOnlyHides(t *testing.T) {
	c, _, _ := buildTimeline(t, newViewState())

	// row 2 is pid 7's network track; aim at the ✕ cell
	localY := 2 + c.contentOffsetY
	localX := c.closeX() + c.contentOffsetX
	msg := runCmd(t, c.HandleMouse(localX, localY, tea.MouseMsg{Type: tea.MouseLeft}))
	hide, ok := msg.(hideTrackMsg)
	if !ok {
		t.Fatalf("close click produced %T, want hideTrackMsg", msg)
	}
	if hide.pid != "7" || hide.trackIndex != 0 {
		t.Errorf("hide = %+v", hide)
	}
}

func TestTimelineClickSelects(t *testing.T) {
	c, _, _ := buildTimeline(t, newViewState())
	localY := 2 + c.contentOffsetY

	msg := runCmd(t, c.HandleMouse(5, localY, tea.MouseMsg{Type: tea.MouseLeft}))
	sel, ok := msg.(selectTrackMsg)
	if !ok {
		t.Fatalf("click produced %T, want selectTrackMsg", msg)
	}
	want := trackRef{Kind: trackRefLocal, PID: "7", TrackIndex: 0}
	if sel.ref != want || sel.modifiers.Multi || sel.modifiers.Range {
		t.Errorf("select = %+v", sel)
	}

	msg = runCmd(t, c.HandleMouse(5, localY, tea.MouseMsg{Type: tea.MouseLeft, Ctrl: true}))
	if sel := msg.(selectTrackMsg); !sel.modifiers.Multi {
		t.Error("ctrl click should set Multi")
	}
	msg = runCmd(t, c.HandleMouse(5, localY, tea.MouseMsg{Type: tea.MouseLeft, Alt: true}))
	sel, ok = msg.(selectTrackMsg)
	if !ok || !sel.modifiers.Multi {
		t.Error("alt click should set Multi")
	}
	// range-select has no mouse spelling; no click may set it
	if sel.modifiers.Range {
		t.Error("mouse clicks must never set Range")
	}
}

func TestTimelineRightClick(t *testing.T) {
	c, _, _ := buildTimeline(t, newViewState())
	localY := 3 + c.contentOffsetY // Compositor row
	msg := runCmd(t, c.HandleMouse(5, localY, tea.MouseMsg{Type: tea.MouseRight, X: 40, Y: 9}))
	rc, ok := msg.(rightClickTrackMsg)
	if !ok {
		t.Fatalf("right click produced %T", msg)
	}
	want := trackRef{Kind: trackRefLocal, PID: "7", TrackIndex: 1}
	if rc.ref != want || rc.x != 40 || rc.y != 9 {
		t.Errorf("right click = %+v", rc)
	}
}

func TestTimelineHiddenRowInert(t *testing.T) {
	v := newViewState()
	v.applyHide(hideTrackMsg{pid: "7", trackIndex: 0})
	c, _, _ := buildTimeline(t, v)

	localY := 2 + c.contentOffsetY
	if cmd := c.HandleMouse(5, localY, tea.MouseMsg{Type: tea.MouseLeft}); cmd != nil {
		t.Error("click on hidden row should be swallowed")
	}
	if cmd := c.HandleMouse(c.closeX()+c.contentOffsetX, localY, tea.MouseMsg{Type: tea.MouseLeft}); cmd != nil {
		t.Error("close affordance on hidden row should be inert")
	}

	c.cursor = 2
	if cmd := c.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("enter on hidden row should be inert")
	}
	if cmd := c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}); cmd != nil {
		t.Error("x on hidden row should be inert")
	}
}

func TestTimelineKeyboardCommands(t *testing.T) {
	c, _, _ := buildTimeline(t, newViewState())

	// cursor starts on the pid 12 process row; x only hides local tracks
	if cmd := c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}); cmd != nil {
		t.Error("x on a process row should do nothing")
	}

	c.Update(tea.KeyMsg{Type: tea.KeyDown})
	c.Update(tea.KeyMsg{Type: tea.KeyDown})
	if c.cursor != 2 {
		t.Fatalf("cursor = %d after two downs", c.cursor)
	}

	msg := runCmd(t, c.Update(tea.KeyMsg{Type: tea.KeyEnter}))
	sel, ok := msg.(selectTrackMsg)
	if !ok || sel.ref.TrackIndex != 0 || sel.modifiers != (selectionModifiers{}) {
		t.Fatalf("enter produced %#v", msg)
	}

	msg = runCmd(t, c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")}))
	if sel := msg.(selectTrackMsg); !sel.modifiers.Multi {
		t.Error("m should select with Multi")
	}
	msg = runCmd(t, c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}))
	if sel := msg.(selectTrackMsg); !sel.modifiers.Range {
		t.Error("r should select with Range")
	}

	msg = runCmd(t, c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}))
	hide, ok := msg.(hideTrackMsg)
	if !ok || hide.pid != "7" || hide.trackIndex != 0 {
		t.Fatalf("x produced %#v", msg)
	}
}

func TestTimelineFilter(t *testing.T) {
	v := newViewState()
	p := testProfile()
	ts := buildTracks(p)
	c := newTimelineColumn()
	c.SetSize(100, 30)
	c.SetFilter("comp")
	c.Rebuild(v, p, ts)

	var locals int
	for _, row := range c.rows {
		if row.kind == rowLocal {
			locals++
			if row.props.Name != "Compositor" {
				t.Errorf("filter let through %q", row.props.Name)
			}
		}
	}
	if locals != 1 {
		t.Errorf("filtered local rows = %d, want 1", locals)
	}
}

func TestTimelineWheelScroll(t *testing.T) {
	c, _, _ := buildTimeline(t, newViewState())

	c.HandleMouse(0, 0, tea.MouseMsg{Type: tea.MouseWheelDown})
	if c.offset != 1 {
		t.Errorf("offset after wheel down = %d", c.offset)
	}
	c.HandleMouse(0, 0, tea.MouseMsg{Type: tea.MouseWheelUp})
	if c.offset != 0 {
		t.Errorf("offset after wheel up = %d", c.offset)
	}
}
