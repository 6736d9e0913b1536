package main

import "sort"

// tabID identifies the active analysis tab. Selection semantics depend on
// it: thread tracks deselect on the network tab, network tracks select only
// there, and marker/IPC tracks select only on the marker chart.
type tabID string

const (
	tabCalltree    tabID = "calltree"
	tabFlameGraph  tabID = "flame-graph"
	tabStackChart  tabID = "stack-chart"
	tabMarkerChart tabID = "marker-chart"
	tabMarkerTable tabID = "marker-table"
	tabNetwork     tabID = "network-chart"
)

var tabOrder = []tabID{
	tabCalltree,
	tabFlameGraph,
	tabStackChart,
	tabMarkerChart,
	tabMarkerTable,
	tabNetwork,
}

func tabLabel(t tabID) string {
	switch t {
	case tabCalltree:
		return "Call Tree"
	case tabFlameGraph:
		return "Flame Graph"
	case tabStackChart:
		return "Stack Chart"
	case tabMarkerChart:
		return "Marker Chart"
	case tabMarkerTable:
		return "Marker Table"
	case tabNetwork:
		return "Network"
	default:
		return string(t)
	}
}

// viewState is the shared selection state the timeline reads. It is mutated
// only by the reducer methods below, driven by command messages in
// model.Update; rows read it as a synchronous snapshot at render time.
type viewState struct {
	selectedThreads map[int]bool
	activeTab       tabID
	hiddenTracks    map[string]map[int]bool
	rightClicked    *trackRef
	lastSelected    *trackRef
}

func newViewState() *viewState {
	return &viewState{
		selectedThreads: make(map[int]bool),
		activeTab:       tabCalltree,
		hiddenTracks:    make(map[string]map[int]bool),
	}
}

func (v *viewState) threadSelected(threadIndex int) bool {
	return v.selectedThreads[threadIndex]
}

func (v *viewState) selectedThreadList() []int {
	out := make([]int, 0, len(v.selectedThreads))
	for ti := range v.selectedThreads {
		out = append(out, ti)
	}
	sort.Ints(out)
	return out
}

func (v *viewState) trackHidden(pid string, trackIndex int) bool {
	return v.hiddenTracks[pid][trackIndex]
}

func (v *viewState) hiddenCount() int {
	n := 0
	for _, set := range v.hiddenTracks {
		n += len(set)
	}
	return n
}

// Command messages. Each is fire-and-forget: emitted by a component as a
// tea.Msg, applied by the reducer on the next Update pass.

type selectTrackMsg struct {
	ref       trackRef
	modifiers selectionModifiers
}

type hideTrackMsg struct {
	pid        string
	trackIndex int
}

type showAllTracksMsg struct {
	pid string
}

type hideOtherTracksMsg struct {
	pid  string
	keep int
}

type rightClickTrackMsg struct {
	ref trackRef
	x   int
	y   int
}

type selectTabMsg struct {
	tab tabID
}

// initialPaneSelectedMsg is the mount notification: the timeline column
// sends it at most once per loaded profile, for the first row that resolves
// selected, so only one pane claims initial focus.
type initialPaneSelectedMsg struct {
	ref trackRef
}

// applySelect implements select-track over the derived track set. A plain
// activation replaces the selected thread set with the track's thread;
// Multi toggles membership; Range selects every thread between the
// previously selected row and this one within the same process.
func (v *viewState) applySelect(ts *trackSet, msg selectTrackMsg) {
	threads := trackThreadIndexes(ts, msg.ref)
	if len(threads) == 0 {
		// Counter-backed tracks carry no thread; selection is a no-op
		// beyond remembering the row for range anchoring.
		v.lastSelected = &msg.ref
		return
	}

	switch {
	case msg.modifiers.Multi:
		for _, ti := range threads {
			if v.selectedThreads[ti] {
				delete(v.selectedThreads, ti)
			} else {
				v.selectedThreads[ti] = true
			}
		}
	case msg.modifiers.Range && v.lastSelected != nil && v.lastSelected.PID == msg.ref.PID:
		for _, ti := range rangeThreadIndexes(ts, *v.lastSelected, msg.ref) {
			v.selectedThreads[ti] = true
		}
	default:
		v.selectedThreads = make(map[int]bool)
		for _, ti := range threads {
			v.selectedThreads[ti] = true
		}
	}
	v.lastSelected = &msg.ref
}

func (v *viewState) applyHide(msg hideTrackMsg) {
	set := v.hiddenTracks[msg.pid]
	if set == nil {
		set = make(map[int]bool)
		v.hiddenTracks[msg.pid] = set
	}
	set[msg.trackIndex] = true
}

// applyHideOthers hides every local track in the process except the kept one.
func (v *viewState) applyHideOthers(ts *trackSet, msg hideOtherTracksMsg) {
	pt := ts.process(msg.pid)
	if pt == nil {
		return
	}
	set := make(map[int]bool)
	for i := range pt.Local {
		if i != msg.keep {
			set[i] = true
		}
	}
	v.hiddenTracks[msg.pid] = set
}

func (v *viewState) applyShowAll(pid string) {
	if pid == "" {
		v.hiddenTracks = make(map[string]map[int]bool)
		return
	}
	delete(v.hiddenTracks, pid)
}

func (v *viewState) applyRightClick(ref trackRef) {
	r := ref
	v.rightClicked = &r
}

func (v *viewState) clearRightClick() {
	v.rightClicked = nil
}

func (v *viewState) applyTab(tab tabID) {
	v.activeTab = tab
}

// trackThreadIndexes returns the thread indexes a row contributes to the
// selected set: the main thread for a global row, the descriptor's thread
// for thread-backed locals, nothing for counter tracks.
func trackThreadIndexes(ts *trackSet, ref trackRef) []int {
	pt := ts.process(ref.PID)
	if pt == nil {
		return nil
	}
	if ref.Kind == trackRefGlobal {
		if pt.MainThreadIndex < 0 {
			return nil
		}
		return []int{pt.MainThreadIndex}
	}
	desc, ok := ts.localTrack(ref)
	if !ok || !desc.hasThread() {
		return nil
	}
	return []int{desc.ThreadIndex}
}

func rangeThreadIndexes(ts *trackSet, from, to trackRef) []int {
	lo, hi := from.TrackIndex, to.TrackIndex
	if from.Kind == trackRefGlobal {
		lo = 0
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	var out []int
	for i := lo; i <= hi; i++ {
		out = append(out, trackThreadIndexes(ts, trackRef{Kind: trackRefLocal, PID: to.PID, TrackIndex: i})...)
	}
	out = append(out, trackThreadIndexes(ts, from)...)
	out = append(out, trackThreadIndexes(ts, to)...)
	return out
}
