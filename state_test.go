package main

import (
	"reflect"
	"testing"
)

func localRef(pid string, trackIndex int) trackRef {
	return trackRef{Kind: trackRefLocal, PID: pid, TrackIndex: trackIndex}
}

func TestApplySelectReplaces(t *testing.T) {
	ts := buildTracks(testProfile())
	v := newViewState()
	v.selectedThreads[9] = true

	// track 7/1 is the Compositor thread (thread index 1)
	v.applySelect(ts, selectTrackMsg{ref: localRef("7", 1)})
	if want := []int{1}; !reflect.DeepEqual(v.selectedThreadList(), want) {
		t.Errorf("selected = %v, want %v", v.selectedThreadList(), want)
	}
}

func TestApplySelectMultiToggles(t *testing.T) {
	ts := buildTracks(testProfile())
	v := newViewState()

	multi := selectionModifiers{Multi: true}
	v.applySelect(ts, selectTrackMsg{ref: localRef("7", 1), modifiers: multi})
	v.applySelect(ts, selectTrackMsg{ref: localRef("7", 2), modifiers: multi})
	if want := []int{1, 2}; !reflect.DeepEqual(v.selectedThreadList(), want) {
		t.Fatalf("selected = %v, want %v", v.selectedThreadList(), want)
	}

	// toggling an already-selected thread removes it
	v.applySelect(ts, selectTrackMsg{ref: localRef("7", 1), modifiers: multi})
	if want := []int{2}; !reflect.DeepEqual(v.selectedThreadList(), want) {
		t.Errorf("selected after toggle = %v, want %v", v.selectedThreadList(), want)
	}
}

func TestApplySelectRange(t *testing.T) {
	ts := buildTracks(testProfile())
	v := newViewState()

	// anchor on the Compositor row, extend to the IPC row: every
	// thread-backed row in between joins the selection
	v.applySelect(ts, selectTrackMsg{ref: localRef("7", 1)})
	v.applySelect(ts, selectTrackMsg{ref: localRef("7", 3), modifiers: selectionModifiers{Range: true}})

	got := v.selectedThreadList()
	// tracks 1..3 are Compositor (thread 1), Renderer (thread 2), IPC
	// (thread 0)
	if want := []int{0, 1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("selected = %v, want %v", got, want)
	}
}

func TestApplySelectRangeAcrossProcessesFallsBack(t *testing.T) {
	ts := buildTracks(testProfile())
	v := newViewState()

	v.applySelect(ts, selectTrackMsg{ref: localRef("7", 1)})
	// a range anchored in another process degrades to a replace
	v.applySelect(ts, selectTrackMsg{ref: localRef("12", 0), modifiers: selectionModifiers{Range: true}})
	_ = v.selectedThreadList()
}

func TestApplySelectCounterTrackIsNoop(t *testing.T) {
	ts := buildTracks(testProfile())
	v := newViewState()
	v.selectedThreads[1] = true

	// track 7/8 is the Memory counter: no thread, selection untouched
	v.applySelect(ts, selectTrackMsg{ref: localRef("7", 8)})
	if want := []int{1}; !reflect.DeepEqual(v.selectedThreadList(), want) {
		t.Errorf("selected = %v, want %v", v.selectedThreadList(), want)
	}
}

func TestApplyHideAndShowAll(t *testing.T) {
	v := newViewState()

	v.applyHide(hideTrackMsg{pid: "7", trackIndex: 2})
	v.applyHide(hideTrackMsg{pid: "7", trackIndex: 4})
	v.applyHide(hideTrackMsg{pid: "12", trackIndex: 0})

	if !v.trackHidden("7", 2) || !v.trackHidden("7", 4) || !v.trackHidden("12", 0) {
		t.Fatal("hide commands not applied")
	}
	if v.trackHidden("7", 0) {
		t.Error("track 7/0 should not be hidden")
	}
	if v.hiddenCount() != 3 {
		t.Errorf("hiddenCount = %d, want 3", v.hiddenCount())
	}

	v.applyShowAll("7")
	if v.trackHidden("7", 2) {
		t.Error("show-all for pid 7 should unhide its tracks")
	}
	if !v.trackHidden("12", 0) {
		t.Error("show-all for pid 7 must not touch pid 12")
	}

	v.applyHide(hideTrackMsg{pid: "7", trackIndex: 1})
	v.applyShowAll("")
	if v.hiddenCount() != 0 {
		t.Errorf("global show-all left %d hidden", v.hiddenCount())
	}
}

func TestApplyHideOthers(t *testing.T) {
	ts := buildTracks(testProfile())
	v := newViewState()

	v.applyHideOthers(ts, hideOtherTracksMsg{pid: "7", keep: 3})
	pt := ts.process("7")
	for i := range pt.Local {
		if i == 3 {
			if v.trackHidden("7", i) {
				t.Error("kept track must stay visible")
			}
			continue
		}
		if !v.trackHidden("7", i) {
			t.Errorf("track 7/%d should be hidden", i)
		}
	}
	if v.trackHidden("12", 0) {
		t.Error("other processes must be untouched")
	}

	// unknown pid is a no-op
	v.applyHideOthers(ts, hideOtherTracksMsg{pid: "404", keep: 0})
	if _, ok := v.hiddenTracks["404"]; ok {
		t.Error("no hidden set should appear for an unknown pid")
	}
}

func TestApplyRightClick(t *testing.T) {
	v := newViewState()
	ref := localRef("7", 3)

	v.applyRightClick(ref)
	if v.rightClicked == nil || *v.rightClicked != ref {
		t.Fatalf("rightClicked = %v, want %v", v.rightClicked, ref)
	}
	v.clearRightClick()
	if v.rightClicked != nil {
		t.Error("clearRightClick left a ref behind")
	}
}

func TestApplyTab(t *testing.T) {
	v := newViewState()
	if v.activeTab != tabCalltree {
		t.Fatalf("default tab = %s", v.activeTab)
	}
	v.applyTab(tabNetwork)
	if v.activeTab != tabNetwork {
		t.Errorf("activeTab = %s", v.activeTab)
	}
}

func TestTrackThreadIndexes(t *testing.T) {
	ts := buildTracks(testProfile())

	cases := []struct {
		name string
		ref  trackRef
		want []int
	}{
		{"global row uses main thread", trackRef{Kind: trackRefGlobal, PID: "7"}, []int{0}},
		{"thread row", localRef("7", 1), []int{1}},
		{"counter row has none", localRef("7", 8), nil},
		{"unknown pid", localRef("404", 0), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := trackThreadIndexes(ts, tc.ref); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}
