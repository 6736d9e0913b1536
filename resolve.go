package main

import "fmt"

// trackProps are the derived per-row values: display name, tooltip title
// (empty when the variant has none), and the selected/hidden booleans.
type trackProps struct {
	Name     string
	Title    string
	Selected bool
	Hidden   bool
}

// resolveLocalTrack computes a local row's derived state from the current
// view-state snapshot. Selection rules are variant-specific and must agree
// with the active tab: a thread track is deselected while the network tab
// is up even when its thread is in the selected set, the network track is
// selected only there, and marker/IPC tracks only on the marker chart.
//
// The variant set is closed; reaching the default case means a descriptor
// was built with a tag this switch does not know, which is a programming
// error, so it panics rather than guessing.
func resolveLocalTrack(v *viewState, p *profile, ts *trackSet, pid string, trackIndex int, desc localTrack) trackProps {
	props := trackProps{
		Name:   ts.trackName(pid, trackIndex),
		Hidden: v.trackHidden(pid, trackIndex),
	}

	switch desc.Type {
	case trackThread:
		props.Selected = v.threadSelected(desc.ThreadIndex) && v.activeTab != tabNetwork
		props.Title = p.processDetails(desc.ThreadIndex)
	case trackNetwork:
		props.Selected = v.threadSelected(desc.ThreadIndex) && v.activeTab == tabNetwork
	case trackIPC, trackMarker:
		props.Selected = v.threadSelected(desc.ThreadIndex) && v.activeTab == tabMarkerChart
	case trackEventDelay:
		// Upstream compares the thread index against the boolean result of
		// the selected-set lookup, so the track can never read as selected.
		// Preserved as observable behavior rather than silently corrected.
		props.Selected = false
		props.Title = "Event Delay of " + p.processDetails(desc.ThreadIndex)
	case trackMemory, trackBandwidth, trackProcessCPU, trackPower:
		props.Title = p.counterDescription(desc.CounterIndex)
	default:
		panic(fmt.Sprintf("unhandled track type %v for track %s/%d", desc.Type, pid, trackIndex))
	}

	return props
}

// resolveGlobalTrack derives the process row's state: selected when its
// main thread is, on any tab.
func resolveGlobalTrack(v *viewState, p *profile, pt *processTracks) trackProps {
	props := trackProps{Name: pt.Label}
	if pt.MainThreadIndex >= 0 {
		props.Selected = v.threadSelected(pt.MainThreadIndex)
		props.Title = p.processDetails(pt.MainThreadIndex)
	}
	return props
}
