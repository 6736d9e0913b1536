package main

import (
	"fmt"
	"sort"
)

// Marker types that promote a thread into extra local tracks.
const (
	markerTypeNetwork = "Network"
	markerTypeIPC     = "IPC"
)

// Counter categories, as emitted by Gecko.
const (
	counterCategoryMemory    = "Memory"
	counterCategoryBandwidth = "Bandwidth"
	counterCategoryCPU       = "CPU"
	counterCategoryPower     = "Power"
)

// processTracks is one process group in the timeline: the global row backed
// by the process's main thread, plus the ordered local track list beneath it.
type processTracks struct {
	PID             string
	Label           string
	MainThreadIndex int
	Local           []localTrack
}

type nameKey struct {
	pid        string
	trackIndex int
}

// trackSet is the full derived timeline: process groups in pid order and the
// display-name table keyed by track identity, which the resolver consults
// independently of the descriptor variant.
type trackSet struct {
	Processes []processTracks
	names     map[nameKey]string
}

func (ts *trackSet) trackName(pid string, trackIndex int) string {
	return ts.names[nameKey{pid: pid, trackIndex: trackIndex}]
}

func (ts *trackSet) setName(pid string, trackIndex int, name string) {
	ts.names[nameKey{pid: pid, trackIndex: trackIndex}] = name
}

func (ts *trackSet) process(pid string) *processTracks {
	for i := range ts.Processes {
		if ts.Processes[i].PID == pid {
			return &ts.Processes[i]
		}
	}
	return nil
}

func (ts *trackSet) localTrack(ref trackRef) (localTrack, bool) {
	pt := ts.process(ref.PID)
	if pt == nil || ref.TrackIndex < 0 || ref.TrackIndex >= len(pt.Local) {
		return localTrack{}, false
	}
	return pt.Local[ref.TrackIndex], true
}

// buildTracks derives the timeline rows from a profile. Per process: the
// main thread becomes the global row; local rows are the network track of
// the main thread, the remaining threads, IPC tracks for threads carrying
// IPC markers, an event-delay track when the main thread records event
// delays, the process's counters grouped by category, and one custom marker
// track per schema that requests track display.
func buildTracks(p *profile) *trackSet {
	ts := &trackSet{names: make(map[nameKey]string)}

	byPID := make(map[string][]int)
	var pids []string
	for i, th := range p.Threads {
		pid := th.PID.String()
		if _, seen := byPID[pid]; !seen {
			pids = append(pids, pid)
		}
		byPID[pid] = append(byPID[pid], i)
	}
	sort.Strings(pids)

	for _, pid := range pids {
		threadIdxs := byPID[pid]
		pt := processTracks{PID: pid, MainThreadIndex: -1}

		for _, ti := range threadIdxs {
			if p.Threads[ti].IsMainThread {
				pt.MainThreadIndex = ti
				break
			}
		}
		if pt.MainThreadIndex >= 0 {
			main := p.Threads[pt.MainThreadIndex]
			pt.Label = main.ProcessName
			if pt.Label == "" {
				pt.Label = main.Name
			}
		} else {
			pt.Label = fmt.Sprintf("Process %s", pid)
		}

		addLocal := func(t localTrack, name string) {
			ts.setName(pid, len(pt.Local), name)
			pt.Local = append(pt.Local, t)
		}

		if pt.MainThreadIndex >= 0 {
			main := p.Threads[pt.MainThreadIndex]
			if main.Markers.countType(markerTypeNetwork) > 0 {
				addLocal(localTrack{Type: trackNetwork, ThreadIndex: pt.MainThreadIndex}, "Network")
			}
		}

		for _, ti := range threadIdxs {
			if ti == pt.MainThreadIndex {
				continue
			}
			addLocal(localTrack{Type: trackThread, ThreadIndex: ti}, p.Threads[ti].Name)
		}

		for _, ti := range threadIdxs {
			if p.Threads[ti].Markers.countType(markerTypeIPC) > 0 {
				addLocal(localTrack{Type: trackIPC, ThreadIndex: ti},
					fmt.Sprintf("IPC — %s", p.Threads[ti].Name))
			}
		}

		if pt.MainThreadIndex >= 0 && len(p.Threads[pt.MainThreadIndex].Samples.EventDelay) > 0 {
			addLocal(localTrack{Type: trackEventDelay, ThreadIndex: pt.MainThreadIndex}, "Event Delay")
		}

		for ci, c := range p.Counters {
			if c.PID.String() != pid {
				continue
			}
			switch c.Category {
			case counterCategoryMemory:
				addLocal(localTrack{Type: trackMemory, CounterIndex: ci}, c.Name)
			case counterCategoryBandwidth:
				addLocal(localTrack{Type: trackBandwidth, CounterIndex: ci}, c.Name)
			case counterCategoryCPU:
				addLocal(localTrack{Type: trackProcessCPU, CounterIndex: ci}, c.Name)
			case counterCategoryPower:
				addLocal(localTrack{Type: trackPower, CounterIndex: ci}, c.Name)
			}
		}

		if pt.MainThreadIndex >= 0 {
			main := p.Threads[pt.MainThreadIndex]
			for _, schema := range p.Meta.MarkerSchema {
				if !schema.hasTrackDisplay() {
					continue
				}
				if main.Markers.countType(schema.Name) == 0 {
					continue
				}
				addLocal(localTrack{
					Type:         trackMarker,
					ThreadIndex:  pt.MainThreadIndex,
					MarkerSchema: schema.Name,
					MarkerName:   schema.Name,
				}, schema.Name)
			}
		}

		ts.Processes = append(ts.Processes, pt)
	}

	return ts
}
