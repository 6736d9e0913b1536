package main

import "fmt"

// trackType tags the closed set of local track variants. Adding a variant
// requires updating resolveLocalTrack and renderTrackBody, both of which
// switch exhaustively over the tag.
type trackType int

const (
	trackThread trackType = iota
	trackNetwork
	trackMemory
	trackBandwidth
	trackIPC
	trackEventDelay
	trackProcessCPU
	trackPower
	trackMarker
)

func (t trackType) String() string {
	switch t {
	case trackThread:
		return "thread"
	case trackNetwork:
		return "network"
	case trackMemory:
		return "memory"
	case trackBandwidth:
		return "bandwidth"
	case trackIPC:
		return "ipc"
	case trackEventDelay:
		return "event-delay"
	case trackProcessCPU:
		return "process-cpu"
	case trackPower:
		return "power"
	case trackMarker:
		return "marker"
	default:
		return fmt.Sprintf("trackType(%d)", int(t))
	}
}

// localTrack describes one timeline row nested under a process. The payload
// fields are variant-specific: thread-backed variants carry ThreadIndex,
// counter-backed variants carry CounterIndex, and marker tracks carry the
// thread plus the schema/name pair identifying the custom marker set.
type localTrack struct {
	Type trackType

	ThreadIndex  int
	CounterIndex int

	MarkerSchema string
	MarkerName   string
}

func (t localTrack) hasThread() bool {
	switch t.Type {
	case trackThread, trackNetwork, trackIPC, trackEventDelay, trackMarker:
		return true
	default:
		return false
	}
}

func (t localTrack) hasCounter() bool {
	switch t.Type {
	case trackMemory, trackBandwidth, trackProcessCPU, trackPower:
		return true
	default:
		return false
	}
}

type trackRefKind int

const (
	trackRefGlobal trackRefKind = iota
	trackRefLocal
)

func (k trackRefKind) String() string {
	if k == trackRefGlobal {
		return "global"
	}
	return "local"
}

// trackRef addresses a row independently of its descriptor: the process it
// belongs to and its index within that process's track list. Commands sent
// to the reducer carry it.
type trackRef struct {
	Kind       trackRefKind
	PID        string
	TrackIndex int
}

func (r trackRef) String() string {
	return fmt.Sprintf("%s:%s/%d", r.Kind, r.PID, r.TrackIndex)
}

// selectionModifiers are the keyboard/mouse modifier flags that alter click
// semantics: Multi toggles membership (ctrl/cmd), Range extends from the
// previous selection (shift).
type selectionModifiers struct {
	Multi bool
	Range bool
}
