package main

import (
	"reflect"
	"testing"
)

// testProfile builds a two-process fixture: pid 7 with a main thread,
// two worker threads, network/IPC/event-delay activity, four counters and
// a custom marker schema; pid 12 with a bare main thread.
func testProfile() *profile {
	return &profile{
		Meta: profileMeta{
			Product:  "Firefox",
			Interval: 1,
			MarkerSchema: []markerSchema{
				{Name: "DOMEvent", Display: []string{"marker-chart", "marker-track"}},
				{Name: "Text", Display: []string{"marker-table"}},
			},
		},
		Threads: []thread{
			{
				Name: "GeckoMain", ProcessName: "Web Content", PID: "7", TID: "70", IsMainThread: true,
				Samples: sampleTable{
					Time:       []float64{0, 10, 20, 30},
					CPUDelta:   []float64{1, 4, 2, 8},
					EventDelay: []float64{0, 2, 1, 5},
					Length:     4,
				},
				Markers: markerTable{
					Name:      []string{"load", "img.png", "ipc-msg", "click", "keydown"},
					Type:      []string{"Network", "Network", "IPC", "DOMEvent", "DOMEvent"},
					StartTime: []float64{1, 5, 12, 20, 25},
					EndTime:   []float64{4, 9, 13, 21, 26},
					Length:    5,
				},
			},
			{
				Name: "Compositor", ProcessName: "Web Content", PID: "7", TID: "71",
				Samples: sampleTable{Time: []float64{0, 10}, CPUDelta: []float64{1, 1}, Length: 2},
			},
			{
				Name: "Renderer", ProcessName: "Web Content", PID: "7", TID: "72",
				Samples: sampleTable{Time: []float64{0, 10}, CPUDelta: []float64{2, 3}, Length: 2},
			},
			{
				Name: "GeckoMain", ProcessName: "Parent Process", PID: "12", TID: "120", IsMainThread: true,
				Samples: sampleTable{Time: []float64{0, 10}, CPUDelta: []float64{1, 2}, Length: 2},
			},
		},
		Counters: []counter{
			{Name: "processCPU", Category: "CPU", PID: "7", Samples: counterTable{Time: []float64{0, 10}, Count: []float64{5, 9}, Length: 2}},
			{Name: "Power", Category: "Power", PID: "7", Samples: counterTable{Time: []float64{0, 10}, Count: []float64{1, 2}, Length: 2}},
			{Name: "Bandwidth", Category: "Bandwidth", PID: "7", Samples: counterTable{Time: []float64{0, 10}, Count: []float64{100, 300}, Length: 2}},
			{Name: "Memory", Category: "Memory", Description: "Memory usage", PID: "7", Samples: counterTable{Time: []float64{0, 10}, Count: []float64{2048, 4096}, Length: 2}},
		},
	}
}

func TestBuildTracksProcessGrouping(t *testing.T) {
	ts := buildTracks(testProfile())

	if len(ts.Processes) != 2 {
		t.Fatalf("expected 2 processes, got %d", len(ts.Processes))
	}
	// pids sort lexically, so "12" precedes "7"
	if ts.Processes[0].PID != "12" || ts.Processes[1].PID != "7" {
		t.Fatalf("unexpected process order: %s, %s", ts.Processes[0].PID, ts.Processes[1].PID)
	}
	if ts.Processes[1].MainThreadIndex != 0 {
		t.Errorf("pid 7 main thread index = %d, want 0", ts.Processes[1].MainThreadIndex)
	}
	if ts.Processes[0].Label != "Parent Process" {
		t.Errorf("pid 12 label = %q", ts.Processes[0].Label)
	}
}

func TestBuildTracksLocalOrder(t *testing.T) {
	ts := buildTracks(testProfile())
	pt := ts.process("7")
	if pt == nil {
		t.Fatal("no process 7")
	}

	var got []trackType
	for _, desc := range pt.Local {
		got = append(got, desc.Type)
	}
	want := []trackType{
		trackNetwork,
		trackThread, trackThread,
		trackIPC,
		trackEventDelay,
		trackProcessCPU, trackPower, trackBandwidth, trackMemory,
		trackMarker,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("local track order = %v, want %v", got, want)
	}

	marker := pt.Local[len(pt.Local)-1]
	if marker.MarkerSchema != "DOMEvent" || marker.ThreadIndex != 0 {
		t.Errorf("marker track = %+v", marker)
	}
}

func TestBuildTracksNames(t *testing.T) {
	ts := buildTracks(testProfile())

	cases := []struct {
		trackIndex int
		want       string
	}{
		{0, "Network"},
		{1, "Compositor"},
		{2, "Renderer"},
		{3, "IPC — GeckoMain"},
		{4, "Event Delay"},
		{8, "Memory"},
		{9, "DOMEvent"},
	}
	for _, tc := range cases {
		if got := ts.trackName("7", tc.trackIndex); got != tc.want {
			t.Errorf("trackName(7, %d) = %q, want %q", tc.trackIndex, got, tc.want)
		}
	}
}

func TestBuildTracksSkipsAbsentFeatures(t *testing.T) {
	p := testProfile()
	// Strip markers and event delay from the main thread: the derived
	// tracks must disappear with them.
	p.Threads[0].Markers = markerTable{}
	p.Threads[0].Samples.EventDelay = nil

	ts := buildTracks(p)
	pt := ts.process("7")
	for _, desc := range pt.Local {
		switch desc.Type {
		case trackNetwork, trackIPC, trackEventDelay, trackMarker:
			t.Errorf("unexpected %v track for thread without backing data", desc.Type)
		}
	}
}

func TestProcessDetails(t *testing.T) {
	p := testProfile()
	got := p.processDetails(0)
	want := "GeckoMain — Web Content (pid 7, tid 70)"
	if got != want {
		t.Errorf("processDetails(0) = %q, want %q", got, want)
	}
	if p.processDetails(99) != "" {
		t.Error("out-of-range thread index should yield empty details")
	}
}

func TestCounterDescription(t *testing.T) {
	p := testProfile()
	if got := p.counterDescription(3); got != "Memory — Memory usage" {
		t.Errorf("counterDescription(3) = %q", got)
	}
	if got := p.counterDescription(0); got != "processCPU" {
		t.Errorf("counterDescription(0) = %q", got)
	}
}
