package main

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderTrackBodyPerType(t *testing.T) {
	p := testProfile()
	ts := buildTracks(p)
	proc := ts.process("7")
	if proc == nil {
		t.Fatal("process 7 missing")
	}
	const width = 12
	for i, desc := range proc.Local {
		body := renderTrackBody(desc, width, p)
		if got := lipgloss.Width(body); got != width && got != 0 {
			t.Errorf("track %d (%s): body width %d", i, desc.Type, got)
		}
		switch desc.Type {
		case trackThread, trackNetwork, trackMarker:
			if strings.TrimSpace(body) == "" {
				t.Errorf("track %d (%s): expected activity, got blank strip", i, desc.Type)
			}
		}
	}
}

func TestRenderTrackBodyUnknownType(t *testing.T) {
	p := testProfile()
	desc := localTrack{Type: trackType(42)}
	// must not panic even with no logger installed
	setDefaultEventLogger(nil)
	if got := renderTrackBody(desc, 10, p); got != "" {
		t.Errorf("unknown track type rendered %q, want empty", got)
	}
}

func TestRenderTrackBodyOutOfRange(t *testing.T) {
	p := testProfile()
	cases := []localTrack{
		{Type: trackThread, ThreadIndex: 99},
		{Type: trackProcessCPU, CounterIndex: 99},
		{Type: trackEventDelay, ThreadIndex: -1},
		{Type: trackIPC, ThreadIndex: 99},
	}
	for _, desc := range cases {
		if got := renderTrackBody(desc, 10, p); got != "" {
			t.Errorf("%s with bad index rendered %q", desc.Type, got)
		}
	}
}

func TestRenderTrackBodyZeroWidth(t *testing.T) {
	p := testProfile()
	if got := renderTrackBody(localTrack{Type: trackThread}, 0, p); got != "" {
		t.Errorf("zero width rendered %q", got)
	}
}
