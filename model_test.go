package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestFocusCycling(t *testing.T) {
	m := &model{keys: newKeyMap()}
	next := tea.KeyMsg{Type: tea.KeyTab}
	prev := tea.KeyMsg{Type: tea.KeyShiftTab}

	if m.focus != focusTimeline {
		t.Fatalf("initial focus = %v", m.focus)
	}

	if handled, _ := m.handleGlobalKey(next); !handled || m.focus != focusDetail {
		t.Fatalf("after tab: handled=%v focus=%v", handled, m.focus)
	}
	if handled, _ := m.handleGlobalKey(next); !handled || m.focus != focusTimeline {
		t.Fatalf("tab must wrap: focus=%v", m.focus)
	}

	// shift+tab walks the other way, wrapping to the last pane
	if handled, _ := m.handleGlobalKey(prev); !handled || m.focus != focusDetail {
		t.Fatalf("after shift+tab: handled=%v focus=%v", handled, m.focus)
	}
	if handled, _ := m.handleGlobalKey(prev); !handled || m.focus != focusTimeline {
		t.Fatalf("shift+tab must wrap back: focus=%v", m.focus)
	}
}
