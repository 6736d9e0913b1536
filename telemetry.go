package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// uiEvent is one line of the ui-events.ndjson log: interaction commands
// (select, hide, right-click, tab changes), profile loads, and the
// renderer's defensive unknown-variant reports all land here.
type uiEvent struct {
	SessionID string            `json:"session_id"`
	Timestamp time.Time         `json:"timestamp"`
	Event     string            `json:"event"`
	Profile   string            `json:"profile,omitempty"`
	Track     string            `json:"track,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

type eventLogger struct {
	path      string
	sessionID string
	mu        sync.Mutex
}

func newEventLogger(path string) *eventLogger {
	dir := filepath.Dir(path)
	_ = os.MkdirAll(dir, 0o755)
	return &eventLogger{
		path:      path,
		sessionID: newSessionID(),
	}
}

func (l *eventLogger) Emit(event uiEvent) {
	if l == nil || strings.TrimSpace(event.Event) == "" {
		return
	}
	if event.SessionID == "" {
		event.SessionID = l.sessionID
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if len(event.Extra) == 0 {
		event.Extra = nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	data = append(data, '\n')
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.Write(data)
}

func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err == nil {
		return hex.EncodeToString(buf)
	}
	return fmt.Sprintf("%x", time.Now().UnixNano())
}

var (
	defaultEventsMu sync.Mutex
	defaultEvents   *eventLogger
)

func setDefaultEventLogger(l *eventLogger) {
	defaultEventsMu.Lock()
	defaultEvents = l
	defaultEventsMu.Unlock()
}

// logEvent writes through the process-wide logger. Render paths use it so
// they stay free of logger plumbing; a nil logger drops the event.
func logEvent(name string, extra map[string]string) {
	defaultEventsMu.Lock()
	l := defaultEvents
	defaultEventsMu.Unlock()
	l.Emit(uiEvent{Event: name, Extra: extra})
}
