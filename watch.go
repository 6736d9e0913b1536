package main

import (
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

type profileChangedMsg struct {
	Path string
}

type watchStoppedMsg struct {
	Err error
}

// profileWatcher reloads the open profile when the file on disk changes,
// e.g. while a recording session keeps overwriting its output. Events are
// debounced because editors and the profiler both write in bursts.
type profileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan tea.Msg
	done    chan struct{}
}

func watchProfile(path string) (*profileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: most writers replace the file via rename, which
	// drops a watch registered on the file itself.
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}
	pw := &profileWatcher{
		watcher: w,
		path:    filepath.Clean(path),
		events:  make(chan tea.Msg, 1),
		done:    make(chan struct{}),
	}
	go pw.run()
	return pw, nil
}

func (pw *profileWatcher) run() {
	const debounce = 250 * time.Millisecond
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-pw.done:
			if timer != nil {
				timer.Stop()
			}
			close(pw.events)
			return
		case ev, ok := <-pw.watcher.Events:
			if !ok {
				pw.deliver(watchStoppedMsg{})
				return
			}
			if filepath.Clean(ev.Name) != pw.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				timer.Reset(debounce)
			}
		case err, ok := <-pw.watcher.Errors:
			if !ok {
				pw.deliver(watchStoppedMsg{})
				return
			}
			pw.deliver(watchStoppedMsg{Err: err})
		case <-timerC:
			timer = nil
			timerC = nil
			pw.deliver(profileChangedMsg{Path: pw.path})
		}
	}
}

func (pw *profileWatcher) deliver(msg tea.Msg) {
	select {
	case pw.events <- msg:
	default:
	}
}

// WaitCmd blocks until the watcher reports the next change.
func (pw *profileWatcher) WaitCmd() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-pw.events
		if !ok {
			return watchStoppedMsg{}
		}
		return msg
	}
}

func (pw *profileWatcher) Close() {
	if pw == nil {
		return
	}
	close(pw.done)
	_ = pw.watcher.Close()
}
