package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type loadMsg interface{ isLoad() }

type profileLoadStartedMsg struct {
	Path string
}

func (profileLoadStartedMsg) isLoad() {}

type profileLoadedMsg struct {
	Path    string
	Profile *profile
	Tracks  *trackSet
	Took    time.Duration
	Reload  bool
}

func (profileLoadedMsg) isLoad() {}

type profileLoadFailedMsg struct {
	Path string
	Err  error
}

func (profileLoadFailedMsg) isLoad() {}

type loadChannelClosedMsg struct{}

func (loadChannelClosedMsg) isLoad() {}

// loadProfileCmd parses the profile and derives its tracks off the UI
// goroutine, streaming progress back as messages. One load runs at a time;
// the model drops stale results by comparing paths.
func loadProfileCmd(path string, reload bool) tea.Cmd {
	ch := make(chan loadMsg, 2)
	go func() {
		defer close(ch)
		started := time.Now()
		ch <- profileLoadStartedMsg{Path: path}
		p, err := loadProfile(path)
		if err != nil {
			ch <- profileLoadFailedMsg{Path: path, Err: err}
			return
		}
		ch <- profileLoadedMsg{
			Path:    path,
			Profile: p,
			Tracks:  buildTracks(p),
			Took:    time.Since(started),
			Reload:  reload,
		}
	}()
	return waitForLoadMsg(ch)
}

func waitForLoadMsg(ch <-chan loadMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return loadChannelClosedMsg{}
		}
		return loadResult{msg: msg, ch: ch}
	}
}

// loadResult pairs a load message with its channel so Update can keep
// draining until the goroutine closes it.
type loadResult struct {
	msg loadMsg
	ch  <-chan loadMsg
}
