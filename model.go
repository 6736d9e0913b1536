package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type focusArea int

const (
	focusTimeline focusArea = iota
	focusDetail

	focusAreaCount
)

type keyMap struct {
	quit        key.Binding
	nextFocus   key.Binding
	prevFocus   key.Binding
	nextTab     key.Binding
	prevTab     key.Binding
	selectRow   key.Binding
	multiSelect key.Binding
	rangeSelect key.Binding
	hideTrack   key.Binding
	showAll     key.Binding
	filter      key.Binding
	openProfile key.Binding
	reload      key.Binding
	copyTrack   key.Binding
	toggleHelp  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		nextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next panel"),
		),
		prevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev panel"),
		),
		nextTab: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next tab"),
		),
		prevTab: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev tab"),
		),
		selectRow: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select track"),
		),
		multiSelect: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "multi-select (ctrl+click)"),
		),
		rangeSelect: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "range-select"),
		),
		hideTrack: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "hide track"),
		),
		showAll: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "show all tracks"),
		),
		filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter tracks"),
		),
		openProfile: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open profile"),
		),
		reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload"),
		),
		copyTrack: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy track summary"),
		),
		toggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.selectRow,
		k.hideTrack,
		k.nextTab,
		k.filter,
		k.toggleHelp,
		k.quit,
	}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.selectRow, k.multiSelect, k.rangeSelect},
		{k.hideTrack, k.showAll, k.filter},
		{k.nextTab, k.prevTab, k.nextFocus, k.prevFocus},
		{k.openProfile, k.reload, k.copyTrack},
		{k.toggleHelp, k.quit},
	}
}

// Context menu entries shown after a right click.
type menuAction int

const (
	menuHideTrack menuAction = iota
	menuHideOthers
	menuShowAllInProcess
	menuShowAllTracks
	menuCopyName
)

type menuEntry struct {
	label  string
	action menuAction
}

type toastExpiredMsg struct{}

type model struct {
	width  int
	height int

	styles styles
	keys   keyMap
	help   help.Model

	view   *viewState
	prof   *profile
	tracks *trackSet

	timeline *timelineColumn
	detail   *detailPane
	focus    focusArea

	profilePath string
	loading     bool
	loadingPath string
	loadErr     error

	store        *viewStore
	uiConfig     *uiConfig
	uiConfigPath string
	events       *eventLogger
	watcher      *profileWatcher

	spinner       spinner.Model
	spinnerActive bool

	filterInput  textinput.Model
	filterActive bool

	filePicker        filepicker.Model
	filePickerEnabled bool

	menuOpen    bool
	menuIndex   int
	menuEntries []menuEntry

	showHelp bool

	initialPane *trackRef

	toastMessage string
	toastExpires time.Time
}

func initialModel(profilePath string) *model {
	s := newStyles()
	m := &model{
		styles:   s,
		keys:     newKeyMap(),
		help:     help.New(),
		view:     newViewState(),
		timeline: newTimelineColumn(),
		detail:   newDetailPane(),
	}

	m.help.ShortSeparator = " │ "
	m.help.Styles.ShortKey = m.styles.statusHint.Copy()
	m.help.Styles.ShortDesc = m.styles.statusHint.Copy()
	m.help.Styles.ShortSeparator = m.styles.statusSeg.Copy()

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.spinner.Style = m.styles.statusHint.Copy().Bold(true)

	m.filterInput = textinput.New()
	m.filterInput.Prompt = "/ "
	m.filterInput.CharLimit = 64

	if cfg, cfgPath := loadUIConfig(); cfg != nil {
		m.uiConfig = cfg
		m.uiConfigPath = cfgPath
		if theme := strings.TrimSpace(cfg.Theme); theme != "" {
			setMarkdownTheme(markdownThemeFromString(theme))
		}
		if tab := tabID(strings.TrimSpace(cfg.Tab)); tab != "" {
			m.view.applyTab(tab)
		}
	}

	events := newEventLogger(filepath.Join(resolveConfigDir(), "ui-events.ndjson"))
	m.events = events
	setDefaultEventLogger(events)

	if store, err := openViewStore(); err == nil {
		m.store = store
	} else {
		m.events.Emit(uiEvent{Event: "store_open_failed", Extra: map[string]string{"error": err.Error()}})
	}

	m.profilePath = profilePath
	return m
}

func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.profilePath != "" {
		cmds = append(cmds, loadProfileCmd(m.profilePath, false))
	}
	return tea.Batch(cmds...)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if tick, ok := msg.(spinner.TickMsg); ok && m.spinnerActive {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(tick)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	switch message := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = message.Width, message.Height
		setMarkdownWordWrap(min(m.width-8, 100))
		m.applyLayout()
		return m, tea.Batch(cmds...)

	case loadResult:
		cmds = append(cmds, m.handleLoadMsg(message.msg)...)
		cmds = append(cmds, waitForLoadMsg(message.ch))
		return m, tea.Batch(cmds...)

	case loadChannelClosedMsg:
		return m, tea.Batch(cmds...)

	case profileChangedMsg:
		if !m.loading {
			cmds = append(cmds, loadProfileCmd(message.Path, true))
		}
		if m.watcher != nil {
			cmds = append(cmds, m.watcher.WaitCmd())
		}
		return m, tea.Batch(cmds...)

	case watchStoppedMsg:
		if message.Err != nil {
			m.events.Emit(uiEvent{Event: "watch_error", Extra: map[string]string{"error": message.Err.Error()}})
		}
		return m, tea.Batch(cmds...)

	case toastExpiredMsg:
		if !m.toastExpires.IsZero() && time.Now().After(m.toastExpires) {
			m.toastMessage = ""
		}
		return m, tea.Batch(cmds...)
	}

	if m.filePickerEnabled {
		if cmd, done := m.updateFilePicker(msg); done {
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
			return m, tea.Batch(cmds...)
		}
	}

	if m.filterActive {
		if cmd := m.updateFilter(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	if m.menuOpen {
		if cmd := m.updateMenu(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	switch message := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.handleGlobalKey(message); handled {
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
			return m, tea.Batch(cmds...)
		}
		if m.focus == focusTimeline {
			if cmd := m.timeline.Update(message); cmd != nil {
				cmds = append(cmds, cmd)
			}
			m.syncDetail()
		} else {
			if cmd := m.detail.Update(message); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if cmd := m.handleMouse(message); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	// Reducer: command messages mutate the view state, then every row is
	// re-resolved from the new snapshot.
	switch message := msg.(type) {
	case selectTrackMsg:
		m.view.applySelect(m.tracks, message)
		m.logTrackEvent("select_track", message.ref, map[string]string{
			"multi": strconv.FormatBool(message.modifiers.Multi),
			"range": strconv.FormatBool(message.modifiers.Range),
		})
		cmds = append(cmds, m.rebuildTimeline())

	case hideTrackMsg:
		m.view.applyHide(message)
		m.persistHidden()
		m.logTrackEvent("hide_track", trackRef{Kind: trackRefLocal, PID: message.pid, TrackIndex: message.trackIndex}, nil)
		cmds = append(cmds, m.rebuildTimeline())

	case hideOtherTracksMsg:
		m.view.applyHideOthers(m.tracks, message)
		m.persistHidden()
		m.logTrackEvent("hide_other_tracks", trackRef{Kind: trackRefLocal, PID: message.pid, TrackIndex: message.keep}, nil)
		cmds = append(cmds, m.rebuildTimeline())

	case showAllTracksMsg:
		m.view.applyShowAll(message.pid)
		m.persistHidden()
		m.events.Emit(uiEvent{Event: "show_all_tracks", Profile: m.profilePath, Extra: map[string]string{"pid": message.pid}})
		cmds = append(cmds, m.rebuildTimeline())

	case rightClickTrackMsg:
		m.view.applyRightClick(message.ref)
		m.openContextMenu(message.ref)
		m.logTrackEvent("right_click_track", message.ref, nil)
		cmds = append(cmds, m.rebuildTimeline())

	case selectTabMsg:
		m.view.applyTab(message.tab)
		if m.store != nil && m.profilePath != "" {
			_ = m.store.SaveTab(m.profilePath, message.tab)
		}
		if m.uiConfig != nil && m.uiConfigPath != "" {
			m.uiConfig.Tab = string(message.tab)
			_ = saveUIConfig(m.uiConfig, m.uiConfigPath)
		}
		m.events.Emit(uiEvent{Event: "select_tab", Profile: m.profilePath, Extra: map[string]string{"tab": string(message.tab)}})
		cmds = append(cmds, m.rebuildTimeline())

	case initialPaneSelectedMsg:
		// Many rows could race to claim initial focus during one build
		// pass; only the first notification wins.
		if m.initialPane == nil {
			ref := message.ref
			m.initialPane = &ref
			if row, ok := m.timeline.rowAt(ref); ok && m.prof != nil {
				m.detail.ShowRow(row, m.prof)
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *model) handleLoadMsg(msg loadMsg) []tea.Cmd {
	var cmds []tea.Cmd
	switch message := msg.(type) {
	case profileLoadStartedMsg:
		m.loading = true
		m.loadingPath = message.Path
		m.spinnerActive = true
		cmds = append(cmds, m.spinner.Tick)

	case profileLoadedMsg:
		m.loading = false
		m.spinnerActive = false
		m.loadErr = nil
		m.prof = message.Profile
		m.tracks = message.Tracks
		m.profilePath = message.Path

		if !message.Reload {
			m.view = newViewState()
			m.initialPane = nil
			m.restorePersistedState()
			m.selectDefaultThread()
			m.timeline.ResetForProfile()
			cmds = append(cmds, m.watchCurrentProfile()...)
		}
		cmds = append(cmds, m.rebuildTimeline())
		m.syncDetail()

		if m.store != nil {
			_ = m.store.TouchRecent(message.Path, m.prof.Meta.Product)
		}
		m.events.Emit(uiEvent{Event: "profile_loaded", Profile: message.Path, Extra: map[string]string{
			"threads": strconv.Itoa(len(m.prof.Threads)),
			"took":    message.Took.String(),
			"reload":  strconv.FormatBool(message.Reload),
		}})
		m.setToast(fmt.Sprintf("Loaded %s (%d threads)", filepath.Base(message.Path), len(m.prof.Threads)), 3*time.Second)
		cmds = append(cmds, m.toastTimer())

	case profileLoadFailedMsg:
		m.loading = false
		m.spinnerActive = false
		m.loadErr = message.Err
		m.events.Emit(uiEvent{Event: "profile_load_failed", Profile: message.Path, Extra: map[string]string{"error": message.Err.Error()}})
		m.setToast("Load failed: "+message.Err.Error(), 6*time.Second)
		cmds = append(cmds, m.toastTimer())
	}
	return cmds
}

// restorePersistedState pulls the saved hidden set and tab for the profile.
func (m *model) restorePersistedState() {
	if m.store == nil || m.profilePath == "" {
		return
	}
	if hidden, err := m.store.LoadHidden(m.profilePath); err == nil && len(hidden) > 0 {
		m.view.hiddenTracks = hidden
	}
	if tab, ok, err := m.store.LoadTab(m.profilePath); err == nil && ok {
		m.view.applyTab(tab)
	}
}

// selectDefaultThread seeds the selection with the first process's main
// thread so the timeline opens with a focused pane.
func (m *model) selectDefaultThread() {
	if m.tracks == nil {
		return
	}
	for i := range m.tracks.Processes {
		if ti := m.tracks.Processes[i].MainThreadIndex; ti >= 0 {
			m.view.selectedThreads[ti] = true
			return
		}
	}
}

func (m *model) watchCurrentProfile() []tea.Cmd {
	if m.watcher != nil {
		m.watcher.Close()
		m.watcher = nil
	}
	pw, err := watchProfile(m.profilePath)
	if err != nil {
		m.events.Emit(uiEvent{Event: "watch_failed", Profile: m.profilePath, Extra: map[string]string{"error": err.Error()}})
		return nil
	}
	m.watcher = pw
	return []tea.Cmd{pw.WaitCmd()}
}

func (m *model) rebuildTimeline() tea.Cmd {
	if m.prof == nil || m.tracks == nil {
		return nil
	}
	cmd := m.timeline.Rebuild(m.view, m.prof, m.tracks)
	m.syncDetail()
	return cmd
}

func (m *model) syncDetail() {
	if m.prof == nil {
		return
	}
	if row, ok := m.timeline.CurrentRow(); ok {
		m.detail.ShowRow(row, m.prof)
	}
}

func (m *model) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return true, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp):
		m.showHelp = !m.showHelp
		return true, nil
	case key.Matches(msg, m.keys.nextFocus):
		m.focus = (m.focus + 1) % focusAreaCount
		return true, nil
	case key.Matches(msg, m.keys.prevFocus):
		m.focus = (m.focus + focusAreaCount - 1) % focusAreaCount
		return true, nil
	case key.Matches(msg, m.keys.nextTab):
		return true, m.cycleTab(1)
	case key.Matches(msg, m.keys.prevTab):
		return true, m.cycleTab(-1)
	case key.Matches(msg, m.keys.showAll):
		return true, func() tea.Msg { return showAllTracksMsg{} }
	case key.Matches(msg, m.keys.filter):
		m.filterActive = true
		m.filterInput.SetValue(m.timeline.filter)
		m.filterInput.Focus()
		return true, textinput.Blink
	case key.Matches(msg, m.keys.openProfile):
		return true, m.openFilePicker()
	case key.Matches(msg, m.keys.reload):
		if m.profilePath != "" && !m.loading {
			return true, loadProfileCmd(m.profilePath, true)
		}
		return true, nil
	case key.Matches(msg, m.keys.copyTrack):
		m.copyCurrentTrack()
		return true, m.toastTimer()
	}

	if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(tabOrder) {
		tab := tabOrder[n-1]
		return true, func() tea.Msg { return selectTabMsg{tab: tab} }
	}

	if m.showHelp && msg.String() == "esc" {
		m.showHelp = false
		return true, nil
	}
	return false, nil
}

func (m *model) cycleTab(delta int) tea.Cmd {
	current := 0
	for i, t := range tabOrder {
		if t == m.view.activeTab {
			current = i
			break
		}
	}
	next := (current + delta + len(tabOrder)) % len(tabOrder)
	tab := tabOrder[next]
	return func() tea.Msg { return selectTabMsg{tab: tab} }
}

// Layout geometry shared by View and mouse routing.
func (m *model) timelineOrigin() (int, int) { return 0, 2 }

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	ox, oy := m.timelineOrigin()
	timelineWidth := m.timelineWidth()
	if msg.X >= ox && msg.X < ox+timelineWidth && msg.Y >= oy {
		return m.timeline.HandleMouse(msg.X-ox, msg.Y-oy, msg)
	}
	return nil
}

func (m *model) timelineWidth() int {
	w := m.width * 3 / 5
	if w < 48 {
		w = min(48, m.width)
	}
	return w
}

func (m *model) applyLayout() {
	contentHeight := m.height - 5
	if contentHeight < 5 {
		contentHeight = 5
	}
	tw := m.timelineWidth()
	m.timeline.SetSize(tw, contentHeight)
	dw := m.width - tw - 2
	if dw < 20 {
		dw = 20
	}
	m.detail.SetSize(dw, contentHeight)
}

func (m *model) openContextMenu(ref trackRef) {
	entries := []menuEntry{
		{label: "Hide track", action: menuHideTrack},
		{label: "Hide other tracks", action: menuHideOthers},
		{label: "Show all tracks in process", action: menuShowAllInProcess},
		{label: "Show all tracks", action: menuShowAllTracks},
		{label: "Copy track name", action: menuCopyName},
	}
	if ref.Kind == trackRefGlobal {
		// the process row itself cannot be hidden
		entries = entries[2:]
	}
	m.menuEntries = entries
	m.menuIndex = 0
	m.menuOpen = true
}

func (m *model) updateMenu(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if mouse, ok := msg.(tea.MouseMsg); ok && mouse.Type == tea.MouseLeft {
			m.closeMenu()
		}
		return nil
	}
	switch keyMsg.String() {
	case "esc":
		m.closeMenu()
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(m.menuEntries)-1 {
			m.menuIndex++
		}
	case "enter":
		entry := m.menuEntries[m.menuIndex]
		ref := m.view.rightClicked
		m.closeMenu()
		if ref == nil {
			return nil
		}
		switch entry.action {
		case menuHideTrack:
			target := *ref
			return func() tea.Msg { return hideTrackMsg{pid: target.PID, trackIndex: target.TrackIndex} }
		case menuHideOthers:
			target := *ref
			return func() tea.Msg { return hideOtherTracksMsg{pid: target.PID, keep: target.TrackIndex} }
		case menuShowAllInProcess:
			pid := ref.PID
			return func() tea.Msg { return showAllTracksMsg{pid: pid} }
		case menuShowAllTracks:
			return func() tea.Msg { return showAllTracksMsg{} }
		case menuCopyName:
			if m.tracks != nil {
				name := m.tracks.trackName(ref.PID, ref.TrackIndex)
				if err := clipboard.WriteAll(name); err != nil {
					m.setToast("Copy failed: "+err.Error(), 4*time.Second)
				} else {
					m.setToast("Copied "+name, 2*time.Second)
				}
				return m.toastTimer()
			}
		}
	}
	return nil
}

func (m *model) closeMenu() {
	m.menuOpen = false
	m.view.clearRightClick()
}

func (m *model) updateFilter(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.filterActive = false
			m.filterInput.Blur()
			return nil
		case "enter":
			m.filterActive = false
			m.filterInput.Blur()
			m.timeline.SetFilter(m.filterInput.Value())
			return m.rebuildTimeline()
		}
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.timeline.SetFilter(m.filterInput.Value())
	if rebuild := m.rebuildTimeline(); rebuild != nil {
		return tea.Batch(cmd, rebuild)
	}
	return cmd
}

func (m *model) openFilePicker() tea.Cmd {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".json", ".gz"}
	fp.CurrentDirectory = filepath.Dir(m.profilePath)
	if m.profilePath == "" {
		fp.CurrentDirectory = "."
	}
	m.filePicker = fp
	m.filePickerEnabled = true
	return m.filePicker.Init()
}

func (m *model) updateFilePicker(msg tea.Msg) (tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.filePickerEnabled = false
		return nil, true
	}
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)
	if selected, path := m.filePicker.DidSelectFile(msg); selected {
		m.filePickerEnabled = false
		return tea.Batch(cmd, loadProfileCmd(path, false)), true
	}
	return cmd, true
}

func (m *model) copyCurrentTrack() {
	row, ok := m.timeline.CurrentRow()
	if !ok {
		return
	}
	summary := row.props.Name
	if row.props.Title != "" {
		summary += " — " + row.props.Title
	}
	summary += " [" + row.ref.String() + "]"
	if err := clipboard.WriteAll(summary); err != nil {
		m.setToast("Copy failed: "+err.Error(), 4*time.Second)
		return
	}
	m.setToast("Copied track summary", 2*time.Second)
}

func (m *model) logTrackEvent(name string, ref trackRef, extra map[string]string) {
	m.events.Emit(uiEvent{
		Event:   name,
		Profile: m.profilePath,
		Track:   ref.String(),
		Extra:   extra,
	})
}

func (m *model) persistHidden() {
	if m.store == nil || m.profilePath == "" {
		return
	}
	if err := m.store.SaveHidden(m.profilePath, m.view.hiddenTracks); err != nil {
		m.events.Emit(uiEvent{Event: "persist_hidden_failed", Profile: m.profilePath, Extra: map[string]string{"error": err.Error()}})
	}
}

func (m *model) setToast(text string, ttl time.Duration) {
	m.toastMessage = text
	m.toastExpires = time.Now().Add(ttl)
}

func (m *model) toastTimer() tea.Cmd {
	if m.toastMessage == "" {
		return nil
	}
	wait := time.Until(m.toastExpires) + 50*time.Millisecond
	return tea.Tick(wait, func(time.Time) tea.Msg { return toastExpiredMsg{} })
}

func (m *model) View() string {
	var b strings.Builder

	title := "trackview"
	if m.prof != nil {
		title += " • " + m.prof.Meta.Product
	}
	if m.profilePath != "" {
		title += " • " + abbreviatePath(m.profilePath)
	}
	b.WriteString(m.styles.topBar.Width(m.width).Render(title))
	b.WriteRune('\n')

	b.WriteString(m.renderTabs())
	b.WriteRune('\n')

	if m.prof == nil {
		b.WriteString(m.renderEmptyState())
	} else {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			m.timeline.View(m.styles, m.prof, m.focus == focusTimeline),
			m.detail.View(m.styles, m.focus == focusDetail),
		)
		b.WriteString(row)
	}
	b.WriteRune('\n')

	b.WriteString(m.renderStatus())

	if m.menuOpen {
		b.WriteRune('\n')
		b.WriteString(m.renderMenu())
	}
	if m.showHelp {
		b.WriteRune('\n')
		overlay := m.styles.helpOverlay.Render(renderMarkdown(helpMarkdown))
		b.WriteString(lipgloss.Place(m.width, m.height/2, lipgloss.Center, lipgloss.Center, overlay))
	}
	if m.filePickerEnabled {
		b.WriteRune('\n')
		overlay := m.styles.helpOverlay.Render("Open profile\n\n" + m.filePicker.View())
		b.WriteString(lipgloss.Place(m.width, m.height/2, lipgloss.Center, lipgloss.Center, overlay))
	}

	return m.styles.app.Render(b.String())
}

func (m *model) renderTabs() string {
	var tabs []string
	for _, t := range tabOrder {
		if t == m.view.activeTab {
			tabs = append(tabs, m.styles.tabActive.Render(tabLabel(t)))
		} else {
			tabs = append(tabs, m.styles.tabInactive.Render(tabLabel(t)))
		}
	}
	return m.styles.tabsRow.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m *model) renderEmptyState() string {
	if m.loading {
		return m.styles.statusHint.Render(fmt.Sprintf("  %s loading %s…", m.spinner.View(), m.loadingPath))
	}
	if m.loadErr != nil {
		return m.styles.statusHint.Render("  " + m.loadErr.Error())
	}

	lines := []string{"  No profile loaded. Press o to open one."}
	if m.uiConfig != nil && len(m.uiConfig.Pinned) > 0 {
		lines = append(lines, "", "  pinned:")
		for _, path := range m.uiConfig.Pinned {
			lines = append(lines, "    "+abbreviatePath(path))
		}
	}
	if m.store != nil {
		if recents, err := m.store.Recents(5); err == nil && len(recents) > 0 {
			lines = append(lines, "", "  recent:")
			for _, rp := range recents {
				lines = append(lines, "    "+abbreviatePath(rp.Path))
			}
		}
	}
	return m.styles.statusHint.Render(strings.Join(lines, "\n"))
}

func (m *model) renderStatus() string {
	var segs []string
	if m.prof != nil {
		segs = append(segs, fmt.Sprintf("%d threads", len(m.prof.Threads)))
		segs = append(segs, fmt.Sprintf("selected %v", m.view.selectedThreadList()))
		if hidden := m.view.hiddenCount(); hidden > 0 {
			segs = append(segs, fmt.Sprintf("%d hidden", hidden))
		}
	}
	if m.filterActive {
		segs = append(segs, m.filterInput.View())
	}
	if m.loading {
		segs = append(segs, m.spinner.View()+" loading")
	}
	if m.toastMessage != "" {
		segs = append(segs, m.styles.toast.Render(m.toastMessage))
	}

	left := strings.Join(segs, " │ ")
	helpView := m.help.View(m.keys)
	return m.styles.statusBar.Width(m.width).Render(left + "\n" + helpView)
}

func (m *model) renderMenu() string {
	ref := m.view.rightClicked
	title := "Track"
	if ref != nil && m.tracks != nil {
		if name := m.tracks.trackName(ref.PID, ref.TrackIndex); name != "" {
			title = name
		} else if pt := m.tracks.process(ref.PID); pt != nil && ref.Kind == trackRefGlobal {
			title = pt.Label
		}
	}
	var lines []string
	lines = append(lines, m.styles.columnTitle.Render(title))
	for i, entry := range m.menuEntries {
		if i == m.menuIndex {
			lines = append(lines, m.styles.menuSel.Render(entry.label))
		} else {
			lines = append(lines, m.styles.menuItem.Render(entry.label))
		}
	}
	menu := m.styles.menuOverlay.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, m.height/3, lipgloss.Center, lipgloss.Center, menu)
}

func abbreviatePath(path string) string {
	if len(path) <= 40 {
		return path
	}
	return "…" + path[len(path)-39:]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
