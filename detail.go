package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// detailPane shows the focused row's resolved props and a per-variant
// summary of its backing data.
type detailPane struct {
	title    string
	width    int
	height   int
	viewport viewport.Model
}

func newDetailPane() *detailPane {
	return &detailPane{
		title:    "Track",
		viewport: viewport.New(30, 10),
	}
}

func (d *detailPane) SetSize(width, height int) {
	d.width = width
	if height < 3 {
		height = 3
	}
	d.height = height
	d.viewport.Width = width - 2
	d.viewport.Height = height - 3
	if d.viewport.Height < 1 {
		d.viewport.Height = 1
	}
}

func (d *detailPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return cmd
}

func (d *detailPane) ShowRow(row timelineRow, p *profile) {
	d.viewport.SetContent(detailText(row, p))
	d.viewport.GotoTop()
}

func (d *detailPane) View(s styles, focused bool) string {
	body := s.columnTitle.Render(d.title) + "\n" + d.viewport.View()
	if focused {
		return s.panelFocused.Width(d.width).Height(d.height).Render(body)
	}
	return s.panel.Width(d.width).Height(d.height).Render(body)
}

func detailText(row timelineRow, p *profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", row.props.Name)
	if row.props.Title != "" {
		fmt.Fprintf(&b, "%s\n", row.props.Title)
	}
	fmt.Fprintf(&b, "identity: %s\n", row.ref)
	if row.props.Selected {
		b.WriteString("selected\n")
	}
	if row.props.Hidden {
		b.WriteString("hidden\n")
	}
	if row.kind != rowLocal {
		return b.String()
	}

	b.WriteRune('\n')
	switch row.desc.Type {
	case trackThread, trackEventDelay:
		writeThreadDetail(&b, row.desc.ThreadIndex, p)
	case trackNetwork:
		writeMarkerDetail(&b, row.desc.ThreadIndex, markerTypeNetwork, p)
	case trackIPC:
		writeMarkerDetail(&b, row.desc.ThreadIndex, markerTypeIPC, p)
	case trackMarker:
		writeMarkerDetail(&b, row.desc.ThreadIndex, row.desc.MarkerSchema, p)
	case trackMemory, trackBandwidth, trackProcessCPU, trackPower:
		writeCounterDetail(&b, row.desc.CounterIndex, p)
	}
	return b.String()
}

func writeThreadDetail(b *strings.Builder, threadIndex int, p *profile) {
	if threadIndex < 0 || threadIndex >= len(p.Threads) {
		return
	}
	th := p.Threads[threadIndex]
	fmt.Fprintf(b, "samples: %d\n", th.Samples.Length)
	fmt.Fprintf(b, "markers: %d\n", th.Markers.Length)
	if n := len(th.Samples.Time); n > 0 {
		fmt.Fprintf(b, "range: %.1f–%.1f ms\n", th.Samples.Time[0], th.Samples.Time[n-1])
	}
}

func writeCounterDetail(b *strings.Builder, counterIndex int, p *profile) {
	if counterIndex < 0 || counterIndex >= len(p.Counters) {
		return
	}
	c := p.Counters[counterIndex]
	fmt.Fprintf(b, "category: %s\n", c.Category)
	fmt.Fprintf(b, "samples: %d\n", c.Samples.Length)
	min, max, total := 0.0, 0.0, 0.0
	for i, v := range c.Samples.Count {
		if i == 0 || v < min {
			min = v
		}
		if i == 0 || v > max {
			max = v
		}
		total += v
	}
	if len(c.Samples.Count) > 0 {
		fmt.Fprintf(b, "min/max: %.1f / %.1f\n", min, max)
		fmt.Fprintf(b, "mean: %.1f\n", total/float64(len(c.Samples.Count)))
	}
}

// writeMarkerDetail lists the slowest markers of the given type.
func writeMarkerDetail(b *strings.Builder, threadIndex int, markerType string, p *profile) {
	if threadIndex < 0 || threadIndex >= len(p.Threads) {
		return
	}
	markers := p.Threads[threadIndex].Markers

	type entry struct {
		name     string
		duration float64
	}
	var entries []entry
	for i, t := range markers.Type {
		if t != markerType {
			continue
		}
		e := entry{}
		if i < len(markers.Name) {
			e.name = markers.Name[i]
		}
		if i < len(markers.StartTime) && i < len(markers.EndTime) && markers.EndTime[i] > 0 {
			e.duration = markers.EndTime[i] - markers.StartTime[i]
		}
		entries = append(entries, e)
	}
	fmt.Fprintf(b, "%s markers: %d\n", markerType, len(entries))
	sort.Slice(entries, func(i, j int) bool { return entries[i].duration > entries[j].duration })
	limit := 8
	if len(entries) < limit {
		limit = len(entries)
	}
	for _, e := range entries[:limit] {
		fmt.Fprintf(b, "  %-28s %8.2f ms\n", truncateName(e.name, 28), e.duration)
	}
}

func truncateName(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
