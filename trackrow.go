package main

// renderTrackBody dispatches a local track descriptor to its visualization,
// returning the activity strip for the row body. Each sub-view receives
// only the identifying index or schema fields it needs.
//
// Unlike the resolver, an unknown tag here degrades gracefully: the row is
// logged and rendered empty so one malformed descriptor cannot take down
// the whole timeline.
func renderTrackBody(desc localTrack, width int, p *profile) string {
	if width <= 0 {
		return ""
	}
	switch desc.Type {
	case trackThread:
		return threadActivityBody(desc.ThreadIndex, width, p)
	case trackNetwork:
		return markerDensityBody(desc.ThreadIndex, markerTypeNetwork, width, p)
	case trackMemory, trackBandwidth, trackProcessCPU, trackPower:
		return counterBody(desc.CounterIndex, width, p)
	case trackIPC:
		return markerDensityBody(desc.ThreadIndex, markerTypeIPC, width, p)
	case trackEventDelay:
		return eventDelayBody(desc.ThreadIndex, width, p)
	case trackMarker:
		return markerDensityBody(desc.ThreadIndex, desc.MarkerSchema, width, p)
	default:
		logEvent("render_unknown_track", map[string]string{"type": desc.Type.String()})
		return ""
	}
}

func threadActivityBody(threadIndex, width int, p *profile) string {
	if threadIndex < 0 || threadIndex >= len(p.Threads) {
		return ""
	}
	return sparkline(p.Threads[threadIndex].Samples.CPUDelta, width)
}

func counterBody(counterIndex, width int, p *profile) string {
	if counterIndex < 0 || counterIndex >= len(p.Counters) {
		return ""
	}
	return sparkline(p.Counters[counterIndex].Samples.Count, width)
}

func eventDelayBody(threadIndex, width int, p *profile) string {
	if threadIndex < 0 || threadIndex >= len(p.Threads) {
		return ""
	}
	return sparkline(p.Threads[threadIndex].Samples.EventDelay, width)
}

// markerDensityBody buckets the thread's markers of one type over the
// profile's time range and draws their density.
func markerDensityBody(threadIndex int, markerType string, width int, p *profile) string {
	if threadIndex < 0 || threadIndex >= len(p.Threads) {
		return ""
	}
	start, end := p.timeBounds()
	markers := p.Threads[threadIndex].Markers
	var times []float64
	for i, t := range markers.Type {
		if t != markerType {
			continue
		}
		if i < len(markers.StartTime) {
			times = append(times, markers.StartTime[i])
		}
	}
	return sparkline(bucketByTime(times, nil, start, end, width), width)
}

// timeBounds finds the sampled time range across every thread and counter.
func (p *profile) timeBounds() (float64, float64) {
	start, end := 0.0, 0.0
	first := true
	observe := func(t float64) {
		if first {
			start, end = t, t
			first = false
			return
		}
		if t < start {
			start = t
		}
		if t > end {
			end = t
		}
	}
	for _, th := range p.Threads {
		for _, t := range th.Samples.Time {
			observe(t)
		}
		for _, t := range th.Markers.StartTime {
			observe(t)
		}
	}
	for _, c := range p.Counters {
		for _, t := range c.Samples.Time {
			observe(t)
		}
	}
	return start, end
}
