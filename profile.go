package main

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// profile models the subset of the Gecko processed-profile format that
// trackview consumes: enough of meta, threads, counters, and markers to
// derive tracks and draw their activity strips. Columns not listed here are
// ignored during decoding.
type profile struct {
	Meta     profileMeta `json:"meta"`
	Threads  []thread    `json:"threads"`
	Counters []counter   `json:"counters"`

	path string
}

type profileMeta struct {
	Product      string         `json:"product"`
	Interval     float64        `json:"interval"`
	StartTime    float64        `json:"startTime"`
	MarkerSchema []markerSchema `json:"markerSchema"`
}

type markerSchema struct {
	Name    string   `json:"name"`
	Display []string `json:"display"`
}

// hasTrackDisplay reports whether the schema asks for a dedicated timeline
// track, the hint custom marker tracks are derived from.
func (s markerSchema) hasTrackDisplay() bool {
	for _, d := range s.Display {
		if d == "marker-track" || d == "timeline-overview" {
			return true
		}
	}
	return false
}

type thread struct {
	Name         string      `json:"name"`
	ProcessName  string      `json:"processName"`
	ProcessType  string      `json:"processType"`
	PID          flexibleID  `json:"pid"`
	TID          flexibleID  `json:"tid"`
	IsMainThread bool        `json:"isMainThread"`
	Samples      sampleTable `json:"samples"`
	Markers      markerTable `json:"markers"`
}

// sampleTable is the column-oriented sample storage of the processed format.
type sampleTable struct {
	Time       []float64 `json:"time"`
	CPUDelta   []float64 `json:"threadCPUDelta"`
	EventDelay []float64 `json:"eventDelay"`
	Length     int       `json:"length"`
}

type markerTable struct {
	Name      []string  `json:"name"`
	Type      []string  `json:"type"`
	StartTime []float64 `json:"startTime"`
	EndTime   []float64 `json:"endTime"`
	Length    int       `json:"length"`
}

func (m markerTable) countType(markerType string) int {
	n := 0
	for _, t := range m.Type {
		if t == markerType {
			n++
		}
	}
	return n
}

type counter struct {
	Name        string       `json:"name"`
	Category    string       `json:"category"`
	Description string       `json:"description"`
	PID         flexibleID   `json:"pid"`
	Samples     counterTable `json:"samples"`
}

type counterTable struct {
	Time   []float64 `json:"time"`
	Count  []float64 `json:"count"`
	Length int       `json:"length"`
}

// flexibleID accepts the string-or-number encoding Gecko uses for pids and
// tids and normalizes it to a string.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty id value")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id is neither string nor number: %w", err)
	}
	// Gecko emits pids as floats in some configurations. Normalize
	// integral values so "7" and 7.0 address the same process.
	if i, err := n.Int64(); err == nil {
		*f = flexibleID(strconv.FormatInt(i, 10))
		return nil
	}
	if fl, err := n.Float64(); err == nil && fl == float64(int64(fl)) {
		*f = flexibleID(strconv.FormatInt(int64(fl), 10))
		return nil
	}
	*f = flexibleID(n.String())
	return nil
}

func (f flexibleID) String() string { return string(f) }

// loadProfile reads a Gecko profile from path. Profiles saved from the
// profiler UI are frequently gzip-compressed; both plain and .gz payloads
// are accepted regardless of extension.
func loadProfile(path string) (*profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profile: %w", err)
	}
	defer f.Close()
	p, err := decodeProfile(f)
	if err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", path, err)
	}
	p.path = path
	return p, nil
}

func decodeProfile(r io.Reader) (*profile, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil {
		return nil, err
	}
	var src io.Reader = br
	if magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		src = gz
	}
	var p profile
	dec := json.NewDecoder(src)
	if err := dec.Decode(&p); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *profile) validate() error {
	if len(p.Threads) == 0 {
		return fmt.Errorf("profile has no threads")
	}
	for i, th := range p.Threads {
		if strings.TrimSpace(th.PID.String()) == "" {
			return fmt.Errorf("thread %d (%q) has no pid", i, th.Name)
		}
	}
	return nil
}

// processDetails builds the tooltip string for a thread track: thread and
// process names plus the numeric ids, mirroring what the profiler shows.
func (p *profile) processDetails(threadIndex int) string {
	if threadIndex < 0 || threadIndex >= len(p.Threads) {
		return ""
	}
	th := p.Threads[threadIndex]
	name := th.ProcessName
	if name == "" {
		name = th.ProcessType
	}
	if name == "" {
		return fmt.Sprintf("%s (pid %s, tid %s)", th.Name, th.PID, th.TID)
	}
	return fmt.Sprintf("%s — %s (pid %s, tid %s)", th.Name, name, th.PID, th.TID)
}

// counterDescription builds the tooltip string for a counter track.
func (p *profile) counterDescription(counterIndex int) string {
	if counterIndex < 0 || counterIndex >= len(p.Counters) {
		return ""
	}
	c := p.Counters[counterIndex]
	if c.Description == "" {
		return c.Name
	}
	return fmt.Sprintf("%s — %s", c.Name, c.Description)
}
