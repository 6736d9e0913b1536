package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"
)

// eventstats summarizes a trackview ui-events.ndjson log: event counts,
// sessions, and the profiles they touched. Useful when chasing down what a
// session actually did without replaying it.

type logEvent struct {
	SessionID string            `json:"session_id"`
	Timestamp time.Time         `json:"timestamp"`
	Event     string            `json:"event"`
	Profile   string            `json:"profile"`
	Track     string            `json:"track"`
	Extra     map[string]string `json:"extra"`
}

func main() {
	var inputPath string
	var session string
	flag.StringVar(&inputPath, "in", "", "input ndjson log path (required)")
	flag.StringVar(&session, "session", "", "restrict to one session id")
	flag.Parse()

	if inputPath == "" {
		exitWithError(errors.New("missing --in path"))
	}

	events, err := parseLog(inputPath, session)
	if err != nil {
		exitWithError(err)
	}
	if len(events) == 0 {
		fmt.Println("no events")
		return
	}

	printSummary(events)
}

func parseLog(path, session string) ([]logEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	var events []logEvent
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var ev logEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			fmt.Fprintf(os.Stderr, "skipping malformed line %d: %v\n", line, err)
			continue
		}
		if session != "" && ev.SessionID != session {
			continue
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return events, nil
}

func printSummary(events []logEvent) {
	counts := make(map[string]int)
	sessions := make(map[string][2]time.Time)
	profiles := make(map[string]int)

	for _, ev := range events {
		counts[ev.Event]++
		if ev.Profile != "" {
			profiles[ev.Profile]++
		}
		span, ok := sessions[ev.SessionID]
		if !ok {
			sessions[ev.SessionID] = [2]time.Time{ev.Timestamp, ev.Timestamp}
			continue
		}
		if ev.Timestamp.Before(span[0]) {
			span[0] = ev.Timestamp
		}
		if ev.Timestamp.After(span[1]) {
			span[1] = ev.Timestamp
		}
		sessions[ev.SessionID] = span
	}

	fmt.Printf("%d events, %d sessions\n\n", len(events), len(sessions))

	fmt.Println("events:")
	for _, name := range sortedKeys(counts) {
		fmt.Printf("  %-24s %6d\n", name, counts[name])
	}

	if len(profiles) > 0 {
		fmt.Println("\nprofiles:")
		for _, path := range sortedKeys(profiles) {
			fmt.Printf("  %-48s %6d\n", path, profiles[path])
		}
	}

	fmt.Println("\nsessions:")
	var ids []string
	for id := range sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return sessions[ids[i]][0].Before(sessions[ids[j]][0])
	})
	for _, id := range ids {
		span := sessions[id]
		fmt.Printf("  %s  %s  (%s)\n", id, span[0].Format(time.RFC3339), span[1].Sub(span[0]).Round(time.Second))
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
