package feed

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// Replay reads events from a JSON-lines capture file, one event per line.
// Malformed lines are skipped and counted, never fatal. After the file is
// exhausted Poll returns empty slices.
type Replay struct {
	file    *os.File
	scanner *bufio.Scanner
	done    bool
	skipped int
}

// NewReplay opens a JSONL event capture for replay.
func NewReplay(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening replay file: %w", err)
	}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Replay{file: f, scanner: sc}, nil
}

// Poll reads up to max events from the capture. dt is ignored; replay drains
// at the caller's polling rate.
func (r *Replay) Poll(_ float64, max int) ([]Event, error) {
	if r.done {
		return nil, nil
	}

	var events []Event
	for len(events) < max && r.scanner.Scan() {
		line := r.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev Event
		if err := json.Unmarshal(line, &ev); err != nil {
			r.skipped++
			continue
		}
		events = append(events, ev)
	}

	if err := r.scanner.Err(); err != nil {
		r.done = true
		return events, fmt.Errorf("reading replay file: %w", err)
	}
	if len(events) < max {
		r.done = true
	}
	return events, nil
}

// Skipped returns the number of malformed lines encountered so far.
func (r *Replay) Skipped() int {
	return r.skipped
}

// Close releases the underlying file.
func (r *Replay) Close() error {
	return r.file.Close()
}
