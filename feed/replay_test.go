package feed

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReplayReadsAndSkipsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	data := `{"type":"create","key":"a:1","chain":"a","liquidity_usd":5000,"volume_usd":100}
not json at all
{"type":"update","key":"a:1","liquidity_usd":6000}

{"type":"remove","key":"a:1"}
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := NewReplay(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	events, err := r.Poll(1.0/60.0, 256)
	if err != nil {
		t.Fatalf("poll: %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[0].Type != EventCreate || events[0].Key != "a:1" || events[0].LiquidityUSD != 5000 {
		t.Errorf("first event = %+v", events[0])
	}
	if events[2].Type != EventRemove {
		t.Errorf("last event = %+v", events[2])
	}
	if r.Skipped() != 1 {
		t.Errorf("skipped = %d, want 1", r.Skipped())
	}

	// Exhausted: further polls are empty, not errors
	events, err = r.Poll(1.0/60.0, 256)
	if err != nil || len(events) != 0 {
		t.Errorf("post-exhaustion poll = %d events, err %v", len(events), err)
	}
}

func TestReplayRespectsBatchLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	var data []byte
	for i := 0; i < 10; i++ {
		data = append(data, []byte(`{"type":"create","key":"k","chain":"a"}`+"\n")...)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := NewReplay(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	first, _ := r.Poll(0, 4)
	second, _ := r.Poll(0, 4)
	third, _ := r.Poll(0, 4)

	if len(first) != 4 || len(second) != 4 || len(third) != 2 {
		t.Errorf("batch sizes = %d/%d/%d, want 4/4/2", len(first), len(second), len(third))
	}
}

func TestReplayMissingFile(t *testing.T) {
	if _, err := NewReplay("/nonexistent/events.jsonl"); err == nil {
		t.Fatal("expected error opening missing file")
	}
}
