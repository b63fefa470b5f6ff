// Package feed ingests market events and applies them to the simulation
// between steps: new pairs spawn cells, updates re-target radii, and organs
// over their cap evict their oldest member.
package feed

// Event types carried on the stream.
const (
	EventCreate = "create"
	EventUpdate = "update"
	EventRemove = "remove"
)

// Event is one decoded market event.
type Event struct {
	Type         string  `json:"type"`
	Key          string  `json:"key"`
	Chain        string  `json:"chain,omitempty"`
	LiquidityUSD float64 `json:"liquidity_usd,omitempty"`
	VolumeUSD    float64 `json:"volume_usd,omitempty"`
}

// Source produces market events. Poll is called between simulation steps
// with the elapsed time since the previous poll; it never blocks.
type Source interface {
	Poll(dt float64, max int) ([]Event, error)
}
