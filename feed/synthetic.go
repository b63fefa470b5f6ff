package feed

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pthm-cable/petri/config"
)

// Synthetic generates a plausible stream of pair events across the configured
// chains: log-normal liquidity and volume, steady create/update/remove rates.
// It exists so the visualization runs without a live exchange connection and
// so headless runs are reproducible from a seed.
type Synthetic struct {
	rng    *rand.Rand
	chains []string
	cfg    config.FeedConfig

	live []liveKey
	seq  int

	// Fractional event debt carried between polls
	createCarry float64
	updateCarry float64
	removeCarry float64
}

type liveKey struct {
	key   string
	chain string
}

// NewSynthetic creates a synthetic source over the given chain keys.
func NewSynthetic(chains []string, cfg config.FeedConfig, rng *rand.Rand) *Synthetic {
	return &Synthetic{rng: rng, chains: chains, cfg: cfg}
}

// Poll emits up to max events accumulated over dt seconds.
func (s *Synthetic) Poll(dt float64, max int) ([]Event, error) {
	if dt < 0 || len(s.chains) == 0 {
		return nil, nil
	}

	s.createCarry += s.cfg.CreatesPerSec * dt
	s.updateCarry += s.cfg.UpdatesPerSec * dt
	s.removeCarry += s.cfg.RemovesPerSec * dt

	var events []Event

	for s.createCarry >= 1 && len(events) < max {
		s.createCarry--
		events = append(events, s.emitCreate())
	}
	for s.updateCarry >= 1 && len(events) < max {
		s.updateCarry--
		if ev, ok := s.emitUpdate(); ok {
			events = append(events, ev)
		}
	}
	for s.removeCarry >= 1 && len(events) < max {
		s.removeCarry--
		if ev, ok := s.emitRemove(); ok {
			events = append(events, ev)
		}
	}

	return events, nil
}

func (s *Synthetic) emitCreate() Event {
	chain := s.chains[s.rng.Intn(len(s.chains))]
	s.seq++
	key := fmt.Sprintf("%s:pool-%06x", chain, s.seq)
	s.live = append(s.live, liveKey{key: key, chain: chain})

	return Event{
		Type:         EventCreate,
		Key:          key,
		Chain:        chain,
		LiquidityUSD: s.logNormal(s.cfg.LiquidityMeanLog10, s.cfg.LiquiditySigma),
		VolumeUSD:    s.logNormal(s.cfg.VolumeMeanLog10, s.cfg.VolumeSigma),
	}
}

func (s *Synthetic) emitUpdate() (Event, bool) {
	if len(s.live) == 0 {
		return Event{}, false
	}
	lk := s.live[s.rng.Intn(len(s.live))]

	return Event{
		Type:         EventUpdate,
		Key:          lk.key,
		Chain:        lk.chain,
		LiquidityUSD: s.logNormal(s.cfg.LiquidityMeanLog10, s.cfg.LiquiditySigma),
		VolumeUSD:    s.logNormal(s.cfg.VolumeMeanLog10, s.cfg.VolumeSigma),
	}, true
}

func (s *Synthetic) emitRemove() (Event, bool) {
	if len(s.live) == 0 {
		return Event{}, false
	}
	i := s.rng.Intn(len(s.live))
	lk := s.live[i]
	s.live[i] = s.live[len(s.live)-1]
	s.live = s.live[:len(s.live)-1]

	return Event{Type: EventRemove, Key: lk.key, Chain: lk.chain}, true
}

// logNormal draws 10^N(mean, sigma), the usual shape of on-chain liquidity.
func (s *Synthetic) logNormal(meanLog10, sigmaLog10 float64) float64 {
	return math.Pow(10, meanLog10+s.rng.NormFloat64()*sigmaLog10)
}
