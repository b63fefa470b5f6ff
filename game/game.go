// Package game wires the simulation, the event feed, telemetry, and the
// renderer into the main loop.
package game

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/petri/camera"
	"github.com/pthm-cable/petri/config"
	"github.com/pthm-cable/petri/feed"
	"github.com/pthm-cable/petri/renderer"
	"github.com/pthm-cable/petri/sim"
	"github.com/pthm-cable/petri/telemetry"
	"github.com/pthm-cable/petri/ui"
)

// headlessDT is the fixed step used when no frame clock exists.
const headlessDT = 1.0 / 60.0

// Options configures a game instance.
type Options struct {
	Seed           int64
	Headless       bool
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	StepsPerUpdate int
	ReplayPath     string
}

// Game holds the complete application state.
type Game struct {
	cfg  *config.Config
	opts Options

	state     *sim.State
	applier   *feed.Applier
	source    feed.Source
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	rng       *rand.Rand

	cam        *camera.Camera
	background *renderer.BackgroundRenderer
	blobs      *renderer.BlobRenderer
	hud        *ui.HUD
	inspector  *ui.InspectorPanel

	tick    int32
	simTime float64
	paused  bool
	speed   int

	// Last flushed window, shown on the HUD
	lastStats telemetry.WindowStats

	// Selection is tracked by pair key so eviction clears it naturally
	selectedKey string

	// Mouse pan state
	dragging             bool
	dragLastX, dragLastY float32

	// Scratch buffer for radius sampling at flush time
	radiiScratch []float64
}

// NewGame creates a game from the loaded config and options.
func NewGame(opts Options) (*Game, error) {
	cfg := config.Cfg()

	rng := rand.New(rand.NewSource(opts.Seed))
	params := sim.ParamsFromConfig(cfg)

	chains := make([]sim.ChainSeed, len(cfg.Chains))
	chainKeys := make([]string, len(cfg.Chains))
	for i, chain := range cfg.Chains {
		rgb := cfg.Derived.ChainColors[i]
		chains[i] = sim.ChainSeed{
			Key:   chain.Key,
			Name:  chain.Name,
			Color: [3]uint8{rgb.R, rgb.G, rgb.B},
		}
		chainKeys[i] = chain.Key
	}

	organs := sim.SeedOrgans(chains, params, rng)
	state := sim.NewState(params, organs, rng)

	var source feed.Source
	if opts.ReplayPath != "" {
		replay, err := feed.NewReplay(opts.ReplayPath)
		if err != nil {
			return nil, err
		}
		source = replay
	} else {
		source = feed.NewSynthetic(chainKeys, cfg.Feed, rng)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}

	g := &Game{
		cfg:       cfg,
		opts:      opts,
		state:     state,
		applier:   feed.NewApplier(state, rng),
		source:    source,
		collector: telemetry.NewCollector(statsWindow),
		output:    output,
		rng:       rng,
		speed:     1,
	}

	if !opts.Headless {
		g.cam = camera.New(
			float32(cfg.Screen.Width), float32(cfg.Screen.Height),
			cfg.Derived.WorldW32, cfg.Derived.WorldH32,
		)
		g.background = renderer.NewBackgroundRenderer(
			int32(cfg.Screen.Width), int32(cfg.Screen.Height),
			18, 24, 32,
		)
		g.blobs = renderer.NewBlobRenderer()
		g.hud = ui.NewHUD()
		g.inspector = ui.NewInspectorPanel(240)
	}

	return g, nil
}

// Update advances the game by one frame in graphical mode.
func (g *Game) Update(frameDT float32) {
	g.handleInput()

	if g.paused {
		return
	}

	for i := 0; i < g.speed; i++ {
		g.step(frameDT)
	}
}

// UpdateHeadless advances the game by StepsPerUpdate fixed steps.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.opts.StepsPerUpdate; i++ {
		g.step(headlessDT)
	}
}

// step polls the feed, applies events, and runs one simulation step.
func (g *Game) step(dt float32) {
	events, err := g.source.Poll(float64(dt), g.cfg.Feed.PollMax)
	if err != nil {
		slog.Error("feed poll failed", "error", err)
	}

	counters := g.applier.Apply(events)
	g.collector.RecordEvents(counters.Created, counters.Updated, counters.Removed, counters.Evicted, counters.Dropped)
	for _, ev := range events {
		if ev.Type == feed.EventCreate {
			g.collector.RecordPairKey(ev.Key)
		}
	}

	start := time.Now()
	g.state.Step(dt)
	g.collector.RecordStepDuration(time.Since(start))

	effective := float64(dt)
	if effective > float64(g.state.Params.MaxDT) {
		effective = float64(g.state.Params.MaxDT)
	}
	g.simTime += effective
	g.collector.Advance(effective)
	g.tick = g.state.Tick

	g.flushTelemetry()
}

// selectedEntity resolves the selected pair key, clearing stale selections.
func (g *Game) selectedEntity() (ecs.Entity, bool) {
	if g.selectedKey == "" {
		return ecs.Entity{}, false
	}
	e, ok := g.applier.Entity(g.selectedKey)
	if !ok {
		g.selectedKey = ""
	}
	return e, ok
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// PairCount returns the number of live pair cells.
func (g *Game) PairCount() int {
	return g.state.PairCount()
}

// Close flushes telemetry output and releases the feed source.
func (g *Game) Close() error {
	if closer, ok := g.source.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			slog.Error("failed to close feed source", "error", err)
		}
	}
	return g.output.Close()
}
