package runner

import (
	"math/rand"

	"github.com/vovakirdan/coinrun/internal/config"
	"github.com/vovakirdan/coinrun/internal/core"
	"github.com/vovakirdan/coinrun/internal/registry"
)

// Variant IDs.
const (
	VariantClassic = "classic"
	VariantSpaced  = "spaced"
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path used by Reset.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied on top of the config.
// Unknown values fall back to the config as loaded.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// Game adapts a Session to the arcade platform. It adds pausing, a
// per-run virtual clock and seed, and records each run for the journal.
type Game struct {
	variant string
	runtime core.RuntimeConfig
	session *Session
	baseRng *rand.Rand // Draws a fresh seed for every run

	paused  bool
	clock   float64 // Milliseconds since the current run started
	runSeed int64
	trace   *Trace
	pending *config.RunnerConfig // Applied at the next start
	lastRun *Run
	loadErr error // Why Reset fell back to the default config
}

// New creates a game for the given variant.
func New(variant string) *Game {
	return &Game{variant: variant}
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant
}

// Title returns the display name for this variant.
func (g *Game) Title() string {
	if g.variant == VariantSpaced {
		return "Coin Runner (spaced platforms)"
	}
	return "Coin Runner"
}

// Reset loads the config and prepares a session waiting for start.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.Load(configPath)
	g.loadErr = err
	if err != nil {
		cfg = config.DefaultRunnerConfig()
	}

	g.baseRng = rand.New(rand.NewSource(runtime.Seed))
	g.session = NewSession(g.prepare(cfg), nil)
	g.paused = false
	g.clock = 0
	g.trace = nil
	g.pending = nil
	g.lastRun = nil
}

// ConfigError returns the error that made the last Reset fall back to the
// default config, or nil.
func (g *Game) ConfigError() error {
	return g.loadErr
}

// prepare applies the difficulty preset and the variant's recycle policy.
func (g *Game) prepare(cfg config.RunnerConfig) config.RunnerConfig {
	cfg = cfg.Clone()
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	if g.variant == VariantSpaced {
		cfg.Recycle.AvoidOverlap = true
	}
	return cfg
}

// SetConfig queues a new config for the next run. A session that has not
// started yet picks it up immediately.
func (g *Game) SetConfig(cfg config.RunnerConfig) {
	prepared := g.prepare(cfg)
	if g.session != nil && g.session.Reconfigure(prepared) {
		g.pending = nil
		return
	}
	g.pending = &prepared
}

// start begins a new run with a fresh seed and trace.
func (g *Game) start() {
	if g.pending != nil {
		g.session.configure(*g.pending)
		g.pending = nil
	}
	g.runSeed = g.baseRng.Int63()
	g.session.SetRand(newRunRand(g.runSeed))
	g.session.Start()
	g.clock = 0
	g.paused = false
	g.trace = NewTrace()
	g.lastRun = nil
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session.Phase() != PhaseRunning {
		if in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) {
			g.start()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	input := Input{
		Left:  in.Has(core.ActionLeft),
		Right: in.Has(core.ActionRight),
		Jump:  in.Has(core.ActionJump),
	}
	g.session.SetInput(input)
	g.trace.Add(input.Mask())

	g.clock += g.runtime.FrameMillis()
	g.session.Update(g.clock)

	result := core.StepResult{State: g.State()}
	if g.session.GameOver() {
		result.Finished = true
		g.lastRun = g.currentRun()
	}
	return result
}

// currentRun describes the run in progress or just finished.
func (g *Game) currentRun() *Run {
	return &Run{
		Variant:  g.variant,
		Player:   g.runtime.Player,
		Seed:     g.runSeed,
		TickRate: g.runtime.TickRate,
		Config:   g.session.Config(),
		Trace:    g.trace,
		Outcome: Outcome{
			Score:     g.session.Score(),
			EndReason: g.session.EndReason(),
			Stats:     g.session.Stats(),
		},
	}
}

// LastRun returns the most recently finished run, if any.
func (g *Game) LastRun() (Run, bool) {
	if g.lastRun == nil {
		return Run{}, false
	}
	return *g.lastRun, true
}

// Session exposes the underlying simulation.
func (g *Game) Session() *Session {
	return g.session
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		Started:  g.session.Started(),
		GameOver: g.session.GameOver(),
		Paused:   g.paused,
	}
}

func init() {
	registry.Register(VariantClassic, "Platforms respawn anywhere, overlaps allowed", func() registry.Game {
		return New(VariantClassic)
	})
	registry.Register(VariantSpaced, "Recycled platforms never overlap another platform", func() registry.Game {
		return New(VariantSpaced)
	})
}
