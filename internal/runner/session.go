// Package runner implements the side-scrolling coin runner: a player runs and
// jumps across recycled platforms, collects coins and avoids enemies.
//
// Session holds the simulation. Game adapts it to the arcade platform
// (registry.Game) and adds pausing, a virtual clock and run recording.
package runner

import (
	"math"

	"gopkg.in/eapache/queue.v1"

	"github.com/vovakirdan/coinrun/internal/config"
	"github.com/vovakirdan/coinrun/internal/core"
)

// Phase is the state of a session.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not started"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// EndReason tells why a run ended.
type EndReason int

const (
	EndNone  EndReason = iota
	EndEnemy           // Touched an enemy
	EndFell            // Fell below the world
)

// String returns the stable name used in the run journal.
func (r EndReason) String() string {
	switch r {
	case EndEnemy:
		return "enemy"
	case EndFell:
		return "fell"
	default:
		return "none"
	}
}

// ParseEndReason is the inverse of EndReason.String.
func ParseEndReason(s string) EndReason {
	switch s {
	case "enemy":
		return EndEnemy
	case "fell":
		return EndFell
	default:
		return EndNone
	}
}

// Stats counts what happened during a run.
type Stats struct {
	Frames            int
	CoinsCollected    int
	PlatformsRecycled int
	EnemiesSpawned    int
}

// Session owns all state of one player's game. It is not safe for
// concurrent use; the platform calls it from a single loop.
type Session struct {
	cfg   config.RunnerConfig
	rng   Rand
	phase Phase
	input Input

	player    Player
	platforms []Platform
	coins     []Coin
	enemies   *queue.Queue // *Enemy, oldest first

	initialPlatforms []Platform
	initialCoins     []Coin

	score         int
	gameSpeed     float64
	lastSpawn     float64
	spawnInterval float64
	endReason     EndReason
	stats         Stats
}

// NewSession creates a session in the NotStarted phase with the initial
// layout in place.
func NewSession(cfg config.RunnerConfig, rng Rand) *Session {
	s := &Session{rng: rng}
	s.configure(cfg)
	s.reset()
	return s
}

// Reconfigure replaces the config of a session that has not started yet.
// Once a run has started it is ignored and false is returned: a running
// session keeps its config and a finished one keeps its final state.
func (s *Session) Reconfigure(cfg config.RunnerConfig) bool {
	if s.phase != PhaseNotStarted {
		return false
	}
	s.configure(cfg)
	s.reset()
	return true
}

// SetRand replaces the random source used from now on.
func (s *Session) SetRand(rng Rand) {
	s.rng = rng
}

// configure builds the initial layouts from the config. Layout positions
// are given relative to the world bottom.
func (s *Session) configure(cfg config.RunnerConfig) {
	s.cfg = cfg.Clone()
	worldW, worldH := cfg.World.Width, cfg.World.Height

	s.initialPlatforms = make([]Platform, 0, len(cfg.Platforms))
	for _, spec := range cfg.Platforms {
		w := spec.Width
		if spec.FullWidth {
			w = worldW
		}
		s.initialPlatforms = append(s.initialPlatforms, Platform{
			X:      spec.X,
			Y:      worldH - spec.FromBottom,
			Width:  w,
			Height: spec.Height,
		})
	}

	s.initialCoins = make([]Coin, 0, len(cfg.Coins.Layout))
	for _, spec := range cfg.Coins.Layout {
		s.initialCoins = append(s.initialCoins, Coin{
			X:      spec.X,
			Y:      worldH - spec.FromBottom,
			Width:  cfg.Coins.Width,
			Height: cfg.Coins.Height,
			Active: true,
		})
	}
}

// reset restores every piece of per-run state.
func (s *Session) reset() {
	s.score = 0
	s.gameSpeed = s.cfg.Physics.InitialGameSpeed
	s.player = Player{
		X:         s.cfg.Player.StartX,
		Y:         s.cfg.World.Height - s.cfg.Player.StartFromBottom,
		Width:     s.cfg.Player.Width,
		Height:    s.cfg.Player.Height,
		Speed:     s.cfg.Physics.PlayerSpeed,
		Gravity:   s.cfg.Physics.Gravity,
		JumpPower: s.cfg.Physics.JumpPower,
	}
	s.platforms = append(s.platforms[:0], s.initialPlatforms...)
	s.coins = append(s.coins[:0], s.initialCoins...)
	s.enemies = queue.New()
	s.lastSpawn = 0
	s.spawnInterval = float64(s.cfg.Enemies.SpawnIntervalMax)
	s.endReason = EndNone
	s.stats = Stats{}
}

// Start begins a fresh run from any phase.
func (s *Session) Start() {
	s.reset()
	s.phase = PhaseRunning
}

// Update advances the simulation by one frame. now is a timestamp in
// milliseconds that must not decrease within a run. Nothing happens unless
// the session is running.
//
// Platforms and coins move first so the player collides with this frame's
// geometry; enemies spawn and move last.
func (s *Session) Update(now float64) {
	if s.phase != PhaseRunning {
		return
	}
	s.stats.Frames++

	s.movePlatforms()
	s.moveCoins()
	s.updatePlayer()
	s.updateEnemies(now)
}

// endRun latches game over. The first reason wins.
func (s *Session) endRun(reason EndReason) {
	if s.phase == PhaseGameOver {
		return
	}
	s.phase = PhaseGameOver
	s.endReason = reason
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Started reports whether a run has been started.
func (s *Session) Started() bool { return s.phase != PhaseNotStarted }

// GameOver reports whether the current run has ended.
func (s *Session) GameOver() bool { return s.phase == PhaseGameOver }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// GameSpeed returns the current scroll speed.
func (s *Session) GameSpeed() float64 { return s.gameSpeed }

// SpawnInterval returns the current enemy spawn interval in milliseconds.
func (s *Session) SpawnInterval() float64 { return s.spawnInterval }

// EndReason returns why the last run ended.
func (s *Session) EndReason() EndReason { return s.endReason }

// Stats returns the counters of the current run.
func (s *Session) Stats() Stats { return s.stats }

// Config returns the config the session runs with.
func (s *Session) Config() config.RunnerConfig { return s.cfg.Clone() }

// Player returns a copy of the player.
func (s *Session) Player() Player { return s.player }

// Platforms returns a copy of the platforms in layout order.
func (s *Session) Platforms() []Platform {
	return append([]Platform(nil), s.platforms...)
}

// Coins returns copies of the coins still in play, in layout order.
func (s *Session) Coins() []Coin {
	out := make([]Coin, 0, len(s.coins))
	for _, c := range s.coins {
		if c.Active {
			out = append(out, c)
		}
	}
	return out
}

// Enemies returns copies of the enemies, oldest first.
func (s *Session) Enemies() []Enemy {
	out := make([]Enemy, 0, s.enemies.Length())
	for i := 0; i < s.enemies.Length(); i++ {
		out = append(out, *s.enemies.Get(i).(*Enemy))
	}
	return out
}

// Snapshot is a read-only view of a session for rendering.
type Snapshot struct {
	Phase         Phase
	World         core.Box
	Player        core.Box
	Grounded      bool
	Platforms     []core.Box
	Coins         []core.Box
	Enemies       []core.Box
	Score         int
	GameSpeed     float64
	SpawnInterval float64
	EndReason     EndReason
}

// Snapshot copies the state the renderer needs.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:         s.phase,
		World:         core.NewBox(0, 0, s.cfg.World.Width, s.cfg.World.Height),
		Player:        s.player.Box(),
		Grounded:      s.player.Grounded,
		Platforms:     make([]core.Box, 0, len(s.platforms)),
		Coins:         make([]core.Box, 0, len(s.coins)),
		Enemies:       make([]core.Box, 0, s.enemies.Length()),
		Score:         s.score,
		GameSpeed:     s.gameSpeed,
		SpawnInterval: s.spawnInterval,
		EndReason:     s.endReason,
	}
	for _, p := range s.platforms {
		snap.Platforms = append(snap.Platforms, p.Box())
	}
	for _, c := range s.Coins() {
		snap.Coins = append(snap.Coins, c.Box())
	}
	for _, e := range s.Enemies() {
		snap.Enemies = append(snap.Enemies, e.Box())
	}
	return snap
}

// roundSpeed hides float drift from repeated increments in displays.
func roundSpeed(v float64) float64 {
	return math.Round(v*100) / 100
}
