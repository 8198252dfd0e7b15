package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Simulation ticks per second (default 60)
	Seed     int64  // RNG seed for deterministic gameplay
	Player   string // Who is playing (local user or SSH login)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FrameMillis returns the duration of one tick in milliseconds.
func (c RuntimeConfig) FrameMillis() float64 {
	if c.TickRate <= 0 {
		return 1000.0 / 60.0
	}
	return 1000.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Started  bool // Whether a run has been started since Reset
	GameOver bool // Whether the current run has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Finished is set on the tick a run ends.
	Finished bool
}
