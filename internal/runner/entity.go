package runner

import "github.com/vovakirdan/coinrun/internal/core"

// Player is the controllable runner. X and Y are the top-left corner.
type Player struct {
	X, Y      float64
	DY        float64 // Vertical velocity, positive is down
	Width     float64
	Height    float64
	Speed     float64 // Horizontal speed per tick while a direction is held
	Gravity   float64
	JumpPower float64
	Grounded  bool
}

// Box returns the player's collision box.
func (p Player) Box() core.Box {
	return core.NewBox(p.X, p.Y, p.Width, p.Height)
}

// Platform is a solid ledge the player can land on.
type Platform struct {
	X, Y   float64
	Width  float64
	Height float64
}

// Box returns the platform's collision box.
func (p Platform) Box() core.Box {
	return core.NewBox(p.X, p.Y, p.Width, p.Height)
}

// Coin is a pickup. Collected coins stay in their slot with Active cleared.
type Coin struct {
	X, Y   float64
	Width  float64
	Height float64
	Active bool
}

// Box returns the coin's collision box.
func (c Coin) Box() core.Box {
	return core.NewBox(c.X, c.Y, c.Width, c.Height)
}

// Enemy walks left at its own speed, fixed when it spawns.
type Enemy struct {
	X, Y   float64
	Width  float64
	Height float64
	Speed  float64
}

// Box returns the enemy's collision box.
func (e Enemy) Box() core.Box {
	return core.NewBox(e.X, e.Y, e.Width, e.Height)
}

// offScreen reports whether a box has scrolled fully past the left edge.
func offScreen(b core.Box) bool {
	return b.Right() < 0
}

// Rand is the random source used for recycling and spawning.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}
