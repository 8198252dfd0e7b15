// Package config provides YAML-based configuration loading, difficulty
// presets and config file watching for the runner.
package config

import (
	"errors"
	"fmt"
)

// RunnerConfig contains all tunables of the runner simulation.
type RunnerConfig struct {
	World     WorldConfig    `yaml:"world"`
	Physics   PhysicsConfig  `yaml:"physics"`
	Player    PlayerConfig   `yaml:"player"`
	Recycle   RecycleConfig  `yaml:"recycle"`
	Platforms []PlatformSpec `yaml:"platforms"`
	Coins     CoinConfig     `yaml:"coins"`
	Enemies   EnemyConfig    `yaml:"enemies"`
}

// WorldConfig defines the size of the playfield in world units.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines per-tick motion constants.
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity"`
	JumpPower        float64 `yaml:"jump_power"`
	PlayerSpeed      float64 `yaml:"player_speed"`
	InitialGameSpeed float64 `yaml:"initial_game_speed"`
	SpeedIncrement   float64 `yaml:"speed_increment"` // Added to game speed per recycled platform
}

// PlayerConfig defines the player's size and start position.
type PlayerConfig struct {
	StartX          float64 `yaml:"start_x"`
	StartFromBottom float64 `yaml:"start_from_bottom"`
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
}

// RecycleConfig defines where objects reappear after scrolling off-screen.
type RecycleConfig struct {
	SpawnBand     float64 `yaml:"spawn_band"` // New x is in [world width, world width + band)
	MinFromBottom float64 `yaml:"min_from_bottom"`
	MaxFromBottom float64 `yaml:"max_from_bottom"`
	MinWidth      float64 `yaml:"min_width"`
	MaxWidth      float64 `yaml:"max_width"`
	AvoidOverlap  bool    `yaml:"avoid_overlap_on_recycle"`
}

// PlatformSpec is one platform of the initial layout.
type PlatformSpec struct {
	X          float64 `yaml:"x"`
	FromBottom float64 `yaml:"from_bottom"` // Top edge distance from the world bottom
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	FullWidth  bool    `yaml:"full_width"` // Width follows the world width
}

// CoinConfig defines coin size and the initial layout.
type CoinConfig struct {
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Layout []CoinSpec `yaml:"layout"`
}

// CoinSpec is one coin of the initial layout.
type CoinSpec struct {
	X          float64 `yaml:"x"`
	FromBottom float64 `yaml:"from_bottom"`
}

// EnemyConfig defines enemy size, placement and spawn timing.
type EnemyConfig struct {
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	FromBottom        float64 `yaml:"from_bottom"`
	Jitter            float64 `yaml:"jitter"` // Random extra height above FromBottom
	MaxEnemies        int     `yaml:"max_enemies"`
	SpawnIntervalMax  int     `yaml:"spawn_interval_max"` // Initial interval, ms
	SpawnIntervalMin  int     `yaml:"spawn_interval_min"` // Floor, ms
	SpawnIntervalStep int     `yaml:"spawn_interval_step"`
}

// Validate checks that the simulation can run with this config.
// Only structural problems are rejected; odd but runnable tunings pass.
func (c RunnerConfig) Validate() error {
	var errs []error

	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %gx%g", c.World.Width, c.World.Height))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player size must be positive"))
	}
	if c.Recycle.MinWidth > c.Recycle.MaxWidth {
		errs = append(errs, fmt.Errorf("recycle.min_width %g exceeds max_width %g", c.Recycle.MinWidth, c.Recycle.MaxWidth))
	}
	if c.Recycle.MinFromBottom > c.Recycle.MaxFromBottom {
		errs = append(errs, fmt.Errorf("recycle.min_from_bottom %g exceeds max_from_bottom %g", c.Recycle.MinFromBottom, c.Recycle.MaxFromBottom))
	}
	if c.Recycle.SpawnBand < 0 {
		errs = append(errs, errors.New("recycle.spawn_band must not be negative"))
	}
	if c.Enemies.MaxEnemies < 0 {
		errs = append(errs, errors.New("enemies.max_enemies must not be negative"))
	}
	if c.Enemies.SpawnIntervalMin > c.Enemies.SpawnIntervalMax {
		errs = append(errs, fmt.Errorf("enemies.spawn_interval_min %d exceeds spawn_interval_max %d",
			c.Enemies.SpawnIntervalMin, c.Enemies.SpawnIntervalMax))
	}
	if c.Enemies.SpawnIntervalStep < 0 {
		errs = append(errs, errors.New("enemies.spawn_interval_step must not be negative"))
	}
	for i, p := range c.Platforms {
		if !p.FullWidth && p.Width <= 0 {
			errs = append(errs, fmt.Errorf("platforms[%d] needs a positive width or full_width", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid runner config: %w", errors.Join(errs...))
	}
	return nil
}

// Clone returns a deep copy so layouts can be modified independently.
func (c RunnerConfig) Clone() RunnerConfig {
	out := c
	out.Platforms = append([]PlatformSpec(nil), c.Platforms...)
	out.Coins.Layout = append([]CoinSpec(nil), c.Coins.Layout...)
	return out
}
