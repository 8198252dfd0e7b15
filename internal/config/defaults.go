package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in runner configuration.
// It mirrors defaults/runner.yaml and is used if the embedded file cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		World: WorldConfig{
			Width:  800,
			Height: 400,
		},
		Physics: PhysicsConfig{
			Gravity:          0.5,
			JumpPower:        10,
			PlayerSpeed:      5,
			InitialGameSpeed: 2,
			SpeedIncrement:   0.1,
		},
		Player: PlayerConfig{
			StartX:          50,
			StartFromBottom: 100,
			Width:           50,
			Height:          50,
		},
		Recycle: RecycleConfig{
			SpawnBand:     200,
			MinFromBottom: 50,
			MaxFromBottom: 250,
			MinWidth:      50,
			MaxWidth:      150,
			AvoidOverlap:  false,
		},
		Platforms: []PlatformSpec{
			{X: 0, FromBottom: 50, Height: 50, FullWidth: true},
			{X: 400, FromBottom: 100, Width: 100, Height: 20},
			{X: 800, FromBottom: 150, Width: 150, Height: 20},
			{X: 1200, FromBottom: 200, Width: 100, Height: 20},
		},
		Coins: CoinConfig{
			Width:  30,
			Height: 30,
			Layout: []CoinSpec{
				{X: 500, FromBottom: 150},
				{X: 600, FromBottom: 200},
				{X: 700, FromBottom: 250},
				{X: 900, FromBottom: 200},
				{X: 1000, FromBottom: 150},
				{X: 1100, FromBottom: 100},
			},
		},
		Enemies: EnemyConfig{
			Width:             50,
			Height:            50,
			FromBottom:        70,
			Jitter:            50,
			MaxEnemies:        5,
			SpawnIntervalMax:  3000,
			SpawnIntervalMin:  2500,
			SpawnIntervalStep: 50,
		},
	}
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
