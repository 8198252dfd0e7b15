package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. Empty means "use the config as is".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal keeps the loaded values; fixed disables both difficulty ramps.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Physics.InitialGameSpeed = 1.5
		cfg.Physics.SpeedIncrement = 0.05
		cfg.Enemies.SpawnIntervalMax = 3500
		cfg.Enemies.SpawnIntervalMin = 3000
		cfg.Enemies.MaxEnemies = 3
	case DifficultyHard:
		cfg.Physics.InitialGameSpeed = 3
		cfg.Physics.SpeedIncrement = 0.15
		cfg.Enemies.SpawnIntervalMax = 2500
		cfg.Enemies.SpawnIntervalMin = 1800
	case DifficultyFixed:
		cfg.Physics.SpeedIncrement = 0
		cfg.Enemies.SpawnIntervalStep = 0
	}
}
