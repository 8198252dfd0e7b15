// Package registry maps game variant IDs to factories. Variants register
// themselves in init() functions so the CLI and the SSH server can list and
// create them without knowing the concrete types.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/coinrun/internal/core"
)

// Game is what the platform drives: one instance per player.
// Implementations contain pure logic; the platform handles input mapping,
// timing and display.
type Game interface {
	// ID returns the variant identifier (e.g. "classic"). Used on the
	// command line and in the run journal.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset loads configuration and prepares a new game that waits for start.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

type entry struct {
	factory Factory
	info    GameInfo
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a game factory to the registry.
// Panics if a game with the same ID is already registered.
func Register(id, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	entries[id] = entry{
		factory: f,
		info: GameInfo{
			ID:          id,
			Title:       f().Title(),
			Description: description,
		},
	}
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return e.factory(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
