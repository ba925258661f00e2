// Package registry maps game mode IDs to factories. Modes register
// themselves from init(), so hosts (CLI, menu, SSH sessions) can list and
// build them without importing game packages directly.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/candle-jumper/internal/core"
)

// Game is a playable mode. Implementations hold pure simulation state and
// never touch the terminal; the host maps keys, times ticks and displays the
// rendered screen buffer.
type Game interface {
	// ID is the stable mode identifier (e.g. "candles"), also the key runs
	// are stored under.
	ID() string

	// Title is the display name (e.g. "Candle Jumper").
	Title() string

	// Reset starts over with the screen size and seed in cfg.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick. in carries the actions and dtScale for the tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state. Render clears dst itself.
	Render(dst *core.Screen)

	// State reports score, reward and outcome.
	State() core.GameState
}

// Resizer is implemented by games that can follow a terminal resize without
// restarting. Hosts fall back to Reset for games that do not implement it.
type Resizer interface {
	Resize(cols, rows int)
}

// Describer is implemented by games with a one-line blurb for menus.
type Describer interface {
	Description() string
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game factory. The factory is called once to read the
// title and description. Panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}
	entries[id] = entry{info: info, factory: f}
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return result
}

// Create builds a new instance of the game with the given ID.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
