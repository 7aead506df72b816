// Package registry maps game IDs to factories. Renderers register in init()
// so hosts can list and start them by ID alone.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/tui-doom/internal/core"
)

// Game is what every host drives: a fixed-tick simulation that draws into a
// cell buffer. Implementations carry no host dependencies.
type Game interface {
	// ID is the stable key used on the command line and in the score store.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a fresh game for the given screen size and seed. It is
	// also called to restart after game over.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick with the actions held during it.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// Describer is implemented by games with a one-line summary for menus and
// listings.
type Describer interface {
	Description() string
}

// GameInfo is the metadata captured when a game registers.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a new game instance.
type Factory func() Game

type entry struct {
	info GameInfo
	new  Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a factory under id. It panics on a duplicate id.
func Register(id string, f Factory) {
	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}

	mu.Lock()
	defer mu.Unlock()
	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{info: info, new: f}
}

// List returns every registered game ordered by ID.
func List() []GameInfo {
	mu.RLock()
	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	mu.RUnlock()

	slices.SortFunc(out, func(a, b GameInfo) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Lookup returns the metadata of a registered game.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entries[id]
	return e.info, ok
}

// Create returns a fresh instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.new(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
