// Package registry maps variant IDs to game factories. Variants register
// themselves from init so the hosts never import a concrete game.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

// ErrUnknownGame is returned by Create for an unregistered ID.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is what a host drives: a fixed-tick simulation that renders into a
// character screen. Implementations must not depend on a terminal library.
type Game interface {
	// ID is the stable identifier used on the command line and as the
	// score storage key, for example "pacman_xxl".
	ID() string
	Title() string

	// Reset starts a fresh session. It is called once before the first
	// Step and again on every restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances one host tick with the actions held during it.
	Step(in core.InputFrame) core.StepResult

	// Render draws into dst, which the host clears beforehand.
	Render(dst *core.Screen)

	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a new, unreset game instance.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register adds a factory under id. It panics on a duplicate or empty id,
// which can only happen through a programming error.
func Register(id string, f Factory) {
	if id == "" || f == nil {
		panic("registry: Register needs an id and a factory")
	}
	mu.Lock()
	defer mu.Unlock()
	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, title: f().Title()}
}

// List returns the registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()
	list := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		list = append(list, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(list, func(a, b GameInfo) int { return strings.Compare(a.ID, b.ID) })
	return list
}

// Create returns a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
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
