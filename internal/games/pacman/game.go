// Package pacman adapts the Pac-Man simulation to the platform's game
// registry. The platform drives it through registry.Game; the simulation
// itself lives in internal/game.
package pacman

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pacman/internal/ai"
	"github.com/vovakirdan/tui-pacman/internal/config"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/game"
	"github.com/vovakirdan/tui-pacman/internal/maps"
	"github.com/vovakirdan/tui-pacman/internal/registry"
)

// Env carries the host services a game instance uses. The zero value runs
// with the embedded configuration, no persistence and the default logger.
type Env struct {
	Config *config.PacmanConfig
	Store  game.HighScoreStore
	Logger *log.Logger
}

// Game implements registry.Game for one Pac-Man variant.
type Game struct {
	variant game.Variant
	env     Env

	ctrl   *game.Controller
	lib    *maps.Library
	cancel context.CancelFunc

	paused   bool
	tickRate int
	// carry accumulates simulation ticks owed to the host between steps.
	carry float64
}

// New creates a game for the given variant.
func New(v game.Variant) *Game {
	return &Game{variant: v}
}

// Configure replaces the host services. It takes effect on the next Reset.
func (g *Game) Configure(env Env) {
	g.env = env
}

// Configure passes env to g when g is a Pac-Man game. It reports whether
// g accepted it.
func Configure(g registry.Game, env Env) bool {
	pg, ok := g.(*Game)
	if ok {
		pg.Configure(env)
	}
	return ok
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return g.variant.ID }

// Title returns the display name for this game.
func (g *Game) Title() string { return g.variant.Title }

// Controller exposes the simulation for hosts that need more than
// registry.Game offers.
func (g *Game) Controller() *game.Controller { return g.ctrl }

func (g *Game) logger() *log.Logger {
	if g.env.Logger != nil {
		return g.env.Logger
	}
	return log.Default()
}

func (g *Game) config() config.PacmanConfig {
	if g.env.Config != nil {
		return *g.env.Config
	}
	return config.DefaultPacmanConfig()
}

// Reset builds a fresh simulation.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.Close()

	cfg := g.config()
	logger := g.logger().With("game", g.variant.ID)

	opts := []game.Option{
		game.WithLogger(logger),
		game.WithSeed(rc.Seed),
	}
	if g.env.Store != nil {
		opts = append(opts, game.WithStore(g.env.Store))
	}
	if g.variant.CustomMaps {
		if p, ok := g.openLibrary(cfg.Maps, logger); ok {
			opts = append(opts, game.WithMaps(p))
		}
	}
	if cfg.AI.ChaseScript != "" {
		st, err := ai.LoadScriptTargeting(cfg.AI.ChaseScript, ai.ArcadeTargeting{}, logger)
		if err != nil {
			logger.Warn("chase script disabled", "path", cfg.AI.ChaseScript, "err", err)
		} else {
			opts = append(opts, game.WithTargeting(st))
		}
	}

	g.ctrl = game.NewController(g.variant, cfg, opts...)
	g.paused = false
	g.carry = 0
	g.tickRate = rc.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.TicksPerSecond
	}
}

// openLibrary loads the maze library and starts the custom directory
// watcher when enabled.
func (g *Game) openLibrary(mc config.MapsConfig, logger *log.Logger) (game.MapProvider, bool) {
	lib, err := maps.NewLibrary(mc.CustomDir, logger)
	if err != nil {
		logger.Error("cannot load maze library", "err", err)
		return nil, false
	}
	g.lib = lib
	if mc.Watch {
		ctx, cancel := context.WithCancel(context.Background())
		if err := lib.Watch(ctx); err != nil {
			cancel()
			logger.Warn("custom map watcher disabled", "dir", lib.Dir(), "err", err)
		} else {
			g.cancel = cancel
		}
	}
	return game.LibraryMaps{Library: lib}, true
}

// Close stops the custom map watcher.
func (g *Game) Close() {
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

// Step advances the simulation by as many ticks as one host tick covers.
// Input is delivered to the first of them.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.carry += float64(core.TicksPerSecond) / float64(g.tickRate)
	for g.carry >= 1 {
		g.carry--
		g.ctrl.Update(in)
		in = core.InputFrame{}
	}
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:    g.ctrl.Score().Points,
		GameOver: g.ctrl.State() == game.GameOver,
		Paused:   g.paused,
	}
	if lvl := g.ctrl.Level(); lvl != nil && !lvl.Demo {
		st.Level = lvl.Number
	}
	return st
}

// Register both variants with the registry
func init() {
	registry.Register(game.Arcade.ID, func() registry.Game {
		return New(game.Arcade)
	})
	registry.Register(game.XXL.ID, func() registry.Game {
		return New(game.XXL)
	})
}
