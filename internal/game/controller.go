// Package game runs a Pac-Man game: the game state machine, level
// construction, Pac and ghost updates, food and bonus handling.
//
// A Controller is driven by calling Update once per tick at
// core.TicksPerSecond. Everything happens on the caller's goroutine;
// observers read the exported state between ticks and subscribe to the
// event bus.
package game

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pacman/internal/ai"
	"github.com/vovakirdan/tui-pacman/internal/config"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/event"
	"github.com/vovakirdan/tui-pacman/internal/fsm"
	"github.com/vovakirdan/tui-pacman/internal/hunting"
	"github.com/vovakirdan/tui-pacman/internal/maps"
	"github.com/vovakirdan/tui-pacman/internal/timer"
)

// Controller is the simulation context shared by all game states.
type Controller struct {
	variant    Variant
	cfg        config.PacmanConfig
	logger     *log.Logger
	bus        *event.Bus
	rng        *rand.Rand
	fsm        *fsm.Machine[GameState, *Controller]
	hunting    *hunting.Controller
	maps       MapProvider
	targeting  ai.Targeting
	speeds     SpeedTable
	autopilot  *ai.Autopilot
	difficulty *config.DifficultyManager
	store      HighScoreStore
	now        func() time.Time

	level        *Level
	input        core.InputFrame
	tick         int64
	credits      int
	lives        int
	playing      bool
	newGame      bool
	score        Score
	highScore    Score
	extraLifeWon bool
	autopilotOn  bool
	mapMode      maps.SelectionMode
	cutScene     int
	testLevel    int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. A nil logger means log.Default().
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSeed seeds the random source used for bonus timing, frightened
// ghosts and random map selection.
func WithSeed(seed int64) Option {
	return func(c *Controller) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithBus makes the controller publish to bus.
func WithBus(bus *event.Bus) Option {
	return func(c *Controller) { c.bus = bus }
}

// WithMaps sets where level mazes come from.
func WithMaps(p MapProvider) Option {
	return func(c *Controller) { c.maps = p }
}

// WithTargeting replaces the chase targets of the ghosts.
func WithTargeting(t ai.Targeting) Option {
	return func(c *Controller) { c.targeting = t }
}

// WithSpeeds replaces the speed table.
func WithSpeeds(s SpeedTable) Option {
	return func(c *Controller) { c.speeds = s }
}

// WithStore persists the high score.
func WithStore(s HighScoreStore) Option {
	return func(c *Controller) { c.store = s }
}

// WithClock sets the clock used to date score records.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// NewController creates a game of the given variant and enters BOOT.
func NewController(v Variant, cfg config.PacmanConfig, opts ...Option) *Controller {
	c := &Controller{
		variant:   v,
		cfg:       cfg,
		logger:    log.Default(),
		bus:       event.NewBus(),
		rng:       rand.New(rand.NewSource(1)),
		maps:      ArcadeMaps{},
		targeting: ai.ArcadeTargeting{},
		speeds:    ArcadeSpeeds{},
		autopilot: ai.NewAutopilot(),
		now:       time.Now,
		input:     core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	c.hunting = hunting.NewController(c.bus)
	c.autopilotOn = cfg.AI.Autopilot

	mode, err := maps.ParseSelectionMode(cfg.Maps.Selection)
	if err != nil {
		c.logger.Warn("invalid map selection, using standard maps", "err", err)
	}
	c.mapMode = mode

	if c.store != nil {
		hs, err := c.store.LoadHighScore(v.ID)
		if err != nil {
			c.logger.Error("cannot load high score", "variant", v.ID, "err", err)
		} else {
			c.highScore = hs
		}
	}

	c.fsm = fsm.New(v.ID, c, c.logger, States()...)
	c.fsm.AddListener(func(old, next GameState) {
		e := event.GameStateChanged{New: next}
		if _, ok := c.fsm.Previous(); ok {
			e.Old = old
		}
		c.bus.Publish(e)
	})
	c.Restart()
	return c
}

// Restart abandons whatever is going on and boots the game again.
func (c *Controller) Restart() {
	c.level = nil
	c.playing = false
	c.lives = 0
	c.score = Score{}
	c.fsm.Restart(Boot)
}

// Update advances the game by one tick with the given input.
func (c *Controller) Update(in core.InputFrame) {
	c.input = in
	c.fsm.Update()
	c.tick++
}

// StartTesting enters one of the testing states.
func (c *Controller) StartTesting(s GameState) {
	if s != TestingLevels && s != TestingCutScenes {
		panic(core.Preconditionf("%s is not a testing state", s))
	}
	c.fsm.ChangeState(s)
}

func (c *Controller) Variant() Variant                 { return c.variant }
func (c *Controller) Config() config.PacmanConfig      { return c.cfg }
func (c *Controller) Logger() *log.Logger              { return c.logger }
func (c *Controller) Bus() *event.Bus                  { return c.bus }
func (c *Controller) Hunting() *hunting.Controller     { return c.hunting }
func (c *Controller) Level() *Level                    { return c.level }
func (c *Controller) Tick() int64                      { return c.tick }
func (c *Controller) Credits() int                     { return c.credits }
func (c *Controller) Lives() int                       { return c.lives }
func (c *Controller) Playing() bool                    { return c.playing }
func (c *Controller) Score() Score                     { return c.score }
func (c *Controller) HighScore() Score                 { return c.highScore }
func (c *Controller) MapSelection() maps.SelectionMode { return c.mapMode }
func (c *Controller) CutScene() int                    { return c.cutScene }

// State returns the current game state.
func (c *Controller) State() GameState {
	s, _ := c.fsm.Current()
	return s
}

// StateTimer returns the timer of the current state.
func (c *Controller) StateTimer() *timer.TickTimer {
	return c.fsm.CurrentTimer()
}

// AddCredit inserts a coin.
func (c *Controller) AddCredit() {
	if c.credits >= c.cfg.Gameplay.MaxCredits {
		return
	}
	c.credits++
	c.bus.Publish(event.CreditAdded{Credits: c.credits})
}

// startGame begins a new game at the configured start level.
func (c *Controller) startGame() {
	c.score = Score{}
	c.extraLifeWon = false
	c.lives = max(c.cfg.Gameplay.Lives, 1)
	if err := c.buildOrFallback(max(c.cfg.Gameplay.StartLevel, 1), false); err != nil {
		c.logger.Error("cannot start game", "err", err)
		return
	}
	c.playing = true
	c.newGame = true
	c.logger.Info("game started", "variant", c.variant.ID, "lives", c.lives)
	c.fsm.ChangeState(Ready)
}

// nextLevel builds the level after the current one.
func (c *Controller) nextLevel() {
	n := c.level.Number + 1
	if err := c.buildOrFallback(n, false); err != nil {
		c.logger.Error("cannot build next level", "level", n, "err", err)
	}
}

// addPoints adds to the score and awards the extra life.
func (c *Controller) addPoints(points int) {
	if c.level == nil || c.level.Demo {
		return
	}
	before := c.score.Points
	c.score.Points += points
	c.score.Level = c.level.Number
	threshold := c.cfg.Gameplay.ExtraLifeScore
	if threshold > 0 && !c.extraLifeWon && before < threshold && c.score.Points >= threshold {
		c.extraLifeWon = true
		c.lives++
		c.bus.Publish(event.ExtraLifeWon{Lives: c.lives})
	}
}

// recordHighScore keeps the score if it beats the high score and persists it.
func (c *Controller) recordHighScore() {
	if c.score.Points <= c.highScore.Points {
		return
	}
	c.score.Date = c.now()
	c.highScore = c.score
	c.logger.Info("new high score", "variant", c.variant.ID, "points", c.score.Points, "level", c.score.Level)
	if c.store == nil {
		return
	}
	if err := c.store.SaveHighScore(c.variant.ID, c.highScore); err != nil {
		c.logger.Error("cannot save high score", "variant", c.variant.ID, "err", err)
	}
}

// pacAccess reports whether Pac may enter tile.
func (c *Controller) pacAccess(tile core.Vector2i) bool {
	w := c.level.World
	return w.InsideBounds(tile) && !w.IsBlockedTile(tile) && !w.IsDoor(tile)
}

// ghostAccess reports whether a ghost moving through the maze may enter
// tile. The house is entered and left without the grid.
func (c *Controller) ghostAccess(tile core.Vector2i) bool {
	return c.pacAccess(tile)
}
