// Package hunting times the alternating scatter and chase phases of a level.
package hunting

import (
	"fmt"

	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/event"
	"github.com/vovakirdan/tui-pacman/internal/timer"
)

// NumPhases is the number of phases of every level.
const NumPhases = 8

// PhaseKind tells whether ghosts scatter or chase.
type PhaseKind int

const (
	Scatter PhaseKind = iota
	Chase
)

func (k PhaseKind) String() string {
	if k == Scatter {
		return "SCATTER"
	}
	return "CHASE"
}

// KindOf returns the kind of the phase with the given index. Even phases
// scatter, odd phases chase.
func KindOf(phaseIndex int) PhaseKind {
	if phaseIndex%2 == 0 {
		return Scatter
	}
	return Chase
}

const inf = timer.Indefinite

// Phase durations in ticks by level bracket.
var (
	level1Phases = [NumPhases]int64{420, 1200, 420, 1200, 300, 1200, 300, inf}
	level2Phases = [NumPhases]int64{420, 1200, 420, 1200, 300, 61980, 1, inf}
	level5Phases = [NumPhases]int64{300, 1200, 300, 1200, 300, 62262, 1, inf}
)

// Durations returns the phase table of a level.
func Durations(levelNumber int) [NumPhases]int64 {
	core.MustLevel(levelNumber)
	switch {
	case levelNumber == 1:
		return level1Phases
	case levelNumber <= 4:
		return level2Phases
	default:
		return level5Phases
	}
}

// Ticks returns the duration of a phase of a level.
func Ticks(levelNumber, phaseIndex int) int64 {
	if phaseIndex < 0 || phaseIndex >= NumPhases {
		panic(core.Preconditionf("hunting phase %d outside 0..%d", phaseIndex, NumPhases-1))
	}
	return Durations(levelNumber)[phaseIndex]
}

// Controller advances the hunting phases of the current level.
type Controller struct {
	bus        *event.Bus
	level      int
	phaseIndex int
	timer      *timer.TickTimer
}

// NewController creates a controller publishing to bus.
func NewController(bus *event.Bus) *Controller {
	return &Controller{bus: bus, level: 1, timer: timer.New("hunting")}
}

// Reset prepares the first phase of a level without starting it.
func (c *Controller) Reset(levelNumber int) {
	core.MustLevel(levelNumber)
	c.level = levelNumber
	c.phaseIndex = 0
	c.timer.ResetTicks(Ticks(levelNumber, 0))
}

// Start begins the first phase.
func (c *Controller) Start() {
	c.startPhase(0)
}

func (c *Controller) startPhase(index int) {
	c.phaseIndex = index
	c.timer.ResetTicks(Ticks(c.level, index))
	c.timer.Start()
	c.bus.Publish(event.HuntingPhaseStarted{Phase: index, Scatter: KindOf(index) == Scatter})
}

// Update advances the phase timer by one tick and starts the next phase when
// it expires. It reports whether a new phase started.
func (c *Controller) Update() bool {
	c.timer.Tick()
	if !c.timer.HasExpired() || c.phaseIndex == NumPhases-1 {
		return false
	}
	c.startPhase(c.phaseIndex + 1)
	return true
}

// Stop pauses the phase timer, for example while Pac has power.
func (c *Controller) Stop() { c.timer.Stop() }

// Resume continues a paused phase timer.
func (c *Controller) Resume() {
	if c.timer.IsStopped() {
		c.timer.Start()
	}
}

func (c *Controller) Level() int              { return c.level }
func (c *Controller) PhaseIndex() int         { return c.phaseIndex }
func (c *Controller) Kind() PhaseKind         { return KindOf(c.phaseIndex) }
func (c *Controller) InScatter() bool         { return c.Kind() == Scatter }
func (c *Controller) InChase() bool           { return c.Kind() == Chase }
func (c *Controller) Timer() *timer.TickTimer { return c.timer }

func (c *Controller) String() string {
	return fmt.Sprintf("phase %d (%s) %s", c.phaseIndex, c.Kind(), c.timer)
}
