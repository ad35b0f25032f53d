package actor

import (
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/timer"
)

// Pac is the player character.
type Pac struct {
	Creature

	// Power runs while Pac can eat ghosts.
	Power *timer.TickTimer
	// RestingTicks makes Pac skip movement after eating.
	RestingTicks int
	// StarvingTicks counts the ticks since Pac last ate something.
	StarvingTicks int
	Autopilot     bool
	Immune        bool
	Dead          bool
}

// NewPac creates Pac with a stopped power timer.
func NewPac() *Pac {
	return &Pac{
		Creature: Creature{Name: "Pac-Man"},
		Power:    timer.New("pac-power"),
	}
}

// Reset prepares Pac for a new round at pos.
func (p *Pac) Reset(pos core.Vector2f) {
	p.PlaceAt(pos, core.DirLeft)
	p.Power.ResetIndefinite()
	p.RestingTicks = 0
	p.StarvingTicks = 0
	p.Dead = false
}

// HasPower reports whether the power timer is running.
func (p *Pac) HasPower() bool {
	return p.Power.IsRunning()
}
