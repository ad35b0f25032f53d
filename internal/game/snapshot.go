package game

import (
	"github.com/vovakirdan/tui-pacman/internal/actor"
	"github.com/vovakirdan/tui-pacman/internal/core"
)

// Snapshot captures the observable state of a game.
type Snapshot struct {
	Tick        int64
	State       GameState
	Level       int
	Points      int
	Lives       int
	Credits     int
	UneatenFood int
	Pac         core.Vector2f
	Ghosts      [4]GhostSnapshot
	BonusState  actor.BonusState
}

// GhostSnapshot captures one ghost.
type GhostSnapshot struct {
	Pos   core.Vector2f
	State actor.GhostState
}

// Snapshot returns the current state of the game.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Tick:    c.tick,
		State:   c.State(),
		Points:  c.score.Points,
		Lives:   c.lives,
		Credits: c.credits,
	}
	l := c.level
	if l == nil {
		return s
	}
	s.Level = l.Number
	s.UneatenFood = l.World.UneatenFoodCount()
	s.Pac = l.Pac.Pos
	for i, g := range l.Ghosts {
		s.Ghosts[i] = GhostSnapshot{Pos: g.Pos, State: g.State}
	}
	s.BonusState = l.Bonus.State
	return s
}
