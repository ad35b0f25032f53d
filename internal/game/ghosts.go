package game

import (
	"math"

	"github.com/vovakirdan/tui-pacman/internal/actor"
	"github.com/vovakirdan/tui-pacman/internal/ai"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/event"
)

const posEps = 1e-6

func (c *Controller) updateGhosts() {
	for _, g := range c.level.Ghosts {
		switch g.State {
		case actor.Locked:
			c.bounce(g)
		case actor.LeavingHouse:
			c.leaveHouse(g)
		case actor.Hunting:
			c.hunt(g)
		case actor.Frightened:
			c.wander(g)
		case actor.ReturningHome:
			c.returnHome(g)
		}
	}
}

// ghostSpeed returns the speed of a ghost at its current position.
func (c *Controller) ghostSpeed(g *actor.Ghost) float64 {
	l := c.level
	s := l.Speeds
	switch {
	case g.State == actor.ReturningHome:
		return s.GhostReturning
	case g.InsideHouse():
		return s.GhostHouse
	case l.World.IsTunnel(g.Tile()):
		return s.GhostTunnel
	case g.State == actor.Frightened:
		return s.GhostFrightened
	case g.ID == actor.Red && l.Elroy() == 2:
		return s.Elroy2
	case g.ID == actor.Red && l.Elroy() == 1:
		return s.Elroy1
	}
	return s.Ghost
}

// huntingTarget returns the tile a hunting ghost heads for. The red ghost
// keeps chasing during scatter phases once Cruise Elroy kicked in.
func (c *Controller) huntingTarget(g *actor.Ghost) core.Vector2i {
	l := c.level
	if c.hunting.InScatter() && !(g.ID == actor.Red && l.Elroy() > 0) {
		return l.scatter[g.ID]
	}
	return c.targeting.ChaseTarget(ai.Situation{
		Ghost:       g.ID,
		GhostTile:   g.Tile(),
		PacTile:     l.Pac.Tile(),
		PacDir:      l.Pac.MoveDir,
		RedTile:     l.Ghosts[actor.Red].Tile(),
		ScatterTile: l.scatter[g.ID],
	})
}

func (c *Controller) hunt(g *actor.Ghost) {
	w := c.level.World
	g.Move(w, c.ghostSpeed(g), c.ghostAccess, func(tile core.Vector2i) {
		g.Target = c.huntingTarget(g)
		g.WishDir = ai.ChooseDirection(w, tile, g.MoveDir, g.Target, c.ghostAccess)
	})
}

func (c *Controller) wander(g *actor.Ghost) {
	l := c.level
	g.Move(l.World, c.ghostSpeed(g), c.ghostAccess, func(tile core.Vector2i) {
		g.WishDir = ai.FrightenedDirection(l.World, tile, g.MoveDir, l.Pac.Tile(), c.ghostAccess, c.rng)
	})
}

// bounce moves a locked ghost up and down around its waiting position.
func (c *Controller) bounce(g *actor.Ghost) {
	target := g.RevivalPos.Plus(core.Vec2f(0, 0.5))
	if g.MoveDir == core.DirUp {
		target = g.RevivalPos.Plus(core.Vec2f(0, -0.5))
	}
	dir := g.MoveDir
	if g.MoveTowards(target, c.ghostSpeed(g)) {
		if dir == core.DirUp {
			g.MoveDir = core.DirDown
		} else {
			g.MoveDir = core.DirUp
		}
	}
}

// leaveHouse moves a ghost to the middle of the house, then up through the
// door.
func (c *Controller) leaveHouse(g *actor.Ghost) {
	l := c.level
	house := l.World.House()
	entry := house.EntryPosition()
	speed := c.ghostSpeed(g)
	if math.Abs(g.Pos.X-entry.X) > posEps {
		g.MoveTowards(core.Vec2f(entry.X, house.Center().Y), speed)
		return
	}
	if !g.MoveTowards(entry, speed) {
		return
	}
	g.PlaceAt(entry, core.DirLeft)
	g.Entering = false
	if l.Pac.HasPower() && g.KilledIndex < 0 {
		g.State = actor.Frightened
	} else {
		g.State = actor.Hunting
	}
	if g.ID == actor.Orange {
		l.elroyEnabled = true
	}
}

// returnHome steers the eyes of an eaten ghost to the house entry and then
// down to its revival position.
func (c *Controller) returnHome(g *actor.Ghost) {
	l := c.level
	w := l.World
	entry := w.House().EntryPosition()
	if !g.Entering && math.Abs(g.Pos.Y-entry.Y) < posEps && math.Abs(g.Pos.X-entry.X) <= 1 {
		g.Entering = true
		c.bus.Publish(event.GhostEntersHouse{Ghost: int(g.ID)})
	}
	if g.Entering {
		c.enterHouse(g)
		return
	}
	target := entry.Tile()
	g.Move(w, c.ghostSpeed(g), c.ghostAccess, func(tile core.Vector2i) {
		g.Target = target
		g.WishDir = ai.ChooseDirection(w, tile, g.MoveDir, target, c.ghostAccess)
	})
}

func (c *Controller) enterHouse(g *actor.Ghost) {
	house := c.level.World.House()
	entry := house.EntryPosition()
	center := house.Center()
	speed := c.ghostSpeed(g)
	switch {
	case g.Pos.Y < center.Y-posEps && math.Abs(g.Pos.X-entry.X) > posEps:
		g.MoveTowards(entry, speed)
	case g.Pos.Y < center.Y-posEps:
		g.MoveTowards(core.Vec2f(entry.X, center.Y), speed)
	default:
		if g.MoveTowards(g.RevivalPos, speed) {
			g.Entering = false
			g.State = actor.LeavingHouse
		}
	}
}

// nextLockedGhost returns the ghost that leaves the house next.
func (c *Controller) nextLockedGhost() *actor.Ghost {
	for _, id := range []actor.Personality{actor.Pink, actor.Cyan, actor.Orange} {
		if g := c.level.Ghosts[id]; g.State == actor.Locked {
			return g
		}
	}
	return nil
}

// countDot credits an eaten pellet to the house release counters.
func (c *Controller) countDot() {
	l := c.level
	if l.globalDotsOn {
		l.globalDots++
		return
	}
	if g := c.nextLockedGhost(); g != nil {
		g.DotCounter++
	}
}

// updateHouse releases the next locked ghost once its dot counter reached
// its limit or Pac has not eaten for too long.
func (c *Controller) updateHouse() {
	l := c.level
	g := c.nextLockedGhost()
	if g == nil {
		return
	}
	release := false
	if l.globalDotsOn {
		if l.globalDots >= globalDotLimits[g.ID] {
			release = true
			if g.ID == actor.Orange {
				l.globalDotsOn = false
			}
		}
	} else if g.DotCounter >= houseDotLimit(l.Number, g.ID) {
		release = true
	}
	if !release && l.Pac.StarvingTicks >= starvingTicks(l.Number) {
		release = true
		l.Pac.StarvingTicks = 0
	}
	if release {
		c.logger.Debug("ghost released", "ghost", g.ID, "level", l.Number)
		g.State = actor.LeavingHouse
	}
}
