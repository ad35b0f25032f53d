package game

import (
	"github.com/vovakirdan/tui-pacman/internal/actor"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/event"
)

// demoTicks limits the time the demo level is played.
const demoTicks = 60 * core.TicksPerSecond

// updateHunting runs one tick of play: Pac, the ghosts, the bonus, Pac's
// power and finally the hunting phase timer.
func (c *Controller) updateHunting() {
	l := c.level
	if l.Demo && c.input.Has(core.ActionCredit) {
		c.AddCredit()
		c.fsm.ChangeState(Intro)
		return
	}
	if l.Demo && c.fsm.Timer(Hunting).Ticks() >= demoTicks {
		c.fsm.ChangeState(Intro)
		return
	}
	if !l.Demo && c.input.Has(core.ActionAutopilot) {
		c.autopilotOn = !c.autopilotOn
		l.Pac.Autopilot = c.autopilotOn
		c.logger.Debug("autopilot toggled", "on", c.autopilotOn)
	}

	c.updatePac()
	if l.World.UneatenFoodCount() == 0 {
		c.fsm.ChangeState(LevelComplete)
		return
	}
	if c.checkCollisions() {
		return
	}
	c.updateGhosts()
	if c.checkCollisions() {
		return
	}
	c.updateBonus()
	c.updatePower()
	if c.hunting.Update() {
		for _, g := range l.Ghosts {
			if g.State == actor.Hunting {
				g.Reverse()
			}
		}
	}
	c.updateHouse()
}

func (c *Controller) updatePac() {
	l := c.level
	pac := l.Pac
	if !pac.Autopilot {
		if dir := c.input.SteeringDirection(); dir.Valid() {
			pac.WishDir = dir
		}
	}
	pac.StarvingTicks++
	if pac.RestingTicks > 0 {
		pac.RestingTicks--
		return
	}

	speed := l.Speeds.Pac
	if pac.HasPower() {
		speed = l.Speeds.PacPower
	}
	var steer func(core.Vector2i)
	if pac.Autopilot {
		steer = func(core.Vector2i) {
			if dir := c.autopilot.Steer(l.World, pac, l.Ghosts[:], c.pacAccess); dir.Valid() {
				pac.WishDir = dir
			}
		}
	}
	pac.Move(l.World, speed, c.pacAccess, steer)

	if tile := pac.Tile(); l.World.HasFoodAt(tile) {
		c.EatFoodAt(tile)
	}
}

// checkCollisions handles Pac meeting ghosts. It reports whether the game
// state changed.
func (c *Controller) checkCollisions() bool {
	l := c.level
	pac := l.Pac
	eaten := false
	for _, g := range l.Ghosts {
		if !g.SameTile(&pac.Creature) {
			continue
		}
		switch g.State {
		case actor.Frightened:
			c.eatGhost(g)
			eaten = true
		case actor.Hunting:
			if pac.Immune {
				continue
			}
			c.logger.Debug("pac killed", "ghost", g.ID, "tile", pac.Tile())
			c.fsm.ChangeState(PacDying)
			return true
		}
	}
	if eaten {
		c.fsm.ChangeState(GhostDying)
	}
	return eaten
}

func (c *Controller) eatGhost(g *actor.Ghost) {
	l := c.level
	g.State = actor.Eaten
	g.KilledIndex = l.ghostKills
	l.ghostKills++
	points := GhostValue(g.KilledIndex)
	c.addPoints(points)
	c.bus.Publish(event.GhostEaten{Ghost: int(g.ID), Index: g.KilledIndex, Points: points})
}

// updatePower counts down Pac's power and ends it.
func (c *Controller) updatePower() {
	l := c.level
	power := l.Pac.Power
	if !power.IsRunning() {
		return
	}
	power.Tick()
	if !power.HasExpired() {
		return
	}
	power.ResetIndefinite()
	for _, g := range l.Ghosts {
		if g.State == actor.Frightened {
			g.State = actor.Hunting
		}
		g.KilledIndex = -1
	}
	c.hunting.Resume()
	c.bus.Publish(event.PacLosesPower{})
}
