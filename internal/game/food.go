package game

import (
	"slices"

	"github.com/vovakirdan/tui-pacman/internal/actor"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/event"
	"github.com/vovakirdan/tui-pacman/internal/timer"
)

// EatFoodAt lets Pac eat the food at tile. Tiles without uneaten food are
// ignored.
func (c *Controller) EatFoodAt(tile core.Vector2i) {
	l := c.level
	w := l.World
	if !w.HasFoodAt(tile) {
		return
	}
	energizer := w.IsEnergizerTile(tile)
	w.EatFoodAt(tile)
	l.Pac.StarvingTicks = 0
	c.countDot()
	if energizer {
		c.addPoints(EnergizerPoints)
		l.Pac.RestingTicks = EnergizerRestTicks
	} else {
		c.addPoints(PelletPoints)
		l.Pac.RestingTicks = PelletRestTicks
	}
	c.bus.Publish(event.PacFoundFood{Tile: tile, Energizer: energizer})
	if energizer {
		c.powerUp()
	}
	if c.IsBonusReached() {
		c.ActivateNextBonus()
	}
}

// powerUp gives Pac power and frightens the hunting ghosts. Levels without
// power time only make the ghosts reverse.
func (c *Controller) powerUp() {
	l := c.level
	for _, g := range l.Ghosts {
		if g.Is(actor.Hunting, actor.Frightened) {
			g.Reverse()
		}
	}
	factor := c.difficulty.PowerFactor(c.score.Points, l.Number)
	ticks := int64(float64(timer.SecToTicks(float64(l.Data.PacPowerSec))) * factor)
	if ticks <= 0 {
		return
	}
	l.ghostKills = 0
	l.Pac.Power.ResetTicks(ticks)
	l.Pac.Power.Start()
	c.hunting.Stop()
	for _, g := range l.Ghosts {
		if g.State == actor.Hunting {
			g.State = actor.Frightened
		}
	}
	c.bus.Publish(event.PacGetsPower{Ticks: ticks})
}

// IsBonusReached reports whether the number of eaten food items equals one
// of the bonus thresholds.
func (c *Controller) IsBonusReached() bool {
	return slices.Contains(c.cfg.Bonus.Thresholds, c.level.World.EatenFoodCount())
}

// ActivateNextBonus shows the bonus of the current level for a random time
// within the configured window.
func (c *Controller) ActivateNextBonus() {
	l := c.level
	l.bonusIndex++
	symbol := l.Data.BonusSymbol
	points := BonusPoints(symbol)
	lo := timer.SecToTicks(c.cfg.Bonus.EdibleMinSec)
	hi := timer.SecToTicks(c.cfg.Bonus.EdibleMaxSec)
	ticks := lo
	if hi > lo {
		ticks += c.rng.Int63n(hi - lo)
	}
	l.Bonus.SetEdible(symbol, points, l.bonusPos, ticks)
	c.logger.Debug("bonus activated", "index", l.bonusIndex, "symbol", actor.SymbolName(symbol), "ticks", ticks)
	c.bus.Publish(event.BonusActivated{Symbol: symbol, Points: points, Pos: l.bonusPos})
}

// updateBonus lets Pac eat the bonus and counts down its display time.
func (c *Controller) updateBonus() {
	l := c.level
	b := l.Bonus
	switch b.State {
	case actor.BonusEdible:
		if l.Pac.Pos.Dist(b.Pos) <= 0.5 {
			c.addPoints(b.Points)
			b.SetEaten(timer.SecToTicks(c.cfg.Bonus.EatenSec))
			c.bus.Publish(event.BonusEaten{Symbol: b.Symbol, Points: b.Points})
			return
		}
		b.Timer.Tick()
		if b.Timer.HasExpired() {
			b.SetInactive()
			c.bus.Publish(event.BonusExpired{Symbol: b.Symbol})
		}
	case actor.BonusEaten:
		b.Timer.Tick()
		if b.Timer.HasExpired() {
			b.SetInactive()
		}
	}
}
