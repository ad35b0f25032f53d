// Package actor holds the moving parts of a level: Pac, the ghosts and the
// bonus, together with the tile-center movement they share.
package actor

import (
	"math"

	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/world"
)

// BaseSpeed is the distance in tiles covered per tick at 100% speed.
const BaseSpeed = 0.15625

const eps = 1e-9

// SpeedPct converts a speed percentage into tiles per tick.
func SpeedPct(pct float64) float64 {
	return BaseSpeed * pct / 100
}

// Access reports whether a creature may enter tile.
type Access func(tile core.Vector2i) bool

// Creature is an entity moving through the maze from tile center to tile
// center. Direction changes happen only at tile centers, except reversals
// which are allowed anywhere.
type Creature struct {
	Name    string
	Pos     core.Vector2f
	MoveDir core.Direction
	WishDir core.Direction

	// Stuck is set when the last move ended in front of a wall.
	Stuck bool
	// NewTileEntered is set when the last move reached the center of a
	// tile different from the previous one.
	NewTileEntered bool

	lastCenter core.Vector2i
	hasCenter  bool
}

// Tile returns the tile the creature is in.
func (c *Creature) Tile() core.Vector2i {
	return c.Pos.Tile()
}

// PlaceAt puts the creature at pos facing dir and clears movement state.
func (c *Creature) PlaceAt(pos core.Vector2f, dir core.Direction) {
	c.Pos = pos
	c.MoveDir = dir
	c.WishDir = dir
	c.Stuck = false
	c.NewTileEntered = false
	c.hasCenter = false
}

// SameTile reports whether both creatures occupy the same tile.
func (c *Creature) SameTile(o *Creature) bool {
	return c.Tile() == o.Tile()
}

// AtTileCenter reports whether the creature sits on the center of its tile.
func (c *Creature) AtTileCenter() bool {
	return c.Pos.Dist(c.Tile().Float()) < eps
}

// Reverse turns the creature around immediately.
func (c *Creature) Reverse() {
	c.MoveDir = c.MoveDir.Opposite()
	c.WishDir = c.MoveDir
}

// Move advances the creature by speed tiles. steer, if not nil, is called at
// every tile center reached before the direction is chosen.
func (c *Creature) Move(w *world.World, speed float64, access Access, steer func(tile core.Vector2i)) {
	c.NewTileEntered = false
	remaining := speed
	for remaining > eps {
		if c.WishDir.Valid() && c.WishDir == c.MoveDir.Opposite() {
			c.MoveDir = c.WishDir
		}

		tile := c.Tile()
		if c.AtTileCenter() {
			c.Pos = tile.Float()
			if !c.hasCenter || tile != c.lastCenter {
				c.lastCenter, c.hasCenter = tile, true
				c.NewTileEntered = true
			}
			if steer != nil {
				steer(tile)
			}
			if c.WishDir.Valid() && access(w.NeighborTile(tile, c.WishDir)) {
				c.MoveDir = c.WishDir
			}
			if !c.MoveDir.Valid() || !access(w.NeighborTile(tile, c.MoveDir)) {
				c.Stuck = true
				return
			}
		} else if !c.MoveDir.Valid() {
			if !c.WishDir.Valid() {
				return
			}
			c.MoveDir = c.WishDir
		}
		c.Stuck = false

		step := math.Min(remaining, c.distToNextCenter())
		c.advance(step)
		remaining -= step
		c.wrap(w.NumCols())
	}
}

// distToNextCenter returns the distance along MoveDir to the next tile
// center. Positions off the movement axis are snapped to it first.
func (c *Creature) distToNextCenter() float64 {
	if c.MoveDir.IsHorizontal() {
		c.Pos.Y = math.Round(c.Pos.Y)
	} else {
		c.Pos.X = math.Round(c.Pos.X)
	}
	var d float64
	switch c.MoveDir {
	case core.DirRight:
		d = math.Floor(c.Pos.X+eps) + 1 - c.Pos.X
	case core.DirLeft:
		d = c.Pos.X - (math.Ceil(c.Pos.X-eps) - 1)
	case core.DirDown:
		d = math.Floor(c.Pos.Y+eps) + 1 - c.Pos.Y
	case core.DirUp:
		d = c.Pos.Y - (math.Ceil(c.Pos.Y-eps) - 1)
	}
	return d
}

func (c *Creature) advance(step float64) {
	v := c.MoveDir.Vector()
	c.Pos.X += float64(v.X) * step
	c.Pos.Y += float64(v.Y) * step
	// Land exactly on centers to keep the tile-center test stable.
	if r := math.Round(c.Pos.X); math.Abs(c.Pos.X-r) < eps {
		c.Pos.X = r
	}
	if r := math.Round(c.Pos.Y); math.Abs(c.Pos.Y-r) < eps {
		c.Pos.Y = r
	}
}

func (c *Creature) wrap(numCols int) {
	switch {
	case c.Pos.X < -0.5:
		c.Pos.X += float64(numCols)
	case c.Pos.X >= float64(numCols)-0.5:
		c.Pos.X -= float64(numCols)
	}
}

// MoveTowards moves straight toward target by at most speed and reports
// whether the target was reached. It is used inside the ghost house where
// creatures do not follow the tile grid.
func (c *Creature) MoveTowards(target core.Vector2f, speed float64) bool {
	dx, dy := target.X-c.Pos.X, target.Y-c.Pos.Y
	dist := math.Hypot(dx, dy)
	if dist <= speed+eps {
		c.Pos = target
		return true
	}
	c.Pos.X += dx / dist * speed
	c.Pos.Y += dy / dist * speed
	switch {
	case math.Abs(dx) > math.Abs(dy) && dx > 0:
		c.MoveDir = core.DirRight
	case math.Abs(dx) > math.Abs(dy):
		c.MoveDir = core.DirLeft
	case dy > 0:
		c.MoveDir = core.DirDown
	default:
		c.MoveDir = core.DirUp
	}
	return false
}
