// Package ai decides where the ghosts go and steers Pac on autopilot.
package ai

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-pacman/internal/actor"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/world"
)

// Situation is what a ghost knows when it picks its chase target.
type Situation struct {
	Ghost       actor.Personality
	GhostTile   core.Vector2i
	PacTile     core.Vector2i
	PacDir      core.Direction
	RedTile     core.Vector2i
	ScatterTile core.Vector2i
}

// Targeting computes chase targets. Implementations must be deterministic.
type Targeting interface {
	ChaseTarget(s Situation) core.Vector2i
}

// ArcadeTargeting reproduces the chase rules of the arcade ghosts,
// including the overflow that shifts targets left when Pac moves up.
type ArcadeTargeting struct{}

func (ArcadeTargeting) ChaseTarget(s Situation) core.Vector2i {
	switch s.Ghost {
	case actor.Red:
		return s.PacTile
	case actor.Pink:
		return TilesAhead(s.PacTile, s.PacDir, 4)
	case actor.Cyan:
		ahead := TilesAhead(s.PacTile, s.PacDir, 2)
		return ahead.Scaled(2).Minus(s.RedTile)
	case actor.Orange:
		if s.GhostTile.EuclideanDist(s.PacTile) < 8 {
			return s.ScatterTile
		}
		return s.PacTile
	default:
		panic(core.Preconditionf("ghost personality %d outside 0..3", int(s.Ghost)))
	}
}

// TilesAhead returns the tile n steps ahead of tile in direction dir. Facing
// up also moves the result n tiles to the left.
func TilesAhead(tile core.Vector2i, dir core.Direction, n int) core.Vector2i {
	ahead := tile.Plus(dir.Vector().Scaled(n))
	if dir == core.DirUp {
		ahead = ahead.Plus(core.DirLeft.Vector().Scaled(n))
	}
	return ahead
}

// ScatterTile returns the scatter target of a ghost. Maps may declare one
// with the pos_scatter_<color>_ghost property; otherwise each ghost uses a
// corner of the grid.
func ScatterTile(w *world.World, id actor.Personality) core.Vector2i {
	if t, ok := w.TileProp(fmt.Sprintf(world.PropScatterPosFmt, id)); ok {
		return t
	}
	cols, rows := w.NumCols(), w.NumRows()
	switch id {
	case actor.Red:
		return core.Vec2i(cols-3, 0)
	case actor.Pink:
		return core.Vec2i(2, 0)
	case actor.Cyan:
		return core.Vec2i(cols-1, rows-2)
	case actor.Orange:
		return core.Vec2i(0, rows-2)
	default:
		panic(core.Preconditionf("ghost personality %d outside 0..3", int(id)))
	}
}

// ChooseDirection returns the direction a ghost at tile takes toward target.
// It never reverses, and picks the open neighbor closest to the target with
// ties broken in the order up, left, down, right. When every other way is
// closed it reverses.
func ChooseDirection(w *world.World, tile core.Vector2i, moveDir core.Direction, target core.Vector2i, access actor.Access) core.Direction {
	best := core.DirNone
	bestDist := math.Inf(1)
	for _, dir := range core.Directions {
		if moveDir.Valid() && dir == moveDir.Opposite() {
			continue
		}
		n := w.NeighborTile(tile, dir)
		if !access(n) {
			continue
		}
		if d := n.EuclideanDist(target); d < bestDist {
			best, bestDist = dir, d
		}
	}
	if best == core.DirNone {
		return moveDir.Opposite()
	}
	return best
}

// FrightenedDirection picks a random direction that does not lead a
// frightened ghost closer to Pac. Reversal is avoided as in ChooseDirection.
func FrightenedDirection(w *world.World, tile core.Vector2i, moveDir core.Direction, pacTile core.Vector2i, access actor.Access, rng *rand.Rand) core.Direction {
	here := tile.EuclideanDist(pacTile)
	var away, open []core.Direction
	for _, dir := range core.Directions {
		if moveDir.Valid() && dir == moveDir.Opposite() {
			continue
		}
		n := w.NeighborTile(tile, dir)
		if !access(n) {
			continue
		}
		open = append(open, dir)
		if n.EuclideanDist(pacTile) >= here {
			away = append(away, dir)
		}
	}
	switch {
	case len(away) > 0:
		return away[rng.Intn(len(away))]
	case len(open) > 0:
		return open[rng.Intn(len(open))]
	default:
		return moveDir.Opposite()
	}
}
