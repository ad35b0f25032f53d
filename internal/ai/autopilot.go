package ai

import (
	"github.com/vovakirdan/tui-pacman/internal/actor"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/world"
)

const (
	// dangerRadius is how close a hunting ghost may get before Pac flees.
	dangerRadius = 3
	// preyRadius is how far Pac goes out of its way for a frightened ghost.
	preyRadius = 6
)

// Autopilot steers Pac in the demo level and on request of the player.
type Autopilot struct {
	// Reserved for the breadth-first search, reused between calls.
	prev  map[core.Vector2i]core.Vector2i
	queue []core.Vector2i
}

// NewAutopilot creates an autopilot.
func NewAutopilot() *Autopilot {
	return &Autopilot{prev: make(map[core.Vector2i]core.Vector2i)}
}

// Steer returns the direction Pac should take at tile. It heads for the
// nearest food or a nearby frightened ghost, never through tiles close to
// a dangerous ghost, and runs away when it is cornered.
func (a *Autopilot) Steer(w *world.World, pac *actor.Pac, ghosts []*actor.Ghost, access actor.Access) core.Direction {
	tile := pac.Tile()

	danger := make(map[core.Vector2i]bool)
	var prey []core.Vector2i
	for _, g := range ghosts {
		switch {
		case g.State == actor.Hunting:
			gt := g.Tile()
			for dy := -dangerRadius; dy <= dangerRadius; dy++ {
				for dx := -dangerRadius; dx <= dangerRadius; dx++ {
					t := gt.Plus(core.Vec2i(dx, dy))
					if t.ManhattanDist(gt) <= dangerRadius {
						danger[t] = true
					}
				}
			}
		case g.State == actor.Frightened && pac.Power.Remaining() > 60:
			if g.Tile().ManhattanDist(tile) <= preyRadius {
				prey = append(prey, g.Tile())
			}
		}
	}

	goal := func(t core.Vector2i) bool {
		for _, p := range prey {
			if p == t {
				return true
			}
		}
		return w.HasFoodAt(t)
	}
	if dir, ok := a.search(w, tile, access, danger, goal); ok {
		return dir
	}

	// No safe path: pick the open direction that ends farthest from danger.
	best, bestScore := pac.MoveDir, -1
	for _, dir := range core.Directions {
		n := w.NeighborTile(tile, dir)
		if !access(n) {
			continue
		}
		score := 0
		for _, g := range ghosts {
			if g.State == actor.Hunting {
				score += n.ManhattanDist(g.Tile())
			}
		}
		if score > bestScore {
			best, bestScore = dir, score
		}
	}
	return best
}

// search runs a breadth-first search from start and returns the first step
// of the shortest path to a tile accepted by goal.
func (a *Autopilot) search(w *world.World, start core.Vector2i, access actor.Access,
	blocked map[core.Vector2i]bool, goal func(core.Vector2i) bool) (core.Direction, bool) {
	clear(a.prev)
	a.queue = append(a.queue[:0], start)
	a.prev[start] = start

	for len(a.queue) > 0 {
		cur := a.queue[0]
		a.queue = a.queue[1:]
		if cur != start && goal(cur) {
			return a.firstStep(w, start, cur), true
		}
		for _, dir := range core.Directions {
			n := w.NeighborTile(cur, dir)
			if _, seen := a.prev[n]; seen || !access(n) || blocked[n] {
				continue
			}
			a.prev[n] = cur
			a.queue = append(a.queue, n)
		}
	}
	return core.DirNone, false
}

func (a *Autopilot) firstStep(w *world.World, start, end core.Vector2i) core.Direction {
	step := end
	for a.prev[step] != start {
		step = a.prev[step]
	}
	for _, dir := range core.Directions {
		if w.NeighborTile(start, dir) == step {
			return dir
		}
	}
	return core.DirNone
}
