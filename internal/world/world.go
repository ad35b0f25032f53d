// Package world models the tile maze: terrain, the ghost house, portals and
// the food that Pac eats.
//
// Tiles are addressed with core.Vector2i where X is the column and Y the row.
package world

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

// Portal connects the two border tiles of a tunnel row.
type Portal struct {
	Left  core.Vector2i
	Right core.Vector2i
}

// Default house geometry of the arcade maze, used when a map declares none.
var (
	ArcadeHouseMinTile = core.Vec2i(10, 15)
	ArcadeHouseSize    = core.Vec2i(8, 5)
)

// World is a playable maze built from a Map. The terrain is never changed
// after construction; only the food state mutates.
type World struct {
	m          *Map
	numRows    int
	numCols    int
	house      House
	portals    []Portal
	energizers []core.Vector2i
	food       *foodState
}

// New builds a world from m. The map is copied so later edits to m do not
// affect the world.
func New(m *Map) (*World, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	m = m.Clone()
	w := &World{
		m:       m,
		numRows: m.Terrain.NumRows(),
		numCols: m.Terrain.NumCols(),
	}

	house, err := w.locateHouse()
	if err != nil {
		return nil, err
	}
	w.house = house

	for row := 0; row < w.numRows; row++ {
		left, right := core.Vec2i(0, row), core.Vec2i(w.numCols-1, row)
		if m.Terrain.Get(left) == TerrainTunnel && m.Terrain.Get(right) == TerrainTunnel {
			w.portals = append(w.portals, Portal{Left: left, Right: right})
		}
	}

	for y, row := range m.Food.Rows {
		for x, code := range row {
			if code == FoodEnergizer {
				w.energizers = append(w.energizers, core.Vec2i(x, y))
			}
		}
	}
	w.food = newFoodState(m.Food)
	return w, nil
}

func (w *World) locateHouse() (House, error) {
	minTile, size := ArcadeHouseMinTile, ArcadeHouseSize
	if t, ok := w.m.Terrain.TileProp(PropHouseMinTile); ok {
		minTile = t
		maxTile, ok := w.m.Terrain.TileProp(PropHouseMaxTile)
		if !ok {
			return House{}, fmt.Errorf("%w: %s without %s", ErrMapFormat, PropHouseMinTile, PropHouseMaxTile)
		}
		size = maxTile.Minus(minTile).Plus(core.Vec2i(1, 1))
	}
	if size.X < 1 || size.Y < 1 {
		return House{}, fmt.Errorf("%w: house size %dx%d", ErrMapFormat, size.X, size.Y)
	}
	h := House{MinTile: minTile, Size: size}
	if !w.InsideBounds(h.MinTile) || !w.InsideBounds(h.MaxTile()) {
		return House{}, fmt.Errorf("%w: house %v..%v outside of %dx%d world",
			ErrMapFormat, h.MinTile, h.MaxTile(), w.numCols, w.numRows)
	}

	var doors []core.Vector2i
	for y := h.MinTile.Y; y <= h.MaxTile().Y; y++ {
		for x := h.MinTile.X; x <= h.MaxTile().X; x++ {
			if t := core.Vec2i(x, y); w.m.Terrain.Get(t) == TerrainDoor {
				doors = append(doors, t)
			}
		}
	}
	if len(doors) != 2 || doors[0].Y != doors[1].Y || doors[1].X-doors[0].X != 1 {
		return House{}, fmt.Errorf("%w: house needs two adjacent door tiles, found %v", ErrMapFormat, doors)
	}
	h.Door = Door{Left: doors[0], Right: doors[1]}
	return h, nil
}

// Map returns the map the world was built from. Callers must not modify it.
func (w *World) Map() *Map { return w.m }

func (w *World) NumRows() int { return w.numRows }
func (w *World) NumCols() int { return w.numCols }

// House returns the ghost house.
func (w *World) House() House { return w.house }

// Portals returns a copy of the portals in row order.
func (w *World) Portals() []Portal { return slices.Clone(w.portals) }

// EnergizerTiles returns a copy of the energizer tiles, top to bottom and
// left to right.
func (w *World) EnergizerTiles() []core.Vector2i { return slices.Clone(w.energizers) }

// TileProp returns a tile-valued terrain property.
func (w *World) TileProp(name string) (core.Vector2i, bool) {
	return w.m.Terrain.TileProp(name)
}

// ColorProp returns a color property of the terrain or food layer.
func (w *World) ColorProp(name string, fallback core.Color) core.Color {
	v, ok := w.m.Terrain.Props[name]
	if !ok {
		v, ok = w.m.Food.Props[name]
	}
	if !ok {
		return fallback
	}
	if c, ok := core.ParseColor(v); ok {
		return c
	}
	return fallback
}

// InsideBounds reports whether t is a tile of the grid.
func (w *World) InsideBounds(t core.Vector2i) bool {
	return 0 <= t.X && t.X < w.numCols && 0 <= t.Y && t.Y < w.numRows
}

// Terrain returns the terrain code at t, TerrainEmpty when out of bounds.
func (w *World) Terrain(t core.Vector2i) byte {
	return w.m.Terrain.Get(t)
}

// IsBlockedTile reports whether t holds a wall. Doors and tunnels are not
// blocked, and neither are tiles outside the grid.
func (w *World) IsBlockedTile(t core.Vector2i) bool {
	return w.InsideBounds(t) && IsWallCode(w.m.Terrain.Get(t))
}

func (w *World) IsTunnel(t core.Vector2i) bool {
	return w.InsideBounds(t) && w.m.Terrain.Get(t) == TerrainTunnel
}

func (w *World) IsDoor(t core.Vector2i) bool {
	return w.house.Door.Occupies(t)
}

// BelongsToPortal reports whether t is one end of a portal.
func (w *World) BelongsToPortal(t core.Vector2i) bool {
	for _, p := range w.portals {
		if t == p.Left || t == p.Right {
			return true
		}
	}
	return false
}

func (w *World) portalRow(row int) bool {
	for _, p := range w.portals {
		if p.Left.Y == row {
			return true
		}
	}
	return false
}

// IsIntersection reports whether an actor may turn at t: the tile is inside
// the grid, outside the house, and fewer than two of its neighbors are walls
// or doors.
func (w *World) IsIntersection(t core.Vector2i) bool {
	if !w.InsideBounds(t) || w.house.Contains(t) {
		return false
	}
	closed := 0
	for _, dir := range core.Directions {
		n := t.Plus(dir.Vector())
		if w.IsBlockedTile(n) || w.IsDoor(n) {
			closed++
		}
	}
	return closed < 2
}

// NeighborTile returns the tile next to t in direction dir. Leaving the grid
// through a portal arrives at the opposite end.
func (w *World) NeighborTile(t core.Vector2i, dir core.Direction) core.Vector2i {
	n := t.Plus(dir.Vector())
	if w.portalRow(t.Y) && n.Y == t.Y {
		switch {
		case n.X < 0:
			n.X = w.numCols - 1
		case n.X >= w.numCols:
			n.X = 0
		}
	}
	return n
}

// HasFoodAt reports whether t has food that is not yet eaten.
func (w *World) HasFoodAt(t core.Vector2i) bool {
	return w.InsideBounds(t) && w.m.Food.Get(t) != FoodEmpty && !w.food.isEaten(t)
}

// HasEatenFoodAt reports whether the food at t has been eaten.
func (w *World) HasEatenFoodAt(t core.Vector2i) bool {
	return w.InsideBounds(t) && w.m.Food.Get(t) != FoodEmpty && w.food.isEaten(t)
}

// IsEnergizerTile reports whether t is an energizer tile, eaten or not.
func (w *World) IsEnergizerTile(t core.Vector2i) bool {
	return w.InsideBounds(t) && w.m.Food.Get(t) == FoodEnergizer
}

// EatFoodAt marks the food at t as eaten. It does nothing outside the grid,
// on tiles without food and on food that was already eaten.
func (w *World) EatFoodAt(t core.Vector2i) {
	if w.HasFoodAt(t) {
		w.food.markEaten(t)
	}
}

func (w *World) TotalFoodCount() int   { return w.food.total }
func (w *World) UneatenFoodCount() int { return w.food.uneaten }
func (w *World) EatenFoodCount() int   { return w.food.total - w.food.uneaten }
