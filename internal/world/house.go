package world

import "github.com/vovakirdan/tui-pacman/internal/core"

// Door is the pair of horizontally adjacent door tiles of the ghost house.
type Door struct {
	Left  core.Vector2i
	Right core.Vector2i
}

// Occupies reports whether t is one of the door tiles.
func (d Door) Occupies(t core.Vector2i) bool {
	return t == d.Left || t == d.Right
}

// House is the rectangular ghost house.
type House struct {
	MinTile core.Vector2i
	Size    core.Vector2i
	Door    Door
}

// MaxTile returns the bottom-right tile of the house.
func (h House) MaxTile() core.Vector2i {
	return h.MinTile.Plus(h.Size).Minus(core.Vec2i(1, 1))
}

// Contains reports whether t lies inside the house, borders included.
func (h House) Contains(t core.Vector2i) bool {
	hi := h.MaxTile()
	return h.MinTile.X <= t.X && t.X <= hi.X && h.MinTile.Y <= t.Y && t.Y <= hi.Y
}

// Center returns the center of the house in tile units.
func (h House) Center() core.Vector2f {
	return core.Vec2f(
		float64(h.MinTile.X)+float64(h.Size.X-1)/2,
		float64(h.MinTile.Y)+float64(h.Size.Y-1)/2,
	)
}

// EntryPosition is the position right above the middle of the door, where
// ghosts leave and enter the house.
func (h House) EntryPosition() core.Vector2f {
	return core.Vec2f(float64(h.Door.Left.X+h.Door.Right.X)/2, float64(h.Door.Left.Y-1))
}
