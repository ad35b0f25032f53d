package world

import (
	"math/bits"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

// foodState records which food tiles have been eaten, one bit per tile.
type foodState struct {
	numCols int
	eaten   []uint64
	total   int
	uneaten int
}

func newFoodState(food *Layer) *foodState {
	n := food.NumRows() * food.NumCols()
	fs := &foodState{
		numCols: food.NumCols(),
		eaten:   make([]uint64, (n+63)/64),
	}
	for _, row := range food.Rows {
		for _, code := range row {
			if code != FoodEmpty {
				fs.total++
			}
		}
	}
	fs.uneaten = fs.total
	return fs
}

func (fs *foodState) index(t core.Vector2i) int {
	return t.Y*fs.numCols + t.X
}

func (fs *foodState) isEaten(t core.Vector2i) bool {
	i := fs.index(t)
	return fs.eaten[i/64]&(1<<(i%64)) != 0
}

func (fs *foodState) markEaten(t core.Vector2i) {
	i := fs.index(t)
	fs.eaten[i/64] |= 1 << (i % 64)
	fs.uneaten--
}

func (fs *foodState) eatenBits() int {
	n := 0
	for _, w := range fs.eaten {
		n += bits.OnesCount64(w)
	}
	return n
}
