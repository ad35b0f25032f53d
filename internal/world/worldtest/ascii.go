// Package worldtest builds small worlds from ASCII pictures for tests.
package worldtest

import (
	"testing"

	"github.com/vovakirdan/tui-pacman/internal/world"
)

// Map converts rows of ASCII art into a map. '#' is a wall, 'T' a tunnel,
// '-' a door, '.' a pellet and 'o' an energizer. The house spans the tiles
// houseMin to houseMax, both written as "row,col".
func Map(rows []string, houseMin, houseMax string) *world.Map {
	m := world.NewMap(len(rows), len(rows[0]))
	for y, row := range rows {
		for x, c := range row {
			switch c {
			case '#':
				m.Terrain.Rows[y][x] = world.TerrainWallH
			case 'T':
				m.Terrain.Rows[y][x] = world.TerrainTunnel
			case '-':
				m.Terrain.Rows[y][x] = world.TerrainDoor
			case '.':
				m.Food.Rows[y][x] = world.FoodPellet
			case 'o':
				m.Food.Rows[y][x] = world.FoodEnergizer
			}
		}
	}
	m.Terrain.Props[world.PropHouseMinTile] = houseMin
	m.Terrain.Props[world.PropHouseMaxTile] = houseMax
	return m
}

// World builds a world from ASCII art and fails the test on error.
func World(t testing.TB, rows []string, houseMin, houseMax string) *world.World {
	t.Helper()
	w, err := world.New(Map(rows, houseMin, houseMax))
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	return w
}

// Small is a 10x7 maze with a 4x3 house between rows 2 and 4, a tunnel row
// and two energizers.
var Small = []string{
	"##########",
	"#o.......#",
	"TT.#--#.TT",
	"#..#  #..#",
	"#..####..#",
	"#o.......#",
	"##########",
}

// SmallWorld builds Small.
func SmallWorld(t testing.TB) *world.World {
	return World(t, Small, "2,3", "4,6")
}
