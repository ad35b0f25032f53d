package world

import (
	"bytes"
	"errors"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

// testMaze is a small maze with a 4x3 house, one tunnel row and
// 24 pellets plus 2 energizers.
var testMaze = []string{
	"##########",
	"#o.......#",
	"TT.#--#.TT",
	"#..#  #..#",
	"#..####..#",
	"#o.......#",
	"##########",
}

func asciiMap(rows []string) *Map {
	m := NewMap(len(rows), len(rows[0]))
	for y, row := range rows {
		for x, c := range row {
			switch c {
			case '#':
				m.Terrain.Rows[y][x] = TerrainWallH
			case 'T':
				m.Terrain.Rows[y][x] = TerrainTunnel
			case '-':
				m.Terrain.Rows[y][x] = TerrainDoor
			case '.':
				m.Food.Rows[y][x] = FoodPellet
			case 'o':
				m.Food.Rows[y][x] = FoodEnergizer
			}
		}
	}
	m.Terrain.Props[PropHouseMinTile] = "2,3"
	m.Terrain.Props[PropHouseMaxTile] = "4,6"
	return m
}

func newTestWorld(t *testing.T) *World {
	t.Helper()
	w, err := New(asciiMap(testMaze))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

func TestNewWorld(t *testing.T) {
	w := newTestWorld(t)

	if w.NumCols() != 10 || w.NumRows() != 7 {
		t.Fatalf("size = %dx%d, expected 10x7", w.NumCols(), w.NumRows())
	}
	if w.TotalFoodCount() != 26 || w.UneatenFoodCount() != 26 {
		t.Errorf("food total/uneaten = %d/%d, expected 26/26", w.TotalFoodCount(), w.UneatenFoodCount())
	}
	want := []core.Vector2i{{X: 1, Y: 1}, {X: 1, Y: 5}}
	if !slices.Equal(w.EnergizerTiles(), want) {
		t.Errorf("EnergizerTiles() = %v, expected %v", w.EnergizerTiles(), want)
	}

	h := w.House()
	if h.MinTile != core.Vec2i(3, 2) || h.Size != core.Vec2i(4, 3) {
		t.Errorf("house = %+v", h)
	}
	if h.Door.Left != core.Vec2i(4, 2) || h.Door.Right != core.Vec2i(5, 2) {
		t.Errorf("door = %+v", h.Door)
	}
	if c := h.Center(); c != core.Vec2f(4.5, 3) {
		t.Errorf("house center = %v", c)
	}
	if e := h.EntryPosition(); e != core.Vec2f(4.5, 1) {
		t.Errorf("house entry = %v", e)
	}
}

func TestHouseContains(t *testing.T) {
	h := House{MinTile: core.Vec2i(3, 2), Size: core.Vec2i(4, 3)}
	tests := []struct {
		tile core.Vector2i
		want bool
	}{
		{core.Vec2i(3, 2), true},
		{core.Vec2i(6, 4), true},
		{core.Vec2i(4, 3), true},
		{core.Vec2i(2, 2), false},
		{core.Vec2i(7, 4), false},
		{core.Vec2i(6, 5), false},
	}
	for _, tt := range tests {
		if got := h.Contains(tt.tile); got != tt.want {
			t.Errorf("Contains(%v) = %v, expected %v", tt.tile, got, tt.want)
		}
	}
}

func TestBlockedAndTunnel(t *testing.T) {
	w := newTestWorld(t)
	tests := []struct {
		tile    core.Vector2i
		blocked bool
		tunnel  bool
		door    bool
	}{
		{core.Vec2i(0, 0), true, false, false},
		{core.Vec2i(1, 1), false, false, false},
		{core.Vec2i(0, 2), false, true, false},
		{core.Vec2i(4, 2), false, false, true},
		{core.Vec2i(-1, 0), false, false, false},
		{core.Vec2i(3, 3), true, false, false},
	}
	for _, tt := range tests {
		if got := w.IsBlockedTile(tt.tile); got != tt.blocked {
			t.Errorf("IsBlockedTile(%v) = %v, expected %v", tt.tile, got, tt.blocked)
		}
		if got := w.IsTunnel(tt.tile); got != tt.tunnel {
			t.Errorf("IsTunnel(%v) = %v, expected %v", tt.tile, got, tt.tunnel)
		}
		if got := w.IsDoor(tt.tile); got != tt.door {
			t.Errorf("IsDoor(%v) = %v, expected %v", tt.tile, got, tt.door)
		}
	}
}

func TestIntersection(t *testing.T) {
	w := newTestWorld(t)
	tests := []struct {
		name string
		tile core.Vector2i
		want bool
	}{
		{"one wall neighbor", core.Vec2i(2, 1), true},
		{"one wall beside house", core.Vec2i(2, 3), true},
		{"corner", core.Vec2i(1, 1), false},
		{"wall and door", core.Vec2i(4, 1), false},
		{"inside house", core.Vec2i(4, 3), false},
		{"outside grid", core.Vec2i(20, 3), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.IsIntersection(tt.tile); got != tt.want {
				t.Errorf("IsIntersection(%v) = %v, expected %v", tt.tile, got, tt.want)
			}
		})
	}

	// Open crossing: no closed neighbors at all.
	open := asciiMap([]string{
		"##########",
		"#........#",
		"TT.#--#.TT",
		"#..#  #..#",
		"#..####..#",
		"#........#",
		"#........#",
		"#........#",
		"##########",
	})
	ow, err := New(open)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !ow.IsIntersection(core.Vec2i(4, 6)) {
		t.Error("tile without closed neighbors should be an intersection")
	}
}

func TestPortalSymmetry(t *testing.T) {
	w := newTestWorld(t)
	portals := w.Portals()
	if len(portals) != 1 {
		t.Fatalf("expected 1 portal, got %v", portals)
	}
	p := portals[0]
	last := w.NumCols() - 1
	if p.Left != core.Vec2i(0, 2) || p.Right != core.Vec2i(last, 2) {
		t.Fatalf("portal = %+v", p)
	}
	if got := w.NeighborTile(p.Left, core.DirLeft); got != p.Right {
		t.Errorf("moving left from %v arrives at %v, expected %v", p.Left, got, p.Right)
	}
	if got := w.NeighborTile(p.Right, core.DirRight); got != p.Left {
		t.Errorf("moving right from %v arrives at %v, expected %v", p.Right, got, p.Left)
	}
	if !w.BelongsToPortal(p.Left) || w.BelongsToPortal(core.Vec2i(1, 2)) {
		t.Error("BelongsToPortal mismatch")
	}
	// Rows without portal do not wrap.
	if got := w.NeighborTile(core.Vec2i(0, 1), core.DirLeft); got != core.Vec2i(-1, 1) {
		t.Errorf("non-portal row wrapped to %v", got)
	}
}

func TestEatFood(t *testing.T) {
	w := newTestWorld(t)
	total := w.TotalFoodCount()

	check := func(step string) {
		t.Helper()
		if w.UneatenFoodCount()+w.EatenFoodCount() != total {
			t.Fatalf("%s: uneaten %d + eaten %d != total %d", step, w.UneatenFoodCount(), w.EatenFoodCount(), total)
		}
		if w.food.eatenBits() != w.EatenFoodCount() {
			t.Fatalf("%s: %d bits set, eaten count %d", step, w.food.eatenBits(), w.EatenFoodCount())
		}
	}

	pellet := core.Vec2i(2, 1)
	w.EatFoodAt(pellet)
	check("first eat")
	if w.EatenFoodCount() != 1 || w.HasFoodAt(pellet) || !w.HasEatenFoodAt(pellet) {
		t.Fatalf("eating %v did not register", pellet)
	}

	// Idempotent: repeated, outside the grid, and on tiles without food.
	w.EatFoodAt(pellet)
	w.EatFoodAt(core.Vec2i(-3, 1))
	w.EatFoodAt(core.Vec2i(42, 42))
	w.EatFoodAt(core.Vec2i(0, 0))
	check("repeated eat")
	if w.EatenFoodCount() != 1 {
		t.Errorf("EatenFoodCount() = %d after idempotent eats", w.EatenFoodCount())
	}

	energizer := core.Vec2i(1, 5)
	if !w.IsEnergizerTile(energizer) || w.IsEnergizerTile(pellet) {
		t.Error("IsEnergizerTile mismatch")
	}
	w.EatFoodAt(energizer)
	if !w.IsEnergizerTile(energizer) {
		t.Error("eaten energizer tile should still be an energizer tile")
	}

	prev := w.UneatenFoodCount()
	for y := 0; y < w.NumRows(); y++ {
		for x := 0; x < w.NumCols(); x++ {
			w.EatFoodAt(core.Vec2i(x, y))
			if w.UneatenFoodCount() > prev {
				t.Fatalf("uneaten count increased at %d,%d", x, y)
			}
			prev = w.UneatenFoodCount()
			check("sweep")
		}
	}
	if w.UneatenFoodCount() != 0 {
		t.Errorf("UneatenFoodCount() = %d after eating everything", w.UneatenFoodCount())
	}
}

func TestMapRoundTrip(t *testing.T) {
	m := asciiMap(testMaze)
	m.Terrain.Props[PropWallColor] = "blue"
	m.Food.Props[PropFoodColor] = "peach"

	var buf bytes.Buffer
	if err := m.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	parsed, err := ParseMap(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ParseMap: %v", err)
	}

	for _, pair := range []struct {
		name      string
		got, want *Layer
	}{
		{"terrain", parsed.Terrain, m.Terrain},
		{"food", parsed.Food, m.Food},
	} {
		if !maps.Equal(pair.got.Props, pair.want.Props) {
			t.Errorf("%s props = %v, expected %v", pair.name, pair.got.Props, pair.want.Props)
		}
		if !slices.EqualFunc(pair.got.Rows, pair.want.Rows, bytes.Equal) {
			t.Errorf("%s grid differs after round trip", pair.name)
		}
	}

	var again bytes.Buffer
	if err := parsed.Serialize(&again); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if again.String() != buf.String() {
		t.Error("second serialization differs from the first")
	}
}

func TestParseMapErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"content before section", "a=b\n#TERRAIN\n!data\n0\n#FOOD\n!data\n0\n"},
		{"missing food", "#TERRAIN\n!data\n0,0\n"},
		{"ragged row", "#TERRAIN\n!data\n0,0\n0\n#FOOD\n!data\n0,0\n0,0\n"},
		{"size mismatch", "#TERRAIN\n!data\n0,0\n#FOOD\n!data\n0,0,0\n"},
		{"bad number", "#TERRAIN\n!data\n0,x\n#FOOD\n!data\n0,0\n"},
		{"unknown terrain code", "#TERRAIN\n!data\n0,99\n#FOOD\n!data\n0,0\n"},
		{"bad property", "#TERRAIN\nnovalue\n!data\n0\n#FOOD\n!data\n0\n"},
		{"duplicate section", "#TERRAIN\n!data\n0\n#TERRAIN\n!data\n0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMap(strings.NewReader(tt.text))
			if !errors.Is(err, ErrMapFormat) {
				t.Errorf("expected ErrMapFormat, got %v", err)
			}
		})
	}
}

func TestNewRejectsBadHouse(t *testing.T) {
	noDoor := asciiMap(testMaze)
	noDoor.Terrain.Rows[2][4] = TerrainWallH
	if _, err := New(noDoor); !errors.Is(err, ErrMapFormat) {
		t.Errorf("house without door: expected ErrMapFormat, got %v", err)
	}

	outside := asciiMap(testMaze)
	outside.Terrain.Props[PropHouseMaxTile] = "9,6"
	if _, err := New(outside); !errors.Is(err, ErrMapFormat) {
		t.Errorf("house outside grid: expected ErrMapFormat, got %v", err)
	}
}

func TestLoadMap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.world")

	var buf bytes.Buffer
	if err := asciiMap(testMaze).Serialize(&buf); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadMap(path)
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if m.Source != path {
		t.Errorf("Source = %q, expected %q", m.Source, path)
	}
	if tile, ok := m.Terrain.TileProp(PropHouseMinTile); !ok || tile != core.Vec2i(3, 2) {
		t.Errorf("TileProp = %v, %v", tile, ok)
	}

	if _, err := LoadMap(filepath.Join(dir, "missing.world")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWorldCopiesMap(t *testing.T) {
	m := asciiMap(testMaze)
	w, err := New(m)
	if err != nil {
		t.Fatal(err)
	}
	m.Terrain.Rows[1][2] = TerrainWallH
	if w.IsBlockedTile(core.Vec2i(2, 1)) {
		t.Error("world changed after editing the source map")
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	w := newTestWorld(t)

	e := w.EnergizerTiles()
	e[0] = core.Vec2i(8, 3)
	if got := w.EnergizerTiles()[0]; got != core.Vec2i(1, 1) {
		t.Errorf("energizer list changed through a returned slice: %v", got)
	}

	p := w.Portals()
	if len(p) == 0 {
		t.Fatal("test maze has no portal")
	}
	orig := p[0]
	p[0].Left = core.Vec2i(5, 5)
	if got := w.Portals()[0]; got != orig {
		t.Errorf("portal changed through a returned slice: %v", got)
	}
}
