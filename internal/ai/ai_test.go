package ai

import (
	"errors"
	"io"
	"io/fs"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pacman/internal/actor"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/maps"
	"github.com/vovakirdan/tui-pacman/internal/world"
	"github.com/vovakirdan/tui-pacman/internal/world/worldtest"
)

func open(w *world.World) actor.Access {
	return func(t core.Vector2i) bool {
		return w.InsideBounds(t) && !w.IsBlockedTile(t) && !w.IsDoor(t)
	}
}

func TestArcadeChaseTargets(t *testing.T) {
	pac := core.Vec2i(10, 10)
	tests := []struct {
		name string
		s    Situation
		want core.Vector2i
	}{
		{"red chases pac", Situation{Ghost: actor.Red, PacTile: pac, PacDir: core.DirLeft}, pac},
		{"pink ahead", Situation{Ghost: actor.Pink, PacTile: pac, PacDir: core.DirLeft}, core.Vec2i(6, 10)},
		{"pink overflow", Situation{Ghost: actor.Pink, PacTile: pac, PacDir: core.DirUp}, core.Vec2i(6, 6)},
		{"cyan", Situation{Ghost: actor.Cyan, PacTile: pac, PacDir: core.DirRight, RedTile: core.Vec2i(12, 14)}, core.Vec2i(12, 6)},
		{"cyan overflow", Situation{Ghost: actor.Cyan, PacTile: pac, PacDir: core.DirUp, RedTile: core.Vec2i(8, 12)}, core.Vec2i(8, 4)},
		{"orange close", Situation{Ghost: actor.Orange, GhostTile: core.Vec2i(10, 12), PacTile: pac, ScatterTile: core.Vec2i(0, 34)}, core.Vec2i(0, 34)},
		{"orange far", Situation{Ghost: actor.Orange, GhostTile: core.Vec2i(10, 30), PacTile: pac, ScatterTile: core.Vec2i(0, 34)}, pac},
		{"orange at eight", Situation{Ghost: actor.Orange, GhostTile: core.Vec2i(10, 18), PacTile: pac, ScatterTile: core.Vec2i(0, 34)}, pac},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (ArcadeTargeting{}).ChaseTarget(tt.s); got != tt.want {
				t.Errorf("ChaseTarget = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestScatterTiles(t *testing.T) {
	w, err := world.New(maps.Arcade())
	if err != nil {
		t.Fatal(err)
	}
	want := map[actor.Personality]core.Vector2i{
		actor.Red:    core.Vec2i(25, 0),
		actor.Pink:   core.Vec2i(2, 0),
		actor.Cyan:   core.Vec2i(27, 34),
		actor.Orange: core.Vec2i(0, 34),
	}
	for id, tile := range want {
		if got := ScatterTile(w, id); got != tile {
			t.Errorf("ScatterTile(%v) = %v, expected %v", id, got, tile)
		}
	}

	m := worldtest.Map(worldtest.Small, "2,3", "4,6")
	m.Terrain.Props["pos_scatter_red_ghost"] = "1,1"
	sw, err := world.New(m)
	if err != nil {
		t.Fatal(err)
	}
	if got := ScatterTile(sw, actor.Red); got != core.Vec2i(1, 1) {
		t.Errorf("map scatter property ignored, got %v", got)
	}
}

func TestChooseDirection(t *testing.T) {
	w := worldtest.SmallWorld(t)
	tests := []struct {
		name    string
		tile    core.Vector2i
		moveDir core.Direction
		target  core.Vector2i
		want    core.Direction
	}{
		{"closest neighbor", core.Vec2i(2, 1), core.DirRight, core.Vec2i(8, 5), core.DirRight},
		{"never reverses", core.Vec2i(5, 1), core.DirRight, core.Vec2i(1, 1), core.DirRight},
		{"tie prefers left over down", core.Vec2i(2, 3), core.DirDown, core.Vec2i(1, 4), core.DirLeft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChooseDirection(w, tt.tile, tt.moveDir, tt.target, open(w)); got != tt.want {
				t.Errorf("ChooseDirection = %v, expected %v", got, tt.want)
			}
		})
	}

	onlyBack := func(t core.Vector2i) bool { return t == core.Vec2i(1, 1) }
	if got := ChooseDirection(w, core.Vec2i(2, 1), core.DirRight, core.Vec2i(8, 8), onlyBack); got != core.DirLeft {
		t.Errorf("dead end: ChooseDirection = %v, expected reversal", got)
	}
}

func TestFrightenedDirectionMovesAway(t *testing.T) {
	w := worldtest.SmallWorld(t)
	rng := rand.New(rand.NewSource(7))
	for range 50 {
		got := FrightenedDirection(w, core.Vec2i(2, 1), core.DirRight, core.Vec2i(1, 5), open(w), rng)
		if got != core.DirRight {
			t.Fatalf("FrightenedDirection = %v, expected right (the only way away from pac)", got)
		}
	}
}

func TestFrightenedDirectionDeterministic(t *testing.T) {
	w := worldtest.SmallWorld(t)
	run := func() []core.Direction {
		rng := rand.New(rand.NewSource(42))
		var dirs []core.Direction
		for range 20 {
			dirs = append(dirs, FrightenedDirection(w, core.Vec2i(2, 3), core.DirDown, core.Vec2i(1, 4), open(w), rng))
		}
		return dirs
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed gave different choices at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestScriptTargeting(t *testing.T) {
	src := []byte(`
target_x = pac_x + 1
target_y = ghost == "red" ? pac_y : scatter_y
`)
	st, err := CompileScriptTargeting(src, nil, log.New(io.Discard))
	if err != nil {
		t.Fatalf("CompileScriptTargeting: %v", err)
	}

	s := Situation{Ghost: actor.Red, PacTile: core.Vec2i(5, 7), ScatterTile: core.Vec2i(0, 30)}
	if got := st.ChaseTarget(s); got != core.Vec2i(6, 7) {
		t.Errorf("red target = %v, expected (6,7)", got)
	}
	s.Ghost = actor.Pink
	if got := st.ChaseTarget(s); got != core.Vec2i(6, 30) {
		t.Errorf("pink target = %v, expected (6,30)", got)
	}
}

func TestScriptTargetingDefaultsToPac(t *testing.T) {
	st, err := CompileScriptTargeting([]byte(`x := 1`), nil, log.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	s := Situation{Ghost: actor.Cyan, PacTile: core.Vec2i(3, 4)}
	if got := st.ChaseTarget(s); got != s.PacTile {
		t.Errorf("script without assignment gave %v, expected pac tile", got)
	}
}

func TestScriptTargetingFallback(t *testing.T) {
	st, err := CompileScriptTargeting([]byte(`target_x = pac_x / 0`), ArcadeTargeting{}, log.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	s := Situation{Ghost: actor.Pink, PacTile: core.Vec2i(10, 10), PacDir: core.DirLeft}
	if got := st.ChaseTarget(s); got != core.Vec2i(6, 10) {
		t.Errorf("failing script gave %v, expected arcade target", got)
	}
	if !st.failed {
		t.Error("failure should be recorded")
	}
}

func TestScriptCompileError(t *testing.T) {
	if _, err := CompileScriptTargeting([]byte(`target_x = `), nil, nil); err == nil {
		t.Error("expected compile error")
	}
	_, err := LoadScriptTargeting("/does/not/exist.tengo", nil, nil)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestAutopilotEatsNearestFood(t *testing.T) {
	w := worldtest.SmallWorld(t)
	pac := actor.NewPac()
	pac.Reset(core.Vec2f(5, 1))

	ap := NewAutopilot()
	if got := ap.Steer(w, pac, nil, open(w)); got != core.DirLeft {
		t.Errorf("Steer = %v, expected left", got)
	}

	w.EatFoodAt(core.Vec2i(4, 1))
	w.EatFoodAt(core.Vec2i(3, 1))
	w.EatFoodAt(core.Vec2i(2, 1))
	w.EatFoodAt(core.Vec2i(1, 1))
	if got := ap.Steer(w, pac, nil, open(w)); got != core.DirRight {
		t.Errorf("Steer = %v, expected right after the left side was eaten", got)
	}
}

func TestAutopilotFleesHuntingGhost(t *testing.T) {
	w := worldtest.SmallWorld(t)
	pac := actor.NewPac()
	pac.Reset(core.Vec2f(5, 1))

	g := actor.NewGhost(actor.Red)
	g.Reset(core.Vec2f(3, 1), core.Vec2f(4.5, 3), core.DirRight, actor.Hunting)

	if got := NewAutopilot().Steer(w, pac, []*actor.Ghost{g}, open(w)); got != core.DirRight {
		t.Errorf("Steer = %v, expected to flee right", got)
	}
}
