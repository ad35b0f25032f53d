package pacman

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pacman/internal/config"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/game"
	"github.com/vovakirdan/tui-pacman/internal/maps"
	"github.com/vovakirdan/tui-pacman/internal/registry"
)

type memStore struct {
	high  game.Score
	saved []game.Score
}

func (s *memStore) LoadHighScore(string) (game.Score, error) { return s.high, nil }

func (s *memStore) SaveHighScore(_ string, sc game.Score) error {
	s.saved = append(s.saved, sc)
	return nil
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 60, ScreenH: 40, TickRate: 60, Seed: 7}
}

func newTestGame(t *testing.T, v game.Variant, cfg config.PacmanConfig) *Game {
	t.Helper()
	g := New(v)
	g.Configure(Env{Config: &cfg, Logger: log.New(io.Discard)})
	g.Reset(testRuntime())
	t.Cleanup(g.Close)
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func render(g *Game, w, h int) string {
	s := core.NewScreen(w, h)
	g.Render(s)
	return s.String()
}

func TestVariantsRegistered(t *testing.T) {
	for _, v := range game.Variants() {
		if !registry.Exists(v.ID) {
			t.Fatalf("variant %q not registered", v.ID)
		}
		g, err := registry.Create(v.ID)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", v.ID, err)
		}
		if g.Title() != v.Title {
			t.Errorf("Title() = %q, expected %q", g.Title(), v.Title)
		}
	}
}

func TestConfigureOnlyAcceptsPacman(t *testing.T) {
	g, err := registry.Create(game.Arcade.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !Configure(g, Env{}) {
		t.Error("Configure rejected a Pac-Man game")
	}
}

func TestIntroAndStart(t *testing.T) {
	g := newTestGame(t, game.Arcade, config.DefaultPacmanConfig())

	g.Step(core.InputFrame{})
	if g.Controller().State() != game.Intro {
		t.Fatalf("state = %s, expected INTRO", g.Controller().State())
	}
	out := render(g, 60, 40)
	if !strings.Contains(out, "PAC-MAN") || !strings.Contains(out, "INSERT COIN") {
		t.Errorf("intro screen missing title or coin prompt:\n%s", out)
	}

	g.Step(frame(core.ActionCredit))
	if !strings.Contains(render(g, 60, 40), "PUSH START BUTTON") {
		t.Error("expected start prompt after inserting a coin")
	}

	g.Step(frame(core.ActionConfirm))
	if g.Controller().State() != game.Ready {
		t.Fatalf("state = %s, expected READY", g.Controller().State())
	}
	out = render(g, 60, 40)
	if !strings.Contains(out, "READY!") {
		t.Errorf("ready screen missing READY!:\n%s", out)
	}
	if !strings.Contains(out, string(PelletChar)) {
		t.Error("maze rendered without pellets")
	}
	if st := g.State(); st.Level != 1 || st.GameOver {
		t.Errorf("unexpected state %+v", st)
	}
}

func TestPauseStopsSimulation(t *testing.T) {
	g := newTestGame(t, game.Arcade, config.DefaultPacmanConfig())

	g.Step(frame(core.ActionPause))
	for i := 0; i < 10; i++ {
		g.Step(core.InputFrame{})
	}
	if g.Controller().Tick() != 0 {
		t.Errorf("simulation advanced while paused: tick %d", g.Controller().Tick())
	}
	if !g.State().Paused {
		t.Error("State() does not report pause")
	}
	if !strings.Contains(render(g, 60, 40), "PAUSED") {
		t.Error("pause overlay missing")
	}

	g.Step(frame(core.ActionPause))
	if g.Controller().Tick() != 1 {
		t.Errorf("tick = %d after resume, expected 1", g.Controller().Tick())
	}
}

func TestHostTickRate(t *testing.T) {
	tests := []struct {
		rate  int
		steps int
		ticks int64
	}{
		{60, 10, 10},
		{30, 10, 20},
		{120, 10, 5},
	}
	for _, tt := range tests {
		g := New(game.Arcade)
		g.Configure(Env{Logger: log.New(io.Discard)})
		rc := testRuntime()
		rc.TickRate = tt.rate
		g.Reset(rc)
		for i := 0; i < tt.steps; i++ {
			g.Step(core.InputFrame{})
		}
		if got := g.Controller().Tick(); got != tt.ticks {
			t.Errorf("rate %d: tick = %d, expected %d", tt.rate, got, tt.ticks)
		}
	}
}

func TestSmallTerminal(t *testing.T) {
	g := newTestGame(t, game.Arcade, config.DefaultPacmanConfig())
	g.Step(core.InputFrame{})
	g.Step(frame(core.ActionCredit))
	g.Step(frame(core.ActionConfirm))

	if out := render(g, 40, 20); !strings.Contains(out, "Terminal too small") {
		t.Errorf("expected size warning:\n%s", out)
	}
}

func TestHighScoreFromStore(t *testing.T) {
	store := &memStore{high: game.Score{Points: 4321, Level: 2}}
	g := New(game.Arcade)
	g.Configure(Env{Store: store, Logger: log.New(io.Discard)})
	g.Reset(testRuntime())

	if !strings.Contains(render(g, 60, 40), "4321") {
		t.Error("high score from store not shown")
	}
}

func TestXXLOptionsScreen(t *testing.T) {
	cfg := config.DefaultPacmanConfig()
	cfg.Maps.CustomDir = filepath.Join(t.TempDir(), "maps")
	cfg.Maps.Watch = true
	g := newTestGame(t, game.XXL, cfg)

	g.Step(core.InputFrame{})
	if g.Controller().State() != game.SettingOptions {
		t.Fatalf("state = %s, expected SETTING_OPTIONS", g.Controller().State())
	}
	if !strings.Contains(render(g, 60, 40), "CUSTOM_MAPS_FIRST") {
		t.Error("options screen does not show the selection mode")
	}

	g.Step(frame(core.ActionOption))
	if g.Controller().MapSelection() != maps.AllRandom {
		t.Errorf("mode = %s, expected all_random", g.Controller().MapSelection())
	}

	g.Step(frame(core.ActionConfirm))
	if g.Controller().State() != game.Ready {
		t.Fatalf("state = %s, expected READY", g.Controller().State())
	}
	if g.Controller().Level().World == nil {
		t.Fatal("level has no world")
	}
}

func TestBadChaseScriptFallsBack(t *testing.T) {
	cfg := config.DefaultPacmanConfig()
	cfg.AI.ChaseScript = filepath.Join(t.TempDir(), "missing.tengo")
	g := newTestGame(t, game.Arcade, cfg)

	g.Step(core.InputFrame{})
	if g.Controller().State() != game.Intro {
		t.Errorf("state = %s, expected INTRO", g.Controller().State())
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() game.Snapshot {
		g := New(game.Arcade)
		g.Configure(Env{Logger: log.New(io.Discard)})
		g.Reset(testRuntime())
		g.Step(core.InputFrame{})
		g.Step(frame(core.ActionCredit))
		g.Step(frame(core.ActionConfirm))
		for i := 0; i < 1500; i++ {
			g.Step(core.InputFrame{})
		}
		return g.Controller().Snapshot()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("Determinism failed:\n%+v\n%+v", a, b)
	}
}
