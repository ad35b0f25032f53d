package tui

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/storage"
)

// stubGame ends after a fixed number of steps.
type stubGame struct {
	steps    int
	endAfter int
	score    int
	resets   int
	last     core.InputFrame
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.steps = 0
	g.resets++
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.last = in.Clone()
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "STUB", core.ColorYellow)
}

func (g *stubGame) State() core.GameState {
	return core.GameState{Score: g.score, Level: 3, GameOver: g.steps >= g.endAfter}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(TickMsg{})
	return next.(Model)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func testModel(g *stubGame, store *storage.Store) Model {
	cfg := core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 60, Seed: 1}
	return NewModel(g, store, cfg, log.New(io.Discard))
}

func TestModelSavesScoreOnce(t *testing.T) {
	store := openStore(t)
	g := &stubGame{endAfter: 3, score: 120}
	m := testModel(g, store)

	for i := 0; i < 6; i++ {
		m = tick(t, m)
	}

	scores, err := store.TopScores("stub", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 120 || scores[0].Level != 3 {
		t.Errorf("expected one saved score of 120 at level 3, got %v", scores)
	}
}

func TestModelPassesInputOnce(t *testing.T) {
	g := &stubGame{endAfter: 100}
	m := testModel(g, nil)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'5'}})
	m = tick(t, m)
	if !g.last.Has(core.ActionCredit) {
		t.Error("credit action not delivered")
	}
	m = tick(t, m)
	if g.last.Has(core.ActionCredit) {
		t.Error("credit action delivered twice")
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	g := &stubGame{endAfter: 1}
	m := testModel(g, nil)

	m = tick(t, m)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	tick(t, m)
	if g.resets != 1 {
		t.Errorf("resets = %d, expected 1", g.resets)
	}
}

func TestModelBackAndQuit(t *testing.T) {
	g := &stubGame{endAfter: 100}
	m := testModel(g, nil)

	// Back is ignored while playing.
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Error("back accepted during play")
	}

	g.endAfter = 0
	m = tick(t, m)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back ignored after game over")
	}

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.IsQuitting() || cmd == nil {
		t.Error("ctrl+c did not quit")
	}
	if m.View() != "" {
		t.Error("view not empty after quit")
	}
}

func TestModelView(t *testing.T) {
	m := testModel(&stubGame{endAfter: 100}, nil)
	if !strings.Contains(m.View(), "STUB") {
		t.Errorf("view missing game output: %q", m.View())
	}
}

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd", core.ColorDefault)
	s.DrawText(0, 1, "efgh", core.ColorPeach)

	out := RenderScreen(s)
	for _, want := range []string{"ab", "cd", "efgh"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() missing %q in %q", want, out)
		}
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 lines, got %q", out)
	}
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pacman.log")
	logger, f, err := OpenLogFile(path, log.InfoLevel)
	if err != nil {
		t.Fatalf("OpenLogFile() failed: %v", err)
	}
	logger.Info("hello", "n", 1)
	logger.Debug("hidden")
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello") || strings.Contains(string(data), "hidden") {
		t.Errorf("unexpected log contents %q", data)
	}
}
