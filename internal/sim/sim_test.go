package sim

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pacman/internal/config"
	"github.com/vovakirdan/tui-pacman/internal/event"
	"github.com/vovakirdan/tui-pacman/internal/game"
)

func newController(seed int64) *game.Controller {
	cfg := config.DefaultPacmanConfig()
	cfg.Timing.IntroSec = 1
	return game.NewController(game.Arcade, cfg,
		game.WithLogger(log.New(io.Discard)),
		game.WithSeed(seed),
	)
}

func TestRunPlaysAGame(t *testing.T) {
	var out bytes.Buffer
	res, err := Run(context.Background(), newController(3), &out, Options{Ticks: 1200, Play: true})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.Ticks != 1200 {
		t.Errorf("ticks = %d, expected 1200", res.Ticks)
	}

	events := out.String()
	for _, want := range []string{"CREDIT_ADDED", "LEVEL_CREATED", "LEVEL_STARTED", "PAC_FOUND_FOOD", "GAME_STATE_CHANGED"} {
		if !strings.Contains(events, want) {
			t.Errorf("event log missing %s", want)
		}
	}
	if got := strings.Count(events, "\n"); got != res.Events {
		t.Errorf("%d lines for %d events", got, res.Events)
	}
	if res.Snapshot.Points == 0 {
		t.Error("autopilot scored no points")
	}
}

func TestRunFiltersKinds(t *testing.T) {
	var out bytes.Buffer
	_, err := Run(context.Background(), newController(3), &out, Options{
		Ticks: 600,
		Play:  true,
		Kinds: []event.Kind{event.KindLevelCreated},
	})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if !strings.Contains(line, "LEVEL_CREATED") {
			t.Errorf("unexpected line %q", line)
		}
	}
}

func TestRunIsDeterministic(t *testing.T) {
	run := func() (string, Result) {
		var out bytes.Buffer
		res, err := Run(context.Background(), newController(11), &out, Options{Ticks: 2500, Play: true})
		if err != nil {
			t.Fatalf("Run() failed: %v", err)
		}
		return out.String(), res
	}
	log1, res1 := run()
	log2, res2 := run()
	if log1 != log2 || res1 != res2 {
		t.Error("two runs with the same seed differ")
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, newController(1), io.Discard, Options{Ticks: 100})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, expected context.Canceled", err)
	}
	if res.Ticks != 0 {
		t.Errorf("ran %d ticks after cancel", res.Ticks)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRunWriteError(t *testing.T) {
	_, err := Run(context.Background(), newController(1), failingWriter{}, Options{Ticks: 100, Play: true})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("err = %v, expected write failure", err)
	}
}

func TestAttractModeWithoutPlay(t *testing.T) {
	res, err := Run(context.Background(), newController(1), io.Discard, Options{Ticks: 300})
	if err != nil {
		t.Fatal(err)
	}
	if res.Snapshot.Points != 0 || res.Snapshot.Credits != 0 {
		t.Errorf("attract mode changed score or credits: %+v", res.Snapshot)
	}
}
