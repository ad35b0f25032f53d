package hunting

import (
	"slices"
	"testing"

	"github.com/vovakirdan/tui-pacman/internal/event"
	"github.com/vovakirdan/tui-pacman/internal/timer"
)

func TestLevelOneTable(t *testing.T) {
	want := []int64{420, 1200, 420, 1200, 300, 1200, 300, timer.Indefinite}
	for i, ticks := range want {
		if got := Ticks(1, i); got != ticks {
			t.Errorf("Ticks(1, %d) = %d, expected %d", i, got, ticks)
		}
		wantKind := Scatter
		if i%2 == 1 {
			wantKind = Chase
		}
		if KindOf(i) != wantKind {
			t.Errorf("KindOf(%d) = %v, expected %v", i, KindOf(i), wantKind)
		}
	}
}

func TestBrackets(t *testing.T) {
	tests := []struct {
		level  int
		phase5 int64
		phase0 int64
	}{
		{1, 1200, 420},
		{2, 61980, 420},
		{4, 61980, 420},
		{5, 62262, 300},
		{21, 62262, 300},
	}
	for _, tt := range tests {
		if got := Ticks(tt.level, 5); got != tt.phase5 {
			t.Errorf("Ticks(%d, 5) = %d, expected %d", tt.level, got, tt.phase5)
		}
		if got := Ticks(tt.level, 0); got != tt.phase0 {
			t.Errorf("Ticks(%d, 0) = %d, expected %d", tt.level, got, tt.phase0)
		}
		if got := Ticks(tt.level, NumPhases-1); got != timer.Indefinite {
			t.Errorf("last phase of level %d is not indefinite", tt.level)
		}
	}
}

func TestInvalidArgumentsPanic(t *testing.T) {
	for _, fn := range []func(){
		func() { Ticks(0, 0) },
		func() { Ticks(1, 8) },
		func() { Ticks(1, -1) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			fn()
		}()
	}
}

func TestControllerAdvancesPhases(t *testing.T) {
	bus := event.NewBus()
	var started []int
	bus.SubscribeKinds(func(e event.Event) {
		started = append(started, e.(event.HuntingPhaseStarted).Phase)
	}, event.KindHuntingPhaseStarted)

	c := NewController(bus)
	c.Reset(1)
	c.Start()

	changes := 0
	// Sum of the finite level 1 phases.
	for range 420 + 1200 + 420 + 1200 + 300 + 1200 + 300 + 1000 {
		if c.Update() {
			changes++
		}
	}

	if c.PhaseIndex() != NumPhases-1 || !c.InChase() {
		t.Errorf("controller at %s, expected final chase", c)
	}
	if changes != NumPhases-1 {
		t.Errorf("%d phase changes, expected %d", changes, NumPhases-1)
	}
	if want := []int{0, 1, 2, 3, 4, 5, 6, 7}; !slices.Equal(started, want) {
		t.Errorf("started phases %v, expected %v", started, want)
	}
}

func TestControllerPhaseBoundary(t *testing.T) {
	c := NewController(event.NewBus())
	c.Reset(1)
	c.Start()
	for range 419 {
		c.Update()
	}
	if !c.InScatter() {
		t.Fatal("phase changed too early")
	}
	if !c.Update() || !c.InChase() {
		t.Errorf("expected chase after 420 ticks, got %s", c)
	}
}

func TestControllerStopResume(t *testing.T) {
	c := NewController(event.NewBus())
	c.Reset(1)
	c.Start()
	for range 100 {
		c.Update()
	}
	c.Stop()
	for range 1000 {
		c.Update()
	}
	if c.Timer().Ticks() != 100 || !c.InScatter() {
		t.Fatalf("stopped controller advanced: %s", c)
	}
	c.Resume()
	c.Update()
	if c.Timer().Ticks() != 101 {
		t.Errorf("resumed controller at %d ticks", c.Timer().Ticks())
	}
}
