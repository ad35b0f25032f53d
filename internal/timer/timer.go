// Package timer provides a tick-based timer driven by the simulation loop.
//
// A TickTimer never reads the wall clock. It advances only when Tick is
// called, which the game does once per frame at core.TicksPerSecond.
package timer

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

// Indefinite is the duration of a timer that never expires on its own.
const Indefinite int64 = math.MaxInt64

// State is the lifecycle state of a TickTimer.
type State uint8

const (
	Ready State = iota
	Running
	Stopped
	Expired
)

func (s State) String() string {
	switch s {
	case Ready:
		return "READY"
	case Running:
		return "RUNNING"
	case Stopped:
		return "STOPPED"
	case Expired:
		return "EXPIRED"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// TickTimer counts simulation ticks up to a duration.
type TickTimer struct {
	name     string
	state    State
	duration int64
	ticks    int64
}

// New returns a READY timer with the given name and indefinite duration.
func New(name string) *TickTimer {
	return &TickTimer{name: name, state: Ready, duration: Indefinite}
}

// SecToTicks converts seconds to ticks, rounding to the nearest tick.
func SecToTicks(sec float64) int64 {
	return int64(math.Round(sec * core.TicksPerSecond))
}

// Name returns the diagnostic name.
func (t *TickTimer) Name() string { return t.name }

// State returns the current lifecycle state.
func (t *TickTimer) State() State { return t.state }

// Ticks returns the number of ticks counted since the last reset.
func (t *TickTimer) Ticks() int64 { return t.ticks }

// Duration returns the configured duration in ticks.
func (t *TickTimer) Duration() int64 { return t.duration }

// Remaining returns the ticks left before expiry, or Indefinite.
func (t *TickTimer) Remaining() int64 {
	if t.duration == Indefinite {
		return Indefinite
	}
	return max(t.duration-t.ticks, 0)
}

// ResetTicks puts the timer back to READY with the given duration.
// A negative duration is a programmer error.
func (t *TickTimer) ResetTicks(duration int64) {
	if duration < 0 {
		panic(fmt.Sprintf("timer %s: negative duration %d", t.name, duration))
	}
	t.duration = duration
	t.ticks = 0
	t.state = Ready
}

// ResetSeconds resets the timer to a duration given in seconds.
func (t *TickTimer) ResetSeconds(sec float64) {
	t.ResetTicks(SecToTicks(sec))
}

// ResetIndefinite resets the timer so it never expires.
func (t *TickTimer) ResetIndefinite() {
	t.ResetTicks(Indefinite)
}

// Start moves a READY or STOPPED timer to RUNNING.
func (t *TickTimer) Start() {
	if t.state == Ready || t.state == Stopped {
		t.state = Running
		if t.duration == 0 {
			t.state = Expired
		}
	}
}

// Stop pauses a RUNNING timer.
func (t *TickTimer) Stop() {
	if t.state == Running {
		t.state = Stopped
	}
}

// Tick advances the timer by one frame.
//
// A READY timer starts without counting, so the first counted tick is the
// one after the timer was started. Stopped and expired timers ignore ticks.
func (t *TickTimer) Tick() {
	switch t.state {
	case Ready:
		t.state = Running
		if t.duration == 0 {
			t.state = Expired
		}
	case Running:
		if t.duration != Indefinite {
			t.ticks++
			if t.ticks >= t.duration {
				t.state = Expired
			}
			return
		}
		if t.ticks < Indefinite {
			t.ticks++
		}
	}
}

// Expire forces the timer into the EXPIRED state.
func (t *TickTimer) Expire() {
	t.ticks = t.duration
	t.state = Expired
}

func (t *TickTimer) IsRunning() bool  { return t.state == Running }
func (t *TickTimer) IsStopped() bool  { return t.state == Stopped }
func (t *TickTimer) HasExpired() bool { return t.state == Expired }

// AtTick reports whether exactly n ticks have been counted.
func (t *TickTimer) AtTick(n int64) bool { return t.ticks == n }

// AtSecond reports whether the tick count equals the given second mark.
func (t *TickTimer) AtSecond(sec float64) bool { return t.ticks == SecToTicks(sec) }

// BetweenSeconds reports whether the tick count lies in [from, to).
func (t *TickTimer) BetweenSeconds(from, to float64) bool {
	return SecToTicks(from) <= t.ticks && t.ticks < SecToTicks(to)
}

func (t *TickTimer) String() string {
	if t.duration == Indefinite {
		return fmt.Sprintf("%s[%s %d/inf]", t.name, t.state, t.ticks)
	}
	return fmt.Sprintf("%s[%s %d/%d]", t.name, t.state, t.ticks, t.duration)
}
