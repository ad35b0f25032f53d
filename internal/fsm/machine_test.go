package fsm

import (
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pacman/internal/timer"
)

type testState int

const (
	stateIdle testState = iota
	stateRun
	stateDie
)

func (s testState) String() string {
	return [...]string{"IDLE", "RUN", "DIE"}[s]
}

type recorder struct {
	calls []string
	// jump, when set, makes OnUpdate of stateRun change to this state.
	jump *testState
	m    *Machine[testState, *recorder]
}

func (s testState) OnEnter(r *recorder) { r.calls = append(r.calls, "enter "+s.String()) }
func (s testState) OnExit(r *recorder)  { r.calls = append(r.calls, "exit "+s.String()) }
func (s testState) OnUpdate(r *recorder) {
	r.calls = append(r.calls, "update "+s.String())
	if s == stateRun && r.jump != nil {
		next := *r.jump
		r.jump = nil
		r.m.ChangeState(next)
	}
}

func newTestMachine() (*Machine[testState, *recorder], *recorder) {
	r := &recorder{}
	m := New("test", r, log.New(io.Discard), stateIdle, stateRun, stateDie)
	r.m = m
	return m, r
}

func TestChangeStateOrder(t *testing.T) {
	m, r := newTestMachine()

	var notified [][2]testState
	m.AddListener(func(o, n testState) { notified = append(notified, [2]testState{o, n}) })

	m.ChangeState(stateIdle)
	m.ChangeState(stateRun)

	want := []string{"enter IDLE", "exit IDLE", "enter RUN"}
	if !slices.Equal(r.calls, want) {
		t.Errorf("calls = %v, expected %v", r.calls, want)
	}
	if len(notified) != 2 || notified[1] != [2]testState{stateIdle, stateRun} {
		t.Errorf("listener got %v", notified)
	}
	if prev, ok := m.Previous(); !ok || prev != stateIdle {
		t.Errorf("Previous() = %v, %v", prev, ok)
	}
}

func TestSelfTransitionIsIgnored(t *testing.T) {
	m, r := newTestMachine()
	m.ChangeState(stateRun)
	m.Update()
	m.Update()
	m.Update()
	ticks := m.CurrentTimer().Ticks()
	r.calls = nil

	notified := 0
	m.AddListener(func(_, _ testState) { notified++ })
	m.ChangeState(stateRun)

	if len(r.calls) != 0 || notified != 0 {
		t.Errorf("self transition produced calls %v and %d notifications", r.calls, notified)
	}
	if m.CurrentTimer().Ticks() != ticks {
		t.Errorf("self transition touched the timer: %d -> %d", ticks, m.CurrentTimer().Ticks())
	}
	if cur, _ := m.Current(); cur != stateRun {
		t.Errorf("Current() = %v, expected RUN", cur)
	}
}

func TestResumePreviousState(t *testing.T) {
	m, r := newTestMachine()
	m.ChangeState(stateRun)
	m.CurrentTimer().ResetTicks(100)
	for range 11 {
		m.Update()
	}
	runTicks := m.Timer(stateRun).Ticks()

	m.ChangeState(stateDie)
	r.calls = nil
	m.ResumePreviousState()
	if want := []string{"exit DIE"}; !slices.Equal(r.calls, want) {
		t.Errorf("calls = %v, expected %v (no re-entry)", r.calls, want)
	}
	if cur, _ := m.Current(); cur != stateRun {
		t.Errorf("Current() = %v, expected RUN", cur)
	}
	if got := m.Timer(stateRun).Ticks(); got != runTicks {
		t.Errorf("resumed timer ticks = %d, expected %d", got, runTicks)
	}
}

func TestRestartSkipsExit(t *testing.T) {
	m, r := newTestMachine()
	m.ChangeState(stateRun)
	m.Timer(stateDie).ResetTicks(5)
	r.calls = nil

	m.Restart(stateIdle)

	if want := []string{"enter IDLE"}; !slices.Equal(r.calls, want) {
		t.Errorf("calls = %v, expected %v", r.calls, want)
	}
	if _, ok := m.Previous(); ok {
		t.Error("Restart should clear the previous state")
	}
	for _, s := range m.States() {
		if d := m.Timer(s).Duration(); d != timer.Indefinite {
			t.Errorf("timer of %v has duration %d after restart", s, d)
		}
	}
}

func TestUpdateAdvancesTimer(t *testing.T) {
	m, _ := newTestMachine()
	m.Update() // no current state, nothing happens

	m.ChangeState(stateIdle)
	m.Update()
	if !m.CurrentTimer().IsRunning() || m.CurrentTimer().Ticks() != 0 {
		t.Fatalf("first update should start the timer, got %s", m.CurrentTimer())
	}
	m.Update()
	m.Update()
	if got := m.CurrentTimer().Ticks(); got != 2 {
		t.Errorf("Ticks() = %d, expected 2", got)
	}
}

func TestChangeDuringUpdateStartsNewTimer(t *testing.T) {
	m, r := newTestMachine()
	m.ChangeState(stateRun)
	next := stateDie
	r.jump = &next
	m.Update()

	if cur, _ := m.Current(); cur != stateDie {
		t.Fatalf("Current() = %v, expected DIE", cur)
	}
	if !m.Timer(stateDie).IsRunning() {
		t.Errorf("timer of the entered state should be running, got %s", m.Timer(stateDie))
	}
}

func TestListenerAddedDuringNotification(t *testing.T) {
	m, _ := newTestMachine()
	late := 0
	m.AddListener(func(_, _ testState) {
		m.AddListener(func(_, _ testState) { late++ })
	})
	m.ChangeState(stateRun)
	if late != 0 {
		t.Errorf("listener added during notification ran in the same round")
	}
	m.ChangeState(stateIdle)
	if late != 1 {
		t.Errorf("late listener ran %d times, expected 1", late)
	}
}

func TestDuplicateStatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate state")
		}
	}()
	New("dup", &recorder{}, nil, stateIdle, stateIdle)
}

func TestResumeWithoutPreviousPanics(t *testing.T) {
	m, _ := newTestMachine()
	m.ChangeState(stateIdle)
	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, ErrNoPreviousState) {
			t.Errorf("expected ErrNoPreviousState panic, got %v", err)
		}
	}()
	m.ResumePreviousState()
}
