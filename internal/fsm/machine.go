// Package fsm implements a small generic finite-state machine.
//
// States are values of an enumerated type S. Each state owns one
// timer.TickTimer held by the machine and receives enter, update and exit
// callbacks with a shared context C.
package fsm

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pacman/internal/timer"
)

// ErrNoPreviousState is the panic value of a resume without a previous state.
var ErrNoPreviousState = errors.New("fsm: no previous state")

// State is implemented by the state enumeration.
type State[C any] interface {
	comparable
	fmt.Stringer
	OnEnter(ctx C)
	OnUpdate(ctx C)
	OnExit(ctx C)
}

// Listener is notified after a state change completed.
type Listener[S any] func(oldState, newState S)

// Machine drives the states in S with context C.
type Machine[S State[C], C any] struct {
	name      string
	logger    *log.Logger
	ctx       C
	states    []S
	timers    map[S]*timer.TickTimer
	current   S
	hasCur    bool
	prev      S
	hasPrev   bool
	listeners []Listener[S]
}

// New creates a machine over the given states. Every state gets its own
// indefinite timer. Passing no states is a programmer error.
func New[S State[C], C any](name string, ctx C, logger *log.Logger, states ...S) *Machine[S, C] {
	if len(states) == 0 {
		panic("fsm: " + name + ": no states")
	}
	if logger == nil {
		logger = log.Default()
	}
	m := &Machine[S, C]{
		name:   name,
		logger: logger,
		ctx:    ctx,
		states: slices.Clone(states),
		timers: make(map[S]*timer.TickTimer, len(states)),
	}
	for _, s := range states {
		if _, dup := m.timers[s]; dup {
			panic(fmt.Sprintf("fsm: %s: duplicate state %s", name, s))
		}
		m.timers[s] = timer.New(name + ":" + s.String())
	}
	return m
}

// Context returns the shared context.
func (m *Machine[S, C]) Context() C { return m.ctx }

// States returns the known states in declaration order.
func (m *Machine[S, C]) States() []S { return slices.Clone(m.states) }

// Current returns the current state. ok is false before the first change.
func (m *Machine[S, C]) Current() (s S, ok bool) { return m.current, m.hasCur }

// Previous returns the state that was current before the last change.
func (m *Machine[S, C]) Previous() (s S, ok bool) { return m.prev, m.hasPrev }

// Is reports whether the current state is one of the given states.
func (m *Machine[S, C]) Is(states ...S) bool {
	return m.hasCur && slices.Contains(states, m.current)
}

// Timer returns the timer owned by s.
func (m *Machine[S, C]) Timer(s S) *timer.TickTimer {
	t, ok := m.timers[s]
	if !ok {
		panic(fmt.Sprintf("fsm: %s: unknown state %s", m.name, s))
	}
	return t
}

// CurrentTimer returns the timer of the current state.
func (m *Machine[S, C]) CurrentTimer() *timer.TickTimer {
	if !m.hasCur {
		panic("fsm: " + m.name + ": no current state")
	}
	return m.timers[m.current]
}

// AddListener registers fn to be called after every state change.
// Listeners run in registration order.
func (m *Machine[S, C]) AddListener(fn Listener[S]) {
	m.listeners = append(m.listeners, fn)
}

// ChangeState exits the current state and enters next. Changing to the
// current state is ignored.
func (m *Machine[S, C]) ChangeState(next S) {
	if m.hasCur && next == m.current {
		m.logger.Debug("state change ignored", "fsm", m.name, "state", next)
		return
	}
	t := m.Timer(next)

	old, hadOld := m.current, m.hasCur
	if hadOld {
		old.OnExit(m.ctx)
		m.prev, m.hasPrev = old, true
	}
	m.current, m.hasCur = next, true
	t.ResetIndefinite()
	m.logger.Debug("state changed", "fsm", m.name, "from", stateName(old, hadOld), "to", next)
	next.OnEnter(m.ctx)

	// Listeners may register further listeners.
	for _, fn := range slices.Clone(m.listeners) {
		fn(old, next)
	}
}

// Restart resets every timer and enters s without exiting the current state.
func (m *Machine[S, C]) Restart(s S) {
	for _, t := range m.timers {
		t.ResetIndefinite()
	}
	var zero S
	m.current, m.hasCur = zero, false
	m.prev, m.hasPrev = zero, false
	m.ChangeState(s)
}

// ResumePreviousState exits the current state and makes the previous state
// current again without re-entering it. Its timer continues where it left.
// Calling it without a previous state is a programmer error.
func (m *Machine[S, C]) ResumePreviousState() {
	if !m.hasPrev {
		panic(fmt.Errorf("%w: %s", ErrNoPreviousState, m.name))
	}
	cur := m.current
	if m.hasCur {
		cur.OnExit(m.ctx)
	}
	m.logger.Debug("state resumed", "fsm", m.name, "from", stateName(cur, m.hasCur), "to", m.prev)
	m.current, m.prev = m.prev, cur
	m.hasPrev = m.hasCur
	m.hasCur = true
}

// Update runs the current state's update and then advances its timer.
// The timer advanced is the one of the state that is current after the
// update, so a state entered during the update starts counting right away.
func (m *Machine[S, C]) Update() {
	if !m.hasCur {
		return
	}
	m.current.OnUpdate(m.ctx)
	t := m.timers[m.current]
	if t.State() == timer.Ready {
		t.Start()
	} else {
		t.Tick()
	}
}

func stateName[S fmt.Stringer](s S, ok bool) string {
	if !ok {
		return "none"
	}
	return s.String()
}
