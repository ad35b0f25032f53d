// Package sim runs the simulation without a terminal and writes the event
// log, one line per event. It is used for debugging and to check that two
// runs with the same seed stay identical.
package sim

import (
	"context"
	"fmt"
	"io"

	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/event"
	"github.com/vovakirdan/tui-pacman/internal/game"
)

// Options controls a headless run.
type Options struct {
	// Ticks is the number of simulation ticks to run.
	Ticks int64
	// Play inserts a coin, starts a game and hands Pac to the autopilot.
	// Without it the controller stays in attract mode.
	Play bool
	// StopAtGameOver ends the run when the game over state is entered.
	StopAtGameOver bool
	// Kinds restricts the log to the given event kinds. Empty logs all.
	Kinds []event.Kind
}

// Result summarizes a run.
type Result struct {
	Ticks    int64
	Events   int
	Snapshot game.Snapshot
}

// Run drives c for opts.Ticks ticks, writing every published event to out.
// It checks ctx between ticks and returns its error when canceled.
func Run(ctx context.Context, c *game.Controller, out io.Writer, opts Options) (Result, error) {
	var (
		res      Result
		writeErr error
	)
	record := func(e event.Event) {
		res.Events++
		if writeErr != nil {
			return
		}
		_, writeErr = fmt.Fprintf(out, "%7d %-28s %+v\n", c.Tick(), e.Kind(), e)
	}
	var unsubscribe func()
	if len(opts.Kinds) > 0 {
		unsubscribe = c.Bus().SubscribeKinds(record, opts.Kinds...)
	} else {
		unsubscribe = c.Bus().Subscribe(record)
	}
	defer unsubscribe()

	for res.Ticks < opts.Ticks {
		if err := ctx.Err(); err != nil {
			res.Snapshot = c.Snapshot()
			return res, err
		}
		c.Update(scriptedInput(c, opts.Play))
		res.Ticks++
		if writeErr != nil {
			return res, fmt.Errorf("sim: cannot write event log: %w", writeErr)
		}
		if opts.StopAtGameOver && c.State() == game.GameOver {
			break
		}
	}
	res.Snapshot = c.Snapshot()
	return res, nil
}

// scriptedInput is the input of a player who inserts a coin, starts a game
// and switches on the autopilot.
func scriptedInput(c *game.Controller, play bool) core.InputFrame {
	in := core.NewInputFrame()
	if !play {
		return in
	}
	switch c.State() {
	case game.Intro, game.SettingOptions:
		if c.Credits() == 0 {
			in.Set(core.ActionCredit)
		} else {
			in.Set(core.ActionConfirm)
		}
	case game.Hunting:
		if lvl := c.Level(); !lvl.Demo && !lvl.Pac.Autopilot {
			in.Set(core.ActionAutopilot)
		}
	}
	return in
}
