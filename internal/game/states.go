package game

import (
	"fmt"

	"github.com/vovakirdan/tui-pacman/internal/actor"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/event"
	"github.com/vovakirdan/tui-pacman/internal/timer"
)

// GameState is a state of the game state machine.
type GameState int

const (
	Boot GameState = iota
	SettingOptions
	Intro
	Ready
	Hunting
	GhostDying
	PacDying
	LevelComplete
	GameOver
	Intermission
	TestingLevels
	TestingCutScenes
)

var stateNames = [...]string{
	Boot:             "BOOT",
	SettingOptions:   "SETTING_OPTIONS",
	Intro:            "INTRO",
	Ready:            "READY",
	Hunting:          "HUNTING",
	GhostDying:       "GHOST_DYING",
	PacDying:         "PACMAN_DYING",
	LevelComplete:    "LEVEL_COMPLETE",
	GameOver:         "GAME_OVER",
	Intermission:     "INTERMISSION",
	TestingLevels:    "TESTING_LEVELS",
	TestingCutScenes: "TESTING_CUT_SCENES",
}

// States returns all game states in declaration order.
func States() []GameState {
	out := make([]GameState, len(stateNames))
	for i := range out {
		out[i] = GameState(i)
	}
	return out
}

func (s GameState) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("GameState(%d)", int(s))
}

func (s GameState) OnEnter(c *Controller) {
	t := c.fsm.Timer(s)
	switch s {
	case Boot:
		c.playing = false
	case Intro:
		c.playing = false
		t.ResetSeconds(c.cfg.Timing.IntroSec)
	case Ready:
		c.resetRound()
		sec := c.cfg.Timing.ReadySec
		if c.newGame {
			sec = c.cfg.Timing.ReadyNewGameSec
			c.newGame = false
		}
		t.ResetSeconds(sec)
	case Hunting:
		c.enterHunting()
	case GhostDying:
		t.ResetSeconds(c.cfg.Timing.GhostDyingSec)
	case PacDying:
		c.enterPacDying()
		t.ResetSeconds(c.cfg.Timing.PacDyingSec)
	case LevelComplete:
		c.enterLevelComplete()
		t.ResetSeconds(c.cfg.Timing.LevelCompleteSec)
	case GameOver:
		c.playing = false
		c.recordHighScore()
		c.bus.Publish(event.StopAllSounds{})
		t.ResetSeconds(c.cfg.Timing.GameOverSec)
	case Intermission:
		c.bus.Publish(event.IntermissionStarted{Number: c.cutScene})
		t.ResetSeconds(c.cfg.Timing.IntermissionSec)
	case TestingLevels:
		c.playing = false
		c.testLevel = 1
		c.buildTestLevel(t)
	case TestingCutScenes:
		c.playing = false
		c.cutScene = 1
		c.bus.Publish(event.IntermissionStarted{Number: c.cutScene})
		t.ResetSeconds(c.cfg.Timing.IntermissionSec)
	}
}

func (s GameState) OnUpdate(c *Controller) {
	t := c.fsm.Timer(s)
	switch s {
	case Boot:
		if c.variant.HasOptions {
			c.fsm.ChangeState(SettingOptions)
		} else {
			c.fsm.ChangeState(Intro)
		}
	case SettingOptions:
		c.updateOptions()
	case Intro:
		c.updateIntro(t)
	case Ready:
		if c.level.Demo && c.input.Has(core.ActionCredit) {
			c.AddCredit()
			c.fsm.ChangeState(Intro)
			return
		}
		if t.HasExpired() {
			c.fsm.ChangeState(Hunting)
		}
	case Hunting:
		c.updateHunting()
	case GhostDying:
		if t.HasExpired() {
			c.fsm.ResumePreviousState()
		}
	case PacDying:
		if t.HasExpired() {
			c.afterPacDying()
		}
	case LevelComplete:
		if t.HasExpired() {
			c.afterLevelComplete()
		}
	case GameOver:
		if t.HasExpired() {
			c.fsm.ChangeState(Intro)
		}
	case Intermission:
		if !t.HasExpired() {
			return
		}
		if c.playing {
			c.nextLevel()
			c.fsm.ChangeState(Ready)
		} else {
			c.fsm.ChangeState(Intro)
		}
	case TestingLevels:
		if !t.HasExpired() {
			return
		}
		c.testLevel++
		if c.testLevel > NumArcadeLevels {
			c.fsm.ChangeState(Intro)
			return
		}
		c.buildTestLevel(t)
	case TestingCutScenes:
		if !t.HasExpired() {
			return
		}
		c.cutScene++
		if c.cutScene > NumCutScenes {
			c.fsm.ChangeState(Intro)
			return
		}
		c.bus.Publish(event.IntermissionStarted{Number: c.cutScene})
		t.ResetSeconds(c.cfg.Timing.IntermissionSec)
	}
}

func (s GameState) OnExit(c *Controller) {
	if s == GhostDying {
		for _, g := range c.level.Ghosts {
			if g.State == actor.Eaten {
				g.State = actor.ReturningHome
				c.bus.Publish(event.GhostStartsReturningHome{Ghost: int(g.ID)})
			}
		}
	}
}

func (c *Controller) updateOptions() {
	switch {
	case c.input.Has(core.ActionCredit):
		c.AddCredit()
	case c.input.Has(core.ActionOption):
		c.mapMode = c.mapMode.Next()
		c.logger.Debug("map selection changed", "mode", c.mapMode)
	case c.input.Has(core.ActionConfirm):
		if c.credits > 0 {
			c.credits--
		}
		c.startGame()
	}
}

func (c *Controller) updateIntro(t *timer.TickTimer) {
	switch {
	case c.input.Has(core.ActionCredit):
		c.AddCredit()
	case c.input.Has(core.ActionConfirm) && c.credits > 0:
		c.credits--
		c.startGame()
	case c.input.Has(core.ActionOption) && c.variant.HasOptions:
		c.fsm.ChangeState(SettingOptions)
	case t.HasExpired():
		if err := c.buildOrFallback(1, true); err != nil {
			c.logger.Error("cannot build demo level", "err", err)
			t.ResetSeconds(c.cfg.Timing.IntroSec)
			return
		}
		c.fsm.ChangeState(Ready)
	}
}

func (c *Controller) enterHunting() {
	l := c.level
	if !l.started {
		l.started = true
		c.logger.Debug("level started", "level", l.Number)
		c.bus.Publish(event.LevelStarted{Level: l.Number})
	}
	c.hunting.Start()
}

func (c *Controller) enterPacDying() {
	l := c.level
	l.Pac.Dead = true
	l.Pac.Power.ResetIndefinite()
	l.Bonus.SetInactive()
	l.elroyEnabled = false
	l.globalDotsOn = true
	l.globalDots = 0
	c.hunting.Stop()
	c.bus.Publish(event.StopAllSounds{})
	c.bus.Publish(event.PacDying{Tile: l.Pac.Tile()})
}

func (c *Controller) afterPacDying() {
	if c.level.Demo {
		c.fsm.ChangeState(Intro)
		return
	}
	c.lives--
	if c.lives > 0 {
		c.fsm.ChangeState(Ready)
		return
	}
	c.fsm.ChangeState(GameOver)
}

func (c *Controller) enterLevelComplete() {
	l := c.level
	l.Pac.Power.ResetIndefinite()
	l.Bonus.SetInactive()
	c.hunting.Stop()
	c.logger.Info("level complete", "level", l.Number, "score", c.score.Points)
	c.bus.Publish(event.StopAllSounds{})
}

func (c *Controller) afterLevelComplete() {
	l := c.level
	if l.Demo {
		c.fsm.ChangeState(Intro)
		return
	}
	if n := CutSceneAfter(l.Number); n > 0 && c.cfg.Gameplay.CutScenes {
		c.cutScene = n
		c.fsm.ChangeState(Intermission)
		return
	}
	c.nextLevel()
	c.fsm.ChangeState(Ready)
}

func (c *Controller) buildTestLevel(t *timer.TickTimer) {
	if err := c.buildOrFallback(c.testLevel, true); err != nil {
		c.logger.Error("cannot build test level", "level", c.testLevel, "err", err)
	} else {
		c.resetRound()
	}
	t.ResetSeconds(c.cfg.Timing.ReadySec)
}
