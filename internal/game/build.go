package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-pacman/internal/actor"
	"github.com/vovakirdan/tui-pacman/internal/ai"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/event"
	"github.com/vovakirdan/tui-pacman/internal/maps"
	"github.com/vovakirdan/tui-pacman/internal/world"
)

// ErrLevelBuild wraps the cause of a failed level build. The controller
// keeps the previous level when a build fails.
var ErrLevelBuild = errors.New("game: level build failed")

// DefaultBonusPos is where the bonus appears on maps without a pos_bonus
// property.
var DefaultBonusPos = core.Vec2f(13.5, 20)

// MapProvider supplies the maze of each level.
type MapProvider interface {
	MapForLevel(levelNumber int, mode maps.SelectionMode, rng *rand.Rand) (*world.Map, error)
}

// ArcadeMaps provides the classic maze for every level.
type ArcadeMaps struct{}

func (ArcadeMaps) MapForLevel(int, maps.SelectionMode, *rand.Rand) (*world.Map, error) {
	return maps.Arcade(), nil
}

// LibraryMaps selects mazes from a map library.
type LibraryMaps struct {
	Library *maps.Library
}

func (p LibraryMaps) MapForLevel(levelNumber int, mode maps.SelectionMode, rng *rand.Rand) (*world.Map, error) {
	return p.Library.Select(mode, levelNumber, rng), nil
}

// Level is the state of the level being played.
type Level struct {
	Number int
	Demo   bool
	World  *world.World
	Data   LevelData
	Speeds Speeds
	Pac    *actor.Pac
	Ghosts [4]*actor.Ghost
	Bonus  *actor.Bonus

	pacStart   core.Vector2f
	ghostStart [4]core.Vector2f
	ghostDir   [4]core.Direction
	scatter    [4]core.Vector2i
	bonusPos   core.Vector2f

	bonusIndex int
	// ghostKills counts the ghosts eaten during the current power period.
	ghostKills   int
	elroyEnabled bool
	globalDots   int
	globalDotsOn bool
	started      bool
}

// Ghost returns the ghost with the given personality.
func (l *Level) Ghost(id actor.Personality) *actor.Ghost {
	return l.Ghosts[actor.MustPersonality(int(id))]
}

// BonusIndex returns the index of the last activated bonus, -1 before the
// first one.
func (l *Level) BonusIndex() int { return l.bonusIndex }

// ScatterTile returns the scatter target of a ghost.
func (l *Level) ScatterTile(id actor.Personality) core.Vector2i { return l.scatter[id] }

// Elroy returns the Cruise Elroy stage of the red ghost: 0, 1 or 2.
func (l *Level) Elroy() int {
	if !l.elroyEnabled {
		return 0
	}
	switch left := l.World.UneatenFoodCount(); {
	case left <= l.Data.Elroy2DotsLeft:
		return 2
	case left <= l.Data.Elroy1DotsLeft:
		return 1
	}
	return 0
}

// tileStart is the position between tile and its right neighbor, where the
// arcade places its actors.
func tileStart(t core.Vector2i) core.Vector2f {
	return core.Vec2f(float64(t.X)+0.5, float64(t.Y))
}

// BuildLevel creates level levelNumber. On failure the current level stays
// in place and the returned error wraps ErrLevelBuild.
func (c *Controller) BuildLevel(levelNumber int, demo bool) error {
	core.MustLevel(levelNumber)
	m, err := c.maps.MapForLevel(levelNumber, c.mapMode, c.rng)
	if err != nil {
		return fmt.Errorf("%w: level %d: %w", ErrLevelBuild, levelNumber, err)
	}
	lvl, err := c.newLevel(levelNumber, demo, m)
	if err != nil {
		return err
	}
	c.level = lvl
	c.hunting.Reset(levelNumber)
	c.logger.Info("level created", "level", levelNumber, "demo", demo, "map", m.Source,
		"food", lvl.World.TotalFoodCount())
	c.bus.Publish(event.LevelCreated{Level: levelNumber, Demo: demo})
	return nil
}

// buildOrFallback builds a level and falls back to the arcade maze when the
// selected map cannot be used.
func (c *Controller) buildOrFallback(levelNumber int, demo bool) error {
	err := c.BuildLevel(levelNumber, demo)
	if err == nil {
		return nil
	}
	c.logger.Error("cannot build level, using the arcade maze", "level", levelNumber, "err", err)
	lvl, err := c.newLevel(levelNumber, demo, maps.Arcade())
	if err != nil {
		return err
	}
	c.level = lvl
	c.hunting.Reset(levelNumber)
	c.bus.Publish(event.LevelCreated{Level: levelNumber, Demo: demo})
	return nil
}

func (c *Controller) newLevel(levelNumber int, demo bool, m *world.Map) (*Level, error) {
	w, err := world.New(m)
	if err != nil {
		return nil, fmt.Errorf("%w: level %d: %w", ErrLevelBuild, levelNumber, err)
	}
	pacTile, ok := w.TileProp(world.PropPacPos)
	if !ok {
		return nil, fmt.Errorf("%w: level %d: map %q has no %s property",
			ErrLevelBuild, levelNumber, m.Source, world.PropPacPos)
	}
	if w.TotalFoodCount() == 0 {
		return nil, fmt.Errorf("%w: level %d: map %q has no food", ErrLevelBuild, levelNumber, m.Source)
	}

	dm := c.difficulty
	lvl := &Level{
		Number:       levelNumber,
		Demo:         demo,
		World:        w,
		Data:         ArcadeLevel(levelNumber),
		Speeds:       c.speeds.Speeds(levelNumber).scaled(dm.GhostSpeedFactor(c.score.Points, levelNumber)),
		Pac:          actor.NewPac(),
		Bonus:        actor.NewBonus(),
		pacStart:     tileStart(pacTile),
		bonusPos:     DefaultBonusPos,
		bonusIndex:   -1,
		elroyEnabled: true,
	}
	if t, ok := w.TileProp(world.PropBonusPos); ok {
		lvl.bonusPos = tileStart(t)
	}

	house := w.House()
	center := house.Center()
	defaults := [4]core.Vector2f{
		house.EntryPosition(),
		center,
		center.Plus(core.Vec2f(-2, 0)),
		center.Plus(core.Vec2f(2, 0)),
	}
	dirs := [4]core.Direction{core.DirLeft, core.DirDown, core.DirUp, core.DirUp}
	for _, id := range actor.Personalities {
		lvl.Ghosts[id] = actor.NewGhost(id)
		lvl.ghostStart[id] = defaults[id]
		if t, ok := w.TileProp(fmt.Sprintf(world.PropGhostPosFmt, id)); ok {
			lvl.ghostStart[id] = tileStart(t)
		}
		lvl.ghostDir[id] = dirs[id]
		lvl.scatter[id] = ai.ScatterTile(w, id)
	}
	return lvl, nil
}

// resetRound puts every actor at its start position. It runs whenever a
// round begins, including after Pac lost a life.
func (c *Controller) resetRound() {
	l := c.level
	l.Pac.Reset(l.pacStart)
	l.Pac.Autopilot = l.Demo || c.autopilotOn
	l.Pac.Immune = c.cfg.Gameplay.PacImmune

	revival := l.World.House().Center()
	for _, g := range l.Ghosts {
		if g.ID == actor.Red {
			g.Reset(l.ghostStart[g.ID], revival, l.ghostDir[g.ID], actor.Hunting)
			continue
		}
		g.Reset(l.ghostStart[g.ID], l.ghostStart[g.ID], l.ghostDir[g.ID], actor.Locked)
	}
	l.Bonus.SetInactive()
	l.ghostKills = 0
	c.hunting.Reset(l.Number)
}
