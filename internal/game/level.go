package game

import (
	"github.com/vovakirdan/tui-pacman/internal/actor"
	"github.com/vovakirdan/tui-pacman/internal/core"
)

// LevelData is one row of the arcade level table. Speeds are percentages
// of actor.BaseSpeed.
type LevelData struct {
	BonusSymbol          int
	PacSpeed             float64
	GhostSpeed           float64
	GhostTunnelSpeed     float64
	Elroy1DotsLeft       int
	Elroy1Speed          float64
	Elroy2DotsLeft       int
	Elroy2Speed          float64
	PacPowerSpeed        float64
	GhostFrightenedSpeed float64
	PacPowerSec          int
	NumFlashes           int
}

var arcadeLevels = [...]LevelData{
	{actor.Cherries, 80, 75, 40, 20, 80, 10, 85, 90, 50, 6, 5},
	{actor.Strawberry, 90, 85, 45, 30, 90, 15, 95, 95, 55, 5, 5},
	{actor.Peach, 90, 85, 45, 40, 90, 20, 95, 95, 55, 4, 5},
	{actor.Peach, 90, 85, 45, 40, 90, 20, 95, 95, 55, 3, 5},
	{actor.Apple, 100, 95, 50, 40, 100, 20, 105, 100, 60, 2, 5},
	{actor.Apple, 100, 95, 50, 50, 100, 25, 105, 100, 60, 5, 5},
	{actor.Grapes, 100, 95, 50, 50, 100, 25, 105, 100, 60, 2, 5},
	{actor.Grapes, 100, 95, 50, 50, 100, 25, 105, 100, 60, 2, 5},
	{actor.Galaxian, 100, 95, 50, 60, 100, 30, 105, 100, 60, 1, 3},
	{actor.Galaxian, 100, 95, 50, 60, 100, 30, 105, 100, 60, 5, 5},
	{actor.Bell, 100, 95, 50, 60, 100, 30, 105, 100, 60, 2, 5},
	{actor.Bell, 100, 95, 50, 80, 100, 40, 105, 100, 60, 1, 3},
	{actor.Key, 100, 95, 50, 80, 100, 40, 105, 100, 60, 1, 3},
	{actor.Key, 100, 95, 50, 80, 100, 40, 105, 100, 60, 3, 5},
	{actor.Key, 100, 95, 50, 100, 100, 50, 105, 100, 60, 1, 3},
	{actor.Key, 100, 95, 50, 100, 100, 50, 105, 100, 60, 1, 3},
	{actor.Key, 100, 95, 50, 100, 100, 50, 105, 0, 0, 0, 0},
	{actor.Key, 100, 95, 50, 100, 100, 50, 105, 100, 60, 1, 3},
	{actor.Key, 100, 95, 50, 120, 100, 60, 105, 0, 0, 0, 0},
	{actor.Key, 100, 95, 50, 120, 100, 60, 105, 0, 0, 0, 0},
	{actor.Key, 90, 95, 50, 120, 100, 60, 105, 0, 0, 0, 0},
}

// NumArcadeLevels is the number of distinct rows in the level table. Later
// levels repeat the last row.
const NumArcadeLevels = len(arcadeLevels)

// ArcadeLevel returns the table row of a level.
func ArcadeLevel(levelNumber int) LevelData {
	core.MustLevel(levelNumber)
	return arcadeLevels[min(levelNumber, NumArcadeLevels)-1]
}

// bonusFactors holds the value of each bonus symbol in hundreds of points.
var bonusFactors = [...]int{1, 3, 5, 7, 10, 20, 30, 50}

// BonusPoints returns the points awarded for eating a bonus symbol.
func BonusPoints(symbol int) int {
	if symbol < 0 || symbol >= len(bonusFactors) {
		panic(core.Preconditionf("bonus symbol %d outside 0..%d", symbol, len(bonusFactors)-1))
	}
	return bonusFactors[symbol] * 100
}

// cutSceneAfterLevel maps levels to the intermission played after them.
var cutSceneAfterLevel = map[int]int{2: 1, 5: 2, 9: 3, 13: 3, 17: 3}

// CutSceneAfter returns the cut scene played after completing a level, or 0.
func CutSceneAfter(levelNumber int) int {
	return cutSceneAfterLevel[levelNumber]
}

// NumCutScenes is the number of distinct intermissions.
const NumCutScenes = 3

// Speeds are the movement speeds of a level in tiles per tick.
type Speeds struct {
	Pac             float64
	PacPower        float64
	Ghost           float64
	GhostTunnel     float64
	GhostFrightened float64
	Elroy1          float64
	Elroy2          float64
	GhostReturning  float64
	GhostHouse      float64
}

// SpeedTable provides the speeds of each level.
type SpeedTable interface {
	Speeds(levelNumber int) Speeds
}

// ArcadeSpeeds derives speeds from the arcade level table.
type ArcadeSpeeds struct{}

func (ArcadeSpeeds) Speeds(levelNumber int) Speeds {
	d := ArcadeLevel(levelNumber)
	return Speeds{
		Pac:             actor.SpeedPct(d.PacSpeed),
		PacPower:        actor.SpeedPct(d.PacPowerSpeed),
		Ghost:           actor.SpeedPct(d.GhostSpeed),
		GhostTunnel:     actor.SpeedPct(d.GhostTunnelSpeed),
		GhostFrightened: actor.SpeedPct(d.GhostFrightenedSpeed),
		Elroy1:          actor.SpeedPct(d.Elroy1Speed),
		Elroy2:          actor.SpeedPct(d.Elroy2Speed),
		GhostReturning:  actor.SpeedPct(150),
		GhostHouse:      actor.SpeedPct(50),
	}
}

// scaled returns the speeds with every ghost speed multiplied by f. Returning
// and house speeds are left alone.
func (s Speeds) scaled(f float64) Speeds {
	s.Ghost *= f
	s.GhostTunnel *= f
	s.GhostFrightened *= f
	s.Elroy1 *= f
	s.Elroy2 *= f
	return s
}

// Personal dot limits of pink, cyan and orange before they leave the house.
var houseDotLimits = [...][4]int{
	{0, 0, 30, 60},
	{0, 0, 0, 50},
	{0, 0, 0, 0},
}

func houseDotLimit(levelNumber int, id actor.Personality) int {
	return houseDotLimits[min(levelNumber, len(houseDotLimits))-1][id]
}

// Global dot counter values releasing pink, cyan and orange after Pac died.
var globalDotLimits = [4]int{0, 7, 17, 32}

// starvingTicks is how long Pac may go without eating before the next ghost
// is released.
func starvingTicks(levelNumber int) int {
	if levelNumber < 5 {
		return 4 * core.TicksPerSecond
	}
	return 3 * core.TicksPerSecond
}
