package game

import "time"

// DateLayout is the layout of score record dates.
const DateLayout = "2006-01-02"

// Score is a score record.
type Score struct {
	Points int
	Level  int
	Date   time.Time
}

// HighScoreStore persists the high score of each variant.
type HighScoreStore interface {
	LoadHighScore(variant string) (Score, error)
	SaveHighScore(variant string, s Score) error
}

// Points awarded by the game.
const (
	PelletPoints    = 10
	EnergizerPoints = 50
	// GhostPoints is the value of the first ghost eaten during one power
	// period. Each following ghost doubles it.
	GhostPoints = 200
)

// Ticks Pac rests after eating.
const (
	PelletRestTicks    = 1
	EnergizerRestTicks = 3
)

// GhostValue returns the points for the ghost eaten with the given index
// (0-based) during one power period.
func GhostValue(killedIndex int) int {
	return GhostPoints << killedIndex
}
