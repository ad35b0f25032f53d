package actor

import (
	"fmt"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

// Personality identifies one of the four ghosts.
type Personality int

const (
	Red Personality = iota
	Pink
	Cyan
	Orange
)

// Personalities lists the ghosts in their arcade order.
var Personalities = [4]Personality{Red, Pink, Cyan, Orange}

var personalityNames = [4]string{"red", "pink", "cyan", "orange"}

var arcadeNames = [4]string{"Blinky", "Pinky", "Inky", "Clyde"}

// MustPersonality converts an id to a personality. Ids outside 0..3 are a
// programmer error.
func MustPersonality(id int) Personality {
	if id < 0 || id > 3 {
		panic(core.Preconditionf("ghost personality %d outside 0..3", id))
	}
	return Personality(id)
}

// String returns the color name used in map properties.
func (p Personality) String() string {
	if p < Red || p > Orange {
		return fmt.Sprintf("Personality(%d)", int(p))
	}
	return personalityNames[p]
}

// ArcadeName returns the arcade nickname.
func (p Personality) ArcadeName() string {
	return arcadeNames[MustPersonality(int(p))]
}

// Color returns the display color.
func (p Personality) Color() core.Color {
	switch p {
	case Red:
		return core.ColorRed
	case Pink:
		return core.ColorPink
	case Cyan:
		return core.ColorCyan
	default:
		return core.ColorOrange
	}
}

// GhostState is the behavior state of a ghost.
type GhostState int

const (
	Locked GhostState = iota
	LeavingHouse
	Hunting
	Frightened
	Eaten
	ReturningHome
)

func (s GhostState) String() string {
	switch s {
	case Locked:
		return "LOCKED"
	case LeavingHouse:
		return "LEAVING_HOUSE"
	case Hunting:
		return "HUNTING"
	case Frightened:
		return "FRIGHTENED"
	case Eaten:
		return "EATEN"
	case ReturningHome:
		return "RETURNING_HOME"
	default:
		return fmt.Sprintf("GhostState(%d)", int(s))
	}
}

// Ghost is one of the four hunters.
type Ghost struct {
	Creature

	ID    Personality
	State GhostState

	// Target is the tile the ghost heads for, for display and tests.
	Target core.Vector2i
	// KilledIndex is the order in which the ghost was eaten during the
	// current power period, -1 if it was not.
	KilledIndex int
	// Entering is set while a returning ghost descends into the house.
	Entering bool
	// RevivalPos is where the ghost waits inside the house.
	RevivalPos core.Vector2f
	// DotCounter counts pellets eaten while this ghost is the next to leave.
	DotCounter int
}

// NewGhost creates a ghost of the given personality.
func NewGhost(id Personality) *Ghost {
	MustPersonality(int(id))
	return &Ghost{
		Creature:    Creature{Name: id.ArcadeName()},
		ID:          id,
		KilledIndex: -1,
	}
}

// Reset places the ghost at its start position for a new round.
func (g *Ghost) Reset(pos, revival core.Vector2f, dir core.Direction, state GhostState) {
	g.PlaceAt(pos, dir)
	g.State = state
	g.KilledIndex = -1
	g.Entering = false
	g.RevivalPos = revival
}

// Is reports whether the ghost is in one of the given states.
func (g *Ghost) Is(states ...GhostState) bool {
	for _, s := range states {
		if g.State == s {
			return true
		}
	}
	return false
}

// InsideHouse reports whether the ghost is still in or at the house.
func (g *Ghost) InsideHouse() bool {
	return g.Is(Locked, LeavingHouse) || (g.State == ReturningHome && g.Entering)
}
