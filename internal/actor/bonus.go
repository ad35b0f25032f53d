package actor

import (
	"fmt"

	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/timer"
)

// BonusState is the lifecycle of a bonus symbol.
type BonusState int

const (
	BonusInactive BonusState = iota
	BonusEdible
	BonusEaten
)

func (s BonusState) String() string {
	switch s {
	case BonusInactive:
		return "INACTIVE"
	case BonusEdible:
		return "EDIBLE"
	case BonusEaten:
		return "EATEN"
	default:
		return fmt.Sprintf("BonusState(%d)", int(s))
	}
}

// Bonus symbols in arcade order.
const (
	Cherries = iota
	Strawberry
	Peach
	Apple
	Grapes
	Galaxian
	Bell
	Key
)

var symbolNames = [...]string{"cherries", "strawberry", "peach", "apple", "grapes", "galaxian", "bell", "key"}

// SymbolName returns a printable name of a bonus symbol.
func SymbolName(symbol int) string {
	if symbol < 0 || symbol >= len(symbolNames) {
		return fmt.Sprintf("symbol(%d)", symbol)
	}
	return symbolNames[symbol]
}

// Bonus is the fruit that appears below the house.
type Bonus struct {
	Symbol int
	Points int
	State  BonusState
	Pos    core.Vector2f
	Timer  *timer.TickTimer
}

// NewBonus returns an inactive bonus.
func NewBonus() *Bonus {
	return &Bonus{Timer: timer.New("bonus")}
}

// SetEdible shows the bonus for the given number of ticks.
func (b *Bonus) SetEdible(symbol, points int, pos core.Vector2f, ticks int64) {
	b.Symbol, b.Points, b.Pos = symbol, points, pos
	b.State = BonusEdible
	b.Timer.ResetTicks(ticks)
	b.Timer.Start()
}

// SetEaten switches to the score display for the given number of ticks.
func (b *Bonus) SetEaten(ticks int64) {
	b.State = BonusEaten
	b.Timer.ResetTicks(ticks)
	b.Timer.Start()
}

// SetInactive hides the bonus.
func (b *Bonus) SetInactive() {
	b.State = BonusInactive
	b.Timer.ResetIndefinite()
}

// Tile returns the tile of the bonus.
func (b *Bonus) Tile() core.Vector2i {
	return b.Pos.Tile()
}
