// Package event defines the simulation events and a synchronous bus that
// delivers them to external collaborators such as the renderer or the HUD.
package event

import (
	"fmt"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

// Kind identifies an event type.
type Kind uint8

const (
	KindUnspecifiedChange Kind = iota
	KindBonusActivated
	KindBonusEaten
	KindBonusExpired
	KindCreditAdded
	KindExtraLifeWon
	KindGhostEaten
	KindGhostEntersHouse
	KindGhostStartsReturningHome
	KindHuntingPhaseStarted
	KindLevelCreated
	KindLevelStarted
	KindPacDying
	KindPacFoundFood
	KindPacGetsPower
	KindPacLosesPower
	KindIntermissionStarted
	KindGameStateChanged
	KindStopAllSounds
)

var kindNames = [...]string{
	KindUnspecifiedChange:        "UNSPECIFIED_CHANGE",
	KindBonusActivated:           "BONUS_ACTIVATED",
	KindBonusEaten:               "BONUS_EATEN",
	KindBonusExpired:             "BONUS_EXPIRED",
	KindCreditAdded:              "CREDIT_ADDED",
	KindExtraLifeWon:             "EXTRA_LIFE_WON",
	KindGhostEaten:               "GHOST_EATEN",
	KindGhostEntersHouse:         "GHOST_ENTERS_HOUSE",
	KindGhostStartsReturningHome: "GHOST_STARTS_RETURNING_HOME",
	KindHuntingPhaseStarted:      "HUNTING_PHASE_STARTED",
	KindLevelCreated:             "LEVEL_CREATED",
	KindLevelStarted:             "LEVEL_STARTED",
	KindPacDying:                 "PAC_DYING",
	KindPacFoundFood:             "PAC_FOUND_FOOD",
	KindPacGetsPower:             "PAC_GETS_POWER",
	KindPacLosesPower:            "PAC_LOSES_POWER",
	KindIntermissionStarted:      "INTERMISSION_STARTED",
	KindGameStateChanged:         "GAME_STATE_CHANGED",
	KindStopAllSounds:            "STOP_ALL_SOUNDS",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind returns the kind with the given name, as printed by String.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Event is implemented by every event record. Records are plain values and
// must not be modified by receivers.
type Event interface {
	Kind() Kind
}

type BonusActivated struct {
	Symbol int
	Points int
	Pos    core.Vector2f
}

type BonusEaten struct {
	Symbol int
	Points int
}

type BonusExpired struct {
	Symbol int
}

type CreditAdded struct {
	Credits int
}

type ExtraLifeWon struct {
	Lives int
}

// GhostEaten is published when Pac eats a frightened ghost. Index counts
// the ghosts eaten during the current power period, starting at 0.
type GhostEaten struct {
	Ghost  int
	Index  int
	Points int
}

type GhostEntersHouse struct {
	Ghost int
}

type GhostStartsReturningHome struct {
	Ghost int
}

// HuntingPhaseStarted is published whenever a hunting phase begins.
type HuntingPhaseStarted struct {
	Phase   int
	Scatter bool
}

type LevelCreated struct {
	Level int
	Demo  bool
}

type LevelStarted struct {
	Level int
}

type PacDying struct {
	Tile core.Vector2i
}

type PacFoundFood struct {
	Tile      core.Vector2i
	Energizer bool
}

type PacGetsPower struct {
	Ticks int64
}

type PacLosesPower struct{}

type IntermissionStarted struct {
	Number int
}

// GameStateChanged carries the states of a completed transition. Old is nil
// for the very first state.
type GameStateChanged struct {
	Old fmt.Stringer
	New fmt.Stringer
}

type StopAllSounds struct{}

type UnspecifiedChange struct{}

func (BonusActivated) Kind() Kind           { return KindBonusActivated }
func (BonusEaten) Kind() Kind               { return KindBonusEaten }
func (BonusExpired) Kind() Kind             { return KindBonusExpired }
func (CreditAdded) Kind() Kind              { return KindCreditAdded }
func (ExtraLifeWon) Kind() Kind             { return KindExtraLifeWon }
func (GhostEaten) Kind() Kind               { return KindGhostEaten }
func (GhostEntersHouse) Kind() Kind         { return KindGhostEntersHouse }
func (GhostStartsReturningHome) Kind() Kind { return KindGhostStartsReturningHome }
func (HuntingPhaseStarted) Kind() Kind      { return KindHuntingPhaseStarted }
func (LevelCreated) Kind() Kind             { return KindLevelCreated }
func (LevelStarted) Kind() Kind             { return KindLevelStarted }
func (PacDying) Kind() Kind                 { return KindPacDying }
func (PacFoundFood) Kind() Kind             { return KindPacFoundFood }
func (PacGetsPower) Kind() Kind             { return KindPacGetsPower }
func (PacLosesPower) Kind() Kind            { return KindPacLosesPower }
func (IntermissionStarted) Kind() Kind      { return KindIntermissionStarted }
func (GameStateChanged) Kind() Kind         { return KindGameStateChanged }
func (StopAllSounds) Kind() Kind            { return KindStopAllSounds }
func (UnspecifiedChange) Kind() Kind        { return KindUnspecifiedChange }
