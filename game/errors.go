// Package game implements the Ludo rules over the model.Game aggregate:
// dice lifecycle, move legality, move resolution, captures, the stacking
// bookkeeping used for display grouping, and turn/win succession. Every
// function mutates the aggregate it is given and keeps no state of its own;
// callers serialize access per game.
package game

import "fmt"

// Rejection is a validation failure. It never mutates the game and is
// reported only to the requester.
type Rejection string

func (r Rejection) Error() string { return string(r) }

const (
	ErrNotInGame        Rejection = "not-in-game"
	ErrInvalidGame      Rejection = "invalid-game"
	ErrGameFinished     Rejection = "game-finished"
	ErrGameFull         Rejection = "game-full"
	ErrInvalidColor     Rejection = "invalid-color"
	ErrColorTaken       Rejection = "color-taken"
	ErrColorFixed       Rejection = "color-fixed"
	ErrNotYourTurn      Rejection = "not-your-turn"
	ErrNotEnoughPlayers Rejection = "not-enough-players"
	ErrDiceNotRollable  Rejection = "dice-not-rollable"
	ErrInvalidPawnIndex Rejection = "invalid-pawn-index"
	ErrPawnNotMovable   Rejection = "pawn-not-movable"
	ErrIneligibleRoll   Rejection = "ineligible-roll"
	ErrOvershoot        Rejection = "overshoot"
	ErrUnknownEvent     Rejection = "unknown-event"
)

// AlreadyFinished rejects a player whose color already holds the given
// 1-based winners slot.
func AlreadyFinished(place int) Rejection {
	return Rejection(fmt.Sprintf("already-finished-%d", place))
}
