package game

import (
	"github.com/vrabec/ludo/model"
)

// CheckAction authorizes any game action for the session: the game must not
// have ended and the player's color must not already sit in a winners slot.
// Validation never mutates; all checks run before any state change.
func CheckAction(g *model.Game, session string) (*model.Player, error) {
	player := g.PlayerBySession(session)
	if player == nil {
		return nil, ErrNotInGame
	}
	if g.Finished() {
		return nil, ErrGameFinished
	}
	if place, done := g.Place(player.Color); done {
		return nil, AlreadyFinished(place)
	}
	return player, nil
}

// CheckTurn additionally requires the session to hold the turn pointer and
// the roster to be whole: four players holding four distinct colors. A seat
// vacated mid-game and refilled by a colorless session keeps play suspended
// until the newcomer claims the freed color.
func CheckTurn(g *model.Game, session string) (*model.Player, error) {
	player, err := CheckAction(g, session)
	if err != nil {
		return nil, err
	}
	if g.Current != session {
		return nil, ErrNotYourTurn
	}
	if !g.AllColorsChosen() {
		return nil, ErrNotEnoughPlayers
	}
	return player, nil
}

// CheckRoll gates roll-dice on the dice being armed.
func CheckRoll(g *model.Game, session string) (*model.Player, error) {
	player, err := CheckTurn(g, session)
	if err != nil {
		return nil, err
	}
	if !g.Dice.AbleToRoll {
		return nil, ErrDiceNotRollable
	}
	return player, nil
}

// CheckMove resolves the pawn a move event addresses and verifies it carries
// a pending action of the requested kind plus the kind's dice constraint:
// entry needs a 1 or a 6, a lane move must not run past the home cell.
func CheckMove(g *model.Game, session string, kind model.ActionKind, index int) (*model.Pawn, error) {
	player, err := CheckTurn(g, session)
	if err != nil {
		return nil, err
	}
	pawn := g.Pawn(player.Color, index)
	if pawn == nil {
		return nil, ErrInvalidPawnIndex
	}
	if pawn.Action == nil || pawn.Action.Kind != kind {
		return nil, ErrPawnNotMovable
	}
	switch kind {
	case model.ActionMoveFromInitial:
		if g.Dice.LastResult != 1 && g.Dice.LastResult != 6 {
			return nil, ErrIneligibleRoll
		}
	case model.ActionMoveToFinal:
		loc, err := pawn.Square.Parse()
		if err != nil {
			return nil, ErrPawnNotMovable
		}
		if loc.Index+g.Dice.LastResult > model.HomeIndex {
			return nil, ErrOvershoot
		}
	}
	return pawn, nil
}
