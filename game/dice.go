package game

import (
	"math/rand"

	"github.com/vrabec/ludo/model"
)

// RollChainLimit caps consecutive extra rolls earned by sixes. The third
// roll of a chain always ends the turn once its move resolves, whatever the
// face.
const RollChainLimit = 3

// RollDice draws a uniform 1..6 and applies it. The global rand source is
// used so concurrent games can roll without sharing a lock.
func RollDice(g *model.Game) int {
	result := rand.Intn(6) + 1
	ApplyRoll(g, result)
	return result
}

// ApplyRoll records the rolled face, arms the roll animation and marks every
// pawn of the roller's color that may legally move with a pending action.
// When no pawn can move the turn passes immediately, no move required.
func ApplyRoll(g *model.Game, result int) {
	g.Dice.LastResult = result
	g.Dice.RollCount++
	g.Dice.AbleToRoll = false
	g.Dice.RollAnimation = true

	player := g.PlayerBySession(g.Current)
	if player == nil {
		return
	}
	if assignActions(g, player.Color, result) == 0 {
		g.Dice.RollAnimation = false
		PassTurn(g)
	}
}

// ConfirmRoll clears the dice animation once the roller's client has shown
// the result.
func ConfirmRoll(g *model.Game, session string) error {
	if _, err := CheckTurn(g, session); err != nil {
		return err
	}
	g.Dice.RollAnimation = false
	return nil
}

// assignActions recomputes the pending action of every pawn of the color for
// the rolled face and reports how many pawns may move. A pawn still in the
// initial zone needs a 1 or a 6 to enter; a pawn on the ring always has a
// move; a pawn in its lane moves only when the face does not overshoot the
// home cell.
func assignActions(g *model.Game, c model.Color, result int) int {
	movable := 0
	pawns := g.Board.Pawns[c]
	for i := range pawns {
		pawn := &pawns[i]
		pawn.Action = nil
		if pawn.EndReached {
			continue
		}
		loc, err := pawn.Square.Parse()
		if err != nil {
			continue
		}
		var kind model.ActionKind
		switch loc.Zone {
		case model.ZoneInitial:
			if result != 1 && result != 6 {
				continue
			}
			kind = model.ActionMoveFromInitial
		case model.ZoneRoad:
			kind = model.ActionMoveOnRoad
		case model.ZoneFinal:
			if loc.Index+result > model.HomeIndex {
				continue
			}
			kind = model.ActionMoveToFinal
		}
		pawn.Action = &model.Action{Kind: kind, Pawn: pawn.Index}
		movable++
	}
	return movable
}
