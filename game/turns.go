package game

import (
	"github.com/vrabec/ludo/model"
)

// finishMove closes out a resolved move: detect a freshly finished color,
// then either grant the re-roll a six earns or hand the turn to the next
// eligible player. A color that just finished never keeps the turn, and the
// third roll of a chain ends it regardless of the face.
func finishMove(g *model.Game, mover model.Color) {
	if _, done := g.Place(mover); !done && allEndReached(g, mover) {
		g.Winners = append(g.Winners, mover)
	}
	if g.Finished() {
		return
	}
	if _, done := g.Place(mover); !done &&
		g.Dice.LastResult == 6 && g.Dice.RollCount < RollChainLimit {
		g.Dice.AbleToRoll = true
		return
	}
	PassTurn(g)
}

// PassTurn resets the roll chain and advances the turn pointer.
func PassTurn(g *model.Game) {
	g.Dice.RollCount = 0
	g.Dice.AbleToRoll = true
	advanceTurn(g)
}

// advanceTurn scans forward from the current slot for the next player whose
// color has not finished. The scan is bounded to one lap over the roster so
// a corrupted aggregate can never loop it forever; with at most three
// winners recorded it always finds someone in a healthy game.
func advanceTurn(g *model.Game) {
	n := len(g.Players)
	if n == 0 {
		return
	}
	cur := 0
	for i := range g.Players {
		if g.Players[i].Session == g.Current {
			cur = i
			break
		}
	}
	for step := 1; step <= n; step++ {
		next := &g.Players[(cur+step)%n]
		if _, done := g.Place(next.Color); !done {
			g.Current = next.Session
			return
		}
	}
}

func allEndReached(g *model.Game, c model.Color) bool {
	pawns := g.Board.Pawns[c]
	if len(pawns) == 0 {
		return false
	}
	for i := range pawns {
		if !pawns[i].EndReached {
			return false
		}
	}
	return true
}
