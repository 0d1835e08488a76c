package game

import (
	"github.com/vrabec/ludo/model"
)

// Final-lane counter states used while walking a road move. The counter
// stays disabled until the path crosses the mover's own exit cell; from then
// on every step lands in the private lane, lane index = counter value.
const (
	laneDisabled = -2
	laneEntering = -1
)

// MoveFromInitial relocates an entry-eligible pawn from its initial cell to
// its color's ring entrance.
func MoveFromInitial(g *model.Game, pawn *model.Pawn) {
	clearActions(g, pawn.Color)
	from := pawn.Square
	path := []model.SquareID{model.RoadSquareID(model.EntranceIndex(pawn.Color))}
	applyMove(g, pawn, from, path)
}

// MoveOnRoad walks the pawn forward by the last dice result along the ring,
// turning into its lane once its own exit cell is crossed.
func MoveOnRoad(g *model.Game, pawn *model.Pawn) {
	clearActions(g, pawn.Color)
	from := pawn.Square
	path := roadPath(pawn, g.Dice.LastResult)
	applyMove(g, pawn, from, path)
}

// MoveToFinal advances a pawn already inside its lane. The gate has already
// rejected overshoots.
func MoveToFinal(g *model.Game, pawn *model.Pawn) {
	clearActions(g, pawn.Color)
	from := pawn.Square
	loc, err := pawn.Square.Parse()
	if err != nil {
		return
	}
	path := make([]model.SquareID, 0, g.Dice.LastResult)
	for step := 1; step <= g.Dice.LastResult; step++ {
		path = append(path, model.FinalSquareID(pawn.Color, loc.Index+step))
	}
	applyMove(g, pawn, from, path)
}

// roadPath lists the squares a road move traverses, one per dice step. The
// ring wraps at RoadLength; once the walk reaches the mover's own exit cell
// the remaining steps continue into the lane and never re-enter the ring.
func roadPath(pawn *model.Pawn, steps int) []model.SquareID {
	loc, err := pawn.Square.Parse()
	if err != nil {
		return nil
	}
	pos := loc.Index
	exit := model.ExitIndex(pawn.Color)
	counter := laneDisabled
	path := make([]model.SquareID, 0, steps)
	for step := 0; step < steps; step++ {
		if counter == laneDisabled && pos == exit {
			counter = laneEntering
		}
		if counter > laneDisabled {
			counter++
			path = append(path, model.FinalSquareID(pawn.Color, counter))
		} else {
			pos = (pos + 1) % model.RoadLength
			path = append(path, model.RoadSquareID(pos))
		}
	}
	return path
}

// applyMove is the shared tail of the three move kinds: update the stacking
// metadata around the relocation, apply a capture when the destination
// qualifies, record the last-move descriptor and hand the turn on.
func applyMove(g *model.Game, pawn *model.Pawn, from model.SquareID, path []model.SquareID) {
	if len(path) == 0 {
		return
	}
	dest := path[len(path)-1]

	pawnDeparts(&g.Board, pawn)
	pawn.Square = dest
	if loc, err := dest.Parse(); err == nil && loc.Zone == model.ZoneFinal && loc.Index == model.HomeIndex {
		pawn.EndReached = true
	}

	move := &model.MovePawn{
		Color: pawn.Color,
		Pawn:  pawn.Index,
		From:  from,
		Path:  path,
	}
	if victim := captureVictim(&g.Board, pawn, dest); victim != nil {
		pawnDeparts(&g.Board, victim)
		home := model.InitialSquareID(victim.Color, victim.Index)
		victim.Square = home
		victim.Action = nil
		move.Capture = &model.Capture{Color: victim.Color, Pawn: victim.Index, To: home}
	}
	pawnArrives(&g.Board, pawn)

	g.Board.MovePawn = move
	finishMove(g, pawn.Color)
}

// captureVictim applies the collision rule: the destination must be a
// non-safe ring cell holding exactly two pawns after the move, the mover and
// one pawn of another color. That pawn is the capture victim.
func captureVictim(b *model.Board, mover *model.Pawn, dest model.SquareID) *model.Pawn {
	square := b.RoadSquareAt(dest)
	if square == nil || square.SafeZone {
		return nil
	}
	occupants := b.PawnsAt(dest)
	if len(occupants) != 2 {
		return nil
	}
	for _, p := range occupants {
		if p.Color != mover.Color {
			return p
		}
	}
	return nil
}

// clearActions drops every pending action of the color; only one pawn may
// act on a given roll.
func clearActions(g *model.Game, c model.Color) {
	pawns := g.Board.Pawns[c]
	for i := range pawns {
		pawns[i].Action = nil
	}
}
