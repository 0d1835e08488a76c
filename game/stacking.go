package game

import (
	"github.com/vrabec/ludo/model"
)

// The stacking tracker keeps the display grouping of co-located pawns
// consistent. Mitosis groups pawns of different colors on one cell, each
// color claiming a screen quadrant; karyogamy groups same-color stacks, one
// pawn per color flagged main. Neither affects legality or captures, but
// both are persisted, so arrivals, departures and pruning must stay in step
// with pawn positions.

// pawnDeparts flags the pawn's markers on its current square as removed so
// the client can animate the exit before the entry is pruned. A departing
// karyogamy main hands the flag to the first surviving pawn of its color.
func pawnDeparts(b *model.Board, pawn *model.Pawn) {
	id := pawn.Square

	mitosis := b.Mitosis[id]
	for i := range mitosis {
		m := &mitosis[i]
		if !m.Removed && m.Color == pawn.Color && m.Pawn == pawn.Index {
			m.Removed = true
		}
	}

	karyogamy := b.Karyogamy[id]
	wasMain := false
	for i := range karyogamy {
		m := &karyogamy[i]
		if !m.Removed && m.Color == pawn.Color && m.Pawn == pawn.Index {
			m.Removed = true
			if m.Main {
				m.Main = false
				wasMain = true
			}
		}
	}
	if wasMain {
		for i := range karyogamy {
			m := &karyogamy[i]
			if !m.Removed && m.Color == pawn.Color {
				m.Main = true
				break
			}
		}
	}
}

// pawnArrives records grouping markers for the square the pawn just reached.
// Call it after the pawn's square is updated and after any capture cleared
// the cell.
func pawnArrives(b *model.Board, pawn *model.Pawn) {
	id := pawn.Square
	occupants := b.PawnsAt(id)
	if len(occupants) < 2 {
		return
	}

	colors := map[model.Color]bool{}
	same := make([]*model.Pawn, 0, len(occupants))
	for _, p := range occupants {
		colors[p.Color] = true
		if p.Color == pawn.Color {
			same = append(same, p)
		}
	}

	if len(colors) >= 2 {
		mitosisArrive(b, id, occupants)
	}
	if len(same) >= 2 {
		karyogamyArrive(b, id, pawn.Color, same)
	}
}

// mitosisArrive appends a marker for every occupant not yet recorded. The
// first color to claim a quadrant keeps it while any of its pawns remain on
// the cell; a new color takes the first unclaimed quadrant in preference
// order.
func mitosisArrive(b *model.Board, id model.SquareID, occupants []*model.Pawn) {
	list := b.Mitosis[id]
	for _, p := range occupants {
		if hasLiveMarker(list, p.Color, p.Index) {
			continue
		}
		list = append(list, model.Marker{
			Color:  p.Color,
			Pawn:   p.Index,
			Corner: cornerFor(list, p.Color),
		})
	}
	b.Mitosis[id] = list
}

func cornerFor(list []model.Marker, c model.Color) model.Corner {
	claimed := map[model.Corner]bool{}
	for _, m := range list {
		if m.Removed {
			continue
		}
		if m.Color == c {
			return m.Corner
		}
		claimed[m.Corner] = true
	}
	for _, corner := range model.Corners {
		if !claimed[corner] {
			return corner
		}
	}
	return ""
}

// karyogamyArrive appends a marker for every unrecorded pawn of the stacked
// color and makes sure exactly one live marker of that color is main.
func karyogamyArrive(b *model.Board, id model.SquareID, c model.Color, same []*model.Pawn) {
	list := b.Karyogamy[id]
	for _, p := range same {
		if hasLiveMarker(list, p.Color, p.Index) {
			continue
		}
		list = append(list, model.Marker{Color: p.Color, Pawn: p.Index})
	}
	hasMain := false
	for i := range list {
		m := &list[i]
		if m.Removed || m.Color != c || !m.Main {
			continue
		}
		if hasMain {
			m.Main = false
		}
		hasMain = true
	}
	if !hasMain {
		for i := range list {
			m := &list[i]
			if !m.Removed && m.Color == c {
				m.Main = true
				break
			}
		}
	}
	b.Karyogamy[id] = list
}

func hasLiveMarker(list []model.Marker, c model.Color, pawn int) bool {
	for _, m := range list {
		if !m.Removed && m.Color == c && m.Pawn == pawn {
			return true
		}
	}
	return false
}

// AcknowledgeMove completes the last move once the client finished its
// animation: removed markers are dropped, marker entries that no longer
// describe a shared cell are pruned, the survivors around the move settle
// into their neutral display state and the move descriptor is cleared.
func AcknowledgeMove(g *model.Game, session string) error {
	if g.PlayerBySession(session) == nil {
		return ErrNotInGame
	}
	b := &g.Board
	pruneMarkers(b.Mitosis)
	pruneStacks(b.Karyogamy)

	if mp := b.MovePawn; mp != nil {
		cells := []model.SquareID{mp.From}
		if len(mp.Path) > 0 {
			cells = append(cells, mp.Path[len(mp.Path)-1])
		}
		if mp.Capture != nil {
			cells = append(cells, mp.Capture.To)
		}
		for _, id := range cells {
			settleCell(b.Mitosis, id)
			settleCell(b.Karyogamy, id)
		}
		b.MovePawn = nil
	}
	return nil
}

// pruneMarkers drops removed markers and whole entries that no longer
// describe at least two co-located pawns.
func pruneMarkers(markers map[model.SquareID][]model.Marker) {
	for id, list := range markers {
		live := list[:0]
		for _, m := range list {
			if !m.Removed {
				live = append(live, m)
			}
		}
		if len(live) < 2 {
			delete(markers, id)
			continue
		}
		markers[id] = live
	}
}

// pruneStacks drops removed stack markers and, per color, lone markers whose
// stack no longer has a second pawn behind it. Stacks of different colors
// sharing a cell prune independently.
func pruneStacks(markers map[model.SquareID][]model.Marker) {
	for id, list := range markers {
		count := map[model.Color]int{}
		for _, m := range list {
			if !m.Removed {
				count[m.Color]++
			}
		}
		live := list[:0]
		for _, m := range list {
			if !m.Removed && count[m.Color] >= 2 {
				live = append(live, m)
			}
		}
		if len(live) == 0 {
			delete(markers, id)
			continue
		}
		markers[id] = live
	}
}

func settleCell(markers map[model.SquareID][]model.Marker, id model.SquareID) {
	list := markers[id]
	for i := range list {
		list[i].Settled = true
	}
}
