package model

import (
	"fmt"
)

// Color is one of the four fixed player colors. A game always has exactly
// four color slots, in Colors order; the road segment layout follows the
// same order.
type Color string

const (
	Red    Color = "red"
	Blue   Color = "blue"
	Yellow Color = "yellow"
	Green  Color = "green"
)

// Colors lists the colors in segment order.
var Colors = [4]Color{Red, Blue, Yellow, Green}

func (c Color) Valid() bool {
	return c.Segment() >= 0
}

// Segment returns the index of the color's 13-cell road segment, -1 for an
// unknown color.
func (c Color) Segment() int {
	for i, col := range Colors {
		if col == c {
			return i
		}
	}
	return -1
}

// ActionKind is the kind of move a pawn is eligible to perform. The values
// double as the inbound event names that request them.
type ActionKind string

const (
	ActionMoveFromInitial ActionKind = "move-from-initial"
	ActionMoveOnRoad      ActionKind = "move-on-road"
	ActionMoveToFinal     ActionKind = "move-to-final"
)

// Action is a pending move a pawn may perform this turn.
type Action struct {
	Kind ActionKind `json:"kind"`
	Pawn int        `json:"pawn"`
}

// Square is one board cell. SafeZone, Exit and Entrance are only ever set on
// road cells.
type Square struct {
	ID       SquareID `json:"id"`
	Color    Color    `json:"color"`
	SafeZone bool     `json:"safeZone,omitempty"`
	Exit     bool     `json:"exit,omitempty"`
	Entrance bool     `json:"entrance,omitempty"`
}

// Pawn is one of the four pieces of a color. Index never changes after
// creation. Action is set after a roll on every pawn eligible to move and
// cleared once one of them does.
type Pawn struct {
	Color      Color    `json:"color"`
	Index      int      `json:"index"`
	Square     SquareID `json:"square"`
	EndReached bool     `json:"endReached"`
	Action     *Action  `json:"action,omitempty"`
}

// Player is a roster slot. Color stays empty until chosen.
type Player struct {
	Session string `json:"session"`
	Color   Color  `json:"color,omitempty"`
}

// Dice tracks the roll state of the current turn chain.
type Dice struct {
	RollCount     int  `json:"rollCount"`
	LastResult    int  `json:"lastResult"`
	AbleToRoll    bool `json:"ableToRoll"`
	RollAnimation bool `json:"rollAnimation"`
}

// Corner is a screen quadrant used to place co-located pawns of different
// colors. Corners lists them in claim preference order.
type Corner string

const (
	TopLeft     Corner = "top-left"
	TopRight    Corner = "top-right"
	BottomLeft  Corner = "bottom-left"
	BottomRight Corner = "bottom-right"
)

var Corners = [4]Corner{TopLeft, TopRight, BottomLeft, BottomRight}

// Marker is presentation metadata for one pawn sharing a cell with others.
// Corner is set on mitosis markers, Main on karyogamy markers. Removed
// markers survive until the client acknowledges the move so the departure
// can be animated.
type Marker struct {
	Color   Color  `json:"color"`
	Pawn    int    `json:"pawn"`
	Corner  Corner `json:"corner,omitempty"`
	Main    bool   `json:"main,omitempty"`
	Removed bool   `json:"removed,omitempty"`
	Settled bool   `json:"settled,omitempty"`
}

// Capture identifies a pawn sent back to its initial zone.
type Capture struct {
	Color Color    `json:"color"`
	Pawn  int      `json:"pawn"`
	To    SquareID `json:"to"`
}

// MovePawn describes the last resolved move so clients can animate it.
type MovePawn struct {
	Color   Color      `json:"color"`
	Pawn    int        `json:"pawn"`
	From    SquareID   `json:"from"`
	Path    []SquareID `json:"path"`
	Capture *Capture   `json:"capture,omitempty"`
}

// Board holds every cell, every pawn and the grouping metadata. Mitosis
// groups pawns of different colors sharing a cell, Karyogamy stacks of the
// same color.
type Board struct {
	Road      []Square              `json:"road"`
	Initial   map[Color][]Square    `json:"initialZone"`
	Final     map[Color][]Square    `json:"finalZone"`
	Pawns     map[Color][]Pawn      `json:"pawns"`
	MovePawn  *MovePawn             `json:"movePawn,omitempty"`
	Mitosis   map[SquareID][]Marker `json:"mitosis"`
	Karyogamy map[SquareID][]Marker `json:"karyogamy"`
}

// Game is the whole aggregate one match lives in. It is loaded from the
// store, mutated by exactly one action at a time and saved back.
type Game struct {
	ID      string   `json:"id"`
	Players []Player `json:"players"`
	Current string   `json:"current"`
	Dice    Dice     `json:"dice"`
	Board   Board    `json:"board"`
	Winners []Color  `json:"winners"`
}

// MaxWinners is how many finishing colors are recorded; the fourth color is
// implicitly last and ends the game.
const MaxWinners = 3

func (g *Game) PlayerBySession(session string) *Player {
	for i := range g.Players {
		if g.Players[i].Session == session {
			return &g.Players[i]
		}
	}
	return nil
}

func (g *Game) PlayerByColor(c Color) *Player {
	for i := range g.Players {
		if g.Players[i].Color == c {
			return &g.Players[i]
		}
	}
	return nil
}

// Pawn returns the pawn of the given color at the given index, nil when the
// index is out of range.
func (g *Game) Pawn(c Color, index int) *Pawn {
	pawns := g.Board.Pawns[c]
	if index < 0 || index >= len(pawns) {
		return nil
	}
	return &pawns[index]
}

// PawnsAt collects every pawn currently resting on the square.
func (b *Board) PawnsAt(id SquareID) []*Pawn {
	var out []*Pawn
	for _, c := range Colors {
		pawns := b.Pawns[c]
		for i := range pawns {
			if pawns[i].Square == id {
				out = append(out, &pawns[i])
			}
		}
	}
	return out
}

// RoadSquareAt returns the road cell holding the given id, nil when the id
// is not a road id.
func (b *Board) RoadSquareAt(id SquareID) *Square {
	loc, err := id.Parse()
	if err != nil || loc.Zone != ZoneRoad {
		return nil
	}
	return &b.Road[loc.Index]
}

// Finished reports whether three colors already arrived, which ends the
// game.
func (g *Game) Finished() bool {
	return len(g.Winners) >= MaxWinners
}

// Place returns the 1-based finishing position of a color and whether it
// finished at all.
func (g *Game) Place(c Color) (int, bool) {
	for i, w := range g.Winners {
		if w == c {
			return i + 1, true
		}
	}
	return 0, false
}

// AllColorsChosen reports whether four players hold four distinct colors,
// the precondition for rolling.
func (g *Game) AllColorsChosen() bool {
	if len(g.Players) != 4 {
		return false
	}
	seen := map[Color]bool{}
	for _, p := range g.Players {
		if !p.Color.Valid() || seen[p.Color] {
			return false
		}
		seen[p.Color] = true
	}
	return true
}

// Validate rejects a structurally broken aggregate before any rule acts on
// it. Records come back from the store as whole JSON documents; a partially
// written or hand-edited record must fail here, not deep inside a move.
func (g *Game) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("game without id")
	}
	if len(g.Players) > 4 {
		return fmt.Errorf("game %s: %d players", g.ID, len(g.Players))
	}
	if len(g.Board.Road) != RoadLength {
		return fmt.Errorf("game %s: road has %d cells", g.ID, len(g.Board.Road))
	}
	if len(g.Winners) > MaxWinners {
		return fmt.Errorf("game %s: %d winners", g.ID, len(g.Winners))
	}
	seenWinner := map[Color]bool{}
	for _, w := range g.Winners {
		if !w.Valid() || seenWinner[w] {
			return fmt.Errorf("game %s: bad winners entry %q", g.ID, w)
		}
		seenWinner[w] = true
	}
	seenColor := map[Color]bool{}
	for _, p := range g.Players {
		if p.Session == "" {
			return fmt.Errorf("game %s: player without session", g.ID)
		}
		if p.Color == "" {
			continue
		}
		if !p.Color.Valid() || seenColor[p.Color] {
			return fmt.Errorf("game %s: bad player color %q", g.ID, p.Color)
		}
		seenColor[p.Color] = true
	}
	for _, c := range Colors {
		pawns := g.Board.Pawns[c]
		if len(pawns) != PawnsPerColor {
			return fmt.Errorf("game %s: color %s has %d pawns", g.ID, c, len(pawns))
		}
		for i, p := range pawns {
			if p.Index != i || p.Color != c {
				return fmt.Errorf("game %s: pawn %s-%d mislabeled", g.ID, c, i)
			}
			loc, err := p.Square.Parse()
			if err != nil {
				return fmt.Errorf("game %s: pawn %s-%d: %w", g.ID, c, i, err)
			}
			if loc.Zone != ZoneRoad && loc.Color != c {
				return fmt.Errorf("game %s: pawn %s-%d sits on %s", g.ID, c, i, p.Square)
			}
		}
	}
	return nil
}
