package model

import (
	"testing"
)

func TestNewBoardRoadShape(t *testing.T) {
	b := NewBoard()
	if len(b.Road) != RoadLength {
		t.Fatalf("expected %d road cells, got %d", RoadLength, len(b.Road))
	}
	for seg, c := range Colors {
		var safe, exit, entrance []int
		for offset := 0; offset < SegmentLength; offset++ {
			sq := b.Road[seg*SegmentLength+offset]
			if sq.Color != c {
				t.Fatalf("road cell %d: expected segment color %s, got %s", seg*SegmentLength+offset, c, sq.Color)
			}
			if sq.SafeZone {
				safe = append(safe, offset)
			}
			if sq.Exit {
				exit = append(exit, offset)
			}
			if sq.Entrance {
				entrance = append(entrance, offset)
			}
		}
		if len(safe) != 2 || safe[0] != 3 || safe[1] != 8 {
			t.Fatalf("color %s: safe offsets %v, expected [3 8]", c, safe)
		}
		if len(exit) != 1 || exit[0] != 6 {
			t.Fatalf("color %s: exit offsets %v, expected [6]", c, exit)
		}
		if len(entrance) != 1 || entrance[0] != 8 {
			t.Fatalf("color %s: entrance offsets %v, expected [8]", c, entrance)
		}
	}
}

func TestNewBoardZonesAndPawns(t *testing.T) {
	b := NewBoard()
	for _, c := range Colors {
		if len(b.Initial[c]) != PawnsPerColor {
			t.Fatalf("color %s: %d initial cells", c, len(b.Initial[c]))
		}
		if len(b.Final[c]) != LaneLength {
			t.Fatalf("color %s: %d final cells", c, len(b.Final[c]))
		}
		pawns := b.Pawns[c]
		if len(pawns) != PawnsPerColor {
			t.Fatalf("color %s: %d pawns", c, len(pawns))
		}
		for i, p := range pawns {
			if p.Index != i {
				t.Fatalf("color %s pawn %d: index %d", c, i, p.Index)
			}
			if p.Square != InitialSquareID(c, i) {
				t.Fatalf("color %s pawn %d starts on %s", c, i, p.Square)
			}
			if p.EndReached || p.Action != nil {
				t.Fatalf("color %s pawn %d not pristine", c, i)
			}
		}
	}
}

func TestEntranceAndExitIndexes(t *testing.T) {
	cases := []struct {
		color    Color
		entrance int
		exit     int
	}{
		{Red, 8, 6},
		{Blue, 21, 19},
		{Yellow, 34, 32},
		{Green, 47, 45},
	}
	for _, tc := range cases {
		if got := EntranceIndex(tc.color); got != tc.entrance {
			t.Errorf("%s entrance: got %d, expected %d", tc.color, got, tc.entrance)
		}
		if got := ExitIndex(tc.color); got != tc.exit {
			t.Errorf("%s exit: got %d, expected %d", tc.color, got, tc.exit)
		}
	}
}

func TestNewGame(t *testing.T) {
	g := NewGame("g1", "creator")
	if g.ID != "g1" {
		t.Fatalf("game id %q", g.ID)
	}
	if len(g.Players) != 1 || g.Players[0].Session != "creator" {
		t.Fatalf("unexpected roster %+v", g.Players)
	}
	if g.Current != "creator" {
		t.Fatalf("turn pointer %q", g.Current)
	}
	if g.Dice.AbleToRoll {
		t.Fatal("dice must stay disarmed until four colors are chosen")
	}
	if len(g.Winners) != 0 {
		t.Fatalf("fresh game has winners %v", g.Winners)
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("fresh game invalid: %v", err)
	}
}
