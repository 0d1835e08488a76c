package model

import (
	"fmt"
	"strconv"
	"strings"
)

// SquareID is the only addressing mechanism for board cells. The three
// shapes are initial-<color>-<0..3>, road-<0..51> and final-<color>-<0..5>.
// Always build one through the constructors and read one through Parse so a
// malformed id can never spread through the aggregate.
type SquareID string

// Zone is the board region an id addresses.
type Zone int

const (
	ZoneInitial Zone = iota
	ZoneRoad
	ZoneFinal
)

func (z Zone) String() string {
	switch z {
	case ZoneInitial:
		return "initial"
	case ZoneRoad:
		return "road"
	case ZoneFinal:
		return "final"
	}
	return fmt.Sprintf("zone(%d)", int(z))
}

// Location is a decoded SquareID. Color is only meaningful for the initial
// and final zones.
type Location struct {
	Zone  Zone
	Color Color
	Index int
}

const (
	// RoadLength is the size of the shared ring.
	RoadLength = 52
	// SegmentLength is the slice of the ring owned by one color.
	SegmentLength = RoadLength / 4
	// PawnsPerColor is also the size of each initial zone.
	PawnsPerColor = 4
	// LaneLength is the size of each private final lane.
	LaneLength = 6
	// HomeIndex is the lane cell a pawn must rest on to count as arrived.
	HomeIndex = LaneLength - 1
)

// Local offsets inside a color's road segment.
const (
	safeOffset     = 3
	exitOffset     = 6
	entranceOffset = 8
)

// EntranceIndex is the ring index where the color's pawns join the road.
func EntranceIndex(c Color) int {
	return c.Segment()*SegmentLength + entranceOffset
}

// ExitIndex is the ring index where the color's pawns leave the road for
// their lane.
func ExitIndex(c Color) int {
	return c.Segment()*SegmentLength + exitOffset
}

func InitialSquareID(c Color, index int) SquareID {
	return SquareID(fmt.Sprintf("initial-%s-%d", c, index))
}

func RoadSquareID(index int) SquareID {
	return SquareID(fmt.Sprintf("road-%d", index))
}

func FinalSquareID(c Color, index int) SquareID {
	return SquareID(fmt.Sprintf("final-%s-%d", c, index))
}

// Parse decodes the id and checks every part against the board bounds.
func (id SquareID) Parse() (Location, error) {
	parts := strings.Split(string(id), "-")
	switch {
	case len(parts) == 2 && parts[0] == "road":
		index, err := strconv.Atoi(parts[1])
		if err != nil || index < 0 || index >= RoadLength {
			return Location{}, fmt.Errorf("square id %q: bad road index", id)
		}
		return Location{Zone: ZoneRoad, Index: index}, nil
	case len(parts) == 3 && (parts[0] == "initial" || parts[0] == "final"):
		color := Color(parts[1])
		if !color.Valid() {
			return Location{}, fmt.Errorf("square id %q: bad color", id)
		}
		index, err := strconv.Atoi(parts[2])
		if err != nil || index < 0 {
			return Location{}, fmt.Errorf("square id %q: bad index", id)
		}
		if parts[0] == "initial" {
			if index >= PawnsPerColor {
				return Location{}, fmt.Errorf("square id %q: bad index", id)
			}
			return Location{Zone: ZoneInitial, Color: color, Index: index}, nil
		}
		if index >= LaneLength {
			return Location{}, fmt.Errorf("square id %q: bad index", id)
		}
		return Location{Zone: ZoneFinal, Color: color, Index: index}, nil
	}
	return Location{}, fmt.Errorf("square id %q: unknown shape", id)
}
