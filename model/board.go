package model

// NewBoard builds the static board layout. The road is 52 cells split into
// four contiguous 13-cell segments in Colors order; inside a segment the
// local offset 3 is a safe zone, 6 the color's exit into its lane and 8 the
// color's entrance onto the ring (entrances are safe as well). Pawns start
// on their color's initial cell matching their own index.
func NewBoard() Board {
	b := Board{
		Road:      make([]Square, 0, RoadLength),
		Initial:   make(map[Color][]Square, len(Colors)),
		Final:     make(map[Color][]Square, len(Colors)),
		Pawns:     make(map[Color][]Pawn, len(Colors)),
		Mitosis:   make(map[SquareID][]Marker),
		Karyogamy: make(map[SquareID][]Marker),
	}

	for _, c := range Colors {
		for offset := 0; offset < SegmentLength; offset++ {
			index := c.Segment()*SegmentLength + offset
			b.Road = append(b.Road, Square{
				ID:       RoadSquareID(index),
				Color:    c,
				SafeZone: offset == safeOffset || offset == entranceOffset,
				Exit:     offset == exitOffset,
				Entrance: offset == entranceOffset,
			})
		}

		initial := make([]Square, 0, PawnsPerColor)
		for i := 0; i < PawnsPerColor; i++ {
			initial = append(initial, Square{ID: InitialSquareID(c, i), Color: c})
		}
		b.Initial[c] = initial

		final := make([]Square, 0, LaneLength)
		for i := 0; i < LaneLength; i++ {
			final = append(final, Square{ID: FinalSquareID(c, i), Color: c})
		}
		b.Final[c] = final

		pawns := make([]Pawn, 0, PawnsPerColor)
		for i := 0; i < PawnsPerColor; i++ {
			pawns = append(pawns, Pawn{
				Color:  c,
				Index:  i,
				Square: InitialSquareID(c, i),
			})
		}
		b.Pawns[c] = pawns
	}

	return b
}

// NewGame creates a fresh aggregate for the creating session. The creator
// holds the turn pointer until more players arrive; rolling stays disabled
// until four distinct colors are chosen.
func NewGame(id, session string) *Game {
	return &Game{
		ID:      id,
		Players: []Player{{Session: session}},
		Current: session,
		Board:   NewBoard(),
		Winners: make([]Color, 0, MaxWinners),
	}
}
