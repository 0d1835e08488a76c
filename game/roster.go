package game

import (
	"github.com/vrabec/ludo/model"
)

// Join adds the session to the roster. Joining a game one is already in is
// a no-op so a reconnecting client can replay the event safely.
func Join(g *model.Game, session string) error {
	if g.Finished() {
		return ErrGameFinished
	}
	if g.PlayerBySession(session) != nil {
		return nil
	}
	if len(g.Players) >= 4 {
		return ErrGameFull
	}
	g.Players = append(g.Players, model.Player{Session: session})
	return nil
}

// ChooseColor assigns the requested color, or the first free one when the
// request names none. Players may re-choose freely before the first roll;
// once play has started a held color is fixed, so a color freed by a leaver
// can only be claimed by a colorless seat. Rejections: invalid-color,
// color-taken, color-fixed.
func ChooseColor(g *model.Game, session, want string) error {
	player := g.PlayerBySession(session)
	if player == nil {
		return ErrNotInGame
	}
	if g.Finished() {
		return ErrGameFinished
	}
	if player.Color.Valid() && g.Dice.LastResult != 0 {
		return ErrColorFixed
	}
	if want != "" {
		c := model.Color(want)
		if !c.Valid() {
			return ErrInvalidColor
		}
		if other := g.PlayerByColor(c); other != nil && other.Session != session {
			return ErrColorTaken
		}
		player.Color = c
	} else {
		assigned := false
		for _, c := range model.Colors {
			if g.PlayerByColor(c) == nil {
				player.Color = c
				assigned = true
				break
			}
		}
		if !assigned {
			return ErrColorTaken
		}
	}
	if g.AllColorsChosen() {
		g.Dice.AbleToRoll = true
	}
	return nil
}

// Leave removes the session from the roster. Pawns of the leaving color stay
// on the board; an in-flight turn is not cancelled, but a leaver holding the
// turn pointer hands it on so the game cannot stall. The caller tears the
// game down when the roster empties.
func Leave(g *model.Game, session string) (empty bool) {
	idx := -1
	for i := range g.Players {
		if g.Players[i].Session == session {
			idx = i
			break
		}
	}
	if idx == -1 {
		return len(g.Players) == 0
	}
	g.Players = append(g.Players[:idx], g.Players[idx+1:]...)
	if g.Current == session && len(g.Players) > 0 {
		// The leaver held the turn; advanceTurn falls back to slot 0 when
		// the current session is gone and picks the next eligible player.
		advanceTurn(g)
	}
	return len(g.Players) == 0
}
