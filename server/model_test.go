package server

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/vrabec/ludo/game"
	"github.com/vrabec/ludo/model"
	"github.com/vrabec/ludo/store"
)

// fakeSession registers a session that dispatches without a websocket; the
// outbound channel stands in for the write loop.
func fakeSession(s *GameServer, id string) *PlayerSession {
	ps := &PlayerSession{
		ID:             id,
		Server:         s,
		MessagesToSend: make(chan model.ServerMessage, 16),
		done:           make(chan struct{}),
	}
	s.addSession(ps)
	return ps
}

func newTestServer() *GameServer {
	return NewGameServer(store.NewMemory(time.Minute))
}

func recv(t *testing.T, ps *PlayerSession) model.ServerMessage {
	t.Helper()
	select {
	case mes := <-ps.MessagesToSend:
		return mes
	default:
		t.Fatalf("session %s: no message queued", ps.ID)
		return model.ServerMessage{}
	}
}

func recvGame(t *testing.T, ps *PlayerSession) *model.Game {
	t.Helper()
	mes := recv(t, ps)
	if mes.Event != model.EventGameUpdated {
		t.Fatalf("session %s: got %q, expected %q", ps.ID, mes.Event, model.EventGameUpdated)
	}
	g, ok := mes.Data.(*model.Game)
	if !ok {
		t.Fatalf("session %s: payload is %T", ps.ID, mes.Data)
	}
	return g
}

func recvError(t *testing.T, ps *PlayerSession) string {
	t.Helper()
	mes := recv(t, ps)
	if mes.Event != model.EventError {
		t.Fatalf("session %s: got %q, expected %q", ps.ID, mes.Event, model.EventError)
	}
	payload, ok := mes.Data.(model.ErrorPayload)
	if !ok {
		t.Fatalf("session %s: payload is %T", ps.ID, mes.Data)
	}
	return payload.Error
}

func dispatch(s *GameServer, ps *PlayerSession, event string, data any) {
	cm := model.ClientMessage{Event: event}
	if data != nil {
		raw, _ := json.Marshal(data)
		cm.Data = raw
	}
	s.Dispatch(ps, cm)
}

func TestCreateGamePersistsAndBroadcasts(t *testing.T) {
	s := newTestServer()
	ps := fakeSession(s, "p0")

	dispatch(s, ps, model.EventCreateGame, nil)

	g := recvGame(t, ps)
	if len(g.Players) != 1 || g.Players[0].Session != "p0" {
		t.Fatalf("roster %+v", g.Players)
	}
	if g.Current != "p0" {
		t.Fatalf("creator does not hold the turn: %q", g.Current)
	}

	ctx, cancel := actionContext()
	defer cancel()
	gameID, err := s.Store.SessionGame(ctx, "p0")
	if err != nil || gameID != g.ID {
		t.Fatalf("binding %q, %v", gameID, err)
	}
	if _, err := s.Store.LoadGame(ctx, g.ID); err != nil {
		t.Fatalf("stored game: %v", err)
	}
}

func TestJoinGameBroadcastsToRoster(t *testing.T) {
	s := newTestServer()
	p0 := fakeSession(s, "p0")
	p1 := fakeSession(s, "p1")

	dispatch(s, p0, model.EventCreateGame, nil)
	gameID := recvGame(t, p0).ID

	dispatch(s, p1, model.EventJoinGame, model.JoinGamePayload{Game: gameID})

	for _, ps := range []*PlayerSession{p0, p1} {
		g := recvGame(t, ps)
		if len(g.Players) != 2 {
			t.Fatalf("session %s saw roster of %d", ps.ID, len(g.Players))
		}
	}
}

func TestJoinUnknownGame(t *testing.T) {
	s := newTestServer()
	ps := fakeSession(s, "p0")

	dispatch(s, ps, model.EventJoinGame, model.JoinGamePayload{Game: "nope"})
	if got := recvError(t, ps); got != string(game.ErrInvalidGame) {
		t.Fatalf("got %q", got)
	}

	dispatch(s, ps, model.EventJoinGame, struct{}{})
	if got := recvError(t, ps); got != string(game.ErrInvalidGame) {
		t.Fatalf("empty id: got %q", got)
	}
}

func TestRejectionsAnswerRequesterOnly(t *testing.T) {
	s := newTestServer()
	p0 := fakeSession(s, "p0")
	p1 := fakeSession(s, "p1")

	dispatch(s, p0, model.EventCreateGame, nil)
	gameID := recvGame(t, p0).ID
	dispatch(s, p1, model.EventJoinGame, model.JoinGamePayload{Game: gameID})
	recvGame(t, p0)
	recvGame(t, p1)

	// Two players is not a complete roster; rolling is rejected and the
	// stored aggregate stays untouched.
	dispatch(s, p0, model.EventRollDice, nil)
	if got := recvError(t, p0); got != string(game.ErrNotEnoughPlayers) {
		t.Fatalf("got %q", got)
	}
	select {
	case mes := <-p1.MessagesToSend:
		t.Fatalf("rejection leaked to p1 as %q", mes.Event)
	default:
	}

	ctx, cancel := actionContext()
	defer cancel()
	g, err := s.Store.LoadGame(ctx, gameID)
	if err != nil {
		t.Fatal(err)
	}
	if g.Dice.RollCount != 0 || g.Dice.LastResult != 0 {
		t.Fatalf("rejected roll mutated the aggregate: %+v", g.Dice)
	}
}

func TestDispatchWithoutBinding(t *testing.T) {
	s := newTestServer()
	ps := fakeSession(s, "p0")

	dispatch(s, ps, model.EventRollDice, nil)
	if got := recvError(t, ps); got != string(game.ErrNotInGame) {
		t.Fatalf("got %q", got)
	}
}

func TestDispatchUnknownEvent(t *testing.T) {
	s := newTestServer()
	ps := fakeSession(s, "p0")

	dispatch(s, ps, "dance", nil)
	if got := recvError(t, ps); got != string(game.ErrUnknownEvent) {
		t.Fatalf("got %q", got)
	}
}

func TestChooseColorsArmsDice(t *testing.T) {
	s := newTestServer()
	roster := []*PlayerSession{
		fakeSession(s, "p0"), fakeSession(s, "p1"),
		fakeSession(s, "p2"), fakeSession(s, "p3"),
	}

	dispatch(s, roster[0], model.EventCreateGame, nil)
	gameID := recvGame(t, roster[0]).ID
	for _, ps := range roster[1:] {
		dispatch(s, ps, model.EventJoinGame, model.JoinGamePayload{Game: gameID})
	}
	for _, ps := range roster {
		drain(ps)
	}

	// Auto-assignment: an empty payload takes the first free color.
	for _, ps := range roster {
		dispatch(s, ps, model.EventChooseColor, nil)
	}
	last := lastGame(t, roster[0])
	if !last.Dice.AbleToRoll {
		t.Fatalf("dice not armed after full color selection: %+v", last.Dice)
	}
	for i, p := range last.Players {
		if p.Color != model.Colors[i] {
			t.Fatalf("slot %d holds %s", i, p.Color)
		}
	}
}

func drain(ps *PlayerSession) {
	for {
		select {
		case <-ps.MessagesToSend:
		default:
			return
		}
	}
}

// lastGame drains the session's queue and returns the newest broadcast state.
func lastGame(t *testing.T, ps *PlayerSession) *model.Game {
	t.Helper()
	var last *model.Game
	for {
		select {
		case mes := <-ps.MessagesToSend:
			if g, ok := mes.Data.(*model.Game); ok && mes.Event == model.EventGameUpdated {
				last = g
			}
		default:
			if last == nil {
				t.Fatalf("session %s: no game broadcast queued", ps.ID)
			}
			return last
		}
	}
}
