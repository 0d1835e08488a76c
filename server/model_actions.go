package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/vrabec/ludo/game"
	"github.com/vrabec/ludo/model"
	"github.com/vrabec/ludo/store"
)

const actionTimeout = 5 * time.Second

func NewGameServer(st store.Store) *GameServer {
	return &GameServer{
		Upgrader: &websocket.Upgrader{},
		Store:    st,
		sessions: make(map[string]*PlayerSession),
	}
}

// HandleHttpCall upgrades the connection, registers a fresh session and
// pumps it until the client goes away.
func (s *GameServer) HandleHttpCall() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("HandleHttpCall websocket upgrade err %v", err)
			return
		}
		defer con.Close()

		ps := &PlayerSession{
			ID:             uuid.NewString(),
			Conn:           con,
			Server:         s,
			MessagesToSend: make(chan model.ServerMessage, 16),
			done:           make(chan struct{}),
		}
		s.addSession(ps)
		log.Printf("session %s connected", ps.ID)

		go ps.LoopChannelWrite()
		ps.LoopChannelRead()

		s.dropSession(ps)
		log.Printf("session %s disconnected", ps.ID)
	}
}

func (ps *PlayerSession) LoopChannelRead() {
	for {
		_, raw, err := ps.Conn.ReadMessage()
		if err != nil {
			log.Printf("session %s read err %v", ps.ID, err)
			return
		}
		cm := model.ClientMessage{}
		if err := json.Unmarshal(raw, &cm); err != nil {
			log.Warnf("session %s sent undecodable frame: %v", ps.ID, err)
			ps.SendError(game.ErrUnknownEvent)
			continue
		}
		ps.Server.Dispatch(ps, cm)
	}
}

// LoopChannelWrite only consumes; game actions never block on a slow socket.
func (ps *PlayerSession) LoopChannelWrite() {
	for {
		select {
		case mes := <-ps.MessagesToSend:
			if err := ps.Conn.WriteJSON(mes); err != nil {
				log.Printf("session %s write err %v", ps.ID, err)
				return
			}
		case <-ps.done:
			return
		}
	}
}

// Dispatch routes one inbound event. Rejections go back to the requester
// only; successful mutations were already broadcast by the action itself.
func (s *GameServer) Dispatch(ps *PlayerSession, cm model.ClientMessage) {
	var err error
	switch cm.Event {
	case model.EventCreateGame:
		err = s.createGame(ps)
	case model.EventJoinGame:
		payload := model.JoinGamePayload{}
		if e := json.Unmarshal(cm.Data, &payload); e != nil || payload.Game == "" {
			err = game.ErrInvalidGame
			break
		}
		err = s.joinGame(ps, payload.Game)
	case model.EventChooseColor:
		payload := model.ChooseColorPayload{}
		if len(cm.Data) > 0 {
			if e := json.Unmarshal(cm.Data, &payload); e != nil {
				err = game.ErrInvalidColor
				break
			}
		}
		err = s.withGame(ps.ID, func(g *model.Game) error {
			return game.ChooseColor(g, ps.ID, payload.Color)
		})
	case model.EventRollDice:
		err = s.withGame(ps.ID, func(g *model.Game) error {
			if _, e := game.CheckRoll(g, ps.ID); e != nil {
				return e
			}
			game.RollDice(g)
			return nil
		})
	case model.EventConfirmRoll:
		err = s.withGame(ps.ID, func(g *model.Game) error {
			return game.ConfirmRoll(g, ps.ID)
		})
	case model.EventMoveFromInitial, model.EventMoveOnRoad, model.EventMoveToFinal:
		payload := model.MovePayload{}
		if e := json.Unmarshal(cm.Data, &payload); e != nil {
			err = game.ErrInvalidPawnIndex
			break
		}
		err = s.movePawn(ps, model.ActionKind(cm.Event), payload.Pawn)
	case model.EventMoveAcknowledged:
		err = s.withGame(ps.ID, func(g *model.Game) error {
			return game.AcknowledgeMove(g, ps.ID)
		})
	default:
		log.Warnf("session %s sent unknown event %q", ps.ID, cm.Event)
		err = game.ErrUnknownEvent
	}
	if err != nil {
		ps.SendError(err)
	}
}

// createGame sets up a fresh aggregate with the requester as sole player. A
// session still bound to another game leaves it first.
func (s *GameServer) createGame(ps *PlayerSession) error {
	ctx, cancel := actionContext()
	defer cancel()

	s.leaveCurrent(ps.ID)

	g := model.NewGame(uuid.NewString(), ps.ID)
	unlock := s.locks.Lock(g.ID)
	defer unlock()

	if err := s.Store.SaveGame(ctx, g); err != nil {
		log.Errorf("create game %s: %v", g.ID, err)
		return errInternal
	}
	if err := s.Store.BindSession(ctx, ps.ID, g.ID); err != nil {
		log.Errorf("bind session %s: %v", ps.ID, err)
		return errInternal
	}
	log.Printf("session %s created game %s", ps.ID, g.ID)
	s.broadcastGame(g)
	return nil
}

func (s *GameServer) joinGame(ps *PlayerSession, gameID string) error {
	ctx, cancel := actionContext()
	defer cancel()

	s.leaveCurrent(ps.ID)

	unlock := s.locks.Lock(gameID)
	defer unlock()

	g, err := s.loadGame(ctx, gameID)
	if err != nil {
		return err
	}
	if err := game.Join(g, ps.ID); err != nil {
		return err
	}
	if err := s.Store.BindSession(ctx, ps.ID, g.ID); err != nil {
		log.Errorf("bind session %s: %v", ps.ID, err)
		return errInternal
	}
	log.Printf("session %s joined game %s", ps.ID, g.ID)
	return s.commit(ctx, g)
}

func (s *GameServer) movePawn(ps *PlayerSession, kind model.ActionKind, index int) error {
	return s.withGame(ps.ID, func(g *model.Game) error {
		pawn, err := game.CheckMove(g, ps.ID, kind, index)
		if err != nil {
			return err
		}
		switch kind {
		case model.ActionMoveFromInitial:
			game.MoveFromInitial(g, pawn)
		case model.ActionMoveOnRoad:
			game.MoveOnRoad(g, pawn)
		case model.ActionMoveToFinal:
			game.MoveToFinal(g, pawn)
		}
		return nil
	})
}

// withGame is the validate→mutate→persist pipeline every in-game action
// runs through: resolve the session's game, lock it, load, apply, commit.
// A rejection from fn leaves the stored aggregate untouched.
func (s *GameServer) withGame(session string, fn func(*model.Game) error) error {
	ctx, cancel := actionContext()
	defer cancel()

	gameID, err := s.Store.SessionGame(ctx, session)
	if errors.Is(err, store.ErrNotFound) {
		return game.ErrNotInGame
	}
	if err != nil {
		log.Errorf("resolve session %s: %v", session, err)
		return errInternal
	}

	unlock := s.locks.Lock(gameID)
	defer unlock()

	g, err := s.loadGame(ctx, gameID)
	if err != nil {
		return err
	}
	if err := fn(g); err != nil {
		return err
	}
	return s.commit(ctx, g)
}

func (s *GameServer) loadGame(ctx context.Context, gameID string) (*model.Game, error) {
	g, err := s.Store.LoadGame(ctx, gameID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, game.ErrInvalidGame
	}
	if err != nil {
		// Corrupt records fail Validate on load and are rejected cleanly
		// instead of acted upon.
		log.Errorf("load game %s: %v", gameID, err)
		return nil, game.ErrInvalidGame
	}
	return g, nil
}

// commit persists and broadcasts a mutated aggregate. A finished game gets
// its final state out before everything it owns is purged; an emptied
// roster purges silently.
func (s *GameServer) commit(ctx context.Context, g *model.Game) error {
	if g.Finished() {
		log.Printf("game %s finished, winners %v", g.ID, g.Winners)
		s.broadcastGame(g)
		s.purgeGame(ctx, g)
		return nil
	}
	if len(g.Players) == 0 {
		log.Printf("game %s abandoned", g.ID)
		s.purgeGame(ctx, g)
		return nil
	}
	if err := s.Store.SaveGame(ctx, g); err != nil {
		log.Errorf("save game %s: %v", g.ID, err)
		return errInternal
	}
	s.broadcastGame(g)
	return nil
}

func (s *GameServer) purgeGame(ctx context.Context, g *model.Game) {
	if err := s.Store.DeleteGame(ctx, g.ID); err != nil {
		log.Errorf("delete game %s: %v", g.ID, err)
	}
	for _, p := range g.Players {
		if err := s.Store.UnbindSession(ctx, p.Session); err != nil {
			log.Errorf("unbind session %s: %v", p.Session, err)
		}
	}
	s.locks.Drop(g.ID)
}

// leaveCurrent detaches the session from whatever game it is in, tearing the
// game down when it was the last player. Used on disconnect and before
// creating or joining another game.
func (s *GameServer) leaveCurrent(session string) {
	err := s.withGame(session, func(g *model.Game) error {
		game.Leave(g, session)
		return nil
	})
	if err != nil && !errors.Is(err, game.ErrNotInGame) {
		log.Warnf("session %s leave: %v", session, err)
	}
	ctx, cancel := actionContext()
	defer cancel()
	if err := s.Store.UnbindSession(ctx, session); err != nil {
		log.Errorf("unbind session %s: %v", session, err)
	}
}

func actionContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), actionTimeout)
}
