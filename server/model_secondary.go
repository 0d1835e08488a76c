package server

import (
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/vrabec/ludo/game"
	"github.com/vrabec/ludo/model"
)

// errInternal masks store and transport failures towards clients; the real
// cause is logged server-side.
var errInternal = errors.New("internal-error")

// gameLocks serializes actions per game id. Different games never contend;
// within one game every action runs the whole load-mutate-save sequence
// under the same mutex.
type gameLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *gameLocks) Lock(id string) (unlock func()) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m.Unlock
}

// Drop forgets the lock of a purged game.
func (l *gameLocks) Drop(id string) {
	l.mu.Lock()
	delete(l.locks, id)
	l.mu.Unlock()
}

func (s *GameServer) addSession(ps *PlayerSession) {
	s.mu.Lock()
	s.sessions[ps.ID] = ps
	s.mu.Unlock()
}

func (s *GameServer) dropSession(ps *PlayerSession) {
	s.mu.Lock()
	delete(s.sessions, ps.ID)
	s.mu.Unlock()
	ps.closeOnce.Do(func() { close(ps.done) })
	s.leaveCurrent(ps.ID)
}

func (s *GameServer) session(id string) *PlayerSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

// broadcastGame sends the full aggregate to every player still connected;
// the serialized Game is the only outbound state representation.
func (s *GameServer) broadcastGame(g *model.Game) {
	mes := model.ServerMessage{Event: model.EventGameUpdated, Data: g}
	for _, p := range g.Players {
		if ps := s.session(p.Session); ps != nil {
			ps.Send(mes)
		}
	}
}

func (ps *PlayerSession) Send(mes model.ServerMessage) {
	select {
	case ps.MessagesToSend <- mes:
	case <-ps.done:
	default:
		log.Warnf("session %s send buffer full, dropping %s", ps.ID, mes.Event)
	}
}

// SendError answers the requester only. Rejections travel verbatim;
// anything else is masked as internal-error.
func (ps *PlayerSession) SendError(err error) {
	var rej game.Rejection
	if !errors.As(err, &rej) && !errors.Is(err, errInternal) {
		log.Errorf("session %s: %v", ps.ID, err)
		err = errInternal
	}
	ps.Send(model.ServerMessage{
		Event: model.EventError,
		Data:  model.ErrorPayload{Error: err.Error()},
	})
}
