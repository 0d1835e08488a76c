package server

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vrabec/ludo/model"
	"github.com/vrabec/ludo/store"
)

// GameServer owns the websocket endpoint, the connected-session registry and
// the per-game locks that serialize actions touching the same aggregate.
// All game state lives in the store; the server keeps none between actions.
type GameServer struct {
	Upgrader *websocket.Upgrader
	Store    store.Store

	mu       sync.Mutex
	sessions map[string]*PlayerSession

	locks gameLocks
}

// PlayerSession is one connected client. Messages are written through a
// buffered channel consumed by a single write loop; a full buffer drops the
// message rather than blocking a game action.
type PlayerSession struct {
	ID     string
	Conn   *websocket.Conn
	Server *GameServer

	MessagesToSend chan model.ServerMessage
	done           chan struct{}
	closeOnce      sync.Once
}
