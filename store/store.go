// Package store persists game aggregates and the session-to-game index in a
// keyed store with per-key expiry. Values are whole JSON documents; there
// are no partial updates.
package store

import (
	"context"
	"errors"

	"github.com/vrabec/ludo/model"
)

// ErrNotFound reports a missing or expired key.
var ErrNotFound = errors.New("store: not found")

// Store is the persistence boundary of the rules engine. SaveGame refreshes
// the game record's idle expiry on every call; LoadGame returns a
// structurally validated aggregate or fails.
type Store interface {
	SaveGame(ctx context.Context, g *model.Game) error
	LoadGame(ctx context.Context, id string) (*model.Game, error)
	DeleteGame(ctx context.Context, id string) error

	BindSession(ctx context.Context, session, gameID string) error
	SessionGame(ctx context.Context, session string) (string, error)
	UnbindSession(ctx context.Context, session string) error
}
