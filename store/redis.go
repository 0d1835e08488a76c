package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vrabec/ludo/model"
)

const (
	gameKeyPrefix    = "game:"
	sessionKeyPrefix = "session:"
)

// Redis keeps game records under game:<id> with an idle TTL refreshed on
// every save, and session bindings under session:<id> without expiry; a
// binding lives exactly as long as its game does.
type Redis struct {
	client  *redis.Client
	gameTTL time.Duration
}

func NewRedis(addr string, gameTTL time.Duration) *Redis {
	return &Redis{
		client:  redis.NewClient(&redis.Options{Addr: addr}),
		gameTTL: gameTTL,
	}
}

// Ping verifies the connection at startup.
func (s *Redis) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Redis) SaveGame(ctx context.Context, g *model.Game) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal game %s: %w", g.ID, err)
	}
	if err := s.client.Set(ctx, gameKeyPrefix+g.ID, raw, s.gameTTL).Err(); err != nil {
		return fmt.Errorf("save game %s: %w", g.ID, err)
	}
	return nil
}

func (s *Redis) LoadGame(ctx context.Context, id string) (*model.Game, error) {
	raw, err := s.client.Get(ctx, gameKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}
	g := &model.Game{}
	if err := json.Unmarshal(raw, g); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", id, err)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}
	return g, nil
}

func (s *Redis) DeleteGame(ctx context.Context, id string) error {
	return s.client.Del(ctx, gameKeyPrefix+id).Err()
}

func (s *Redis) BindSession(ctx context.Context, session, gameID string) error {
	return s.client.Set(ctx, sessionKeyPrefix+session, gameID, 0).Err()
}

func (s *Redis) SessionGame(ctx context.Context, session string) (string, error) {
	gameID, err := s.client.Get(ctx, sessionKeyPrefix+session).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("resolve session %s: %w", session, err)
	}
	return gameID, nil
}

func (s *Redis) UnbindSession(ctx context.Context, session string) error {
	return s.client.Del(ctx, sessionKeyPrefix+session).Err()
}
