package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/vrabec/ludo/model"
)

// Memory is the in-process Store used when no Redis address is configured
// and by tests. Games are kept as marshaled JSON so the round-trip contract
// matches the Redis implementation, including the idle expiry.
type Memory struct {
	mu       sync.Mutex
	gameTTL  time.Duration
	games    map[string]memoryRecord
	sessions map[string]string
	now      func() time.Time
}

type memoryRecord struct {
	raw     []byte
	expires time.Time
}

func NewMemory(gameTTL time.Duration) *Memory {
	return &Memory{
		gameTTL:  gameTTL,
		games:    make(map[string]memoryRecord),
		sessions: make(map[string]string),
		now:      time.Now,
	}
}

func (s *Memory) SaveGame(_ context.Context, g *model.Game) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal game %s: %w", g.ID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.ID] = memoryRecord{raw: raw, expires: s.now().Add(s.gameTTL)}
	return nil
}

func (s *Memory) LoadGame(_ context.Context, id string) (*model.Game, error) {
	s.mu.Lock()
	rec, ok := s.games[id]
	if ok && !rec.expires.After(s.now()) {
		delete(s.games, id)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	g := &model.Game{}
	if err := json.Unmarshal(rec.raw, g); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", id, err)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}
	return g, nil
}

func (s *Memory) DeleteGame(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

func (s *Memory) BindSession(_ context.Context, session, gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session] = gameID
	return nil
}

func (s *Memory) SessionGame(_ context.Context, session string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gameID, ok := s.sessions[session]
	if !ok {
		return "", ErrNotFound
	}
	return gameID, nil
}

func (s *Memory) UnbindSession(_ context.Context, session string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, session)
	return nil
}
