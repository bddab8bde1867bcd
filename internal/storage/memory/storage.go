package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mcoot/rpsarena/internal/model"
	"github.com/mcoot/rpsarena/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Records are copied on the way in and out so callers never share them.
type Storage struct {
	mu sync.RWMutex

	players map[string]*model.Player
	session *model.Session
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[string]*model.Player),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) CreatePlayerIfAbsent(ctx context.Context, name string, now time.Time) (*model.Player, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.players[name]; ok {
		p := *existing
		return &p, false, nil
	}

	player := &model.Player{Name: name, CreatedAt: now, UpdatedAt: now}
	s.players[name] = player
	p := *player
	return &p, true, nil
}

func (s *Storage) GetPlayer(ctx context.Context, name string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, ok := s.players[name]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	return &p, nil
}

func (s *Storage) CreditPlayer(ctx context.Context, name string, scoreDelta, wonDelta int, now time.Time) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[name]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	player.Score += scoreDelta
	player.GamesWon += wonDelta
	player.UpdatedAt = now
	p := *player
	return &p, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]*model.Player, 0, len(s.players))
	for _, player := range s.players {
		p := *player
		players = append(players, &p)
	}
	return players, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session.Clone()
	return nil
}

func (s *Storage) GetSession(ctx context.Context) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, model.ErrSessionNotFound
	}
	return s.session.Clone(), nil
}
