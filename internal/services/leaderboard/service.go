package leaderboard

import (
	"context"
	"sort"

	"github.com/mcoot/rpsarena/internal/model"
)

// PlayerLister is the read side of the player registry
type PlayerLister interface {
	List(ctx context.Context) ([]*model.Player, error)
}

// Standings holds both projections computed from a single registry read
type Standings struct {
	ByName  []model.Player
	ByScore []model.Player
}

// Service derives sorted read-only views over the player registry
type Service struct {
	players PlayerLister
}

// New creates a new leaderboard Service
func New(players PlayerLister) *Service {
	return &Service{players: players}
}

// ByName returns all players ordered by name ascending (byte-wise, case-sensitive)
func (s *Service) ByName(ctx context.Context) ([]model.Player, error) {
	players, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	SortByName(players)
	return players, nil
}

// ByScore returns all players ordered by score desc, then games won desc, then name asc
func (s *Service) ByScore(ctx context.Context) ([]model.Player, error) {
	players, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	SortByScore(players)
	return players, nil
}

// Standings returns both projections over the same snapshot
func (s *Service) Standings(ctx context.Context) (*Standings, error) {
	players, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	byScore := make([]model.Player, len(players))
	copy(byScore, players)

	SortByName(players)
	SortByScore(byScore)

	return &Standings{ByName: players, ByScore: byScore}, nil
}

// SortByName sorts players by name ascending
func SortByName(players []model.Player) {
	sort.Slice(players, func(i, j int) bool {
		return players[i].Name < players[j].Name
	})
}

// SortByScore sorts players into leaderboard order
func SortByScore(players []model.Player) {
	sort.Slice(players, func(i, j int) bool {
		a, b := players[i], players[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.GamesWon != b.GamesWon {
			return a.GamesWon > b.GamesWon
		}
		return a.Name < b.Name
	})
}

func (s *Service) snapshot(ctx context.Context) ([]model.Player, error) {
	records, err := s.players.List(ctx)
	if err != nil {
		return nil, err
	}
	players := make([]model.Player, len(records))
	for i, p := range records {
		players[i] = *p
	}
	return players, nil
}
