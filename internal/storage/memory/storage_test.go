package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/rpsarena/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
	now     time.Time
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
	s.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

// Player tests

func (s *StorageSuite) TestCreatePlayerIfAbsent() {
	player, created, err := s.storage.CreatePlayerIfAbsent(s.ctx, "Alice", s.now)
	s.Require().NoError(err)
	s.True(created)
	s.Equal("Alice", player.Name)
	s.Equal(0, player.Score)
	s.Equal(s.now, player.CreatedAt)
}

func (s *StorageSuite) TestCreatePlayerIfAbsentKeepsExisting() {
	_, _, _ = s.storage.CreatePlayerIfAbsent(s.ctx, "Alice", s.now)
	_, _ = s.storage.CreditPlayer(s.ctx, "Alice", 2, 1, s.now)

	player, created, err := s.storage.CreatePlayerIfAbsent(s.ctx, "Alice", s.now.Add(time.Hour))
	s.Require().NoError(err)
	s.False(created)
	s.Equal(2, player.Score)
	s.Equal(1, player.GamesWon)
	s.Equal(s.now, player.CreatedAt)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestNamesAreCaseSensitive() {
	_, _, _ = s.storage.CreatePlayerIfAbsent(s.ctx, "alice", s.now)

	_, err := s.storage.GetPlayer(s.ctx, "Alice")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestCreditPlayer() {
	_, _, _ = s.storage.CreatePlayerIfAbsent(s.ctx, "Alice", s.now)

	later := s.now.Add(time.Minute)
	player, err := s.storage.CreditPlayer(s.ctx, "Alice", 1, 1, later)
	s.Require().NoError(err)
	s.Equal(1, player.Score)
	s.Equal(1, player.GamesWon)
	s.Equal(later, player.UpdatedAt)
}

func (s *StorageSuite) TestCreditPlayerNotFound() {
	_, err := s.storage.CreditPlayer(s.ctx, "nobody", 1, 1, s.now)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestConcurrentCreditsAreNotLost() {
	_, _, _ = s.storage.CreatePlayerIfAbsent(s.ctx, "Alice", s.now)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.storage.CreditPlayer(s.ctx, "Alice", 1, 1, s.now)
		}()
	}
	wg.Wait()

	player, err := s.storage.GetPlayer(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(50, player.Score)
	s.Equal(50, player.GamesWon)
}

func (s *StorageSuite) TestReturnedPlayerIsACopy() {
	player, _, _ := s.storage.CreatePlayerIfAbsent(s.ctx, "Alice", s.now)
	player.Score = 99

	stored, err := s.storage.GetPlayer(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(0, stored.Score)
}

func (s *StorageSuite) TestListPlayers() {
	_, _, _ = s.storage.CreatePlayerIfAbsent(s.ctx, "Alice", s.now)
	_, _, _ = s.storage.CreatePlayerIfAbsent(s.ctx, "Bob", s.now)

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 2)
}

func (s *StorageSuite) TestListPlayersEmpty() {
	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Empty(players)
}

// Session tests

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSaveAndGetSession() {
	session := &model.Session{
		Status:        model.SessionActive,
		MatchID:       "MATCH1",
		Player1:       "Alice",
		Player2:       "Bob",
		LockedPlayer1: true,
		RoundNumber:   3,
		LastOutcome: &model.RoundOutcome{
			Player1Choice: model.ChoiceRock,
			Player2Choice: model.ChoiceScissors,
			Winner:        model.WinnerPlayer1,
		},
	}

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	// Mutating the original after save must not leak into storage
	session.RoundNumber = 10
	session.LastOutcome.Winner = model.WinnerDraw

	retrieved, err := s.storage.GetSession(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, retrieved.RoundNumber)
	s.Equal(model.WinnerPlayer1, retrieved.LastOutcome.Winner)
	s.True(retrieved.LockedPlayer1)
}
