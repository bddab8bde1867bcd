package registry

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/rpsarena/internal/dependencies/mocks"
	"github.com/mcoot/rpsarena/internal/events"
	"github.com/mcoot/rpsarena/internal/model"
	"github.com/mcoot/rpsarena/internal/storage/memory"
	"github.com/mcoot/rpsarena/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage  *memory.Storage
	clock    *mocks.MockClock
	recorder *events.Recorder
	service  *Service
	ctx      context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.recorder = &events.Recorder{}
	s.service = New(s.storage, s.clock, s.recorder, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestRegisterCreatesPlayer() {
	player, err := s.service.Register(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal("Alice", player.Name)
	s.Equal(0, player.Score)
	s.Equal(0, player.GamesWon)
	s.Equal([]model.EventType{model.EventPlayerRegistered}, s.recorder.Types())
}

func (s *ServiceSuite) TestRegisterIsIdempotent() {
	first, err := s.service.Register(s.ctx, "Alice")
	s.Require().NoError(err)
	_, err = s.service.Credit(s.ctx, "Alice", 1, 1)
	s.Require().NoError(err)

	second, err := s.service.Register(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(first.Name, second.Name)
	s.Equal(1, second.Score)
	s.Equal(1, second.GamesWon)

	// Only the first registration is announced
	s.Len(s.recorder.Events, 1)
}

func (s *ServiceSuite) TestRegisterTrimsName() {
	player, err := s.service.Register(s.ctx, "  Alice \t")
	s.Require().NoError(err)
	s.Equal("Alice", player.Name)

	again, err := s.service.Register(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(player.CreatedAt, again.CreatedAt)
}

func (s *ServiceSuite) TestRegisterRejectsEmptyName() {
	for _, name := range []string{"", "   ", "\n\t"} {
		_, err := s.service.Register(s.ctx, name)
		s.ErrorIs(err, model.ErrEmptyName)
		s.ErrorIs(err, model.ErrValidation)
	}

	players, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *ServiceSuite) TestRegisterRejectsLongName() {
	_, err := s.service.Register(s.ctx, strings.Repeat("x", model.MaxNameLength+1))
	s.ErrorIs(err, model.ErrNameTooLong)
}

func (s *ServiceSuite) TestRegisterIsCaseSensitive() {
	_, _ = s.service.Register(s.ctx, "alice")
	_, _ = s.service.Register(s.ctx, "Alice")

	players, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 2)
}

func (s *ServiceSuite) TestGetNotFound() {
	_, err := s.service.Get(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
	s.ErrorIs(err, model.ErrNotFound)
}

func (s *ServiceSuite) TestGetNormalizesName() {
	_, err := s.service.Register(s.ctx, " Alice ")
	s.Require().NoError(err)

	player, err := s.service.Get(s.ctx, "  Alice")
	s.Require().NoError(err)
	s.Equal("Alice", player.Name)

	_, err = s.service.Get(s.ctx, "   ")
	s.ErrorIs(err, model.ErrEmptyName)
}

func (s *ServiceSuite) TestCredit() {
	_, _ = s.service.Register(s.ctx, "Alice")
	s.clock.Advance(time.Minute)

	player, err := s.service.Credit(s.ctx, "Alice", 1, 1)
	s.Require().NoError(err)
	s.Equal(1, player.Score)
	s.Equal(1, player.GamesWon)
	s.Equal(s.clock.Now(), player.UpdatedAt)
}

func (s *ServiceSuite) TestCreditUnknownPlayer() {
	_, err := s.service.Credit(s.ctx, "nobody", 1, 1)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}
