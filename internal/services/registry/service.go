package registry

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mcoot/rpsarena/internal/dependencies/clock"
	"github.com/mcoot/rpsarena/internal/events"
	"github.com/mcoot/rpsarena/internal/model"
	"github.com/mcoot/rpsarena/internal/storage"
)

// Service is the player registry: name -> player record
type Service struct {
	storage   storage.Storage
	clock     clock.Clock
	publisher events.Publisher
	logger    *slog.Logger
}

// New creates a new registry Service
func New(storage storage.Storage, clock clock.Clock, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		storage:   storage,
		clock:     clock,
		publisher: publisher,
		logger:    logger,
	}
}

// NormalizeName trims surrounding whitespace and validates the result
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", model.ErrEmptyName
	}
	if len(name) > model.MaxNameLength {
		return "", model.ErrNameTooLong
	}
	return name, nil
}

// Register creates the player if absent and returns the stored record.
// Registering an existing name is a no-op.
func (s *Service) Register(ctx context.Context, name string) (*model.Player, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	player, created, err := s.storage.CreatePlayerIfAbsent(ctx, name, now)
	if err != nil {
		s.logger.Error("failed to register player",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if created {
		s.logger.Info("player registered", slog.String("name", name))
		s.publisher.Publish(model.Event{
			Type:      model.EventPlayerRegistered,
			Timestamp: now,
			Payload:   model.PlayerRegisteredPayload{Player: *player},
		})
	}

	return player, nil
}

// Get returns the player with the given name, normalized as Register does
func (s *Service) Get(ctx context.Context, name string) (*model.Player, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}
	return s.storage.GetPlayer(ctx, name)
}

// Credit adds the deltas to an existing player's score and games won
func (s *Service) Credit(ctx context.Context, name string, scoreDelta, wonDelta int) (*model.Player, error) {
	player, err := s.storage.CreditPlayer(ctx, name, scoreDelta, wonDelta, s.clock.Now())
	if err != nil {
		s.logger.Error("failed to credit player",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return player, nil
}

// List returns every registered player in unspecified order
func (s *Service) List(ctx context.Context) ([]*model.Player, error) {
	return s.storage.ListPlayers(ctx)
}
