package game

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mcoot/rpsarena/internal/dependencies/clock"
	"github.com/mcoot/rpsarena/internal/dependencies/random"
	"github.com/mcoot/rpsarena/internal/events"
	"github.com/mcoot/rpsarena/internal/model"
	"github.com/mcoot/rpsarena/internal/services/registry"
	"github.com/mcoot/rpsarena/internal/services/round"
	"github.com/mcoot/rpsarena/internal/storage"
)

const matchIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Controller owns the single game session and its state machine.
//
// mu serializes Start and PlayRound, including the registry credit a round
// triggers, so every round observes a fully applied prior state. Registration
// and reads of players go straight to storage and do not take mu.
type Controller struct {
	mu sync.Mutex

	storage   storage.Storage
	registry  *registry.Service
	resolver  *round.Resolver
	clock     clock.Clock
	random    random.Random
	publisher events.Publisher
	cfg       Config
	logger    *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	registry *registry.Service,
	resolver *round.Resolver,
	clock clock.Clock,
	random random.Random,
	publisher events.Publisher,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:   storage,
		registry:  registry,
		resolver:  resolver,
		clock:     clock,
		random:    random,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
	}
}

// Rules returns the match rules the controller was built with
func (c *Controller) Rules() Config {
	return c.cfg
}

// Session returns a snapshot of the current session (idle if never started)
func (c *Controller) Session(ctx context.Context) (*model.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// Start begins a new match between two registered players.
// It resets the round count and the winner lock.
func (c *Controller) Start(ctx context.Context, player1, player2 string) (*model.Session, error) {
	p1, err := registry.NormalizeName(player1)
	if err != nil {
		return nil, err
	}
	p2, err := registry.NormalizeName(player2)
	if err != nil {
		return nil, err
	}
	if p1 == p2 {
		return nil, model.ErrSamePlayer
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	if c.cfg.LockPolicy == LockPolicyEnforce && current.LockedPlayer1 && current.Player1 != p1 {
		return nil, model.ErrPlayer1Locked
	}

	for _, name := range []string{p1, p2} {
		if _, err := c.registry.Get(ctx, name); err != nil {
			return nil, err
		}
	}

	now := c.clock.Now()
	session := &model.Session{
		Status:        model.SessionActive,
		MatchID:       model.MatchID(c.random.String(12, matchIDAlphabet)),
		Player1:       p1,
		Player2:       p2,
		LockedPlayer1: false,
		RoundNumber:   0,
		StartedAt:     now,
		UpdatedAt:     now,
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		c.logger.Error("failed to save session",
			slog.String("match_id", string(session.MatchID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("match started",
		slog.String("match_id", string(session.MatchID)),
		slog.String("player1", p1),
		slog.String("player2", p2),
	)

	c.publisher.Publish(model.Event{
		Type:      model.EventMatchStarted,
		Timestamp: now,
		MatchID:   session.MatchID,
		Payload:   model.MatchStartedPayload{Player1: p1, Player2: p2},
	})

	return session.Clone(), nil
}

// PlayRound plays one round of the active match. A nil choice is drawn at random.
func (c *Controller) PlayRound(ctx context.Context, choice1, choice2 *model.Choice) (*model.RoundResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	if !session.IsActive() {
		return nil, model.ErrNoActiveMatch
	}
	if c.cfg.MaxRounds > 0 && session.RoundNumber >= c.cfg.MaxRounds {
		return nil, model.ErrMatchFinished
	}

	outcome, err := c.resolver.Play(choice1, choice2)
	if err != nil {
		return nil, err
	}

	winnerName := ""
	switch outcome.Winner {
	case model.WinnerPlayer1:
		winnerName = session.Player1
		session.LockedPlayer1 = true
		session.RoundWins.Player1++
	case model.WinnerPlayer2:
		winnerName = session.Player2
		session.LockedPlayer1 = false
		session.RoundWins.Player2++
	}

	if winnerName != "" {
		if _, err := c.registry.Credit(ctx, winnerName, 1, 1); err != nil {
			return nil, err
		}
	}

	session.RoundNumber++
	session.LastOutcome = &outcome
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		c.logger.Error("failed to save session",
			slog.String("match_id", string(session.MatchID)),
			slog.String("error", err.Error()),
		)
		c.rollbackCredit(ctx, winnerName)
		return nil, err
	}

	result := &model.RoundResult{
		RoundOutcome:  outcome,
		MatchID:       session.MatchID,
		Round:         session.RoundNumber,
		LockedPlayer1: session.LockedPlayer1,
		NextPlayer1:   session.RetainedPlayer1(),
		RoundWins:     session.RoundWins,
		Finished:      c.cfg.MaxRounds > 0 && session.RoundNumber >= c.cfg.MaxRounds,
	}

	c.logger.Info("round played",
		slog.String("match_id", string(session.MatchID)),
		slog.Int("round", session.RoundNumber),
		slog.String("winner", string(outcome.Winner)),
		slog.Bool("locked_player1", session.LockedPlayer1),
	)

	c.publisher.Publish(model.Event{
		Type:      model.EventRoundPlayed,
		Timestamp: session.UpdatedAt,
		MatchID:   session.MatchID,
		Payload:   model.RoundPlayedPayload{Result: *result},
	})

	return result, nil
}

// rollbackCredit undoes a round credit when the session could not be saved
func (c *Controller) rollbackCredit(ctx context.Context, name string) {
	if name == "" {
		return
	}
	if _, err := c.registry.Credit(ctx, name, -1, -1); err != nil {
		c.logger.Error("failed to roll back round credit",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
	}
}

// load reads the stored session, treating a missing one as idle. Caller holds mu.
func (c *Controller) load(ctx context.Context) (*model.Session, error) {
	session, err := c.storage.GetSession(ctx)
	if errors.Is(err, model.ErrSessionNotFound) {
		return model.NewIdleSession(), nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}
