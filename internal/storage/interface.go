package storage

import (
	"context"
	"time"

	"github.com/mcoot/rpsarena/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	CreatePlayerIfAbsent(ctx context.Context, name string, now time.Time) (*model.Player, bool, error)
	GetPlayer(ctx context.Context, name string) (*model.Player, error)
	CreditPlayer(ctx context.Context, name string, scoreDelta, wonDelta int, now time.Time) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)

	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context) (*model.Session, error)
}
