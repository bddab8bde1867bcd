package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mcoot/rpsarena/internal/api"
	"github.com/mcoot/rpsarena/internal/api/sse"
	"github.com/mcoot/rpsarena/internal/dependencies/clock"
	"github.com/mcoot/rpsarena/internal/dependencies/random"
	"github.com/mcoot/rpsarena/internal/events"
	"github.com/mcoot/rpsarena/internal/services/game"
	"github.com/mcoot/rpsarena/internal/services/leaderboard"
	"github.com/mcoot/rpsarena/internal/services/registry"
	"github.com/mcoot/rpsarena/internal/services/round"
	"github.com/mcoot/rpsarena/internal/storage"
	"github.com/mcoot/rpsarena/internal/storage/memory"
	redisstorage "github.com/mcoot/rpsarena/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	Storage storage.Storage
	Logger  *slog.Logger

	// Services
	Registry           *registry.Service
	GameController     *game.Controller
	LeaderboardService *leaderboard.Service
	Hub                *sse.Hub
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// GameConfig holds match rules. Zero value means game.DefaultConfig().
	GameConfig game.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	gameCfg := cfg.GameConfig
	if gameCfg.LockPolicy == "" {
		gameCfg.LockPolicy = game.DefaultConfig().LockPolicy
	}
	if err := gameCfg.Validate(); err != nil {
		return nil, err
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	hub := sse.NewHub(logger)
	return newWithDependencies(store, clock.New(), random.New(), hub, hub, gameCfg, logger), nil
}

func newStorage(cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("open redis storage: %w", err)
		}
		return redisStore, nil
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory' or 'redis'", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	hub *sse.Hub,
	publisher events.Publisher,
	gameCfg game.Config,
	logger *slog.Logger,
) *App {
	registryService := registry.New(store, clk, publisher, logger)
	gameController := game.NewController(store, registryService, round.NewResolver(rnd), clk, rnd, publisher, gameCfg, logger)
	leaderboardService := leaderboard.New(registryService)

	return &App{
		Storage:            store,
		Logger:             logger,
		Registry:           registryService,
		GameController:     gameController,
		LeaderboardService: leaderboardService,
		Hub:                hub,
	}
}

// Router builds the HTTP handler for the application
func (a *App) Router() http.Handler {
	return api.NewRouter(api.RouterConfig{
		Logger:             a.Logger,
		Registry:           a.Registry,
		GameController:     a.GameController,
		LeaderboardService: a.LeaderboardService,
		Hub:                a.Hub,
	})
}

// Close stops the event hub and releases the storage connection, if any
func (a *App) Close() error {
	a.Hub.Close()
	if closer, ok := a.Storage.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
