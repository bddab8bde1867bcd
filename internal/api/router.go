package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/rpsarena/internal/api/apierr"
	"github.com/mcoot/rpsarena/internal/api/handler"
	"github.com/mcoot/rpsarena/internal/api/middleware"
	"github.com/mcoot/rpsarena/internal/api/response"
	"github.com/mcoot/rpsarena/internal/api/sse"
	"github.com/mcoot/rpsarena/internal/services/game"
	"github.com/mcoot/rpsarena/internal/services/leaderboard"
	"github.com/mcoot/rpsarena/internal/services/registry"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	Registry           *registry.Service
	GameController     *game.Controller
	LeaderboardService *leaderboard.Service
	Hub                *sse.Hub
}

// NewRouter creates a new API router with all routes configured.
// Routes live on the root router so mux reports method mismatches as 405.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	// Player names may contain escaped slashes
	r.UseEncodedPath()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.Registry)
	gameHandler := handler.NewGameHandler(cfg.GameController)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService)

	// Common middleware, outermost first
	chain := []mux.MiddlewareFunc{
		middleware.RequestID,
		middleware.Recovery(cfg.Logger),
		middleware.Logging(cfg.Logger),
	}
	r.Use(chain...)

	// Player routes
	r.HandleFunc("/api/player/register", playerHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/player/{name}", playerHandler.Get).Methods(http.MethodGet)

	// Game routes
	r.HandleFunc("/api/game", gameHandler.Status).Methods(http.MethodGet)
	r.HandleFunc("/api/game/start", gameHandler.Start).Methods(http.MethodPost)
	r.HandleFunc("/api/game/play_round", gameHandler.PlayRound).Methods(http.MethodPost)

	r.HandleFunc("/api/leaderboard", leaderboardHandler.Get).Methods(http.MethodGet)

	if cfg.Hub != nil {
		r.HandleFunc("/api/events", sse.Handler(cfg.Hub)).Methods(http.MethodGet)
	}

	r.HandleFunc("/api/health", healthHandler).Methods(http.MethodGet)

	// mux skips Use middleware for these, so wrap them directly
	r.MethodNotAllowedHandler = wrap(http.HandlerFunc(methodNotAllowedHandler), chain)
	r.NotFoundHandler = wrap(http.HandlerFunc(notFoundHandler), chain)

	return r
}

func wrap(h http.Handler, chain []mux.MiddlewareFunc) http.Handler {
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}
	return h
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}

func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	apierr.WriteError(w, apierr.NewMethodNotAllowedError(r.Method))
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	apierr.WriteError(w, apierr.NewRouteNotFoundError())
}
