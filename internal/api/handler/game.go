package handler

import (
	"net/http"

	"github.com/mcoot/rpsarena/internal/api/apierr"
	"github.com/mcoot/rpsarena/internal/api/request"
	"github.com/mcoot/rpsarena/internal/api/response"
	"github.com/mcoot/rpsarena/internal/model"
	"github.com/mcoot/rpsarena/internal/services/game"
)

// GameHandler handles game session endpoints
type GameHandler struct {
	gameController *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller) *GameHandler {
	return &GameHandler{
		gameController: gameController,
	}
}

// Start handles POST /api/game/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartGameRequest
	if err := decodeBody(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	session, err := h.gameController.Start(r.Context(), req.Player1, req.Player2)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session, h.gameController.Rules().MaxRounds))
}

// PlayRound handles POST /api/game/play_round
func (h *GameHandler) PlayRound(w http.ResponseWriter, r *http.Request) {
	var req request.PlayRoundRequest
	if err := decodeBody(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	choice1, err := parseOptionalChoice(req.Player1Choice())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	choice2, err := parseOptionalChoice(req.Player2Choice())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	result, err := h.gameController.PlayRound(r.Context(), choice1, choice2)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoundResultFromModel(result))
}

// Status handles GET /api/game
func (h *GameHandler) Status(w http.ResponseWriter, r *http.Request) {
	session, err := h.gameController.Session(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session, h.gameController.Rules().MaxRounds))
}

func parseOptionalChoice(raw string) (*model.Choice, error) {
	if raw == "" {
		return nil, nil
	}
	c, err := model.ParseChoice(raw)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
