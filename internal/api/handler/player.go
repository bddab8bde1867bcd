package handler

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/mcoot/rpsarena/internal/api/apierr"
	"github.com/mcoot/rpsarena/internal/api/request"
	"github.com/mcoot/rpsarena/internal/api/response"
	"github.com/mcoot/rpsarena/internal/services/registry"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	registry *registry.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(registry *registry.Service) *PlayerHandler {
	return &PlayerHandler{
		registry: registry,
	}
}

// Register handles POST /api/player/register
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	player, err := h.registry.Register(r.Context(), req.Name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Get handles GET /api/player/{name}. The router matches on the encoded path,
// so the name arrives still escaped.
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(mux.Vars(r)["name"])
	if err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid player name encoding"))
		return
	}

	player, err := h.registry.Get(r.Context(), name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}
