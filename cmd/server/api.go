package main

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"go.uber.org/zap"

	"github.com/hexclash/engine/internal/action"
	"github.com/hexclash/engine/internal/game"
	"github.com/hexclash/engine/internal/gametypes"
	"github.com/hexclash/engine/internal/hexmap"
	"github.com/hexclash/engine/internal/logger"
)

// api holds the handlers binding gin routes to the engine's core API.
// Every handler is a thin translation layer: validation and mutation
// happen entirely inside game.Execute, never here.
type api struct {
	store *gameStore
	hub   *hub
}

func newAPI(store *gameStore, hub *hub) *api {
	return &api{store: store, hub: hub}
}

type createGameRequest struct {
	PlayerCount   int      `json:"player_count"`
	Civilizations []string `json:"civilizations"`
}

// createGame wraps the engine's new_game construction, additionally
// seeding one settler per player so the demo has something immediately
// playable.
func (a *api) createGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PlayerCount < 2 || req.PlayerCount > 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "player_count must be 2..6"})
		return
	}
	g := a.store.create(req.PlayerCount, req.Civilizations)
	for i, player := range g.Players {
		player.AvailableUnits = cloneUnitPool(startingUnits)
		player.AvailableBuildings = cloneBuildingPool(startingBuildings)
		settlerPos := hexmap.Position{Q: 0, R: i - 1}
		if u, ok := player.RecruitUnit(gametypes.UnitSettler, settlerPos); ok {
			logger.Get().Debug("seeded starting settler", zap.Uint32("unit_id", u.ID))
		}
	}
	g.BeginPlay()
	c.JSON(http.StatusCreated, game.ToData(g))
}

func (a *api) getSnapshot(c *gin.Context) {
	g, ok := a.store.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errGameNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, game.ToData(g))
}

type submitActionRequest struct {
	PlayerIndex int           `json:"player_index"`
	Action      action.Action `json:"action"`
}

// submitAction wraps the engine's execute entry point: on success it
// pushes the resulting current event, if any, to the game's websocket
// watchers before replying.
func (a *api) submitAction(c *gin.Context) {
	var req submitActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id := c.Param("id")
	var execErr error
	g, err := a.store.withLock(id, func(g *game.Game) error {
		_, execErr = game.Execute(g, req.Action, req.PlayerIndex)
		return execErr
	})
	if err == errGameNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if execErr != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": execErr.Error()})
		return
	}
	if payload, err := json.Marshal(currentEventView(g)); err == nil {
		a.hub.push(id, payload)
	}
	c.JSON(http.StatusOK, game.ToData(g))
}

func (a *api) availableActions(c *gin.Context) {
	g, ok := a.store.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errGameNotFound.Error()})
		return
	}
	playerIndex := g.Turn.CurrentPlayerIndex
	c.JSON(http.StatusOK, g.AvailableActions(playerIndex))
}

func (a *api) currentEvent(c *gin.Context) {
	g, ok := a.store.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errGameNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, currentEventView(g))
}

// currentEventView reports the top of the persistent-event stack and any
// built-in combat/culture suspension in one shape for clients to render
// a pending prompt from.
func currentEventView(g *game.Game) gin.H {
	return gin.H{
		"persistent_event": g.CurrentEvent(),
		"pending":          g.Pending,
	}
}
