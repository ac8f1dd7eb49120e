package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"nexus/backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

// region --- DTOs ---

// GameInput is the body of POST /companies/{companyId}/games.
type GameInput struct {
	Name        string  `json:"name" binding:"required" example:"Run1"`
	Description *string `json:"description" example:"First simulation run"`
}

// GameStateInput is the body of PUT /games/{id}. Every field is written:
// a field left out of the body is stored as null.
type GameStateInput struct {
	BoardState       json.RawMessage `json:"board_state" swaggertype:"object"`
	AgentAssignments json.RawMessage `json:"agent_assignments" swaggertype:"object"`
	ActiveDrivers    json.RawMessage `json:"active_drivers" swaggertype:"array,object"`
	CycleNumber      *int            `json:"cycle_number" example:"2"`
	CyclePhase       *string         `json:"cycle_phase" example:"act"`
	CompletedPhases  json.RawMessage `json:"completed_phases" swaggertype:"array,object"`
	LogEntries       json.RawMessage `json:"log_entries" swaggertype:"array,object"`
	CustomItems      json.RawMessage `json:"custom_items" swaggertype:"array,object"`
	FitnessScore     *float64        `json:"fitness_score" example:"42"`
}

func (in GameStateInput) toState() store.GameState {
	return store.GameState{
		BoardState:       datatypes.JSON(in.BoardState),
		AgentAssignments: datatypes.JSON(in.AgentAssignments),
		ActiveDrivers:    datatypes.JSON(in.ActiveDrivers),
		CycleNumber:      in.CycleNumber,
		CyclePhase:       in.CyclePhase,
		CompletedPhases:  datatypes.JSON(in.CompletedPhases),
		LogEntries:       datatypes.JSON(in.LogEntries),
		CustomItems:      datatypes.JSON(in.CustomItems),
		FitnessScore:     in.FitnessScore,
	}
}

// DeleteResponse confirms a deletion.
type DeleteResponse struct {
	Deleted bool `json:"deleted" example:"true"`
}

// endregion

// ListCompanyGames godoc
// @Summary      List a company's games
// @Description  Lists summaries of a company's games, most recently updated first. JSON payloads are omitted.
// @Tags         games
// @Produce      json
// @Param        companyId path string true "Company ID" format(uuid)
// @Success      200  {array}   models.GameSummary
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /companies/{companyId}/games [get]
func (h *Handler) ListCompanyGames(c *gin.Context) {
	companyID, ok := parseID(c, "companyId", "company")
	if !ok {
		return
	}

	games, err := h.games.ListByCompany(c.Request.Context(), companyID)
	if err != nil {
		storageFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// CreateGame godoc
// @Summary      Create a game
// @Description  Creates a game under a company with empty simulation state.
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        companyId path string    true "Company ID" format(uuid)
// @Param        input     body GameInput true "Game Info"
// @Success      201  {object}  models.Game
// @Failure      400  {object}  ErrorResponse
// @Failure      413  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /companies/{companyId}/games [post]
func (h *Handler) CreateGame(c *gin.Context) {
	companyID, ok := parseID(c, "companyId", "company")
	if !ok {
		return
	}

	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		if bodyTooLarge(c, err) {
			return
		}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) || isEmptyBody(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	description := input.Description
	if description != nil && *description == "" {
		description = nil
	}

	game, err := h.games.Create(c.Request.Context(), companyID, input.Name, description)
	if err != nil {
		storageFailure(c, err)
		return
	}
	c.JSON(http.StatusCreated, game)
}

// GetGame godoc
// @Summary      Get a game
// @Description  Returns a game with all of its simulation state.
// @Tags         games
// @Produce      json
// @Param        gameId path string true "Game ID" format(uuid)
// @Success      200  {object}  models.Game
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /games/{gameId} [get]
func (h *Handler) GetGame(c *gin.Context) {
	id, ok := parseID(c, "gameId", "game")
	if !ok {
		return
	}

	game, err := h.games.Get(c.Request.Context(), id)
	if err != nil {
		if notFound(c, err) {
			return
		}
		storageFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// UpdateGame godoc
// @Summary      Replace a game's simulation state
// @Description  Overwrites every mutable field. Omitted fields are cleared; fitness_score defaults to 0.
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        gameId path string         true "Game ID" format(uuid)
// @Param        input  body GameStateInput true "Simulation state"
// @Success      200  {object}  models.GameStamp
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Failure      413  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /games/{gameId} [put]
func (h *Handler) UpdateGame(c *gin.Context) {
	id, ok := parseID(c, "gameId", "game")
	if !ok {
		return
	}

	var input GameStateInput
	if err := c.ShouldBindJSON(&input); err != nil && !isEmptyBody(err) {
		if bodyTooLarge(c, err) {
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stamp, err := h.games.ReplaceState(c.Request.Context(), id, input.toState())
	if err != nil {
		if notFound(c, err) {
			return
		}
		storageFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, stamp)
}

// DeleteGame godoc
// @Summary      Delete a game
// @Description  Deletes a game.
// @Tags         games
// @Produce      json
// @Param        gameId path string true "Game ID" format(uuid)
// @Success      200  {object}  DeleteResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /games/{gameId} [delete]
func (h *Handler) DeleteGame(c *gin.Context) {
	id, ok := parseID(c, "gameId", "game")
	if !ok {
		return
	}

	if err := h.games.Delete(c.Request.Context(), id); err != nil {
		if notFound(c, err) {
			return
		}
		storageFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, DeleteResponse{Deleted: true})
}
