package handler

import (
	"errors"
	"io"
	"net/http"

	"nexus/backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"Game not found"`
}

// Handler serves the companies and games resources. Each handler issues a
// single storage call and maps its own errors; nothing is retried.
type Handler struct {
	db        *gorm.DB
	companies *store.CompanyStore
	games     *store.GameStore
}

func New(db *gorm.DB) *Handler {
	return &Handler{
		db:        db,
		companies: store.NewCompanyStore(db),
		games:     store.NewGameStore(db),
	}
}

// Games exposes the game store, mainly so tests can pin its clock.
func (h *Handler) Games() *store.GameStore {
	return h.games
}

// RegisterRoutes mounts the API under the given group (normally /api).
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/health", h.Health)

	companyRoutes := api.Group("/companies")
	{
		companyRoutes.GET("", h.ListCompanies)
		companyRoutes.POST("", h.CreateCompany)
		companyRoutes.GET("/:companyId/games", h.ListCompanyGames)
		companyRoutes.POST("/:companyId/games", h.CreateGame)
	}

	gameRoutes := api.Group("/games")
	{
		gameRoutes.GET("/:gameId", h.GetGame)
		gameRoutes.PUT("/:gameId", h.UpdateGame)
		gameRoutes.DELETE("/:gameId", h.DeleteGame)
	}
}

// region --- helpers ---

// parseID reads a UUID path parameter, answering 400 when it is malformed.
func parseID(c *gin.Context, param, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + label + " id"})
		return uuid.Nil, false
	}
	return id, true
}

// bodyTooLarge answers 413 when err came from the body size cap.
func bodyTooLarge(c *gin.Context, err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
		return true
	}
	return false
}

func isEmptyBody(err error) bool {
	return errors.Is(err, io.EOF)
}

// storageFailure answers 500 with the underlying message.
func storageFailure(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func notFound(c *gin.Context, err error) bool {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return true
	}
	return false
}

// endregion
