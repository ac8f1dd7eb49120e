package handler

import (
	"net/http"

	"nexus/backend/internal/database"

	"github.com/gin-gonic/gin"
)

// HealthResponse reports whether the database answered.
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Message string `json:"message,omitempty"`
}

// Health godoc
// @Summary      Liveness probe
// @Description  Runs SELECT 1 against the database.
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      500  {object}  HealthResponse
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	if err := database.Ping(c.Request.Context(), h.db); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, HealthResponse{Status: "error", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
