package handler

import (
	"errors"
	"net/http"

	"nexus/backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// CompanyInput is the body of POST /companies.
type CompanyInput struct {
	Name string `json:"name" binding:"required" example:"Acme"`
	Slug string `json:"slug" binding:"required" example:"acme"`
}

// ListCompanies godoc
// @Summary      List companies
// @Description  Lists every company ordered by name, each with the number of games it owns.
// @Tags         companies
// @Produce      json
// @Success      200  {array}   models.CompanyWithCount
// @Failure      500  {object}  ErrorResponse
// @Router       /companies [get]
func (h *Handler) ListCompanies(c *gin.Context) {
	companies, err := h.companies.List(c.Request.Context())
	if err != nil {
		storageFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

// CreateCompany godoc
// @Summary      Create a company
// @Description  Creates a company. The slug must be unique.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        input body CompanyInput true "Company Info"
// @Success      201  {object}  models.Company
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Slug already exists"
// @Failure      413  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /companies [post]
func (h *Handler) CreateCompany(c *gin.Context) {
	var input CompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		if bodyTooLarge(c, err) {
			return
		}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) || isEmptyBody(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and slug required"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company, err := h.companies.Create(c.Request.Context(), input.Name, input.Slug)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "Slug already exists"})
			return
		}
		storageFailure(c, err)
		return
	}

	c.JSON(http.StatusCreated, company)
}
