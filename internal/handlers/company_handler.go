package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amaan1133/eagle/internal/apperrors"
	"github.com/amaan1133/eagle/internal/middleware"
	"github.com/amaan1133/eagle/internal/services"
)

// CompanyHandler handles company endpoints.
type CompanyHandler struct {
	companyService *services.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companyService *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

type createCompanyRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create registers a new company. Admin only.
func (h *CompanyHandler) Create(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "name is required")
		return
	}

	company, err := h.companyService.Create(actor, req.Name)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

// List returns every company. This endpoint backs the login form, so it is
// reachable without authentication and exposes ids and names only.
func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companyService.List()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}
