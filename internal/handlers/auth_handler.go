package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/amaan1133/eagle/internal/apperrors"
	"github.com/amaan1133/eagle/internal/constants"
	"github.com/amaan1133/eagle/internal/dto"
	"github.com/amaan1133/eagle/internal/middleware"
	"github.com/amaan1133/eagle/internal/services"
)

// AuthHandler handles login, logout and the current-user endpoint.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
	CompanyID  uint64 `json:"company_id"`
}

// Login verifies credentials, establishes the session and returns a bearer
// token for cookie-less clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "identifier and password are required")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Identifier: req.Identifier,
		Password:   req.Password,
		CompanyID:  req.CompanyID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountDeactivated):
			apperrors.Unauthorized(c, "This account has been deactivated")
		case errors.Is(err, services.ErrWrongCompany):
			apperrors.Unauthorized(c, "Invalid company selection")
		case errors.Is(err, services.ErrInvalidCredentials):
			apperrors.Unauthorized(c, "Invalid username or password")
		default:
			apperrors.Respond(c, err)
		}
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apperrors.Respond(c, err)
		return
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  dto.ToUserResponse(user),
		"token": token,
	})
}

// Logout clears the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	user, err := h.authService.GetUser(actor.ID)
	if err != nil {
		apperrors.Respond(c, apperrors.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
