package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amaan1133/eagle/internal/apperrors"
	"github.com/amaan1133/eagle/internal/dto"
	"github.com/amaan1133/eagle/internal/middleware"
	"github.com/amaan1133/eagle/internal/models"
	"github.com/amaan1133/eagle/internal/services"
)

// UserHandler handles user management endpoints.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

type createUserRequest struct {
	Username     string `json:"username" binding:"required"`
	Password     string `json:"password" binding:"required"`
	Role         string `json:"role" binding:"required"`
	CompanyID    uint64 `json:"company_id" binding:"required"`
	MobileNumber string `json:"mobile_number"`
}

// Create registers a new user. Admin only.
func (h *UserHandler) Create(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "username, password, role and company_id are required")
		return
	}

	user, err := h.userService.Create(actor, services.CreateUserInput{
		Username:     req.Username,
		Password:     req.Password,
		Role:         models.Role(req.Role),
		CompanyID:    req.CompanyID,
		MobileNumber: req.MobileNumber,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// ListCompany returns the actor's company's users.
func (h *UserHandler) ListCompany(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	users, err := h.userService.ListCompanyUsers(actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// ListAll returns every user across companies. Admin only.
func (h *UserHandler) ListAll(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	users, err := h.userService.ListAllUsers(actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// Deactivate disables a user's login. Admin only; not on yourself.
func (h *UserHandler) Deactivate(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.userService.Deactivate(actor, id); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deactivated"})
}

// Reactivate re-enables a user's login. Admin only.
func (h *UserHandler) Reactivate(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.userService.Reactivate(actor, id); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user reactivated"})
}

// Delete removes a user with no assigned tasks. Admin only; not on yourself.
func (h *UserHandler) Delete(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.userService.Delete(actor, id); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

type updateContactRequest struct {
	MobileNumber   *string `json:"mobile_number"`
	TelegramChatID *string `json:"telegram_chat_id"`
}

// UpdateContact lets the actor change their own notification endpoints.
func (h *UserHandler) UpdateContact(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req updateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "invalid request body")
		return
	}
	if req.MobileNumber == nil && req.TelegramChatID == nil {
		apperrors.BadRequest(c, "nothing to update")
		return
	}

	if err := h.userService.UpdateContact(actor, services.UpdateContactInput{
		MobileNumber:   req.MobileNumber,
		TelegramChatID: req.TelegramChatID,
	}); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "contact updated"})
}
