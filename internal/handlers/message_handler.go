package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amaan1133/eagle/internal/apperrors"
	"github.com/amaan1133/eagle/internal/dto"
	"github.com/amaan1133/eagle/internal/middleware"
	"github.com/amaan1133/eagle/internal/services"
)

// MessageHandler handles broadcast and private messaging endpoints.
type MessageHandler struct {
	messageService *services.MessageService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func queryLimit(c *gin.Context) int {
	limit, _ := strconv.Atoi(c.Query("limit"))
	return limit
}

type postMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// PostCompany appends a broadcast message to the actor's company.
func (h *MessageHandler) PostCompany(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "message is required")
		return
	}

	msg, err := h.messageService.PostCompany(actor, req.Message)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// ListCompany returns the actor's company's broadcast log, oldest first
// within the newest window. Admins may pass all=true for every company.
func (h *MessageHandler) ListCompany(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	limit := queryLimit(c)

	if c.Query("all") == "true" {
		msgs, err := h.messageService.ListAllCompanies(actor, limit)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToMessageResponses(msgs))
		return
	}

	msgs, err := h.messageService.ListCompany(actor, limit)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMessageResponses(msgs))
}

type postPrivateRequest struct {
	ReceiverID uint64 `json:"receiver_id" binding:"required"`
	Message    string `json:"message" binding:"required"`
}

// PostPrivate sends a private message.
func (h *MessageHandler) PostPrivate(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req postPrivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "receiver_id and message are required")
		return
	}

	msg, err := h.messageService.PostPrivate(actor, req.ReceiverID, req.Message)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// ListThread returns the actor's private thread with another user.
func (h *MessageHandler) ListThread(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	otherID, ok := pathID(c, "id")
	if !ok {
		return
	}

	msgs, err := h.messageService.ListThread(actor, otherID, queryLimit(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPrivateMessageResponses(msgs))
}

// ListPrivate returns the private messages the actor may browse.
func (h *MessageHandler) ListPrivate(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	msgs, err := h.messageService.ListVisiblePrivate(actor, queryLimit(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPrivateMessageResponses(msgs))
}
