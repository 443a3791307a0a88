package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amaan1133/eagle/internal/apperrors"
	"github.com/amaan1133/eagle/internal/middleware"
	"github.com/amaan1133/eagle/internal/services"
)

// NotificationHandler handles notification and push subscription endpoints.
type NotificationHandler struct {
	notificationService *services.NotificationService
	telegramBotUsername string
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *services.NotificationService, telegramBotUsername string) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		telegramBotUsername: telegramBotUsername,
	}
}

// TelegramBot returns the bot username a user must message to link their
// account for Telegram delivery.
func (h *NotificationHandler) TelegramBot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"bot_username": h.telegramBotUsername})
}

// List returns the actor's notifications, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	limit, _ := strconv.Atoi(c.Query("limit"))

	notifications, err := h.notificationService.List(actor, limit)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// Subscription returns the actor's current push subscription.
func (h *NotificationHandler) Subscription(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	sub, err := h.notificationService.Subscription(actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

type subscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

// Subscribe replaces the actor's web-push subscription.
func (h *NotificationHandler) Subscribe(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "endpoint is required")
		return
	}

	if err := h.notificationService.Subscribe(actor, services.SubscribeInput{
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
	}); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "subscribed"})
}
