package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amaan1133/eagle/internal/apperrors"
	"github.com/amaan1133/eagle/internal/middleware"
	"github.com/amaan1133/eagle/internal/services"
)

// ReminderHandler handles company reminder endpoints.
type ReminderHandler struct {
	reminderService *services.ReminderService
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminderService *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

type createReminderRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	ReminderDate    string `json:"reminder_date" binding:"required"`
	AlertDaysBefore int    `json:"alert_days_before"`
}

// Create adds a reminder to the actor's company. Admin only.
func (h *ReminderHandler) Create(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req createReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "title and reminder_date are required")
		return
	}

	remindOn, err := time.Parse(dateLayout, req.ReminderDate)
	if err != nil {
		apperrors.BadRequest(c, "reminder_date must be YYYY-MM-DD")
		return
	}

	reminder, err := h.reminderService.Create(actor, services.CreateReminderInput{
		Title:           req.Title,
		Description:     req.Description,
		RemindOn:        remindOn,
		AlertDaysBefore: req.AlertDaysBefore,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, reminder)
}

// List returns the company's active reminders.
func (h *ReminderHandler) List(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	reminders, err := h.reminderService.List(actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, reminders)
}

// Upcoming returns the reminders whose alert window covers today.
func (h *ReminderHandler) Upcoming(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	reminders, err := h.reminderService.Upcoming(actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, reminders)
}

// Delete deactivates a reminder. Admin only.
func (h *ReminderHandler) Delete(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.reminderService.Delete(actor, id); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reminder deleted"})
}
