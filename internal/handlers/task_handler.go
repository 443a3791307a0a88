package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amaan1133/eagle/internal/apperrors"
	"github.com/amaan1133/eagle/internal/dto"
	"github.com/amaan1133/eagle/internal/middleware"
	"github.com/amaan1133/eagle/internal/models"
	"github.com/amaan1133/eagle/internal/repository"
	"github.com/amaan1133/eagle/internal/services"
)

const dateLayout = "2006-01-02"

// TaskHandler handles task endpoints.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type assignTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	AssignedTo  uint64 `json:"assigned_to" binding:"required"`
	Priority    string `json:"priority"`
	StartDate   string `json:"start_date"`
	Deadline    string `json:"deadline"`
}

// Assign creates a task for a user in the actor's company. Admin only.
func (h *TaskHandler) Assign(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req assignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "title and assigned_to are required")
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		apperrors.BadRequest(c, "start_date must be YYYY-MM-DD")
		return
	}
	deadline, err := parseDate(req.Deadline)
	if err != nil {
		apperrors.BadRequest(c, "deadline must be YYYY-MM-DD")
		return
	}

	task, err := h.taskService.Assign(actor, services.AssignTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Priority:    models.TaskPriority(req.Priority),
		StartDate:   startDate,
		Deadline:    deadline,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTaskResponse(task))
}

// List returns the actor's visible tasks: the whole company for admins, own
// tasks otherwise.
func (h *TaskHandler) List(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	tasks, err := h.taskService.ListVisible(actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskResponses(tasks))
}

// Get returns a single visible task.
func (h *TaskHandler) Get(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	task, err := h.taskService.Get(actor, id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus applies an assignee status transition on the actor's own task.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "status is required")
		return
	}

	task, err := h.taskService.UpdateOwnStatus(actor, id, models.TaskStatus(req.Status))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

type adminUpdateTaskRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	AssignedTo    *uint64 `json:"assigned_to"`
	Priority      *string `json:"priority"`
	Status        *string `json:"status"`
	StartDate     *string `json:"start_date"`
	ClearStart    bool    `json:"clear_start_date"`
	Deadline      *string `json:"deadline"`
	ClearDeadline bool    `json:"clear_deadline"`
}

// AdminUpdate applies a partial task update. Admin only; absent fields stay
// untouched and status may be forced to any value.
func (h *TaskHandler) AdminUpdate(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req adminUpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "invalid request body")
		return
	}

	patch := repository.TaskPatch{
		Title:          req.Title,
		Description:    req.Description,
		AssignedTo:     req.AssignedTo,
		ClearStartDate: req.ClearStart,
		ClearDeadline:  req.ClearDeadline,
	}
	if req.Priority != nil {
		p := models.TaskPriority(*req.Priority)
		if !p.Valid() {
			apperrors.BadRequest(c, "unknown priority")
			return
		}
		patch.Priority = &p
	}
	if req.Status != nil {
		s := models.TaskStatus(*req.Status)
		if !s.Valid() {
			apperrors.BadRequest(c, "unknown status")
			return
		}
		patch.Status = &s
	}
	if req.StartDate != nil {
		t, err := parseDate(*req.StartDate)
		if err != nil {
			apperrors.BadRequest(c, "start_date must be YYYY-MM-DD")
			return
		}
		patch.StartDate = t
	}
	if req.Deadline != nil {
		t, err := parseDate(*req.Deadline)
		if err != nil {
			apperrors.BadRequest(c, "deadline must be YYYY-MM-DD")
			return
		}
		patch.Deadline = t
	}

	task, err := h.taskService.AdminUpdate(actor, id, patch)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// Delete removes a task and its comments and attachments. Admin only.
func (h *TaskHandler) Delete(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.taskService.AdminDelete(actor, id); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}

// Stats summarizes the actor's visible tasks.
func (h *TaskHandler) Stats(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	stats, err := h.taskService.Stats(actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
