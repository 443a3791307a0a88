package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amaan1133/eagle/internal/apperrors"
	"github.com/amaan1133/eagle/internal/dto"
	"github.com/amaan1133/eagle/internal/middleware"
	"github.com/amaan1133/eagle/internal/services"
)

// CommentHandler handles task comment endpoints.
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type addCommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// Add appends a comment to a visible task.
func (h *CommentHandler) Add(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "comment is required")
		return
	}

	comment, err := h.commentService.Add(actor, taskID, req.Comment)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// List returns a task's comments and marks the others' comments read.
func (h *CommentHandler) List(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	comments, err := h.commentService.List(actor, taskID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCommentResponses(comments))
}

// UnreadCount returns the actor's role-dependent unread comment count.
func (h *CommentHandler) UnreadCount(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	count, err := h.commentService.UnreadCount(actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}
