package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amaan1133/eagle/internal/apperrors"
	"github.com/amaan1133/eagle/internal/constants"
	"github.com/amaan1133/eagle/internal/dto"
	"github.com/amaan1133/eagle/internal/middleware"
	"github.com/amaan1133/eagle/internal/models"
	"github.com/amaan1133/eagle/internal/services"
)

// AttachmentHandler handles task file attachment endpoints.
type AttachmentHandler struct {
	attachmentService *services.AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler.
func NewAttachmentHandler(attachmentService *services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// Upload stores a multipart file against a task.
func (h *AttachmentHandler) Upload(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.BadRequest(c, "file is required")
		return
	}
	if fileHeader.Size > constants.MaxUploadBytes {
		apperrors.BadRequest(c, "file exceeds the upload size limit")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	defer f.Close()

	attachment, err := h.attachmentService.Upload(actor, services.UploadInput{
		TaskID:     taskID,
		Filename:   fileHeader.Filename,
		Size:       fileHeader.Size,
		Content:    f,
		UploadType: models.UploadType(c.PostForm("upload_type")),
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, attachment)
}

// List returns a task's attachments.
func (h *AttachmentHandler) List(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	attachments, err := h.attachmentService.List(actor, taskID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAttachmentResponses(attachments))
}

// Download streams an attachment's content under its original filename.
func (h *AttachmentHandler) Download(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	attachment, f, err := h.attachmentService.Download(actor, id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	defer f.Close()

	c.FileAttachment(f.Name(), attachment.OriginalFilename)
}

// Delete removes an attachment the actor uploaded, or any attachment for an
// admin.
func (h *AttachmentHandler) Delete(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.attachmentService.Delete(actor, id); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "attachment deleted"})
}
