package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"github.com/amaan1133/eagle/internal/apperrors"
	"github.com/amaan1133/eagle/internal/constants"
	"github.com/amaan1133/eagle/internal/models"
	"github.com/amaan1133/eagle/internal/policy"
	"github.com/amaan1133/eagle/internal/repository"
)

// FileStore abstracts where attachment bytes live. The database row is the
// source of truth for metadata; the store only holds content.
type FileStore interface {
	Save(originalFilename string, content io.Reader) (storedName, path string, size int64, err error)
	Open(path string) (*os.File, error)
	Remove(path string) error
}

// AttachmentService provides task attachment operations. Attachment
// visibility follows the owning task's company scope.
type AttachmentService struct {
	attachmentRepo repository.AttachmentRepository
	taskRepo       repository.TaskRepository
	store          FileStore
}

// NewAttachmentService creates a new AttachmentService.
func NewAttachmentService(attachmentRepo repository.AttachmentRepository, taskRepo repository.TaskRepository, store FileStore) *AttachmentService {
	return &AttachmentService{
		attachmentRepo: attachmentRepo,
		taskRepo:       taskRepo,
		store:          store,
	}
}

// companyTask loads a task scoped to the actor's company.
func (s *AttachmentService) companyTask(actor policy.Actor, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindInCompany(taskID, actor.CompanyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// UploadInput holds an incoming file for a task.
type UploadInput struct {
	TaskID     uint64
	Filename   string
	Size       int64
	Content    io.Reader
	UploadType models.UploadType
}

// Upload stores a file against a task in the actor's company.
func (s *AttachmentService) Upload(actor policy.Actor, input UploadInput) (*models.Attachment, error) {
	if !policy.Allowed(actor, policy.ActionUploadAttachment) {
		return nil, apperrors.ErrUnauthorized
	}
	if input.Filename == "" {
		return nil, fmt.Errorf("%w: filename is required", apperrors.ErrValidation)
	}
	if input.Size > constants.MaxUploadBytes {
		return nil, fmt.Errorf("%w: file exceeds the upload size limit", apperrors.ErrValidation)
	}
	if !input.UploadType.Valid() {
		input.UploadType = models.UploadTypeProgress
	}

	task, err := s.companyTask(actor, input.TaskID)
	if err != nil {
		return nil, err
	}

	storedName, path, size, err := s.store.Save(input.Filename, input.Content)
	if err != nil {
		return nil, err
	}

	attachment := &models.Attachment{
		TaskID:           task.ID,
		Filename:         storedName,
		OriginalFilename: input.Filename,
		FilePath:         path,
		FileSize:         size,
		FileType:         strings.TrimPrefix(strings.ToLower(filepath.Ext(input.Filename)), "."),
		UploadedBy:       actor.ID,
		UploadType:       input.UploadType,
	}
	if err := s.attachmentRepo.Create(attachment); err != nil {
		s.store.Remove(path)
		return nil, fmt.Errorf("failed to record attachment: %w", err)
	}
	return attachment, nil
}

// List returns a task's attachments, newest first.
func (s *AttachmentService) List(actor policy.Actor, taskID uint64) ([]models.Attachment, error) {
	task, err := s.companyTask(actor, taskID)
	if err != nil {
		return nil, err
	}
	attachments, err := s.attachmentRepo.ListByTask(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	return attachments, nil
}

// Download opens an attachment's content if its task is in the actor's
// company. The caller owns the returned file.
func (s *AttachmentService) Download(actor policy.Actor, attachmentID uint64) (*models.Attachment, *os.File, error) {
	attachment, err := s.attachmentRepo.FindByID(attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to find attachment: %w", err)
	}
	if _, err := s.companyTask(actor, attachment.TaskID); err != nil {
		return nil, nil, err
	}

	f, err := s.store.Open(attachment.FilePath)
	if err != nil {
		return nil, nil, err
	}
	return attachment, f, nil
}

// Delete removes an attachment the actor uploaded, unlinking the file after
// the row is gone. Admins may remove any attachment in their company.
func (s *AttachmentService) Delete(actor policy.Actor, attachmentID uint64) error {
	attachment, err := s.attachmentRepo.FindByID(attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to find attachment: %w", err)
	}
	if _, err := s.companyTask(actor, attachment.TaskID); err != nil {
		return err
	}

	if !actor.IsAdmin() && attachment.UploadedBy != actor.ID {
		return apperrors.ErrForbidden
	}

	deleted, err := s.attachmentRepo.DeleteOwned(attachment.ID, attachment.UploadedBy)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	return s.store.Remove(deleted.FilePath)
}
