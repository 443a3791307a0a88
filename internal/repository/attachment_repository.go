package repository

import (
	"gorm.io/gorm"

	"github.com/amaan1133/eagle/internal/models"
)

// GormAttachmentRepository is a GORM implementation of AttachmentRepository.
type GormAttachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository creates a new AttachmentRepository.
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &GormAttachmentRepository{db: db}
}

// Create records an uploaded file.
func (r *GormAttachmentRepository) Create(attachment *models.Attachment) error {
	return r.db.Create(attachment).Error
}

// FindByID finds an attachment by ID.
func (r *GormAttachmentRepository) FindByID(id uint64) (*models.Attachment, error) {
	var attachment models.Attachment
	if err := r.db.First(&attachment, id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

// ListByTask lists a task's attachments newest first.
func (r *GormAttachmentRepository) ListByTask(taskID uint64) ([]models.Attachment, error) {
	var attachments []models.Attachment
	err := r.db.Preload("Uploader").
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&attachments).Error
	if err != nil {
		return nil, err
	}
	return attachments, nil
}

// DeleteOwned removes an attachment if uploaded by the given user and
// returns the removed row so the caller can unlink the stored file.
func (r *GormAttachmentRepository) DeleteOwned(id, uploaderID uint64) (*models.Attachment, error) {
	var attachment models.Attachment
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND uploaded_by = ?", id, uploaderID).First(&attachment).Error
		if err != nil {
			return err
		}
		return tx.Delete(&models.Attachment{}, attachment.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}
