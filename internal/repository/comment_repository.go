package repository

import (
	"gorm.io/gorm"

	"github.com/amaan1133/eagle/internal/models"
)

// GormCommentRepository is a GORM implementation of CommentRepository.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// Create appends a comment.
func (r *GormCommentRepository) Create(comment *models.TaskComment) error {
	return r.db.Create(comment).Error
}

// ListByTask lists a task's comments newest first, authors preloaded.
func (r *GormCommentRepository) ListByTask(taskID uint64) ([]models.TaskComment, error) {
	var comments []models.TaskComment
	err := r.db.Preload("Author").
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// MarkRead marks every comment on the task not authored by the viewer as
// read. The flag is per-task, not per-reader.
func (r *GormCommentRepository) MarkRead(taskID, viewerID uint64) error {
	return r.db.Model(&models.TaskComment{}).
		Where("task_id = ? AND user_id <> ?", taskID, viewerID).
		Update("is_read", true).Error
}

// CountUnreadForAssignee counts unread comments by others on tasks assigned
// to the user within the company.
func (r *GormCommentRepository) CountUnreadForAssignee(userID, companyID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.TaskComment{}).
		Joins("JOIN tasks ON tasks.id = task_comments.task_id").
		Where("tasks.assigned_to = ? AND tasks.company_id = ?", userID, companyID).
		Where("task_comments.user_id <> ? AND task_comments.is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// CountUnreadForCompany counts unread comments by others across every task of
// the company (the admin view).
func (r *GormCommentRepository) CountUnreadForCompany(viewerID, companyID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.TaskComment{}).
		Joins("JOIN tasks ON tasks.id = task_comments.task_id").
		Where("tasks.company_id = ?", companyID).
		Where("task_comments.user_id <> ? AND task_comments.is_read = ?", viewerID, false).
		Count(&count).Error
	return count, err
}
