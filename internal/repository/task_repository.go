package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/amaan1133/eagle/internal/apperrors"
	"github.com/amaan1133/eagle/internal/database"
	"github.com/amaan1133/eagle/internal/lifecycle"
	"github.com/amaan1133/eagle/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository.
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task.
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindInCompany finds a task by ID scoped to a company.
func (r *GormTaskRepository) FindInCompany(id, companyID uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db.Where("id = ? AND company_id = ?", id, companyID)
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindOwned finds a task by ID scoped to assignee and company.
func (r *GormTaskRepository) FindOwned(id, ownerID, companyID uint64) (*models.Task, error) {
	var task models.Task
	err := r.db.Where("id = ? AND assigned_to = ? AND company_id = ?", id, ownerID, companyID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByCompany lists a company's tasks, soonest deadline first with undated
// tasks last, newest created first within equal deadlines.
func (r *GormTaskRepository) ListByCompany(companyID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Preload("Assignee").
		Where("company_id = ?", companyID).
		Order("CASE WHEN deadline IS NULL THEN 1 ELSE 0 END, deadline ASC, created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListOwned lists the tasks assigned to one user in one company, newest first.
func (r *GormTaskRepository) ListOwned(ownerID, companyID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Preload("Assignee").
		Where("assigned_to = ? AND company_id = ?", ownerID, companyID).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateOwnedStatus applies an assignee transition. Ownership, tenant scope
// and the terminal-state lock are all checked inside the transaction that
// performs the write, so a concurrent completion cannot invalidate the check.
func (r *GormTaskRepository) UpdateOwnedStatus(id, ownerID, companyID uint64, to models.TaskStatus) (*models.Task, error) {
	var task models.Task
	err := database.WithRetry(func() error {
		return r.updateOwnedStatusTx(&task, id, ownerID, companyID, to)
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *GormTaskRepository) updateOwnedStatusTx(task *models.Task, id, ownerID, companyID uint64, to models.TaskStatus) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND assigned_to = ? AND company_id = ?", id, ownerID, companyID).
			First(task).Error
		if err != nil {
			return err
		}

		if !lifecycle.CanTransition(task.Status, to) {
			if lifecycle.Terminal(task.Status) {
				return fmt.Errorf("%w: task is completed", apperrors.ErrForbidden)
			}
			return fmt.Errorf("%w: cannot move task from %s to %s", apperrors.ErrForbidden, task.Status, to)
		}

		task.Status = to
		if err := tx.Save(task).Error; err != nil {
			return apperrors.NewStorageError("update task status", err)
		}
		return nil
	})
}

// AdminUpdate applies a partial update scoped to a company. Only present
// patch fields are written; a reassignment is validated against the same
// company inside the transaction. UpdatedAt is always bumped.
func (r *GormTaskRepository) AdminUpdate(id, companyID uint64, patch TaskPatch) (*models.Task, error) {
	var task models.Task
	err := database.WithRetry(func() error {
		return r.db.Transaction(func(tx *gorm.DB) error {
			err := tx.Where("id = ? AND company_id = ?", id, companyID).First(&task).Error
			if err != nil {
				return err
			}

			if patch.Title != nil {
				if *patch.Title == "" {
					return fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidation)
				}
				task.Title = *patch.Title
			}
			if patch.Description != nil {
				task.Description = *patch.Description
			}
			if patch.AssignedTo != nil {
				var assignee models.User
				err := tx.Where("id = ? AND company_id = ?", *patch.AssignedTo, companyID).
					First(&assignee).Error
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("%w: assignee does not belong to this company", apperrors.ErrValidation)
					}
					return apperrors.NewStorageError("check assignee", err)
				}
				task.AssignedTo = *patch.AssignedTo
			}
			if patch.ClearStartDate {
				task.StartDate = nil
			} else if patch.StartDate != nil {
				task.StartDate = patch.StartDate
			}
			if patch.ClearDeadline {
				task.Deadline = nil
			} else if patch.Deadline != nil {
				task.Deadline = patch.Deadline
			}
			if patch.Priority != nil {
				if !patch.Priority.Valid() {
					return fmt.Errorf("%w: unknown priority %q", apperrors.ErrValidation, *patch.Priority)
				}
				task.Priority = *patch.Priority
			}
			if patch.Status != nil {
				// Admin force-set: the lifecycle engine is deliberately bypassed.
				if !patch.Status.Valid() {
					return fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, *patch.Status)
				}
				task.Status = *patch.Status
			}

			if err := tx.Save(&task).Error; err != nil {
				return apperrors.NewStorageError("update task", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes a task and cascades its comments and attachments.
func (r *GormTaskRepository) Delete(id, companyID uint64) error {
	return database.WithRetry(func() error {
		return r.deleteTx(id, companyID)
	})
}

func (r *GormTaskRepository) deleteTx(id, companyID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Where("id = ? AND company_id = ?", id, companyID).First(&task).Error; err != nil {
			return err
		}

		if err := tx.Where("task_id = ?", id).Delete(&models.TaskComment{}).Error; err != nil {
			return apperrors.NewStorageError("delete task comments", err)
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.Attachment{}).Error; err != nil {
			return apperrors.NewStorageError("delete task attachments", err)
		}
		if err := tx.Delete(&models.Task{}, id).Error; err != nil {
			return apperrors.NewStorageError("delete task", err)
		}
		return nil
	})
}

// CountAssignedTo counts tasks assigned to a user.
func (r *GormTaskRepository) CountAssignedTo(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).Where("assigned_to = ?", userID).Count(&count).Error
	return count, err
}
