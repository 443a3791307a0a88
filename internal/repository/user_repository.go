package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/amaan1133/eagle/internal/apperrors"
	"github.com/amaan1133/eagle/internal/database"
	"github.com/amaan1133/eagle/internal/models"
)

// GormUserRepository is a GORM implementation of UserRepository.
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user.
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID.
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIdentifier finds a user by username or mobile number. Login accepts
// either, so both columns are matched.
func (r *GormUserRepository) FindByIdentifier(identifier string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ? OR (mobile_number <> '' AND mobile_number = ?)", identifier, identifier).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindInCompany finds a user by ID scoped to a company.
func (r *GormUserRepository) FindInCompany(id, companyID uint64) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ? AND company_id = ?", id, companyID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListByCompany lists users of one company.
func (r *GormUserRepository) ListByCompany(companyID uint64) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("company_id = ?", companyID).
		Order("username").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ListAll lists every user with their company preloaded, grouped by company
// name then username.
func (r *GormUserRepository) ListAll() ([]models.User, error) {
	var users []models.User
	err := r.db.Preload("Company").
		Joins("JOIN companies ON companies.id = users.company_id").
		Order("companies.name, users.username").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// SetActive flips the is_active flag.
func (r *GormUserRepository) SetActive(id uint64, active bool) error {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateContact sets the mobile number and/or telegram chat id.
func (r *GormUserRepository) UpdateContact(id uint64, mobileNumber, telegramChatID *string) error {
	updates := map[string]interface{}{}
	if mobileNumber != nil {
		updates["mobile_number"] = *mobileNumber
	}
	if telegramChatID != nil {
		updates["telegram_chat_id"] = *telegramChatID
	}
	if len(updates) == 0 {
		return nil
	}

	res := r.db.Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a user and everything hanging off them in one transaction.
// The dependent-task check happens inside the transaction: a task assigned
// concurrently cannot be orphaned.
func (r *GormUserRepository) Delete(id uint64) error {
	return database.WithRetry(func() error {
		return r.deleteTx(id)
	})
}

func (r *GormUserRepository) deleteTx(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}

		var taskCount int64
		if err := tx.Model(&models.Task{}).Where("assigned_to = ?", id).Count(&taskCount).Error; err != nil {
			return apperrors.NewStorageError("count assigned tasks", err)
		}
		if taskCount > 0 {
			return fmt.Errorf("%w: user has %d assigned tasks, deactivate instead", apperrors.ErrHasDependents, taskCount)
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.TaskComment{}).Error; err != nil {
			return apperrors.NewStorageError("delete comments", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return apperrors.NewStorageError("delete messages", err)
		}
		if err := tx.Where("sender_id = ? OR receiver_id = ?", id, id).Delete(&models.PrivateMessage{}).Error; err != nil {
			return apperrors.NewStorageError("delete private messages", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.PushSubscription{}).Error; err != nil {
			return apperrors.NewStorageError("delete push subscriptions", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return apperrors.NewStorageError("delete notifications", err)
		}

		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return apperrors.NewStorageError("delete user", err)
		}
		return nil
	})
}
