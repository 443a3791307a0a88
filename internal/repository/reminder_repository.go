package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/amaan1133/eagle/internal/models"
)

// GormReminderRepository is a GORM implementation of ReminderRepository.
type GormReminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new ReminderRepository.
func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &GormReminderRepository{db: db}
}

// Create creates a reminder.
func (r *GormReminderRepository) Create(reminder *models.Reminder) error {
	return r.db.Create(reminder).Error
}

// ListActive lists a company's active reminders, soonest first.
func (r *GormReminderRepository) ListActive(companyID uint64) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := r.db.Preload("Creator").
		Where("company_id = ? AND is_active = ?", companyID, true).
		Order("remind_on ASC").
		Find(&reminders).Error
	if err != nil {
		return nil, err
	}
	return reminders, nil
}

// ListUpcoming lists active reminders whose alert window covers today:
// remind_on is no earlier than today and no further out than the per-row
// alert lead time.
func (r *GormReminderRepository) ListUpcoming(companyID uint64, today time.Time) ([]models.Reminder, error) {
	startOfDay := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	var candidates []models.Reminder
	err := r.db.Where("company_id = ? AND is_active = ? AND remind_on >= ?", companyID, true, startOfDay).
		Order("remind_on ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	// The lead time is per row, so the upper bound cannot be a single query
	// constant; the scoped candidate set is filtered here.
	upcoming := make([]models.Reminder, 0, len(candidates))
	for _, rem := range candidates {
		cutoff := startOfDay.AddDate(0, 0, rem.AlertDaysBefore)
		if !rem.RemindOn.After(cutoff) {
			upcoming = append(upcoming, rem)
		}
	}
	return upcoming, nil
}

// Deactivate soft-deletes a reminder scoped to a company.
func (r *GormReminderRepository) Deactivate(id, companyID uint64) error {
	res := r.db.Model(&models.Reminder{}).
		Where("id = ? AND company_id = ?", id, companyID).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
