package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/amaan1133/eagle/internal/apperrors"
	"github.com/amaan1133/eagle/internal/models"
	"github.com/amaan1133/eagle/internal/policy"
	"github.com/amaan1133/eagle/internal/repository"
)

// ReminderService provides company reminder operations. All mutations are
// admin only; reads are company wide.
type ReminderService struct {
	reminderRepo repository.ReminderRepository
}

// NewReminderService creates a new ReminderService.
func NewReminderService(reminderRepo repository.ReminderRepository) *ReminderService {
	return &ReminderService{reminderRepo: reminderRepo}
}

// CreateReminderInput holds the fields for a new reminder.
type CreateReminderInput struct {
	Title           string
	Description     string
	RemindOn        time.Time
	AlertDaysBefore int
}

// Create adds a reminder to the actor's company. Admin only.
func (s *ReminderService) Create(actor policy.Actor, input CreateReminderInput) (*models.Reminder, error) {
	if !policy.Allowed(actor, policy.ActionManageReminders) {
		return nil, apperrors.ErrUnauthorized
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}
	if input.RemindOn.IsZero() {
		return nil, fmt.Errorf("%w: reminder date is required", apperrors.ErrValidation)
	}
	if input.AlertDaysBefore < 0 {
		return nil, fmt.Errorf("%w: alert days must not be negative", apperrors.ErrValidation)
	}
	if input.AlertDaysBefore == 0 {
		input.AlertDaysBefore = 1
	}

	reminder := &models.Reminder{
		Title:           input.Title,
		Description:     input.Description,
		RemindOn:        input.RemindOn,
		AlertDaysBefore: input.AlertDaysBefore,
		IsActive:        true,
		CompanyID:       actor.CompanyID,
		CreatedBy:       actor.ID,
	}
	if err := s.reminderRepo.Create(reminder); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	return reminder, nil
}

// List returns the actor's company's active reminders, soonest first.
func (s *ReminderService) List(actor policy.Actor) ([]models.Reminder, error) {
	reminders, err := s.reminderRepo.ListActive(actor.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return reminders, nil
}

// Upcoming returns the active reminders whose alert window covers today.
func (s *ReminderService) Upcoming(actor policy.Actor) ([]models.Reminder, error) {
	reminders, err := s.reminderRepo.ListUpcoming(actor.CompanyID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return reminders, nil
}

// Delete deactivates a reminder in the actor's company. Admin only.
func (s *ReminderService) Delete(actor policy.Actor, reminderID uint64) error {
	if !policy.Allowed(actor, policy.ActionManageReminders) {
		return apperrors.ErrUnauthorized
	}
	if err := s.reminderRepo.Deactivate(reminderID, actor.CompanyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return nil
}
