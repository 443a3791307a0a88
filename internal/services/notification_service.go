package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/amaan1133/eagle/internal/apperrors"
	"github.com/amaan1133/eagle/internal/models"
	"github.com/amaan1133/eagle/internal/policy"
	"github.com/amaan1133/eagle/internal/repository"
)

// NotificationService exposes a user's stored notifications and their push
// subscription.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List returns the actor's own notifications, newest first.
func (s *NotificationService) List(actor policy.Actor, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	notifications, err := s.notificationRepo.ListByUser(actor.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// SubscribeInput holds an incoming web-push subscription.
type SubscribeInput struct {
	Endpoint string
	P256dh   string
	Auth     string
}

// Subscription returns the actor's current push subscription, or NotFound
// when they never subscribed.
func (s *NotificationService) Subscription(actor policy.Actor) (*models.PushSubscription, error) {
	sub, err := s.notificationRepo.FindSubscription(actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}
	return sub, nil
}

// Subscribe replaces the actor's push subscription.
func (s *NotificationService) Subscribe(actor policy.Actor, input SubscribeInput) error {
	if strings.TrimSpace(input.Endpoint) == "" {
		return fmt.Errorf("%w: endpoint is required", apperrors.ErrValidation)
	}
	sub := &models.PushSubscription{
		UserID:   actor.ID,
		Endpoint: input.Endpoint,
		P256dh:   input.P256dh,
		Auth:     input.Auth,
	}
	if err := s.notificationRepo.ReplaceSubscription(sub); err != nil {
		return fmt.Errorf("failed to store subscription: %w", err)
	}
	return nil
}
