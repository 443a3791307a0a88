package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/amaan1133/eagle/internal/apperrors"
	"github.com/amaan1133/eagle/internal/constants"
	"github.com/amaan1133/eagle/internal/models"
	"github.com/amaan1133/eagle/internal/policy"
	"github.com/amaan1133/eagle/internal/repository"
)

// MessageService provides the company broadcast and private messaging
// operations on the append-only message log.
type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	notifier    Notifier
	broadcaster Broadcaster
}

// NewMessageService creates a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository, notifier Notifier, broadcaster Broadcaster) *MessageService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if broadcaster == nil {
		broadcaster = NopBroadcaster{}
	}
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		broadcaster: broadcaster,
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return constants.DefaultMessageLimit
	}
	if limit > constants.MaxMessageLimit {
		return constants.MaxMessageLimit
	}
	return limit
}

// PostCompany appends a broadcast message to the actor's company and fans it
// out to the company room.
func (s *MessageService) PostCompany(actor policy.Actor, body string) (*models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: message body is required", apperrors.ErrValidation)
	}

	msg := &models.Message{
		UserID:    actor.ID,
		CompanyID: actor.CompanyID,
		Body:      body,
	}
	if err := s.messageRepo.CreateBroadcast(msg); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	s.broadcaster.ToCompany(actor.CompanyID, "new_message", map[string]interface{}{
		"id":        msg.ID,
		"user_id":   msg.UserID,
		"username":  actor.Username,
		"message":   msg.Body,
		"timestamp": msg.Timestamp,
	})

	return msg, nil
}

// PostPrivate appends a private message to another user, delivers it to both
// user rooms and notifies the receiver. Any actor may message any existing
// user; the Admin-participant rule applies only when threads are read back.
func (s *MessageService) PostPrivate(actor policy.Actor, receiverID uint64, body string) (*models.PrivateMessage, error) {
	if !policy.Allowed(actor, policy.ActionSendPrivateMessage) {
		return nil, apperrors.ErrUnauthorized
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: message body is required", apperrors.ErrValidation)
	}
	if receiverID == actor.ID {
		return nil, fmt.Errorf("%w: cannot message yourself", apperrors.ErrValidation)
	}

	receiver, err := s.userRepo.FindByID(receiverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find receiver: %w", err)
	}

	msg := &models.PrivateMessage{
		SenderID:   actor.ID,
		ReceiverID: receiver.ID,
		Body:       body,
	}
	if err := s.messageRepo.CreatePrivate(msg); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	payload := map[string]interface{}{
		"id":          msg.ID,
		"sender_id":   msg.SenderID,
		"sender_name": actor.Username,
		"receiver_id": msg.ReceiverID,
		"message":     msg.Body,
		"timestamp":   msg.Timestamp,
	}
	s.broadcaster.ToUser(receiver.ID, "new_private_message", payload)
	s.broadcaster.ToUser(actor.ID, "new_private_message", payload)
	s.notifier.Notify(receiver.ID, fmt.Sprintf("New private message from %s", actor.Username))

	return msg, nil
}

// ListCompany returns the newest limit broadcast messages of the actor's
// company in chronological order.
func (s *MessageService) ListCompany(actor policy.Actor, limit int) ([]models.Message, error) {
	if !policy.Allowed(actor, policy.ActionViewCompanyMessages) {
		return nil, apperrors.ErrUnauthorized
	}
	msgs, err := s.messageRepo.ListByCompany(actor.CompanyID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}

// ListAllCompanies returns the newest limit broadcast messages across every
// company. Admin only.
func (s *MessageService) ListAllCompanies(actor policy.Actor, limit int) ([]models.Message, error) {
	if !policy.Allowed(actor, policy.ActionViewAllMessages) {
		return nil, apperrors.ErrUnauthorized
	}
	msgs, err := s.messageRepo.ListAllCompanies(clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}

// ListThread returns the actor's private thread with another user in
// chronological order. Non-admins may only open threads whose counterpart
// is an Admin.
func (s *MessageService) ListThread(actor policy.Actor, otherID uint64, limit int) ([]models.PrivateMessage, error) {
	other, err := s.userRepo.FindByID(otherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !policy.CanViewPrivateThread(actor, *other) {
		return nil, apperrors.ErrForbidden
	}

	msgs, err := s.messageRepo.ListThread(actor.ID, other.ID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}

// ListVisiblePrivate returns the private messages the actor may browse:
// everything for an admin, otherwise only their Admin-counterpart threads.
func (s *MessageService) ListVisiblePrivate(actor policy.Actor, limit int) ([]models.PrivateMessage, error) {
	msgs, err := s.messageRepo.ListVisiblePrivate(actor.ID, actor.IsAdmin(), clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}
