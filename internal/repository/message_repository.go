package repository

import (
	"gorm.io/gorm"

	"github.com/amaan1133/eagle/internal/models"
)

// GormMessageRepository is a GORM implementation of MessageRepository.
type GormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &GormMessageRepository{db: db}
}

// CreateBroadcast appends a company-wide message.
func (r *GormMessageRepository) CreateBroadcast(msg *models.Message) error {
	return r.db.Create(msg).Error
}

// CreatePrivate appends a private message.
func (r *GormMessageRepository) CreatePrivate(msg *models.PrivateMessage) error {
	return r.db.Create(msg).Error
}

// ListByCompany returns the newest limit broadcast messages of one company.
// Storage order is newest-first under the limit; the slice is reversed so
// display order is chronological.
func (r *GormMessageRepository) ListByCompany(companyID uint64, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Preload("Author").
		Where("company_id = ?", companyID).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	reverseMessages(messages)
	return messages, nil
}

// ListAllCompanies returns the newest limit broadcast messages across every
// company in chronological order.
func (r *GormMessageRepository) ListAllCompanies(limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Preload("Author").Preload("Company").
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	reverseMessages(messages)
	return messages, nil
}

// ListThread returns the newest limit messages between two users, in either
// direction, in chronological order.
func (r *GormMessageRepository) ListThread(userA, userB uint64, limit int) ([]models.PrivateMessage, error) {
	var messages []models.PrivateMessage
	err := r.db.Preload("Sender").Preload("Receiver").
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	reversePrivate(messages)
	return messages, nil
}

// ListVisiblePrivate returns the private messages a user may browse. Admins
// see everything; everyone else only the threads where the counterpart is an
// Admin. The role predicate is part of the query, not a post-filter.
func (r *GormMessageRepository) ListVisiblePrivate(userID uint64, isAdmin bool, limit int) ([]models.PrivateMessage, error) {
	var messages []models.PrivateMessage
	query := r.db.Preload("Sender").Preload("Receiver")

	if !isAdmin {
		adminRole := models.RoleAdmin
		query = query.
			Joins("JOIN users AS senders ON senders.id = private_messages.sender_id").
			Joins("JOIN users AS receivers ON receivers.id = private_messages.receiver_id").
			Where("(private_messages.sender_id = ? AND receivers.role = ?) OR (private_messages.receiver_id = ? AND senders.role = ?)",
				userID, adminRole, userID, adminRole)
	}

	err := query.Order("private_messages.timestamp DESC, private_messages.id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	reversePrivate(messages)
	return messages, nil
}

func reverseMessages(msgs []models.Message) {
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
}

func reversePrivate(msgs []models.PrivateMessage) {
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
}
