package models

import "time"

// Message is a company-wide broadcast message. The log is append-only;
// ordering for display is chronological.
type Message struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null" json:"user_id"`
	CompanyID uint64    `gorm:"not null;index" json:"company_id"`
	Body      string    `gorm:"type:text;not null" json:"message"`
	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`

	// Relations
	Author  User    `gorm:"foreignKey:UserID" json:"author,omitempty"`
	Company Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

// PrivateMessage is stored once and queryable from either participant's side.
type PrivateMessage struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	SenderID   uint64    `gorm:"not null;index" json:"sender_id"`
	ReceiverID uint64    `gorm:"not null;index" json:"receiver_id"`
	Body       string    `gorm:"type:text;not null" json:"message"`
	Timestamp  time.Time `gorm:"autoCreateTime" json:"timestamp"`

	// Relations
	Sender   User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}
