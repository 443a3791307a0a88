package models

import "time"

// Reminder is soft-deleted via IsActive rather than removed.
type Reminder struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	Title           string    `gorm:"not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	RemindOn        time.Time `gorm:"not null" json:"reminder_date"`
	AlertDaysBefore int       `gorm:"not null;default:1" json:"alert_days_before"`
	IsActive        bool      `gorm:"not null;default:true" json:"-"`
	CompanyID       uint64    `gorm:"not null;index" json:"company_id"`
	CreatedBy       uint64    `gorm:"not null" json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`

	// Relations
	Company Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Creator User    `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}
