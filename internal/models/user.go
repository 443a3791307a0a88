package models

import "time"

type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
)

// Valid reports whether r is one of the closed set of roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	Username       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	PasswordHash   string    `gorm:"type:varchar(255);not null" json:"-"`
	Role           Role      `gorm:"type:varchar(20);not null" json:"role"`
	CompanyID      uint64    `gorm:"not null;index" json:"company_id"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	MobileNumber   string    `gorm:"type:varchar(50)" json:"mobile_number,omitempty"`
	TelegramChatID string    `gorm:"type:varchar(50)" json:"-"`
	CreatedAt      time.Time `json:"created_at"`

	// Relations
	Company       Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	AssignedTasks []Task  `gorm:"foreignKey:AssignedTo" json:"-"`
}
