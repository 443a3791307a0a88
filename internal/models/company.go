package models

import "time"

// MaxCompanies is the system-wide cap on tenants.
const MaxCompanies = 7

type Company struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Users []User `gorm:"foreignKey:CompanyID" json:"users,omitempty"`
	Tasks []Task `gorm:"foreignKey:CompanyID" json:"tasks,omitempty"`
}
