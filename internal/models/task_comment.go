package models

import "time"

// TaskComment carries a single per-task read flag, not per-reader state:
// viewing a task's comments marks every comment authored by someone else as
// read, and nothing tracks which reader did so.
type TaskComment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	TaskID    uint64    `gorm:"not null;index" json:"task_id"`
	UserID    uint64    `gorm:"not null" json:"user_id"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Task   Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Author User `gorm:"foreignKey:UserID" json:"author,omitempty"`
}
