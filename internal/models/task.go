package models

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow      TaskPriority = "Low"
	PriorityMedium   TaskPriority = "Medium"
	PriorityHigh     TaskPriority = "High"
	PriorityCritical TaskPriority = "Critical"
)

// Valid reports whether p is a known task priority.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	AssignedTo  uint64       `gorm:"not null;index" json:"assigned_to"`
	CompanyID   uint64       `gorm:"not null;index" json:"company_id"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:'Medium'" json:"priority"`
	StartDate   *time.Time   `json:"start_date"`
	Deadline    *time.Time   `gorm:"index" json:"deadline"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	Assignee    User          `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	Company     Company       `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Comments    []TaskComment `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
	Attachments []Attachment  `gorm:"foreignKey:TaskID" json:"attachments,omitempty"`
}
