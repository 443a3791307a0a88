package models

import "time"

type UploadType string

const (
	UploadTypeAssignment UploadType = "task_assignment"
	UploadTypeProgress   UploadType = "task_progress"
)

// Valid reports whether t is a known upload purpose.
func (t UploadType) Valid() bool {
	return t == UploadTypeAssignment || t == UploadTypeProgress
}

type Attachment struct {
	ID               uint64     `gorm:"primarykey" json:"id"`
	TaskID           uint64     `gorm:"not null;index" json:"task_id"`
	Filename         string     `gorm:"not null" json:"filename"`
	OriginalFilename string     `gorm:"not null" json:"original_filename"`
	FilePath         string     `gorm:"not null" json:"-"`
	FileSize         int64      `json:"file_size"`
	FileType         string     `gorm:"type:varchar(20)" json:"file_type"`
	UploadedBy       uint64     `gorm:"not null" json:"uploaded_by"`
	UploadType       UploadType `gorm:"type:varchar(30);not null" json:"upload_type"`
	CreatedAt        time.Time  `json:"created_at"`

	// Relations
	Task     Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Uploader User `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
}
