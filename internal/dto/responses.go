// Package dto holds the response shapes the API returns. Responses flatten
// the relations clients actually render and never carry credential fields.
package dto

import (
	"time"

	"github.com/amaan1133/eagle/internal/models"
)

// UserResponse is the public shape of a user.
type UserResponse struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	CompanyID    uint64    `json:"company_id"`
	CompanyName  string    `json:"company_name,omitempty"`
	IsActive     bool      `json:"is_active"`
	MobileNumber string    `json:"mobile_number,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToUserResponse converts a user model.
func ToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		Role:         string(user.Role),
		CompanyID:    user.CompanyID,
		CompanyName:  user.Company.Name,
		IsActive:     user.IsActive,
		MobileNumber: user.MobileNumber,
		CreatedAt:    user.CreatedAt,
	}
}

// ToUserResponses converts a slice of user models.
func ToUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out
}

// TaskResponse is the public shape of a task.
type TaskResponse struct {
	ID           uint64     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	AssignedTo   uint64     `json:"assigned_to"`
	AssigneeName string     `json:"assignee_name,omitempty"`
	CompanyID    uint64     `json:"company_id"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	StartDate    *time.Time `json:"start_date"`
	Deadline     *time.Time `json:"deadline"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ToTaskResponse converts a task model.
func ToTaskResponse(task *models.Task) TaskResponse {
	return TaskResponse{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		AssignedTo:   task.AssignedTo,
		AssigneeName: task.Assignee.Username,
		CompanyID:    task.CompanyID,
		Status:       string(task.Status),
		Priority:     string(task.Priority),
		StartDate:    task.StartDate,
		Deadline:     task.Deadline,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}
}

// ToTaskResponses converts a slice of task models.
func ToTaskResponses(tasks []models.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i := range tasks {
		out[i] = ToTaskResponse(&tasks[i])
	}
	return out
}

// CommentResponse is the public shape of a task comment.
type CommentResponse struct {
	ID         uint64    `json:"id"`
	TaskID     uint64    `json:"task_id"`
	UserID     uint64    `json:"user_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Comment    string    `json:"comment"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToCommentResponses converts a slice of comment models.
func ToCommentResponses(comments []models.TaskComment) []CommentResponse {
	out := make([]CommentResponse, len(comments))
	for i, c := range comments {
		out[i] = CommentResponse{
			ID:         c.ID,
			TaskID:     c.TaskID,
			UserID:     c.UserID,
			AuthorName: c.Author.Username,
			Comment:    c.Comment,
			IsRead:     c.IsRead,
			CreatedAt:  c.CreatedAt,
		}
	}
	return out
}

// MessageResponse is the public shape of a broadcast message.
type MessageResponse struct {
	ID         uint64    `json:"id"`
	UserID     uint64    `json:"user_id"`
	Username   string    `json:"username,omitempty"`
	CompanyID  uint64    `json:"company_id"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
	CompanyTag string    `json:"company_name,omitempty"`
}

// ToMessageResponses converts a slice of broadcast messages.
func ToMessageResponses(msgs []models.Message) []MessageResponse {
	out := make([]MessageResponse, len(msgs))
	for i, m := range msgs {
		out[i] = MessageResponse{
			ID:         m.ID,
			UserID:     m.UserID,
			Username:   m.Author.Username,
			CompanyID:  m.CompanyID,
			Message:    m.Body,
			Timestamp:  m.Timestamp,
			CompanyTag: m.Company.Name,
		}
	}
	return out
}

// PrivateMessageResponse is the public shape of a private message.
type PrivateMessageResponse struct {
	ID           uint64    `json:"id"`
	SenderID     uint64    `json:"sender_id"`
	SenderName   string    `json:"sender_name,omitempty"`
	ReceiverID   uint64    `json:"receiver_id"`
	ReceiverName string    `json:"receiver_name,omitempty"`
	Message      string    `json:"message"`
	Timestamp    time.Time `json:"timestamp"`
}

// ToPrivateMessageResponses converts a slice of private messages.
func ToPrivateMessageResponses(msgs []models.PrivateMessage) []PrivateMessageResponse {
	out := make([]PrivateMessageResponse, len(msgs))
	for i, m := range msgs {
		out[i] = PrivateMessageResponse{
			ID:           m.ID,
			SenderID:     m.SenderID,
			SenderName:   m.Sender.Username,
			ReceiverID:   m.ReceiverID,
			ReceiverName: m.Receiver.Username,
			Message:      m.Body,
			Timestamp:    m.Timestamp,
		}
	}
	return out
}

// AttachmentResponse is the public shape of an attachment.
type AttachmentResponse struct {
	ID               uint64    `json:"id"`
	TaskID           uint64    `json:"task_id"`
	OriginalFilename string    `json:"original_filename"`
	FileSize         int64     `json:"file_size"`
	FileType         string    `json:"file_type"`
	UploadedBy       uint64    `json:"uploaded_by"`
	UploadType       string    `json:"upload_type"`
	CreatedAt        time.Time `json:"created_at"`
}

// ToAttachmentResponses converts a slice of attachment models.
func ToAttachmentResponses(attachments []models.Attachment) []AttachmentResponse {
	out := make([]AttachmentResponse, len(attachments))
	for i, a := range attachments {
		out[i] = AttachmentResponse{
			ID:               a.ID,
			TaskID:           a.TaskID,
			OriginalFilename: a.OriginalFilename,
			FileSize:         a.FileSize,
			FileType:         a.FileType,
			UploadedBy:       a.UploadedBy,
			UploadType:       string(a.UploadType),
			CreatedAt:        a.CreatedAt,
		}
	}
	return out
}
