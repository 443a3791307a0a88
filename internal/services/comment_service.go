package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/amaan1133/eagle/internal/apperrors"
	"github.com/amaan1133/eagle/internal/models"
	"github.com/amaan1133/eagle/internal/policy"
	"github.com/amaan1133/eagle/internal/repository"
)

// CommentService provides task comment operations. Comment visibility
// follows task visibility; touching a comment on a task the actor cannot
// see is NotFound.
type CommentService struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
	notifier    Notifier
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, taskRepo repository.TaskRepository, notifier Notifier) *CommentService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &CommentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
		notifier:    notifier,
	}
}

// visibleTask loads the task if the actor may see it, mapping out-of-scope
// ids to NotFound.
func (s *CommentService) visibleTask(actor policy.Actor, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindInCompany(taskID, actor.CompanyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if !policy.CanViewTask(actor, *task) {
		return nil, apperrors.ErrNotFound
	}
	return task, nil
}

// Add appends a comment to a task the actor can see. The assignee is
// notified unless they wrote the comment themselves.
func (s *CommentService) Add(actor policy.Actor, taskID uint64, body string) (*models.TaskComment, error) {
	if !policy.Allowed(actor, policy.ActionCommentOnTask) {
		return nil, apperrors.ErrUnauthorized
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: comment body is required", apperrors.ErrValidation)
	}

	task, err := s.visibleTask(actor, taskID)
	if err != nil {
		return nil, err
	}

	comment := &models.TaskComment{
		TaskID:  task.ID,
		UserID:  actor.ID,
		Comment: body,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	if task.AssignedTo != actor.ID {
		s.notifier.Notify(task.AssignedTo, fmt.Sprintf("New comment on task: %s", task.Title))
	}

	return comment, nil
}

// List returns a task's comments newest first. Viewing marks every comment
// by other users on that task as read; read state is per task, not per
// viewer, so one viewer's visit clears the unread count for everyone.
func (s *CommentService) List(actor policy.Actor, taskID uint64) ([]models.TaskComment, error) {
	if !policy.Allowed(actor, policy.ActionViewTaskComments) {
		return nil, apperrors.ErrUnauthorized
	}

	task, err := s.visibleTask(actor, taskID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByTask(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	if err := s.commentRepo.MarkRead(task.ID, actor.ID); err != nil {
		return nil, fmt.Errorf("failed to mark comments read: %w", err)
	}

	return comments, nil
}

// UnreadCount returns the actor's unread comment count: for admins the
// unread comments by others across the whole company, for everyone else
// unread comments on their own tasks.
func (s *CommentService) UnreadCount(actor policy.Actor) (int64, error) {
	if actor.IsAdmin() {
		count, err := s.commentRepo.CountUnreadForCompany(actor.ID, actor.CompanyID)
		if err != nil {
			return 0, fmt.Errorf("failed to count unread comments: %w", err)
		}
		return count, nil
	}
	count, err := s.commentRepo.CountUnreadForAssignee(actor.ID, actor.CompanyID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread comments: %w", err)
	}
	return count, nil
}
