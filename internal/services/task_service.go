package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/amaan1133/eagle/internal/apperrors"
	"github.com/amaan1133/eagle/internal/models"
	"github.com/amaan1133/eagle/internal/policy"
	"github.com/amaan1133/eagle/internal/repository"
)

// TaskService provides the actor-aware task operations. Every mutation runs
// its policy gate here and its scope/lifecycle checks atomically with the
// write in the repository.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	notifier Notifier
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, notifier Notifier) *TaskService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

// AssignTaskInput holds the fields for assigning a new task.
type AssignTaskInput struct {
	Title       string
	Description string
	AssignedTo  uint64
	Priority    models.TaskPriority
	StartDate   *time.Time
	Deadline    *time.Time
}

// Assign creates a task for a user in the actor's company. Admin only. The
// task's company is always the actor's own; a cross-tenant assignee is
// rejected without confirming whether the id exists elsewhere.
func (s *TaskService) Assign(actor policy.Actor, input AssignTaskInput) (*models.Task, error) {
	if !policy.Allowed(actor, policy.ActionAssignTask) {
		return nil, apperrors.ErrUnauthorized
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", apperrors.ErrValidation, input.Priority)
	}

	if _, err := s.userRepo.FindInCompany(input.AssignedTo, actor.CompanyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: assignee does not belong to your company", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to check assignee: %w", err)
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		AssignedTo:  input.AssignedTo,
		CompanyID:   actor.CompanyID,
		Status:      models.TaskStatusPending,
		Priority:    input.Priority,
		StartDate:   input.StartDate,
		Deadline:    input.Deadline,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.notifier.Notify(task.AssignedTo, fmt.Sprintf("New task assigned: %s", task.Title))

	return task, nil
}

// Get returns a single task the actor may see: admins any task in their
// company, everyone else only their own. Out-of-scope ids are NotFound.
func (s *TaskService) Get(actor policy.Actor, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindInCompany(taskID, actor.CompanyID, "Assignee")
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

// ListCompanyTasks lists every task of the actor's company. Admin only.
func (s *TaskService) ListCompanyTasks(actor policy.Actor) ([]models.Task, error) {
	if !policy.Allowed(actor, policy.ActionViewAllCompanyTasks) {
		return nil, apperrors.ErrUnauthorized
	}
	tasks, err := s.taskRepo.ListByCompany(actor.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListOwnTasks lists the tasks assigned to the actor. The assignee and
// company predicates are part of the query.
func (s *TaskService) ListOwnTasks(actor policy.Actor) ([]models.Task, error) {
	if !policy.Allowed(actor, policy.ActionViewOwnTasks) {
		return nil, apperrors.ErrUnauthorized
	}
	tasks, err := s.taskRepo.ListOwned(actor.ID, actor.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListVisible returns the role-dependent task view: all company tasks for an
// admin, the actor's own otherwise.
func (s *TaskService) ListVisible(actor policy.Actor) ([]models.Task, error) {
	if actor.IsAdmin() {
		return s.ListCompanyTasks(actor)
	}
	return s.ListOwnTasks(actor)
}

// UpdateOwnStatus applies an assignee status transition. A task outside the
// actor's scope is NotFound; a task of theirs that is already Completed, or
// a transition the lifecycle refuses, is Forbidden.
func (s *TaskService) UpdateOwnStatus(actor policy.Actor, taskID uint64, status models.TaskStatus) (*models.Task, error) {
	if !policy.Allowed(actor, policy.ActionUpdateOwnTaskStatus) {
		return nil, apperrors.ErrUnauthorized
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, status)
	}

	task, err := s.taskRepo.UpdateOwnedStatus(taskID, actor.ID, actor.CompanyID, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return task, nil
}

// AdminUpdate applies a partial task update within the actor's company.
// Admin only; this is the escape hatch that may force any status.
func (s *TaskService) AdminUpdate(actor policy.Actor, taskID uint64, patch repository.TaskPatch) (*models.Task, error) {
	if !policy.Allowed(actor, policy.ActionAdminUpdateTask) {
		return nil, apperrors.ErrUnauthorized
	}

	task, err := s.taskRepo.AdminUpdate(taskID, actor.CompanyID, patch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	if patch.AssignedTo != nil {
		s.notifier.Notify(*patch.AssignedTo, fmt.Sprintf("Task reassigned to you: %s", task.Title))
	}

	return task, nil
}

// AdminDelete removes a task and its comments and attachments. Admin only,
// scoped to the actor's company.
func (s *TaskService) AdminDelete(actor policy.Actor, taskID uint64) error {
	if !policy.Allowed(actor, policy.ActionAdminDeleteTask) {
		return apperrors.ErrUnauthorized
	}

	if err := s.taskRepo.Delete(taskID, actor.CompanyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	return nil
}

// TaskStats summarizes the actor's visible tasks by status and priority.
type TaskStats struct {
	Total      int            `json:"total"`
	Pending    int            `json:"pending"`
	InProgress int            `json:"in_progress"`
	Completed  int            `json:"completed"`
	ByPriority map[string]int `json:"by_priority"`
}

// Stats computes counts over the actor's visible task set.
func (s *TaskService) Stats(actor policy.Actor) (*TaskStats, error) {
	tasks, err := s.ListVisible(actor)
	if err != nil {
		return nil, err
	}

	stats := &TaskStats{
		Total: len(tasks),
		ByPriority: map[string]int{
			"critical": 0,
			"high":     0,
			"medium":   0,
			"low":      0,
		},
	}
	for _, t := range tasks {
		switch t.Status {
		case models.TaskStatusPending:
			stats.Pending++
		case models.TaskStatusInProgress:
			stats.InProgress++
		case models.TaskStatusCompleted:
			stats.Completed++
		}
		stats.ByPriority[strings.ToLower(string(t.Priority))]++
	}
	return stats, nil
}
