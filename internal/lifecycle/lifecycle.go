// Package lifecycle encodes the task status state machine used on the
// assignee path. Admin force-updates bypass it deliberately.
package lifecycle

import "github.com/amaan1133/eagle/internal/models"

// assigneeTransitions lists every transition the assignee may request.
// Completed never appears as a source state: it is terminal on this path.
var assigneeTransitions = map[models.TaskStatus][]models.TaskStatus{
	models.TaskStatusPending: {
		models.TaskStatusInProgress,
		models.TaskStatusCompleted,
	},
	models.TaskStatusInProgress: {
		models.TaskStatusCompleted,
		models.TaskStatusPending,
	},
}

// CanTransition reports whether the assignee may move a task from one status
// to another. Any request against a Completed task is refused, including a
// Completed->Completed no-op.
func CanTransition(from, to models.TaskStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	for _, next := range assigneeTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether a status admits no further assignee transitions.
func Terminal(status models.TaskStatus) bool {
	return status == models.TaskStatusCompleted
}
