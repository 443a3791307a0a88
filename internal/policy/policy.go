// Package policy holds the pure authorization decision functions. Nothing
// here performs I/O; every decision is a function of the actor, the action,
// and (for target-dependent rules) the target row the caller already loaded.
package policy

import "github.com/amaan1133/eagle/internal/models"

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID        uint64
	Username  string
	Role      models.Role
	CompanyID uint64
}

// IsAdmin reports whether the actor carries the Admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// Action enumerates every operation class the policy rules on.
type Action int

const (
	ActionCreateCompany Action = iota
	ActionCreateUser
	ActionAssignTask
	ActionViewAllCompanyTasks
	ActionViewOwnTasks
	ActionUpdateOwnTaskStatus
	ActionAdminUpdateTask
	ActionAdminDeleteTask
	ActionManageUsers
	ActionViewCompanyMessages
	ActionViewAllMessages
	ActionSendPrivateMessage
	ActionManageReminders
	ActionCommentOnTask
	ActionViewTaskComments
	ActionUploadAttachment
)

// allowedRoles lists, per action, every role permitted to attempt it.
// Target-dependent refinements (ownership, tenant, lifecycle state) are
// checked separately by the repository layer.
var allowedRoles = map[Action][]models.Role{
	ActionCreateCompany:       {models.RoleAdmin},
	ActionCreateUser:          {models.RoleAdmin},
	ActionAssignTask:          {models.RoleAdmin},
	ActionViewAllCompanyTasks: {models.RoleAdmin},
	ActionViewOwnTasks:        {models.RoleAdmin, models.RoleManager, models.RoleEmployee},
	ActionUpdateOwnTaskStatus: {models.RoleManager, models.RoleEmployee},
	ActionAdminUpdateTask:     {models.RoleAdmin},
	ActionAdminDeleteTask:     {models.RoleAdmin},
	ActionManageUsers:         {models.RoleAdmin},
	ActionViewCompanyMessages: {models.RoleAdmin, models.RoleManager, models.RoleEmployee},
	ActionViewAllMessages:     {models.RoleAdmin},
	ActionSendPrivateMessage:  {models.RoleAdmin, models.RoleManager, models.RoleEmployee},
	ActionManageReminders:     {models.RoleAdmin},
	ActionCommentOnTask:       {models.RoleAdmin, models.RoleManager, models.RoleEmployee},
	ActionViewTaskComments:    {models.RoleAdmin, models.RoleManager, models.RoleEmployee},
	ActionUploadAttachment:    {models.RoleAdmin, models.RoleManager, models.RoleEmployee},
}

// Allowed reports whether the actor's role permits the action class.
func Allowed(actor Actor, action Action) bool {
	if !actor.Role.Valid() {
		return false
	}
	for _, r := range allowedRoles[action] {
		if actor.Role == r {
			return true
		}
	}
	return false
}

// CanUpdateOwnStatus rules on the assignee transition path for a task the
// caller already resolved within the actor's scope. Completed is terminal:
// the answer is false for every requested transition once the task is done.
func CanUpdateOwnStatus(actor Actor, task models.Task) bool {
	if !Allowed(actor, ActionUpdateOwnTaskStatus) {
		return false
	}
	if task.AssignedTo != actor.ID || task.CompanyID != actor.CompanyID {
		return false
	}
	return task.Status != models.TaskStatusCompleted
}

// CanViewTask reports whether the actor may read the given task at all.
// Admins see every task in their own company; everyone else only their own.
func CanViewTask(actor Actor, task models.Task) bool {
	if task.CompanyID != actor.CompanyID {
		return false
	}
	return actor.IsAdmin() || task.AssignedTo == actor.ID
}

// CanViewPrivateThread implements the DM privacy rule: participants always
// see their own thread, but a non-Admin may only browse threads whose other
// party is an Admin. Admin actors may view any thread.
func CanViewPrivateThread(actor Actor, other models.User) bool {
	if actor.IsAdmin() {
		return true
	}
	return other.Role == models.RoleAdmin
}
