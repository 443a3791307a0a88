package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amaan1133/eagle/internal/models"
)

var everyAction = []Action{
	ActionCreateCompany,
	ActionCreateUser,
	ActionAssignTask,
	ActionViewAllCompanyTasks,
	ActionViewOwnTasks,
	ActionUpdateOwnTaskStatus,
	ActionAdminUpdateTask,
	ActionAdminDeleteTask,
	ActionManageUsers,
	ActionViewCompanyMessages,
	ActionViewAllMessages,
	ActionSendPrivateMessage,
	ActionManageReminders,
	ActionCommentOnTask,
	ActionViewTaskComments,
	ActionUploadAttachment,
}

func actorWithRole(role models.Role) Actor {
	return Actor{ID: 1, Username: "u", Role: role, CompanyID: 1}
}

func TestAllowed_FullMatrix(t *testing.T) {
	adminOnly := map[Action]bool{
		ActionCreateCompany:       true,
		ActionCreateUser:          true,
		ActionAssignTask:          true,
		ActionViewAllCompanyTasks: true,
		ActionAdminUpdateTask:     true,
		ActionAdminDeleteTask:     true,
		ActionManageUsers:         true,
		ActionViewAllMessages:     true,
		ActionManageReminders:     true,
	}
	nonAdminOnly := map[Action]bool{
		ActionUpdateOwnTaskStatus: true,
	}

	for _, action := range everyAction {
		for _, role := range []models.Role{models.RoleAdmin, models.RoleManager, models.RoleEmployee} {
			got := Allowed(actorWithRole(role), action)

			var want bool
			switch {
			case adminOnly[action]:
				want = role == models.RoleAdmin
			case nonAdminOnly[action]:
				want = role != models.RoleAdmin
			default:
				want = true
			}

			assert.Equal(t, want, got, "action %d role %s", action, role)
		}
	}
}

func TestAllowed_UnknownRoleDeniedEverything(t *testing.T) {
	stranger := Actor{ID: 9, Role: models.Role("Superuser"), CompanyID: 1}
	for _, action := range everyAction {
		assert.False(t, Allowed(stranger, action), "action %d", action)
	}
}

func TestCanUpdateOwnStatus(t *testing.T) {
	employee := Actor{ID: 5, Role: models.RoleEmployee, CompanyID: 2}

	ownPending := models.Task{AssignedTo: 5, CompanyID: 2, Status: models.TaskStatusPending}
	assert.True(t, CanUpdateOwnStatus(employee, ownPending))

	ownCompleted := models.Task{AssignedTo: 5, CompanyID: 2, Status: models.TaskStatusCompleted}
	assert.False(t, CanUpdateOwnStatus(employee, ownCompleted), "completed is terminal for the assignee")

	someoneElses := models.Task{AssignedTo: 6, CompanyID: 2, Status: models.TaskStatusPending}
	assert.False(t, CanUpdateOwnStatus(employee, someoneElses))

	otherTenant := models.Task{AssignedTo: 5, CompanyID: 3, Status: models.TaskStatusPending}
	assert.False(t, CanUpdateOwnStatus(employee, otherTenant))

	admin := Actor{ID: 5, Role: models.RoleAdmin, CompanyID: 2}
	assert.False(t, CanUpdateOwnStatus(admin, ownPending), "admins use the force-update path")
}

func TestCanViewTask(t *testing.T) {
	admin := Actor{ID: 1, Role: models.RoleAdmin, CompanyID: 1}
	manager := Actor{ID: 2, Role: models.RoleManager, CompanyID: 1}

	inCompany := models.Task{AssignedTo: 3, CompanyID: 1}
	assert.True(t, CanViewTask(admin, inCompany))
	assert.False(t, CanViewTask(manager, inCompany), "non-admins only see their own tasks")

	own := models.Task{AssignedTo: 2, CompanyID: 1}
	assert.True(t, CanViewTask(manager, own))

	crossTenant := models.Task{AssignedTo: 2, CompanyID: 9}
	assert.False(t, CanViewTask(admin, crossTenant))
	assert.False(t, CanViewTask(manager, crossTenant))
}

func TestCanViewPrivateThread(t *testing.T) {
	admin := Actor{ID: 1, Role: models.RoleAdmin, CompanyID: 1}
	employee := Actor{ID: 2, Role: models.RoleEmployee, CompanyID: 1}

	adminUser := models.User{ID: 1, Role: models.RoleAdmin}
	peerUser := models.User{ID: 3, Role: models.RoleEmployee}

	assert.True(t, CanViewPrivateThread(admin, peerUser), "admin sees any thread")
	assert.True(t, CanViewPrivateThread(employee, adminUser), "threads with an admin are visible")
	assert.False(t, CanViewPrivateThread(employee, peerUser), "peer DMs stay private")
}
