package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/amaan1133/eagle/internal/apperrors"
	"github.com/amaan1133/eagle/internal/models"
	"github.com/amaan1133/eagle/internal/repository"
)

type TaskServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	service  *TaskService
	notifier *recordingNotifier

	companyA *models.Company
	companyB *models.Company
	adminA   *models.User
	workerA  *models.User
	workerB  *models.User
}

func (s *TaskServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.notifier = &recordingNotifier{}
	s.service = NewTaskService(
		repository.NewTaskRepository(s.db),
		repository.NewUserRepository(s.db),
		s.notifier,
	)

	s.companyA = seedCompany(s.T(), s.db, "Alpha Corp")
	s.companyB = seedCompany(s.T(), s.db, "Beta Ltd")
	s.adminA = seedUser(s.T(), s.db, "alpha_admin", "password123", models.RoleAdmin, s.companyA.ID)
	s.workerA = seedUser(s.T(), s.db, "alpha_worker", "password123", models.RoleEmployee, s.companyA.ID)
	s.workerB = seedUser(s.T(), s.db, "beta_worker", "password123", models.RoleEmployee, s.companyB.ID)
}

func (s *TaskServiceTestSuite) TestAssignNotifiesAssignee() {
	task, err := s.service.Assign(actorFor(s.adminA), AssignTaskInput{
		Title:      "Prepare quarterly report",
		AssignedTo: s.workerA.ID,
	})
	s.NoError(err)
	s.Equal(s.companyA.ID, task.CompanyID)
	s.Equal(models.TaskStatusPending, task.Status)
	s.Equal(models.PriorityMedium, task.Priority)

	s.Require().Len(s.notifier.sent, 1)
	s.Equal(s.workerA.ID, s.notifier.sent[0].UserID)
	s.Contains(s.notifier.sent[0].Message, "Prepare quarterly report")
}

func (s *TaskServiceTestSuite) TestAssignRejectsNonAdmin() {
	_, err := s.service.Assign(actorFor(s.workerA), AssignTaskInput{
		Title:      "Nope",
		AssignedTo: s.workerA.ID,
	})
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *TaskServiceTestSuite) TestAssignRejectsCrossCompanyAssignee() {
	_, err := s.service.Assign(actorFor(s.adminA), AssignTaskInput{
		Title:      "Cross-tenant",
		AssignedTo: s.workerB.ID,
	})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *TaskServiceTestSuite) TestGetHidesOtherCompanyTask() {
	task := seedTask(s.T(), s.db, "Beta internal", s.workerB.ID, s.companyB.ID, models.TaskStatusPending)

	_, err := s.service.Get(actorFor(s.adminA), task.ID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *TaskServiceTestSuite) TestGetHidesColleagueTaskFromEmployee() {
	other := seedUser(s.T(), s.db, "alpha_other", "password123", models.RoleEmployee, s.companyA.ID)
	task := seedTask(s.T(), s.db, "Someone else's", other.ID, s.companyA.ID, models.TaskStatusPending)

	_, err := s.service.Get(actorFor(s.workerA), task.ID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	got, err := s.service.Get(actorFor(s.adminA), task.ID)
	s.NoError(err)
	s.Equal(task.ID, got.ID)
}

func (s *TaskServiceTestSuite) TestUpdateOwnStatusTransitions() {
	task := seedTask(s.T(), s.db, "My task", s.workerA.ID, s.companyA.ID, models.TaskStatusPending)

	updated, err := s.service.UpdateOwnStatus(actorFor(s.workerA), task.ID, models.TaskStatusInProgress)
	s.NoError(err)
	s.Equal(models.TaskStatusInProgress, updated.Status)

	updated, err = s.service.UpdateOwnStatus(actorFor(s.workerA), task.ID, models.TaskStatusCompleted)
	s.NoError(err)
	s.Equal(models.TaskStatusCompleted, updated.Status)
}

func (s *TaskServiceTestSuite) TestCompletedTaskRefusesFurtherUpdates() {
	task := seedTask(s.T(), s.db, "Done task", s.workerA.ID, s.companyA.ID, models.TaskStatusCompleted)

	for _, status := range []models.TaskStatus{
		models.TaskStatusPending,
		models.TaskStatusInProgress,
		models.TaskStatusCompleted,
	} {
		_, err := s.service.UpdateOwnStatus(actorFor(s.workerA), task.ID, status)
		s.ErrorIs(err, apperrors.ErrForbidden, "status %s", status)
	}
}

func (s *TaskServiceTestSuite) TestUpdateOwnStatusOnOthersTaskIsNotFound() {
	task := seedTask(s.T(), s.db, "Beta task", s.workerB.ID, s.companyB.ID, models.TaskStatusPending)

	_, err := s.service.UpdateOwnStatus(actorFor(s.workerA), task.ID, models.TaskStatusInProgress)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *TaskServiceTestSuite) TestAdminForceSetBypassesLifecycle() {
	task := seedTask(s.T(), s.db, "Stuck task", s.workerA.ID, s.companyA.ID, models.TaskStatusCompleted)

	status := models.TaskStatusPending
	updated, err := s.service.AdminUpdate(actorFor(s.adminA), task.ID, repository.TaskPatch{Status: &status})
	s.NoError(err)
	s.Equal(models.TaskStatusPending, updated.Status)
}

func (s *TaskServiceTestSuite) TestAdminPartialUpdateLeavesAbsentFields() {
	deadline := time.Now().AddDate(0, 0, 7)
	task := seedTask(s.T(), s.db, "Original title", s.workerA.ID, s.companyA.ID, models.TaskStatusPending)
	s.NoError(s.db.Model(task).Update("deadline", deadline).Error)

	// Backdate the row so the strictly-forward bump is visible regardless
	// of clock granularity.
	stale := time.Now().Add(-time.Hour)
	s.NoError(s.db.Model(task).UpdateColumn("updated_at", stale).Error)

	before, err := s.service.Get(actorFor(s.adminA), task.ID)
	s.Require().NoError(err)

	title := "Renamed title"
	updated, err := s.service.AdminUpdate(actorFor(s.adminA), task.ID, repository.TaskPatch{Title: &title})
	s.NoError(err)
	s.Equal("Renamed title", updated.Title)
	s.NotNil(updated.Deadline)
	s.Equal(before.Status, updated.Status)
	s.True(updated.UpdatedAt.After(before.UpdatedAt))
}

func (s *TaskServiceTestSuite) TestAdminUpdateRejectsCrossCompanyReassignment() {
	task := seedTask(s.T(), s.db, "Alpha task", s.workerA.ID, s.companyA.ID, models.TaskStatusPending)

	_, err := s.service.AdminUpdate(actorFor(s.adminA), task.ID, repository.TaskPatch{AssignedTo: &s.workerB.ID})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *TaskServiceTestSuite) TestAdminDeleteCascadesComments() {
	task := seedTask(s.T(), s.db, "Doomed task", s.workerA.ID, s.companyA.ID, models.TaskStatusPending)
	s.NoError(s.db.Create(&models.TaskComment{TaskID: task.ID, UserID: s.workerA.ID, Comment: "note"}).Error)

	s.NoError(s.service.AdminDelete(actorFor(s.adminA), task.ID))

	var count int64
	s.NoError(s.db.Model(&models.TaskComment{}).Where("task_id = ?", task.ID).Count(&count).Error)
	s.Zero(count)
}

func (s *TaskServiceTestSuite) TestListVisibleByRole() {
	seedTask(s.T(), s.db, "Worker task", s.workerA.ID, s.companyA.ID, models.TaskStatusPending)
	seedTask(s.T(), s.db, "Admin task", s.adminA.ID, s.companyA.ID, models.TaskStatusPending)
	seedTask(s.T(), s.db, "Beta task", s.workerB.ID, s.companyB.ID, models.TaskStatusPending)

	adminTasks, err := s.service.ListVisible(actorFor(s.adminA))
	s.NoError(err)
	s.Len(adminTasks, 2)

	workerTasks, err := s.service.ListVisible(actorFor(s.workerA))
	s.NoError(err)
	s.Require().Len(workerTasks, 1)
	s.Equal("Worker task", workerTasks[0].Title)
}

func (s *TaskServiceTestSuite) TestStats() {
	seedTask(s.T(), s.db, "t1", s.workerA.ID, s.companyA.ID, models.TaskStatusPending)
	seedTask(s.T(), s.db, "t2", s.workerA.ID, s.companyA.ID, models.TaskStatusInProgress)
	seedTask(s.T(), s.db, "t3", s.workerA.ID, s.companyA.ID, models.TaskStatusCompleted)

	stats, err := s.service.Stats(actorFor(s.adminA))
	s.NoError(err)
	s.Equal(3, stats.Total)
	s.Equal(1, stats.Pending)
	s.Equal(1, stats.InProgress)
	s.Equal(1, stats.Completed)
	s.Equal(3, stats.ByPriority["medium"])
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
