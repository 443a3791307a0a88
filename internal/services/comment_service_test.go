package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/amaan1133/eagle/internal/apperrors"
	"github.com/amaan1133/eagle/internal/models"
	"github.com/amaan1133/eagle/internal/repository"
)

type CommentServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	service  *CommentService
	notifier *recordingNotifier

	company *models.Company
	admin   *models.User
	worker  *models.User
	task    *models.Task
}

func (s *CommentServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.notifier = &recordingNotifier{}
	s.service = NewCommentService(
		repository.NewCommentRepository(s.db),
		repository.NewTaskRepository(s.db),
		s.notifier,
	)

	s.company = seedCompany(s.T(), s.db, "Alpha Corp")
	s.admin = seedUser(s.T(), s.db, "alpha_admin", "password123", models.RoleAdmin, s.company.ID)
	s.worker = seedUser(s.T(), s.db, "alpha_worker", "password123", models.RoleEmployee, s.company.ID)
	s.task = seedTask(s.T(), s.db, "Shared task", s.worker.ID, s.company.ID, models.TaskStatusPending)
}

func (s *CommentServiceTestSuite) TestAddNotifiesAssignee() {
	comment, err := s.service.Add(actorFor(s.admin), s.task.ID, "please update")
	s.NoError(err)
	s.False(comment.IsRead)

	s.Require().Len(s.notifier.sent, 1)
	s.Equal(s.worker.ID, s.notifier.sent[0].UserID)
}

func (s *CommentServiceTestSuite) TestAddByAssigneeSkipsSelfNotification() {
	_, err := s.service.Add(actorFor(s.worker), s.task.ID, "on it")
	s.NoError(err)
	s.Empty(s.notifier.sent)
}

func (s *CommentServiceTestSuite) TestAddOnInvisibleTaskIsNotFound() {
	other := seedCompany(s.T(), s.db, "Beta Ltd")
	outsider := seedUser(s.T(), s.db, "beta_worker", "password123", models.RoleEmployee, other.ID)

	_, err := s.service.Add(actorFor(outsider), s.task.ID, "sneaky")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *CommentServiceTestSuite) TestViewMarksOthersCommentsRead() {
	_, err := s.service.Add(actorFor(s.admin), s.task.ID, "first")
	s.Require().NoError(err)
	_, err = s.service.Add(actorFor(s.worker), s.task.ID, "second")
	s.Require().NoError(err)

	comments, err := s.service.List(actorFor(s.worker), s.task.ID)
	s.NoError(err)
	s.Len(comments, 2)

	// The admin's comment is now read; the worker's own stays as written.
	var adminComment models.TaskComment
	s.NoError(s.db.Where("task_id = ? AND user_id = ?", s.task.ID, s.admin.ID).First(&adminComment).Error)
	s.True(adminComment.IsRead)

	var workerComment models.TaskComment
	s.NoError(s.db.Where("task_id = ? AND user_id = ?", s.task.ID, s.worker.ID).First(&workerComment).Error)
	s.False(workerComment.IsRead)
}

func (s *CommentServiceTestSuite) TestUnreadCountForAssignee() {
	_, err := s.service.Add(actorFor(s.admin), s.task.ID, "ping")
	s.Require().NoError(err)

	count, err := s.service.UnreadCount(actorFor(s.worker))
	s.NoError(err)
	s.EqualValues(1, count)

	_, err = s.service.List(actorFor(s.worker), s.task.ID)
	s.Require().NoError(err)

	count, err = s.service.UnreadCount(actorFor(s.worker))
	s.NoError(err)
	s.Zero(count)
}

func (s *CommentServiceTestSuite) TestUnreadCountForAdminCoversCompany() {
	_, err := s.service.Add(actorFor(s.worker), s.task.ID, "status update")
	s.Require().NoError(err)

	count, err := s.service.UnreadCount(actorFor(s.admin))
	s.NoError(err)
	s.EqualValues(1, count)
}

func TestCommentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CommentServiceTestSuite))
}
