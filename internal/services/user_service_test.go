package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/amaan1133/eagle/internal/apperrors"
	"github.com/amaan1133/eagle/internal/models"
	"github.com/amaan1133/eagle/internal/repository"
)

type UserServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *UserService

	company *models.Company
	admin   *models.User
	worker  *models.User
}

func (s *UserServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.service = NewUserService(
		repository.NewUserRepository(s.db),
		repository.NewCompanyRepository(s.db),
	)

	s.company = seedCompany(s.T(), s.db, "Alpha Corp")
	s.admin = seedUser(s.T(), s.db, "alpha_admin", "password123", models.RoleAdmin, s.company.ID)
	s.worker = seedUser(s.T(), s.db, "alpha_worker", "password123", models.RoleEmployee, s.company.ID)
}

func (s *UserServiceTestSuite) TestCreateUser() {
	user, err := s.service.Create(actorFor(s.admin), CreateUserInput{
		Username:  "new_manager",
		Password:  "longenough",
		Role:      models.RoleManager,
		CompanyID: s.company.ID,
	})
	s.NoError(err)
	s.Equal(models.RoleManager, user.Role)
	s.True(user.IsActive)
	s.NotEqual("longenough", user.PasswordHash)
}

func (s *UserServiceTestSuite) TestCreateRejectsShortPassword() {
	_, err := s.service.Create(actorFor(s.admin), CreateUserInput{
		Username:  "shorty",
		Password:  "short",
		Role:      models.RoleEmployee,
		CompanyID: s.company.ID,
	})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *UserServiceTestSuite) TestCreateRejectsDuplicateUsernameAcrossCompanies() {
	other := seedCompany(s.T(), s.db, "Beta Ltd")

	_, err := s.service.Create(actorFor(s.admin), CreateUserInput{
		Username:  "alpha_worker",
		Password:  "longenough",
		Role:      models.RoleEmployee,
		CompanyID: other.ID,
	})
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *UserServiceTestSuite) TestCreateRejectsUnknownRole() {
	_, err := s.service.Create(actorFor(s.admin), CreateUserInput{
		Username:  "mystery",
		Password:  "longenough",
		Role:      "Owner",
		CompanyID: s.company.ID,
	})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *UserServiceTestSuite) TestDeactivateAndReactivate() {
	s.NoError(s.service.Deactivate(actorFor(s.admin), s.worker.ID))

	var user models.User
	s.NoError(s.db.First(&user, s.worker.ID).Error)
	s.False(user.IsActive)

	s.NoError(s.service.Reactivate(actorFor(s.admin), s.worker.ID))
	s.NoError(s.db.First(&user, s.worker.ID).Error)
	s.True(user.IsActive)
}

func (s *UserServiceTestSuite) TestCannotDeactivateSelf() {
	err := s.service.Deactivate(actorFor(s.admin), s.admin.ID)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *UserServiceTestSuite) TestDeleteRefusedWhileTasksAssigned() {
	seedTask(s.T(), s.db, "Open work", s.worker.ID, s.company.ID, models.TaskStatusPending)

	err := s.service.Delete(actorFor(s.admin), s.worker.ID)
	s.ErrorIs(err, apperrors.ErrHasDependents)
}

func (s *UserServiceTestSuite) TestDeleteCascadesUserData() {
	s.NoError(s.db.Create(&models.Message{UserID: s.worker.ID, CompanyID: s.company.ID, Body: "hi"}).Error)
	s.NoError(s.db.Create(&models.Notification{UserID: s.worker.ID, Message: "ping"}).Error)

	s.NoError(s.service.Delete(actorFor(s.admin), s.worker.ID))

	var users, messages, notifications int64
	s.NoError(s.db.Model(&models.User{}).Where("id = ?", s.worker.ID).Count(&users).Error)
	s.NoError(s.db.Model(&models.Message{}).Where("user_id = ?", s.worker.ID).Count(&messages).Error)
	s.NoError(s.db.Model(&models.Notification{}).Where("user_id = ?", s.worker.ID).Count(&notifications).Error)
	s.Zero(users)
	s.Zero(messages)
	s.Zero(notifications)
}

func (s *UserServiceTestSuite) TestCannotDeleteSelf() {
	err := s.service.Delete(actorFor(s.admin), s.admin.ID)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *UserServiceTestSuite) TestUpdateContactValidatesChatID() {
	bad := "not-digits"
	err := s.service.UpdateContact(actorFor(s.worker), UpdateContactInput{TelegramChatID: &bad})
	s.ErrorIs(err, apperrors.ErrValidation)

	good := "123456789"
	s.NoError(s.service.UpdateContact(actorFor(s.worker), UpdateContactInput{TelegramChatID: &good}))

	var user models.User
	s.NoError(s.db.First(&user, s.worker.ID).Error)
	s.Equal(good, user.TelegramChatID)
}

func (s *UserServiceTestSuite) TestListCompanyUsersIsScoped() {
	other := seedCompany(s.T(), s.db, "Beta Ltd")
	seedUser(s.T(), s.db, "beta_worker", "password123", models.RoleEmployee, other.ID)

	users, err := s.service.ListCompanyUsers(actorFor(s.admin))
	s.NoError(err)
	s.Len(users, 2)
	for _, u := range users {
		s.Equal(s.company.ID, u.CompanyID)
	}
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
