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

type ReminderServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ReminderService

	company *models.Company
	admin   *models.User
	worker  *models.User
}

func (s *ReminderServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.service = NewReminderService(repository.NewReminderRepository(s.db))

	s.company = seedCompany(s.T(), s.db, "Alpha Corp")
	s.admin = seedUser(s.T(), s.db, "alpha_admin", "password123", models.RoleAdmin, s.company.ID)
	s.worker = seedUser(s.T(), s.db, "alpha_worker", "password123", models.RoleEmployee, s.company.ID)
}

func (s *ReminderServiceTestSuite) TestCreateIsAdminOnly() {
	_, err := s.service.Create(actorFor(s.worker), CreateReminderInput{
		Title:    "Renewal",
		RemindOn: time.Now().AddDate(0, 0, 10),
	})
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *ReminderServiceTestSuite) TestCreateDefaultsAlertWindow() {
	reminder, err := s.service.Create(actorFor(s.admin), CreateReminderInput{
		Title:    "License renewal",
		RemindOn: time.Now().AddDate(0, 0, 10),
	})
	s.NoError(err)
	s.Equal(1, reminder.AlertDaysBefore)
	s.True(reminder.IsActive)
}

func (s *ReminderServiceTestSuite) TestUpcomingRespectsAlertWindow() {
	now := time.Now()

	_, err := s.service.Create(actorFor(s.admin), CreateReminderInput{
		Title:           "Due soon",
		RemindOn:        now.AddDate(0, 0, 2),
		AlertDaysBefore: 3,
	})
	s.Require().NoError(err)

	_, err = s.service.Create(actorFor(s.admin), CreateReminderInput{
		Title:           "Far away",
		RemindOn:        now.AddDate(0, 0, 30),
		AlertDaysBefore: 3,
	})
	s.Require().NoError(err)

	upcoming, err := s.service.Upcoming(actorFor(s.worker))
	s.NoError(err)
	s.Require().Len(upcoming, 1)
	s.Equal("Due soon", upcoming[0].Title)
}

func (s *ReminderServiceTestSuite) TestListIsCompanyScoped() {
	other := seedCompany(s.T(), s.db, "Beta Ltd")
	otherAdmin := seedUser(s.T(), s.db, "beta_admin", "password123", models.RoleAdmin, other.ID)

	_, err := s.service.Create(actorFor(s.admin), CreateReminderInput{
		Title:    "Alpha only",
		RemindOn: time.Now().AddDate(0, 0, 5),
	})
	s.Require().NoError(err)

	reminders, err := s.service.List(actorFor(otherAdmin))
	s.NoError(err)
	s.Empty(reminders)
}

func (s *ReminderServiceTestSuite) TestDeleteDeactivates() {
	reminder, err := s.service.Create(actorFor(s.admin), CreateReminderInput{
		Title:    "Temporary",
		RemindOn: time.Now().AddDate(0, 0, 5),
	})
	s.Require().NoError(err)

	s.NoError(s.service.Delete(actorFor(s.admin), reminder.ID))

	reminders, err := s.service.List(actorFor(s.admin))
	s.NoError(err)
	s.Empty(reminders)

	// The row survives as an inactive record.
	var stored models.Reminder
	s.NoError(s.db.First(&stored, reminder.ID).Error)
	s.False(stored.IsActive)
}

func (s *ReminderServiceTestSuite) TestDeleteOutOfScopeIsNotFound() {
	other := seedCompany(s.T(), s.db, "Beta Ltd")
	otherAdmin := seedUser(s.T(), s.db, "beta_admin", "password123", models.RoleAdmin, other.ID)

	reminder, err := s.service.Create(actorFor(s.admin), CreateReminderInput{
		Title:    "Alpha secret",
		RemindOn: time.Now().AddDate(0, 0, 5),
	})
	s.Require().NoError(err)

	err = s.service.Delete(actorFor(otherAdmin), reminder.ID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestReminderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReminderServiceTestSuite))
}
