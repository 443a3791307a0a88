package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/amaan1133/eagle/internal/models"
	"github.com/amaan1133/eagle/internal/policy"
)

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Task{},
		&models.TaskComment{},
		&models.Message{},
		&models.PrivateMessage{},
		&models.Attachment{},
		&models.Reminder{},
		&models.Notification{},
		&models.PushSubscription{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedCompany(t *testing.T, db *gorm.DB, name string) *models.Company {
	t.Helper()
	company := &models.Company{Name: name}
	if err := db.Create(company).Error; err != nil {
		t.Fatalf("failed to seed company: %v", err)
	}
	return company
}

func seedUser(t *testing.T, db *gorm.DB, username, password string, role models.Role, companyID uint64) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CompanyID:    companyID,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedTask(t *testing.T, db *gorm.DB, title string, assigneeID, companyID uint64, status models.TaskStatus) *models.Task {
	t.Helper()
	task := &models.Task{
		Title:      title,
		AssignedTo: assigneeID,
		CompanyID:  companyID,
		Status:     status,
		Priority:   models.PriorityMedium,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}
	return task
}

func actorFor(user *models.User) policy.Actor {
	return policy.Actor{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CompanyID: user.CompanyID,
	}
}

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	sent []sentNotification
}

type sentNotification struct {
	UserID  uint64
	Message string
}

func (n *recordingNotifier) Notify(userID uint64, message string) {
	n.sent = append(n.sent, sentNotification{UserID: userID, Message: message})
}
