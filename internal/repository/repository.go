package repository

import (
	"time"

	"github.com/amaan1133/eagle/internal/models"
)

// The repositories below are the tenant-scoped data-access core. Every query
// carries its company/owner predicate in the WHERE clause itself; nothing is
// fetched unscoped and filtered in memory. Mutations whose precondition must
// hold atomically with the write (the company cap, the completed-task lock,
// dependent checks) run check-then-act inside a single transaction.

// TaskPatch is the partial-update input for the admin task path. A nil field
// is absent; Clear* flags distinguish "clear this date" from "leave it".
type TaskPatch struct {
	Title          *string
	Description    *string
	AssignedTo     *uint64
	StartDate      *time.Time
	ClearStartDate bool
	Deadline       *time.Time
	ClearDeadline  bool
	Priority       *models.TaskPriority
	Status         *models.TaskStatus
}

// CompanyRepository defines data access for companies.
type CompanyRepository interface {
	// Create creates a company, enforcing the system-wide cap and name
	// uniqueness atomically with the insert.
	Create(company *models.Company) error

	// FindByID finds a company by ID.
	FindByID(id uint64) (*models.Company, error)

	// List returns all companies.
	List() ([]models.Company, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	// Create creates a new user.
	Create(user *models.User) error

	// FindByID finds a user by ID.
	FindByID(id uint64) (*models.User, error)

	// FindByIdentifier finds a user by username or mobile number.
	FindByIdentifier(identifier string) (*models.User, error)

	// FindInCompany finds a user by ID scoped to a company.
	FindInCompany(id, companyID uint64) (*models.User, error)

	// ListByCompany lists users of one company.
	ListByCompany(companyID uint64) ([]models.User, error)

	// ListAll lists every user with their company preloaded.
	ListAll() ([]models.User, error)

	// SetActive flips the is_active flag.
	SetActive(id uint64, active bool) error

	// UpdateContact sets the mobile number and/or telegram chat id.
	UpdateContact(id uint64, mobileNumber, telegramChatID *string) error

	// Delete removes a user and cascades their comments, messages,
	// subscriptions and notifications; it fails while tasks are assigned.
	Delete(id uint64) error
}

// TaskRepository defines the tenant-scoped task data access.
type TaskRepository interface {
	// Create creates a new task.
	Create(task *models.Task) error

	// FindInCompany finds a task by ID scoped to a company.
	FindInCompany(id, companyID uint64, preload ...string) (*models.Task, error)

	// FindOwned finds a task by ID scoped to assignee and company.
	FindOwned(id, ownerID, companyID uint64) (*models.Task, error)

	// ListByCompany lists a company's tasks, soonest deadline first with
	// undated tasks last, newest created first within equal deadlines.
	ListByCompany(companyID uint64) ([]models.Task, error)

	// ListOwned lists the tasks assigned to one user in one company,
	// newest first.
	ListOwned(ownerID, companyID uint64) ([]models.Task, error)

	// UpdateOwnedStatus applies an assignee status transition atomically
	// with its ownership and lifecycle checks.
	UpdateOwnedStatus(id, ownerID, companyID uint64, to models.TaskStatus) (*models.Task, error)

	// AdminUpdate applies a partial update scoped to a company, validating
	// any reassignment against the same company.
	AdminUpdate(id, companyID uint64, patch TaskPatch) (*models.Task, error)

	// Delete removes a task and cascades its comments and attachments.
	Delete(id, companyID uint64) error

	// CountAssignedTo counts tasks assigned to a user.
	CountAssignedTo(userID uint64) (int64, error)
}

// CommentRepository defines data access for task comments.
type CommentRepository interface {
	// Create appends a comment.
	Create(comment *models.TaskComment) error

	// ListByTask lists a task's comments newest first, authors preloaded.
	ListByTask(taskID uint64) ([]models.TaskComment, error)

	// MarkRead marks every comment on a task not authored by the viewer
	// as read.
	MarkRead(taskID, viewerID uint64) error

	// CountUnreadForAssignee counts unread comments on tasks assigned to
	// a user within a company.
	CountUnreadForAssignee(userID, companyID uint64) (int64, error)

	// CountUnreadForCompany counts unread comments by others across all of
	// a company's tasks (the admin view).
	CountUnreadForCompany(viewerID, companyID uint64) (int64, error)
}

// MessageRepository is the append-only messaging log.
type MessageRepository interface {
	// CreateBroadcast appends a company-wide message.
	CreateBroadcast(msg *models.Message) error

	// CreatePrivate appends a private message.
	CreatePrivate(msg *models.PrivateMessage) error

	// ListByCompany returns the newest limit broadcast messages of one
	// company in chronological order.
	ListByCompany(companyID uint64, limit int) ([]models.Message, error)

	// ListAllCompanies returns the newest limit broadcast messages across
	// every company in chronological order.
	ListAllCompanies(limit int) ([]models.Message, error)

	// ListThread returns the newest limit messages between two users, in
	// either direction, in chronological order.
	ListThread(userA, userB uint64, limit int) ([]models.PrivateMessage, error)

	// ListVisiblePrivate returns the private messages a user may browse:
	// everything for admins, otherwise only threads involving an Admin
	// counterpart.
	ListVisiblePrivate(userID uint64, isAdmin bool, limit int) ([]models.PrivateMessage, error)
}

// AttachmentRepository defines data access for task file attachments.
type AttachmentRepository interface {
	// Create records an uploaded file.
	Create(attachment *models.Attachment) error

	// FindByID finds an attachment by ID.
	FindByID(id uint64) (*models.Attachment, error)

	// ListByTask lists a task's attachments newest first.
	ListByTask(taskID uint64) ([]models.Attachment, error)

	// DeleteOwned removes an attachment if uploaded by the given user.
	DeleteOwned(id, uploaderID uint64) (*models.Attachment, error)
}

// ReminderRepository defines data access for company reminders.
type ReminderRepository interface {
	// Create creates a reminder.
	Create(reminder *models.Reminder) error

	// ListActive lists a company's active reminders, soonest first.
	ListActive(companyID uint64) ([]models.Reminder, error)

	// ListUpcoming lists active reminders whose alert window covers today.
	ListUpcoming(companyID uint64, today time.Time) ([]models.Reminder, error)

	// Deactivate soft-deletes a reminder scoped to a company.
	Deactivate(id, companyID uint64) error
}

// NotificationRepository defines data access for stored notifications and
// push subscriptions.
type NotificationRepository interface {
	// Store appends a notification row.
	Store(notification *models.Notification) error

	// ListByUser lists a user's notifications newest first.
	ListByUser(userID uint64, limit int) ([]models.Notification, error)

	// ReplaceSubscription swaps the user's push subscription.
	ReplaceSubscription(sub *models.PushSubscription) error

	// FindSubscription returns the user's push subscription, if any.
	FindSubscription(userID uint64) (*models.PushSubscription, error)
}
