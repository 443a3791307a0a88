package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/amaan1133/eagle/internal/apperrors"
	"github.com/amaan1133/eagle/internal/constants"
	"github.com/amaan1133/eagle/internal/models"
	"github.com/amaan1133/eagle/internal/policy"
	"github.com/amaan1133/eagle/internal/repository"
)

var ErrCannotTargetSelf = errors.New("cannot perform this action on your own account")

// UserService provides user administration within the actor's authority.
type UserService struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, companyRepo repository.CompanyRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
	}
}

// CreateUserInput holds the fields for creating a user.
type CreateUserInput struct {
	Username     string
	Password     string
	Role         models.Role
	CompanyID    uint64
	MobileNumber string
}

// Create registers a new user. Admin only. The password is stored as a
// bcrypt digest, never plaintext.
func (s *UserService) Create(actor policy.Actor, input CreateUserInput) (*models.User, error) {
	if !policy.Allowed(actor, policy.ActionCreateUser) {
		return nil, apperrors.ErrUnauthorized
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation, constants.MinPasswordLength)
	}
	if !input.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, input.Role)
	}

	if _, err := s.companyRepo.FindByID(input.CompanyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: company does not exist", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to check company: %w", err)
	}

	if _, err := s.userRepo.FindByIdentifier(username); err == nil {
		return nil, fmt.Errorf("%w: username %q", apperrors.ErrConflict, username)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashed),
		Role:         input.Role,
		CompanyID:    input.CompanyID,
		IsActive:     true,
		MobileNumber: input.MobileNumber,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// ListCompanyUsers lists the users of the actor's own company.
func (s *UserService) ListCompanyUsers(actor policy.Actor) ([]models.User, error) {
	users, err := s.userRepo.ListByCompany(actor.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ListAllUsers lists users across all companies. Admin only.
func (s *UserService) ListAllUsers(actor policy.Actor) ([]models.User, error) {
	if !policy.Allowed(actor, policy.ActionManageUsers) {
		return nil, apperrors.ErrUnauthorized
	}
	users, err := s.userRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Deactivate turns off a user's account, keeping their rows intact. This is
// the safe alternative to deletion for users with assigned tasks.
func (s *UserService) Deactivate(actor policy.Actor, userID uint64) error {
	return s.setActive(actor, userID, false)
}

// Reactivate turns a deactivated account back on.
func (s *UserService) Reactivate(actor policy.Actor, userID uint64) error {
	return s.setActive(actor, userID, true)
}

func (s *UserService) setActive(actor policy.Actor, userID uint64, active bool) error {
	if !policy.Allowed(actor, policy.ActionManageUsers) {
		return apperrors.ErrUnauthorized
	}
	if userID == actor.ID {
		return fmt.Errorf("%w: %v", apperrors.ErrForbidden, ErrCannotTargetSelf)
	}

	if err := s.userRepo.SetActive(userID, active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// Delete permanently removes a user. It fails with HasDependents while any
// task is still assigned to them; otherwise the repository cascades their
// comments, messages, subscriptions and notifications.
func (s *UserService) Delete(actor policy.Actor, userID uint64) error {
	if !policy.Allowed(actor, policy.ActionManageUsers) {
		return apperrors.ErrUnauthorized
	}
	if userID == actor.ID {
		return fmt.Errorf("%w: %v", apperrors.ErrForbidden, ErrCannotTargetSelf)
	}

	if err := s.userRepo.Delete(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	return nil
}

// UpdateContactInput carries the self-service contact fields. Nil means
// leave unchanged.
type UpdateContactInput struct {
	MobileNumber   *string
	TelegramChatID *string
}

// UpdateContact lets a user change their own notification endpoints.
func (s *UserService) UpdateContact(actor policy.Actor, input UpdateContactInput) error {
	if input.TelegramChatID != nil {
		chatID := strings.TrimSpace(*input.TelegramChatID)
		if chatID == "" {
			return fmt.Errorf("%w: chat id is required", apperrors.ErrValidation)
		}
		for _, c := range chatID {
			if c < '0' || c > '9' {
				return fmt.Errorf("%w: chat id should only contain numbers", apperrors.ErrValidation)
			}
		}
		input.TelegramChatID = &chatID
	}

	if err := s.userRepo.UpdateContact(actor.ID, input.MobileNumber, input.TelegramChatID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to update contact: %w", err)
	}
	return nil
}
