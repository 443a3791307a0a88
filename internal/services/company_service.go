package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/amaan1133/eagle/internal/apperrors"
	"github.com/amaan1133/eagle/internal/models"
	"github.com/amaan1133/eagle/internal/policy"
	"github.com/amaan1133/eagle/internal/repository"
)

// CompanyService provides tenant management.
type CompanyService struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companyRepo repository.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// Create registers a new company. Admin only; the system-wide cap and the
// name uniqueness check are enforced atomically with the insert by the
// repository.
func (s *CompanyService) Create(actor policy.Actor, name string) (*models.Company, error) {
	if !policy.Allowed(actor, policy.ActionCreateCompany) {
		return nil, apperrors.ErrUnauthorized
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: company name is required", apperrors.ErrValidation)
	}

	company := &models.Company{Name: name}
	if err := s.companyRepo.Create(company); err != nil {
		return nil, err
	}
	return company, nil
}

// List returns every company. The login form needs the tenant list before
// authentication, so no actor is required.
func (s *CompanyService) List() ([]models.Company, error) {
	companies, err := s.companyRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

// Get finds a company by ID.
func (s *CompanyService) Get(id uint64) (*models.Company, error) {
	company, err := s.companyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	return company, nil
}
