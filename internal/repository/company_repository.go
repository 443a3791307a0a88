package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/amaan1133/eagle/internal/apperrors"
	"github.com/amaan1133/eagle/internal/database"
	"github.com/amaan1133/eagle/internal/models"
)

// GormCompanyRepository is a GORM implementation of CompanyRepository.
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new CompanyRepository.
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &GormCompanyRepository{db: db}
}

// Create inserts a company. The cap and name-uniqueness checks run in the
// same transaction as the insert so no concurrent create can slip past them.
// The transaction is retried on transient lock contention.
func (r *GormCompanyRepository) Create(company *models.Company) error {
	return database.WithRetry(func() error {
		return r.createTx(company)
	})
}

func (r *GormCompanyRepository) createTx(company *models.Company) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Company{}).Count(&count).Error; err != nil {
			return apperrors.NewStorageError("count companies", err)
		}
		if count >= models.MaxCompanies {
			return fmt.Errorf("%w: at most %d companies may exist", apperrors.ErrLimitExceeded, models.MaxCompanies)
		}

		var existing models.Company
		err := tx.Where("name = ?", company.Name).First(&existing).Error
		if err == nil {
			return fmt.Errorf("%w: company name %q", apperrors.ErrConflict, company.Name)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewStorageError("check company name", err)
		}

		if err := tx.Create(company).Error; err != nil {
			return apperrors.NewStorageError("create company", err)
		}
		return nil
	})
}

// FindByID finds a company by ID.
func (r *GormCompanyRepository) FindByID(id uint64) (*models.Company, error) {
	var company models.Company
	if err := r.db.First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// List returns all companies.
func (r *GormCompanyRepository) List() ([]models.Company, error) {
	var companies []models.Company
	if err := r.db.Order("name").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}
