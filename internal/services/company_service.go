// company_service.go
//
// jobtrack - job application tracking data service
//

package services

import (
	"errors"

	"github.com/jobwell/jobtrack/internal/models"
	"github.com/jobwell/jobtrack/internal/types"
	"gorm.io/gorm"
)

// CreateCompany resolves a company by natural key, creating it when absent.
// Explicit creation shares connect-or-create semantics with the job create
// path so a concurrent duplicate never surfaces as a constraint error.
func CreateCompany(db *gorm.DB, in CompanyInput) (*models.Company, error) {
	var company *models.Company

	err := db.Transaction(func(tx *gorm.DB) error {
		resolved, err := resolveCompany(tx, in)
		if err != nil {
			return err
		}
		company = resolved
		return nil
	})
	if err != nil {
		return nil, err
	}

	return company, nil
}

// UpdateCompany updates a company's mutable fields by id.
func UpdateCompany(db *gorm.DB, in CompanyInput) (*models.Company, error) {
	var company models.Company

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&company, in.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrNotFound
			}
			return err
		}

		if in.Name != "" {
			company.CompanyName = in.Name
		}
		company.CompanyDescription = in.Description
		company.CompanyPurpose = in.Purpose

		return tx.Save(&company).Error
	})
	if err != nil {
		return nil, err
	}

	return &company, nil
}

// CompanyByID retrieves a company by primary key.
func CompanyByID(db *gorm.DB, companyID uint64) (*models.Company, error) {
	var company models.Company
	err := db.First(&company, companyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// CompanyByName retrieves a company by its natural key.
func CompanyByName(db *gorm.DB, name string) (*models.Company, error) {
	var company models.Company
	err := db.Where("company_name = ?", name).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// CompaniesByUserID lists the companies attached to jobs the user owns.
func CompaniesByUserID(db *gorm.DB, userID uint64) ([]models.Company, error) {
	var companies []models.Company
	err := db.Distinct("companies.*").
		Joins("JOIN jobs ON jobs.company_id = companies.id").
		Joins("JOIN job_users ON job_users.job_id = jobs.id").
		Where("job_users.user_id = ?", userID).
		Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}
