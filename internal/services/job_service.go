// job_service.go
//
// jobtrack - job application tracking data service
//

package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jobwell/jobtrack/internal/models"
	"github.com/jobwell/jobtrack/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompanyInput is an embedded company reference inside a job submission.
// ID selects an existing company for nested upsert on the update path; Name
// is the natural key for connect-or-create on the create path.
type CompanyInput struct {
	ID          uint64
	Name        string
	Description string
	Purpose     string
}

// JobInput is the validated, coerced input the reconciliation service
// operates on. ID zero means create.
type JobInput struct {
	ID          uint64
	Name        string
	Description string
	Status      string
	URL         string
	Questions   string
	Source      string

	// UpdatedAt is the client-supplied optimistic-concurrency token
	// (RFC3339). Empty skips the check; the GraphQL path never sends one.
	UpdatedAt string

	Company *CompanyInput
}

// UpsertJob creates or updates a Job for actingUserID.
//
// Create path: resolve the company by natural-key lookup (create it when
// absent), create the job, then the ownership-join record. Update path:
// verify the job exists and is owned by actingUserID, check the concurrency
// token, update mutable fields and nested-upsert the company. Either path
// runs in a single transaction so a failure leaves no partial rows.
func UpsertJob(db *gorm.DB, in JobInput, actingUserID uint64) (*models.Job, error) {
	if in.ID != 0 {
		return updateJob(db, in, actingUserID)
	}
	return createJob(db, in, actingUserID)
}

func createJob(db *gorm.DB, in JobInput, actingUserID uint64) (*models.Job, error) {
	var job models.Job

	err := db.Transaction(func(tx *gorm.DB) error {
		var companyID uint64
		if in.Company != nil && in.Company.Name != "" {
			company, err := resolveCompany(tx, *in.Company)
			if err != nil {
				return err
			}
			companyID = company.ID
		}

		job = models.Job{
			GUID:        uuid.NewString(),
			Name:        in.Name,
			Description: in.Description,
			Status:      in.Status,
			URL:         in.URL,
			Questions:   in.Questions,
			Source:      in.Source,
			CompanyID:   companyID,
		}
		if err := tx.Create(&job).Error; err != nil {
			return err
		}

		// Ownership-join record ties the new job to the acting user.
		return tx.Create(&models.JobUser{JobID: job.ID, UserID: actingUserID}).Error
	})
	if err != nil {
		return nil, err
	}

	return &job, nil
}

func updateJob(db *gorm.DB, in JobInput, actingUserID uint64) (*models.Job, error) {
	var job models.Job

	err := db.Transaction(func(tx *gorm.DB) error {
		found, err := jobOwnedBy(tx, in.ID, actingUserID)
		if err != nil {
			return err
		}
		job = *found

		if in.UpdatedAt != "" {
			token, err := time.Parse(time.RFC3339, in.UpdatedAt)
			if err != nil || !token.Truncate(time.Second).Equal(job.UpdatedAt.Truncate(time.Second)) {
				return fmt.Errorf("E_VERSION - Job %d modified since the submitted updatedAt token", job.ID)
			}
		}

		if in.Company != nil {
			// Nested upsert: update the referenced company when an id is
			// given, otherwise create a fresh one and relink.
			if in.Company.ID != 0 {
				updates := models.Company{
					CompanyName:        in.Company.Name,
					CompanyDescription: in.Company.Description,
					CompanyPurpose:     in.Company.Purpose,
				}
				result := tx.Model(&models.Company{}).Where("id = ?", in.Company.ID).Updates(updates)
				if result.Error != nil {
					return result.Error
				}
				if result.RowsAffected == 0 {
					return types.ErrNotFound
				}
				job.CompanyID = in.Company.ID
			} else if in.Company.Name != "" {
				company := models.Company{
					CompanyName:        in.Company.Name,
					CompanyDescription: in.Company.Description,
					CompanyPurpose:     in.Company.Purpose,
				}
				if err := tx.Create(&company).Error; err != nil {
					return err
				}
				job.CompanyID = company.ID
			}
		}

		job.Name = in.Name
		job.Description = in.Description
		job.Status = in.Status
		job.URL = in.URL
		job.Questions = in.Questions
		job.Source = in.Source

		return tx.Save(&job).Error
	})
	if err != nil {
		return nil, err
	}

	return &job, nil
}

// resolveCompany implements connect-or-create on the company natural key.
// Concurrent creators race on the uniqueness constraint; the loser's
// duplicate-key error is swallowed and the lookup re-run. The insert runs
// under a savepoint so the failure does not abort the outer transaction
// (postgres poisons it otherwise), and the retry lookup takes a row lock so
// it reads the winner's committed row instead of the repeatable-read
// snapshot taken before the race.
func resolveCompany(tx *gorm.DB, in CompanyInput) (*models.Company, error) {
	for attempt := 0; ; attempt++ {
		var company models.Company
		lookup := tx
		if attempt > 0 {
			lookup = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		err := lookup.Where("company_name = ?", in.Name).First(&company).Error
		if err == nil {
			return &company, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		company = models.Company{
			CompanyName:        in.Name,
			CompanyDescription: in.Description,
			CompanyPurpose:     in.Purpose,
		}
		err = tx.Transaction(func(nested *gorm.DB) error {
			return nested.Create(&company).Error
		})
		if err == nil {
			return &company, nil
		}
		if isDuplicateKey(err) && attempt == 0 {
			continue
		}
		return nil, err
	}
}

// jobOwnedBy finds a job by id filtered by ownership through job_users.
// Absent and not-owned are indistinguishable: both are ErrNotFound.
func jobOwnedBy(db *gorm.DB, jobID, userID uint64) (*models.Job, error) {
	var job models.Job
	err := db.Joins("JOIN job_users ON job_users.job_id = jobs.id").
		Where("jobs.id = ? AND job_users.user_id = ?", jobID, userID).
		First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// JobByIDOwnedBy is the ownership-filtered lookup used by the edit loader and
// the validator's existence check.
func JobByIDOwnedBy(db *gorm.DB, jobID, userID uint64) (*models.Job, error) {
	return jobOwnedBy(db, jobID, userID)
}

// JobByID retrieves a job by primary key with its company preloaded.
func JobByID(db *gorm.DB, jobID uint64) (*models.Job, error) {
	var job models.Job
	err := db.Preload("Company").First(&job, jobID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// jobsByUserQuery builds the ownership-join listing query. The covering
// index lives on job_users, so on mysql the hint goes on the joined table;
// a statement-level index hint would attach to jobs and fail (error 1176).
func jobsByUserQuery(db *gorm.DB, userID uint64) *gorm.DB {
	join := "JOIN job_users ON job_users.job_id = jobs.id"
	if db.Dialector.Name() == "mysql" {
		join = "JOIN job_users USE INDEX (idx_job_users_user_id) ON job_users.job_id = jobs.id"
	}
	return db.Model(&models.Job{}).Joins(join).
		Where("job_users.user_id = ?", userID)
}

// JobsByUserID lists the jobs owned by a user through the job_users join.
func JobsByUserID(db *gorm.DB, userID uint64) ([]models.Job, error) {
	var jobs []models.Job
	if err := jobsByUserQuery(db, userID).Preload("Company").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// DeleteJob removes a job after the ownership/permission decision.
// Owned events and the ownership-join rows go with it.
func DeleteJob(db *gorm.DB, jobID, actingUserID uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&job, jobID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.ErrNotFound
		}
		if err != nil {
			return err
		}

		isOwner, err := IsJobOwner(tx, jobID, actingUserID)
		if err != nil {
			return err
		}
		if err := RequirePermission(tx, actingUserID, "delete", "job", isOwner); err != nil {
			return err
		}

		if err := tx.Where("job_id = ?", jobID).Delete(&models.Event{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", jobID).Delete(&models.JobUser{}).Error; err != nil {
			return err
		}
		return tx.Delete(&job).Error
	})
}

// IsJobOwner reports whether userID holds an ownership-join row for jobID.
func IsJobOwner(db *gorm.DB, jobID, userID uint64) (bool, error) {
	var count int64
	err := db.Model(&models.JobUser{}).
		Where("job_id = ? AND user_id = ?", jobID, userID).
		Count(&count).Error
	return count > 0, err
}
