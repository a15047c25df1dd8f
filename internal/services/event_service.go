// event_service.go
//
// jobtrack - job application tracking data service
//

package services

import (
	"errors"

	"github.com/jobwell/jobtrack/internal/models"
	"github.com/jobwell/jobtrack/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// EventInput is the coerced input for event mutations. ID zero means create;
// JobID and UserID are required on create and immutable afterwards.
type EventInput struct {
	ID          uint64
	Format      string
	Contact     string
	Notes       string
	Description string
	FollowUp    string
	DateTime    string
	JobID       uint64
	UserID      uint64
}

// CreateEvent creates an event under an existing job. The parent job must
// exist; a dangling job id fails with ErrNotFound before any write.
func CreateEvent(db *gorm.DB, in EventInput) (*models.Event, error) {
	var event models.Event

	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Job{}).Where("id = ?", in.JobID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return types.ErrNotFound
		}

		event = models.Event{
			Format:      in.Format,
			Contact:     in.Contact,
			Notes:       in.Notes,
			Description: in.Description,
			FollowUp:    in.FollowUp,
			DateTime:    in.DateTime,
			JobID:       in.JobID,
			UserID:      in.UserID,
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return nil, err
	}

	return &event, nil
}

// UpdateEvent updates an event's mutable fields. The acting user must be the
// recorded event owner or hold an update:event:any grant.
func UpdateEvent(db *gorm.DB, in EventInput, actingUserID uint64) (*models.Event, error) {
	var event models.Event

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&event, in.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrNotFound
			}
			return err
		}

		if err := RequirePermission(tx, actingUserID, "update", "event", event.UserID == actingUserID); err != nil {
			return err
		}

		event.Format = in.Format
		event.Contact = in.Contact
		event.Notes = in.Notes
		event.Description = in.Description
		event.FollowUp = in.FollowUp
		event.DateTime = in.DateTime

		return tx.Save(&event).Error
	})
	if err != nil {
		return nil, err
	}

	return &event, nil
}

// DeleteEvent removes an event after the ownership/permission decision and
// returns the deleted row.
func DeleteEvent(db *gorm.DB, eventID, actingUserID uint64) (*models.Event, error) {
	var event models.Event

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrNotFound
			}
			return err
		}

		if err := RequirePermission(tx, actingUserID, "delete", "event", event.UserID == actingUserID); err != nil {
			return err
		}

		return tx.Delete(&event).Error
	})
	if err != nil {
		return nil, err
	}

	return &event, nil
}

// EventByID retrieves an event by primary key.
func EventByID(db *gorm.DB, eventID uint64) (*models.Event, error) {
	var event models.Event
	err := db.First(&event, eventID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// EventsByUserID lists events recorded by a user.
func EventsByUserID(db *gorm.DB, userID uint64) ([]models.Event, error) {
	var events []models.Event
	if err := db.Where("user_id = ?", userID).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// eventsByJobQuery builds the per-job event listing. events is the hinted
// table here, so the statement-level index hint is safe on mysql.
func eventsByJobQuery(db *gorm.DB, jobID uint64) *gorm.DB {
	query := db.Model(&models.Event{}).Where("job_id = ?", jobID)
	if db.Dialector.Name() == "mysql" {
		query = query.Clauses(hints.UseIndex("idx_events_job_id"))
	}
	return query
}

// EventsByJobID lists events under a job.
func EventsByJobID(db *gorm.DB, jobID uint64) ([]models.Event, error) {
	var events []models.Event
	if err := eventsByJobQuery(db, jobID).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
