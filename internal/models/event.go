// event.go
//
// jobtrack - job application tracking data service
//

package models

import (
	"time"
)

// Event represents a follow-up activity (call, interview, email) on a Job.
// All descriptive fields are free text; date_time is kept as text to match
// the caller-supplied format.
type Event struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	Format      string
	Contact     string
	Notes       string `gorm:"type:text"`
	Description string `gorm:"type:text"`
	FollowUp    string `gorm:"column:follow_up;type:text"`
	DateTime    string `gorm:"column:date_time"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	JobID  uint64 `gorm:"not null;index:idx_events_job_id"`
	UserID uint64 `gorm:"not null;index"`
}

// TableName overrides the table name for Event
func (Event) TableName() string {
	return "events"
}
