// job.go
//
// jobtrack - job application tracking data service
//

package models

import (
	"time"
)

// Job represents a tracked job application
type Job struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	GUID        string `gorm:"type:char(36);uniqueIndex;not null"`
	Name        string `gorm:"size:100;not null"`
	Description string `gorm:"type:text;not null"`
	Status      string `gorm:"type:text;not null"`
	URL         string
	Questions   string `gorm:"type:text"`
	Source      string `gorm:"size:100;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	CompanyID uint64  `gorm:"index"`
	Company   Company `gorm:"foreignKey:CompanyID"`

	// Ownership is expressed exclusively through the job_users join table.
	Owners []User  `gorm:"many2many:job_users;joinForeignKey:job_id;joinReferences:user_id"`
	Events []Event `gorm:"foreignKey:JobID"`
}

// JobUser is the ownership-join record associating a Job with its owning User
type JobUser struct {
	JobID  uint64 `gorm:"primaryKey;autoIncrement:false;index:idx_job_users_user_id,priority:2"`
	UserID uint64 `gorm:"primaryKey;autoIncrement:false;index:idx_job_users_user_id,priority:1"`
}

// TableName overrides the table name for Job
func (Job) TableName() string {
	return "jobs"
}

// TableName overrides the table name for JobUser
func (JobUser) TableName() string {
	return "job_users"
}
