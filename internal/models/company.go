// company.go
//
// jobtrack - job application tracking data service
//

package models

import (
	"time"
)

// Company represents an employer a Job application targets.
// CompanyName is the natural key used by connect-or-create resolution and
// carries a store-level uniqueness constraint.
type Company struct {
	ID                 uint64 `gorm:"primaryKey;autoIncrement"`
	CompanyName        string `gorm:"size:255;uniqueIndex;not null"`
	CompanyDescription string `gorm:"type:text"`
	CompanyPurpose     string `gorm:"type:text"`
	Financial          string `gorm:"type:text"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Jobs []Job `gorm:"foreignKey:CompanyID"`
}

// TableName overrides the table name for Company
func (Company) TableName() string {
	return "companies"
}
