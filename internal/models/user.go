// user.go
//
// jobtrack - job application tracking data service
//

package models

import (
	"time"
)

// User mirrors the Authorizer account locally so ownership joins and
// permission grants have a row to reference.
type User struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	Username  string `gorm:"size:255;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Jobs []Job `gorm:"many2many:job_users;joinForeignKey:user_id;joinReferences:job_id"`
}

// UserPermission holds elevated permission grants for a user as a JSON array
// of tokens of the shape "<action>:<entity>:<own|any>".
type UserPermission struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    uint64 `gorm:"uniqueIndex;not null"`
	Grants    JSON   `gorm:"type:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// TableName overrides the table name for UserPermission
func (UserPermission) TableName() string {
	return "user_permissions"
}
