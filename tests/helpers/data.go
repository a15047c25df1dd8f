// data.go
//
// jobtrack - job application tracking data service
//

package helpers

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jobwell/jobtrack/internal/models"
	"gorm.io/gorm"
)

// CreateTestUser creates a user row and returns it
func CreateTestUser(t *testing.T, db *gorm.DB, email, username string) *models.User {
	user := models.User{
		Email:    email,
		Username: username,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return &user
}

// CreateTestCompany creates a company row and returns it
func CreateTestCompany(t *testing.T, db *gorm.DB, name string) *models.Company {
	company := models.Company{
		CompanyName: name,
	}
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("Failed to create company: %v", err)
	}
	return &company
}

// CreateTestJob creates a job owned by ownerID, with an optional company
func CreateTestJob(t *testing.T, db *gorm.DB, ownerID uint64, name string, company *models.Company) *models.Job {
	job := models.Job{
		GUID:        uuid.NewString(),
		Name:        name,
		Description: fmt.Sprintf("Description for %s", name),
		Status:      "applied",
		Source:      "referral",
	}
	if company != nil {
		job.CompanyID = company.ID
	}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("Failed to create job: %v", err)
	}
	if err := db.Create(&models.JobUser{JobID: job.ID, UserID: ownerID}).Error; err != nil {
		t.Fatalf("Failed to create job ownership row: %v", err)
	}
	return &job
}

// CreateTestEvent creates an event under a job, recorded by userID
func CreateTestEvent(t *testing.T, db *gorm.DB, jobID, userID uint64, notes string) *models.Event {
	event := models.Event{
		Format: "phone",
		Notes:  notes,
		JobID:  jobID,
		UserID: userID,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}
	return &event
}

// GrantTestPermission replaces a user's permission grants with the given tokens
func GrantTestPermission(t *testing.T, db *gorm.DB, userID uint64, grants ...string) {
	raw, err := json.Marshal(grants)
	if err != nil {
		t.Fatalf("Failed to marshal grants: %v", err)
	}

	perm := models.UserPermission{UserID: userID}
	if err := db.Where("user_id = ?", userID).FirstOrCreate(&perm).Error; err != nil {
		t.Fatalf("Failed to find or create permission row: %v", err)
	}
	perm.Grants.JSON = raw
	if err := db.Save(&perm).Error; err != nil {
		t.Fatalf("Failed to save grants: %v", err)
	}
}
