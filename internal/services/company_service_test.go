// company_service_test.go
//
// jobtrack - job application tracking data service
//

package services_test

import (
	"errors"
	"testing"

	"github.com/jobwell/jobtrack/internal/models"
	"github.com/jobwell/jobtrack/internal/services"
	"github.com/jobwell/jobtrack/internal/types"
)

// TestCreateCompanyConnectOrCreate verifies explicit company creation shares
// the natural-key resolution with the job create path.
func TestCreateCompanyConnectOrCreate(t *testing.T) {
	db := setupTestDB(t)

	first, err := services.CreateCompany(db, services.CompanyInput{Name: "Acme Co", Purpose: "anvils"})
	if err != nil {
		t.Fatalf("CreateCompany failed: %v", err)
	}

	second, err := services.CreateCompany(db, services.CompanyInput{Name: "Acme Co", Purpose: "different"})
	if err != nil {
		t.Fatalf("CreateCompany second call failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("Expected the existing company, got %d and %d", first.ID, second.ID)
	}

	var count int64
	db.Model(&models.Company{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 company, got %d", count)
	}
}

// TestUpdateCompany verifies field updates and the absent-id error.
func TestUpdateCompany(t *testing.T) {
	db := setupTestDB(t)

	company, err := services.CreateCompany(db, services.CompanyInput{Name: "Acme Co"})
	if err != nil {
		t.Fatalf("CreateCompany failed: %v", err)
	}

	updated, err := services.UpdateCompany(db, services.CompanyInput{
		ID:          company.ID,
		Name:        "Acme Corporation",
		Description: "makers of fine anvils",
	})
	if err != nil {
		t.Fatalf("UpdateCompany failed: %v", err)
	}
	if updated.CompanyName != "Acme Corporation" || updated.CompanyDescription != "makers of fine anvils" {
		t.Errorf("Expected updated fields, got %q / %q", updated.CompanyName, updated.CompanyDescription)
	}

	if _, err := services.UpdateCompany(db, services.CompanyInput{ID: 9999, Name: "Ghost"}); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

// TestCompanyLookups covers by-id, by-name and the absent cases.
func TestCompanyLookups(t *testing.T) {
	db := setupTestDB(t)

	company, err := services.CreateCompany(db, services.CompanyInput{Name: "Acme Co"})
	if err != nil {
		t.Fatalf("CreateCompany failed: %v", err)
	}

	byID, err := services.CompanyByID(db, company.ID)
	if err != nil || byID.CompanyName != "Acme Co" {
		t.Errorf("CompanyByID: got %+v, %v", byID, err)
	}
	byName, err := services.CompanyByName(db, "Acme Co")
	if err != nil || byName.ID != company.ID {
		t.Errorf("CompanyByName: got %+v, %v", byName, err)
	}

	if _, err := services.CompanyByID(db, 9999); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("Expected ErrNotFound by id, got %v", err)
	}
	if _, err := services.CompanyByName(db, "Ghost"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("Expected ErrNotFound by name, got %v", err)
	}
}

// TestCompaniesByUserID verifies the double join through jobs and job_users.
func TestCompaniesByUserID(t *testing.T) {
	db := setupTestDB(t)
	kody := createUser(t, db, "kody@example.com")
	hannah := createUser(t, db, "hannah@example.com")

	if _, err := services.UpsertJob(db, services.JobInput{
		Name: "Backend Engineer", Description: "d", Status: "applied", Source: "referral",
		Company: &services.CompanyInput{Name: "Acme Co"},
	}, kody.ID); err != nil {
		t.Fatalf("UpsertJob failed: %v", err)
	}
	// Second job at the same company must not duplicate the listing
	if _, err := services.UpsertJob(db, services.JobInput{
		Name: "SRE", Description: "d", Status: "applied", Source: "referral",
		Company: &services.CompanyInput{Name: "Acme Co"},
	}, kody.ID); err != nil {
		t.Fatalf("UpsertJob failed: %v", err)
	}
	if _, err := services.UpsertJob(db, services.JobInput{
		Name: "Designer", Description: "d", Status: "applied", Source: "referral",
		Company: &services.CompanyInput{Name: "Globex"},
	}, hannah.ID); err != nil {
		t.Fatalf("UpsertJob failed: %v", err)
	}

	companies, err := services.CompaniesByUserID(db, kody.ID)
	if err != nil {
		t.Fatalf("CompaniesByUserID failed: %v", err)
	}
	if len(companies) != 1 {
		t.Errorf("Expected 1 distinct company, got %d", len(companies))
	}
	if len(companies) == 1 && companies[0].CompanyName != "Acme Co" {
		t.Errorf("Expected Acme Co, got %q", companies[0].CompanyName)
	}
}

// TestEnsureUser covers the mirror-row behavior and username derivation.
func TestEnsureUser(t *testing.T) {
	db := setupTestDB(t)

	user, err := services.EnsureUser(db, "kody@example.com", "")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if user.Username != "kody" {
		t.Errorf("Expected username derived from email local part, got %q", user.Username)
	}

	again, err := services.EnsureUser(db, "kody@example.com", "someone-else")
	if err != nil {
		t.Fatalf("EnsureUser second call failed: %v", err)
	}
	if again.ID != user.ID || again.Username != "kody" {
		t.Errorf("Expected the existing row untouched, got %+v", again)
	}

	if _, err := services.EnsureUser(db, "", ""); err == nil {
		t.Error("Expected empty email to be rejected")
	}
}

// TestEnsureUserUsernameCollision covers two distinct emails sharing a local
// part; the second account falls back to the full email as username.
func TestEnsureUserUsernameCollision(t *testing.T) {
	db := setupTestDB(t)

	first, err := services.EnsureUser(db, "kody@alpha.example", "")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if first.Username != "kody" {
		t.Fatalf("Expected username kody, got %q", first.Username)
	}

	second, err := services.EnsureUser(db, "kody@beta.example", "")
	if err != nil {
		t.Fatalf("EnsureUser with colliding local part failed: %v", err)
	}
	if second.ID == first.ID {
		t.Fatal("Expected a distinct user row for the second email")
	}
	if second.Username != "kody@beta.example" {
		t.Errorf("Expected fallback to the full email, got %q", second.Username)
	}

	// Resolving the second email again reuses its row
	again, err := services.EnsureUser(db, "kody@beta.example", "")
	if err != nil {
		t.Fatalf("EnsureUser repeat call failed: %v", err)
	}
	if again.ID != second.ID {
		t.Errorf("Expected the existing row, got %+v", again)
	}
}
