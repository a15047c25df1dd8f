// handlers_test.go
//
// jobtrack - job application tracking data service
//

package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/jobwell/jobtrack/internal/handlers"
	"github.com/jobwell/jobtrack/internal/models"
	"github.com/jobwell/jobtrack/internal/services"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// Auto-migrate models
	err = db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Job{},
		&models.JobUser{},
		&models.Event{},
		&models.UserPermission{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// sessionUser stands in for the auth middleware, stamping the session user on
// the request context the way the Authorizer validation does.
func sessionUser(email string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"email": email,
		})
		return c.Next()
	}
}

// TestUpsertJobFormCreate verifies the form submit creates the job and
// redirects to the detail location.
func TestUpsertJobFormCreate(t *testing.T) {
	db := setupTestDB(t)

	app := fiber.New()
	handler := &handlers.JobFormHandler{DB: db}
	app.Post("/api/jobs", sessionUser("kody@example.com"), handler.UpsertJob)

	form := url.Values{}
	form.Set("name", "Backend Engineer")
	form.Set("description", "Build the data plane")
	form.Set("status", "applied")
	form.Set("source", "referral")
	form.Set("company_name", "Acme Co")

	req := httptest.NewRequest("POST", "/api/jobs", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	if resp.StatusCode != fiber.StatusSeeOther {
		t.Errorf("Expected status 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/users/1/jobs/1" {
		t.Errorf("Expected redirect to /users/1/jobs/1, got %q", loc)
	}

	var count int64
	db.Model(&models.Job{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 job, got %d", count)
	}
}

// TestUpsertJobFormValidation verifies a failed final submit responds 400 with
// field errors and writes nothing.
func TestUpsertJobFormValidation(t *testing.T) {
	db := setupTestDB(t)

	app := fiber.New()
	handler := &handlers.JobFormHandler{DB: db}
	app.Post("/api/jobs", sessionUser("kody@example.com"), handler.UpsertJob)

	form := url.Values{}
	form.Set("description", "Build the data plane")
	form.Set("status", "applied")
	form.Set("source", "referral")

	req := httptest.NewRequest("POST", "/api/jobs", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}

	var result struct {
		Status     string `json:"status"`
		Submission struct {
			FieldErrors map[string][]string `json:"fieldErrors"`
		} `json:"submission"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.Status != "error" {
		t.Errorf("Expected status error, got %q", result.Status)
	}
	if msgs := result.Submission.FieldErrors["name"]; len(msgs) == 0 || msgs[0] != "Required" {
		t.Errorf("Expected name Required, got %v", result.Submission.FieldErrors)
	}

	var count int64
	db.Model(&models.Job{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no jobs written, got %d", count)
	}
}

// TestUpsertJobFormIdleIntent verifies an intermediate validation ping reports
// without writing.
func TestUpsertJobFormIdleIntent(t *testing.T) {
	db := setupTestDB(t)

	app := fiber.New()
	handler := &handlers.JobFormHandler{DB: db}
	app.Post("/api/jobs", sessionUser("kody@example.com"), handler.UpsertJob)

	form := url.Values{}
	form.Set("intent", "validate")
	form.Set("name", "Backend Engineer")
	form.Set("description", "Build the data plane")
	form.Set("status", "applied")
	form.Set("source", "referral")

	req := httptest.NewRequest("POST", "/api/jobs", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["status"] != "idle" {
		t.Errorf("Expected status idle, got %v", result["status"])
	}

	var count int64
	db.Model(&models.Job{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no jobs written on idle intent, got %d", count)
	}
}

// TestGetJobPublic verifies the public detail route and its strict id
// coercion.
func TestGetJobPublic(t *testing.T) {
	db := setupTestDB(t)
	user, err := services.EnsureUser(db, "kody@example.com", "")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	job, err := services.UpsertJob(db, services.JobInput{
		Name: "Backend Engineer", Description: "d", Status: "applied", Source: "referral",
		Company: &services.CompanyInput{Name: "Acme Co"},
	}, user.ID)
	if err != nil {
		t.Fatalf("UpsertJob failed: %v", err)
	}

	app := fiber.New()
	handler := &handlers.JobHandler{DB: db}
	app.Get("/api/jobs/:jobId", handler.GetJob)

	req := httptest.NewRequest("GET", "/api/jobs/1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var result struct {
		Job     models.Job `json:"job"`
		TimeAgo string     `json:"timeAgo"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.Job.ID != job.ID {
		t.Errorf("Expected job %d, got %d", job.ID, result.Job.ID)
	}
	if result.Job.Company.CompanyName != "Acme Co" {
		t.Errorf("Expected preloaded company, got %+v", result.Job.Company)
	}
	if result.TimeAgo == "" {
		t.Error("Expected a timeAgo distance")
	}

	// Malformed and absent ids both read as 404
	for _, id := range []string{"abc", "0", "9999"} {
		req := httptest.NewRequest("GET", "/api/jobs/"+id, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to execute request: %v", err)
		}
		if resp.StatusCode != fiber.StatusNotFound {
			t.Errorf("id %q: expected status 404, got %d", id, resp.StatusCode)
		}
	}
}

// TestGetJobEditOwnership verifies the edit loader obscures foreign jobs.
func TestGetJobEditOwnership(t *testing.T) {
	db := setupTestDB(t)
	owner, err := services.EnsureUser(db, "kody@example.com", "")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if _, err := services.UpsertJob(db, services.JobInput{
		Name: "Backend Engineer", Description: "d", Status: "applied", Source: "referral",
	}, owner.ID); err != nil {
		t.Fatalf("UpsertJob failed: %v", err)
	}

	handler := &handlers.JobHandler{DB: db}

	ownerApp := fiber.New()
	ownerApp.Get("/api/jobs/:jobId/edit", sessionUser("kody@example.com"), handler.GetJobEdit)
	req := httptest.NewRequest("GET", "/api/jobs/1/edit", nil)
	resp, err := ownerApp.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("Expected owner to load the editor, got %d", resp.StatusCode)
	}

	otherApp := fiber.New()
	otherApp.Get("/api/jobs/:jobId/edit", sessionUser("hannah@example.com"), handler.GetJobEdit)
	req = httptest.NewRequest("GET", "/api/jobs/1/edit", nil)
	resp, err = otherApp.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("Expected foreign job to read as 404, got %d", resp.StatusCode)
	}
}

// TestDeleteJobForm verifies the delete submit removes the job and redirects
// with the toast cookie.
func TestDeleteJobForm(t *testing.T) {
	db := setupTestDB(t)
	owner, err := services.EnsureUser(db, "kody@example.com", "")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	job, err := services.UpsertJob(db, services.JobInput{
		Name: "Backend Engineer", Description: "d", Status: "applied", Source: "referral",
	}, owner.ID)
	if err != nil {
		t.Fatalf("UpsertJob failed: %v", err)
	}

	app := fiber.New()
	handler := &handlers.JobHandler{DB: db}
	app.Post("/api/jobs/:jobId/delete", sessionUser("kody@example.com"), handler.DeleteJob)

	form := url.Values{}
	form.Set("intent", "delete-job")
	form.Set("jobId", "1")

	req := httptest.NewRequest("POST", "/api/jobs/1/delete", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != fiber.StatusSeeOther {
		t.Errorf("Expected status 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/users/kody/jobs" {
		t.Errorf("Expected redirect to /users/kody/jobs, got %q", loc)
	}

	toastSeen := false
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "en_toast" && cookie.Value != "" {
			toastSeen = true
		}
	}
	if !toastSeen {
		t.Error("Expected the en_toast cookie to be set")
	}

	var count int64
	db.Model(&models.Job{}).Where("id = ?", job.ID).Count(&count)
	if count != 0 {
		t.Error("Expected the job to be deleted")
	}
}

// TestDeleteJobFormWrongIntent verifies the intent gate rejects the submit.
func TestDeleteJobFormWrongIntent(t *testing.T) {
	db := setupTestDB(t)
	owner, err := services.EnsureUser(db, "kody@example.com", "")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if _, err := services.UpsertJob(db, services.JobInput{
		Name: "Backend Engineer", Description: "d", Status: "applied", Source: "referral",
	}, owner.ID); err != nil {
		t.Fatalf("UpsertJob failed: %v", err)
	}

	app := fiber.New()
	handler := &handlers.JobHandler{DB: db}
	app.Post("/api/jobs/:jobId/delete", sessionUser("kody@example.com"), handler.DeleteJob)

	form := url.Values{}
	form.Set("intent", "submit")
	form.Set("jobId", "1")

	req := httptest.NewRequest("POST", "/api/jobs/1/delete", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}

	var count int64
	db.Model(&models.Job{}).Count(&count)
	if count != 1 {
		t.Error("Expected the job to survive a rejected intent")
	}
}

// TestAdminPermissionsRoundTrip verifies the grant management endpoints,
// including the flexible userId/grants request shapes.
func TestAdminPermissionsRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	user, err := services.EnsureUser(db, "kody@example.com", "")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}

	app := fiber.New()
	handler := &handlers.AdminHandler{DB: db}
	app.Post("/api/admin/permissions", handler.SetPermissions)
	app.Get("/api/admin/permissions/:userId", handler.GetPermissions)

	// userId as a JSON string, grants as a single token
	body := strings.NewReader(`{"userId": "1", "grants": "delete:job:any"}`)
	req := httptest.NewRequest("POST", "/api/admin/permissions", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/api/admin/permissions/1", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var result struct {
		UserID uint64   `json:"userId"`
		Grants []string `json:"grants"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.UserID != user.ID {
		t.Errorf("Expected userId %d, got %d", user.ID, result.UserID)
	}
	if len(result.Grants) != 1 || result.Grants[0] != "delete:job:any" {
		t.Errorf("Expected the granted token back, got %v", result.Grants)
	}

	// Malformed token is rejected
	body = strings.NewReader(`{"userId": 1, "grants": ["delete:job:everything"]}`)
	req = httptest.NewRequest("POST", "/api/admin/permissions", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}
