// schema_test.go
//
// jobtrack - job application tracking data service
//

package graphql_test

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	gql "github.com/graphql-go/graphql"
	"github.com/jobwell/jobtrack/internal/graphql"
	"github.com/jobwell/jobtrack/internal/models"
	"github.com/jobwell/jobtrack/internal/services"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
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

func buildSchema(t *testing.T, db *gorm.DB) gql.Schema {
	t.Helper()
	schema, err := graphql.NewSchema(db)
	if err != nil {
		t.Fatalf("Failed to build schema: %v", err)
	}
	return schema
}

func execute(t *testing.T, schema gql.Schema, ctx context.Context, query string, variables map[string]interface{}) *gql.Result {
	t.Helper()
	return gql.Do(gql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: variables,
		Context:        ctx,
	})
}

// TestQueryMalformedIDsResolveEmpty verifies strict id coercion: malformed ids
// resolve to null or an empty list, never an error and never an unfiltered
// result set.
func TestQueryMalformedIDsResolveEmpty(t *testing.T) {
	db := setupTestDB(t)
	user, err := services.EnsureUser(db, "kody@example.com", "")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	job, err := services.UpsertJob(db, services.JobInput{
		Name: "Backend Engineer", Description: "d", Status: "applied", Source: "referral",
	}, user.ID)
	if err != nil {
		t.Fatalf("UpsertJob failed: %v", err)
	}
	if _, err := services.CreateEvent(db, services.EventInput{
		Notes: "intro call", JobID: job.ID, UserID: user.ID,
	}); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	schema := buildSchema(t, db)
	ctx := context.Background()

	result := execute(t, schema, ctx, `{ EventById(id: "abc") { id notes } }`, nil)
	if len(result.Errors) != 0 {
		t.Fatalf("Unexpected errors: %v", result.Errors)
	}
	data := result.Data.(map[string]interface{})
	if data["EventById"] != nil {
		t.Errorf("Expected null for malformed id, got %v", data["EventById"])
	}

	result = execute(t, schema, ctx, `{ JobsByUserId(userId: "abc") { id } }`, nil)
	if len(result.Errors) != 0 {
		t.Fatalf("Unexpected errors: %v", result.Errors)
	}
	data = result.Data.(map[string]interface{})
	jobs, ok := data["JobsByUserId"].([]interface{})
	if !ok || len(jobs) != 0 {
		t.Errorf("Expected an empty list for malformed userId, got %v", data["JobsByUserId"])
	}

	result = execute(t, schema, ctx, `{ JobById(id: "0") { id } }`, nil)
	data = result.Data.(map[string]interface{})
	if data["JobById"] != nil {
		t.Errorf("Expected null for zero id, got %v", data["JobById"])
	}
}

// TestQueryJobWithCompany verifies the detail query resolves the linked
// company.
func TestQueryJobWithCompany(t *testing.T) {
	db := setupTestDB(t)
	user, err := services.EnsureUser(db, "kody@example.com", "")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if _, err := services.UpsertJob(db, services.JobInput{
		Name: "Backend Engineer", Description: "d", Status: "applied", Source: "referral",
		Company: &services.CompanyInput{Name: "Acme Co"},
	}, user.ID); err != nil {
		t.Fatalf("UpsertJob failed: %v", err)
	}

	schema := buildSchema(t, db)

	result := execute(t, schema, context.Background(), `{
		JobById(id: "1") {
			name
			guid
			company { company_name }
		}
	}`, nil)
	if len(result.Errors) != 0 {
		t.Fatalf("Unexpected errors: %v", result.Errors)
	}

	jobData := result.Data.(map[string]interface{})["JobById"].(map[string]interface{})
	if jobData["name"] != "Backend Engineer" {
		t.Errorf("Expected job name, got %v", jobData["name"])
	}
	if jobData["guid"] == "" {
		t.Error("Expected a guid")
	}
	company := jobData["company"].(map[string]interface{})
	if company["company_name"] != "Acme Co" {
		t.Errorf("Expected company, got %v", company)
	}
}

// TestCreateJobMutation verifies the mutation creates the job, resolves the
// company and writes the ownership-join row for the named user.
func TestCreateJobMutation(t *testing.T) {
	db := setupTestDB(t)
	user, err := services.EnsureUser(db, "kody@example.com", "")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}

	schema := buildSchema(t, db)
	ctx := graphql.WithActingUser(context.Background(), user.ID)

	result := execute(t, schema, ctx, `mutation {
		CreateJob(
			name: "Backend Engineer"
			user_id: "1"
			status: "applied"
			description: "Build the data plane"
			source: "referral"
			company_name: "Acme Co"
		) {
			id
			name
			company { company_name }
		}
	}`, nil)
	if len(result.Errors) != 0 {
		t.Fatalf("Unexpected errors: %v", result.Errors)
	}

	created := result.Data.(map[string]interface{})["CreateJob"].(map[string]interface{})
	if created["name"] != "Backend Engineer" {
		t.Errorf("Expected created job, got %v", created)
	}

	isOwner, err := services.IsJobOwner(db, 1, user.ID)
	if err != nil {
		t.Fatalf("IsJobOwner failed: %v", err)
	}
	if !isOwner {
		t.Error("Expected an ownership-join row for the named user")
	}

	var companyCount int64
	db.Model(&models.Company{}).Count(&companyCount)
	if companyCount != 1 {
		t.Errorf("Expected 1 company, got %d", companyCount)
	}
}

// TestCreateJobMutationValidation verifies both boundaries share the
// constraint table.
func TestCreateJobMutationValidation(t *testing.T) {
	db := setupTestDB(t)
	user, err := services.EnsureUser(db, "kody@example.com", "")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}

	schema := buildSchema(t, db)
	ctx := graphql.WithActingUser(context.Background(), user.ID)

	result := execute(t, schema, ctx, `mutation {
		CreateJob(name: "Backend Engineer", user_id: "1") { id }
	}`, nil)
	if len(result.Errors) == 0 {
		t.Fatal("Expected a validation error for missing required fields")
	}

	var count int64
	db.Model(&models.Job{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no jobs written, got %d", count)
	}
}

// TestUpdateJobMutationOwnership verifies the acting user from context guards
// the update path.
func TestUpdateJobMutationOwnership(t *testing.T) {
	db := setupTestDB(t)
	owner, err := services.EnsureUser(db, "kody@example.com", "")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	other, err := services.EnsureUser(db, "hannah@example.com", "")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if _, err := services.UpsertJob(db, services.JobInput{
		Name: "Backend Engineer", Description: "d", Status: "applied", Source: "referral",
	}, owner.ID); err != nil {
		t.Fatalf("UpsertJob failed: %v", err)
	}

	schema := buildSchema(t, db)
	update := `mutation {
		UpdateJob(
			id: "1"
			name: "Staff Engineer"
			status: "interviewing"
			description: "Own the data plane"
			source: "referral"
		) { id name }
	}`

	// Foreign acting user
	result := execute(t, schema, graphql.WithActingUser(context.Background(), other.ID), update, nil)
	if len(result.Errors) == 0 {
		t.Error("Expected a foreign update to fail")
	}

	// No acting user at all
	result = execute(t, schema, context.Background(), update, nil)
	if len(result.Errors) == 0 {
		t.Error("Expected an update without a session to fail")
	}

	// Owner
	result = execute(t, schema, graphql.WithActingUser(context.Background(), owner.ID), update, nil)
	if len(result.Errors) != 0 {
		t.Fatalf("Unexpected errors: %v", result.Errors)
	}
	updated := result.Data.(map[string]interface{})["UpdateJob"].(map[string]interface{})
	if updated["name"] != "Staff Engineer" {
		t.Errorf("Expected updated name, got %v", updated["name"])
	}
}

// TestEventMutations covers create/update/delete through the schema.
func TestEventMutations(t *testing.T) {
	db := setupTestDB(t)
	user, err := services.EnsureUser(db, "kody@example.com", "")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if _, err := services.UpsertJob(db, services.JobInput{
		Name: "Backend Engineer", Description: "d", Status: "applied", Source: "referral",
	}, user.ID); err != nil {
		t.Fatalf("UpsertJob failed: %v", err)
	}

	schema := buildSchema(t, db)
	ctx := graphql.WithActingUser(context.Background(), user.ID)

	result := execute(t, schema, ctx, `mutation {
		CreateEvent(job_id: "1", user_id: "1", format: "phone", notes: "intro call") { id notes }
	}`, nil)
	if len(result.Errors) != 0 {
		t.Fatalf("Unexpected errors: %v", result.Errors)
	}

	result = execute(t, schema, ctx, `mutation {
		UpdateEvent(id: "1", format: "onsite", notes: "loop scheduled") { id format }
	}`, nil)
	if len(result.Errors) != 0 {
		t.Fatalf("Unexpected errors: %v", result.Errors)
	}
	updated := result.Data.(map[string]interface{})["UpdateEvent"].(map[string]interface{})
	if updated["format"] != "onsite" {
		t.Errorf("Expected updated format, got %v", updated["format"])
	}

	result = execute(t, schema, ctx, `mutation {
		DeleteEvent(id: "1") { id }
	}`, nil)
	if len(result.Errors) != 0 {
		t.Fatalf("Unexpected errors: %v", result.Errors)
	}

	result = execute(t, schema, ctx, `{ EventsByJobId(jobId: "1") { id } }`, nil)
	events := result.Data.(map[string]interface{})["EventsByJobId"].([]interface{})
	if len(events) != 0 {
		t.Errorf("Expected no events after delete, got %d", len(events))
	}
}

// TestCompanyMutations covers the company create/update surface.
func TestCompanyMutations(t *testing.T) {
	db := setupTestDB(t)
	schema := buildSchema(t, db)
	ctx := context.Background()

	result := execute(t, schema, ctx, `mutation {
		CreateCompany(company_name: "Acme Co", company_purpose: "anvils") { id company_name }
	}`, nil)
	if len(result.Errors) != 0 {
		t.Fatalf("Unexpected errors: %v", result.Errors)
	}

	// Connect-or-create: same name resolves to the same row
	result = execute(t, schema, ctx, `mutation {
		CreateCompany(company_name: "Acme Co") { id }
	}`, nil)
	if len(result.Errors) != 0 {
		t.Fatalf("Unexpected errors: %v", result.Errors)
	}
	var count int64
	db.Model(&models.Company{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 company, got %d", count)
	}

	result = execute(t, schema, ctx, `mutation {
		UpdateCompany(id: "1", company_name: "Acme Corporation") { company_name }
	}`, nil)
	if len(result.Errors) != 0 {
		t.Fatalf("Unexpected errors: %v", result.Errors)
	}
	updated := result.Data.(map[string]interface{})["UpdateCompany"].(map[string]interface{})
	if updated["company_name"] != "Acme Corporation" {
		t.Errorf("Expected updated company, got %v", updated)
	}

	result = execute(t, schema, ctx, `mutation {
		UpdateCompany(id: "9999", company_name: "Ghost") { id }
	}`, nil)
	if len(result.Errors) == 0 {
		t.Error("Expected an error for a dangling company id")
	}
}
