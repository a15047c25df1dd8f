package services

import (
	"fmt"
	"log"

	"github.com/jobwell/jobtrack/internal/config"
	"github.com/jobwell/jobtrack/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult reports the service and its upstream dependencies.
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Authorizer   string            `json:"authorizer"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

func (r *HealthCheckResult) fail(message string) {
	r.Status = "unhealthy"
	if r.ErrorMessage == "" {
		r.ErrorMessage = message
	} else {
		r.ErrorMessage += "; " + message
	}
	log.Printf("Health check failed - %s", message)
}

// HealthCheck probes the database pool and the Authorizer endpoint.
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	checkDatabase(cfg, db, &result)
	checkAuthorizer(cfg, &result)

	if result.Status == "healthy" {
		log.Println("Health check passed - all systems operational")
	}

	return result
}

func checkDatabase(cfg *config.Config, db *gorm.DB, result *HealthCheckResult) {
	sqlDB, err := db.DB()
	if err != nil {
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.fail(fmt.Sprintf("database connection: %v", err))
		return
	}

	if err := sqlDB.Ping(); err != nil {
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		result.fail(fmt.Sprintf("database ping: %v", err))
		return
	}

	result.Database = "ok"
	result.Details["database_type"] = cfg.DBType
	result.Details["database_name"] = cfg.DBDatabase
}

func checkAuthorizer(cfg *config.Config, result *HealthCheckResult) {
	if err := utils.PingAuthorizer(cfg.AuthzURL); err != nil {
		result.Authorizer = "unreachable"
		result.Details["authorizer_error"] = err.Error()
		result.fail(fmt.Sprintf("authorizer ping: %v", err))
		return
	}

	result.Authorizer = "ok"
	result.Details["authorizer_url"] = cfg.AuthzURL
}
