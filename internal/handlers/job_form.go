// job_form.go
//
// jobtrack - job application tracking data service
//

package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jobwell/jobtrack/internal/services"
	"github.com/jobwell/jobtrack/internal/utils"
	"github.com/jobwell/jobtrack/internal/validation"
	"gorm.io/gorm"
)

// JobFormHandler handles the form-submission boundary for the job editor
type JobFormHandler struct {
	DB *gorm.DB
}

// UpsertJob handles POST /api/jobs
// @Summary Create or update a job
// @Description Job editor submit: creates a job (with connect-or-create company resolution) or updates an owned one. Multipart form with CSRF token.
// @Tags Jobs
// @Accept mpfd
// @Produce json
// @Param id formData string false "Existing job id (update)"
// @Param name formData string true "Job name"
// @Param description formData string true "Description"
// @Param status formData string true "Status"
// @Param source formData string true "Source"
// @Param url formData string false "URL"
// @Param questions formData string false "Questions"
// @Param updatedAt formData string false "Optimistic-concurrency token"
// @Param intent formData string false "submit or validate"
// @Success 303 {string} string "redirect to the job detail location"
// @Failure 400 {object} utils.SubmissionResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /jobs [post]
func (h *JobFormHandler) UpsertJob(c *fiber.Ctx) error {
	user, err := getSessionUser(c, h.DB)
	if err != nil {
		return utils.ForbiddenResponse(c, err.Error(), "jobs.authorization.user")
	}

	submission := validation.JobSubmission{
		ID:          c.FormValue("id"),
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Status:      c.FormValue("status"),
		Source:      c.FormValue("source"),
		URL:         c.FormValue("url"),
		Questions:   c.FormValue("questions"),
		UpdatedAt:   c.FormValue("updatedAt"),
	}

	input, report := validation.ValidateJob(h.DB, &submission, user.ID)

	// Intermediate validation pings report without writing.
	if intent := c.FormValue("intent", "submit"); intent != "submit" {
		return utils.SubmissionResponse(c, "idle", report, fiber.StatusOK)
	}

	if report != nil {
		return utils.SubmissionResponse(c, "error", report, fiber.StatusBadRequest)
	}

	job, err := services.UpsertJob(h.DB, input, user.ID)
	if err != nil {
		return translateServiceError(c, err, "upsertJob")
	}

	return c.Redirect(fmt.Sprintf("/users/%d/jobs/%d", user.ID, job.ID), fiber.StatusSeeOther)
}
