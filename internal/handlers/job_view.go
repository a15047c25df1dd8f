// job_view.go
//
// jobtrack - job application tracking data service
//

package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jobwell/jobtrack/internal/services"
	"github.com/jobwell/jobtrack/internal/types"
	"github.com/jobwell/jobtrack/internal/utils"
	"github.com/jobwell/jobtrack/internal/validation"
	"gorm.io/gorm"
)

// JobHandler handles job detail, edit-loader, and delete routes
type JobHandler struct {
	DB *gorm.DB
}

// GetJob handles GET /api/jobs/:jobId
// @Summary Get job detail
// @Description Job detail view data: the job with its company and a humanized creation distance
// @Tags Jobs
// @Produce json
// @Param jobId path string true "Job ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /jobs/{jobId} [get]
func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	jobID, err := types.ParseID(c.Params("jobId"))
	if err != nil {
		return utils.NotFoundResponse(c, fmt.Sprintf("No job with the id %q exists", c.Params("jobId")))
	}

	job, err := services.JobByID(h.DB, jobID)
	if err != nil {
		if err == types.ErrNotFound {
			return utils.NotFoundResponse(c, fmt.Sprintf("No job with the id %q exists", c.Params("jobId")))
		}
		return translateServiceError(c, err, "getJob")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"job":     job,
		"timeAgo": timeAgo(job.CreatedAt),
	})
}

// GetJobEdit handles GET /api/jobs/:jobId/edit
// @Summary Get job editor data
// @Description Edit loader composing the owned job and its events. Responds 404 when the job is absent or not owned by the caller.
// @Tags Jobs
// @Produce json
// @Param jobId path string true "Job ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /jobs/{jobId}/edit [get]
func (h *JobHandler) GetJobEdit(c *fiber.Ctx) error {
	user, err := getSessionUser(c, h.DB)
	if err != nil {
		return utils.ForbiddenResponse(c, err.Error(), "jobs.authorization.user")
	}

	jobID, err := types.ParseID(c.Params("jobId"))
	if err != nil {
		return utils.NotFoundResponse(c, fmt.Sprintf("No job with the id %q exists", c.Params("jobId")))
	}

	// Ownership is folded into the lookup; a foreign job reads as absent.
	job, err := services.JobByIDOwnedBy(h.DB, jobID, user.ID)
	if err != nil {
		if err == types.ErrNotFound {
			return utils.NotFoundResponse(c, fmt.Sprintf("No job with the id %q exists", c.Params("jobId")))
		}
		return translateServiceError(c, err, "getJobEdit")
	}

	events, err := services.EventsByJobID(h.DB, job.ID)
	if err != nil {
		return translateServiceError(c, err, "getJobEdit")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"job":    job,
		"events": events,
	})
}

// DeleteJob handles POST /api/jobs/:jobId/delete
// @Summary Delete a job
// @Description Delete form submit. Owners are allowed; non-owners need the delete:job:any grant.
// @Tags Jobs
// @Accept mpfd
// @Produce json
// @Param jobId path string true "Job ID"
// @Param intent formData string true "delete-job"
// @Param jobId formData string true "Job id (hidden form field)"
// @Success 303 {string} string "redirect to the owner's jobs listing"
// @Failure 400 {object} utils.SubmissionResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /jobs/{jobId}/delete [post]
func (h *JobHandler) DeleteJob(c *fiber.Ctx) error {
	user, err := getSessionUser(c, h.DB)
	if err != nil {
		return utils.ForbiddenResponse(c, err.Error(), "jobs.authorization.user")
	}

	submission := validation.DeleteSubmission{
		Intent: c.FormValue("intent"),
		JobID:  c.FormValue("jobId"),
	}
	jobID, report := validation.ValidateDelete(&submission)
	if report != nil {
		return utils.SubmissionResponse(c, "error", report, fiber.StatusBadRequest)
	}

	if err := services.DeleteJob(h.DB, jobID, user.ID); err != nil {
		return translateServiceError(c, err, "deleteJob")
	}

	return utils.RedirectWithToast(c, fmt.Sprintf("/users/%s/jobs", user.Username), utils.Toast{
		Type:        "success",
		Title:       "Success",
		Description: "Your job has been deleted.",
	})
}
