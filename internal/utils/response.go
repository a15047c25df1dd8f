// response.go
//
// jobtrack - job application tracking data service
//

package utils

import (
	"encoding/json"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jobwell/jobtrack/internal/types"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponse sends a standard error response envelope
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// VersionErrorResponse sends a version conflict error (409)
func VersionErrorResponse(c *fiber.Ctx) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{
		"status":       fiber.StatusConflict,
		"message":      "E_VERSION - Refresh and reconcile with current version and retry.",
		"ok":           false,
		"versionError": true,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"url":          c.OriginalURL(),
		"type":         "version",
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":    fiber.StatusNotFound,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}

// ForbiddenResponse sends a 403 forbidden response
func ForbiddenResponse(c *fiber.Ctx, message string, errorType string) error {
	return ErrorResponse(c, message, fiber.StatusForbidden, errorType)
}

// SubmissionResponse sends a submission report: "idle" for intermediate
// validation pings, "error" with a 400 for a failed final submit.
func SubmissionResponse(c *fiber.Ctx, status string, report *types.ValidationError, httpStatus int) error {
	submission := fiber.Map{}
	if report != nil {
		submission["fieldErrors"] = report.FieldErrors
		submission["formErrors"] = report.FormErrors
	}
	return c.Status(httpStatus).JSON(fiber.Map{
		"status":     status,
		"submission": submission,
	})
}

// Toast is the flash payload delivered through a cookie on redirect.
type Toast struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// RedirectWithToast sets the toast cookie and redirects (303 so the client
// re-requests with GET after a POST).
func RedirectWithToast(c *fiber.Ctx, location string, toast Toast) error {
	payload, err := json.Marshal(toast)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     "en_toast",
		Value:    url.QueryEscape(string(payload)),
		Path:     "/",
		HTTPOnly: false,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect(location, fiber.StatusSeeOther)
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status       int    `json:"status"`
	Message      string `json:"message"`
	Ok           bool   `json:"ok"`
	Timestamp    string `json:"timestamp"`
	URL          string `json:"url"`
	Type         string `json:"type,omitempty"`
	VersionError bool   `json:"versionError,omitempty"`
}

// SubmissionResponseStruct defines the schema for submission reports
type SubmissionResponseStruct struct {
	Status     string                 `json:"status"`
	Submission map[string]interface{} `json:"submission"`
}
