// common.go
//
// jobtrack - job application tracking data service
//

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jobwell/jobtrack/internal/models"
	"github.com/jobwell/jobtrack/internal/services"
	"github.com/jobwell/jobtrack/internal/types"
	"github.com/jobwell/jobtrack/internal/utils"
	"gorm.io/gorm"
)

// getSessionUser resolves the local user row for the session user stored in
// context by the auth middleware. The Authorizer SDK hands back its own user
// struct; a JSON round-trip keeps this independent of its exact shape.
func getSessionUser(c *fiber.Ctx, db *gorm.DB) (*models.User, error) {
	raw := c.Locals("user")
	if raw == nil {
		return nil, errors.New("user not found in context")
	}

	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid user data format: %w", err)
	}

	var sessionUser struct {
		Email             string `json:"email"`
		PreferredUsername string `json:"preferred_username"`
		Nickname          string `json:"nickname"`
	}
	if err := json.Unmarshal(buf, &sessionUser); err != nil {
		return nil, fmt.Errorf("invalid user data format: %w", err)
	}
	if sessionUser.Email == "" {
		return nil, errors.New("user email not found")
	}

	username := sessionUser.PreferredUsername
	if username == "" {
		username = sessionUser.Nickname
	}

	return services.EnsureUser(db, sessionUser.Email, username)
}

// translateServiceError maps service-layer errors to the response envelope.
func translateServiceError(c *fiber.Ctx, err error, errorType string) error {
	switch {
	case errors.Is(err, types.ErrNotFound):
		return utils.NotFoundResponse(c, "Not found")
	case errors.Is(err, types.ErrForbidden):
		return utils.ForbiddenResponse(c, "Forbidden", errorType)
	case types.IsVersionConflict(err):
		return utils.VersionErrorResponse(c)
	default:
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, errorType)
	}
}

// timeAgo renders a coarse "3 days" style distance for display next to a
// job's creation timestamp.
func timeAgo(from time.Time) string {
	d := time.Since(from)
	switch {
	case d < time.Minute:
		return "less than a minute"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 30*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	case d < 365*24*time.Hour:
		return plural(int(d.Hours()/(24*30)), "month")
	default:
		return plural(int(d.Hours()/(24*365)), "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
