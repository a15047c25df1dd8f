// admin_permissions.go
//
// jobtrack - job application tracking data service
//

package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jobwell/jobtrack/internal/services"
	"github.com/jobwell/jobtrack/internal/types"
	"github.com/jobwell/jobtrack/internal/utils"
	"gorm.io/gorm"
)

// AdminHandler handles elevated-permission grant management
type AdminHandler struct {
	DB *gorm.DB
}

// grantRequest accepts the user id as a JSON number or string, and grants as
// an array or a single token.
type grantRequest struct {
	UserID types.FlexUint64       `json:"userId"`
	Grants types.FlexList[string] `json:"grants"`
}

// SetPermissions handles POST /api/admin/permissions
// @Summary Replace a user's permission grants
// @Description Replaces the grant token list ("<action>:<entity>:<own|any>") for a user
// @Tags Admin
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /admin/permissions [post]
func (h *AdminHandler) SetPermissions(c *fiber.Ctx) error {
	var req grantRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "setPermissions")
	}
	if req.UserID == 0 {
		return utils.ErrorResponse(c, "userId is required", fiber.StatusBadRequest, "setPermissions")
	}

	if err := services.SetUserGrants(h.DB, req.UserID.Uint64(), req.Grants.Slice()); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "setPermissions")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   "Success",
		"ok":        true,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// GetPermissions handles GET /api/admin/permissions/:userId
// @Summary Get a user's permission grants
// @Tags Admin
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /admin/permissions/{userId} [get]
func (h *AdminHandler) GetPermissions(c *fiber.Ctx) error {
	userID, err := types.ParseID(c.Params("userId"))
	if err != nil {
		return utils.NotFoundResponse(c, "User not found")
	}

	grants, err := services.UserGrants(h.DB, userID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getPermissions")
	}
	if grants == nil {
		grants = []string{}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"userId": userID,
		"grants": grants,
	})
}
