package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const defaultAPIVersion = "1.0.0"

// VersionMiddleware reads the X-Api-Version request header and stores the
// normalized version in context for handlers that branch on it.
func VersionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get("X-Api-Version", defaultAPIVersion)

		// Short alias for the current major.minor
		if version == "1.0" {
			version = defaultAPIVersion
		}

		c.Locals("apiVersion", version)

		return c.Next()
	}
}
