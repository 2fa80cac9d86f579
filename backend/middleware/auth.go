package middleware

import (
	"easyquiz/backend/config"
	"easyquiz/backend/models"
	"easyquiz/backend/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	localsUserID = "userID"
	localsRole   = "role"
)

// Auth verifies the bearer token and attaches {id, role} to the request
// context for the role gates below.
func Auth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, role, err := utils.ExtractIdentity(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Token invalid or expired")
		}

		c.Locals(localsUserID, userID)
		c.Locals(localsRole, role)
		return c.Next()
	}
}

func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if Role(c) != models.RoleAdmin {
			return utils.Forbidden(c, "Admin only")
		}
		return c.Next()
	}
}

func StudentOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if Role(c) != models.RoleStudent {
			return utils.Forbidden(c, "Student only")
		}
		return c.Next()
	}
}

// UserID returns the authenticated subject id set by Auth.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(localsUserID).(uint)
	return id
}

// Role returns the authenticated role set by Auth.
func Role(c *fiber.Ctx) string {
	role, _ := c.Locals(localsRole).(string)
	return role
}
