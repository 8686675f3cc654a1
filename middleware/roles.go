package middleware

import (
	"lms/database"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// User roles
const (
	RoleStudent       = "STUDENT"
	RoleDistrictAdmin = "DISTRICT_ADMIN"
	RoleMasterAdmin   = "MASTER_ADMIN"
)

// RequireRole returns a middleware that loads the authenticated user, checks
// the role against the database (not just the token claim, which can be
// stale after a role change) and stores the user in locals for the handler.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
		}

		var user models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}

		if user.IsBlocked {
			return JsonResponse(c, fiber.StatusForbidden, false, "Your account has been blocked!", nil)
		}

		for _, role := range roles {
			if user.Role == role {
				c.Locals("user", &user)
				return c.Next()
			}
		}

		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}

// CurrentUser returns the user loaded by RequireRole
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}
