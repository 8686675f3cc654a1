package eventValidator

import (
	"lms/middleware"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// EventID parses and stores the :eventId route param
func EventID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("eventId"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid event id!", nil)
		}
		c.Locals("eventID", id)
		return c.Next()
	}
}

// Event validator middleware, shared by create and update
func Event() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string    `json:"title"`
			Description string    `json:"description"`
			Location    string    `json:"location"`
			ClassLevel  string    `json:"class_level"`
			StartsAt    time.Time `json:"starts_at"`
			EndsAt      time.Time `json:"ends_at"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// title and dates are mandatory on create; updates may send a subset
		if c.Method() == fiber.MethodPost {
			if len(strings.TrimSpace(reqData.Title)) < 3 {
				errors["title"] = "Title must be at least 3 characters long!"
			}
			if reqData.StartsAt.IsZero() {
				errors["starts_at"] = "Start datetime is required!"
			}
			if reqData.EndsAt.IsZero() {
				errors["ends_at"] = "End datetime is required!"
			}
		}

		if !reqData.StartsAt.IsZero() && !reqData.EndsAt.IsZero() && reqData.EndsAt.Before(reqData.StartsAt) {
			errors["ends_at"] = "End must be after start!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEvent", reqData)
		return c.Next()
	}
}
