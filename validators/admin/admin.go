package adminValidator

import (
	"lms/middleware"
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

// DistrictID parses and stores the :districtId route param
func DistrictID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("districtId"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid district id!", nil)
		}
		c.Locals("districtID", id)
		return c.Next()
	}
}

// TargetUserID parses and stores the :userId route param
func TargetUserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("userId"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
		}
		c.Locals("targetUserID", id)
		return c.Next()
	}
}

// District validator middleware, shared by create and update
func District() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name          string `json:"name"`
			State         string `json:"state"`
			ContactPerson string `json:"contact_person"`
			ContactEmail  string `json:"contact_email"`
			ContactMobile string `json:"contact_mobile"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// name is mandatory on create; updates may send a subset
		if c.Method() == fiber.MethodPost && len(strings.TrimSpace(reqData.Name)) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}

		if reqData.ContactEmail != "" && !isValidEmail(reqData.ContactEmail) {
			errors["contact_email"] = "Invalid contact email!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDistrict", reqData)
		return c.Next()
	}
}

// DistrictAdmin validator middleware
func DistrictAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name       string `json:"name"`
			Email      string `json:"email"`
			Mobile     string `json:"mobile"`
			Password   string `json:"password"`
			DistrictID uint   `json:"district_id"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Name)) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}

		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}

		if len(strings.TrimSpace(reqData.Password)) < 8 {
			errors["password"] = "Password must be at least 8 characters long!"
		}

		if reqData.DistrictID < 1 {
			errors["district_id"] = "District id is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDistrictAdmin", reqData)
		return c.Next()
	}
}

// StudentList parses pagination and filters for the master-admin student list
func StudentList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page       *int   `json:"page"`
			Limit      *int   `json:"limit"`
			ClassLevel string `json:"class_level"`
			DistrictID *uint  `json:"district_id"`
		})

		if page := c.QueryInt("page", 0); page > 0 {
			reqData.Page = &page
		}
		if limit := c.QueryInt("limit", 0); limit > 0 {
			reqData.Limit = &limit
		}
		reqData.ClassLevel = c.Query("class_level")
		if districtID := c.QueryInt("district_id", 0); districtID > 0 {
			id := uint(districtID)
			reqData.DistrictID = &id
		}

		c.Locals("validatedStudentList", reqData)
		return c.Next()
	}
}

// Block validator middleware
func Block() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Blocked bool `json:"blocked"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedBlock", reqData)
		return c.Next()
	}
}
