package adminController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// CreateDistrict registers a new district
func CreateDistrict(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedDistrict").(*struct {
		Name          string `json:"name"`
		State         string `json:"state"`
		ContactPerson string `json:"contact_person"`
		ContactEmail  string `json:"contact_email"`
		ContactMobile string `json:"contact_mobile"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var existing models.District
	if err := db.Where("name = ? AND is_deleted = ?", reqData.Name, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A district with this name already exists!", nil)
	}

	district := models.District{
		Name:          reqData.Name,
		State:         reqData.State,
		ContactPerson: reqData.ContactPerson,
		ContactEmail:  reqData.ContactEmail,
		ContactMobile: reqData.ContactMobile,
	}

	if err := db.Create(&district).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create district!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "District created successfully!", district)
}

// UpdateDistrict updates district details
func UpdateDistrict(c *fiber.Ctx) error {
	districtID := c.Locals("districtID").(int)

	reqData, ok := c.Locals("validatedDistrict").(*struct {
		Name          string `json:"name"`
		State         string `json:"state"`
		ContactPerson string `json:"contact_person"`
		ContactEmail  string `json:"contact_email"`
		ContactMobile string `json:"contact_mobile"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var district models.District
	if err := db.Where("id = ? AND is_deleted = ?", districtID, false).First(&district).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "District not found!", nil)
	}

	if reqData.Name != "" {
		district.Name = reqData.Name
	}
	if reqData.State != "" {
		district.State = reqData.State
	}
	if reqData.ContactPerson != "" {
		district.ContactPerson = reqData.ContactPerson
	}
	if reqData.ContactEmail != "" {
		district.ContactEmail = reqData.ContactEmail
	}
	if reqData.ContactMobile != "" {
		district.ContactMobile = reqData.ContactMobile
	}

	if err := db.Save(&district).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update district!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "District updated successfully!", district)
}

// DeleteDistrict soft-deletes a district and detaches its students
func DeleteDistrict(c *fiber.Ctx) error {
	districtID := c.Locals("districtID").(int)

	db := database.Database.Db

	var district models.District
	if err := db.Where("id = ? AND is_deleted = ?", districtID, false).First(&district).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "District not found!", nil)
	}

	district.IsDeleted = true
	if err := db.Save(&district).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete district!", nil)
	}

	db.Model(&models.User{}).Where("district_id = ?", district.ID).Update("district_id", nil)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "District deleted successfully!", nil)
}

// ListDistricts lists all districts with their student counts
func ListDistricts(c *fiber.Ctx) error {
	db := database.Database.Db

	var districts []models.District
	if err := db.Where("is_deleted = ?", false).Order("name asc").Find(&districts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch districts!", nil)
	}

	type districtEntry struct {
		models.District
		StudentCount int64 `json:"student_count"`
	}

	entries := make([]districtEntry, len(districts))
	for i, district := range districts {
		var count int64
		db.Model(&models.User{}).Where("district_id = ? AND role = ? AND is_deleted = ?", district.ID, middleware.RoleStudent, false).Count(&count)
		entries[i] = districtEntry{District: district, StudentCount: count}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Districts fetched successfully!", fiber.Map{
		"districts": entries,
	})
}

// AssignStudentDistrict moves a student into a district
func AssignStudentDistrict(c *fiber.Ctx) error {
	targetUserID := c.Locals("targetUserID").(int)
	districtID := c.Locals("districtID").(int)

	db := database.Database.Db

	var student models.User
	if err := db.Where("id = ? AND role = ? AND is_deleted = ?", targetUserID, middleware.RoleStudent, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	var district models.District
	if err := db.Where("id = ? AND is_deleted = ?", districtID, false).First(&district).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "District not found!", nil)
	}

	id := district.ID
	student.DistrictID = &id
	if err := db.Save(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign district!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student assigned to district successfully!", fiber.Map{
		"student_id":  student.ID,
		"district_id": district.ID,
	})
}
