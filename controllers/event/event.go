package eventController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CreateEvent creates a platform event
func CreateEvent(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEvent").(*struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Location    string    `json:"location"`
		ClassLevel  string    `json:"class_level"`
		StartsAt    time.Time `json:"starts_at"`
		EndsAt      time.Time `json:"ends_at"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	event := models.Event{
		Title:       reqData.Title,
		Description: reqData.Description,
		Location:    reqData.Location,
		ClassLevel:  reqData.ClassLevel,
		StartsAt:    reqData.StartsAt,
		EndsAt:      reqData.EndsAt,
		IsPublished: true,
	}

	if err := database.Database.Db.Create(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create event!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Event created successfully!", event)
}

// UpdateEvent updates an event's details
func UpdateEvent(c *fiber.Ctx) error {
	eventID := c.Locals("eventID").(int)

	reqData, ok := c.Locals("validatedEvent").(*struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Location    string    `json:"location"`
		ClassLevel  string    `json:"class_level"`
		StartsAt    time.Time `json:"starts_at"`
		EndsAt      time.Time `json:"ends_at"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var event models.Event
	if err := db.Where("id = ? AND is_deleted = ?", eventID, false).First(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}

	if reqData.Title != "" {
		event.Title = reqData.Title
	}
	if reqData.Description != "" {
		event.Description = reqData.Description
	}
	if reqData.Location != "" {
		event.Location = reqData.Location
	}
	event.ClassLevel = reqData.ClassLevel
	if !reqData.StartsAt.IsZero() {
		event.StartsAt = reqData.StartsAt
	}
	if !reqData.EndsAt.IsZero() {
		event.EndsAt = reqData.EndsAt
	}

	if err := db.Save(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update event!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Event updated successfully!", event)
}

// DeleteEvent soft-deletes an event
func DeleteEvent(c *fiber.Ctx) error {
	eventID := c.Locals("eventID").(int)

	db := database.Database.Db

	var event models.Event
	if err := db.Where("id = ? AND is_deleted = ?", eventID, false).First(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}

	event.IsDeleted = true
	if err := db.Save(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete event!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Event deleted successfully!", nil)
}

// ListUpcomingEvents lists published events visible to the student: events
// for everyone plus events for the student's class.
func ListUpcomingEvents(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var events []models.Event
	query := db.Where("is_published = ? AND is_deleted = ? AND ends_at >= ?", true, false, time.Now())
	if user.Role == middleware.RoleStudent {
		query = query.Where("class_level = ? OR class_level = ?", user.ClassLevel, "")
	}
	if err := query.Order("starts_at asc").Find(&events).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch events!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Events fetched successfully!", fiber.Map{
		"events": events,
	})
}
