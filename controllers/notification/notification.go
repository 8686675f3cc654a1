package notificationController

import (
	"encoding/json"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// Notification audience types
const (
	AudienceAll      = "ALL"
	AudienceClass    = "CLASS"
	AudienceDistrict = "DISTRICT"
	AudienceStudents = "STUDENTS"
)

// CreateNotification creates a notification and fans it out to the targeted
// students. District admins are restricted to their own district.
func CreateNotification(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedNotification").(*struct {
		Title        string `json:"title" validate:"required,min=3"`
		Body         string `json:"body" validate:"required,min=3"`
		AudienceType string `json:"audience_type" validate:"required,oneof=ALL CLASS DISTRICT STUDENTS"`
		ClassLevel   string `json:"class_level"`
		DistrictID   *uint  `json:"district_id"`
		StudentIDs   []uint `json:"student_ids"`
		SendEmail    bool   `json:"send_email"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// district admins may only notify within their own district
	if user.Role == middleware.RoleDistrictAdmin {
		if user.DistrictID == nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "No district assigned to this account!", nil)
		}
		if reqData.AudienceType == AudienceAll {
			reqData.AudienceType = AudienceDistrict
		}
		reqData.DistrictID = user.DistrictID
	}

	// resolve targeted students
	query := db.Where("role = ? AND is_deleted = ?", middleware.RoleStudent, false)
	switch reqData.AudienceType {
	case AudienceAll:
	case AudienceClass:
		if reqData.ClassLevel == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "class_level is required for CLASS audience!", nil)
		}
		query = query.Where("class_level = ?", reqData.ClassLevel)
	case AudienceDistrict:
		if reqData.DistrictID == nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "district_id is required for DISTRICT audience!", nil)
		}
		query = query.Where("district_id = ?", *reqData.DistrictID)
	case AudienceStudents:
		if len(reqData.StudentIDs) == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "student_ids is required for STUDENTS audience!", nil)
		}
		query = query.Where("id IN ?", reqData.StudentIDs)
	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid audience type!", nil)
	}

	var students []models.User
	if err := query.Find(&students).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve audience!", nil)
	}

	studentIDsJSON, _ := json.Marshal(reqData.StudentIDs)

	notification := models.Notification{
		Title:        reqData.Title,
		Body:         reqData.Body,
		AudienceType: reqData.AudienceType,
		ClassLevel:   reqData.ClassLevel,
		DistrictID:   reqData.DistrictID,
		StudentIDs:   datatypes.JSON(studentIDsJSON),
		SendEmail:    reqData.SendEmail,
		CreatedBy:    user.ID,
	}

	tx := db.Begin()

	if err := tx.Create(&notification).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create notification!", nil)
	}

	recipients := make([]models.NotificationRecipient, 0, len(students))
	for _, student := range students {
		recipients = append(recipients, models.NotificationRecipient{
			NotificationID: notification.ID,
			UserID:         student.ID,
		})
	}
	if len(recipients) > 0 {
		if err := tx.Create(&recipients).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fan out notification!", nil)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create notification!", nil)
	}

	if reqData.SendEmail {
		for _, student := range students {
			utils.SendNotificationEmail(student.Email, student.Name, notification.Title, notification.Body)
		}
	}

	log.Printf("Notification %d fanned out to %d students", notification.ID, len(recipients))

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Notification sent successfully!", fiber.Map{
		"notification": notification,
		"recipients":   len(recipients),
	})
}

// GetMyNotifications lists the student's inbox, newest first
func GetMyNotifications(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, _ := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil && *reqData.Page > 0 {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil && *reqData.Limit > 0 {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	var total int64
	db.Model(&models.NotificationRecipient{}).Where("user_id = ? AND is_deleted = ?", user.ID, false).Count(&total)

	var unread int64
	db.Model(&models.NotificationRecipient{}).Where("user_id = ? AND is_read = ? AND is_deleted = ?", user.ID, false, false).Count(&unread)

	var rows []models.NotificationRecipient
	if err := db.Where("user_id = ? AND is_deleted = ?", user.ID, false).
		Offset(offset).Limit(limit).Order("created_at desc").Find(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	type inboxEntry struct {
		RecipientID uint       `json:"recipient_id"`
		Title       string     `json:"title"`
		Body        string     `json:"body"`
		IsRead      bool       `json:"is_read"`
		ReadAt      *time.Time `json:"read_at"`
		SentAt      time.Time  `json:"sent_at"`
	}

	entries := make([]inboxEntry, 0, len(rows))
	for _, row := range rows {
		var notification models.Notification
		if err := db.Where("id = ? AND is_deleted = ?", row.NotificationID, false).First(&notification).Error; err != nil {
			continue
		}
		entries = append(entries, inboxEntry{
			RecipientID: row.ID,
			Title:       notification.Title,
			Body:        notification.Body,
			IsRead:      row.IsRead,
			ReadAt:      row.ReadAt,
			SentAt:      row.CreatedAt,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched successfully!", fiber.Map{
		"notifications": entries,
		"unread":        unread,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// MarkNotificationRead marks one inbox entry as read
func MarkNotificationRead(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	recipientID := c.Locals("recipientID").(int)

	db := database.Database.Db

	var row models.NotificationRecipient
	if err := db.Where("id = ? AND user_id = ? AND is_deleted = ?", recipientID, user.ID, false).First(&row).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	if !row.IsRead {
		now := time.Now()
		row.IsRead = true
		row.ReadAt = &now
		if err := db.Save(&row).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notification!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked as read.", nil)
}
