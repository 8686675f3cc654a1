package adminController

import (
	"lms/database"
	"lms/engine"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetDistrictDashboard returns performance for the admin's own district. The
// completion denominator is each student's own class course count, unlike the
// master-admin dashboard which divides by the platform-wide course count.
func GetDistrictDashboard(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil || user.DistrictID == nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "No district assigned to this account!", nil)
	}

	db := database.Database.Db

	var district models.District
	if err := db.Where("id = ? AND is_deleted = ?", *user.DistrictID, false).First(&district).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "District not found!", nil)
	}

	snapshots, err := loadDistrictSnapshots(district.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch district data!", nil)
	}

	coursesByClass, err := countCoursesByClass()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course data!", nil)
	}

	performance := engine.AggregateDistrictPerformanceByClass(snapshots, coursesByClass)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"district":    district,
		"performance": performance,
	})
}

// ListDistrictStudents lists the admin's district students with their summaries
func ListDistrictStudents(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil || user.DistrictID == nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "No district assigned to this account!", nil)
	}

	reqData, _ := c.Locals("validatedList").(*struct {
		Page       *int   `json:"page"`
		Limit      *int   `json:"limit"`
		ClassLevel string `json:"class_level"`
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

	db := database.Database.Db.Model(&models.User{}).
		Where("district_id = ? AND role = ? AND is_deleted = ?", *user.DistrictID, middleware.RoleStudent, false)
	if reqData != nil && reqData.ClassLevel != "" {
		db = db.Where("class_level = ?", reqData.ClassLevel)
	}

	var total int64
	db.Count(&total)

	var students []models.User
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&students).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	type studentEntry struct {
		ID              uint   `json:"id"`
		Name            string `json:"name"`
		Email           string `json:"email"`
		ClassLevel      string `json:"class_level"`
		LevelsCompleted int    `json:"levels_completed"`
		Progress        int    `json:"spiritual_progress_percent"`
		KnowledgePoints int    `json:"knowledge_points"`
	}

	entries := make([]studentEntry, len(students))
	for i, student := range students {
		var courses []courseModels.Course
		database.Database.Db.Where("class_level = ? AND is_published = ? AND is_deleted = ?", student.ClassLevel, true, false).Find(&courses)

		var progressRows []courseModels.StudentProgress
		database.Database.Db.Where("user_id = ? AND is_deleted = ?", student.ID, false).Find(&progressRows)

		var attempts []courseModels.ExamAttempt
		database.Database.Db.Where("user_id = ? AND is_deleted = ?", student.ID, false).Find(&attempts)

		summary := engine.AggregateStudentProgress(toCourseSnapshots(courses), toProgressSnapshots(progressRows), toAttemptSnapshots(attempts))

		entries[i] = studentEntry{
			ID:              student.ID,
			Name:            student.Name,
			Email:           student.Email,
			ClassLevel:      student.ClassLevel,
			LevelsCompleted: summary.LevelsCompleted,
			Progress:        summary.SpiritualProgress,
			KnowledgePoints: summary.KnowledgePoints,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Students fetched successfully!", fiber.Map{
		"students": entries,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// countCoursesByClass counts published courses per class level
func countCoursesByClass() (map[string]int, error) {
	var rows []struct {
		ClassLevel string
		Count      int
	}
	err := database.Database.Db.Model(&courseModels.Course{}).
		Select("class_level, count(*) as count").
		Where("is_published = ? AND is_deleted = ?", true, false).
		Group("class_level").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.ClassLevel] = row.Count
	}
	return counts, nil
}
