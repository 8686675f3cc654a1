package adminController

import (
	"lms/config"
	"lms/database"
	"lms/engine"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// GetPlatformDashboard returns platform-wide totals and per-district
// performance. The completion denominator here is the total course count
// across the whole platform; the district-admin dashboard divides by each
// student's own class course count instead.
func GetPlatformDashboard(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalStudents, totalDistricts, totalCourses, totalAttempts int64
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", middleware.RoleStudent, false).Count(&totalStudents)
	db.Model(&models.District{}).Where("is_deleted = ?", false).Count(&totalDistricts)
	db.Model(&courseModels.Course{}).Where("is_published = ? AND is_deleted = ?", true, false).Count(&totalCourses)
	db.Model(&courseModels.ExamAttempt{}).Where("is_deleted = ?", false).Count(&totalAttempts)

	snapshots, err := loadDistrictSnapshots(0)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch district data!", nil)
	}

	performance := engine.AggregateDistrictPerformanceGlobal(snapshots, int(totalCourses))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"totals": fiber.Map{
			"students":  totalStudents,
			"districts": totalDistricts,
			"courses":   totalCourses,
			"attempts":  totalAttempts,
		},
		"district_performance": performance,
	})
}

// ListStudents lists students with pagination and optional filters
func ListStudents(c *fiber.Ctx) error {
	reqData, _ := c.Locals("validatedStudentList").(*struct {
		Page       *int   `json:"page"`
		Limit      *int   `json:"limit"`
		ClassLevel string `json:"class_level"`
		DistrictID *uint  `json:"district_id"`
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

	db := database.Database.Db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", middleware.RoleStudent, false)
	if reqData != nil && reqData.ClassLevel != "" {
		db = db.Where("class_level = ?", reqData.ClassLevel)
	}
	if reqData != nil && reqData.DistrictID != nil {
		db = db.Where("district_id = ?", *reqData.DistrictID)
	}

	var total int64
	db.Count(&total)

	var students []models.User
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&students).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	for i := range students {
		students[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Students fetched successfully!", fiber.Map{
		"students": students,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetStudentProgress returns one student's full progress for admin review
func GetStudentProgress(c *fiber.Ctx) error {
	targetUserID := c.Locals("targetUserID").(int)

	db := database.Database.Db

	var student models.User
	if err := db.Where("id = ? AND role = ? AND is_deleted = ?", targetUserID, middleware.RoleStudent, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	var courses []courseModels.Course
	db.Where("class_level = ? AND is_published = ? AND is_deleted = ?", student.ClassLevel, true, false).Find(&courses)

	var progressRows []courseModels.StudentProgress
	db.Where("user_id = ? AND is_deleted = ?", student.ID, false).Find(&progressRows)

	var attempts []courseModels.ExamAttempt
	db.Where("user_id = ? AND is_deleted = ?", student.ID, false).Find(&attempts)

	summary := engine.AggregateStudentProgress(
		toCourseSnapshots(courses),
		toProgressSnapshots(progressRows),
		toAttemptSnapshots(attempts),
	)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student progress fetched successfully!", fiber.Map{
		"student": fiber.Map{
			"id":          student.ID,
			"name":        student.Name,
			"email":       student.Email,
			"class_level": student.ClassLevel,
			"district_id": student.DistrictID,
		},
		"summary":        summary,
		"total_attempts": len(attempts),
	})
}

// CreateDistrictAdmin creates an admin account bound to a district
func CreateDistrictAdmin(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedDistrictAdmin").(*struct {
		Name       string `json:"name"`
		Email      string `json:"email"`
		Mobile     string `json:"mobile"`
		Password   string `json:"password"`
		DistrictID uint   `json:"district_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var district models.District
	if err := db.Where("id = ? AND is_deleted = ?", reqData.DistrictID, false).First(&district).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "District not found!", nil)
	}

	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	districtID := reqData.DistrictID
	admin := models.User{
		Name:       reqData.Name,
		Email:      reqData.Email,
		Mobile:     reqData.Mobile,
		Password:   string(hashedPassword),
		Role:       middleware.RoleDistrictAdmin,
		DistrictID: &districtID,
	}

	if err := db.Create(&admin).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create district admin!", nil)
	}

	admin.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "District admin created successfully!", admin)
}

// BlockStudent toggles a student's blocked flag
func BlockStudent(c *fiber.Ctx) error {
	targetUserID := c.Locals("targetUserID").(int)

	reqData, ok := c.Locals("validatedBlock").(*struct {
		Blocked bool `json:"blocked"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var student models.User
	if err := db.Where("id = ? AND role = ? AND is_deleted = ?", targetUserID, middleware.RoleStudent, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	student.IsBlocked = reqData.Blocked
	if err := db.Save(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update student!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student updated successfully!", fiber.Map{
		"id":      student.ID,
		"blocked": student.IsBlocked,
	})
}

// loadDistrictSnapshots builds the cohort snapshot for the aggregators.
// districtID 0 loads all districts, otherwise just the one.
func loadDistrictSnapshots(districtID uint) ([]engine.DistrictSnapshot, error) {
	db := database.Database.Db

	query := db.Where("is_deleted = ?", false)
	if districtID > 0 {
		query = query.Where("id = ?", districtID)
	}

	var districts []models.District
	if err := query.Find(&districts).Error; err != nil {
		return nil, err
	}

	snapshots := make([]engine.DistrictSnapshot, 0, len(districts))
	for _, district := range districts {
		var students []models.User
		if err := db.Where("district_id = ? AND role = ? AND is_deleted = ?", district.ID, middleware.RoleStudent, false).Find(&students).Error; err != nil {
			return nil, err
		}

		snapshot := engine.DistrictSnapshot{ID: district.ID, Name: district.Name}
		for _, student := range students {
			var progressRows []courseModels.StudentProgress
			db.Where("user_id = ? AND is_deleted = ?", student.ID, false).Find(&progressRows)

			var attempts []courseModels.ExamAttempt
			db.Where("user_id = ? AND is_deleted = ?", student.ID, false).Find(&attempts)

			snapshot.Students = append(snapshot.Students, engine.StudentRecord{
				ID:         student.ID,
				ClassLevel: student.ClassLevel,
				Progress:   toProgressSnapshots(progressRows),
				Attempts:   toAttemptSnapshots(attempts),
			})
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}

func toCourseSnapshots(courses []courseModels.Course) []engine.CourseSnapshot {
	out := make([]engine.CourseSnapshot, len(courses))
	for i, c := range courses {
		out[i] = engine.CourseSnapshot{ID: c.ID, ClassLevel: c.ClassLevel, Level: c.Level, Title: c.Title}
	}
	return out
}

func toProgressSnapshots(rows []courseModels.StudentProgress) []engine.ProgressSnapshot {
	out := make([]engine.ProgressSnapshot, len(rows))
	for i, p := range rows {
		out[i] = engine.ProgressSnapshot{CourseID: p.CourseID, Status: p.Status, Qualified: p.Qualified}
	}
	return out
}

func toAttemptSnapshots(rows []courseModels.ExamAttempt) []engine.AttemptSnapshot {
	out := make([]engine.AttemptSnapshot, len(rows))
	for i, a := range rows {
		out[i] = engine.AttemptSnapshot{QuizID: a.QuizID, Score: a.Score, Passed: a.Passed}
	}
	return out
}
