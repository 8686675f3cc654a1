package studentController

import (
	"lms/database"
	"lms/engine"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetDashboard returns the student's rolled-up progress: levels completed,
// spiritual progress percent, knowledge points, current level and the
// per-level learning path.
func GetDashboard(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("class_level = ? AND is_published = ? AND is_deleted = ?", user.ClassLevel, true, false).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	var progressRows []courseModels.StudentProgress
	db.Where("user_id = ? AND is_deleted = ?", user.ID, false).Find(&progressRows)

	var attempts []courseModels.ExamAttempt
	db.Where("user_id = ? AND is_deleted = ?", user.ID, false).Find(&attempts)

	summary := engine.AggregateStudentProgress(
		courseSnapshots(courses),
		progressSnapshots(progressRows),
		attemptSnapshots(attempts),
	)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"student": fiber.Map{
			"id":          user.ID,
			"name":        user.Name,
			"class_level": user.ClassLevel,
		},
		"summary": summary,
	})
}

// GetLearningPath returns only the ordered per-level status list
func GetLearningPath(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("class_level = ? AND is_published = ? AND is_deleted = ?", user.ClassLevel, true, false).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	var progressRows []courseModels.StudentProgress
	db.Where("user_id = ? AND is_deleted = ?", user.ID, false).Find(&progressRows)

	summary := engine.AggregateStudentProgress(courseSnapshots(courses), progressSnapshots(progressRows), nil)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Learning path fetched successfully!", fiber.Map{
		"current_level": summary.CurrentLevel,
		"learning_path": summary.LearningPath,
	})
}

func courseSnapshots(courses []courseModels.Course) []engine.CourseSnapshot {
	out := make([]engine.CourseSnapshot, len(courses))
	for i, c := range courses {
		out[i] = engine.CourseSnapshot{ID: c.ID, ClassLevel: c.ClassLevel, Level: c.Level, Title: c.Title}
	}
	return out
}

func progressSnapshots(rows []courseModels.StudentProgress) []engine.ProgressSnapshot {
	out := make([]engine.ProgressSnapshot, len(rows))
	for i, p := range rows {
		out[i] = engine.ProgressSnapshot{CourseID: p.CourseID, Status: p.Status, Qualified: p.Qualified}
	}
	return out
}

func attemptSnapshots(rows []courseModels.ExamAttempt) []engine.AttemptSnapshot {
	out := make([]engine.AttemptSnapshot, len(rows))
	for i, a := range rows {
		out[i] = engine.AttemptSnapshot{QuizID: a.QuizID, Score: a.Score, Passed: a.Passed}
	}
	return out
}
