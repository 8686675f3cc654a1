package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all student-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	studentOnly := middleware.RequireRole(middleware.RoleStudent)

	courseGroup := app.Group("/course")

	courseGroup.Get("/levels", middleware.JWTMiddleware, studentOnly, controllers.GetMyLevels)
	courseGroup.Get("/:courseId/content", middleware.JWTMiddleware, studentOnly, validators.CourseID(), controllers.GetCourseContent)
	courseGroup.Post("/:courseId/content/:contentType/:contentId/watch", middleware.JWTMiddleware, studentOnly, validators.CourseID(), validators.ContentParams(), controllers.MarkContentWatched)

	// Quiz taking
	courseGroup.Get("/:courseId/quiz", middleware.JWTMiddleware, studentOnly, validators.CourseID(), controllers.GetQuiz)
	courseGroup.Post("/:courseId/quiz/submit", middleware.JWTMiddleware, studentOnly, validators.CourseID(), validators.SubmitQuiz(), controllers.SubmitQuiz)
	courseGroup.Get("/:courseId/attempts", middleware.JWTMiddleware, studentOnly, validators.CourseID(), controllers.GetMyAttempts)
}
