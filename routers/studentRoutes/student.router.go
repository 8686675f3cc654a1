package studentRoutes

import (
	eventController "lms/controllers/event"
	notificationController "lms/controllers/notification"
	studentController "lms/controllers/student"
	"lms/middleware"
	notificationValidator "lms/validators/notification"

	"github.com/gofiber/fiber/v2"
)

// SetupStudentRoutes sets up the student dashboard and inbox routes
func SetupStudentRoutes(app *fiber.App) {
	studentOnly := middleware.RequireRole(middleware.RoleStudent)

	studentGroup := app.Group("/student")

	studentGroup.Get("/dashboard", middleware.JWTMiddleware, studentOnly, studentController.GetDashboard)
	studentGroup.Get("/learning-path", middleware.JWTMiddleware, studentOnly, studentController.GetLearningPath)

	studentGroup.Get("/notifications", middleware.JWTMiddleware, studentOnly, notificationValidator.ListQuery(), notificationController.GetMyNotifications)
	studentGroup.Patch("/notifications/:recipientId/read", middleware.JWTMiddleware, studentOnly, notificationValidator.RecipientID(), notificationController.MarkNotificationRead)

	studentGroup.Get("/events", middleware.JWTMiddleware, studentOnly, eventController.ListUpcomingEvents)
}
