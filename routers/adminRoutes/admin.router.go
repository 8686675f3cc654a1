package adminRoutes

import (
	adminController "lms/controllers/admin"
	eventController "lms/controllers/event"
	notificationController "lms/controllers/notification"
	"lms/middleware"
	adminValidator "lms/validators/admin"
	courseValidator "lms/validators/course"
	eventValidator "lms/validators/event"
	notificationValidator "lms/validators/notification"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up master-admin and district-admin routes
func SetupAdminRoutes(app *fiber.App) {
	masterOnly := middleware.RequireRole(middleware.RoleMasterAdmin)
	anyAdmin := middleware.RequireRole(middleware.RoleMasterAdmin, middleware.RoleDistrictAdmin)
	districtOnly := middleware.RequireRole(middleware.RoleDistrictAdmin)

	// Master admin
	adminGroup := app.Group("/admin")
	adminGroup.Get("/dashboard", middleware.JWTMiddleware, masterOnly, adminController.GetPlatformDashboard)
	adminGroup.Get("/students", middleware.JWTMiddleware, masterOnly, adminValidator.StudentList(), adminController.ListStudents)
	adminGroup.Get("/student/:userId/progress", middleware.JWTMiddleware, masterOnly, adminValidator.TargetUserID(), adminController.GetStudentProgress)
	adminGroup.Post("/district-admin/create", middleware.JWTMiddleware, masterOnly, adminValidator.DistrictAdmin(), adminController.CreateDistrictAdmin)
	adminGroup.Patch("/student/:userId/block", middleware.JWTMiddleware, masterOnly, adminValidator.TargetUserID(), adminValidator.Block(), adminController.BlockStudent)

	// Districts
	districtGroup := app.Group("/admin/district")
	districtGroup.Post("/create", middleware.JWTMiddleware, masterOnly, adminValidator.District(), adminController.CreateDistrict)
	districtGroup.Put("/:districtId", middleware.JWTMiddleware, masterOnly, adminValidator.DistrictID(), adminValidator.District(), adminController.UpdateDistrict)
	districtGroup.Delete("/:districtId", middleware.JWTMiddleware, masterOnly, adminValidator.DistrictID(), adminController.DeleteDistrict)
	districtGroup.Get("/list", middleware.JWTMiddleware, masterOnly, adminController.ListDistricts)
	districtGroup.Post("/:districtId/student/:userId", middleware.JWTMiddleware, masterOnly, adminValidator.DistrictID(), adminValidator.TargetUserID(), adminController.AssignStudentDistrict)

	// District admin
	myDistrictGroup := app.Group("/district")
	myDistrictGroup.Get("/dashboard", middleware.JWTMiddleware, districtOnly, adminController.GetDistrictDashboard)
	myDistrictGroup.Get("/students", middleware.JWTMiddleware, districtOnly, courseValidator.ListQuery(), adminController.ListDistrictStudents)

	// Notifications
	notificationGroup := app.Group("/admin/notification")
	notificationGroup.Post("/create", middleware.JWTMiddleware, anyAdmin, notificationValidator.Create(), notificationController.CreateNotification)

	// Events
	eventGroup := app.Group("/admin/event")
	eventGroup.Post("/create", middleware.JWTMiddleware, masterOnly, eventValidator.Event(), eventController.CreateEvent)
	eventGroup.Put("/:eventId", middleware.JWTMiddleware, masterOnly, eventValidator.EventID(), eventValidator.Event(), eventController.UpdateEvent)
	eventGroup.Delete("/:eventId", middleware.JWTMiddleware, masterOnly, eventValidator.EventID(), eventController.DeleteEvent)
}
