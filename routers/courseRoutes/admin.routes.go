package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all content management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminOnly := middleware.RequireRole(middleware.RoleMasterAdmin)

	courseGroup := app.Group("/admin/course")

	// Course CRUD
	courseGroup.Post("/create", middleware.JWTMiddleware, adminOnly, validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Put("/:courseId", middleware.JWTMiddleware, adminOnly, validators.CourseID(), validators.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Delete("/:courseId", middleware.JWTMiddleware, adminOnly, validators.CourseID(), controllers.DeleteCourse)
	courseGroup.Get("/list", middleware.JWTMiddleware, adminOnly, validators.ListQuery(), controllers.AdminListCourses)

	// Content management
	courseGroup.Post("/:courseId/video", middleware.JWTMiddleware, adminOnly, validators.CourseID(), validators.AddVideo(), controllers.UploadVideo)
	courseGroup.Post("/:courseId/pdf", middleware.JWTMiddleware, adminOnly, validators.CourseID(), controllers.UploadPDF)
	courseGroup.Get("/:courseId/content", middleware.JWTMiddleware, adminOnly, validators.CourseID(), controllers.AdminGetCourseContent)

	// Quiz management
	courseGroup.Post("/:courseId/quiz", middleware.JWTMiddleware, adminOnly, validators.CourseID(), validators.CreateQuiz(), controllers.CreateQuiz)

	bankGroup := app.Group("/admin/question-bank")
	bankGroup.Post("/create", middleware.JWTMiddleware, adminOnly, validators.CreateQuestionBank(), controllers.CreateQuestionBank)
	bankGroup.Post("/:bankId/question", middleware.JWTMiddleware, adminOnly, validators.BankID(), validators.AddQuestion(), controllers.AddQuestion)
	bankGroup.Delete("/question/:questionId", middleware.JWTMiddleware, adminOnly, validators.QuestionID(), controllers.DeleteQuestion)

	// Level scheduling
	scheduleGroup := app.Group("/admin/schedule")
	scheduleGroup.Post("/unlock", middleware.JWTMiddleware, adminOnly, validators.SetSchedule(), controllers.SetLevelSchedule)
	scheduleGroup.Post("/validity", middleware.JWTMiddleware, adminOnly, validators.SetValidity(), controllers.SetQuizValidity)
	scheduleGroup.Post("/passing-mark", middleware.JWTMiddleware, adminOnly, validators.SetPassingMark(), controllers.SetPassingMark)
}
