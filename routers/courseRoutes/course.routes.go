package courseRoutes

import (
	courseControllers "academy/controllers/course"
	"academy/middleware"
	courseValidators "academy/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	// Public catalogue
	courseGroup.Get("/", courseControllers.GetAllCourses)
	courseGroup.Get("/upcoming", courseControllers.GetUpcomingCourse)
	courseGroup.Get("/payment/accounts", courseControllers.GetPaymentAccounts)
	courseGroup.Get("/:id", courseValidators.CourseID(), courseControllers.GetCourseDetails)
	courseGroup.Get("/:id/coupon", courseValidators.CourseID(), courseControllers.ValidateCoupon)

	// Enrollment and progress require a logged-in student
	courseGroup.Post("/:id/register", courseValidators.CourseID(), middleware.JWTMiddleware, courseValidators.Register(), courseControllers.RegisterForCourse)
	courseGroup.Get("/:id/progress", courseValidators.CourseID(), middleware.JWTMiddleware, courseControllers.GetCourseProgress)
	courseGroup.Put("/:id/progress", courseValidators.CourseID(), middleware.JWTMiddleware, courseValidators.Progress(), courseControllers.UpdateLessonProgress)

	app.Get("/enrollments", middleware.JWTMiddleware, courseControllers.GetUserEnrollments)
}
