package adminRoutes

import (
	adminControllers "academy/controllers/admin"
	filesControllers "academy/controllers/files"
	"academy/middleware"
	adminValidators "academy/validators/admin"
	courseValidators "academy/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	// Registration verification
	adminGroup.Get("/registrations", adminValidators.ListQuery(), adminControllers.AdminListRegistrations)
	adminGroup.Patch("/registrations/:id/verify", adminValidators.RegistrationID(), adminValidators.VerifyPayment(), adminControllers.AdminVerifyPayment)
	adminGroup.Get("/registrations/:id/slip", adminValidators.RegistrationID(), adminControllers.AdminGetSlipURL)

	// Course content management
	adminGroup.Post("/courses", adminControllers.AdminCreateCourse)
	adminGroup.Patch("/courses/:id", courseValidators.CourseID(), adminControllers.AdminUpdateCourse)
	adminGroup.Delete("/courses/:id", courseValidators.CourseID(), adminControllers.AdminDeleteCourse)
	adminGroup.Patch("/courses/:id/registration", courseValidators.CourseID(), adminControllers.AdminToggleRegistration)

	// Coupons
	adminGroup.Post("/coupons", adminControllers.AdminCreateCoupon)
	adminGroup.Get("/coupons", adminControllers.AdminListCoupons)
	adminGroup.Patch("/coupons/:id", adminValidators.CouponID(), adminControllers.AdminUpdateCoupon)
	adminGroup.Delete("/coupons/:id", adminValidators.CouponID(), adminControllers.AdminDeleteCoupon)

	// Bank accounts shown on the payment page
	adminGroup.Post("/banks", adminControllers.AdminCreateBankAccount)
	adminGroup.Get("/banks", adminControllers.AdminListBankAccounts)
	adminGroup.Patch("/banks/:id", adminValidators.BankAccountID(), adminControllers.AdminUpdateBankAccount)
	adminGroup.Delete("/banks/:id", adminValidators.BankAccountID(), adminControllers.AdminDeleteBankAccount)

	// App settings
	adminGroup.Get("/settings", adminControllers.AdminGetSettings)
	adminGroup.Put("/settings", adminControllers.AdminPutSetting)

	// User management
	adminGroup.Get("/users", adminValidators.ListQuery(), adminControllers.AdminListUsers)
	adminGroup.Patch("/users/:id/role", adminValidators.TargetUserID(), adminControllers.AdminChangeUserRole)

	// Signed slip links resolve here; the signature check gates access
	app.Get("/files/slip", filesControllers.ServeSlip)
}
