package userRoutes

import (
	userControllers "academy/controllers/user"
	"academy/middleware"
	userValidators "academy/validators/user"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user", middleware.JWTMiddleware)

	userGroup.Get("/profile", userControllers.GetProfile)
	userGroup.Patch("/profile", userValidators.UpdateProfile(), userControllers.UpdateProfile)
	userGroup.Post("/profile/avatar", userControllers.UploadAvatar)
}
