package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vraj2305/cancer_scanner/handlers"
	"github.com/vraj2305/cancer_scanner/middleware"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile", middleware.Protected())
	profile.Get("/me", handlers.GetMyProfile)
	profile.Put("/me", handlers.UpdateMyProfile)
	profile.Put("/me/password", handlers.ChangePassword)
}
