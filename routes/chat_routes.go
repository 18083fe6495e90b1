package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vraj2305/cancer_scanner/handlers"
	"github.com/vraj2305/cancer_scanner/middleware"
)

func ChatRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	chat := api.Group("/chat", middleware.Protected())
	chat.Post("/message", handlers.SendChatMessage)
	chat.Get("/history", handlers.GetChatHistory)
	chat.Delete("/history", handlers.ClearChatHistory)
}
