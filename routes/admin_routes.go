package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vraj2305/cancer_scanner/handlers"
	"github.com/vraj2305/cancer_scanner/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/stats", handlers.GetAdminStats)
	admin.Get("/users", handlers.ListUsers)

	questions := admin.Group("/questions")
	questions.Post("", handlers.CreateQuestion)
	questions.Get("", handlers.ListQuestions)
	questions.Put("/:id", handlers.UpdateQuestion)
	questions.Delete("/:id", handlers.DeleteQuestion)

	assessments := admin.Group("/risk-assessments")
	assessments.Post("", handlers.CreateRiskAssessment)
	assessments.Get("", handlers.ListRiskAssessments)
	assessments.Put("/:id", handlers.UpdateRiskAssessment)
	assessments.Delete("/:id", handlers.DeleteRiskAssessment)
}
