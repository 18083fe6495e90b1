package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vraj2305/cancer_scanner/handlers"
	"github.com/vraj2305/cancer_scanner/middleware"
)

func QuizRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	quiz := api.Group("/quiz", middleware.Protected())
	quiz.Post("/start", handlers.StartQuiz)
	quiz.Get("/question", handlers.GetCurrentQuestion)
	quiz.Post("/answer", handlers.SubmitQuizAnswer)
	quiz.Post("/reset", handlers.ResetQuiz)
	quiz.Get("/results", handlers.GetQuizResults)
	quiz.Get("/history", handlers.GetQuizHistory)
	quiz.Post("/report", handlers.DownloadQuizReport)
}
