package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vraj2305/cancer_scanner/handlers"
	"github.com/vraj2305/cancer_scanner/middleware"
)

func ScanRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	scans := api.Group("/scans", middleware.Protected())
	scans.Post("", handlers.UploadScan)
	scans.Get("", handlers.ListScans)
	scans.Get("/report", handlers.GetScanReport)
	scans.Get("/:id", handlers.GetScan)
	scans.Delete("/:id", handlers.DeleteScan)
}
