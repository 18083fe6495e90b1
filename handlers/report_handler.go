package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/vraj2305/cancer_scanner/database"
	"github.com/vraj2305/cancer_scanner/models"
	"gorm.io/gorm"
)

type detectionCount struct {
	DetectionResult string `json:"detection_result"`
	Count           int64  `json:"count"`
}

type dailyScanCount struct {
	Day      string `json:"day"`
	Count    int64  `json:"count"`
	Abnormal int64  `json:"abnormal"`
}

func scopedScans(userID uuid.UUID, from, to time.Time) *gorm.DB {
	query := database.DB.Model(&models.ScanResult{}).Where("user_id = ?", userID)
	if !from.IsZero() {
		query = query.Where("timestamp >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("timestamp <= ?", to)
	}
	return query
}

// GetScanReport aggregates the caller's scan history: totals, a breakdown by
// detection result and a per-day trend. Honors the same time filters as
// ListScans.
func GetScanReport(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	from, to, err := scanTimeFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var total int64
	if err := scopedScans(userID, from, to).Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build report"})
	}

	var distribution []detectionCount
	if err := scopedScans(userID, from, to).
		Select("detection_result, COUNT(*) AS count").
		Group("detection_result").
		Scan(&distribution).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build report"})
	}

	var trend []dailyScanCount
	if err := scopedScans(userID, from, to).
		Select("TO_CHAR(timestamp, 'YYYY-MM-DD') AS day, COUNT(*) AS count, COUNT(*) FILTER (WHERE detection_result = 'abnormal') AS abnormal").
		Group("day").
		Order("day ASC").
		Scan(&trend).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build report"})
	}

	return c.JSON(fiber.Map{
		"total_scans":  total,
		"distribution": distribution,
		"daily_trend":  trend,
	})
}
