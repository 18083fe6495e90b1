package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	config "github.com/vraj2305/cancer_scanner/configs"
	"github.com/vraj2305/cancer_scanner/database"
	"github.com/vraj2305/cancer_scanner/models"
	"github.com/vraj2305/cancer_scanner/services"
	"github.com/vraj2305/cancer_scanner/utils"
)

const maxScanSizeBytes = 10 * 1024 * 1024

// UploadScan accepts a multipart image, stores it on Cloudinary, runs the
// simulated analysis and persists the result under a unique reference.
func UploadScan(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "An image file is required"})
	}
	if fileHeader.Size > maxScanSizeBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "Image must be smaller than 10MB"})
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only image uploads are accepted"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read uploaded file"})
	}
	defer file.Close()

	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		log.Printf("🔥 Cloudinary misconfigured: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Upload service unavailable"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	uploadResult, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder: "cancer_scanner_scans",
	})
	if err != nil {
		log.Printf("🔥 Failed to upload scan for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload image"})
	}

	analysis := services.AnalyzeScan()

	biomarkers, err := json.Marshal(analysis.Biomarkers)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to encode analysis"})
	}
	recommendations, err := json.Marshal(analysis.Recommendations)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to encode analysis"})
	}

	reference, err := utils.GenerateUniqueScanReference(database.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to allocate scan reference"})
	}

	scan := models.ScanResult{
		UserID:          userID,
		Reference:       reference,
		ImageName:       fileHeader.Filename,
		ImageURL:        uploadResult.SecureURL,
		DetectionResult: analysis.DetectionResult,
		Confidence:      analysis.Confidence,
		Biomarkers:      string(biomarkers),
		Recommendations: string(recommendations),
		Timestamp:       analysis.Timestamp,
	}
	if err := database.DB.Create(&scan).Error; err != nil {
		log.Printf("🔥 Failed to persist scan for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save scan result"})
	}

	return c.Status(fiber.StatusCreated).JSON(scan)
}

// ListScans returns the caller's scans newest first. Supports ?window=last30
// or last90, or an explicit ?from=YYYY-MM-DD&to=YYYY-MM-DD range.
func ListScans(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	query := database.DB.Where("user_id = ?", userID)

	from, to, err := scanTimeFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !from.IsZero() {
		query = query.Where("timestamp >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("timestamp <= ?", to)
	}

	var scans []models.ScanResult
	if err := query.Order("timestamp DESC").Find(&scans).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch scans"})
	}

	return c.JSON(scans)
}

func scanTimeFilter(c *fiber.Ctx) (time.Time, time.Time, error) {
	switch window := c.Query("window"); window {
	case "":
	case "last30":
		return time.Now().AddDate(0, 0, -30), time.Time{}, nil
	case "last90":
		return time.Now().AddDate(0, 0, -90), time.Time{}, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown window %q, expected last30 or last90", window)
	}

	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("from must be YYYY-MM-DD")
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("to must be YYYY-MM-DD")
		}
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}

// GetScan fetches one of the caller's scans by id or reference code.
func GetScan(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	id := c.Params("id")
	var scan models.ScanResult
	result := database.DB.Where("user_id = ? AND (id::text = ? OR reference = ?)", userID, id, id).First(&scan)
	if result.Error != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Scan not found"})
	}

	return c.JSON(scan)
}

func DeleteScan(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	id := c.Params("id")
	result := database.DB.Where("user_id = ? AND (id::text = ? OR reference = ?)", userID, id, id).Delete(&models.ScanResult{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete scan"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Scan not found"})
	}

	return c.JSON(fiber.Map{"message": "Scan deleted successfully."})
}
