package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/vraj2305/cancer_scanner/database"
	"github.com/vraj2305/cancer_scanner/models"
	"github.com/vraj2305/cancer_scanner/services"
)

const chatHistoryWindow = 20

type ChatRequest struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

// SendChatMessage runs one turn of the assistant conversation. Off-topic
// messages are answered with the canned redirect without calling the model.
func SendChatMessage(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if services.Gemini == nil && services.IsCancerRelated(req.Message) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "The assistant is not available right now"})
	}

	reply, err := runAssistantTurn(userID, req.Message)
	if err != nil {
		log.Printf("🔥 Assistant turn failed for user %s: %v", userID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "The assistant could not answer, please try again"})
	}

	return c.JSON(reply)
}

func GetChatHistory(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	var messages []models.ChatMessage
	if err := database.DB.Where("user_id = ?", userID).Order("created_at ASC").Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch chat history"})
	}

	return c.JSON(messages)
}

func ClearChatHistory(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	if err := database.DB.Where("user_id = ?", userID).Delete(&models.ChatMessage{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to clear chat history"})
	}

	return c.JSON(fiber.Map{"message": "Chat history cleared."})
}
