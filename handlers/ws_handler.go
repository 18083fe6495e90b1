package handlers

import (
	"fmt"
	"log"
	"strings"

	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	config "github.com/vraj2305/cancer_scanner/configs"
	"github.com/vraj2305/cancer_scanner/database"
	"github.com/vraj2305/cancer_scanner/models"
	"github.com/vraj2305/cancer_scanner/services"
	"github.com/vraj2305/cancer_scanner/websocket"
)

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(config.Config("JWT_SECRET")), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// ServeWs runs the live assistant chat over a websocket. The first frame must
// be {"type":"auth","token":"<jwt>"}; every later frame is one user message.
func ServeWs(c *websocketcontrib.Conn) {
	type AuthMessage struct {
		Type  string `json:"type"`
		Token string `json:"token"`
	}
	var authMsg AuthMessage
	if err := c.ReadJSON(&authMsg); err != nil || authMsg.Type != "auth" {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid or missing auth message"})
		c.Close()
		return
	}

	claims, err := parseToken(authMsg.Token)
	if err != nil {
		log.Printf("WebSocket auth failed: %v", err)
		_ = c.WriteJSON(fiber.Map{"error": "Invalid token"})
		c.Close()
		return
	}

	userID, err := uuid.Parse(claims["user_id"].(string))
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid user ID"})
		c.Close()
		return
	}

	client := &websocket.Client{UserID: userID, Conn: c}
	websocket.Register <- client
	defer func() {
		websocket.Unregister <- client
		c.Close()
	}()

	for {
		var msg struct {
			Message string `json:"message"`
		}
		if err := c.ReadJSON(&msg); err != nil {
			if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseAbnormalClosure) {
				log.Printf("WebSocket closed for client %s: %v", userID, err)
			} else {
				log.Printf("WebSocket read error for client %s: %v", userID, err)
			}
			break
		}

		if strings.TrimSpace(msg.Message) == "" {
			_ = c.WriteJSON(fiber.Map{"error": "Message cannot be empty"})
			continue
		}

		reply, err := runAssistantTurn(userID, msg.Message)
		if err != nil {
			log.Printf("🔥 Assistant turn failed for client %s: %v", userID, err)
			_ = c.WriteJSON(fiber.Map{"error": "The assistant could not answer, please try again"})
			continue
		}
		websocket.Deliver <- reply
	}
}

// runAssistantTurn persists the user message, produces a reply (canned
// redirect for off-topic input, Gemini otherwise) and persists it.
func runAssistantTurn(userID uuid.UUID, message string) (*models.ChatMessage, error) {
	userMessage := models.ChatMessage{UserID: userID, Role: "user", Content: message}
	if err := database.DB.Create(&userMessage).Error; err != nil {
		return nil, err
	}

	var replyText string
	if !services.IsCancerRelated(message) {
		replyText = services.OffTopicReply()
	} else {
		if services.Gemini == nil {
			return nil, fmt.Errorf("gemini service not configured")
		}

		var history []models.ChatMessage
		if err := database.DB.Where("user_id = ?", userID).
			Order("created_at DESC").Limit(chatHistoryWindow).Find(&history).Error; err != nil {
			return nil, err
		}
		for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
			history[i], history[j] = history[j], history[i]
		}

		reply, err := services.Gemini.GenerateReply(history, message)
		if err != nil {
			return nil, err
		}
		replyText = reply
	}

	assistantMessage := models.ChatMessage{UserID: userID, Role: "assistant", Content: replyText}
	if err := database.DB.Create(&assistantMessage).Error; err != nil {
		return nil, err
	}
	return &assistantMessage, nil
}
