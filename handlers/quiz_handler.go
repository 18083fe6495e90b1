package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/vraj2305/cancer_scanner/database"
	"github.com/vraj2305/cancer_scanner/models"
	"github.com/vraj2305/cancer_scanner/quiz"
	"github.com/vraj2305/cancer_scanner/services"
)

// QuizSessions holds one in-flight quiz engine per user. Idle sessions are
// reaped by the cron job in jobs/session_reaper.go.
var QuizSessions = quiz.NewStore()

type SubmitAnswerRequest struct {
	QuestionID int `json:"question_id" validate:"required"`
	Response   any `json:"response" validate:"required"`
}

type questionView struct {
	ID      int    `json:"id"`
	Text    string `json:"question_text"`
	Type    string `json:"question_type"`
	Options any    `json:"options"`
}

func viewQuestion(q *quiz.Question) *questionView {
	if q == nil {
		return nil
	}
	view := &questionView{
		ID:   q.ID,
		Text: q.Text,
		Type: string(q.Type),
	}
	switch opts := q.Options.(type) {
	case quiz.BooleanOptions:
		view.Options = fiber.Map{"choices": opts.Choices}
	case quiz.SelectOptions:
		view.Options = fiber.Map{"choices": opts.Choices}
	case quiz.RangeOptions:
		view.Options = fiber.Map{"min": opts.Min, "max": opts.Max, "step": opts.Step}
	}
	return view
}

func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	return uuid.Parse(claims["user_id"].(string))
}

func newEngineForUser(userID uuid.UUID) *quiz.Engine {
	return quiz.NewEngine(
		services.QuizQuestionSource{},
		services.QuizRiskSource{},
		services.QuizResponseLogger{UserID: userID},
	)
}

// StartQuiz creates a fresh session for the caller, replacing any session
// already in progress.
func StartQuiz(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	engine := newEngineForUser(userID)
	if err := engine.Start(); err != nil {
		if errors.Is(err, quiz.ErrNoGeneralQuestions) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "The quiz has no questions configured yet"})
		}
		log.Printf("🔥 Failed to start quiz for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to start quiz"})
	}
	QuizSessions.Put(userID.String(), engine)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session_id": engine.Session().ID,
		"question":   viewQuestion(engine.CurrentQuestion()),
		"snapshot":   engine.Snapshot(),
	})
}

// GetCurrentQuestion returns the question the session is waiting on, or the
// final results when the session has completed.
func GetCurrentQuestion(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	engine, ok := QuizSessions.Get(userID.String())
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No active quiz session. Start one first."})
	}

	return c.JSON(fiber.Map{
		"session_id": engine.Session().ID,
		"question":   viewQuestion(engine.CurrentQuestion()),
		"snapshot":   engine.Snapshot(),
	})
}

// SubmitQuizAnswer records an answer for the pending question and advances
// the session. When the answer completes the quiz the resolved results are
// returned and the attempt is persisted.
func SubmitQuizAnswer(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	engine, ok := QuizSessions.Get(userID.String())
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No active quiz session. Start one first."})
	}

	var req SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	session := engine.Session()
	if session == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No active quiz session. Start one first."})
	}

	wasCompleted := session.Completed
	if err := engine.SubmitAnswer(req.QuestionID, req.Response); err != nil {
		var seqErr *quiz.SequenceError
		if errors.As(err, &seqErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": seqErr.Reason})
		}
		log.Printf("🔥 Failed to submit quiz answer for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit answer"})
	}

	if session.Completed && !wasCompleted {
		persistQuizAttempts(userID, session)
	}

	return c.JSON(fiber.Map{
		"session_id": session.ID,
		"question":   viewQuestion(engine.CurrentQuestion()),
		"snapshot":   engine.Snapshot(),
	})
}

func persistQuizAttempts(userID uuid.UUID, session *quiz.Session) {
	sessionID, err := uuid.Parse(session.ID)
	if err != nil {
		log.Printf("⚠️ Could not persist quiz attempt, bad session id %q: %v", session.ID, err)
		return
	}
	for _, result := range session.Results {
		attempt := models.QuizAttempt{
			UserID:     userID,
			SessionID:  sessionID,
			CancerType: result.Category,
			Score:      result.Score,
			RiskLevel:  result.Assessment.RiskLevel,
		}
		if err := database.DB.Create(&attempt).Error; err != nil {
			log.Printf("⚠️ Could not persist quiz attempt for user %s: %v", userID, err)
		}
	}
}

// ResetQuiz discards all progress and starts the session over from the first
// general question. This is the only way to revisit an answered question.
func ResetQuiz(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	engine, ok := QuizSessions.Get(userID.String())
	if !ok {
		engine = newEngineForUser(userID)
	}

	if err := engine.Reset(); err != nil {
		QuizSessions.Remove(userID.String())
		if errors.Is(err, quiz.ErrNoGeneralQuestions) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "The quiz has no questions configured yet"})
		}
		log.Printf("🔥 Failed to reset quiz for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reset quiz"})
	}
	QuizSessions.Put(userID.String(), engine)

	return c.JSON(fiber.Map{
		"session_id": engine.Session().ID,
		"question":   viewQuestion(engine.CurrentQuestion()),
		"snapshot":   engine.Snapshot(),
	})
}

// GetQuizResults returns the per-category outcomes of a completed session.
func GetQuizResults(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	engine, ok := QuizSessions.Get(userID.String())
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No active quiz session. Start one first."})
	}

	session := engine.Session()
	if !session.Completed {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "The quiz is not finished yet"})
	}

	return c.JSON(fiber.Map{
		"session_id":             session.ID,
		"has_positive_responses": session.HasPositiveResponses,
		"results":                session.Results,
	})
}

// GetQuizHistory lists the caller's persisted quiz attempts, newest first.
func GetQuizHistory(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	var attempts []models.QuizAttempt
	if err := database.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&attempts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch quiz history"})
	}

	return c.JSON(attempts)
}

// DownloadQuizReport renders the completed session into a PDF, uploads it and
// returns the download URL.
func DownloadQuizReport(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	engine, ok := QuizSessions.Get(userID.String())
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No active quiz session. Start one first."})
	}

	session := engine.Session()
	if !session.Completed {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "The quiz is not finished yet"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	url, err := services.GenerateRiskReportPDF(user, session.ID, session.Results)
	if err != nil {
		log.Printf("🔥 Failed to generate risk report for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate report"})
	}

	return c.JSON(fiber.Map{"report_url": url})
}
