package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vraj2305/cancer_scanner/database"
	"github.com/vraj2305/cancer_scanner/models"
	"github.com/vraj2305/cancer_scanner/quiz"
)

type QuestionRequest struct {
	QuestionText      string `json:"question_text" validate:"required,min=5"`
	QuestionType      string `json:"question_type" validate:"required,oneof=boolean range select"`
	Options           string `json:"options"`
	Weight            int    `json:"weight" validate:"gte=0"`
	Category          string `json:"category" validate:"required"`
	NextQuestionLogic string `json:"next_question_logic"`
}

type RiskAssessmentRequest struct {
	RiskLevel    string  `json:"risk_level" validate:"required"`
	Advice       string  `json:"advice" validate:"required"`
	MinScore     int     `json:"min_score" validate:"gte=0"`
	MaxScore     int     `json:"max_score" validate:"gtefield=MinScore"`
	FoodsToEat   string  `json:"foods_to_eat"`
	FoodsToAvoid string  `json:"foods_to_avoid"`
	Precautions  string  `json:"precautions"`
	CancerType   *string `json:"cancer_type"`
}

// checkQuestionRow rejects rows the quiz engine would skip at fetch time, so
// admins get the parse error up front instead of a silently missing question.
func checkQuestionRow(q models.Question) error {
	_, err := quiz.ParseQuestion(quiz.RawQuestion{
		ID:       q.ID,
		Text:     q.QuestionText,
		Type:     q.QuestionType,
		Options:  q.Options,
		Weight:   q.Weight,
		Category: q.Category,
		Routing:  q.NextQuestionLogic,
	})
	return err
}

func CreateQuestion(c *fiber.Ctx) error {
	var req QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	question := models.Question{
		QuestionText:      req.QuestionText,
		QuestionType:      req.QuestionType,
		Options:           req.Options,
		Weight:            req.Weight,
		Category:          req.Category,
		NextQuestionLogic: req.NextQuestionLogic,
	}
	if err := checkQuestionRow(question); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.DB.Create(&question).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create question"})
	}
	return c.Status(fiber.StatusCreated).JSON(question)
}

func ListQuestions(c *fiber.Ctx) error {
	query := database.DB.Order("id ASC")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var questions []models.Question
	if err := query.Find(&questions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch questions"})
	}
	return c.JSON(questions)
}

func UpdateQuestion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid question id"})
	}

	var question models.Question
	if err := database.DB.First(&question, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}

	var req QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	question.QuestionText = req.QuestionText
	question.QuestionType = req.QuestionType
	question.Options = req.Options
	question.Weight = req.Weight
	question.Category = req.Category
	question.NextQuestionLogic = req.NextQuestionLogic

	if err := checkQuestionRow(question); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.DB.Save(&question).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update question"})
	}
	return c.JSON(question)
}

func DeleteQuestion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid question id"})
	}

	result := database.DB.Delete(&models.Question{}, id)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete question"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}
	return c.JSON(fiber.Map{"message": "Question deleted successfully."})
}

func CreateRiskAssessment(c *fiber.Ctx) error {
	var req RiskAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	assessment := models.RiskAssessment{
		RiskLevel:    req.RiskLevel,
		Advice:       req.Advice,
		MinScore:     req.MinScore,
		MaxScore:     req.MaxScore,
		FoodsToEat:   req.FoodsToEat,
		FoodsToAvoid: req.FoodsToAvoid,
		Precautions:  req.Precautions,
		CancerType:   req.CancerType,
	}
	if err := database.DB.Create(&assessment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create risk assessment"})
	}
	return c.Status(fiber.StatusCreated).JSON(assessment)
}

func ListRiskAssessments(c *fiber.Ctx) error {
	query := database.DB.Order("min_score ASC")
	if cancerType := c.Query("cancer_type"); cancerType != "" {
		query = query.Where("cancer_type = ?", cancerType)
	}

	var assessments []models.RiskAssessment
	if err := query.Find(&assessments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch risk assessments"})
	}
	return c.JSON(assessments)
}

func UpdateRiskAssessment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid risk assessment id"})
	}

	var assessment models.RiskAssessment
	if err := database.DB.First(&assessment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Risk assessment not found"})
	}

	var req RiskAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	assessment.RiskLevel = req.RiskLevel
	assessment.Advice = req.Advice
	assessment.MinScore = req.MinScore
	assessment.MaxScore = req.MaxScore
	assessment.FoodsToEat = req.FoodsToEat
	assessment.FoodsToAvoid = req.FoodsToAvoid
	assessment.Precautions = req.Precautions
	assessment.CancerType = req.CancerType

	if err := database.DB.Save(&assessment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update risk assessment"})
	}
	return c.JSON(assessment)
}

func DeleteRiskAssessment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid risk assessment id"})
	}

	result := database.DB.Delete(&models.RiskAssessment{}, id)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete risk assessment"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Risk assessment not found"})
	}
	return c.JSON(fiber.Map{"message": "Risk assessment deleted successfully."})
}

func ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch users"})
	}
	return c.JSON(users)
}

func GetAdminStats(c *fiber.Ctx) error {
	var users, scans, attempts, questions int64

	if err := database.DB.Model(&models.User{}).Count(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch stats"})
	}
	if err := database.DB.Model(&models.ScanResult{}).Count(&scans).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch stats"})
	}
	if err := database.DB.Model(&models.QuizAttempt{}).Count(&attempts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch stats"})
	}
	if err := database.DB.Model(&models.Question{}).Count(&questions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch stats"})
	}

	return c.JSON(fiber.Map{
		"total_users":         users,
		"total_scans":         scans,
		"total_quiz_attempts": attempts,
		"total_questions":     questions,
		"active_sessions":     QuizSessions.Len(),
	})
}
