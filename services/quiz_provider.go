package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/vraj2305/cancer_scanner/database"
	"github.com/vraj2305/cancer_scanner/models"
	"github.com/vraj2305/cancer_scanner/quiz"
	"gorm.io/gorm"
)

// QuizQuestionSource feeds the quiz engine from the questions table.
// Malformed rows are skipped with a warning instead of failing the whole
// quiz; the engine still rejects an empty general set.
type QuizQuestionSource struct{}

func (QuizQuestionSource) FetchQuestions() ([]quiz.Question, error) {
	var rows []models.Question
	if err := database.DB.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	questions := make([]quiz.Question, 0, len(rows))
	for _, row := range rows {
		q, err := quiz.ParseQuestion(quiz.RawQuestion{
			ID:       row.ID,
			Text:     row.QuestionText,
			Type:     row.QuestionType,
			Options:  row.Options,
			Weight:   row.Weight,
			Category: row.Category,
			Routing:  row.NextQuestionLogic,
		})
		if err != nil {
			log.Printf("⚠️ Skipping malformed question %d: %v", row.ID, err)
			continue
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// QuizRiskSource answers bracket lookups from the risk_assessments table.
type QuizRiskSource struct{}

func (QuizRiskSource) FindBracket(category string, score int) (*quiz.RiskAssessment, error) {
	var row models.RiskAssessment
	err := database.DB.
		Where("cancer_type = ? AND min_score <= ? AND max_score >= ?", category, score, score).
		Order("min_score").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	assessment := toQuizAssessment(row)
	return &assessment, nil
}

func (QuizRiskSource) FindGenericBracket(score int) (*quiz.RiskAssessment, error) {
	var row models.RiskAssessment
	err := database.DB.
		Where("cancer_type IS NULL AND min_score <= ? AND max_score >= ?", score, score).
		Order("min_score").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	assessment := toQuizAssessment(row)
	return &assessment, nil
}

func (QuizRiskSource) BracketsFor(category string) ([]quiz.RiskAssessment, error) {
	query := database.DB.Order("min_score")
	if category == "" || category == "general" {
		query = query.Where("cancer_type IS NULL")
	} else {
		query = query.Where("cancer_type = ?", category)
	}
	var rows []models.RiskAssessment
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toQuizAssessments(rows), nil
}

func (QuizRiskSource) AllBrackets() ([]quiz.RiskAssessment, error) {
	var rows []models.RiskAssessment
	if err := database.DB.Order("min_score").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toQuizAssessments(rows), nil
}

// QuizResponseLogger appends answered questions to the user_responses audit
// table. The engine treats failures as warnings.
type QuizResponseLogger struct {
	UserID uuid.UUID
}

func (l QuizResponseLogger) Append(sessionID string, questionID int, response any) error {
	sid, err := uuid.Parse(sessionID)
	if err != nil {
		return fmt.Errorf("invalid session id %q: %w", sessionID, err)
	}
	return database.DB.Create(&models.UserResponse{
		UserID:     l.UserID,
		SessionID:  sid,
		QuestionID: questionID,
		Response:   fmt.Sprint(response),
	}).Error
}

func toQuizAssessments(rows []models.RiskAssessment) []quiz.RiskAssessment {
	out := make([]quiz.RiskAssessment, 0, len(rows))
	for _, row := range rows {
		out = append(out, toQuizAssessment(row))
	}
	return out
}

func toQuizAssessment(row models.RiskAssessment) quiz.RiskAssessment {
	category := ""
	if row.CancerType != nil {
		category = *row.CancerType
	}
	return quiz.RiskAssessment{
		ID:           row.ID,
		RiskLevel:    row.RiskLevel,
		Advice:       row.Advice,
		MinScore:     row.MinScore,
		MaxScore:     row.MaxScore,
		FoodsToEat:   decodeStringList(row.FoodsToEat),
		FoodsToAvoid: decodeStringList(row.FoodsToAvoid),
		Precautions:  decodeStringList(row.Precautions),
		Category:     category,
	}
}

// decodeStringList parses a JSON string array stored as text, tolerating
// empty columns and double-encoded payloads.
func decodeStringList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		return list
	}
	var inner string
	if err := json.Unmarshal([]byte(raw), &inner); err == nil {
		if err := json.Unmarshal([]byte(inner), &list); err == nil {
			return list
		}
	}
	log.Printf("⚠️ Ignoring malformed string list payload: %s", raw)
	return nil
}
