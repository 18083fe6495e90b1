package models

// Question is one quiz item. Options and NextQuestionLogic hold JSON payloads
// as text; the quiz package parses them defensively.
type Question struct {
	ID                int    `gorm:"primary_key;autoIncrement" json:"id"`
	QuestionText      string `gorm:"type:text;not null" json:"question_text"`
	QuestionType      string `gorm:"size:20;not null;default:'boolean'" json:"question_type"`
	Options           string `gorm:"type:text" json:"options"`
	Weight            int    `gorm:"not null;default:0" json:"weight"`
	Category          string `gorm:"size:50;not null;default:'general';index" json:"category"`
	NextQuestionLogic string `gorm:"type:text" json:"next_question_logic"`
}
