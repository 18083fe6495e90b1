package models

import (
	"time"

	"github.com/google/uuid"
)

// QuizAttempt stores one per-category outcome of a completed quiz session.
type QuizAttempt struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	SessionID  uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`
	CancerType string    `gorm:"size:50;not null" json:"cancer_type"`
	Score      int       `gorm:"not null" json:"score"`
	RiskLevel  string    `gorm:"size:50;not null" json:"risk_level"`
	CreatedAt  time.Time `json:"created_at"`

	User User `gorm:"foreignkey:UserID" json:"-"`
}
