package models

import (
	"time"

	"github.com/google/uuid"
)

// UserResponse is the append-only audit log of raw quiz answers.
type UserResponse struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	SessionID  uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`
	QuestionID int       `gorm:"not null" json:"question_id"`
	Response   string    `gorm:"type:text;not null" json:"response"`
	CreatedAt  time.Time `json:"created_at"`

	User User `gorm:"foreignkey:UserID" json:"-"`
}
