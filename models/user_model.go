package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'user'" json:"role"`

	ProfilePictureURL *string    `gorm:"size:255" json:"profile_picture_url"`
	DateOfBirth       *time.Time `json:"date_of_birth"`
	Gender            *string    `gorm:"size:30" json:"gender"`
	KnownConditions   *string    `gorm:"type:text" json:"known_conditions"`
	FamilyHistory     *string    `gorm:"type:text" json:"family_history"`

	ResetPasswordToken          *string    `gorm:"size:255;unique" json:"-"`
	ResetPasswordTokenExpiresAt *time.Time `json:"-"`
	ScreeningReminderSentAt     *time.Time `json:"-"`
	IsActive                    bool       `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
